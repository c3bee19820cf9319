package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusDisabled     = "disabled"
)

// NATSConn NATS 连接状态
type NATSConn interface {
	IsConnected() bool
}

// Status 健康状态, 未启用的依赖为 disabled
type Status struct {
	NATS  string `json:"nats"`
	Redis string `json:"redis"`
}

// Healthy 已启用的依赖都可用
func (s *Status) Healthy() bool {
	return s.NATS != StatusDisconnected && s.Redis != StatusDisconnected
}

// Checker 健康检查器
type Checker struct {
	nc          NATSConn
	redisClient redis.UniversalClient
	timeout     time.Duration
}

// NewChecker 创建健康检查器, 参数为 nil 表示未启用
func NewChecker(nc NATSConn, redisClient redis.UniversalClient) *Checker {
	return &Checker{
		nc:          nc,
		redisClient: redisClient,
		timeout:     2 * time.Second,
	}
}

// Check 执行健康检查
func (h *Checker) Check(ctx context.Context) *Status {
	status := &Status{NATS: StatusDisabled, Redis: StatusDisabled}

	if h.nc != nil {
		if h.nc.IsConnected() {
			status.NATS = StatusConnected
		} else {
			status.NATS = StatusDisconnected
		}
	}

	if h.redisClient != nil {
		redisCtx, cancel := context.WithTimeout(ctx, h.timeout)
		defer cancel()
		if err := h.redisClient.Ping(redisCtx).Err(); err == nil {
			status.Redis = StatusConnected
		} else {
			status.Redis = StatusDisconnected
		}
	}

	return status
}

// IsHealthy 检查是否健康
func (h *Checker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx).Healthy()
}

// ServeHTTP HTTP 健康检查端点
func (h *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.Check(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if status.Healthy() {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}
