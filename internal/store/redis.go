package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"sudooom.gbfan/internal/config"
	"sudooom.gbfan/internal/fancalc"
)

// resultKeyPrefix 算番结果: gbfan:result:{牌串} -> Result JSON
const resultKeyPrefix = "gbfan:result:"

// BuildResultKey 构建算番结果的 Key
func BuildResultKey(hand string) string {
	return resultKeyPrefix + hand
}

// NewRedisClient 按配置创建 Redis 客户端
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// ResultCache 基于 Redis 的算番结果缓存
// 缓存只是加速手段, 读写失败记日志后按未命中处理
type ResultCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

var _ fancalc.Cache = (*ResultCache)(nil)

// NewResultCache 创建结果缓存, ttl 为 0 表示不过期
func NewResultCache(rdb redis.Cmdable, ttl time.Duration) *ResultCache {
	return &ResultCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: slog.Default(),
	}
}

// Get 读取缓存
func (c *ResultCache) Get(ctx context.Context, key string) (*fancalc.Result, bool) {
	data, err := c.rdb.Get(ctx, BuildResultKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Read fan cache failed", "key", key, "error", err)
		}
		return nil, false
	}

	var result fancalc.Result
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("Decode fan cache failed", "key", key, "error", err)
		return nil, false
	}
	return &result, true
}

// Set 写入缓存
func (c *ResultCache) Set(ctx context.Context, key string, result *fancalc.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("Encode fan cache failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, BuildResultKey(key), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Write fan cache failed", "key", key, "error", err)
	}
}
