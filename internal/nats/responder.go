package nats

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"

	apperrors "sudooom.gbfan/internal/errors"
	"sudooom.gbfan/internal/fancalc"
	"sudooom.gbfan/internal/workerpool"
)

// ResponderConfig 订阅配置
type ResponderConfig struct {
	Subject   string
	Queue     string
	Workers   int
	QueueSize int
}

// Responder 以队列组订阅算番请求并回复结果
// 请求与回复的格式和标准输入输出适配器一致
type Responder struct {
	nc           *nats.Conn
	svc          *fancalc.Service
	cfg          ResponderConfig
	logger       *slog.Logger
	pool         *workerpool.Pool
	subscription *nats.Subscription
}

// NewResponder 创建算番应答器
func NewResponder(nc *nats.Conn, svc *fancalc.Service, cfg ResponderConfig, logger *slog.Logger) *Responder {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		nc:     nc,
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

// Start 启动订阅, ctx 传给每个请求的算番
func (r *Responder) Start(ctx context.Context) error {
	r.pool = workerpool.New("nats-responder", r.cfg.Workers, r.cfg.QueueSize, r.logger)

	sub, err := r.nc.QueueSubscribe(r.cfg.Subject, r.cfg.Queue, func(msg *nats.Msg) {
		data := msg.Data
		if !r.pool.TrySubmit(func(context.Context) {
			r.respond(msg, r.Handle(ctx, data))
		}) {
			// 队列满时直接回复繁忙, 不让请求方等到超时
			r.logger.Warn("Request queue full, rejecting", "queue_size", r.cfg.QueueSize)
			r.respond(msg, Busy(data))
		}
	})
	if err != nil {
		r.pool.Shutdown()
		return err
	}

	r.subscription = sub
	r.logger.Info("NATS responder started",
		"subject", r.cfg.Subject,
		"queue", r.cfg.Queue,
		"workers", r.cfg.Workers)
	return nil
}

// Handle 处理一条请求, 返回回复内容
func (r *Responder) Handle(ctx context.Context, data []byte) []byte {
	var out bytes.Buffer
	if err := r.svc.Run(ctx, bytes.NewReader(data), &out); err != nil {
		r.logger.Error("Failed to compute fan", "error", err)
	}
	return out.Bytes()
}

// Busy 队列满时的回复
func Busy(data []byte) []byte {
	req := fancalc.DecodeRequest(bytes.TrimSpace(data))
	res := fancalc.Result{Hand: req.Hand, Error: apperrors.ErrTooManyRequest.Message}
	var out bytes.Buffer
	_ = fancalc.Encode(&out, &res)
	return out.Bytes()
}

func (r *Responder) respond(msg *nats.Msg, data []byte) {
	if msg.Reply == "" {
		return
	}
	if err := msg.Respond(data); err != nil {
		r.logger.Warn("Failed to respond", "error", err)
	}
}

// Stop 取消订阅并等待处理中的请求完成
func (r *Responder) Stop() error {
	if r.subscription != nil {
		if err := r.subscription.Unsubscribe(); err != nil {
			r.logger.Error("Failed to unsubscribe", "error", err)
		}
	}
	if r.pool != nil {
		r.pool.Wait()
	}
	r.logger.Info("NATS responder stopped")
	return nil
}
