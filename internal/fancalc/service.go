package fancalc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"sudooom.gbfan/internal/mahjong/core"
	"sudooom.gbfan/internal/mahjong/gb"
)

// Cache 算番结果缓存, 键为规范化后的牌串
type Cache interface {
	Get(ctx context.Context, key string) (*Result, bool)
	Set(ctx context.Context, key string, result *Result)
}

// Service 算番服务
type Service struct {
	calc   core.Calculator
	cache  Cache
	logger *slog.Logger
}

// Option 服务选项
type Option func(*Service)

// WithCache 启用结果缓存
func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithLogger 指定日志器
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService 创建算番服务, calc 为空时使用国标算番器
func NewService(calc core.Calculator, opts ...Option) *Service {
	if calc == nil {
		calc = gb.NewCalculator()
	}
	s := &Service{
		calc:   calc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute 对一个牌串算番, 任何失败都体现在结果的 error 字段中
func (s *Service) Compute(ctx context.Context, text string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Compute panic recovered", "hand", text, "panic", r, "stack", string(debug.Stack()))
			res = internalResult(text, fmt.Sprint(r))
		}
	}()

	hand, err := s.calc.Parse(text)
	if err != nil {
		s.logger.Debug("Parse hand failed", "hand", text, "error", err)
		return errorResult(text, err.Error())
	}

	key := gb.Format(hand)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			out := *cached
			out.Hand = text
			return out
		}
	}

	res = s.evaluate(text, hand)
	if s.cache != nil && !res.Internal {
		s.cache.Set(ctx, key, &res)
	}
	return res
}

func (s *Service) evaluate(text string, hand *core.Hand) Result {
	if !s.calc.IsWinning(hand) {
		return errorResult(text, NotHu)
	}
	fr, err := s.calc.Evaluate(hand)
	if errors.Is(err, gb.ErrNotWinning) {
		return errorResult(text, NotHu)
	}
	if err != nil {
		s.logger.Error("Evaluate hand failed", "hand", text, "error", err)
		return internalResult(text, err.Error())
	}
	return newResult(text, fr)
}

// Handle 按解析后的请求算番, hand 类型错误时直接返回错误结果
func (s *Service) Handle(ctx context.Context, req Request) Result {
	if req.Err != nil {
		return errorResult(req.Hand, req.Err.Error())
	}
	return s.Compute(ctx, req.Hand)
}

// Run 从 r 读取一个 JSON 请求, 向 w 写出一个 JSON 结果
// 只有读写本身失败才返回错误
func (s *Service) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	res := s.Handle(ctx, DecodeRequest(bytes.TrimSpace(data)))
	return Encode(w, &res)
}

// Encode 写出结果, 不转义 HTML 字符
func Encode(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}
