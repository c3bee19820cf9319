package logger

import (
	"io"
	"log/slog"
	"strings"

	"sudooom.gbfan/internal/config"
)

// New 按配置创建日志器, format 为 text 时使用文本格式, 其余一律 JSON
func New(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Setup 创建日志器并设为默认
func Setup(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	l := New(w, cfg)
	slog.SetDefault(l)
	return l
}

// ParseLevel 未识别的级别按 info 处理
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
