package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sudooom.gbfan/internal/config"
	"sudooom.gbfan/internal/handler"
	"sudooom.gbfan/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg config.ServerConfig,
	fanHandler *handler.FanHandler,
	healthHandler http.Handler,
	logger *slog.Logger,
) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if healthHandler != nil {
		r.GET("/health", gin.WrapH(healthHandler))
	}

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/fans", fanHandler.Patterns)
		v1.POST("/fan", middleware.Limit(cfg.MaxInFlight), fanHandler.Compute)
	}

	return r
}
