package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"sudooom.gbfan/internal/config"
	"sudooom.gbfan/internal/fancalc"
	"sudooom.gbfan/internal/handler"
	"sudooom.gbfan/internal/health"
	"sudooom.gbfan/internal/logger"
	gbNats "sudooom.gbfan/internal/nats"
	"sudooom.gbfan/internal/router"
	"sudooom.gbfan/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 初始化日志
	log := logger.Setup(os.Stdout, cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		opts        = []fancalc.Option{fancalc.WithLogger(log)}
		redisClient *redis.Client
		natsConn    health.NATSConn
	)

	// 连接 Redis
	if cfg.Redis.Enabled {
		redisClient = store.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
		opts = append(opts, fancalc.WithCache(store.NewResultCache(redisClient, cfg.Redis.TTL)))
		log.Info("Redis cache enabled", "host", cfg.Redis.Host, "ttl", cfg.Redis.TTL)
	}

	svc := fancalc.NewService(nil, opts...)

	// 连接 NATS
	var responder *gbNats.Responder
	if cfg.NATS.Enabled {
		natsClient, err := gbNats.NewClient(cfg.NATS, log)
		if err != nil {
			log.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsClient.Close()
		log.Info("Connected to NATS", "url", cfg.NATS.URL)
		natsConn = natsClient

		responder = gbNats.NewResponder(natsClient.Conn(), svc, gbNats.ResponderConfig{
			Subject:   cfg.NATS.Subject,
			Queue:     cfg.NATS.Queue,
			Workers:   cfg.NATS.Workers,
			QueueSize: cfg.NATS.QueueSize,
		}, log)
		if err := responder.Start(ctx); err != nil {
			log.Error("Failed to start NATS responder", "error", err)
			os.Exit(1)
		}
	}

	var checker *health.Checker
	if redisClient != nil {
		checker = health.NewChecker(natsConn, redisClient)
	} else {
		checker = health.NewChecker(natsConn, nil)
	}

	r := router.SetupRouter(cfg.Server, handler.NewFanHandler(svc), checker, log)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server started", "addr", cfg.Server.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	if responder != nil {
		responder.Stop()
	}
	cancel()
	log.Info("Server stopped")
}
