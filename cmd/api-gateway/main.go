// Package main 是应用程序入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dumeirei/island-tour-backend/internal/common/cache"
	"github.com/dumeirei/island-tour-backend/internal/common/config"
	"github.com/dumeirei/island-tour-backend/internal/common/database"
	"github.com/dumeirei/island-tour-backend/internal/common/logger"
	"github.com/dumeirei/island-tour-backend/internal/common/metrics"
	"github.com/dumeirei/island-tour-backend/internal/common/tracing"
	"github.com/dumeirei/island-tour-backend/internal/scheduler"
)

func main() {
	// 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.GetLogger()

	log.Info("Starting Island Tour Backend",
		zap.String("version", "1.0.0"),
		zap.String("env", cfg.Server.Mode),
	)

	// 初始化数据库连接
	db, err := database.Init(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// 自动迁移
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// 初始化 Redis 连接
	// Redis 只服务限流，连不上时降级为不限流
	var redisClient *redis.Client
	redisClient, err = cache.Init(&cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info("Redis connected successfully")
	}

	// 初始化指标
	if cfg.Metrics.Enabled {
		metrics.Init("island_tour")
	}

	// 初始化链路追踪，exporter 为 otlp 时才使用远端 endpoint
	tracingEndpoint := ""
	if cfg.Tracing.Exporter == "otlp" {
		tracingEndpoint = cfg.Tracing.Endpoint
	}
	tracer, err := tracing.Init(&tracing.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Server.Mode,
		Endpoint:    tracingEndpoint,
		SampleRate:  cfg.Tracing.SampleRate,
		Enabled:     cfg.Tracing.Enabled,
	})
	if err != nil {
		log.Warn("Failed to init tracing", zap.Error(err))
	} else if tracer != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tracer.Shutdown(ctx)
		}()
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Server.Mode == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 设置路由
	deps, err := setupRouter(engine, cfg, log, db, redisClient)
	if err != nil {
		log.Fatal("Failed to setup router", zap.Error(err))
	}

	// 启动定时任务
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler()
		taskHandler := scheduler.NewTaskHandler(db, deps.bookingRepo, deps.bookingService)
		scheduler.SetupTasks(sched, taskHandler,
			time.Duration(cfg.Scheduler.BookingCompleteInterval)*time.Second)
		sched.Start()
	}

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 在 goroutine 中启动服务器
	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// 先停定时任务，避免关库后任务还在跑
	if sched != nil {
		sched.Stop()
	}

	// 创建超时上下文用于优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// 关闭数据库连接
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}

	log.Info("Server exited")
}
