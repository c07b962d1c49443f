// Package main 是应用程序入口
package main

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/common/config"
	"github.com/dumeirei/island-tour-backend/internal/common/metrics"
	adminHandler "github.com/dumeirei/island-tour-backend/internal/handler/admin"
	bookingHandler "github.com/dumeirei/island-tour-backend/internal/handler/booking"
	locationHandler "github.com/dumeirei/island-tour-backend/internal/handler/location"
	reviewHandler "github.com/dumeirei/island-tour-backend/internal/handler/review"
	uploadHandler "github.com/dumeirei/island-tour-backend/internal/handler/upload"
	userHandler "github.com/dumeirei/island-tour-backend/internal/handler/user"
	vendorHandler "github.com/dumeirei/island-tour-backend/internal/handler/vendor"
	"github.com/dumeirei/island-tour-backend/internal/middleware"
	"github.com/dumeirei/island-tour-backend/internal/repository"
	adminService "github.com/dumeirei/island-tour-backend/internal/service/admin"
	bookingService "github.com/dumeirei/island-tour-backend/internal/service/booking"
	locationService "github.com/dumeirei/island-tour-backend/internal/service/location"
	reviewService "github.com/dumeirei/island-tour-backend/internal/service/review"
	uploadService "github.com/dumeirei/island-tour-backend/internal/service/upload"
	userService "github.com/dumeirei/island-tour-backend/internal/service/user"
	vendorService "github.com/dumeirei/island-tour-backend/internal/service/vendor"
	"github.com/dumeirei/island-tour-backend/pkg/storage"
)

// routerDeps 路由装配产物，定时任务等需要复用其中的服务
type routerDeps struct {
	bookingRepo    *repository.BookingRepository
	bookingService *bookingService.BookingService
}

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) (*routerDeps, error) {
	// 初始化仓储
	userRepo := repository.NewUserRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	imageRepo := repository.NewLocationImageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// 初始化存储上传器
	uploader, err := newUploader(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init uploader: %w", err)
	}

	// 初始化服务
	userSvc := userService.NewUserService(db, userRepo)
	vendorSvc := vendorService.NewVendorService(db, vendorRepo, locationRepo, imageRepo)
	vendorAdminSvc := adminService.NewVendorAdminService(db, vendorRepo)
	locationSvc := locationService.NewLocationService(db, locationRepo, reviewRepo)
	reviewSvc := reviewService.NewReviewService(db, reviewRepo, locationRepo, userRepo)
	bookingSvc := bookingService.NewBookingService(db, bookingRepo, locationRepo, userRepo)
	uploadSvc := uploadService.NewUploadService(uploader)

	// 初始化处理器
	userH := userHandler.NewHandler(userSvc)
	vendorH := vendorHandler.NewHandler(vendorSvc)
	adminH := adminHandler.NewVendorHandler(vendorAdminSvc)
	locationH := locationHandler.NewHandler(locationSvc)
	reviewH := reviewHandler.NewHandler(reviewSvc)
	bookingH := bookingHandler.NewHandler(bookingSvc)
	uploadH := uploadHandler.NewHandler(uploadSvc)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.RequestSizeLimiter(10 << 20))
	r.Use(middleware.CORS(corsConfig(&cfg.CORS)))
	r.Use(middleware.AccessLog(logger))
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	if cfg.Metrics.Enabled {
		r.Use(metrics.GetMetrics().Middleware())
	}
	if cfg.RateLimit.Enabled && redisClient != nil {
		r.Use(middleware.IPRateLimit(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.WindowDuration()))
	}

	// 健康检查
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Prometheus 指标
	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, metrics.Handler())
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 本地存储时直接服务上传目录
	if strings.ToLower(cfg.Storage.Provider) != "oss" {
		r.Static(cfg.Storage.LocalBaseURL, cfg.Storage.LocalDir)
	}

	// API v1 路由组
	v1 := r.Group("/api/v1")
	userH.RegisterRoutes(v1)
	locationH.RegisterRoutes(v1)
	bookingH.RegisterRoutes(v1)
	vendorH.RegisterRoutes(v1)
	uploadH.RegisterRoutes(v1)

	// 匿名评价单独限流
	var anonymousLimiter []gin.HandlerFunc
	if redisClient != nil {
		anonymousLimiter = append(anonymousLimiter, middleware.ReviewRateLimit(redisClient))
	}
	reviewH.RegisterRoutes(v1, anonymousLimiter...)

	// 后台管理，预订的确认与完成不对外开放
	admin := v1.Group("/admin")
	adminH.RegisterRoutes(admin)
	bookingH.RegisterAdminRoutes(admin)

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    404,
			"message": "接口不存在",
		})
	})

	return &routerDeps{
		bookingRepo:    bookingRepo,
		bookingService: bookingSvc,
	}, nil
}

// newUploader 按配置选择存储后端
func newUploader(cfg *config.StorageConfig) (storage.Uploader, error) {
	switch strings.ToLower(cfg.Provider) {
	case "oss":
		return storage.NewAliyunUploader(&storage.AliyunConfig{
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			AccessKeySecret: cfg.AccessKeySecret,
			BucketName:      cfg.Bucket,
			Domain:          cfg.CustomDomain,
			BasePath:        cfg.UploadDir,
		})
	case "mock":
		return storage.NewMockUploader(), nil
	default:
		return storage.NewLocalUploader(cfg.LocalDir, cfg.LocalBaseURL)
	}
}

// corsConfig 把配置文件中的跨域设置转换为中间件配置
func corsConfig(cfg *config.CORSConfig) *middleware.CORSConfig {
	if len(cfg.AllowedOrigins) == 0 {
		return nil
	}
	return &middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
}
