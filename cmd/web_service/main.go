package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "otodoke_life/cmd/web_service/docs" // 引入生成的 Swagger 文档
	"otodoke_life/internal/analytics"
	"otodoke_life/internal/api/router"
	"otodoke_life/internal/letter/app"
	"otodoke_life/internal/letter/codec"
	"otodoke_life/internal/letter/domain"
	"otodoke_life/internal/qr"
	"otodoke_life/internal/site"
	"otodoke_life/pkg/config"
	"otodoke_life/pkg/database"
	"otodoke_life/pkg/logger"
	"otodoke_life/pkg/middlewares"
	testtool "otodoke_life/pkg/test_tool"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.WebService, config.EnvConfig.WebServiceLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.WebService](config.EnvConfig.WebService, config.EnvConfig.WebServiceYAMLPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheme, err := domain.ParseScheme(cfg.Letter.DefaultScheme)
	if err != nil {
		logger.Log.Fatal("invalid letter.default_scheme", zap.String("scheme", cfg.Letter.DefaultScheme))
	}

	chain, err := qr.NewFromConfig(qr.NewClient(), cfg.QR.Providers)
	if err != nil {
		logger.Log.Fatal("Failed to build qr providers", zap.Error(err))
	}
	logger.Log.Info("qr providers", zap.Strings("order", chain.Providers()))

	letters := app.NewLetterUseCase(codec.NewWithOffset(cfg.Letter.UTCOffsetHours), chain, cfg.BaseURL, scheme)

	pages, err := site.NewRenderer(site.Options{
		BaseURL:         cfg.BaseURL,
		GAMeasurementID: cfg.Site.GAMeasurementID,
		ContactEmail:    cfg.Site.ContactEmail,
	})
	if err != nil {
		logger.Log.Fatal("Failed to parse templates", zap.Error(err))
	}

	r := fiber.New(fiber.Config{
		AppName:      "otodoke_life",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// 添加日志中间件
	file, err := os.OpenFile(filepath.Join(config.EnvConfig.WebServiceLogPath, "access.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(recover.New())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.AccessLog(file))

	router.RegisterRoutes(r, router.Handlers{
		Letter:    app.NewLetterHandler(letters),
		Analytics: analytics.NewAnalyticsHandler(newAnalyticsUseCase(ctx, cfg)),
		Site:      site.NewSiteHandler(pages, letters),
		QRLimiter: middlewares.NewLimiterPool(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	})

	testtool.StartPprof()

	go func() {
		<-ctx.Done()
		logger.Log.Info("shutting down web service")
		if err := r.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Log.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Log.Info(fmt.Sprintf("web service listening on : %s", cfg.Port), zap.String("base_url", cfg.BaseURL))
	if err := r.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}

// newAnalyticsUseCase 未設定 GA 時回傳 nil, /api/analytics 回 503
func newAnalyticsUseCase(ctx context.Context, cfg config.WebService) analytics.AnalyticsUseCase {
	if !cfg.Analytics.Enabled() {
		logger.Log.Info("analytics is not configured, scan counter disabled")
		return nil
	}

	source, err := analytics.NewGAReportSourceFromConfig(ctx, cfg.Analytics)
	if err != nil {
		logger.Log.Fatal("Failed to create analytics client", zap.Error(err))
	}

	cache := analytics.NewMemoryCache(cfg.Analytics.CacheTTL)
	if cfg.Redis.Enabled() {
		client, err := database.NewRedisClient(ctx, database.Connection{
			Addr:          cfg.Redis.Addr,
			MasterName:    cfg.Redis.MasterName,
			SentinelAddrs: cfg.Redis.SentinelAddrs,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.RedisDB,
			RetryCount:    3,
			RetryInterval: 2 * time.Second,
		})
		if err != nil {
			// 退回 process 內快取
			logger.Log.Warn("redis unavailable, using in-memory analytics cache", zap.Error(err))
		} else {
			cache = analytics.NewRedisCache(database.NewRedisRepository[analytics.ScanCount](client, "otodoke:"), cfg.Analytics.CacheTTL)
		}
	}

	return analytics.NewAnalyticsUseCase(source, cache, cfg.Analytics.PathFilter)
}
