package router

import (
	"otodoke_life/internal/analytics"
	"otodoke_life/internal/api/handlers"
	"otodoke_life/internal/letter/app"
	"otodoke_life/internal/site"
	"otodoke_life/pkg/metrics"
	"otodoke_life/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
)

// Handlers 路由需要的 handler, 由 main 組裝
type Handlers struct {
	Letter    *app.LetterHandler
	Analytics *analytics.AnalyticsHandler
	Site      *site.SiteHandler
	// 會呼叫外部 QR 服務的路由共用
	QRLimiter *middlewares.LimiterPool
}

// RegisterRoutes 注册所有路由, 最後一個是 404 頁
// @title OTODOKE LIFE API
// @version 1.0
// @description Memorial letter encoding, QR rendering and scan counter
// @host localhost:8080
// @BasePath /
func RegisterRoutes(r *fiber.App, h Handlers) {
	r.Get("/swagger/*", swagger.HandlerDefault)
	r.Get("/healthz", handlers.ConnectCheck)
	r.Post("/debug", handlers.DebugLogFlag)
	r.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	qrLimit := middlewares.RateLimit(h.QRLimiter)

	letterRoutes := r.Group("/api/letters")
	letterRoutes.Post("/", h.Letter.Compose)
	letterRoutes.Post("/decode", h.Letter.Decode)
	letterRoutes.Post("/qr", qrLimit, h.Letter.QR)
	letterRoutes.Get("/sample", h.Letter.Sample)
	letterRoutes.Get("/length", h.Letter.Length)

	r.Get("/api/analytics", h.Analytics.Scans)

	r.Get("/sitemap.xml", h.Site.Sitemap)
	r.Get("/", h.Site.Home)
	r.Post("/", qrLimit, h.Site.Compose)
	r.Get(app.LetterPath, h.Site.Letter)
	for _, p := range site.ContentPages {
		r.Get(p.Path, h.Site.Content(p))
	}

	r.Use(h.Site.NotFound)
}
