package site

import (
	"bytes"
	"time"

	"otodoke_life/internal/letter/app"
	"otodoke_life/internal/letter/domain"
	"otodoke_life/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SiteHandler 頁面
type SiteHandler struct {
	Renderer *Renderer
	Letters  app.LetterUseCase
	started  time.Time
}

// NewSiteHandler 建立頁面 handler
func NewSiteHandler(renderer *Renderer, letters app.LetterUseCase) *SiteHandler {
	return &SiteHandler{
		Renderer: renderer,
		Letters:  letters,
		started:  time.Now(),
	}
}

func sendHTML(c *fiber.Ctx, status int, render func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logger.Log.Error("render page", zap.String("path", c.Path()), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// Home 首頁表單
func (h *SiteHandler) Home(c *fiber.Ctx) error {
	return sendHTML(c, fiber.StatusOK, func(b *bytes.Buffer) error {
		return h.Renderer.Home(b, HomeView{})
	})
}

// Compose 首頁表單送出; 驗證失敗時帶著原本的內容重新顯示表單
func (h *SiteHandler) Compose(c *fiber.Ctx) error {
	var form app.ComposeRequest
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}

	view := HomeView{Form: form}
	status := fiber.StatusOK

	scheme, err := domain.ParseScheme(form.Scheme)
	if err == nil {
		view.Result, view.QR, err = h.Letters.ComposeQR(c.UserContext(), form.Input(), scheme)
	}
	if err != nil {
		switch kind, _ := domain.KindOf(err); kind {
		case domain.KindValidation:
			view.Error = domain.UserMessage(err)
			status = fiber.StatusBadRequest
		case domain.KindRendering:
			// 仍然有 Result, 頁面改顯示可複製的 URL
			view.QRError = domain.UserMessage(err)
		default:
			logger.Log.Error("compose page", zap.Error(err))
			view.Error = domain.UserMessage(err)
			status = fiber.StatusInternalServerError
		}
	}

	return sendHTML(c, status, func(b *bytes.Buffer) error {
		return h.Renderer.Home(b, view)
	})
}

// Letter 信件頁
func (h *SiteHandler) Letter(c *fiber.Ctx) error {
	return sendHTML(c, fiber.StatusOK, func(b *bytes.Buffer) error {
		return h.Renderer.Letter(b)
	})
}

// Content markdown 靜態頁
func (h *SiteHandler) Content(p ContentPage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return sendHTML(c, fiber.StatusOK, func(b *bytes.Buffer) error {
			return h.Renderer.Content(b, p)
		})
	}
}

// NotFound 其他路由都沒有符合時
func (h *SiteHandler) NotFound(c *fiber.Ctx) error {
	return sendHTML(c, fiber.StatusNotFound, func(b *bytes.Buffer) error {
		return h.Renderer.NotFound(b, c.Path())
	})
}

// Sitemap /sitemap.xml, lastmod 為服務啟動時間
func (h *SiteHandler) Sitemap(c *fiber.Ctx) error {
	out, err := Sitemap(h.Renderer.Options().BaseURL, h.started)
	if err != nil {
		logger.Log.Error("build sitemap", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}
