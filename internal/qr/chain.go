package qr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otodoke_life/internal/letter/domain"
	"otodoke_life/pkg/logger"
	"otodoke_life/pkg/metrics"

	"go.uber.org/zap"
)

// Chain 依序嘗試每個 Renderer, 回傳第一張成功的圖
type Chain struct {
	renderers []Renderer
}

// NewChain create fallback chain
func NewChain(renderers ...Renderer) *Chain {
	return &Chain{renderers: renderers}
}

// Providers 依序列出服務名稱
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.renderers))
	for _, r := range c.renderers {
		names = append(names, r.Name())
	}
	return names
}

// Render 全部失敗時回傳 rendering error, 內含每個服務的失敗原因
func (c *Chain) Render(ctx context.Context, url string) (*Image, error) {
	if url == "" {
		return nil, domain.NewRenderingError("empty url", nil)
	}

	var errs []error
	for _, r := range c.renderers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		start := time.Now()
		img, err := r.Render(ctx, url)
		metrics.QRRenderDuration.WithLabelValues(r.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.QRRender.WithLabelValues(r.Name(), metrics.ResultError).Inc()
			logger.Log.Warn("qr provider failed",
				zap.String("provider", r.Name()),
				zap.Int("url_length", len(url)),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}

		metrics.QRRender.WithLabelValues(r.Name(), metrics.ResultOK).Inc()
		return img, nil
	}

	return nil, domain.NewRenderingError(
		fmt.Sprintf("all %d qr providers failed", len(c.renderers)),
		errors.Join(errs...),
	)
}
