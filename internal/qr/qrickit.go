package qr

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"otodoke_life/pkg/config"

	"github.com/valyala/fasthttp"
)

// QRickit qrickit.com 備援, 只接受 GET 所以有 URL 長度上限
type QRickit struct {
	client       *fasthttp.Client
	endpoint     string
	size         int
	ecc          string
	maxURLLength int
	timeout      time.Duration
}

// NewQRickit create qrickit.com renderer
func NewQRickit(client *fasthttp.Client, cfg config.QRProviderConfig) *QRickit {
	return &QRickit{
		client:       client,
		endpoint:     cfg.Endpoint,
		size:         cfg.Size,
		ecc:          cfg.ECC,
		maxURLLength: cfg.MaxURLLength,
		timeout:      cfg.Timeout,
	}
}

func (q *QRickit) Name() string {
	return "qrickit"
}

func (q *QRickit) Render(ctx context.Context, url string) (*Image, error) {
	if q.maxURLLength > 0 && len(url) > q.maxURLLength {
		return nil, fmt.Errorf("%s: %w (%d > %d)", q.Name(), ErrURLTooLong, len(url), q.maxURLLength)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	req.SetRequestURI(q.endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)

	query := req.URI().QueryArgs()
	query.Set("d", url)
	query.Set("qrsize", strconv.Itoa(q.size))
	query.Set("t", "p")
	if q.ecc != "" {
		query.Set("e", q.ecc)
	}

	return do(ctx, q.client, req, q.timeout, q.Name())
}
