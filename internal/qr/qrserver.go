package qr

import (
	"context"
	"strconv"
	"time"

	"otodoke_life/pkg/config"

	"github.com/valyala/fasthttp"
)

// QRServer api.qrserver.com, 以 POST form 送出避免長 URL 被截斷
type QRServer struct {
	client   *fasthttp.Client
	endpoint string
	size     int
	ecc      string
	margin   int
	timeout  time.Duration
}

// NewQRServer create api.qrserver.com renderer
func NewQRServer(client *fasthttp.Client, cfg config.QRProviderConfig) *QRServer {
	return &QRServer{
		client:   client,
		endpoint: cfg.Endpoint,
		size:     cfg.Size,
		ecc:      cfg.ECC,
		margin:   cfg.Margin,
		timeout:  cfg.Timeout,
	}
}

func (q *QRServer) Name() string {
	return "qrserver"
}

func (q *QRServer) Render(ctx context.Context, url string) (*Image, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	size := strconv.Itoa(q.size)
	args.Set("data", url)
	args.Set("size", size+"x"+size)
	args.Set("format", "png")
	if q.ecc != "" {
		args.Set("ecc", q.ecc)
	}
	if q.margin > 0 {
		args.Set("margin", strconv.Itoa(q.margin))
	}

	req.SetRequestURI(q.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBody(args.QueryString())

	return do(ctx, q.client, req, q.timeout, q.Name())
}
