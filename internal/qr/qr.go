// Package qr 呼叫外部 QR 圖片服務, 依序嘗試直到有一個成功.
package qr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"otodoke_life/pkg/config"
	errprocess "otodoke_life/pkg/err"

	"github.com/valyala/fasthttp"
)

// Image QR 圖片
type Image struct {
	Data        []byte
	ContentType string
	Provider    string
}

// DataURI 給 <img src> 直接使用
func (i *Image) DataURI() string {
	return "data:" + i.ContentType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Renderer 單一 QR 圖片服務
type Renderer interface {
	Name() string
	Render(ctx context.Context, url string) (*Image, error)
}

var (
	// ErrURLTooLong url 超過服務可接受的長度
	ErrURLTooLong = errors.New("url exceeds provider limit")
	// ErrNotImage 服務回應不是圖片
	ErrNotImage = errors.New("provider did not return an image")
)

// DownloadFilename 下載用的檔名, 沒有名字時用 message
func DownloadFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "message"
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	return "memorial-qr-" + name + ".png"
}

// NewClient 共用的 fasthttp client
func NewClient() *fasthttp.Client {
	return &fasthttp.Client{
		Name:                "otodoke-life",
		MaxConnsPerHost:     32,
		ReadTimeout:         10 * time.Second,
		WriteTimeout:        10 * time.Second,
		MaxIdleConnDuration: time.Minute,
	}
}

// NewFromConfig 依設定的順序建立 Chain
func NewFromConfig(client *fasthttp.Client, providers []config.QRProviderConfig) (*Chain, error) {
	renderers := make([]Renderer, 0, len(providers))
	for _, p := range providers {
		switch p.Name {
		case "qrserver":
			renderers = append(renderers, NewQRServer(client, p))
		case "qrickit":
			renderers = append(renderers, NewQRickit(client, p))
		default:
			return nil, errprocess.Setf("unknown qr provider %q", p.Name)
		}
	}
	if len(renderers) == 0 {
		return nil, errprocess.Set("no qr provider configured")
	}
	return NewChain(renderers...), nil
}

// do 送出請求並取回圖片; 以 ctx 的 deadline 與 timeout 中較早者為準
func do(ctx context.Context, client *fasthttp.Client, req *fasthttp.Request, timeout time.Duration, provider string) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%s request: %w", provider, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", provider, resp.StatusCode())
	}

	contentType := string(resp.Header.ContentType())
	body := resp.Body()
	if len(body) == 0 || !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%s: %w (content-type %q)", provider, ErrNotImage, contentType)
	}

	return &Image{
		Data:        append([]byte(nil), body...),
		ContentType: contentType,
		Provider:    provider,
	}, nil
}
