package app

import (
	"context"
	"strings"
	"unicode/utf8"

	"otodoke_life/internal/letter/codec"
	"otodoke_life/internal/letter/domain"
	"otodoke_life/internal/qr"
	"otodoke_life/pkg/logger"
	"otodoke_life/pkg/metrics"

	"go.uber.org/zap"
)

// LetterPath 信件頁面的路徑, fragment 接在後面
const LetterPath = "/letter"

// LetterUseCase 這裡封裝了對外提供的應用服務
type LetterUseCase interface {
	Compose(ctx context.Context, in domain.ComposerInput, scheme domain.Scheme) (*ComposeResult, error)
	ComposeQR(ctx context.Context, in domain.ComposerInput, scheme domain.Scheme) (*ComposeResult, *qr.Image, error)
	Decode(ctx context.Context, fragment string) (*domain.MessageRecord, error)
	RenderQR(ctx context.Context, letterURL string) (*qr.Image, error)
	Sample() domain.MessageRecord
	ClassifyLength(message string) domain.LengthClass
}

// QRRenderer 產生 QR 圖片, 由 qr.Chain 實作
type QRRenderer interface {
	Render(ctx context.Context, url string) (*qr.Image, error)
}

// ComposeResult 編碼結果; QR 失敗時仍可以複製 LetterURL
type ComposeResult struct {
	Fragment  string             `json:"fragment"`
	LetterURL string             `json:"letterUrl"`
	Scheme    domain.Scheme      `json:"scheme"`
	Length    domain.LengthClass `json:"length"`
	Filename  string             `json:"filename"`
}

type letterUseCase struct {
	codec         *codec.Codec
	renderer      QRRenderer
	baseURL       string
	defaultScheme domain.Scheme
}

// NewLetterUseCase 建立 LetterUseCase, baseURL 例如 https://otodokelife.com
func NewLetterUseCase(c *codec.Codec, renderer QRRenderer, baseURL string, defaultScheme domain.Scheme) LetterUseCase {
	if c == nil {
		c = codec.Default
	}
	if defaultScheme == "" || defaultScheme == domain.SchemeNone {
		defaultScheme = domain.SchemeCompact
	}
	return &letterUseCase{
		codec:         c,
		renderer:      renderer,
		baseURL:       strings.TrimRight(baseURL, "/"),
		defaultScheme: defaultScheme,
	}
}

// Compose 驗證並編碼, 不呼叫任何外部服務
func (l *letterUseCase) Compose(ctx context.Context, in domain.ComposerInput, scheme domain.Scheme) (*ComposeResult, error) {
	if scheme == "" {
		scheme = l.defaultScheme
	}

	fragment, err := l.codec.Encode(in, scheme)
	if err != nil {
		result := metrics.ResultError
		if domain.IsKind(err, domain.KindValidation) {
			result = string(domain.KindValidation)
		}
		metrics.LetterEncode.WithLabelValues(string(scheme), result).Inc()
		logger.Log.Debug("compose rejected", zap.String("scheme", string(scheme)), zap.Error(err))
		return nil, err
	}
	metrics.LetterEncode.WithLabelValues(string(scheme), metrics.ResultOK).Inc()

	message := strings.TrimSpace(in.Message)
	metrics.MessageLength.Observe(float64(utf8.RuneCountInString(message)))

	letterURL := l.baseURL + LetterPath + "#" + fragment
	logger.Log.Debug("compose",
		zap.String("scheme", string(scheme)),
		zap.Int("fragment_length", len(fragment)),
		zap.Int("url_length", len(letterURL)),
	)

	return &ComposeResult{
		Fragment:  fragment,
		LetterURL: letterURL,
		Scheme:    scheme,
		Length:    domain.ClassifyLength(message),
		Filename:  qr.DownloadFilename(in.RecipientName),
	}, nil
}

// ComposeQR 編碼後產生 QR; 編碼失敗不會呼叫 QR 服務, QR 失敗時仍回傳 ComposeResult
func (l *letterUseCase) ComposeQR(ctx context.Context, in domain.ComposerInput, scheme domain.Scheme) (*ComposeResult, *qr.Image, error) {
	res, err := l.Compose(ctx, in, scheme)
	if err != nil {
		return nil, nil, err
	}

	img, err := l.RenderQR(ctx, res.LetterURL)
	if err != nil {
		return res, nil, err
	}
	return res, img, nil
}

// Decode 解碼 fragment; corrupt 的細節只寫到 log, 不回給使用者
func (l *letterUseCase) Decode(ctx context.Context, fragment string) (*domain.MessageRecord, error) {
	scheme := codec.Identify(fragment)

	rec, err := l.codec.DecodeFragment(fragment)
	if err != nil {
		kind, _ := domain.KindOf(err)
		metrics.LetterDecode.WithLabelValues(string(scheme), string(kind)).Inc()
		if kind == domain.KindCorrupt {
			logger.Log.Warn("decode corrupt fragment",
				zap.String("scheme", string(scheme)),
				zap.Int("fragment_length", len(fragment)),
				zap.Error(err),
			)
		}
		return nil, err
	}

	metrics.LetterDecode.WithLabelValues(string(scheme), metrics.ResultOK).Inc()
	return rec, nil
}

// RenderQR 交給 QR chain; 只接受本站的信件 URL, 失敗一律轉成 rendering error
func (l *letterUseCase) RenderQR(ctx context.Context, letterURL string) (*qr.Image, error) {
	if !l.isLetterURL(letterURL) {
		return nil, domain.NewValidationError("このサイトのメッセージURLではありません")
	}
	if l.renderer == nil {
		return nil, domain.NewRenderingError("no qr renderer configured", nil)
	}

	img, err := l.renderer.Render(ctx, letterURL)
	if err != nil {
		if !domain.IsKind(err, domain.KindRendering) {
			err = domain.NewRenderingError("qr rendering failed", err)
		}
		logger.Log.Error("render qr failed", zap.Int("url_length", len(letterURL)), zap.Error(err))
		return nil, err
	}
	return img, nil
}

func (l *letterUseCase) isLetterURL(u string) bool {
	prefix := l.baseURL + LetterPath + "#"
	return strings.HasPrefix(u, prefix) && len(u) > len(prefix)
}

// Sample 範例信件
func (l *letterUseCase) Sample() domain.MessageRecord {
	return domain.SampleRecord()
}

// ClassifyLength 長度提示
func (l *letterUseCase) ClassifyLength(message string) domain.LengthClass {
	return domain.ClassifyLength(message)
}
