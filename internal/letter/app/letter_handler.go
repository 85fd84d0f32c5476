package app

import (
	"errors"
	"fmt"
	"net/url"

	"otodoke_life/internal/letter/codec"
	"otodoke_life/internal/letter/domain"
	"otodoke_life/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LetterHandler 处理信件相关的 HTTP 请求
type LetterHandler struct {
	Usecase LetterUseCase
}

// NewLetterHandler 创建新的 LetterHandler
func NewLetterHandler(usecase LetterUseCase) *LetterHandler {
	return &LetterHandler{Usecase: usecase}
}

// ComposeRequest 首頁表單內容
type ComposeRequest struct {
	Message       string `json:"message" form:"message"`
	RecipientName string `json:"recipientName" form:"recipientName"`
	WriterName    string `json:"writerName" form:"writerName"`
	// legacy / compact, 空字串使用預設
	Scheme string `json:"scheme" form:"scheme"`
}

// Input 轉成 domain.ComposerInput, CreatedAt 由 Normalize 補上
func (r ComposeRequest) Input() domain.ComposerInput {
	return domain.ComposerInput{
		Message:       r.Message,
		RecipientName: r.RecipientName,
		WriterName:    r.WriterName,
	}
}

// DecodeRequest fragment 或完整 URL 擇一
type DecodeRequest struct {
	Fragment string `json:"fragment"`
	URL      string `json:"url"`
}

// QRRequest 已有 url 時直接產生 QR, 否則先編碼
type QRRequest struct {
	ComposeRequest
	URL string `json:"url"`
}

// ErrorResponse 錯誤回應, error 為給使用者看的訊息
type ErrorResponse struct {
	Kind      domain.ErrorKind `json:"kind"`
	Error     string           `json:"error"`
	LetterURL string           `json:"letterUrl,omitempty"`
}

// Compose 编码信件
// @Summary Compose a letter
// @Description Validate and encode a letter into a URL fragment
// @Tags Letters
// @Accept json
// @Produce json
// @Param request body ComposeRequest true "letter content"
// @Success 200 {object} ComposeResult
// @Failure 400 {object} ErrorResponse
// @Router /api/letters [post]
func (h *LetterHandler) Compose(c *fiber.Ctx) error {
	var req ComposeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	scheme, err := domain.ParseScheme(req.Scheme)
	if err != nil {
		return respondError(c, err)
	}

	res, err := h.Usecase.Compose(c.UserContext(), req.Input(), scheme)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Decode 解码 fragment
// @Summary Decode a letter fragment
// @Description Identify the scheme of a fragment (or a full letter URL) and decode it
// @Tags Letters
// @Accept json
// @Produce json
// @Param request body DecodeRequest true "fragment or url"
// @Success 200 {object} domain.MessageRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "no data"
// @Failure 422 {object} ErrorResponse "corrupt"
// @Router /api/letters/decode [post]
func (h *LetterHandler) Decode(c *fiber.Ctx) error {
	var req DecodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	fragment := req.Fragment
	if fragment == "" && req.URL != "" {
		fragment = codec.FragmentFromURL(req.URL)
	}

	rec, err := h.Usecase.Decode(c.UserContext(), fragment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// QR 产生 QR 图片
// @Summary Render a QR code image
// @Description Render the QR code for a letter URL, composing the letter first when no url is given.
// @Description On rendering failure responds 502 with the letter URL so it can still be shared.
// @Tags Letters
// @Accept json
// @Produce png
// @Param request body QRRequest true "letter url or content"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} string "too many requests"
// @Failure 502 {object} ErrorResponse
// @Router /api/letters/qr [post]
func (h *LetterHandler) QR(c *fiber.Ctx) error {
	var req QRRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	letterURL := req.URL
	filename := "memorial-qr-message.png"
	if letterURL == "" {
		scheme, err := domain.ParseScheme(req.Scheme)
		if err != nil {
			return respondError(c, err)
		}
		res, err := h.Usecase.Compose(c.UserContext(), req.Input(), scheme)
		if err != nil {
			return respondError(c, err)
		}
		letterURL = res.LetterURL
		filename = res.Filename
	}

	img, err := h.Usecase.RenderQR(c.UserContext(), letterURL)
	if err != nil {
		if domain.IsKind(err, domain.KindRendering) {
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Kind:      domain.KindRendering,
				Error:     domain.UserMessage(err),
				LetterURL: letterURL,
			})
		}
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Set("X-QR-Provider", img.Provider)
	return c.Send(img.Data)
}

// Sample 范例信件
// @Summary Sample letter
// @Description The record shown by the "view sample message" button
// @Tags Letters
// @Produce json
// @Success 200 {object} domain.MessageRecord
// @Router /api/letters/sample [get]
func (h *LetterHandler) Sample(c *fiber.Ctx) error {
	return c.JSON(h.Usecase.Sample())
}

// Length 长度提示
// @Summary Classify message length
// @Description Advisory length class of a message, counted in characters
// @Tags Letters
// @Produce json
// @Param message query string false "message"
// @Success 200 {object} domain.LengthClass
// @Router /api/letters/length [get]
func (h *LetterHandler) Length(c *fiber.Ctx) error {
	return c.JSON(h.Usecase.ClassifyLength(c.Query("message")))
}

// StatusOf 錯誤種類對應的 HTTP status
func StatusOf(err error) int {
	kind, ok := domain.KindOf(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNoData:
		return fiber.StatusNotFound
	case domain.KindCorrupt:
		return fiber.StatusUnprocessableEntity
	case domain.KindRendering:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	kind, _ := domain.KindOf(err)

	var derr *domain.Error
	if !errors.As(err, &derr) {
		logger.Log.Error("letter handler", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(ErrorResponse{
		Kind:  kind,
		Error: domain.UserMessage(err),
	})
}
