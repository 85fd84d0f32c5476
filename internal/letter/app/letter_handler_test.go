package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"otodoke_life/internal/letter/domain"
	"otodoke_life/internal/qr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp(uc LetterUseCase) *fiber.App {
	h := NewLetterHandler(uc)
	app := fiber.New()
	app.Post("/api/letters", h.Compose)
	app.Post("/api/letters/decode", h.Decode)
	app.Post("/api/letters/qr", h.QR)
	app.Get("/api/letters/sample", h.Sample)
	app.Get("/api/letters/length", h.Length)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHandler_ComposeThenDecode(t *testing.T) {
	app := newTestApp(newTestUseCase(nil))

	resp := postJSON(t, app, "/api/letters", ComposeRequest{Message: "ありがとう", RecipientName: "お母さん", WriterName: "花子"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	res := decodeBody[ComposeResult](t, resp)
	assert.Equal(t, domain.SchemeCompact, res.Scheme)

	resp = postJSON(t, app, "/api/letters/decode", DecodeRequest{URL: res.LetterURL})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rec := decodeBody[domain.MessageRecord](t, resp)
	assert.Equal(t, "ありがとう", rec.Message)
	assert.Equal(t, "お母さん", rec.RecipientName)
	assert.Equal(t, "花子", rec.WriterName)
}

func TestHandler_ComposeValidation(t *testing.T) {
	app := newTestApp(newTestUseCase(nil))

	resp := postJSON(t, app, "/api/letters", ComposeRequest{Message: "   "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, domain.KindValidation, body.Kind)
	assert.Equal(t, "メッセージを入力してください", body.Error)

	resp = postJSON(t, app, "/api/letters", ComposeRequest{Message: "hi", Scheme: "base32"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandler_DecodeErrors(t *testing.T) {
	app := newTestApp(newTestUseCase(nil))

	resp := postJSON(t, app, "/api/letters/decode", DecodeRequest{Fragment: "#"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, domain.KindNoData, decodeBody[ErrorResponse](t, resp).Kind)

	resp = postJSON(t, app, "/api/letters/decode", DecodeRequest{Fragment: "#data=@@@"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, domain.KindCorrupt, body.Kind)
	// 不可把內部細節回給使用者
	assert.NotContains(t, body.Error, "base64")
}

func TestHandler_QRFromContent(t *testing.T) {
	renderer := new(MockQRRenderer)
	renderer.On("Render", mock.Anything, mock.Anything).
		Return(&qr.Image{Data: []byte("png-bytes"), ContentType: "image/png", Provider: "qrserver"}, nil)
	app := newTestApp(newTestUseCase(renderer))

	resp := postJSON(t, app, "/api/letters/qr", QRRequest{ComposeRequest: ComposeRequest{Message: "hi", RecipientName: "太郎"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "qrserver", resp.Header.Get("X-QR-Provider"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), url.PathEscape("memorial-qr-太郎.png"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestHandler_QRRenderingFailure(t *testing.T) {
	renderer := new(MockQRRenderer)
	renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("all down"))
	app := newTestApp(newTestUseCase(renderer))

	letterURL := baseURL + "/letter#NoIgLgdg"
	resp := postJSON(t, app, "/api/letters/qr", QRRequest{URL: letterURL})
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, domain.KindRendering, body.Kind)
	assert.Equal(t, letterURL, body.LetterURL)
}

func TestHandler_QRTooLong(t *testing.T) {
	renderer := new(MockQRRenderer)
	app := newTestApp(newTestUseCase(renderer))

	resp := postJSON(t, app, "/api/letters/qr", QRRequest{ComposeRequest: ComposeRequest{Message: strings.Repeat("a", 6000)}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestHandler_SampleAndLength(t *testing.T) {
	uc := new(MockLetterUseCase)
	uc.On("Sample").Return(domain.SampleRecord())
	uc.On("ClassifyLength", "abc").Return(domain.ClassifyLength("abc"))
	app := newTestApp(uc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/letters/sample", nil))
	require.NoError(t, err)
	assert.Equal(t, "sample", decodeBody[domain.MessageRecord](t, resp).ID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/letters/length?message=abc", nil))
	require.NoError(t, err)
	class := decodeBody[domain.LengthClass](t, resp)
	assert.Equal(t, domain.LengthShort, class.Status)
	assert.Equal(t, 3, class.Length)
	uc.AssertExpectations(t)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, StatusOf(domain.NewValidationError("x")))
	assert.Equal(t, fiber.StatusNotFound, StatusOf(domain.NewNoDataError()))
	assert.Equal(t, fiber.StatusUnprocessableEntity, StatusOf(domain.NewCorruptError(domain.SchemeCompact, "x", nil)))
	assert.Equal(t, fiber.StatusBadGateway, StatusOf(domain.NewRenderingError("x", nil)))
	assert.Equal(t, fiber.StatusInternalServerError, StatusOf(errors.New("plain")))
}
