package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"otodoke_life/internal/letter/codec"
	"otodoke_life/internal/letter/domain"
	"otodoke_life/internal/qr"
	"otodoke_life/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://otodokelife.com"

func init() {
	logger.SetNewNop()
}

func newTestUseCase(renderer QRRenderer) LetterUseCase {
	return NewLetterUseCase(codec.Default, renderer, baseURL+"/", domain.SchemeCompact)
}

func TestCompose_DefaultScheme(t *testing.T) {
	uc := newTestUseCase(nil)

	res, err := uc.Compose(context.Background(), domain.ComposerInput{Message: " ありがとう ", RecipientName: "お母さん"}, "")
	require.NoError(t, err)

	assert.Equal(t, domain.SchemeCompact, res.Scheme)
	assert.Equal(t, baseURL+"/letter#"+res.Fragment, res.LetterURL)
	assert.Equal(t, domain.LengthShort, res.Length.Status)
	assert.Equal(t, 5, res.Length.Length)
	assert.Equal(t, "memorial-qr-お母さん.png", res.Filename)
	assert.Equal(t, domain.SchemeCompact, codec.Identify(res.Fragment))
}

func TestCompose_LegacyScheme(t *testing.T) {
	uc := newTestUseCase(nil)

	res, err := uc.Compose(context.Background(), domain.ComposerInput{Message: "hi"}, domain.SchemeLegacy)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Fragment, codec.LegacyMarker))

	rec, err := uc.Decode(context.Background(), res.LetterURL[strings.Index(res.LetterURL, "#"):])
	require.NoError(t, err)
	assert.Equal(t, "hi", rec.Message)
	assert.Equal(t, domain.DefaultRecipientName, rec.RecipientName)
}

// 6000 字的訊息必須在呼叫 QR 服務前就被拒絕
func TestComposeQR_TooLongNeverRenders(t *testing.T) {
	renderer := new(MockQRRenderer)
	uc := newTestUseCase(renderer)

	res, img, err := uc.ComposeQR(context.Background(), domain.ComposerInput{Message: strings.Repeat("a", 6000)}, "")
	assert.Nil(t, res)
	assert.Nil(t, img)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestComposeQR_Success(t *testing.T) {
	renderer := new(MockQRRenderer)
	uc := newTestUseCase(renderer)
	want := &qr.Image{Data: []byte("png"), ContentType: "image/png", Provider: "qrserver"}

	renderer.On("Render", mock.Anything, mock.MatchedBy(func(u string) bool {
		return strings.HasPrefix(u, baseURL+"/letter#")
	})).Return(want, nil).Once()

	res, img, err := uc.ComposeQR(context.Background(), domain.ComposerInput{Message: "hello: world, goodbye"}, "")
	require.NoError(t, err)
	assert.Equal(t, want, img)
	assert.NotEmpty(t, res.LetterURL)
	renderer.AssertExpectations(t)
}

func TestComposeQR_RenderingFailureKeepsURL(t *testing.T) {
	renderer := new(MockQRRenderer)
	uc := newTestUseCase(renderer)
	renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("qrserver down"))

	res, img, err := uc.ComposeQR(context.Background(), domain.ComposerInput{Message: "hello"}, "")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindRendering))
	assert.Nil(t, img)
	require.NotNil(t, res)
	assert.Contains(t, res.LetterURL, "/letter#")
}

func TestRenderQR_RejectsForeignURL(t *testing.T) {
	renderer := new(MockQRRenderer)
	uc := newTestUseCase(renderer)

	for _, u := range []string{"", "https://evil.example/letter#abc", baseURL + "/letter#", baseURL + "/about"} {
		_, err := uc.RenderQR(context.Background(), u)
		assert.True(t, domain.IsKind(err, domain.KindValidation), u)
	}
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestRenderQR_NoRenderer(t *testing.T) {
	uc := newTestUseCase(nil)
	_, err := uc.RenderQR(context.Background(), baseURL+"/letter#abc")
	assert.True(t, domain.IsKind(err, domain.KindRendering))
}

func TestDecode_Kinds(t *testing.T) {
	uc := newTestUseCase(nil)

	_, err := uc.Decode(context.Background(), "")
	assert.True(t, domain.IsKind(err, domain.KindNoData))

	_, err = uc.Decode(context.Background(), "#data=!!!")
	assert.True(t, domain.IsKind(err, domain.KindCorrupt))
}

func TestSampleAndClassify(t *testing.T) {
	uc := newTestUseCase(nil)
	assert.Equal(t, domain.SampleRecord(), uc.Sample())
	assert.Equal(t, domain.LengthMedium, uc.ClassifyLength(strings.Repeat("あ", 300)).Status)
}
