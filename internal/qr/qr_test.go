package qr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"otodoke_life/internal/letter/domain"
	"otodoke_life/pkg/config"
	"otodoke_life/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

func init() {
	logger.SetNewNop()
}

const letterURL = "https://otodokelife.com/letter#NoIgLgdgpg"

func TestQRServer_PostsForm(t *testing.T) {
	var got http.Header
	var form map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		form = map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	defer srv.Close()

	r := NewQRServer(NewClient(), config.QRProviderConfig{Endpoint: srv.URL, Size: 300, ECC: "M", Margin: 10, Timeout: time.Second})
	img, err := r.Render(context.Background(), letterURL)
	require.NoError(t, err)

	assert.Equal(t, pngBytes, img.Data)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "qrserver", img.Provider)
	assert.Equal(t, "application/x-www-form-urlencoded", got.Get("Content-Type"))
	assert.Equal(t, letterURL, form["data"])
	assert.Equal(t, "300x300", form["size"])
	assert.Equal(t, "M", form["ecc"])
	assert.Equal(t, "10", form["margin"])
	assert.Equal(t, "png", form["format"])
}

func TestQRickit_GetQuery(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	defer srv.Close()

	r := NewQRickit(NewClient(), config.QRProviderConfig{Endpoint: srv.URL, Size: 250, ECC: "L", MaxURLLength: 4000, Timeout: time.Second})
	img, err := r.Render(context.Background(), letterURL)
	require.NoError(t, err)

	assert.Equal(t, "qrickit", img.Provider)
	assert.Equal(t, letterURL, query["d"])
	assert.Equal(t, "250", query["qrsize"])
	assert.Equal(t, "L", query["e"])
	assert.Equal(t, "p", query["t"])
}

func TestQRickit_URLTooLong(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	r := NewQRickit(NewClient(), config.QRProviderConfig{Endpoint: srv.URL, MaxURLLength: 10, Timeout: time.Second})
	_, err := r.Render(context.Background(), letterURL)
	assert.ErrorIs(t, err, ErrURLTooLong)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestRender_NonImageAndStatus(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"html body": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>rate limited</html>"))
		},
		"empty image": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
		},
	}

	for name, h := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			r := NewQRServer(NewClient(), config.QRProviderConfig{Endpoint: srv.URL, Size: 300, Timeout: time.Second})
			img, err := r.Render(context.Background(), letterURL)
			assert.Nil(t, img)
			assert.Error(t, err)
		})
	}
}

func TestRender_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	defer srv.Close()

	r := NewQRServer(NewClient(), config.QRProviderConfig{Endpoint: srv.URL, Size: 300, Timeout: 50 * time.Millisecond})
	_, err := r.Render(context.Background(), letterURL)
	assert.Error(t, err)
}

// MockRenderer Mock Renderer
type MockRenderer struct {
	mock.Mock
	name string
}

func (m *MockRenderer) Name() string {
	return m.name
}

func (m *MockRenderer) Render(ctx context.Context, url string) (*Image, error) {
	args := m.Called(ctx, url)
	if args.Get(0) != nil {
		return args.Get(0).(*Image), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestChain_FallsBackToSecondary(t *testing.T) {
	primary := &MockRenderer{name: "primary"}
	secondary := &MockRenderer{name: "secondary"}
	want := &Image{Data: pngBytes, ContentType: "image/png", Provider: "secondary"}

	primary.On("Render", mock.Anything, letterURL).Return(nil, errors.New("boom"))
	secondary.On("Render", mock.Anything, letterURL).Return(want, nil)

	img, err := NewChain(primary, secondary).Render(context.Background(), letterURL)
	require.NoError(t, err)
	assert.Equal(t, want, img)
	primary.AssertExpectations(t)
	secondary.AssertExpectations(t)
}

func TestChain_StopsAtFirstSuccess(t *testing.T) {
	primary := &MockRenderer{name: "primary"}
	secondary := &MockRenderer{name: "secondary"}
	primary.On("Render", mock.Anything, letterURL).Return(&Image{Data: pngBytes, ContentType: "image/png"}, nil)

	_, err := NewChain(primary, secondary).Render(context.Background(), letterURL)
	require.NoError(t, err)
	secondary.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestChain_AllFail(t *testing.T) {
	primary := &MockRenderer{name: "primary"}
	secondary := &MockRenderer{name: "secondary"}
	primary.On("Render", mock.Anything, letterURL).Return(nil, errors.New("primary down"))
	secondary.On("Render", mock.Anything, letterURL).Return(nil, ErrURLTooLong)

	img, err := NewChain(primary, secondary).Render(context.Background(), letterURL)
	assert.Nil(t, img)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindRendering))
	assert.ErrorIs(t, err, ErrURLTooLong)
	assert.Contains(t, err.Error(), "primary down")
}

func TestChain_CancelledContext(t *testing.T) {
	primary := &MockRenderer{name: "primary"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChain(primary).Render(ctx, letterURL)
	assert.True(t, domain.IsKind(err, domain.KindRendering))
	assert.ErrorIs(t, err, context.Canceled)
	primary.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestNewFromConfig(t *testing.T) {
	chain, err := NewFromConfig(NewClient(), config.DefaultQRProviders())
	require.NoError(t, err)
	assert.Equal(t, []string{"qrserver", "qrickit"}, chain.Providers())

	_, err = NewFromConfig(NewClient(), []config.QRProviderConfig{{Name: "zxing"}})
	assert.Error(t, err)

	_, err = NewFromConfig(NewClient(), nil)
	assert.Error(t, err)
}

func TestImageHelpers(t *testing.T) {
	img := &Image{Data: []byte("abc"), ContentType: "image/png"}
	assert.Equal(t, "data:image/png;base64,YWJj", img.DataURI())

	assert.Equal(t, "memorial-qr-message.png", DownloadFilename("  "))
	assert.Equal(t, "memorial-qr-花子.png", DownloadFilename("花子"))
	assert.False(t, strings.ContainsAny(DownloadFilename(`a/b\c:d`), `/\:`))
}
