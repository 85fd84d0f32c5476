package app

import (
	"context"

	"otodoke_life/internal/letter/domain"
	"otodoke_life/internal/qr"

	"github.com/stretchr/testify/mock"
)

// MockQRRenderer Mock QRRenderer
type MockQRRenderer struct {
	mock.Mock
}

// Render moke render qr
func (m *MockQRRenderer) Render(ctx context.Context, url string) (*qr.Image, error) {
	args := m.Called(ctx, url)
	if args.Get(0) != nil {
		return args.Get(0).(*qr.Image), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockLetterUseCase Mock LetterUseCase
type MockLetterUseCase struct {
	mock.Mock
}

func (m *MockLetterUseCase) Compose(ctx context.Context, in domain.ComposerInput, scheme domain.Scheme) (*ComposeResult, error) {
	args := m.Called(ctx, in, scheme)
	if args.Get(0) != nil {
		return args.Get(0).(*ComposeResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLetterUseCase) ComposeQR(ctx context.Context, in domain.ComposerInput, scheme domain.Scheme) (*ComposeResult, *qr.Image, error) {
	args := m.Called(ctx, in, scheme)
	var (
		res *ComposeResult
		img *qr.Image
	)
	if args.Get(0) != nil {
		res = args.Get(0).(*ComposeResult)
	}
	if args.Get(1) != nil {
		img = args.Get(1).(*qr.Image)
	}
	return res, img, args.Error(2)
}

func (m *MockLetterUseCase) Decode(ctx context.Context, fragment string) (*domain.MessageRecord, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.MessageRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLetterUseCase) RenderQR(ctx context.Context, letterURL string) (*qr.Image, error) {
	args := m.Called(ctx, letterURL)
	if args.Get(0) != nil {
		return args.Get(0).(*qr.Image), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLetterUseCase) Sample() domain.MessageRecord {
	args := m.Called()
	return args.Get(0).(domain.MessageRecord)
}

func (m *MockLetterUseCase) ClassifyLength(message string) domain.LengthClass {
	args := m.Called(message)
	return args.Get(0).(domain.LengthClass)
}
