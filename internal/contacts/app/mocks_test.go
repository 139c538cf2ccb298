package app_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/domain/services"
)

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) FindAll(ctx context.Context) ([]*entities.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Contact), args.Error(1)
}

func (m *mockContactRepository) FindByID(ctx context.Context, id int64) (*entities.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contact), args.Error(1)
}

func (m *mockContactRepository) FindBy(ctx context.Context, field entities.SearchField, value string) (*entities.Contact, error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contact), args.Error(1)
}

func (m *mockContactRepository) Create(ctx context.Context, contact *entities.Contact) (*entities.Contact, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contact), args.Error(1)
}

func (m *mockContactRepository) Update(ctx context.Context, contact *entities.Contact) (*entities.Contact, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contact), args.Error(1)
}

func (m *mockContactRepository) Delete(ctx context.Context, id int64) (*entities.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contact), args.Error(1)
}

type mockGuestRepository struct {
	mock.Mock
}

func (m *mockGuestRepository) FindByID(ctx context.Context, id int64) (*entities.Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Guest), args.Error(1)
}

func (m *mockGuestRepository) FindByEmail(ctx context.Context, email string) (*entities.Guest, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Guest), args.Error(1)
}

func (m *mockGuestRepository) Create(ctx context.Context, guest *entities.Guest) (*entities.Guest, error) {
	args := m.Called(ctx, guest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Guest), args.Error(1)
}

func (m *mockGuestRepository) UpdateRefreshToken(ctx context.Context, guestID int64, refreshToken string) error {
	args := m.Called(ctx, guestID, refreshToken)
	return args.Error(0)
}

func (m *mockGuestRepository) UpdateAvatar(ctx context.Context, email, avatarURL string) (*entities.Guest, error) {
	args := m.Called(ctx, email, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Guest), args.Error(1)
}

func (m *mockGuestRepository) ConfirmEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, email string) (string, time.Time, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) GenerateRefreshToken(ctx context.Context, email string) (string, time.Time, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) GenerateEmailToken(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, token, scope string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JWTClaims), args.Error(1)
}

type mockMediaService struct {
	mock.Mock
}

func (m *mockMediaService) UploadAvatar(ctx context.Context, email string, file io.Reader) (string, error) {
	args := m.Called(ctx, email, file)
	return args.String(0), args.Error(1)
}
