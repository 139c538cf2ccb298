package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"contactdir/internal/contacts/app"
	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/domain/services"
)

var errTokenSigning = errors.New("token signing error")

func testAvatarURL(email string) string {
	return "https://avatars.example.com/" + email
}

func TestSignup(t *testing.T) {
	email := "new@example.com"
	username := "newguest"
	password := "password123"
	hashed := "$2a$12$hash"

	created := &entities.Guest{
		ID:           1,
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Avatar:       testAvatarURL(email),
		Role:         entities.RoleGuest,
	}

	tests := []struct {
		name        string
		username    string
		email       string
		setupMocks  func(repo *mockGuestRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService)
		expectedErr error
	}{
		{
			name:     "success - guest registered with default avatar",
			username: username,
			email:    email,
			setupMocks: func(repo *mockGuestRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, email).
					Return(nil, entities.ErrGuestNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, password).Return(hashed, nil).Once()
				repo.On("Create", mock.Anything, mock.MatchedBy(func(g *entities.Guest) bool {
					return g.Email == email && g.Role == entities.RoleGuest && g.Avatar == testAvatarURL(email)
				})).Return(created, nil).Once()
				tokenSvc.On("GenerateEmailToken", mock.Anything, email).
					Return("confirm-token", nil).Once()
			},
		},
		{
			name:     "error - email already registered",
			username: username,
			email:    email,
			setupMocks: func(repo *mockGuestRepository, _ *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, email).Return(created, nil).Once()
			},
			expectedErr: entities.ErrGuestEmailExists,
		},
		{
			name:        "error - invalid email",
			username:    username,
			email:       "broken-email",
			setupMocks:  func(_ *mockGuestRepository, _ *mockPasswordService, _ *mockTokenService) {},
			expectedErr: entities.ErrInvalidEmail,
		},
		{
			name:        "error - empty username",
			username:    "",
			email:       email,
			setupMocks:  func(_ *mockGuestRepository, _ *mockPasswordService, _ *mockTokenService) {},
			expectedErr: entities.ErrEmptyUsername,
		},
		{
			name:     "error - email conflict raced at insert",
			username: username,
			email:    email,
			setupMocks: func(repo *mockGuestRepository, passwordSvc *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, email).
					Return(nil, entities.ErrGuestNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, password).Return(hashed, nil).Once()
				repo.On("Create", mock.Anything, mock.Anything).
					Return(nil, entities.ErrGuestEmailExists).Once()
			},
			expectedErr: entities.ErrGuestEmailExists,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			repo := new(mockGuestRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)
			ttt.setupMocks(repo, passwordSvc, tokenSvc)

			useCase := app.NewAuthUseCase(repo, passwordSvc, tokenSvc, testAvatarURL)
			guest, confirmToken, err := useCase.Signup(context.Background(), ttt.username, ttt.email, password)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, guest)
				assert.Empty(t, confirmToken)
			} else {
				require.NoError(t, err)
				assert.Equal(t, created, guest)
				assert.Equal(t, "confirm-token", confirmToken)
			}
			repo.AssertExpectations(t)
			passwordSvc.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	email := "guest@example.com"
	password := "password123"
	hashed := "$2a$12$hash"
	expiresAt := time.Now().Add(15 * time.Minute)

	confirmed := &entities.Guest{
		ID:           2,
		Username:     "guest",
		Email:        email,
		PasswordHash: hashed,
		Confirmed:    true,
		Role:         entities.RoleGuest,
	}
	unconfirmed := &entities.Guest{
		ID:           3,
		Email:        email,
		PasswordHash: hashed,
		Confirmed:    false,
	}

	tests := []struct {
		name        string
		setupMocks  func(repo *mockGuestRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService)
		expectedErr error
	}{
		{
			name: "success - confirmed guest logged in",
			setupMocks: func(repo *mockGuestRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, email).Return(confirmed, nil).Once()
				passwordSvc.On("Verify", mock.Anything, password, hashed).Return(true, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, email).
					Return("access-token", expiresAt, nil).Once()
				tokenSvc.On("GenerateRefreshToken", mock.Anything, email).
					Return("refresh-token", expiresAt.Add(7*24*time.Hour), nil).Once()
				repo.On("UpdateRefreshToken", mock.Anything, confirmed.ID, "refresh-token").
					Return(nil).Once()
			},
		},
		{
			name: "error - unknown email maps to invalid credentials",
			setupMocks: func(repo *mockGuestRepository, _ *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, email).
					Return(nil, entities.ErrGuestNotFound).Once()
			},
			expectedErr: entities.ErrInvalidCredentials,
		},
		{
			name: "error - unconfirmed email",
			setupMocks: func(repo *mockGuestRepository, _ *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, email).Return(unconfirmed, nil).Once()
			},
			expectedErr: entities.ErrEmailNotConfirmed,
		},
		{
			name: "error - wrong password",
			setupMocks: func(repo *mockGuestRepository, passwordSvc *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, email).Return(confirmed, nil).Once()
				passwordSvc.On("Verify", mock.Anything, password, hashed).Return(false, nil).Once()
			},
			expectedErr: entities.ErrInvalidCredentials,
		},
		{
			name: "error - token generation fails",
			setupMocks: func(repo *mockGuestRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, email).Return(confirmed, nil).Once()
				passwordSvc.On("Verify", mock.Anything, password, hashed).Return(true, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, email).
					Return("", time.Time{}, errTokenSigning).Once()
			},
			expectedErr: services.ErrTokenGenerationFailed,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			repo := new(mockGuestRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)
			ttt.setupMocks(repo, passwordSvc, tokenSvc)

			useCase := app.NewAuthUseCase(repo, passwordSvc, tokenSvc, testAvatarURL)
			pair, err := useCase.Login(context.Background(), email, password)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, pair)
				assert.Equal(t, confirmed.ID, pair.GuestID)
				assert.Equal(t, "access-token", pair.AccessToken)
				assert.Equal(t, "refresh-token", pair.RefreshToken)
				assert.Equal(t, expiresAt, pair.ExpiresAt)
			}
			repo.AssertExpectations(t)
			passwordSvc.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
		})
	}
}

func TestRefreshTokens(t *testing.T) {
	email := "guest@example.com"
	storedToken := "stored-refresh-token"
	expiresAt := time.Now().Add(15 * time.Minute)

	guest := &entities.Guest{
		ID:           4,
		Username:     "guest",
		Email:        email,
		RefreshToken: storedToken,
		Confirmed:    true,
	}
	claims := &services.JWTClaims{Email: email, Scope: services.ScopeRefresh}

	t.Run("success - tokens rotated", func(t *testing.T) {
		repo := new(mockGuestRepository)
		tokenSvc := new(mockTokenService)
		tokenSvc.On("ValidateToken", mock.Anything, storedToken, services.ScopeRefresh).
			Return(claims, nil).Once()
		repo.On("FindByEmail", mock.Anything, email).Return(guest, nil).Once()
		tokenSvc.On("GenerateAccessToken", mock.Anything, email).
			Return("new-access", expiresAt, nil).Once()
		tokenSvc.On("GenerateRefreshToken", mock.Anything, email).
			Return("new-refresh", expiresAt.Add(7*24*time.Hour), nil).Once()
		repo.On("UpdateRefreshToken", mock.Anything, guest.ID, "new-refresh").Return(nil).Once()

		useCase := app.NewAuthUseCase(repo, new(mockPasswordService), tokenSvc, testAvatarURL)
		pair, err := useCase.RefreshTokens(context.Background(), storedToken)

		require.NoError(t, err)
		require.NotNil(t, pair)
		assert.Equal(t, "new-access", pair.AccessToken)
		assert.Equal(t, "new-refresh", pair.RefreshToken)
		repo.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})

	t.Run("error - stale token clears the stored one", func(t *testing.T) {
		staleClaims := &services.JWTClaims{Email: email, Scope: services.ScopeRefresh}

		repo := new(mockGuestRepository)
		tokenSvc := new(mockTokenService)
		tokenSvc.On("ValidateToken", mock.Anything, "stale-token", services.ScopeRefresh).
			Return(staleClaims, nil).Once()
		repo.On("FindByEmail", mock.Anything, email).Return(guest, nil).Once()
		repo.On("UpdateRefreshToken", mock.Anything, guest.ID, "").Return(nil).Once()

		useCase := app.NewAuthUseCase(repo, new(mockPasswordService), tokenSvc, testAvatarURL)
		pair, err := useCase.RefreshTokens(context.Background(), "stale-token")

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
		assert.Nil(t, pair)
		repo.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})

	t.Run("error - invalid token", func(t *testing.T) {
		repo := new(mockGuestRepository)
		tokenSvc := new(mockTokenService)
		tokenSvc.On("ValidateToken", mock.Anything, "garbage", services.ScopeRefresh).
			Return(nil, services.ErrInvalidJWTToken).Once()

		useCase := app.NewAuthUseCase(repo, new(mockPasswordService), tokenSvc, testAvatarURL)
		_, err := useCase.RefreshTokens(context.Background(), "garbage")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidToken)
		tokenSvc.AssertExpectations(t)
	})
}

func TestLogout(t *testing.T) {
	email := "guest@example.com"
	guest := &entities.Guest{ID: 5, Email: email, RefreshToken: "refresh-token"}
	claims := &services.JWTClaims{Email: email, Scope: services.ScopeRefresh}

	t.Run("success - stored token cleared", func(t *testing.T) {
		repo := new(mockGuestRepository)
		tokenSvc := new(mockTokenService)
		tokenSvc.On("ValidateToken", mock.Anything, "refresh-token", services.ScopeRefresh).
			Return(claims, nil).Once()
		repo.On("FindByEmail", mock.Anything, email).Return(guest, nil).Once()
		repo.On("UpdateRefreshToken", mock.Anything, guest.ID, "").Return(nil).Once()

		useCase := app.NewAuthUseCase(repo, new(mockPasswordService), tokenSvc, testAvatarURL)
		err := useCase.Logout(context.Background(), "refresh-token")

		require.NoError(t, err)
		repo.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})

	t.Run("error - invalid token", func(t *testing.T) {
		tokenSvc := new(mockTokenService)
		tokenSvc.On("ValidateToken", mock.Anything, "garbage", services.ScopeRefresh).
			Return(nil, services.ErrInvalidJWTToken).Once()

		useCase := app.NewAuthUseCase(new(mockGuestRepository), new(mockPasswordService), tokenSvc, testAvatarURL)
		err := useCase.Logout(context.Background(), "garbage")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidToken)
		tokenSvc.AssertExpectations(t)
	})
}

func TestConfirmEmail(t *testing.T) {
	email := "guest@example.com"
	claims := &services.JWTClaims{Email: email, Scope: services.ScopeConfirmEmail}

	t.Run("success - email confirmed", func(t *testing.T) {
		repo := new(mockGuestRepository)
		tokenSvc := new(mockTokenService)
		tokenSvc.On("ValidateToken", mock.Anything, "confirm-token", services.ScopeConfirmEmail).
			Return(claims, nil).Once()
		repo.On("ConfirmEmail", mock.Anything, email).Return(nil).Once()

		useCase := app.NewAuthUseCase(repo, new(mockPasswordService), tokenSvc, testAvatarURL)
		err := useCase.ConfirmEmail(context.Background(), "confirm-token")

		require.NoError(t, err)
		repo.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})

	t.Run("error - wrong scope token", func(t *testing.T) {
		tokenSvc := new(mockTokenService)
		tokenSvc.On("ValidateToken", mock.Anything, "access-token", services.ScopeConfirmEmail).
			Return(nil, services.ErrInvalidJWTToken).Once()

		useCase := app.NewAuthUseCase(new(mockGuestRepository), new(mockPasswordService), tokenSvc, testAvatarURL)
		err := useCase.ConfirmEmail(context.Background(), "access-token")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidToken)
		tokenSvc.AssertExpectations(t)
	})
}

func TestCurrentGuest(t *testing.T) {
	email := "guest@example.com"
	guest := &entities.Guest{ID: 6, Email: email, Confirmed: true}
	claims := &services.JWTClaims{Email: email, Scope: services.ScopeAccess}

	t.Run("success - guest resolved from access token", func(t *testing.T) {
		repo := new(mockGuestRepository)
		tokenSvc := new(mockTokenService)
		tokenSvc.On("ValidateToken", mock.Anything, "access-token", services.ScopeAccess).
			Return(claims, nil).Once()
		repo.On("FindByEmail", mock.Anything, email).Return(guest, nil).Once()

		useCase := app.NewAuthUseCase(repo, new(mockPasswordService), tokenSvc, testAvatarURL)
		resolved, err := useCase.CurrentGuest(context.Background(), "access-token")

		require.NoError(t, err)
		assert.Equal(t, guest, resolved)
		repo.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})

	t.Run("error - guest behind token no longer exists", func(t *testing.T) {
		repo := new(mockGuestRepository)
		tokenSvc := new(mockTokenService)
		tokenSvc.On("ValidateToken", mock.Anything, "access-token", services.ScopeAccess).
			Return(claims, nil).Once()
		repo.On("FindByEmail", mock.Anything, email).
			Return(nil, entities.ErrGuestNotFound).Once()

		useCase := app.NewAuthUseCase(repo, new(mockPasswordService), tokenSvc, testAvatarURL)
		_, err := useCase.CurrentGuest(context.Background(), "access-token")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidToken)
		repo.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})
}
