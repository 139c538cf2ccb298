package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/domain/services"
	"contactdir/internal/contacts/ports/api"
	"contactdir/internal/contacts/ports/repositories"
	svc "contactdir/internal/contacts/ports/services"
	"contactdir/pkg/logger"
)

const (
	methodSignup        = "Signup"
	methodLogin         = "Login"
	methodRefreshTokens = "RefreshTokens"
	methodLogout        = "Logout"
	methodConfirmEmail  = "ConfirmEmail"
	methodCurrentGuest  = "CurrentGuest"

	msgStartSignup         = "starting guest signup"
	msgGuestEmailExists    = "guest with this email already exists"
	msgGuestRegistered     = "guest registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgLoginUnconfirmed    = "login attempt with unconfirmed email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgGuestLoggedIn       = "guest logged in successfully"
	msgRefreshingTokens    = "refreshing tokens"
	msgStaleRefreshToken   = "refresh token does not match the stored one"
	msgTokensRefreshed     = "tokens refreshed successfully"
	msgProcessingLogout    = "processing logout request"
	msgGuestLoggedOut      = "guest logged out successfully"
	msgConfirmingEmail     = "confirming guest email"
	msgEmailConfirmed      = "guest email confirmed"
	msgResolvingGuest      = "resolving current guest"

	msgErrCheckExistingGuest = "failed to check existing guest"
	msgErrHashPassword       = "failed to hash password"
	msgErrCreateGuest        = "failed to create guest"
	msgErrGenerateTokens     = "failed to generate tokens"
	msgErrFindingGuest       = "error finding guest by email"
	msgErrVerifyingPassword  = "error verifying password"
	msgErrStoreRefreshToken  = "failed to store refresh token"
	msgErrConfirmEmail       = "failed to confirm email"

	errCtxValidatingUsername  = "validating username"
	errCtxCheckingGuest       = "checking existing guest"
	errCtxEmailRegistered     = "email already registered"
	errCtxHashingPassword     = "hashing password"
	errCtxCreatingGuest       = "creating guest"
	errCtxGeneratingTokens    = "generating tokens"
	errCtxInvalidCredentials  = "invalid credentials"
	errCtxUnconfirmedEmail    = "unconfirmed email"
	errCtxFindingGuest        = "finding guest"
	errCtxVerifyingPassword   = "verifying password"
	errCtxValidatingToken     = "validating token"
	errCtxStaleRefreshToken   = "stale refresh token"
	errCtxStoringRefreshToken = "storing refresh token"
	errCtxRevokingToken       = "revoking token"
	errCtxConfirmingEmail     = "confirming email"
)

// AuthUseCaseImpl реализует порт AuthUseCase.
type AuthUseCaseImpl struct {
	guestRepo   repositories.GuestRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	avatarURL   func(email string) string
}

// NewAuthUseCase создает новый use case аутентификации. defaultAvatar выводит
// начальный URL аватара из почты гостя при регистрации.
func NewAuthUseCase(
	guestRepo repositories.GuestRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	defaultAvatar func(email string) string,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		guestRepo:   guestRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		avatarURL:   defaultAvatar,
	}
}

// Signup регистрирует нового гостя с ролью по умолчанию и токеном
// подтверждения почты.
func (a *AuthUseCaseImpl) Signup(ctx context.Context, username, email, password string) (*entities.Guest, string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignup), zap.String("email", email))
	log.Debug(ctx, msgStartSignup)

	if !emailRegexp.MatchString(email) {
		return nil, "", fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrInvalidEmail)
	}
	if username == "" {
		return nil, "", fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}

	existing, err := a.guestRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrGuestNotFound) {
		log.Error(ctx, msgErrCheckExistingGuest, zap.Error(err))
		return nil, "", fmt.Errorf("%s: %w", errCtxCheckingGuest, err)
	}
	if existing != nil {
		log.Debug(ctx, msgGuestEmailExists)
		return nil, "", fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrGuestEmailExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Debug(ctx, msgErrHashPassword, zap.Error(err))
		return nil, "", fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	var avatar string
	if a.avatarURL != nil {
		avatar = a.avatarURL(email)
	}

	created, err := a.guestRepo.Create(ctx, &entities.Guest{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Avatar:       avatar,
		Role:         entities.RoleGuest,
	})
	if err != nil {
		if errors.Is(err, entities.ErrGuestEmailExists) {
			log.Debug(ctx, msgGuestEmailExists)
			return nil, "", fmt.Errorf("%s: %w", errCtxEmailRegistered, err)
		}
		log.Error(ctx, msgErrCreateGuest, zap.Error(err))
		return nil, "", fmt.Errorf("%s: %w", errCtxCreatingGuest, err)
	}

	confirmToken, err := a.tokenSvc.GenerateEmailToken(ctx, created.Email)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err))
		return nil, "", fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgGuestRegistered, zap.Int64("guestID", created.ID))
	return created, confirmToken, nil
}

// Login аутентифицирует гостя по почте и паролю. Неизвестная почта, неверный
// пароль и неподтвержденная почта отклоняются одинаково.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	guest, err := a.guestRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrGuestNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingGuest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingGuest, err)
	}

	if !guest.Confirmed {
		log.Debug(ctx, msgLoginUnconfirmed)
		return nil, fmt.Errorf("%s: %w", errCtxUnconfirmedEmail, entities.ErrEmailNotConfirmed)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, guest.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.Int64("guestID", guest.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.Int64("guestID", guest.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
	}

	tokenPair, err := a.generateTokenPair(ctx, guest)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.Int64("guestID", guest.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgGuestLoggedIn, zap.Int64("guestID", guest.ID))
	return tokenPair, nil
}

// RefreshTokens сверяет refresh-токен с сохраненным, ротирует его и выдает
// новую пару.
func (a *AuthUseCaseImpl) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefreshTokens))
	log.Debug(ctx, msgRefreshingTokens)

	claims, err := a.tokenSvc.ValidateToken(ctx, refreshToken, services.ScopeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
	}

	guest, err := a.guestRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, entities.ErrGuestNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
		}
		log.Error(ctx, msgErrFindingGuest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingGuest, err)
	}

	// Действительный, но уже не сохраненный токен был ротирован или
	// отозван; очищаем сохраненный, чтобы принудить к новому входу.
	if guest.RefreshToken != refreshToken {
		log.Debug(ctx, msgStaleRefreshToken, zap.Int64("guestID", guest.ID))
		if err := a.guestRepo.UpdateRefreshToken(ctx, guest.ID, ""); err != nil {
			log.Error(ctx, msgErrStoreRefreshToken, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxStaleRefreshToken, services.ErrInvalidRefreshToken)
	}

	tokenPair, err := a.generateTokenPair(ctx, guest)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.Int64("guestID", guest.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgTokensRefreshed, zap.Int64("guestID", guest.ID))
	return tokenPair, nil
}

// Logout очищает сохраненный refresh-токен. Идемпотентно.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))
	log.Debug(ctx, msgProcessingLogout)

	claims, err := a.tokenSvc.ValidateToken(ctx, refreshToken, services.ScopeRefresh)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
	}

	guest, err := a.guestRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, entities.ErrGuestNotFound) {
			return fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
		}
		log.Error(ctx, msgErrFindingGuest, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingGuest, err)
	}

	if err := a.guestRepo.UpdateRefreshToken(ctx, guest.ID, ""); err != nil {
		log.Error(ctx, msgErrStoreRefreshToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgGuestLoggedOut, zap.Int64("guestID", guest.ID))
	return nil
}

// ConfirmEmail проверяет токен подтверждения и помечает почту как
// подтвержденную. Повторное подтверждение - no-op.
func (a *AuthUseCaseImpl) ConfirmEmail(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodConfirmEmail))
	log.Debug(ctx, msgConfirmingEmail)

	claims, err := a.tokenSvc.ValidateToken(ctx, token, services.ScopeConfirmEmail)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
	}

	if err := a.guestRepo.ConfirmEmail(ctx, claims.Email); err != nil {
		if errors.Is(err, entities.ErrGuestNotFound) {
			return fmt.Errorf("%s: %w", errCtxConfirmingEmail, err)
		}
		log.Error(ctx, msgErrConfirmEmail, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxConfirmingEmail, err)
	}

	log.Info(ctx, msgEmailConfirmed, zap.String("email", claims.Email))
	return nil
}

// CurrentGuest возвращает гостя по действительному access-токену.
func (a *AuthUseCaseImpl) CurrentGuest(ctx context.Context, accessToken string) (*entities.Guest, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCurrentGuest))
	log.Debug(ctx, msgResolvingGuest)

	claims, err := a.tokenSvc.ValidateToken(ctx, accessToken, services.ScopeAccess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
	}

	guest, err := a.guestRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, entities.ErrGuestNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
		}
		log.Error(ctx, msgErrFindingGuest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingGuest, err)
	}

	return guest, nil
}

func (a *AuthUseCaseImpl) generateTokenPair(ctx context.Context, guest *entities.Guest) (*services.TokenPair, error) {
	accessToken, expiresAt, err := a.tokenSvc.GenerateAccessToken(ctx, guest.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, services.ErrTokenGenerationFailed)
	}

	refreshToken, _, err := a.tokenSvc.GenerateRefreshToken(ctx, guest.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, services.ErrTokenGenerationFailed)
	}

	if err := a.guestRepo.UpdateRefreshToken(ctx, guest.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxStoringRefreshToken, err)
	}

	return &services.TokenPair{
		GuestID:      guest.ID,
		Username:     guest.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
