// Package services реализует исходящие порты сервисов: JWT токены,
// хеширование паролей bcrypt и загрузку медиа в Cloudinary.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"contactdir/internal/contacts/domain/services"
	svc "contactdir/internal/contacts/ports/services"
	"contactdir/pkg/logger"
)

const (
	methodGenerateAccessToken  = "GenerateAccessToken"
	methodGenerateRefreshToken = "GenerateRefreshToken"
	methodGenerateEmailToken   = "GenerateEmailToken"
	methodValidateToken        = "ValidateToken"

	msgGeneratingToken = "generating token"
	msgValidatingToken = "validating token"
	msgTokenGenerated  = "token generated successfully"
	msgTokenExpired    = "token has expired"
	msgWrongScope      = "token has wrong scope"

	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
)

// ErrInvalidAlgorithm возвращается, когда токен подписан неожиданным
// алгоритмом.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims адаптирует доменные claims к формату библиотеки JWT.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует порт TokenService.
type ServiceJWT struct {
	config        services.JWTConfig
	emailTokenTTL time.Duration
}

// NewJWT создает новый сервис JWT токенов.
func NewJWT(secretKey string, accessTokenTTL, refreshTokenTTL, emailTokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:       []byte(secretKey),
			AccessTokenTTL:  accessTokenTTL,
			RefreshTokenTTL: refreshTokenTTL,
		},
		emailTokenTTL: emailTokenTTL,
	}
}

func (s *ServiceJWT) generate(ctx context.Context, email, scope string, ttl time.Duration, method string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", method),
		zap.String("email", email),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, "error signing token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	log.Debug(ctx, msgTokenGenerated)
	return signed, expiresAt, nil
}

// GenerateAccessToken выдает короткоживущий access-токен для почты гостя.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, email string) (string, time.Time, error) {
	return s.generate(ctx, email, services.ScopeAccess, s.config.AccessTokenTTL, methodGenerateAccessToken)
}

// GenerateRefreshToken выдает долгоживущий refresh-токен для почты гостя.
func (s *ServiceJWT) GenerateRefreshToken(ctx context.Context, email string) (string, time.Time, error) {
	return s.generate(ctx, email, services.ScopeRefresh, s.config.RefreshTokenTTL, methodGenerateRefreshToken)
}

// GenerateEmailToken выдает токен, встраиваемый в ссылку подтверждения.
func (s *ServiceJWT) GenerateEmailToken(ctx context.Context, email string) (string, error) {
	token, _, err := s.generate(ctx, email, services.ScopeConfirmEmail, s.emailTokenTTL, methodGenerateEmailToken)
	return token, err
}

// ValidateToken разбирает токен и проверяет подпись, срок действия и scope.
func (s *ServiceJWT) ValidateToken(ctx context.Context, tokenString, scope string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, "invalid token", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrInvalidJWTToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrInvalidJWTToken)
	}

	if claims.Scope != scope {
		log.Debug(ctx, msgWrongScope, zap.String("scope", claims.Scope))
		return nil, fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrInvalidJWTToken)
	}

	domainClaims := &services.JWTClaims{
		Email: claims.Subject,
		Scope: claims.Scope,
	}
	if claims.IssuedAt != nil {
		domainClaims.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		domainClaims.ExpiresAt = claims.ExpiresAt.Time
	}

	return domainClaims, nil
}
