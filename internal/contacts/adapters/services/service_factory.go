package services

import (
	"contactdir/internal/contacts/config"
	"contactdir/internal/contacts/ports/services"
)

// ServiceFactory создает сервисные адаптеры аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(jwtCfg *config.JWTConfig, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService: NewJWT(
			jwtCfg.SecretKey,
			jwtCfg.AccessTokenTTL,
			jwtCfg.RefreshTokenTTL,
			jwtCfg.EmailTokenTTL,
		),
	}
}

// PasswordService возвращает сервис паролей.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис токенов.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
