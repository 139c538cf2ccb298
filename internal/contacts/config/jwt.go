package config

import "time"

// JWTConfig представляет конфигурацию сервиса токенов.
type JWTConfig struct {
	SecretKey       string        `yaml:"secret_key" env:"CONTACTS_JWT_SECRET_KEY" env-required:"true"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"CONTACTS_JWT_ACCESS_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"CONTACTS_JWT_REFRESH_TTL" env-default:"168h"`
	EmailTokenTTL   time.Duration `yaml:"email_token_ttl" env:"CONTACTS_JWT_EMAIL_TTL" env-default:"72h"`
}
