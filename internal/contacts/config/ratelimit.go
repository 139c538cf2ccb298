package config

import "time"

// RateLimitConfig представляет политику limiter-а с фиксированным окном для маршрутов /users.
type RateLimitConfig struct {
	Requests int           `yaml:"requests" env:"CONTACTS_RATE_LIMIT_REQUESTS" env-default:"2"`
	Window   time.Duration `yaml:"window" env:"CONTACTS_RATE_LIMIT_WINDOW" env-default:"5s"`
}
