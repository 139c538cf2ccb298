package entities

import (
	"errors"
	"time"
)

// Ошибки домена гостей.
var (
	ErrGuestNotFound      = errors.New("guest not found")
	ErrGuestEmailExists   = errors.New("guest with this email already exists")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email is not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Guest представляет учетную запись для аутентификации, отдельную от Contact.
type Guest struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	RefreshToken string
	Avatar       string
	Confirmed    bool
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
