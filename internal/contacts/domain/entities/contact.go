// Package entities содержит основные доменные сущности справочника контактов.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена контактов.
var (
	ErrContactNotFound    = errors.New("contact not found")
	ErrEmailAlreadyExists = errors.New("contact with this email already exists")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidFirstName   = errors.New("first name must be between 1 and 50 characters")
	ErrInvalidLastName    = errors.New("last name must be between 2 and 50 characters")
	ErrInvalidPhone       = errors.New("phone must be between 10 and 15 characters")
	ErrInvalidInfo        = errors.New("additional info must be between 1 and 150 characters")
	ErrInvalidID          = errors.New("id must be a positive integer")
	ErrNegativeShift      = errors.New("shift must be a non-negative integer")
)

// Contact представляет контакт справочника.
type Contact struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Birthday       time.Time
	AdditionalInfo string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
