package entities

import (
	"errors"
	"fmt"
)

// Ошибки домена ролей.
var (
	ErrUnknownRole        = errors.New("unknown role")
	ErrOperationForbidden = errors.New("operation forbidden")
)

// Role управляет авторизацией операций. Ровно одна роль на Guest.
type Role string

// Закрытый набор ролей.
const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleGuest     Role = "guest"
)

// ParseRole проверяет строку роли по закрытому набору.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleModerator, RoleGuest:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) String() string {
	return string(r)
}
