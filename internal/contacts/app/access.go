package app

import (
	"fmt"

	"contactdir/internal/contacts/domain/entities"
)

// Наборы допустимых ролей четырех классов операций. Неизменяемые значения
// уровня пакета; сама проверка - чистая функция своих аргументов.
var (
	RolesList   = []entities.Role{entities.RoleAdmin, entities.RoleModerator, entities.RoleGuest}
	RolesCreate = []entities.Role{entities.RoleAdmin, entities.RoleModerator, entities.RoleGuest}
	RolesUpdate = []entities.Role{entities.RoleAdmin, entities.RoleModerator}
	RolesRemove = []entities.Role{entities.RoleAdmin}
)

// CheckAccess пропускает вызов, только если роль вызывающего входит в набор.
func CheckAccess(allowed []entities.Role, role entities.Role) error {
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("role %q: %w", role, entities.ErrOperationForbidden)
}
