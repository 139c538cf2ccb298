// Package api определяет входящие порты use case-ов.
package api

import (
	"context"
	"time"

	"contactdir/internal/contacts/domain/entities"
)

// ContactInput содержит изменяемые поля контакта для создания или обновления.
type ContactInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Birthday       time.Time
	AdditionalInfo string
}

// ContactUseCase определяет основной порт для операций CRUD и поиска контактов.
// Каждая операция принимает роль вызывающего и применяет свой набор допустимых ролей.
type ContactUseCase interface {
	List(ctx context.Context, role entities.Role) ([]*entities.Contact, error)

	Get(ctx context.Context, role entities.Role, id int64) (*entities.Contact, error)

	Create(ctx context.Context, role entities.Role, input ContactInput) (*entities.Contact, error)

	Update(ctx context.Context, role entities.Role, id int64, input ContactInput) (*entities.Contact, error)

	// Remove удаляет контакт и возвращает удаленный снимок.
	Remove(ctx context.Context, role entities.Role, id int64) (*entities.Contact, error)

	// Search выполняет точечный поиск по одному из закрытых полей поиска.
	Search(ctx context.Context, role entities.Role, field entities.SearchField, value string) (*entities.Contact, error)

	// UpcomingBirthdays возвращает контакты, чей ближайший день рождения
	// попадает в окно shift дней от сегодня.
	UpcomingBirthdays(ctx context.Context, role entities.Role, shift int) ([]*entities.Contact, error)
}
