// Package repositories определяет порты хранения справочника контактов.
package repositories

import (
	"context"

	"contactdir/internal/contacts/domain/entities"
)

// ContactRepository определяет интерфейс для операций сохранения контактов.
// Поиски возвращают entities.ErrContactNotFound, когда нет подходящей строки;
// отсутствие - нормальный исход, а не сбой.
type ContactRepository interface {
	FindAll(ctx context.Context) ([]*entities.Contact, error)

	FindByID(ctx context.Context, id int64) (*entities.Contact, error)

	// FindBy выполняет точечный поиск по одному из закрытого набора полей.
	// Поле уже проверено вызывающей стороной.
	FindBy(ctx context.Context, field entities.SearchField, value string) (*entities.Contact, error)

	Create(ctx context.Context, contact *entities.Contact) (*entities.Contact, error)

	Update(ctx context.Context, contact *entities.Contact) (*entities.Contact, error)

	// Delete удаляет контакт и возвращает его последний снимок.
	Delete(ctx context.Context, id int64) (*entities.Contact, error)
}
