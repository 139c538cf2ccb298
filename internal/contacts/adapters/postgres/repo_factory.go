package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"contactdir/internal/contacts/ports/repositories"
)

// RepositoryFactory создает все репозитории службы поверх PostgreSQL.
type RepositoryFactory struct {
	contactRepo repositories.ContactRepository
	guestRepo   repositories.GuestRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		contactRepo: NewContactRepository(pool),
		guestRepo:   NewGuestRepository(pool),
	}
}

// ContactRepository возвращает репозиторий контактов.
func (f *RepositoryFactory) ContactRepository() repositories.ContactRepository {
	return f.contactRepo
}

// GuestRepository возвращает репозиторий гостей.
func (f *RepositoryFactory) GuestRepository() repositories.GuestRepository {
	return f.guestRepo
}
