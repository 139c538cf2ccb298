// Package postgres реализует порты хранения поверх pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/ports/repositories"
	"contactdir/pkg/logger"
)

// PgxPoolInterface абстрагирует пул pgx для мокирования.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

const contactColumns = "id, first_name, last_name, email, phone, birthday, additional_info, created_at, updated_at"

// uniqueViolation - код ошибки Postgres для нарушений уникальности.
const uniqueViolation = "23505"

// ContactRepository реализует repositories.ContactRepository на Postgres.
type ContactRepository struct {
	pool PgxPoolInterface
}

// NewContactRepository создает новый репозиторий контактов.
func NewContactRepository(pool PgxPoolInterface) repositories.ContactRepository {
	return &ContactRepository{pool: pool}
}

func scanContact(row pgx.Row) (*entities.Contact, error) {
	var c entities.Contact
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Birthday,
		&c.AdditionalInfo,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// searchColumn сопоставляет проверенное поле поиска его колонке. switch
// исчерпывает закрытый набор полей.
func searchColumn(field entities.SearchField) (string, error) {
	switch field {
	case entities.SearchFirstName:
		return "first_name", nil
	case entities.SearchLastName:
		return "last_name", nil
	case entities.SearchEmail:
		return "email", nil
	case entities.SearchPhone:
		return "phone", nil
	default:
		return "", fmt.Errorf("mapping search column: %w", entities.ErrUnknownSearchField)
	}
}

// FindAll возвращает все контакты в естественном порядке хранилища.
func (r *ContactRepository) FindAll(ctx context.Context) ([]*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "FindAll"))

	query := `
        SELECT ` + contactColumns + `
        FROM contacts
        ORDER BY id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error querying contacts", zap.Error(err))
		return nil, fmt.Errorf("error querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*entities.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			log.Error(ctx, "error scanning contact row", zap.Error(err))
			return nil, fmt.Errorf("error scanning contact row: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating contact rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}

	return contacts, nil
}

// FindByID находит контакт по идентификатору.
func (r *ContactRepository) FindByID(ctx context.Context, id int64) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + contactColumns + `
        FROM contacts
        WHERE id = $1
    `

	contact, err := scanContact(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "contact not found", zap.Int64("id", id))
			return nil, entities.ErrContactNotFound
		}
		log.Error(ctx, "error finding contact by id", zap.Error(err))
		return nil, fmt.Errorf("error querying contact by id: %w", err)
	}

	return contact, nil
}

// FindBy находит первый контакт по значению указанного поля.
func (r *ContactRepository) FindBy(ctx context.Context, field entities.SearchField, value string) (*entities.Contact, error) {
	log := logger.Log(ctx).With(
		zap.String("repository", "contact"),
		zap.String("method", "FindBy"),
		zap.String("field", field.String()),
	)

	column, err := searchColumn(field)
	if err != nil {
		return nil, err
	}

	query := `
        SELECT ` + contactColumns + `
        FROM contacts
        WHERE ` + column + ` = $1
        ORDER BY id
        LIMIT 1
    `

	contact, err := scanContact(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "contact not found", zap.String("value", value))
			return nil, entities.ErrContactNotFound
		}
		log.Error(ctx, "error finding contact by field", zap.Error(err))
		return nil, fmt.Errorf("error querying contact by %s: %w", column, err)
	}

	return contact, nil
}

// Create вставляет новый контакт. Хранилище назначает id и метки времени.
func (r *ContactRepository) Create(ctx context.Context, contact *entities.Contact) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "Create"))

	query := `
        INSERT INTO contacts (first_name, last_name, email, phone, birthday, additional_info)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + contactColumns + `
    `

	created, err := scanContact(r.pool.QueryRow(ctx, query,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.AdditionalInfo,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			log.Debug(ctx, "contact email already exists", zap.String("email", contact.Email))
			return nil, entities.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating contact", zap.Error(err))
		return nil, fmt.Errorf("error creating contact: %w", err)
	}

	return created, nil
}

// Update перезаписывает изменяемые поля контакта и обновляет updated_at.
func (r *ContactRepository) Update(ctx context.Context, contact *entities.Contact) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "Update"))

	query := `
        UPDATE contacts
        SET first_name = $2, last_name = $3, email = $4, phone = $5, birthday = $6, additional_info = $7, updated_at = $8
        WHERE id = $1
        RETURNING ` + contactColumns + `
    `

	now := time.Now().UTC()

	updated, err := scanContact(r.pool.QueryRow(ctx, query,
		contact.ID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.AdditionalInfo,
		now,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "contact not found for update", zap.Int64("id", contact.ID))
			return nil, entities.ErrContactNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			log.Debug(ctx, "contact email already exists", zap.String("email", contact.Email))
			return nil, entities.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error updating contact", zap.Error(err))
		return nil, fmt.Errorf("error updating contact: %w", err)
	}

	return updated, nil
}

// Delete удаляет контакт и возвращает его последний снимок.
func (r *ContactRepository) Delete(ctx context.Context, id int64) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "Delete"))

	query := `
        DELETE FROM contacts
        WHERE id = $1
        RETURNING ` + contactColumns + `
    `

	deleted, err := scanContact(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "contact not found for deletion", zap.Int64("id", id))
			return nil, entities.ErrContactNotFound
		}
		log.Error(ctx, "error deleting contact", zap.Error(err))
		return nil, fmt.Errorf("error deleting contact: %w", err)
	}

	return deleted, nil
}
