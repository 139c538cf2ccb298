package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/ports/repositories"
	"contactdir/pkg/logger"
)

const guestColumns = "id, username, email, password_hash, refresh_token, avatar, confirmed, role, created_at, updated_at"

// GuestRepository реализует repositories.GuestRepository на Postgres.
type GuestRepository struct {
	pool PgxPoolInterface
}

// NewGuestRepository создает новый репозиторий гостей.
func NewGuestRepository(pool PgxPoolInterface) repositories.GuestRepository {
	return &GuestRepository{pool: pool}
}

func scanGuest(row pgx.Row) (*entities.Guest, error) {
	var g entities.Guest
	var refreshToken, avatar sql.NullString
	var role string

	err := row.Scan(
		&g.ID,
		&g.Username,
		&g.Email,
		&g.PasswordHash,
		&refreshToken,
		&avatar,
		&g.Confirmed,
		&role,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.RefreshToken = refreshToken.String
	g.Avatar = avatar.String

	g.Role, err = entities.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FindByID находит гостя по идентификатору.
func (r *GuestRepository) FindByID(ctx context.Context, id int64) (*entities.Guest, error) {
	log := logger.Log(ctx).With(zap.String("repository", "guest"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + guestColumns + `
        FROM guests
        WHERE id = $1
    `

	guest, err := scanGuest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "guest not found", zap.Int64("id", id))
			return nil, entities.ErrGuestNotFound
		}
		log.Error(ctx, "error finding guest by id", zap.Error(err))
		return nil, fmt.Errorf("error querying guest by id: %w", err)
	}

	return guest, nil
}

// FindByEmail находит гостя по почте.
func (r *GuestRepository) FindByEmail(ctx context.Context, email string) (*entities.Guest, error) {
	log := logger.Log(ctx).With(zap.String("repository", "guest"), zap.String("method", "FindByEmail"))

	query := `
        SELECT ` + guestColumns + `
        FROM guests
        WHERE email = $1
    `

	guest, err := scanGuest(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "guest not found", zap.String("email", email))
			return nil, entities.ErrGuestNotFound
		}
		log.Error(ctx, "error finding guest by email", zap.Error(err))
		return nil, fmt.Errorf("error querying guest by email: %w", err)
	}

	return guest, nil
}

// Create вставляет нового гостя с ролью по умолчанию, если роль не задана.
func (r *GuestRepository) Create(ctx context.Context, guest *entities.Guest) (*entities.Guest, error) {
	log := logger.Log(ctx).With(zap.String("repository", "guest"), zap.String("method", "Create"))

	role := guest.Role
	if role == "" {
		role = entities.RoleGuest
	}

	query := `
        INSERT INTO guests (username, email, password_hash, avatar, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + guestColumns + `
    `

	created, err := scanGuest(r.pool.QueryRow(ctx, query,
		guest.Username,
		guest.Email,
		guest.PasswordHash,
		guest.Avatar,
		role.String(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			log.Debug(ctx, "guest email already exists", zap.String("email", guest.Email))
			return nil, entities.ErrGuestEmailExists
		}
		log.Error(ctx, "error creating guest", zap.Error(err))
		return nil, fmt.Errorf("error creating guest: %w", err)
	}

	return created, nil
}

// UpdateRefreshToken ротирует сохраненный refresh-токен. Пустой токен очищает его.
func (r *GuestRepository) UpdateRefreshToken(ctx context.Context, guestID int64, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("repository", "guest"), zap.String("method", "UpdateRefreshToken"))

	query := `
        UPDATE guests
        SET refresh_token = NULLIF($2, ''), updated_at = now()
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, guestID, refreshToken)
	if err != nil {
		log.Error(ctx, "error updating refresh token", zap.Error(err))
		return fmt.Errorf("error updating refresh token: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "guest not found for token update", zap.Int64("id", guestID))
		return entities.ErrGuestNotFound
	}

	return nil
}

// UpdateAvatar заменяет URL аватара по почте гостя.
func (r *GuestRepository) UpdateAvatar(ctx context.Context, email, avatarURL string) (*entities.Guest, error) {
	log := logger.Log(ctx).With(zap.String("repository", "guest"), zap.String("method", "UpdateAvatar"))

	query := `
        UPDATE guests
        SET avatar = $2, updated_at = now()
        WHERE email = $1
        RETURNING ` + guestColumns + `
    `

	updated, err := scanGuest(r.pool.QueryRow(ctx, query, email, avatarURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "guest not found for avatar update", zap.String("email", email))
			return nil, entities.ErrGuestNotFound
		}
		log.Error(ctx, "error updating avatar", zap.Error(err))
		return nil, fmt.Errorf("error updating avatar: %w", err)
	}

	return updated, nil
}

// ConfirmEmail помечает почту гостя как подтвержденную. Идемпотентно.
func (r *GuestRepository) ConfirmEmail(ctx context.Context, email string) error {
	log := logger.Log(ctx).With(zap.String("repository", "guest"), zap.String("method", "ConfirmEmail"))

	query := `
        UPDATE guests
        SET confirmed = TRUE, updated_at = now()
        WHERE email = $1
    `

	result, err := r.pool.Exec(ctx, query, email)
	if err != nil {
		log.Error(ctx, "error confirming email", zap.Error(err))
		return fmt.Errorf("error confirming email: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "guest not found for email confirmation", zap.String("email", email))
		return entities.ErrGuestNotFound
	}

	return nil
}
