package postgres_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactdir/internal/contacts/adapters/postgres"
	"contactdir/internal/contacts/domain/entities"
)

var guestColumns = []string{
	"id", "username", "email", "password_hash", "refresh_token",
	"avatar", "confirmed", "role", "created_at", "updated_at",
}

func testGuest() entities.Guest {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return entities.Guest{
		ID:           1,
		Username:     "testguest",
		Email:        "guest@example.com",
		PasswordHash: "$2a$12$hash",
		RefreshToken: "refresh-token",
		Avatar:       "https://avatars.example.com/guest",
		Confirmed:    true,
		Role:         entities.RoleGuest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func guestRows(g entities.Guest) *pgxmock.Rows {
	return pgxmock.NewRows(guestColumns).
		AddRow(g.ID, g.Username, g.Email, g.PasswordHash, g.RefreshToken,
			g.Avatar, g.Confirmed, g.Role.String(), g.CreatedAt, g.UpdatedAt)
}

func TestGuestRepositoryFindByEmail(t *testing.T) {
	ctx := testContext(t)
	stored := testGuest()

	t.Run("success - guest found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, username, email, password_hash").
			WithArgs(stored.Email).
			WillReturnRows(guestRows(stored))

		repo := postgres.NewGuestRepository(mock)
		guest, err := repo.FindByEmail(ctx, stored.Email)

		require.NoError(t, err)
		assert.Equal(t, &stored, guest)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - null refresh token and avatar scan as empty", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		bare := testGuest()
		rows := pgxmock.NewRows(guestColumns).
			AddRow(bare.ID, bare.Username, bare.Email, bare.PasswordHash, nil,
				nil, bare.Confirmed, bare.Role.String(), bare.CreatedAt, bare.UpdatedAt)

		mock.ExpectQuery("SELECT id, username, email, password_hash").
			WithArgs(bare.Email).
			WillReturnRows(rows)

		repo := postgres.NewGuestRepository(mock)
		guest, err := repo.FindByEmail(ctx, bare.Email)

		require.NoError(t, err)
		assert.Empty(t, guest.RefreshToken)
		assert.Empty(t, guest.Avatar)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - guest not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, username, email, password_hash").
			WithArgs("missing@example.com").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewGuestRepository(mock)
		_, err = repo.FindByEmail(ctx, "missing@example.com")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrGuestNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - row with unknown role is rejected", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		bad := testGuest()
		rows := pgxmock.NewRows(guestColumns).
			AddRow(bad.ID, bad.Username, bad.Email, bad.PasswordHash, bad.RefreshToken,
				bad.Avatar, bad.Confirmed, "superuser", bad.CreatedAt, bad.UpdatedAt)

		mock.ExpectQuery("SELECT id, username, email, password_hash").
			WithArgs(bad.Email).
			WillReturnRows(rows)

		repo := postgres.NewGuestRepository(mock)
		_, err = repo.FindByEmail(ctx, bad.Email)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUnknownRole)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGuestRepositoryCreate(t *testing.T) {
	ctx := testContext(t)
	stored := testGuest()

	t.Run("success - empty role defaults to guest", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		input := entities.Guest{
			Username:     stored.Username,
			Email:        stored.Email,
			PasswordHash: stored.PasswordHash,
			Avatar:       stored.Avatar,
		}

		mock.ExpectQuery("INSERT INTO guests").
			WithArgs(input.Username, input.Email, input.PasswordHash, input.Avatar, entities.RoleGuest.String()).
			WillReturnRows(guestRows(stored))

		repo := postgres.NewGuestRepository(mock)
		created, err := repo.Create(ctx, &input)

		require.NoError(t, err)
		assert.Equal(t, &stored, created)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - duplicate email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO guests").
			WithArgs(stored.Username, stored.Email, stored.PasswordHash, stored.Avatar, stored.Role.String()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "guests_email_key"})

		repo := postgres.NewGuestRepository(mock)
		_, err = repo.Create(ctx, &stored)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrGuestEmailExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGuestRepositoryUpdateRefreshToken(t *testing.T) {
	ctx := testContext(t)

	t.Run("success - token rotated", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE guests").
			WithArgs(int64(1), "new-token").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewGuestRepository(mock)
		err = repo.UpdateRefreshToken(ctx, 1, "new-token")

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - empty token clears the stored one", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE guests").
			WithArgs(int64(1), "").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewGuestRepository(mock)
		err = repo.UpdateRefreshToken(ctx, 1, "")

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - guest not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE guests").
			WithArgs(int64(42), "new-token").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewGuestRepository(mock)
		err = repo.UpdateRefreshToken(ctx, 42, "new-token")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrGuestNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGuestRepositoryUpdateAvatar(t *testing.T) {
	ctx := testContext(t)
	stored := testGuest()

	t.Run("success - avatar replaced", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE guests").
			WithArgs(stored.Email, stored.Avatar).
			WillReturnRows(guestRows(stored))

		repo := postgres.NewGuestRepository(mock)
		updated, err := repo.UpdateAvatar(ctx, stored.Email, stored.Avatar)

		require.NoError(t, err)
		assert.Equal(t, &stored, updated)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - guest not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE guests").
			WithArgs("missing@example.com", stored.Avatar).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewGuestRepository(mock)
		_, err = repo.UpdateAvatar(ctx, "missing@example.com", stored.Avatar)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrGuestNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGuestRepositoryConfirmEmail(t *testing.T) {
	ctx := testContext(t)

	t.Run("success - email confirmed", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE guests").
			WithArgs("guest@example.com").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewGuestRepository(mock)
		err = repo.ConfirmEmail(ctx, "guest@example.com")

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - guest not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE guests").
			WithArgs("missing@example.com").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewGuestRepository(mock)
		err = repo.ConfirmEmail(ctx, "missing@example.com")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrGuestNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
