package user

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

func newMockUserRepo(t *testing.T) (*PostgresUserRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresUserRepo(pool, logger), pool
}

func TestPostgresUserRepo_UpdateProfile(t *testing.T) {
	t.Run("writes only the supplied columns", func(t *testing.T) {
		repo, pool := newMockUserRepo(t)
		email := "new@example.com"

		pool.ExpectExec(`UPDATE users SET email = \$1, updated_at = \$2 WHERE id = \$3`).
			WithArgs(email, pgxmock.AnyArg(), "user-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateProfile(context.Background(), "user-1", types.UpdateProfileParams{Email: &email})
		assert.NoError(t, err)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("unique violation becomes a conflict", func(t *testing.T) {
		repo, pool := newMockUserRepo(t)
		username := "taken"

		pool.ExpectExec(`UPDATE users SET username = \$1`).
			WithArgs(username, pgxmock.AnyArg(), "user-1").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		err := repo.UpdateProfile(context.Background(), "user-1", types.UpdateProfileParams{Username: &username})
		assert.ErrorIs(t, err, types.ErrConflict)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo, pool := newMockUserRepo(t)
		email := "new@example.com"

		pool.ExpectExec(`UPDATE users SET email = \$1`).
			WithArgs(email, pgxmock.AnyArg(), "ghost").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateProfile(context.Background(), "ghost", types.UpdateProfileParams{Email: &email})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestPostgresUserRepo_DeleteUser(t *testing.T) {
	t.Run("removes the account and its todos in one transaction", func(t *testing.T) {
		repo, pool := newMockUserRepo(t)

		pool.ExpectBegin()
		pool.ExpectExec(`DELETE FROM todos WHERE user_id = \$1`).
			WithArgs("user-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		pool.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs("user-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		pool.ExpectCommit()

		err := repo.DeleteUser(context.Background(), "user-1")
		assert.NoError(t, err)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("unknown user rolls back", func(t *testing.T) {
		repo, pool := newMockUserRepo(t)

		pool.ExpectBegin()
		pool.ExpectExec(`DELETE FROM todos WHERE user_id = \$1`).
			WithArgs("ghost").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		pool.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		pool.ExpectRollback()

		err := repo.DeleteUser(context.Background(), "ghost")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}

func TestPostgresUserRepo_ListAll(t *testing.T) {
	repo, pool := newMockUserRepo(t)
	now := time.Now()

	// The query never selects password_hash, so hashes cannot leak into
	// the listing by construction.
	pool.ExpectQuery(`SELECT id, username, email, role, created_at, updated_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "role", "created_at", "updated_at"}).
			AddRow("user-1", "alice", "alice@example.com", types.RoleUser, now, now).
			AddRow("user-2", "root", "root@example.com", types.RoleAdmin, now, now))

	users, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Empty(t, users[0].Password)
	assert.Empty(t, users[1].Password)
	assert.NoError(t, pool.ExpectationsWereMet())
}
