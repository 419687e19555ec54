package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-task-tracker/app/db"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo defines the contract for account persistence used by signup
// and login.
type AuthRepo interface {
	// CreateUser inserts a new user with an already-hashed password and
	// returns the assigned ID. Returns types.ErrConflict when the
	// username or email is already taken.
	CreateUser(ctx context.Context, username, email, hashedPassword, role string) (string, error)

	// GetUserByUsername returns types.ErrNotFound when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pgpool database.Querier
}

func NewPostgresAuthRepo(pgpool database.Querier, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// CreateUser inserts the user row. The unique indexes on username and
// email are the authoritative source of registration conflicts; a
// concurrent duplicate registration loses here, not at a pre-check.
func (r *PostgresAuthRepo) CreateUser(ctx context.Context, username, email, hashedPassword, role string) (string, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	userID := uuid.NewString()
	now := time.Now()
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		userID, username, email, hashedPassword, role, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			span.SetStatus(codes.Error, "Unique constraint violation")
			return "", fmt.Errorf("username or email already exists: %w", types.ErrConflict)
		}
		r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	return userID, nil
}

func (r *PostgresAuthRepo) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByUsername", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	var user types.User
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, role, created_at, updated_at
         FROM users WHERE username = $1`,
		username).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("user not found: %w", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("get user by username: query failed: %w", err)
	}

	return &user, nil
}
