package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-task-tracker/app/db"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ TodoRepo = (*PostgresTodoRepo)(nil)

// TodoRepo defines the contract for todo persistence. Every operation
// conjoins the caller's user ID with any item filter, so an item owned
// by someone else is indistinguishable from one that does not exist.
// Soft-deleted rows are invisible to all operations.
type TodoRepo interface {
	ListByOwner(ctx context.Context, userID string) ([]types.Todo, error)
	GetByID(ctx context.Context, userID, todoID string) (*types.Todo, error)
	Create(ctx context.Context, userID string, params types.CreateTodoParams) (*types.Todo, error)
	// Update writes only the non-nil fields in params and returns the
	// updated row. Returns types.ErrNotFound when the item is absent or
	// owned by another user.
	Update(ctx context.Context, userID, todoID string, params types.UpdateTodoParams) (*types.Todo, error)
	// SoftDelete marks the item deleted without removing the row.
	SoftDelete(ctx context.Context, userID, todoID string) error
}

type PostgresTodoRepo struct {
	logger *slog.Logger
	pgpool database.Querier
}

func NewPostgresTodoRepo(pgpool database.Querier, logger *slog.Logger) *PostgresTodoRepo {
	return &PostgresTodoRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const todoColumns = "id, user_id, title, description, priority, status, created_at, updated_at"

func scanTodo(row pgx.Row, t *types.Todo) error {
	return row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
}

func (r *PostgresTodoRepo) ListByOwner(ctx context.Context, userID string) ([]types.Todo, error) {
	ctx, span := otel.Tracer("TodoRepo").Start(ctx, "ListByOwner", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "todos"),
	))
	defer span.End()

	rows, err := r.pgpool.Query(ctx,
		`SELECT `+todoColumns+`
         FROM todos
         WHERE user_id = $1 AND deleted_at IS NULL
         ORDER BY created_at`,
		userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("list todos: query failed: %w", err)
	}
	defer rows.Close()

	var todos []types.Todo
	for rows.Next() {
		var t types.Todo
		if err := scanTodo(rows, &t); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("list todos: scan failed: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list todos: rows error: %w", err)
	}

	return todos, nil
}

func (r *PostgresTodoRepo) GetByID(ctx context.Context, userID, todoID string) (*types.Todo, error) {
	ctx, span := otel.Tracer("TodoRepo").Start(ctx, "GetByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "todos"),
	))
	defer span.End()

	var t types.Todo
	row := r.pgpool.QueryRow(ctx,
		`SELECT `+todoColumns+`
         FROM todos
         WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		todoID, userID)
	if err := scanTodo(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Todo not found")
			return nil, fmt.Errorf("todo not found: %w", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("get todo: query failed: %w", err)
	}

	return &t, nil
}

func (r *PostgresTodoRepo) Create(ctx context.Context, userID string, params types.CreateTodoParams) (*types.Todo, error) {
	ctx, span := otel.Tracer("TodoRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "todos"),
	))
	defer span.End()

	now := time.Now()
	t := types.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Status:      params.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO todos (id, user_id, title, description, priority, status, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		t.ID, t.UserID, t.Title, t.Description, t.Priority, t.Status, now)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert todo", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	return &t, nil
}

func (r *PostgresTodoRepo) Update(ctx context.Context, userID, todoID string, params types.UpdateTodoParams) (*types.Todo, error) {
	ctx, span := otel.Tracer("TodoRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "todos"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Update"), slog.String("todoID", todoID))

	// Build the SET clause dynamically so absent fields are left
	// byte-for-byte untouched.
	var setClauses []string
	var args []interface{}
	argID := 1

	if params.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *params.Title)
		argID++
	}
	if params.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, *params.Description)
		argID++
	}
	if params.Priority != nil {
		setClauses = append(setClauses, fmt.Sprintf("priority = $%d", argID))
		args = append(args, *params.Priority)
		argID++
	}
	if params.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argID))
		args = append(args, *params.Status)
		argID++
	}

	if len(setClauses) == 0 {
		l.WarnContext(ctx, "Update called with no fields to update")
		return nil, fmt.Errorf("no valid fields to update: %w", types.ErrValidation)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, todoID, userID)
	query := fmt.Sprintf(
		`UPDATE todos SET %s
         WHERE id = $%d AND user_id = $%d AND deleted_at IS NULL
         RETURNING `+todoColumns,
		strings.Join(setClauses, ", "), argID, argID+1,
	)

	var t types.Todo
	if err := scanTodo(r.pgpool.QueryRow(ctx, query, args...), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Todo not found")
			return nil, fmt.Errorf("todo not found for update: %w", types.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to execute update query", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating todo: %w", err)
	}

	return &t, nil
}

func (r *PostgresTodoRepo) SoftDelete(ctx context.Context, userID, todoID string) error {
	ctx, span := otel.Tracer("TodoRepo").Start(ctx, "SoftDelete", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "todos"),
	))
	defer span.End()

	tag, err := r.pgpool.Exec(ctx,
		`UPDATE todos SET deleted_at = $1
         WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL`,
		time.Now(), todoID, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to soft-delete todo", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return fmt.Errorf("delete todo: db update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "Todo not found")
		return fmt.Errorf("todo not found for delete: %w", types.ErrNotFound)
	}

	return nil
}
