package todo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ TodoService = (*TodoServiceImpl)(nil)

// TodoService applies tag validation and defaults on top of the
// ownership-scoped repository.
type TodoService interface {
	List(ctx context.Context, userID string) ([]types.Todo, error)
	Get(ctx context.Context, userID, todoID string) (*types.Todo, error)
	Create(ctx context.Context, userID string, params types.CreateTodoParams) (*types.Todo, error)
	Update(ctx context.Context, userID, todoID string, params types.UpdateTodoParams) (*types.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
}

type TodoServiceImpl struct {
	logger *slog.Logger
	repo   TodoRepo
}

func NewTodoService(repo TodoRepo, logger *slog.Logger) *TodoServiceImpl {
	return &TodoServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *TodoServiceImpl) List(ctx context.Context, userID string) ([]types.Todo, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *TodoServiceImpl) Get(ctx context.Context, userID, todoID string) (*types.Todo, error) {
	return s.repo.GetByID(ctx, userID, todoID)
}

func (s *TodoServiceImpl) Create(ctx context.Context, userID string, params types.CreateTodoParams) (*types.Todo, error) {
	if params.Title == "" || params.Description == "" {
		return nil, fmt.Errorf("title and description are mandatory: %w", types.ErrValidation)
	}

	params.Priority = strings.ToLower(params.Priority)
	if params.Priority == "" {
		params.Priority = types.PriorityLow
	} else if !types.ValidPriority(params.Priority) {
		return nil, fmt.Errorf("unrecognized priority %q: %w", params.Priority, types.ErrValidation)
	}

	params.Status = strings.ToLower(params.Status)
	if params.Status == "" {
		params.Status = types.StatusTodo
	} else if !types.ValidStatus(params.Status) {
		return nil, fmt.Errorf("unrecognized status %q: %w", params.Status, types.ErrValidation)
	}

	return s.repo.Create(ctx, userID, params)
}

func (s *TodoServiceImpl) Update(ctx context.Context, userID, todoID string, params types.UpdateTodoParams) (*types.Todo, error) {
	if !params.HasUpdates() {
		return nil, fmt.Errorf("no valid fields to update: %w", types.ErrValidation)
	}

	if params.Priority != nil {
		p := strings.ToLower(*params.Priority)
		if !types.ValidPriority(p) {
			return nil, fmt.Errorf("unrecognized priority %q: %w", p, types.ErrValidation)
		}
		params.Priority = &p
	}
	if params.Status != nil {
		st := strings.ToLower(*params.Status)
		if !types.ValidStatus(st) {
			return nil, fmt.Errorf("unrecognized status %q: %w", st, types.ErrValidation)
		}
		params.Status = &st
	}

	return s.repo.Update(ctx, userID, todoID, params)
}

func (s *TodoServiceImpl) Delete(ctx context.Context, userID, todoID string) error {
	return s.repo.SoftDelete(ctx, userID, todoID)
}
