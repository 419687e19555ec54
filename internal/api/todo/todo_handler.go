package todo

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FACorreiaa/go-task-tracker/internal/api"
	"github.com/FACorreiaa/go-task-tracker/internal/api/auth"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListTasks(w http.ResponseWriter, r *http.Request)
	GetTask(w http.ResponseWriter, r *http.Request)
	CreateTask(w http.ResponseWriter, r *http.Request)
	UpdateTask(w http.ResponseWriter, r *http.Request)
	DeleteTask(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	todoService TodoService
	logger      *slog.Logger
}

func NewHandlerImpl(todoService TodoService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		todoService: todoService,
		logger:      logger,
	}
}

// callerID pulls the authenticated user's ID attached by the
// Authenticate middleware. A missing ID means the route was wired
// without the middleware.
func callerID(w http.ResponseWriter, r *http.Request, l *slog.Logger) (string, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || userID == "" {
		l.ErrorContext(r.Context(), "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}

// ListTasks godoc
// @Summary      List tasks
// @Description  Returns the caller's tasks; 404 when there are none yet.
// @Produce      json
// @Security     BearerAuth
// @Router       /tasks [get]
func (h *HandlerImpl) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "ListTasks"))

	userID, ok := callerID(w, r, l)
	if !ok {
		return
	}

	todos, err := h.todoService.List(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list tasks", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if len(todos) == 0 {
		api.ErrorResponse(w, r, http.StatusNotFound, "No tasks found. Create new tasks!")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.TodoListResponse{
		Message: "Tasks retrieved successfully.",
		Tasks:   todos,
	})
}

// GetTask godoc
// @Summary      Get one task
// @Produce      json
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *HandlerImpl) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetTask"))

	userID, ok := callerID(w, r, l)
	if !ok {
		return
	}
	todoID := chi.URLParam(r, "id")

	t, err := h.todoService.Get(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Todo not found.")
			return
		}
		l.ErrorContext(ctx, "Failed to get task", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.TodoResponse{
		Message: "Task retrieved successfully.",
		Task:    t,
	})
}

// CreateTask godoc
// @Summary      Create a task
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *HandlerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateTask"))

	userID, ok := callerID(w, r, l)
	if !ok {
		return
	}

	var params types.CreateTodoParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.todoService.Create(ctx, userID, params)
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to create task", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, types.TodoResponse{
		Message: "Todo created successfully.",
		Task:    t,
	})
}

// UpdateTask godoc
// @Summary      Update a task
// @Description  Partial update; only fields present in the body change.
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func (h *HandlerImpl) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateTask"))

	userID, ok := callerID(w, r, l)
	if !ok {
		return
	}
	todoID := chi.URLParam(r, "id")

	var params types.UpdateTodoParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.todoService.Update(ctx, userID, todoID, params)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrValidation):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Todo not found.")
		default:
			l.ErrorContext(ctx, "Failed to update task", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.TodoResponse{
		Message: "Todo updated successfully.",
		Task:    t,
	})
}

// DeleteTask godoc
// @Summary      Delete a task
// @Produce      json
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func (h *HandlerImpl) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteTask"))

	userID, ok := callerID(w, r, l)
	if !ok {
		return
	}
	todoID := chi.URLParam(r, "id")

	if err := h.todoService.Delete(ctx, userID, todoID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Todo not found.")
			return
		}
		l.ErrorContext(ctx, "Failed to delete task", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Message: "Todo deleted successfully.",
	})
}
