package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-task-tracker/internal/api"
	"github.com/FACorreiaa/go-task-tracker/internal/api/auth"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	DeleteProfile(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// GetProfile godoc
// @Summary      Get profile
// @Description  Retrieves the authenticated user's profile. The password
// @Description  hash is never included.
// @Produce      json
// @Security     BearerAuth
// @Router       /profile [get]
func (h *HandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetProfile"))

	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		l.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Profile not found.")
			return
		}
		l.ErrorContext(ctx, "Failed to get profile", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.ProfileResponse{
		Message: "Profile retrieved successfully.",
		Profile: profile,
	})
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Partial update; only fields present in the body change.
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /profile [put]
func (h *HandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateProfile"))

	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		l.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var params types.UpdateProfileParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.UpdateProfile(ctx, userID, params); err != nil {
		switch {
		case errors.Is(err, types.ErrValidation):
			api.ErrorResponse(w, r, http.StatusBadRequest, "No valid fields provided to update.")
		case errors.Is(err, types.ErrConflict):
			api.ErrorResponse(w, r, http.StatusBadRequest, "Username or email already exists.")
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found.")
		default:
			l.ErrorContext(ctx, "Failed to update profile", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Message: "Profile updated successfully.",
	})
}

// DeleteProfile godoc
// @Summary      Delete account
// @Description  Removes the account and every task it owns.
// @Produce      json
// @Security     BearerAuth
// @Router       /profile [delete]
func (h *HandlerImpl) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteProfile"))

	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		l.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.userService.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found.")
			return
		}
		l.ErrorContext(ctx, "Failed to delete account", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Message: "Profile deleted successfully.",
	})
}

// ListUsers godoc
// @Summary      List all users (admin)
// @Description  Requires the admin role. Password hashes are excluded
// @Description  from every entry.
// @Produce      json
// @Security     BearerAuth
// @Router       /users [get]
func (h *HandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "ListUsers"))

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.UserListResponse{
		Message: "Users retrieved successfully.",
		Users:   users,
	})
}
