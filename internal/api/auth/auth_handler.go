package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/FACorreiaa/go-task-tracker/app/observability/metrics"
	"github.com/FACorreiaa/go-task-tracker/internal/api"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
	metrics     *metrics.AppMetrics
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		metrics:     metrics.Get(),
	}
}

// Register godoc
// @Summary      Sign up
// @Description  Registers a new account. Username and email must be unique.
// @Accept       json
// @Produce      json
// @Router       /signup [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Register"))
	defer h.metrics.RegisterRequestsTotal.Inc()

	var req types.RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if msg, ok := validateRegisterRequest(req); !ok {
		l.WarnContext(ctx, "Invalid signup payload", slog.String("reason", msg))
		api.ErrorResponse(w, r, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.authService.Register(ctx, req.Username, req.Email, req.Password, req.Role); err != nil {
		if errors.Is(err, types.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Username or email already exists.")
			return
		}
		l.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, types.Response{
		Message: "User created successfully.",
	})
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges username and password for a signed bearer token.
// @Accept       json
// @Produce      json
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))

	var req types.LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Username and password are required.")
		return
	}

	token, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, types.ErrUnauthenticated) {
			h.metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		h.metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	api.WriteJSONResponse(w, r, http.StatusOK, types.LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}

func validateRegisterRequest(req types.RegisterRequest) (string, bool) {
	switch {
	case req.Username == "":
		return "Username is required.", false
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		return "A valid email is required.", false
	case len(req.Password) < 6:
		return "Password must be at least 6 characters.", false
	}
	return "", true
}
