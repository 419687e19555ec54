package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService turns credentials into accounts and tokens.
type AuthService interface {
	// Register creates an account and returns its new ID.
	// Returns types.ErrConflict when username or email is taken.
	Register(ctx context.Context, username, email, password, role string) (string, error)

	// Login returns a signed bearer token on success. Unknown username
	// and wrong password both yield types.ErrUnauthenticated.
	Login(ctx context.Context, username, password string) (string, error)
}

type AuthServiceImpl struct {
	logger *slog.Logger
	repo   AuthRepo
	tokens *TokenService
}

func NewAuthService(repo AuthRepo, tokens *TokenService, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		tokens: tokens,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password, role string) (string, error) {
	l := s.logger.With(slog.String("method", "Register"))

	// Hash before any persistence; the raw password is never stored or
	// logged, and no partial state is left behind if hashing fails.
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.repo.CreateUser(ctx, username, email, string(hashed), NormalizeRole(role))
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			l.WarnContext(ctx, "Registration conflict", slog.String("username", username))
			return "", err
		}
		l.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		return "", err
	}

	l.InfoContext(ctx, "User registered", slog.String("userID", userID))
	return userID, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	l := s.logger.With(slog.String("method", "Login"))

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// Collapse to the same rejection as a bad password so the
			// response never reveals whether the account exists.
			l.WarnContext(ctx, "Login for unknown username")
			return "", fmt.Errorf("invalid credentials: %w", types.ErrUnauthenticated)
		}
		l.ErrorContext(ctx, "Login lookup failed", slog.Any("error", err))
		return "", fmt.Errorf("login lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		l.WarnContext(ctx, "Password mismatch", slog.String("userID", user.ID))
		return "", fmt.Errorf("invalid credentials: %w", types.ErrUnauthenticated)
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// NormalizeRole collapses anything that is not a recognized role tag to
// the lowest-privilege role.
func NormalizeRole(role string) string {
	if strings.ToLower(role) == types.RoleAdmin {
		return types.RoleAdmin
	}
	return types.RoleUser
}
