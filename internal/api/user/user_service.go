package user

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-task-tracker/internal/api/auth"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService handles profile reads and writes plus the privileged
// account listing.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*types.User, error)
	// UpdateProfile applies a partial update. A plaintext password in
	// params is hashed here before it reaches storage.
	UpdateProfile(ctx context.Context, userID string, params types.UpdateProfileParams) error
	// DeleteAccount removes the user and all todos they own.
	DeleteAccount(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]types.User, error)
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (*types.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, params types.UpdateProfileParams) error {
	l := s.logger.With(slog.String("method", "UpdateProfile"), slog.String("userID", userID))

	if !params.HasUpdates() {
		return fmt.Errorf("no valid fields to update: %w", types.ErrValidation)
	}

	if params.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
			return fmt.Errorf("failed to hash new password: %w", err)
		}
		h := string(hashed)
		params.Password = &h
	}

	if params.Role != nil {
		role := auth.NormalizeRole(*params.Role)
		params.Role = &role
	}

	return s.repo.UpdateProfile(ctx, userID, params)
}

func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID string) error {
	l := s.logger.With(slog.String("method", "DeleteAccount"), slog.String("userID", userID))

	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	l.InfoContext(ctx, "Account deleted")
	return nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]types.User, error) {
	return s.repo.ListAll(ctx)
}
