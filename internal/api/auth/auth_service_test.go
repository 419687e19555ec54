package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, username, email, hashedPassword, role string) (string, error) {
	args := m.Called(ctx, username, email, hashedPassword, role)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepo) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	args := m.Called(ctx, username)
	var u *types.User
	if args.Get(0) != nil {
		u = args.Get(0).(*types.User)
	}
	return u, args.Error(1)
}

var _ AuthRepo = (*MockAuthRepo)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password before persistence", func(t *testing.T) {
		repo := new(MockAuthRepo)
		svc := NewAuthService(repo, newTestTokenService(t, time.Hour), testLogger())

		repo.On("CreateUser", ctx, "alice", "alice@example.com",
			mock.MatchedBy(func(hashed string) bool {
				if hashed == "secret123" {
					return false
				}
				return bcrypt.CompareHashAndPassword([]byte(hashed), []byte("secret123")) == nil
			}),
			types.RoleUser,
		).Return("user-1", nil)

		userID, err := svc.Register(ctx, "alice", "alice@example.com", "secret123", "")
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
		repo.AssertExpectations(t)
	})

	t.Run("normalizes the role tag", func(t *testing.T) {
		repo := new(MockAuthRepo)
		svc := NewAuthService(repo, newTestTokenService(t, time.Hour), testLogger())

		repo.On("CreateUser", ctx, "root", "root@example.com", mock.Anything, types.RoleAdmin).
			Return("user-2", nil)

		_, err := svc.Register(ctx, "root", "root@example.com", "secret123", "ADMIN")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown role collapses to user", func(t *testing.T) {
		repo := new(MockAuthRepo)
		svc := NewAuthService(repo, newTestTokenService(t, time.Hour), testLogger())

		repo.On("CreateUser", ctx, "bob", "bob@example.com", mock.Anything, types.RoleUser).
			Return("user-3", nil)

		_, err := svc.Register(ctx, "bob", "bob@example.com", "secret123", "superuser")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("propagates conflict", func(t *testing.T) {
		repo := new(MockAuthRepo)
		svc := NewAuthService(repo, newTestTokenService(t, time.Hour), testLogger())

		repo.On("CreateUser", ctx, "alice", "alice@example.com", mock.Anything, types.RoleUser).
			Return("", types.ErrConflict)

		_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123", "")
		assert.ErrorIs(t, err, types.ErrConflict)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	storedUser := &types.User{
		ID:       "user-1",
		Username: "alice",
		Password: string(hashed),
		Role:     types.RoleUser,
	}

	t.Run("returns a verifiable token on success", func(t *testing.T) {
		repo := new(MockAuthRepo)
		tokens := newTestTokenService(t, time.Hour)
		svc := NewAuthService(repo, tokens, testLogger())

		repo.On("GetUserByUsername", ctx, "alice").Return(storedUser, nil)

		token, err := svc.Login(ctx, "alice", "secret123")
		require.NoError(t, err)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, types.RoleUser, claims.Role)
	})

	t.Run("unknown username yields the same rejection as a bad password", func(t *testing.T) {
		repo := new(MockAuthRepo)
		svc := NewAuthService(repo, newTestTokenService(t, time.Hour), testLogger())

		repo.On("GetUserByUsername", ctx, "ghost").Return(nil, types.ErrNotFound)

		_, unknownErr := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, unknownErr, types.ErrUnauthenticated)

		repo.On("GetUserByUsername", ctx, "alice").Return(storedUser, nil)
		_, badPassErr := svc.Login(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, badPassErr, types.ErrUnauthenticated)
	})

	t.Run("storage failure is not an authentication failure", func(t *testing.T) {
		repo := new(MockAuthRepo)
		svc := NewAuthService(repo, newTestTokenService(t, time.Hour), testLogger())

		repo.On("GetUserByUsername", ctx, "alice").Return(nil, assert.AnError)

		_, err := svc.Login(ctx, "alice", "secret123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, types.ErrUnauthenticated)
	})
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, types.RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, types.RoleAdmin, NormalizeRole("Admin"))
	assert.Equal(t, types.RoleUser, NormalizeRole("user"))
	assert.Equal(t, types.RoleUser, NormalizeRole(""))
	assert.Equal(t, types.RoleUser, NormalizeRole("root"))
}
