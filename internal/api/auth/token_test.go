package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-task-tracker/config"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(config.JWTConfig{
		SecretKey: "test-secret-key",
		TokenTTL:  ttl,
		Issuer:    "go-task-tracker",
	})
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewTokenService(config.JWTConfig{})
		assert.Error(t, err)
	})

	t.Run("defaults TTL to one hour", func(t *testing.T) {
		svc, err := NewTokenService(config.JWTConfig{SecretKey: "s"})
		require.NoError(t, err)
		assert.Equal(t, time.Hour, svc.ttl)
	})
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	signed, err := svc.Issue("user-123", "alice", types.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, types.RoleAdmin, claims.Role)
	assert.Equal(t, "go-task-tracker", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	signed, err := svc.Issue("user-123", "alice", types.RoleUser)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "expired")
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	signed, err := svc.Issue("user-123", "alice", types.RoleUser)
	require.NoError(t, err)

	other, err := NewTokenService(config.JWTConfig{
		SecretKey: "a-different-secret",
		Issuer:    "go-task-tracker",
	})
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, types.ErrUnauthenticated, "token %q", tok)
	}
}

func TestTokenService_Verify_WrongIssuer(t *testing.T) {
	foreign, err := NewTokenService(config.JWTConfig{
		SecretKey: "test-secret-key",
		Issuer:    "someone-else",
	})
	require.NoError(t, err)

	signed, err := foreign.Issue("user-123", "alice", types.RoleUser)
	require.NoError(t, err)

	svc := newTestTokenService(t, time.Hour)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestTokenService_VerifyIsDeterministic(t *testing.T) {
	// Verification is pure computation over the token bytes; the same
	// token stays valid for its whole lifetime without any stored state.
	svc := newTestTokenService(t, time.Hour)
	signed, err := svc.Issue("user-123", "alice", types.RoleUser)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		claims, err := svc.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
	}
}
