package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

func TestAuthenticate(t *testing.T) {
	tokens := newTestTokenService(t, time.Hour)
	logger := testLogger()

	var gotUserID, gotUsername, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		gotUsername, _ = GetUsernameFromContext(r.Context())
		gotRole, _ = GetUserRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(logger, tokens)(next)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Authorization header required", decodeMessage(t, rr))
	})

	t.Run("malformed header", func(t *testing.T) {
		for _, header := range []string{"Basic abc", "Bearer", "Bearer a b"} {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			req.Header.Set("Authorization", header)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code, "header %q", header)
			assert.Equal(t, "Authorization header format must be Bearer {token}", decodeMessage(t, rr))
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer not-a-real-token")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid or expired token", decodeMessage(t, rr))
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestTokenService(t, -time.Minute)
		signed, err := expired.Issue("user-1", "alice", types.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token attaches identity to context", func(t *testing.T) {
		signed, err := tokens.Issue("user-1", "alice", types.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-1", gotUserID)
		assert.Equal(t, "alice", gotUsername)
		assert.Equal(t, types.RoleAdmin, gotRole)
	})

	t.Run("lowercase bearer scheme is accepted", func(t *testing.T) {
		signed, err := tokens.Issue("user-2", "bob", types.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "bearer "+signed)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-2", gotUserID)
	})
}

func TestRequireRole(t *testing.T) {
	tokens := newTestTokenService(t, time.Hour)
	logger := testLogger()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	// Chained the same way the router wires it: Authenticate first,
	// then the role check reading what Authenticate attached.
	protected := Authenticate(logger, tokens)(RequireRole(logger, types.RoleAdmin)(next))

	t.Run("admin passes", func(t *testing.T) {
		signed, err := tokens.Issue("user-1", "root", types.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("non-admin is forbidden, not unauthorized", func(t *testing.T) {
		signed, err := tokens.Issue("user-2", "alice", types.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Access denied.", decodeMessage(t, rr))
	})

	t.Run("missing role claim is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()

		RequireRole(logger, types.RoleAdmin)(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
