package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-task-tracker/config"
	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

// TokenService issues and verifies the signed bearer tokens presented on
// every protected route. The signing secret is process-wide state,
// injected once at startup; it must never be logged.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secretKey: []byte(cfg.SecretKey),
		ttl:       ttl,
		issuer:    cfg.Issuer,
	}, nil
}

// Issue creates a signed token asserting the user's identity and role.
// Pure computation; never touches storage.
func (s *TokenService) Issue(userID, username, role string) (string, error) {
	now := time.Now()
	claims := types.Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry and returns the embedded
// claims. Every failure mode (bad signature, malformed payload, elapsed
// expiry) collapses into an error wrapping types.ErrUnauthenticated.
func (s *TokenService) Verify(tokenString string) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrUnauthenticated, tokenFailureReason(err))
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", types.ErrUnauthenticated)
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, fmt.Errorf("%w: invalid token issuer", types.ErrUnauthenticated)
	}
	return claims, nil
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token has expired"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed token"
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return "invalid token signature"
	}
	return "invalid or expired token"
}
