package types

import "github.com/golang-jwt/jwt/v5"

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response body.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RegisterRequest represents the signup request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Response is the generic message envelope for simple success responses.
type Response struct {
	Message string `json:"message"`
}

// Claims are the JWT claims embedded in every issued token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
