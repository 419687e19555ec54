package types

import "time"

// Roles recognized by the service. Anything else collapses to RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID        string    `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"` // Unique identifier (UUID).
	Username  string    `json:"username" example:"johndoe"`                        // Unique username used for login.
	Email     string    `json:"email" example:"john.doe@example.com"`              // Unique email address.
	Password  string    `json:"-"`                                                 // Hashed password (never exposed).
	Role      string    `json:"role" example:"user"`                               // User role ('user' or 'admin').
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileParams carries a partial profile update. Only non-nil
// fields are written.
type UpdateProfileParams struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// HasUpdates reports whether at least one recognized field is present.
func (p UpdateProfileParams) HasUpdates() bool {
	return p.Username != nil || p.Email != nil || p.Password != nil || p.Role != nil
}

// ProfileResponse wraps a single user with the message envelope. The
// password hash is excluded by the User json tags.
type ProfileResponse struct {
	Message string `json:"message"`
	Profile *User  `json:"profile"`
}

// UserListResponse wraps the admin listing with the message envelope.
type UserListResponse struct {
	Message string `json:"message"`
	Users   []User `json:"users"`
}
