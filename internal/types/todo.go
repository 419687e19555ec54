package types

import "time"

// Priority tags for a todo.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Status tags for a todo.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Todo represents a unit of work owned by exactly one user.
type Todo struct {
	ID          string     `json:"id" example:"0d8a50a6-5f3b-4c57-9a9e-2f2a1f6f8b11"`
	UserID      string     `json:"user_id"` // Owner's user ID.
	Title       string     `json:"title" example:"Buy groceries"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" example:"low"`
	Status      string     `json:"status" example:"todo"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // Soft delete marker, filtered from all reads.
}

// CreateTodoParams carries the fields for creating a todo. Priority and
// status fall back to their defaults when empty.
type CreateTodoParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
}

// UpdateTodoParams carries a partial todo update. Only non-nil fields
// are written.
type UpdateTodoParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// HasUpdates reports whether at least one recognized field is present.
func (p UpdateTodoParams) HasUpdates() bool {
	return p.Title != nil || p.Description != nil || p.Priority != nil || p.Status != nil
}

// TodoResponse wraps a single todo with the message envelope.
type TodoResponse struct {
	Message string `json:"message"`
	Task    *Todo  `json:"task"`
}

// TodoListResponse wraps a todo listing with the message envelope.
type TodoListResponse struct {
	Message string `json:"message"`
	Tasks   []Todo `json:"tasks"`
}

// ValidPriority reports whether s is one of the recognized priority tags.
func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the recognized status tags.
func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}
