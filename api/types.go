package api

import (
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// User identifies the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Token converts the response into an oauth2.Token with an absolute expiry.
func (r *AuthResponse) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: r.AccessToken,
		TokenType:   r.TokenType,
		Expiry:      time.Now().Add(time.Duration(r.ExpiresIn) * time.Second),
	}
}

// RegisterResponse is returned by a successful registration.
type RegisterResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TodoStatus enumerates the lifecycle states of a todo item.
type TodoStatus string

const (
	StatusPending    TodoStatus = "pending"
	StatusInProgress TodoStatus = "inProgress"
	StatusCompleted  TodoStatus = "completed"
)

// Next returns the following status in the pending -> inProgress ->
// completed -> pending cycle.
func (s TodoStatus) Next() TodoStatus {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// TodoPriority enumerates todo priorities.
type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
)

// Todo is a single todo item as served by the backend.
type Todo struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	DueDate     *time.Time   `json:"dueDate"`
	Status      TodoStatus   `json:"status"`
	Priority    TodoPriority `json:"priority"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TodoListResponse is a page of todos.
type TodoListResponse struct {
	Items   []Todo `json:"items"`
	Total   int64  `json:"total"`
	Page    int64  `json:"page"`
	PerPage int64  `json:"perPage"`
}

// CreateTodoRequest is the body of POST /api/todos. Only Title is required;
// the server fills defaults for the rest.
type CreateTodoRequest struct {
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Status      TodoStatus   `json:"status,omitempty"`
	Priority    TodoPriority `json:"priority,omitempty"`
}

// UpdateTodoRequest is the body of PUT /api/todos/{id}. Nil fields are left
// unchanged.
type UpdateTodoRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	Status      *TodoStatus   `json:"status,omitempty"`
	Priority    *TodoPriority `json:"priority,omitempty"`
}

// UpdateTodoStatusRequest is the body of PATCH /api/todos/{id}/status.
type UpdateTodoStatusRequest struct {
	Status TodoStatus `json:"status"`
}

// TodoQuery holds the supported list filters. Zero values are omitted from
// the query string, so the server defaults (createdAt desc, page 1, 20 per
// page) apply.
type TodoQuery struct {
	Status    TodoStatus
	Priority  TodoPriority
	DueBefore *time.Time
	DueAfter  *time.Time
	Sort      string
	Order     string
	Page      int
	PerPage   int
}

// Values encodes the query as URL parameters.
func (q TodoQuery) Values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Priority != "" {
		v.Set("priority", string(q.Priority))
	}
	if q.DueBefore != nil {
		v.Set("dueBefore", q.DueBefore.UTC().Format(time.RFC3339))
	}
	if q.DueAfter != nil {
		v.Set("dueAfter", q.DueAfter.UTC().Format(time.RFC3339))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("perPage", strconv.Itoa(q.PerPage))
	}
	return v
}
