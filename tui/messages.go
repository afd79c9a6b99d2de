package tui

import (
	"github.com/co191194/todo-cli/api"
)

// MsgLoginDone signals that a login attempt has settled.
type MsgLoginDone struct{ Err error }

// MsgRegisterDone signals that a registration (plus auto-login) has settled.
type MsgRegisterDone struct{ Err error }

// MsgLoggedOut signals that logout finished; the local session is clear.
type MsgLoggedOut struct{}

// MsgTodosLoaded carries a freshly fetched page of todos.
type MsgTodosLoaded struct {
	List *api.TodoListResponse
	Err  error
}

// MsgTodoSaved signals that a create or update call has settled.
type MsgTodoSaved struct {
	Todo *api.Todo
	Err  error
}

// MsgTodoDeleted signals that a delete call has settled.
type MsgTodoDeleted struct {
	ID  string
	Err error
}

// MsgSessionExpired signals that a token refresh failed and the session was
// cleared. Sent from outside the program by the API client's hook.
type MsgSessionExpired struct{}
