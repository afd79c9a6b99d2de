package tui

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/co191194/todo-cli/api"
	"github.com/co191194/todo-cli/message"
)

// requestTimeout bounds every API call issued from the TUI.
const requestTimeout = 10 * time.Second

const sessionExpiredNotice = "Your session has expired. Please log in again."

func (m Model) loginCmd(email, password string) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return MsgLoginDone{Err: auth.Login(ctx, email, password)}
	}
}

func (m Model) registerCmd(email, password string) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return MsgRegisterDone{Err: auth.Register(ctx, email, password)}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		auth.Logout(ctx)
		return MsgLoggedOut{}
	}
}

func (m Model) loadTodosCmd() tea.Cmd {
	todos := m.todos
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, err := todos.List(ctx, api.TodoQuery{})
		return MsgTodosLoaded{List: list, Err: err}
	}
}

func (m Model) createTodoCmd(title string) tea.Cmd {
	todos := m.todos
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		t, err := todos.Create(ctx, api.CreateTodoRequest{Title: title})
		return MsgTodoSaved{Todo: t, Err: err}
	}
}

func (m Model) updateStatusCmd(id string, status api.TodoStatus) tea.Cmd {
	todos := m.todos
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		t, err := todos.UpdateStatus(ctx, id, status)
		return MsgTodoSaved{Todo: t, Err: err}
	}
}

func (m Model) deleteTodoCmd(id string) tea.Cmd {
	todos := m.todos
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := todos.Delete(ctx, id)
		return MsgTodoDeleted{ID: id, Err: err}
	}
}

// loginErrorMessage maps a login failure to display text: a 401 means wrong
// credentials, anything else is a generic failure.
func loginErrorMessage(err error) string {
	if api.IsUnauthorized(err) {
		return message.Format(message.E0004, "Email address", "password")
	}
	return message.Format(message.E0005, "Login")
}

// registerErrorMessage maps a registration failure to display text: a 409
// means the email is taken.
func registerErrorMessage(err error) string {
	if api.IsConflict(err) {
		return message.Format(message.E0006, "email address")
	}
	return message.Format(message.E0005, "Registration")
}

// opErrorMessage maps a todo-operation failure to display text.
func opErrorMessage(op string, err error) string {
	if errors.Is(err, api.ErrSessionExpired) {
		return sessionExpiredNotice
	}
	return message.Format(message.E0005, op)
}
