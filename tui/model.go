package tui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/co191194/todo-cli/api"
)

// Screen identifies the visible page.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenTodos
)

// ScreenFromName maps the -start flag value to a Screen. Unknown names mean
// the home (todos) screen.
func ScreenFromName(name string) Screen {
	switch name {
	case "login":
		return ScreenLogin
	case "register":
		return ScreenRegister
	default:
		return ScreenTodos
	}
}

// Model is the root BubbleTea model: it routes between the login, register
// and todo screens and runs API calls as commands.
type Model struct {
	auth  *api.Auth
	todos *api.TodoService

	screen  Screen
	spinner spinner.Model
	busy    bool
	notice  string

	login    loginForm
	register registerForm
	list     todoList

	width  int
	height int
}

// New creates the root model opening at the given screen.
func New(auth *api.Auth, todos *api.TodoService, start Screen) Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))),
	)
	return Model{
		auth:     auth,
		todos:    todos,
		screen:   start,
		spinner:  s,
		login:    newLoginForm(),
		register: newRegisterForm(),
		list:     newTodoList(),
	}
}

// Init starts the spinner and, when opening on the todo screen, loads the
// list.
func (m Model) Init() tea.Cmd {
	if m.screen == ScreenTodos {
		return tea.Batch(m.spinner.Tick, m.loadTodosCmd())
	}
	return m.spinner.Tick
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			// A request is in flight; swallow input until it settles.
			return m, nil
		}
		return m.updateScreen(msg)

	// ── Results of API commands ──────────────────────────────────────────────

	case MsgLoginDone:
		m.busy = false
		if msg.Err != nil {
			m.login.serverErr = loginErrorMessage(msg.Err)
			return m, nil
		}
		m.login = m.login.reset()
		m.screen = ScreenTodos
		m.notice = ""
		m.busy = true
		return m, m.loadTodosCmd()

	case MsgRegisterDone:
		m.busy = false
		if msg.Err != nil {
			m.register.serverErr = registerErrorMessage(msg.Err)
			return m, nil
		}
		m.register = m.register.reset()
		m.screen = ScreenTodos
		m.notice = ""
		m.busy = true
		return m, m.loadTodosCmd()

	case MsgLoggedOut:
		m.busy = false
		m.screen = ScreenLogin
		m.login = m.login.reset()
		m.register = m.register.reset()
		m.list = newTodoList()
		m.notice = "Logged out."
		return m, nil

	case MsgTodosLoaded:
		m.busy = false
		if msg.Err != nil {
			m.notice = opErrorMessage("Loading todos", msg.Err)
			return m, nil
		}
		m.notice = ""
		m.list = m.list.setItems(msg.List)
		return m, nil

	case MsgTodoSaved:
		m.busy = false
		if msg.Err != nil {
			m.notice = opErrorMessage("Saving the todo", msg.Err)
			return m, nil
		}
		m.busy = true
		return m, m.loadTodosCmd()

	case MsgTodoDeleted:
		m.busy = false
		if msg.Err != nil {
			m.notice = opErrorMessage("Deleting the todo", msg.Err)
			return m, nil
		}
		m.busy = true
		return m, m.loadTodosCmd()

	case MsgSessionExpired:
		m.busy = false
		m.screen = ScreenLogin
		m.login = m.login.reset()
		m.register = m.register.reset()
		m.list = newTodoList()
		m.notice = sessionExpiredNotice
		return m, nil
	}

	return m, nil
}

// updateScreen routes a key press to the active screen.
func (m Model) updateScreen(key tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenLogin:
		if key.String() == "ctrl+r" {
			m.screen = ScreenRegister
			m.register = m.register.reset()
			m.notice = ""
			return m, nil
		}
		form, cmd, submitted := m.login.Update(key)
		m.login = form
		if submitted {
			m.busy = true
			return m, tea.Batch(cmd, m.loginCmd(m.login.email.Value(), m.login.password.Value()))
		}
		return m, cmd

	case ScreenRegister:
		if key.String() == "esc" {
			m.screen = ScreenLogin
			m.login = m.login.reset()
			m.notice = ""
			return m, nil
		}
		form, cmd, submitted := m.register.Update(key)
		m.register = form
		if submitted {
			m.busy = true
			return m, tea.Batch(cmd, m.registerCmd(m.register.email.Value(), m.register.password.Value()))
		}
		return m, cmd

	default:
		list, cmd, action := m.list.Update(key)
		m.list = list
		switch action {
		case todoActionReload:
			m.busy = true
			return m, tea.Batch(cmd, m.loadTodosCmd())
		case todoActionCreate:
			title := m.list.draftTitle()
			m.list.draft.SetValue("")
			m.busy = true
			return m, tea.Batch(cmd, m.createTodoCmd(title))
		case todoActionToggle:
			t := m.list.selected()
			m.busy = true
			return m, tea.Batch(cmd, m.updateStatusCmd(t.ID, t.Status.Next()))
		case todoActionDelete:
			t := m.list.selected()
			m.busy = true
			return m, tea.Batch(cmd, m.deleteTodoCmd(t.ID))
		case todoActionLogout:
			m.busy = true
			return m, tea.Batch(cmd, m.logoutCmd())
		}
		return m, cmd
	}
}

// View renders the active screen inside a common frame.
func (m Model) View() tea.View {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(styleTitleBox.Render(m.title()))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(styleWarn.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(" Working...\n\n")
	}

	switch m.screen {
	case ScreenLogin:
		b.WriteString(m.login.View())
	case ScreenRegister:
		b.WriteString(m.register.View())
	default:
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")

	return tea.NewView(b.String())
}

func (m Model) title() string {
	switch m.screen {
	case ScreenLogin:
		return "  ToDo App · Sign in  "
	case ScreenRegister:
		return "  ToDo App · Create account  "
	default:
		if s := m.auth.Session(); s.Authenticated() {
			return "  ToDo App · " + s.User.Email + "  "
		}
		return "  ToDo App  "
	}
}
