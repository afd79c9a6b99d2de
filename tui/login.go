package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// loginForm is the email/password form. Validation mirrors the server's
// rules so obviously bad input never leaves the client.
type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int

	emailErr    string
	passwordErr string
	serverErr   string
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "email@example.com"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "8+ characters"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	return loginForm{email: email, password: password}
}

// focusField moves keyboard focus to the field selected by f.focus.
func (f loginForm) focusField() (loginForm, tea.Cmd) {
	f.email.Blur()
	f.password.Blur()
	if f.focus == 0 {
		return f, f.email.Focus()
	}
	return f, f.password.Focus()
}

// reset clears all input and errors, e.g. after logout.
func (f loginForm) reset() loginForm {
	f.email.SetValue("")
	f.password.SetValue("")
	f.emailErr, f.passwordErr, f.serverErr = "", "", ""
	f.focus = 0
	f.password.Blur()
	f.email.Focus()
	return f
}

// validate runs the client-side checks and records field errors. It returns
// true when the form may be submitted.
func (f *loginForm) validate() bool {
	f.emailErr = validateEmail(f.email.Value())
	f.passwordErr = validatePassword(f.password.Value())
	return f.emailErr == "" && f.passwordErr == ""
}

// Update handles form input. The third return value is true when the form
// was submitted with valid values.
func (f loginForm) Update(msg tea.Msg) (loginForm, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.focus = (f.focus + 1) % 2
			f, cmd := f.focusField()
			return f, cmd, false
		case "shift+tab", "up":
			f.focus = (f.focus + 1) % 2
			f, cmd := f.focusField()
			return f, cmd, false
		case "enter":
			if f.focus == 0 {
				f.focus = 1
				f, cmd := f.focusField()
				return f, cmd, false
			}
			f.serverErr = ""
			return f, nil, f.validate()
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd, false
}

func (f loginForm) View() string {
	var b strings.Builder

	if f.serverErr != "" {
		b.WriteString(styleErr.Render(f.serverErr))
		b.WriteString("\n\n")
	}

	b.WriteString(styleBold.Render("Email"))
	b.WriteString("\n")
	b.WriteString(f.email.View())
	b.WriteString("\n")
	if f.emailErr != "" {
		b.WriteString(styleErr.Render(f.emailErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleBold.Render("Password"))
	b.WriteString("\n")
	b.WriteString(f.password.View())
	b.WriteString("\n")
	if f.passwordErr != "" {
		b.WriteString(styleErr.Render(f.passwordErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render("enter: sign in • ctrl+r: create account • ctrl+c: quit"))
	return b.String()
}
