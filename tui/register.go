package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// registerForm is the account-creation form: login fields plus a password
// confirmation.
type registerForm struct {
	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focus    int

	emailErr    string
	passwordErr string
	confirmErr  string
	serverErr   string
}

func newRegisterForm() registerForm {
	email := textinput.New()
	email.Placeholder = "email@example.com"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "8+ characters"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	confirm := textinput.New()
	confirm.Placeholder = "repeat password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 128

	return registerForm{email: email, password: password, confirm: confirm}
}

func (f registerForm) focusField() (registerForm, tea.Cmd) {
	f.email.Blur()
	f.password.Blur()
	f.confirm.Blur()
	switch f.focus {
	case 0:
		return f, f.email.Focus()
	case 1:
		return f, f.password.Focus()
	default:
		return f, f.confirm.Focus()
	}
}

func (f registerForm) reset() registerForm {
	f.email.SetValue("")
	f.password.SetValue("")
	f.confirm.SetValue("")
	f.emailErr, f.passwordErr, f.confirmErr, f.serverErr = "", "", "", ""
	f.focus = 0
	f.password.Blur()
	f.confirm.Blur()
	f.email.Focus()
	return f
}

func (f *registerForm) validate() bool {
	f.emailErr = validateEmail(f.email.Value())
	f.passwordErr = validatePassword(f.password.Value())
	f.confirmErr = validateConfirm(f.password.Value(), f.confirm.Value())
	return f.emailErr == "" && f.passwordErr == "" && f.confirmErr == ""
}

// Update handles form input. The third return value is true when the form
// was submitted with valid values.
func (f registerForm) Update(msg tea.Msg) (registerForm, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.focus = (f.focus + 1) % 3
			f, cmd := f.focusField()
			return f, cmd, false
		case "shift+tab", "up":
			f.focus = (f.focus + 2) % 3
			f, cmd := f.focusField()
			return f, cmd, false
		case "enter":
			if f.focus < 2 {
				f.focus++
				f, cmd := f.focusField()
				return f, cmd, false
			}
			f.serverErr = ""
			return f, nil, f.validate()
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.email, cmd = f.email.Update(msg)
	case 1:
		f.password, cmd = f.password.Update(msg)
	default:
		f.confirm, cmd = f.confirm.Update(msg)
	}
	return f, cmd, false
}

func (f registerForm) View() string {
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
	b.WriteString(styleBold.Render("Confirm password"))
	b.WriteString("\n")
	b.WriteString(f.confirm.View())
	b.WriteString("\n")
	if f.confirmErr != "" {
		b.WriteString(styleErr.Render(f.confirmErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render("enter: create account • esc: back to login • ctrl+c: quit"))
	return b.String()
}
