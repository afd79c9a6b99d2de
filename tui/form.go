package tui

import (
	"net/mail"
	"unicode/utf8"

	"github.com/co191194/todo-cli/message"
)

const passwordMinLen = 8

// validateEmail returns a catalog message when s is not a plausible email
// address, or "" when it is.
func validateEmail(s string) string {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return message.Format(message.E0001, "email address")
	}
	return ""
}

// validatePassword enforces the minimum password length.
func validatePassword(s string) string {
	if utf8.RuneCountInString(s) < passwordMinLen {
		return message.Format(message.E0002, "Password", "8")
	}
	return ""
}

// validateConfirm checks the password confirmation field.
func validateConfirm(password, confirm string) string {
	if password != confirm {
		return message.Format(message.E0003, "Password")
	}
	return ""
}
