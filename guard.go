package main

import "github.com/co191194/todo-cli/tui"

// resolveStartScreen applies the navigation rules the web app enforced in
// its route middleware: the todo screen requires the ambient refresh
// credential, and the login/register screens bounce an already-credentialed
// user back home. The decision runs before any screen renders and looks
// only at the refresh credential, never at the access-token store.
func resolveStartScreen(requested tui.Screen, hasRefreshCredential bool) tui.Screen {
	switch requested {
	case tui.ScreenLogin, tui.ScreenRegister:
		if hasRefreshCredential {
			return tui.ScreenTodos
		}
	default:
		if !hasRefreshCredential {
			return tui.ScreenLogin
		}
	}
	return requested
}
