package api

// Endpoint paths of the todo-web backend. Auth endpoints live under a
// common prefix; everything except login/register/refresh/logout requires
// a bearer token.
const (
	authBase = "/api/auth"

	// URIAuthRefresh exchanges the refresh cookie for a new access token.
	URIAuthRefresh = authBase + "/refresh"
	// URIAuthRegister creates a new account.
	URIAuthRegister = authBase + "/register"
	// URIAuthMe returns the user owning the presented access token.
	URIAuthMe = authBase + "/me"
	// URIAuthLogin exchanges credentials for an access token.
	URIAuthLogin = authBase + "/login"
	// URIAuthLogout revokes the refresh token server-side.
	URIAuthLogout = authBase + "/logout"

	// URITodos is the todo collection root.
	URITodos = "/api/todos"
)
