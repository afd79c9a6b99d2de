package api

import (
	"context"
	"sync"
)

// Session is the UI-facing authentication state. The user is nil while
// unauthenticated; Loading is true until the initial session restore has
// settled.
type Session struct {
	User    *User
	Loading bool
}

// Authenticated reports whether a user is present.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Auth orchestrates login, registration, logout and session restoration on
// top of the authenticated client. It owns the session state; the token
// itself lives in the client's token store.
type Auth struct {
	client *Client

	mu      sync.Mutex
	user    *User
	loading bool
}

// NewAuth creates the auth facade. The session starts unauthenticated with
// the loading flag set, matching a client that has not yet bootstrapped.
func NewAuth(c *Client) *Auth {
	return &Auth{client: c, loading: true}
}

// Session returns a snapshot of the current session state.
func (a *Auth) Session() Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Session{User: a.user, Loading: a.loading}
}

// Login exchanges credentials for an access token, then resolves the user
// behind it. HTTP errors propagate untouched so the UI can map a 401 to an
// invalid-credentials message.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	var ar AuthResponse
	req := LoginRequest{Email: email, Password: password}
	if err := a.client.Post(ctx, URIAuthLogin, req, &ar); err != nil {
		return err
	}
	a.client.Tokens().Set(ar.Token())

	var u User
	if err := a.client.Get(ctx, URIAuthMe, &u); err != nil {
		return err
	}
	a.setUser(&u)
	return nil
}

// Register creates an account and logs in with the same credentials. A 409
// from the server means the email is already taken and propagates untouched.
func (a *Auth) Register(ctx context.Context, email, password string) error {
	req := RegisterRequest{Email: email, Password: password}
	if err := a.client.Post(ctx, URIAuthRegister, req, nil); err != nil {
		return err
	}
	return a.Login(ctx, email, password)
}

// Logout revokes the session server-side and clears local state. Transport
// and server errors are swallowed: logging out always succeeds client-side.
func (a *Auth) Logout(ctx context.Context) {
	_ = a.client.Post(ctx, URIAuthLogout, nil, nil)
	a.client.Tokens().Clear()
	a.setUser(nil)
}

// Bootstrap attempts to restore the previous session from the ambient
// refresh credential. It never returns an error: any failure leaves the
// session unauthenticated. The loading flag drops once the attempt settles.
func (a *Auth) Bootstrap(ctx context.Context) {
	defer a.setLoading(false)

	var ar AuthResponse
	if err := a.client.Post(ctx, URIAuthRefresh, nil, &ar); err != nil {
		a.client.Tokens().Clear()
		a.setUser(nil)
		return
	}
	a.client.Tokens().Set(ar.Token())

	var u User
	if err := a.client.Get(ctx, URIAuthMe, &u); err != nil {
		a.client.Tokens().Clear()
		a.setUser(nil)
		return
	}
	a.setUser(&u)
}

// ClearSession drops the local user without contacting the server. Wired to
// the client's session-expired hook.
func (a *Auth) ClearSession() {
	a.setUser(nil)
}

func (a *Auth) setUser(u *User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

func (a *Auth) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}
