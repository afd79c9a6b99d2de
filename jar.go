package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"time"
)

// refreshCookieName is the HttpOnly cookie the backend uses to carry the
// refresh token.
const refreshCookieName = "refresh_token"

// sessionEntry is the persisted refresh cookie for one server.
type sessionEntry struct {
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// sessionFileData maps server origin to its saved refresh cookie. Entries
// for other servers are preserved on save.
type sessionFileData struct {
	Sessions map[string]*sessionEntry `json:"sessions"`
}

// sessionJar is an http.CookieJar that keeps the refresh cookie across
// process restarts, standing in for the browser's durable cookie store. Only
// the refresh cookie is persisted; access tokens stay in memory. Writes go
// through a lock file and an atomic rename so concurrent invocations don't
// corrupt the session file.
type sessionJar struct {
	base   *cookiejar.Jar
	path   string
	server *url.URL
}

// newSessionJar creates a jar for the given server and seeds it from the
// session file at path if a usable entry exists.
func newSessionJar(path string, server *url.URL) (*sessionJar, error) {
	base, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	j := &sessionJar{base: base, path: path, server: server}
	j.load()
	return j, nil
}

// Cookies implements http.CookieJar.
func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	return j.base.Cookies(u)
}

// SetCookies implements http.CookieJar. When the backend sets or expires the
// refresh cookie, the change is mirrored to the session file.
func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.base.SetCookies(u, cookies)

	if u.Host != j.server.Host {
		return
	}
	for _, ck := range cookies {
		if ck.Name != refreshCookieName {
			continue
		}
		if err := j.persist(ck); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save session: %v\n", err)
		}
	}
}

// HasRefreshCredential reports whether a refresh cookie would accompany a
// request to the server. The startup guard uses this; it deliberately does
// not look at the access-token store.
func (j *sessionJar) HasRefreshCredential() bool {
	for _, ck := range j.base.Cookies(j.server) {
		if ck.Name == refreshCookieName {
			return true
		}
	}
	return false
}

// origin is the session-file key for this jar's server.
func (j *sessionJar) origin() string {
	return j.server.Scheme + "://" + j.server.Host
}

// load seeds the in-memory jar from the session file. Missing or malformed
// files and expired entries are ignored.
func (j *sessionJar) load() {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return
	}
	var stored sessionFileData
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}
	entry, ok := stored.Sessions[j.origin()]
	if !ok || entry.Value == "" {
		return
	}
	if !entry.Expires.IsZero() && time.Now().After(entry.Expires) {
		return
	}

	// The Secure attribute is intentionally dropped so the cookie also flows
	// to a plain-HTTP development server.
	j.base.SetCookies(j.server, []*http.Cookie{{
		Name:    refreshCookieName,
		Value:   entry.Value,
		Path:    entry.Path,
		Expires: entry.Expires,
	}})
}

// persist writes (or removes, for an expiring cookie) the refresh cookie to
// the session file, merging with entries for other servers.
func (j *sessionJar) persist(ck *http.Cookie) error {
	lock, err := lockFile(j.path)
	if err != nil {
		return fmt.Errorf("failed to lock session file: %w", err)
	}
	defer func() {
		if unlockErr := lock.unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "failed to release lock: %v\n", unlockErr)
		}
	}()

	stored := sessionFileData{}
	if existing, readErr := os.ReadFile(j.path); readErr == nil {
		// Malformed files are replaced rather than failing the save.
		_ = json.Unmarshal(existing, &stored)
	}
	if stored.Sessions == nil {
		stored.Sessions = make(map[string]*sessionEntry)
	}

	if expiredCookie(ck) {
		delete(stored.Sessions, j.origin())
	} else {
		stored.Sessions[j.origin()] = &sessionEntry{
			Value:   ck.Value,
			Path:    ck.Path,
			Expires: ck.Expires,
		}
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			return fmt.Errorf(
				"failed to rename temp file: %v; additionally failed to remove temp file: %w",
				err,
				removeErr,
			)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// expiredCookie reports whether ck is a deletion cookie (Max-Age=0 or an
// expiry in the past).
func expiredCookie(ck *http.Cookie) bool {
	if ck.MaxAge < 0 {
		return true
	}
	return !ck.Expires.IsZero() && time.Now().After(ck.Expires)
}
