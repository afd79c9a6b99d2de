package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", raw, err)
	}
	return u
}

func newTestJar(t *testing.T, path, server string) *sessionJar {
	t.Helper()
	j, err := newSessionJar(path, mustParseURL(t, server))
	if err != nil {
		t.Fatalf("failed to create session jar: %v", err)
	}
	return j
}

func refreshCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:    refreshCookieName,
		Value:   value,
		Path:    "/",
		Expires: expires,
	}
}

func TestSessionJar_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	server := "http://todo.example.com"
	expires := time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second)

	j1 := newTestJar(t, path, server)
	if j1.HasRefreshCredential() {
		t.Fatal("fresh jar must not report a credential")
	}

	j1.SetCookies(mustParseURL(t, server), []*http.Cookie{refreshCookie("r1", expires)})
	if !j1.HasRefreshCredential() {
		t.Fatal("expected a credential after SetCookies")
	}

	// A fresh jar over the same file sees the saved cookie.
	j2 := newTestJar(t, path, server)
	if !j2.HasRefreshCredential() {
		t.Fatal("expected the reloaded jar to hold the credential")
	}
	var value string
	for _, ck := range j2.Cookies(mustParseURL(t, server)) {
		if ck.Name == refreshCookieName {
			value = ck.Value
		}
	}
	if value != "r1" {
		t.Errorf("reloaded cookie value = %q, want %q", value, "r1")
	}
}

func TestSessionJar_DeletionCookieRemovesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	server := "http://todo.example.com"
	u := mustParseURL(t, server)

	j := newTestJar(t, path, server)
	j.SetCookies(u, []*http.Cookie{refreshCookie("r1", time.Now().Add(time.Hour))})

	// The backend expires the cookie on logout.
	j.SetCookies(u, []*http.Cookie{{Name: refreshCookieName, Value: "", Path: "/", MaxAge: -1}})

	if j.HasRefreshCredential() {
		t.Error("expected no credential after the deletion cookie")
	}
	if newTestJar(t, path, server).HasRefreshCredential() {
		t.Error("expected the deletion to be persisted")
	}
}

func TestSessionJar_ExpiredEntryNotLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	server := "http://todo.example.com"

	stored := sessionFileData{Sessions: map[string]*sessionEntry{
		"http://todo.example.com": {
			Value:   "r1",
			Path:    "/",
			Expires: time.Now().Add(-time.Hour),
		},
	}}
	data, err := json.Marshal(stored)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if newTestJar(t, path, server).HasRefreshCredential() {
		t.Error("an expired entry must not seed the jar")
	}
}

func TestSessionJar_MalformedFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not json{"), 0o600); err != nil {
		t.Fatal(err)
	}

	server := "http://todo.example.com"
	j := newTestJar(t, path, server)
	if j.HasRefreshCredential() {
		t.Error("a malformed file must not seed the jar")
	}

	// Saving replaces the malformed file.
	j.SetCookies(mustParseURL(t, server), []*http.Cookie{refreshCookie("r1", time.Now().Add(time.Hour))})
	if !newTestJar(t, path, server).HasRefreshCredential() {
		t.Error("expected the save to recover the file")
	}
}

func TestSessionJar_OtherCookiesNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	server := "http://todo.example.com"

	j := newTestJar(t, path, server)
	j.SetCookies(mustParseURL(t, server), []*http.Cookie{
		{Name: "theme", Value: "dark", Path: "/"},
	})

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no session file for non-refresh cookies, stat err = %v", err)
	}
}

func TestSessionJar_PreservesOtherServers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	expires := time.Now().Add(time.Hour)

	servers := []string{"http://a.example.com", "http://b.example.com"}
	for i, s := range servers {
		j := newTestJar(t, path, s)
		j.SetCookies(mustParseURL(t, s), []*http.Cookie{refreshCookie(fmt.Sprintf("r%d", i), expires)})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var stored sessionFileData
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatal(err)
	}
	if len(stored.Sessions) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(stored.Sessions), stored.Sessions)
	}
	for _, s := range servers {
		if _, ok := stored.Sessions[s]; !ok {
			t.Errorf("missing entry for %s", s)
		}
	}
}

func TestSessionJar_ConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	expires := time.Now().Add(time.Hour)

	const writers = 5
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			server := fmt.Sprintf("http://host%d.example.com", i)
			j := newTestJar(t, path, server)
			j.SetCookies(mustParseURL(t, server), []*http.Cookie{refreshCookie("r", expires)})
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var stored sessionFileData
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("session file corrupted: %v", err)
	}
	if len(stored.Sessions) != writers {
		t.Errorf("expected %d entries, got %d", writers, len(stored.Sessions))
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Errorf("lock file left behind, stat err = %v", err)
	}
}
