package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	retry "github.com/appleboy/go-httpretry"
	"github.com/joho/godotenv"

	tea "charm.land/bubbletea/v2"
	"github.com/co191194/todo-cli/api"
	"github.com/co191194/todo-cli/tui"
)

var (
	serverURL         string
	sessionFile       string
	startAt           string
	flagServerURL     *string
	flagSessionFile   *string
	flagStartAt       *string
	configInitialized bool
	retryClient       *retry.Client
	jar               *sessionJar
)

// Timeout configuration for different operations
const (
	bootstrapTimeout = 10 * time.Second
	listTimeout      = 10 * time.Second
)

func init() {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	// Define flags (but don't parse yet to avoid conflicts with test flags)
	flagServerURL = flag.String(
		"server-url",
		"",
		"todo-web API URL (default: http://localhost:8000 or SERVER_URL env)",
	)
	flagSessionFile = flag.String(
		"session-file",
		"",
		"Session storage file (default: .todo-session.json or SESSION_FILE env)",
	)
	flagStartAt = flag.String(
		"start",
		"home",
		"Screen to open: home, login, or register",
	)
}

// initConfig parses flags and initializes configuration
// Separated from init() to avoid conflicts with test flag parsing
func initConfig() {
	if configInitialized {
		return
	}
	configInitialized = true

	flag.Parse()

	// Priority: flag > env > default
	serverURL = getConfig(*flagServerURL, "SERVER_URL", "http://localhost:8000")
	sessionFile = getConfig(*flagSessionFile, "SESSION_FILE", ".todo-session.json")
	startAt = *flagStartAt

	// Validate SERVER_URL format
	apiURL, err := validateServerURL(serverURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid SERVER_URL: %v\n", err)
		os.Exit(1)
	}

	// Warn if using HTTP instead of HTTPS
	if strings.HasPrefix(strings.ToLower(serverURL), "http://") {
		fmt.Fprintln(
			os.Stderr,
			"⚠️  WARNING: Using HTTP instead of HTTPS. Tokens will be transmitted in plaintext!",
		)
		fmt.Fprintln(
			os.Stderr,
			"⚠️  This is only safe for local development. Use HTTPS in production.",
		)
		fmt.Fprintln(os.Stderr)
	}

	// Cookie jar seeded from the session file; the backend's refresh cookie
	// survives restarts through it.
	jar, err = newSessionJar(sessionFile, apiURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize session store: %v\n", err)
		os.Exit(1)
	}

	// Initialize HTTP client with retry support
	baseHTTPClient := &http.Client{
		Jar: jar,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			DisableKeepAlives:   false,
		},
	}

	// Wrap with retry logic using go-httpretry
	retryClient, err = retry.NewBackgroundClient(
		retry.WithHTTPClient(baseHTTPClient),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create retry client: %v", err))
	}
}

// getConfig returns value with priority: flag > env > default
func getConfig(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return getEnv(envKey, defaultValue)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// validateServerURL validates that the server URL is properly formatted and
// returns it parsed.
func validateServerURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, errors.New("server URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("URL scheme must be http or https, got: %s", u.Scheme)
	}

	if u.Host == "" {
		return nil, errors.New("URL must include a host")
	}

	return u, nil
}

// isTTY reports whether stderr is a character device (interactive terminal).
// We check stderr so the plain mode stays usable when stdout is piped.
func isTTY() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func main() {
	initConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(serverURL, retryClient)
	auth := api.NewAuth(client)
	todos := api.NewTodoService(client)

	// Restore the previous session from the refresh cookie. Failures leave
	// the session unauthenticated and are not reported.
	bootCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	auth.Bootstrap(bootCtx)
	cancel()

	if !isTTY() {
		if err := runPlain(ctx, os.Stdout, auth, todos); err != nil {
			os.Exit(1)
		}
		return
	}

	start := resolveStartScreen(tui.ScreenFromName(startAt), jar.HasRefreshCredential())
	p := tea.NewProgram(tui.New(auth, todos, start))

	// A failed refresh means the session is gone: drop the local user and
	// send the TUI back to the login screen.
	client.OnSessionExpired(func() {
		auth.ClearSession()
		p.Send(tui.MsgSessionExpired{})
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}

// runPlain is the non-interactive mode used when stderr is not a terminal:
// print the session owner and the current todo list to stdout, pipe-friendly.
func runPlain(ctx context.Context, w io.Writer, auth *api.Auth, todos *api.TodoService) error {
	session := auth.Session()
	if !session.Authenticated() {
		fmt.Fprintln(os.Stderr, "Not logged in. Run todo-cli in a terminal to log in.")
		return errors.New("not logged in")
	}
	fmt.Fprintf(w, "Logged in as %s\n", session.User.Email)

	listCtx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	list, err := todos.List(listCtx, api.TodoQuery{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list todos: %v\n", err)
		return err
	}

	writePlainTodos(w, list)
	return nil
}

// writePlainTodos prints one line per todo.
func writePlainTodos(w io.Writer, list *api.TodoListResponse) {
	if len(list.Items) == 0 {
		fmt.Fprintln(w, "No todos.")
		return
	}
	for _, t := range list.Items {
		line := fmt.Sprintf("[%s] %s (%s)", t.Status, t.Title, t.Priority)
		if t.DueDate != nil {
			line += " due " + t.DueDate.Local().Format("2006-01-02")
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%d of %d shown\n", len(list.Items), list.Total)
}
