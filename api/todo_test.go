package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTodoQuery_Values(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		query TodoQuery
		want  string
	}{
		{
			name:  "zero query omits everything",
			query: TodoQuery{},
			want:  "",
		},
		{
			name:  "status only",
			query: TodoQuery{Status: StatusPending},
			want:  "status=pending",
		},
		{
			name: "all filters",
			query: TodoQuery{
				Status:    StatusInProgress,
				Priority:  PriorityHigh,
				DueBefore: &due,
				Sort:      "dueDate",
				Order:     "asc",
				Page:      2,
				PerPage:   50,
			},
			want: "dueBefore=2026-03-01T12%3A00%3A00Z&order=asc&page=2&perPage=50&priority=high&sort=dueDate&status=inProgress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Values().Encode(); got != tt.want {
				t.Errorf("Values().Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTodoStatus_Next(t *testing.T) {
	tests := []struct {
		in   TodoStatus
		want TodoStatus
	}{
		{StatusPending, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusCompleted, StatusPending},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTodoService_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("status query = %q, want %q", got, "pending")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"items": []any{map[string]any{
				"id": "t1", "title": "buy milk",
				"status": "pending", "priority": "low",
				"createdAt": "2026-01-02T03:04:05Z", "updatedAt": "2026-01-02T03:04:05Z",
			}},
			"total": 1, "page": 1, "perPage": 20,
		})
	}))
	defer server.Close()

	svc := NewTodoService(newTestClient(t, server.URL))

	list, err := svc.List(context.Background(), TodoQuery{Status: StatusPending})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}
	if got := list.Items[0]; got.ID != "t1" || got.Title != "buy milk" {
		t.Errorf("unexpected item: %+v", got)
	}
}

func TestTodoService_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req CreateTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if req.Title != "buy milk" {
			t.Errorf("title = %q, want %q", req.Title, "buy milk")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "t1", "title": req.Title,
			"status": "pending", "priority": "medium",
			"createdAt": "2026-01-02T03:04:05Z", "updatedAt": "2026-01-02T03:04:05Z",
		})
	}))
	defer server.Close()

	svc := NewTodoService(newTestClient(t, server.URL))

	todo, err := svc.Create(context.Background(), CreateTodoRequest{Title: "buy milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todo.ID != "t1" || todo.Status != StatusPending {
		t.Errorf("unexpected todo: %+v", todo)
	}
}

func TestTodoService_GetAndUpdate(t *testing.T) {
	title := "buy oat milk"
	status := StatusInProgress

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/todos/t1" {
			t.Errorf("path = %s, want /api/todos/t1", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
		case http.MethodPut:
			var req UpdateTodoRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			if req.Title == nil || *req.Title != title {
				t.Errorf("title = %v, want %q", req.Title, title)
			}
			if req.Description != nil || req.Priority != nil {
				t.Errorf("unset fields must be omitted: %+v", req)
			}
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": "t1", "title": title,
			"status": "inProgress", "priority": "low",
			"createdAt": "2026-01-02T03:04:05Z", "updatedAt": "2026-01-03T03:04:05Z",
		})
	}))
	defer server.Close()

	svc := NewTodoService(newTestClient(t, server.URL))

	got, err := svc.Get(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.ID != "t1" || got.Status != StatusInProgress {
		t.Errorf("unexpected todo: %+v", got)
	}

	updated, err := svc.Update(context.Background(), "t1", UpdateTodoRequest{
		Title:  &title,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title = %q, want %q", updated.Title, title)
	}
}

func TestTodoService_UpdateStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if r.URL.Path != "/api/todos/t1/status" {
			t.Errorf("path = %s, want /api/todos/t1/status", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if got := string(body); got != `{"status":"completed"}` {
			t.Errorf("body = %s, want {\"status\":\"completed\"}", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": "t1", "title": "buy milk",
			"status": "completed", "priority": "low",
			"createdAt": "2026-01-02T03:04:05Z", "updatedAt": "2026-01-03T03:04:05Z",
		})
	}))
	defer server.Close()

	svc := NewTodoService(newTestClient(t, server.URL))

	todo, err := svc.UpdateStatus(context.Background(), "t1", StatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todo.Status != StatusCompleted {
		t.Errorf("status = %s, want completed", todo.Status)
	}
}

func TestTodoService_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/todos/t1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := NewTodoService(newTestClient(t, server.URL))

	if err := svc.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
