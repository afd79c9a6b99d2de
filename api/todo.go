package api

import (
	"context"
)

// TodoService exposes the todo endpoints. Every call goes through the
// authenticated client, so an expired access token is refreshed and the
// call replayed without the caller noticing.
type TodoService struct {
	client *Client
}

// NewTodoService creates a TodoService backed by c.
func NewTodoService(c *Client) *TodoService {
	return &TodoService{client: c}
}

// List fetches a page of todos matching q.
func (s *TodoService) List(ctx context.Context, q TodoQuery) (*TodoListResponse, error) {
	path := URITodos
	if enc := q.Values().Encode(); enc != "" {
		path += "?" + enc
	}
	var out TodoListResponse
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a new todo.
func (s *TodoService) Create(ctx context.Context, req CreateTodoRequest) (*Todo, error) {
	var out Todo
	if err := s.client.Post(ctx, URITodos, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single todo by id.
func (s *TodoService) Get(ctx context.Context, id string) (*Todo, error) {
	var out Todo
	if err := s.client.Get(ctx, URITodos+"/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the given fields of a todo.
func (s *TodoService) Update(ctx context.Context, id string, req UpdateTodoRequest) (*Todo, error) {
	var out Todo
	if err := s.client.Put(ctx, URITodos+"/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus changes only the status of a todo.
func (s *TodoService) UpdateStatus(ctx context.Context, id string, status TodoStatus) (*Todo, error) {
	var out Todo
	req := UpdateTodoStatusRequest{Status: status}
	if err := s.client.Patch(ctx, URITodos+"/"+id+"/status", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a todo.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, URITodos+"/"+id)
}
