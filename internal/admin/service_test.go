package admin

import (
	"context"
	"encoding/json"
	"testing"
)

type stubClient struct {
	gotMethod string
	gotPath   string
	gotBody   any
}

func (s *stubClient) Get(_ context.Context, path string) (json.RawMessage, error) {
	s.gotMethod, s.gotPath = "GET", path
	return json.RawMessage(`{}`), nil
}

func (s *stubClient) Post(_ context.Context, path string, body any) (json.RawMessage, error) {
	s.gotMethod, s.gotPath, s.gotBody = "POST", path, body
	return json.RawMessage(`{}`), nil
}

func (s *stubClient) Put(_ context.Context, path string, body any) (json.RawMessage, error) {
	s.gotMethod, s.gotPath, s.gotBody = "PUT", path, body
	return json.RawMessage(`{}`), nil
}

func (s *stubClient) Patch(_ context.Context, path string, body any) (json.RawMessage, error) {
	s.gotMethod, s.gotPath, s.gotBody = "PATCH", path, body
	return json.RawMessage(`{}`), nil
}

func (s *stubClient) Delete(_ context.Context, path string) (json.RawMessage, error) {
	s.gotMethod, s.gotPath = "DELETE", path
	return json.RawMessage(`{}`), nil
}

func TestStatsAndUsersPaths(t *testing.T) {
	stub := &stubClient{}
	svc := &service{client: stub}

	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/admin/stats" {
		t.Fatalf("unexpected path %q", stub.gotPath)
	}

	if _, err := svc.ListUsers(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/users" {
		t.Fatalf("unexpected path %q", stub.gotPath)
	}

	if _, err := svc.UpdateUserStatus(context.Background(), "user-1", UserStatusInput{IsActive: false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotMethod != "PATCH" || stub.gotPath != "/api/users/user-1/status" {
		t.Fatalf("unexpected call %s %s", stub.gotMethod, stub.gotPath)
	}
}

func TestCategoryCRUDPaths(t *testing.T) {
	stub := &stubClient{}
	svc := &service{client: stub}

	if _, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Pizza"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotMethod != "POST" || stub.gotPath != "/api/categories" {
		t.Fatalf("unexpected call %s %s", stub.gotMethod, stub.gotPath)
	}

	if _, err := svc.UpdateCategory(context.Background(), "cat-1", CategoryInput{Name: "Pizza"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotMethod != "PUT" || stub.gotPath != "/api/categories/cat-1" {
		t.Fatalf("unexpected call %s %s", stub.gotMethod, stub.gotPath)
	}

	if _, err := svc.DeleteCategory(context.Background(), "cat-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotMethod != "DELETE" || stub.gotPath != "/api/categories/cat-1" {
		t.Fatalf("unexpected call %s %s", stub.gotMethod, stub.gotPath)
	}
}

func TestAdminValidation(t *testing.T) {
	svc := &service{client: &stubClient{}}

	if _, err := svc.UpdateUserStatus(context.Background(), " ", UserStatusInput{}); err == nil {
		t.Fatal("expected blank user id to be rejected")
	}
	if _, err := svc.CreateCategory(context.Background(), CategoryInput{}); err == nil {
		t.Fatal("expected blank category name to be rejected")
	}
	if _, err := svc.UpdateCategory(context.Background(), "", CategoryInput{Name: "Pizza"}); err == nil {
		t.Fatal("expected blank category id to be rejected")
	}
	if _, err := svc.DeleteCategory(context.Background(), ""); err == nil {
		t.Fatal("expected blank category id to be rejected")
	}
}
