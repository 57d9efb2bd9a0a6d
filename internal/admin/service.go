// Package admin proxies the admin dashboard: platform stats, user
// administration, and category management.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/foodhubhq/storefront-gateway/pkg/backend"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
)

// UserStatusInput toggles a user account.
type UserStatusInput struct {
	IsActive bool `json:"isActive"`
}

// CategoryInput creates or updates a meal category.
type CategoryInput struct {
	Name  string  `json:"name" validate:"required,min=2,max=100"`
	Image *string `json:"image,omitempty"`
}

type Service interface {
	Stats(ctx context.Context) (json.RawMessage, error)
	ListUsers(ctx context.Context) (json.RawMessage, error)
	UpdateUserStatus(ctx context.Context, userID string, input UserStatusInput) (json.RawMessage, error)
	CreateCategory(ctx context.Context, input CategoryInput) (json.RawMessage, error)
	UpdateCategory(ctx context.Context, categoryID string, input CategoryInput) (json.RawMessage, error)
	DeleteCategory(ctx context.Context, categoryID string) (json.RawMessage, error)
}

type restClient interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

type service struct {
	client restClient
}

func NewService(client *backend.Client) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client required")
	}
	return &service{client: client}, nil
}

func (s *service) Stats(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/admin/stats")
}

func (s *service) ListUsers(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/users")
}

func (s *service) UpdateUserStatus(ctx context.Context, userID string, input UserStatusInput) (json.RawMessage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.client.Patch(ctx, "/api/users/"+url.PathEscape(userID)+"/status", input)
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (json.RawMessage, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	return s.client.Post(ctx, "/api/categories", input)
}

func (s *service) UpdateCategory(ctx context.Context, categoryID string, input CategoryInput) (json.RawMessage, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	return s.client.Put(ctx, "/api/categories/"+url.PathEscape(categoryID), input)
}

func (s *service) DeleteCategory(ctx context.Context, categoryID string) (json.RawMessage, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	return s.client.Delete(ctx, "/api/categories/"+url.PathEscape(categoryID))
}
