// Package users proxies profile reads and writes for the signed-in user.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/foodhubhq/storefront-gateway/pkg/backend"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
)

// ProfileInput is the editable slice of a user profile.
type ProfileInput struct {
	Name  string  `json:"name" validate:"required,min=2,max=100"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

type Service interface {
	Profile(ctx context.Context) (json.RawMessage, error)
	UpdateProfile(ctx context.Context, input ProfileInput) (json.RawMessage, error)
}

type restClient interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
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

func (s *service) Profile(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/users/profile")
}

func (s *service) UpdateProfile(ctx context.Context, input ProfileInput) (json.RawMessage, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return s.client.Put(ctx, "/api/users/profile", input)
}
