// Package orders proxies order tracking for customers, providers, and
// admins. Order state lives entirely in the backend; the gateway only
// validates inputs and forwards.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/foodhubhq/storefront-gateway/pkg/backend"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
)

// Status is the backend's order lifecycle.
type Status string

const (
	StatusPlaced    Status = "PLACED"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus normalizes a raw status string.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", raw))
	}
	return status, nil
}

// Service exposes the order tracking surfaces.
type Service interface {
	ListMine(ctx context.Context) (json.RawMessage, error)
	Get(ctx context.Context, orderID string) (json.RawMessage, error)
	Cancel(ctx context.Context, orderID string) (json.RawMessage, error)
	ListForProvider(ctx context.Context) (json.RawMessage, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) (json.RawMessage, error)
	ListAll(ctx context.Context) (json.RawMessage, error)
}

type restClient interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
}

type service struct {
	client restClient
}

// NewService builds the orders proxy over the backend client.
func NewService(client *backend.Client) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client required")
	}
	return &service{client: client}, nil
}

func (s *service) ListMine(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/orders")
}

func (s *service) Get(ctx context.Context, orderID string) (json.RawMessage, error) {
	orderID, err := requireID(orderID)
	if err != nil {
		return nil, err
	}
	return s.client.Get(ctx, "/api/orders/"+orderID)
}

func (s *service) Cancel(ctx context.Context, orderID string) (json.RawMessage, error) {
	orderID, err := requireID(orderID)
	if err != nil {
		return nil, err
	}
	return s.client.Put(ctx, "/api/orders/"+orderID+"/cancel", map[string]any{})
}

func (s *service) ListForProvider(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/provider/orders")
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) (json.RawMessage, error) {
	orderID, err := requireID(orderID)
	if err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}
	return s.client.Put(ctx, "/api/orders/"+orderID+"/status", map[string]any{"status": status})
}

func (s *service) ListAll(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/orders/admin/all")
}

func requireID(orderID string) (string, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return url.PathEscape(orderID), nil
}
