// Package provider proxies the provider dashboard surfaces: the business
// profile and the provider's own menu management.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/foodhubhq/storefront-gateway/pkg/backend"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
	"github.com/shopspring/decimal"
)

// ProfileInput creates or updates the provider's business profile.
type ProfileInput struct {
	BusinessName string `json:"businessName" validate:"required,min=2,max=150"`
	Address      string `json:"address" validate:"required,min=5"`
	Description  string `json:"description,omitempty" validate:"max=1000"`
}

// MealInput is the provider's create/update payload for a menu item.
type MealInput struct {
	Name        string          `json:"name" validate:"required,min=2,max=150"`
	Description string          `json:"description,omitempty" validate:"max=1000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	Image       *string         `json:"image,omitempty"`
	Dietary     *string         `json:"dietary,omitempty"`
	SpiceLevel  *string         `json:"spiceLevel,omitempty"`
	IsAvailable bool            `json:"isAvailable"`
}

type Service interface {
	Profile(ctx context.Context) (json.RawMessage, error)
	UpsertProfile(ctx context.Context, input ProfileInput) (json.RawMessage, error)
	MyMeals(ctx context.Context) (json.RawMessage, error)
	CreateMeal(ctx context.Context, input MealInput) (json.RawMessage, error)
	UpdateMeal(ctx context.Context, mealID string, input MealInput) (json.RawMessage, error)
	DeleteMeal(ctx context.Context, mealID string) (json.RawMessage, error)
}

type restClient interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
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

func (s *service) Profile(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/provider/profile")
}

func (s *service) UpsertProfile(ctx context.Context, input ProfileInput) (json.RawMessage, error) {
	if strings.TrimSpace(input.BusinessName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	return s.client.Post(ctx, "/api/provider/profile", input)
}

func (s *service) MyMeals(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/meals/my-meals")
}

func (s *service) CreateMeal(ctx context.Context, input MealInput) (json.RawMessage, error) {
	if err := validateMeal(input); err != nil {
		return nil, err
	}
	return s.client.Post(ctx, "/api/meals", input)
}

func (s *service) UpdateMeal(ctx context.Context, mealID string, input MealInput) (json.RawMessage, error) {
	mealID, err := requireID(mealID)
	if err != nil {
		return nil, err
	}
	if err := validateMeal(input); err != nil {
		return nil, err
	}
	return s.client.Put(ctx, "/api/meals/"+mealID, input)
}

func (s *service) DeleteMeal(ctx context.Context, mealID string) (json.RawMessage, error) {
	mealID, err := requireID(mealID)
	if err != nil {
		return nil, err
	}
	return s.client.Delete(ctx, "/api/meals/"+mealID)
}

func validateMeal(input MealInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "meal name is required")
	}
	if strings.TrimSpace(input.CategoryID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	return nil
}

func requireID(mealID string) (string, error) {
	mealID = strings.TrimSpace(mealID)
	if mealID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "meal id is required")
	}
	return url.PathEscape(mealID), nil
}
