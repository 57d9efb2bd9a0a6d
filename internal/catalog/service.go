// Package catalog proxies meal, category, provider, and review browsing
// to the FoodHub backend. The gateway adds no caching here: listings are
// already paginated upstream and prices must never be stale.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/foodhubhq/storefront-gateway/pkg/backend"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
)

// ListMealsParams mirrors the storefront's meal filters. Available is a
// tri-state: nil forwards no availability filter, which is what the
// browse page wants so sold-out meals still render greyed out.
type ListMealsParams struct {
	CategoryID string
	Search     string
	ProviderID string
	Dietary    string
	MinPrice   string
	MaxPrice   string
	Available  *bool
}

// ReviewInput is a customer review submission for a meal.
type ReviewInput struct {
	MealID  string `json:"mealId" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=1000"`
}

// Service exposes the browse surfaces of the storefront.
type Service interface {
	ListMeals(ctx context.Context, params ListMealsParams) (json.RawMessage, error)
	GetMeal(ctx context.Context, mealID string) (json.RawMessage, error)
	ListCategories(ctx context.Context) (json.RawMessage, error)
	ListProviders(ctx context.Context) (json.RawMessage, error)
	GetProviderProfile(ctx context.Context, providerID string) (json.RawMessage, error)
	ListReviews(ctx context.Context, mealID string) (json.RawMessage, error)
	SubmitReview(ctx context.Context, input ReviewInput) (json.RawMessage, error)
}

type restClient interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
}

type service struct {
	client restClient
}

// NewService builds the catalog proxy over the backend client.
func NewService(client *backend.Client) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client required")
	}
	return &service{client: client}, nil
}

func (s *service) ListMeals(ctx context.Context, params ListMealsParams) (json.RawMessage, error) {
	query := url.Values{}
	if v := strings.TrimSpace(params.CategoryID); v != "" {
		query.Set("categoryId", v)
	}
	if v := strings.TrimSpace(params.Search); v != "" {
		query.Set("search", v)
	}
	if v := strings.TrimSpace(params.ProviderID); v != "" {
		query.Set("providerId", v)
	}
	if v := strings.TrimSpace(params.Dietary); v != "" {
		query.Set("dietary", v)
	}
	if v := strings.TrimSpace(params.MinPrice); v != "" {
		query.Set("minPrice", v)
	}
	if v := strings.TrimSpace(params.MaxPrice); v != "" {
		query.Set("maxPrice", v)
	}
	if params.Available != nil {
		query.Set("isAvailable", strconv.FormatBool(*params.Available))
	}

	path := "/api/meals"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return s.client.Get(ctx, path)
}

func (s *service) GetMeal(ctx context.Context, mealID string) (json.RawMessage, error) {
	mealID = strings.TrimSpace(mealID)
	if mealID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meal id is required")
	}
	return s.client.Get(ctx, "/api/meals/"+url.PathEscape(mealID))
}

func (s *service) ListCategories(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/categories")
}

func (s *service) ListProviders(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/api/provider-profile")
}

func (s *service) GetProviderProfile(ctx context.Context, providerID string) (json.RawMessage, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "provider id is required")
	}
	return s.client.Get(ctx, "/api/provider-profile/"+url.PathEscape(providerID))
}

func (s *service) ListReviews(ctx context.Context, mealID string) (json.RawMessage, error) {
	mealID = strings.TrimSpace(mealID)
	if mealID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meal id is required")
	}
	query := url.Values{}
	query.Set("mealId", mealID)
	return s.client.Get(ctx, "/api/reviews?"+query.Encode())
}

func (s *service) SubmitReview(ctx context.Context, input ReviewInput) (json.RawMessage, error) {
	if strings.TrimSpace(input.MealID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meal id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return s.client.Post(ctx, "/api/reviews", input)
}
