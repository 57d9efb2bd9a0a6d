// Package checkout turns the active cart into a placed order. The backend
// re-validates pricing and availability; the gateway's job is to snapshot
// the cart, attach the delivery details, and clear the cart only once the
// backend accepts the order.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/foodhubhq/storefront-gateway/internal/cart"
	"github.com/foodhubhq/storefront-gateway/pkg/backend"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
	"github.com/shopspring/decimal"
)

// DeliveryFee is the flat storefront delivery charge.
var DeliveryFee = decimal.NewFromInt(50)

var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// Input carries the delivery form for order placement.
type Input struct {
	DeliveryAddress string `json:"deliveryAddress" validate:"required,min=10"`
	Phone           string `json:"phone" validate:"required"`
	Notes           string `json:"notes,omitempty" validate:"max=500"`
}

type orderLine struct {
	MealID   string          `json:"mealId"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type orderPayload struct {
	DeliveryAddress string          `json:"deliveryAddress"`
	Phone           string          `json:"phone"`
	Notes           string          `json:"notes"`
	Items           []orderLine     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	Total           decimal.Decimal `json:"total"`
}

// Service places orders from the caller's cart scope.
type Service interface {
	PlaceOrder(ctx context.Context, owner string, input Input) (json.RawMessage, error)
}

type restClient interface {
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
}

type service struct {
	client restClient
	cart   *cart.Store
}

// NewService wires the checkout flow over the backend client and cart store.
func NewService(client *backend.Client, store *cart.Store) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{client: client, cart: store}, nil
}

func (s *service) PlaceOrder(ctx context.Context, owner string, input Input) (json.RawMessage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// The scope carries the owner through snapshot and clear, so another
	// caller switching the store to a different owner mid-checkout cannot
	// redirect either step.
	scope := s.cart.For(owner)
	lines := scope.Lines(ctx)
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]orderLine, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		items = append(items, orderLine{
			MealID:   line.MealID,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
		})
		subtotal = subtotal.Add(line.Subtotal())
	}

	payload := orderPayload{
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		Phone:           strings.TrimSpace(input.Phone),
		Notes:           strings.TrimSpace(input.Notes),
		Items:           items,
		Subtotal:        subtotal,
		DeliveryFee:     DeliveryFee,
		Total:           subtotal.Add(DeliveryFee),
	}

	result, err := s.client.Post(ctx, "/api/orders", payload)
	if err != nil {
		return nil, err
	}

	// The cart clears only after the backend accepted the order, so a
	// failed placement leaves everything in place for a retry.
	scope.Clear(ctx)
	return result, nil
}

func validateInput(input Input) error {
	if len(strings.TrimSpace(input.DeliveryAddress)) < 10 {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address must be at least 10 characters")
	}
	if !phonePattern.MatchString(strings.TrimSpace(input.Phone)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone must be 10-15 digits")
	}
	return nil
}
