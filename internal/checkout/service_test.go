package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/foodhubhq/storefront-gateway/internal/cart"
	"github.com/shopspring/decimal"
)

type stubClient struct {
	gotPath string
	gotBody any
	err     error
}

func (s *stubClient) Post(_ context.Context, path string, body any) (json.RawMessage, error) {
	s.gotPath = path
	s.gotBody = body
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(`{"data":{"id":"order-1"}}`), nil
}

func seededStore(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore(context.Background(), "foodhub_cart", cart.NewMemoryStorage(), nil, nil)
	store.AddItem(context.Background(), cart.Item{
		MealID:    "meal-1",
		Name:      "Margherita",
		UnitPrice: decimal.RequireFromString("9.50"),
	}, 2)
	return store
}

func validInput() Input {
	return Input{
		DeliveryAddress: "12 Baker Street, Springfield",
		Phone:           "0123456789",
		Notes:           "ring the bell",
	}
}

func TestPlaceOrderBuildsPayloadFromCart(t *testing.T) {
	stub := &stubClient{}
	store := seededStore(t)
	svc := &service{client: stub, cart: store}

	_, err := svc.PlaceOrder(context.Background(), "", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/orders" {
		t.Fatalf("unexpected path %q", stub.gotPath)
	}

	payload, ok := stub.gotBody.(orderPayload)
	if !ok {
		t.Fatalf("unexpected body type %T", stub.gotBody)
	}
	if len(payload.Items) != 1 || payload.Items[0].MealID != "meal-1" || payload.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", payload.Items)
	}
	if !payload.Subtotal.Equal(decimal.RequireFromString("19")) {
		t.Fatalf("unexpected subtotal %s", payload.Subtotal)
	}
	if !payload.Total.Equal(decimal.RequireFromString("69")) {
		t.Fatalf("expected subtotal plus delivery fee, got %s", payload.Total)
	}
}

func TestPlaceOrderClearsCartOnSuccessOnly(t *testing.T) {
	stub := &stubClient{}
	store := seededStore(t)
	svc := &service{client: stub, cart: store}

	if _, err := svc.PlaceOrder(context.Background(), "", validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.Lines()) != 0 {
		t.Fatal("expected cart cleared after accepted order")
	}

	store.AddItem(context.Background(), cart.Item{MealID: "meal-2", Name: "Ramen", UnitPrice: decimal.RequireFromString("12")}, 1)
	stub.err = errors.New("upstream down")
	if _, err := svc.PlaceOrder(context.Background(), "", validInput()); err == nil {
		t.Fatal("expected placement failure to propagate")
	}
	if len(store.Lines()) != 1 {
		t.Fatal("expected cart kept for retry after failed placement")
	}
}

func TestPlaceOrderActsOnCallerScopeNotActiveOwner(t *testing.T) {
	stub := &stubClient{}
	store := cart.NewStore(context.Background(), "foodhub_cart", cart.NewMemoryStorage(), nil, nil)
	store.For("alice").AddItem(context.Background(), cart.Item{
		MealID:    "meal-1",
		Name:      "Margherita",
		UnitPrice: decimal.RequireFromString("9.50"),
	}, 2)
	svc := &service{client: stub, cart: store}

	// Another request switched the store to bob's scope mid-flight.
	store.SetOwner(context.Background(), "bob")

	if _, err := svc.PlaceOrder(context.Background(), "alice", validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, ok := stub.gotBody.(orderPayload)
	if !ok || len(payload.Items) != 1 || payload.Items[0].MealID != "meal-1" {
		t.Fatalf("expected alice's cart in the order, got %+v", stub.gotBody)
	}
	if lines := store.For("alice").Lines(context.Background()); len(lines) != 0 {
		t.Fatalf("expected alice's cart cleared after placement, got %v", lines)
	}

	// Bob's scope was never snapshotted or cleared; his empty cart is
	// rejected outright.
	if _, err := svc.PlaceOrder(context.Background(), "bob", validInput()); err == nil {
		t.Fatal("expected bob's empty cart to be rejected")
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	svc := &service{
		client: &stubClient{},
		cart:   cart.NewStore(context.Background(), "foodhub_cart", cart.NewMemoryStorage(), nil, nil),
	}

	if _, err := svc.PlaceOrder(context.Background(), "", validInput()); err == nil {
		t.Fatal("expected empty cart to be rejected")
	}
}

func TestPlaceOrderValidatesDeliveryForm(t *testing.T) {
	svc := &service{client: &stubClient{}, cart: seededStore(t)}

	input := validInput()
	input.DeliveryAddress = "too short"
	if _, err := svc.PlaceOrder(context.Background(), "", input); err == nil {
		t.Fatal("expected short address to be rejected")
	}

	input = validInput()
	input.Phone = "555-not-a-phone"
	if _, err := svc.PlaceOrder(context.Background(), "", input); err == nil {
		t.Fatal("expected malformed phone to be rejected")
	}
}
