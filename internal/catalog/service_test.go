package catalog

import (
	"context"
	"encoding/json"
	"testing"
)

type stubClient struct {
	gotPath string
	gotBody any
	result  json.RawMessage
	err     error
}

func (s *stubClient) Get(_ context.Context, path string) (json.RawMessage, error) {
	s.gotPath = path
	return s.result, s.err
}

func (s *stubClient) Post(_ context.Context, path string, body any) (json.RawMessage, error) {
	s.gotPath = path
	s.gotBody = body
	return s.result, s.err
}

func TestListMealsBuildsFilterQuery(t *testing.T) {
	stub := &stubClient{result: json.RawMessage(`{"data":[]}`)}
	svc := &service{client: stub}

	_, err := svc.ListMeals(context.Background(), ListMealsParams{
		CategoryID: "cat-1",
		Search:     "spicy noodles",
		Dietary:    "vegan",
		MinPrice:   "100",
		MaxPrice:   "500",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "/api/meals?categoryId=cat-1&dietary=vegan&maxPrice=500&minPrice=100&search=spicy+noodles"
	if stub.gotPath != want {
		t.Fatalf("expected path %q, got %q", want, stub.gotPath)
	}
}

func TestListMealsForwardsAvailabilityOnlyWhenSet(t *testing.T) {
	stub := &stubClient{result: json.RawMessage(`{"data":[]}`)}
	svc := &service{client: stub}

	if _, err := svc.ListMeals(context.Background(), ListMealsParams{CategoryID: "cat-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/meals?categoryId=cat-1" {
		t.Fatalf("expected no availability filter by default, got %q", stub.gotPath)
	}

	available := true
	if _, err := svc.ListMeals(context.Background(), ListMealsParams{Available: &available}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/meals?isAvailable=true" {
		t.Fatalf("expected explicit availability forwarded, got %q", stub.gotPath)
	}

	available = false
	if _, err := svc.ListMeals(context.Background(), ListMealsParams{Available: &available}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/meals?isAvailable=false" {
		t.Fatalf("expected isAvailable=false forwarded, got %q", stub.gotPath)
	}
}

func TestListMealsWithoutFiltersHasNoQuery(t *testing.T) {
	stub := &stubClient{result: json.RawMessage(`{"data":[]}`)}
	svc := &service{client: stub}

	if _, err := svc.ListMeals(context.Background(), ListMealsParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/meals" {
		t.Fatalf("expected bare path, got %q", stub.gotPath)
	}
}

func TestGetMealEscapesID(t *testing.T) {
	stub := &stubClient{result: json.RawMessage(`{}`)}
	svc := &service{client: stub}

	if _, err := svc.GetMeal(context.Background(), "meal/1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/meals/meal%2F1" {
		t.Fatalf("expected escaped path, got %q", stub.gotPath)
	}

	if _, err := svc.GetMeal(context.Background(), "  "); err == nil {
		t.Fatal("expected blank meal id to be rejected")
	}
}

func TestListReviewsRequiresMealID(t *testing.T) {
	stub := &stubClient{result: json.RawMessage(`[]`)}
	svc := &service{client: stub}

	if _, err := svc.ListReviews(context.Background(), ""); err == nil {
		t.Fatal("expected blank meal id to be rejected")
	}

	if _, err := svc.ListReviews(context.Background(), "meal-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/reviews?mealId=meal-1" {
		t.Fatalf("unexpected path %q", stub.gotPath)
	}
}

func TestSubmitReviewValidatesRating(t *testing.T) {
	stub := &stubClient{result: json.RawMessage(`{}`)}
	svc := &service{client: stub}

	if _, err := svc.SubmitReview(context.Background(), ReviewInput{MealID: "m1", Rating: 0}); err == nil {
		t.Fatal("expected rating 0 to be rejected")
	}
	if _, err := svc.SubmitReview(context.Background(), ReviewInput{MealID: "m1", Rating: 6}); err == nil {
		t.Fatal("expected rating 6 to be rejected")
	}

	if _, err := svc.SubmitReview(context.Background(), ReviewInput{MealID: "m1", Rating: 4, Comment: "great"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.gotPath != "/api/reviews" {
		t.Fatalf("unexpected path %q", stub.gotPath)
	}
	input, ok := stub.gotBody.(ReviewInput)
	if !ok || input.Rating != 4 {
		t.Fatalf("unexpected body %+v", stub.gotBody)
	}
}
