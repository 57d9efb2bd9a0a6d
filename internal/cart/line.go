package cart

import "github.com/shopspring/decimal"

// Item is the add-time snapshot of an orderable meal. Name, price, and
// image are captured when the line is created and never re-fetched.
type Item struct {
	MealID    string          `json:"mealId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Image     *string         `json:"image,omitempty"`
}

// Line is one cart entry: an item snapshot plus its quantity. A cart holds
// at most one Line per MealID.
type Line struct {
	MealID    string          `json:"mealId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     *string         `json:"image,omitempty"`
}

// Subtotal returns unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
