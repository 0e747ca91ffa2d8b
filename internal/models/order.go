package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order. Status transitions are
// caller-driven and any value is accepted; these constants cover the
// statuses the store itself aggregates over.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Address is a shipping or billing address. All fields are required.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// addressFields lists the required fields in validation order
var addressFields = []struct {
	name  string
	value func(*Address) string
}{
	{"street", func(a *Address) string { return a.Street }},
	{"city", func(a *Address) string { return a.City }},
	{"state", func(a *Address) string { return a.State }},
	{"zipCode", func(a *Address) string { return a.ZipCode }},
	{"country", func(a *Address) string { return a.Country }},
}

// Validate checks that every address field is present. Role names the
// address being validated ("shipping" or "billing") and is reported in the
// returned error.
func (a *Address) Validate(role string) error {
	for _, f := range addressFields {
		if strings.TrimSpace(f.value(a)) == "" {
			return &RequiredFieldError{Field: f.name, Role: role}
		}
	}
	return nil
}

// Order represents a completed checkout. It is an immutable snapshot of the
// cart it was created from: the item lines and totals never change after
// creation, only the status and UpdatedAt do.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          string          `json:"user_id"`
	Items           []CartItem      `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ItemCount       int             `json:"item_count"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  Address         `json:"billing_address"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderSummary is a read-only projection of an order
type OrderSummary struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewOrder snapshots the given cart into a pending order. The cart's item
// lines are copied, not shared, so clearing the cart afterwards does not
// touch the order.
func NewOrder(userID string, cart *Cart, shipping, billing Address) *Order {
	now := time.Now()
	return &Order{
		ID:              uuid.NewString(),
		OrderNumber:     GenerateOrderNumber(),
		UserID:          userID,
		Items:           append([]CartItem{}, cart.Items...),
		TotalAmount:     cart.TotalAmount,
		ItemCount:       cart.ItemCount,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Status:          OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateStatus overwrites the order status and bumps UpdatedAt
func (o *Order) UpdateStatus(status OrderStatus) {
	o.Status = status
	o.UpdatedAt = time.Now()
}

// IsPending returns true if the order is pending
func (o *Order) IsPending() bool {
	return o.Status == OrderPending
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderCompleted
}

// FormattedTotal returns the total amount as a display string
func (o *Order) FormattedTotal() string {
	return pricePrinter.Sprintf("$%.2f", o.TotalAmount.InexactFloat64())
}

// Summary returns a read-only projection of the order
func (o *Order) Summary() *OrderSummary {
	return &OrderSummary{
		ID:          o.ID,
		UserID:      o.UserID,
		ItemCount:   o.ItemCount,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
}

// Clone returns a deep copy of the order. The item slice is copied, so the
// clone can be read or encoded while the registry's order changes status.
func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = append([]CartItem{}, o.Items...)
	return &clone
}

// OrderFromSnapshot rebuilds an order from a previously serialized record.
// Persisted totals are trusted rather than recomputed, so the restored order
// always matches the amount that was originally charged.
func OrderFromSnapshot(snapshot Order) *Order {
	order := snapshot
	order.Items = append([]CartItem{}, snapshot.Items...)
	return &order
}

// GenerateOrderNumber generates a unique order number in the form
// ORD-YYYYMMDD-XXXXXX
func GenerateOrderNumber() string {
	now := time.Now()
	dateStr := now.Format("20060102")

	max := big.NewInt(1000000)
	randomNum, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		return fmt.Sprintf("ORD-%s-%06d", dateStr, now.UnixNano()%1000000)
	}

	return fmt.Sprintf("ORD-%s-%06d", dateStr, randomNum.Int64())
}
