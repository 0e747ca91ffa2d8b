package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func cartProduct(id int, price int64) Product {
	return Product{
		ID:        id,
		Name:      "Package",
		BasePrice: decimal.NewFromInt(price),
		InStock:   true,
	}
}

func TestCart_AddItem(t *testing.T) {
	cart := NewCart("u1")

	if err := cart.AddItem(cartProduct(1, 100), 2); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if !cart.TotalAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("TotalAmount = %s, expected 200", cart.TotalAmount)
	}
	if cart.ItemCount != 2 {
		t.Errorf("ItemCount = %d, expected 2", cart.ItemCount)
	}
}

func TestCart_AddItem_MergesExistingLine(t *testing.T) {
	cart := NewCart("u1")

	if err := cart.AddItem(cartProduct(1, 100), 2); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if err := cart.AddItem(cartProduct(1, 100), 3); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("Items length = %d, expected 1 merged line", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("Quantity = %d, expected 5", cart.Items[0].Quantity)
	}
	if !cart.TotalAmount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("TotalAmount = %s, expected 500", cart.TotalAmount)
	}
	if cart.ItemCount != 5 {
		t.Errorf("ItemCount = %d, expected 5", cart.ItemCount)
	}
}

func TestCart_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart("u1")

	for _, quantity := range []int{0, -3} {
		if err := cart.AddItem(cartProduct(1, 100), quantity); err != ErrInvalidInput {
			t.Errorf("AddItem(quantity=%d) error = %v, expected ErrInvalidInput", quantity, err)
		}
	}
	if len(cart.Items) != 0 {
		t.Errorf("Items length = %d, expected 0", len(cart.Items))
	}
}

func TestCart_TotalsConsistentAfterMutations(t *testing.T) {
	cart := NewCart("u1")

	_ = cart.AddItem(cartProduct(1, 100), 2)
	_ = cart.AddItem(cartProduct(2, 250), 1)
	cart.UpdateItemQuantity(1, 4)
	cart.RemoveItem(2)
	_ = cart.AddItem(cartProduct(3, 10), 3)

	wantTotal := decimal.Zero
	wantCount := 0
	for _, item := range cart.Items {
		wantTotal = wantTotal.Add(item.Product.BasePrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		wantCount += item.Quantity
	}

	if !cart.TotalAmount.Equal(wantTotal) {
		t.Errorf("TotalAmount = %s, expected %s", cart.TotalAmount, wantTotal)
	}
	if cart.ItemCount != wantCount {
		t.Errorf("ItemCount = %d, expected %d", cart.ItemCount, wantCount)
	}
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart("u1")
	_ = cart.AddItem(cartProduct(1, 100), 2)

	if !cart.RemoveItem(1) {
		t.Error("RemoveItem(1) = false, expected true")
	}
	if cart.RemoveItem(1) {
		t.Error("RemoveItem(1) second call = true, expected false")
	}
	if !cart.IsEmpty() {
		t.Error("IsEmpty() = false after removing only line")
	}
	if !cart.TotalAmount.IsZero() || cart.ItemCount != 0 {
		t.Errorf("totals = %s/%d, expected 0/0", cart.TotalAmount, cart.ItemCount)
	}
}

func TestCart_UpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	cart := NewCart("u1")
	_ = cart.AddItem(cartProduct(1, 100), 2)

	if !cart.UpdateItemQuantity(1, 0) {
		t.Fatal("UpdateItemQuantity(1, 0) = false, expected true")
	}
	if !cart.IsEmpty() {
		t.Error("cart still has items after update to zero")
	}
}

func TestCart_UpdateItemQuantity_MissingLine(t *testing.T) {
	cart := NewCart("u1")

	if cart.UpdateItemQuantity(99, 3) {
		t.Error("UpdateItemQuantity(99, 3) = true for missing line")
	}
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart("u1")
	_ = cart.AddItem(cartProduct(1, 100), 2)
	_ = cart.AddItem(cartProduct(2, 50), 1)

	cart.Clear()

	if !cart.IsEmpty() {
		t.Error("IsEmpty() = false after Clear")
	}
	if !cart.TotalAmount.IsZero() {
		t.Errorf("TotalAmount = %s, expected 0", cart.TotalAmount)
	}
	if cart.ItemCount != 0 {
		t.Errorf("ItemCount = %d, expected 0", cart.ItemCount)
	}
}

func TestCart_Summary(t *testing.T) {
	cart := NewCart("u1")
	_ = cart.AddItem(cartProduct(1, 1299), 1)

	summary := cart.Summary()

	if summary.ID != cart.ID || summary.UserID != "u1" {
		t.Errorf("summary identity = %s/%s, expected %s/u1", summary.ID, summary.UserID, cart.ID)
	}
	if summary.ItemCount != 1 || summary.IsEmpty {
		t.Errorf("summary = count %d empty %v, expected 1/false", summary.ItemCount, summary.IsEmpty)
	}
	if summary.FormattedTotal != "$1,299.00" {
		t.Errorf("FormattedTotal = %q, expected %q", summary.FormattedTotal, "$1,299.00")
	}
}

func TestCartFromSnapshot_TrustsPersistedTotals(t *testing.T) {
	// The persisted totals deliberately disagree with the item lines: a
	// restored cart must reflect what was stored, not a recomputation.
	snapshot := Cart{
		ID:          "cart-1",
		UserID:      "u1",
		Items:       []CartItem{NewCartItem(cartProduct(1, 100), 2)},
		TotalAmount: decimal.NewFromInt(999),
		ItemCount:   7,
	}

	cart := CartFromSnapshot(snapshot)

	if !cart.TotalAmount.Equal(decimal.NewFromInt(999)) {
		t.Errorf("TotalAmount = %s, expected persisted 999", cart.TotalAmount)
	}
	if cart.ItemCount != 7 {
		t.Errorf("ItemCount = %d, expected persisted 7", cart.ItemCount)
	}

	// The restored item slice is a copy, not shared with the snapshot
	cart.Items[0].Quantity = 50
	if snapshot.Items[0].Quantity != 2 {
		t.Error("mutating the restored cart changed the snapshot")
	}
}
