package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem represents one line of a cart: a product snapshot taken at
// add-time plus a quantity. The snapshot is deliberately not live-linked to
// the catalog, so later catalog edits do not change what the user put in
// the cart.
type CartItem struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// NewCartItem creates a cart line for the given product snapshot
func NewCartItem(product Product, quantity int) CartItem {
	item := CartItem{Product: product, Quantity: quantity}
	item.Subtotal = item.calculateSubtotal()
	return item
}

func (i *CartItem) calculateSubtotal() decimal.Decimal {
	return i.Product.BasePrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// UpdateQuantity overwrites the line quantity and recomputes its subtotal
func (i *CartItem) UpdateQuantity(quantity int) {
	i.Quantity = quantity
	i.Subtotal = i.calculateSubtotal()
}

// Cart represents a user's shopping cart. Totals are recomputed after every
// mutation so they are never stale relative to the item lines.
type Cart struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CartSummary is a read-only projection of a cart
type CartSummary struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	ItemCount      int             `json:"item_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	FormattedTotal string          `json:"formatted_total"`
	IsEmpty        bool            `json:"is_empty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewCart creates an empty cart for the given user
func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		ID:          uuid.NewString(),
		UserID:      userID,
		Items:       []CartItem{},
		TotalAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddItem adds a product to the cart. If a line for the product already
// exists its quantity is incremented, otherwise a new line is appended.
func (c *Cart) AddItem(product Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidInput
	}

	if existing := c.findItemByProductID(product.ID); existing != nil {
		existing.UpdateQuantity(existing.Quantity + quantity)
	} else {
		c.Items = append(c.Items, NewCartItem(product, quantity))
	}

	c.recalculateTotals()
	c.UpdatedAt = time.Now()
	return nil
}

// RemoveItem removes the line for the given product. It reports whether a
// line was actually removed.
func (c *Cart) RemoveItem(productID int) bool {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recalculateTotals()
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// UpdateItemQuantity overwrites the quantity of the line for the given
// product. A quantity of zero or less removes the line. It reports whether
// the line existed.
func (c *Cart) UpdateItemQuantity(productID int, quantity int) bool {
	item := c.findItemByProductID(productID)
	if item == nil {
		return false
	}

	if quantity <= 0 {
		return c.RemoveItem(productID)
	}

	item.UpdateQuantity(quantity)
	c.recalculateTotals()
	c.UpdatedAt = time.Now()
	return true
}

func (c *Cart) findItemByProductID(productID int) *CartItem {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Clear removes all items from the cart
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.recalculateTotals()
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// recalculateTotals derives the cart totals from the current item lines.
// Carts are small, so a full pass beats incremental bookkeeping.
func (c *Cart) recalculateTotals() {
	total := decimal.Zero
	count := 0
	for _, item := range c.Items {
		total = total.Add(item.Subtotal)
		count += item.Quantity
	}
	c.TotalAmount = total
	c.ItemCount = count
}

// FormattedTotal returns the total amount as a display string, e.g. "$1,299.00"
func (c *Cart) FormattedTotal() string {
	return pricePrinter.Sprintf("$%.2f", c.TotalAmount.InexactFloat64())
}

// Summary returns a read-only projection of the cart
func (c *Cart) Summary() *CartSummary {
	return &CartSummary{
		ID:             c.ID,
		UserID:         c.UserID,
		ItemCount:      c.ItemCount,
		TotalAmount:    c.TotalAmount,
		FormattedTotal: c.FormattedTotal(),
		IsEmpty:        c.IsEmpty(),
		UpdatedAt:      c.UpdatedAt,
	}
}

// Clone returns a deep copy of the cart. The item slice is copied, so the
// clone can be read or encoded while the original keeps mutating.
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Items = append([]CartItem{}, c.Items...)
	return &clone
}

// CartFromSnapshot rebuilds a cart from a previously serialized record. The
// persisted totals are trusted as-is: recomputing them from possibly stale
// product snapshots could diverge from what the user originally saw.
func CartFromSnapshot(snapshot Cart) *Cart {
	cart := snapshot
	cart.Items = append([]CartItem{}, snapshot.Items...)
	return &cart
}
