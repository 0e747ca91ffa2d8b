package services

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"sports-package-store/internal/models"
)

// OrderService owns the order registry and handles checkout. Orders are
// immutable snapshots; once registered only their status can change. Like
// the cart registry, methods return deep copies, never the live entry.
type OrderService struct {
	mu          sync.RWMutex
	orders      map[string]*models.Order
	sequence    []string // order ids in insertion order
	cartService *CartService
}

// OrderStats aggregates over every order in the registry
type OrderStats struct {
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	PendingOrders     int             `json:"pending_orders"`
	CompletedOrders   int             `json:"completed_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// NewOrderService creates an order service backed by the given cart service
func NewOrderService(cartService *CartService) *OrderService {
	return &OrderService{
		orders:      make(map[string]*models.Order),
		cartService: cartService,
	}
}

// CreateOrder converts the user's cart into an order. Both addresses are
// validated before anything is mutated, so a failed checkout leaves the
// cart untouched and registers no order. On success the source cart is
// cleared but stays registered for the user.
func (s *OrderService) CreateOrder(userID string, shipping, billing models.Address) (*models.Order, error) {
	cart := s.cartService.GetCart(userID)
	if cart == nil {
		return nil, models.ErrCartNotFound
	}
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	if err := shipping.Validate("shipping"); err != nil {
		return nil, err
	}
	if err := billing.Validate("billing"); err != nil {
		return nil, err
	}

	order := models.NewOrder(userID, cart, shipping, billing)

	s.mu.Lock()
	s.orders[order.ID] = order
	s.sequence = append(s.sequence, order.ID)
	s.mu.Unlock()

	if _, err := s.cartService.Clear(userID); err != nil {
		return nil, err
	}

	return order.Clone(), nil
}

// GetOrder returns a copy of the order with the given id, or nil when it
// is unknown
func (s *OrderService) GetOrder(orderID string) *models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	return order.Clone()
}

// GetOrdersByUser returns all of the user's orders, newest first. Orders
// created at the same instant keep their creation order relative to each
// other.
func (s *OrderService) GetOrdersByUser(userID string) []*models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []*models.Order{}
	for _, id := range s.sequence {
		if order := s.orders[id]; order.UserID == userID {
			orders = append(orders, order.Clone())
		}
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

// UpdateStatus overwrites the order status. Any status value is accepted;
// transitions are entirely caller-driven.
func (s *OrderService) UpdateStatus(orderID string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	order.UpdateStatus(status)
	return order.Clone(), nil
}

// GetSummary returns a read-only projection of the order, or nil when it
// is unknown
func (s *OrderService) GetSummary(orderID string) *models.OrderSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	return order.Summary()
}

// GetStats aggregates totals over every order. The average is zero when
// there are no orders.
func (s *OrderService) GetStats() OrderStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := OrderStats{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	for _, order := range s.orders {
		stats.TotalOrders++
		stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
		switch {
		case order.IsPending():
			stats.PendingOrders++
		case order.IsCompleted():
			stats.CompletedOrders++
		}
	}

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalOrders)))
	}

	return stats
}
