package services

import (
	"sync"

	"sports-package-store/internal/models"
)

// CartService owns the per-user cart registry. Each user has at most one
// live cart, created lazily on first use. Every method returns a deep copy
// of the registry's cart, never the live entry: callers read and encode
// their copy outside the lock while other requests keep mutating.
type CartService struct {
	mu             sync.RWMutex
	carts          map[string]*models.Cart
	productService *ProductService
}

// NewCartService creates a cart service backed by the given catalog
func NewCartService(productService *ProductService) *CartService {
	return &CartService{
		carts:          make(map[string]*models.Cart),
		productService: productService,
	}
}

// GetCart returns a copy of the user's cart, or nil when none exists. It
// never creates a cart.
func (s *CartService) GetCart(userID string) *models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil
	}
	return cart.Clone()
}

// GetOrCreateCart returns a copy of the user's cart, creating an empty one
// if needed
func (s *CartService) GetOrCreateCart(userID string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(userID).Clone()
}

func (s *CartService) getOrCreateLocked(userID string) *models.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = models.NewCart(userID)
		s.carts[userID] = cart
	}
	return cart
}

// CartExists returns true if the user currently has a cart
func (s *CartService) CartExists(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.carts[userID]
	return ok
}

// AddItem adds a product to the user's cart, creating the cart if needed.
// The cart line holds a snapshot of the product taken now. The quantity is
// validated again here even though the HTTP layer already checks it.
func (s *CartService) AddItem(userID string, productID int, quantity int) (*models.Cart, error) {
	product := s.productService.GetByID(productID)
	if product == nil {
		return nil, models.ErrProductNotFound
	}
	if !product.InStock {
		return nil, models.ErrOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(userID)
	if err := cart.AddItem(*product, quantity); err != nil {
		return nil, err
	}
	return cart.Clone(), nil
}

// RemoveItem removes the line for the given product from the user's cart
func (s *CartService) RemoveItem(userID string, productID int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, models.ErrCartNotFound
	}
	if !cart.RemoveItem(productID) {
		return nil, models.ErrItemNotFound
	}
	return cart.Clone(), nil
}

// UpdateItemQuantity overwrites the quantity of a cart line. A quantity of
// zero or less removes the line.
func (s *CartService) UpdateItemQuantity(userID string, productID int, quantity int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, models.ErrCartNotFound
	}
	if !cart.UpdateItemQuantity(productID, quantity) {
		return nil, models.ErrItemNotFound
	}
	return cart.Clone(), nil
}

// GetItems returns a copy of the item lines of the user's cart
func (s *CartService) GetItems(userID string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, models.ErrCartNotFound
	}
	return append([]models.CartItem{}, cart.Items...), nil
}

// Clear empties the user's cart. The cart itself stays registered.
func (s *CartService) Clear(userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, models.ErrCartNotFound
	}
	cart.Clear()
	return cart.Clone(), nil
}

// Delete removes the user's cart registry entry entirely, unlike Clear
// which keeps an empty cart around. It reports whether a cart existed.
func (s *CartService) Delete(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.carts[userID]
	delete(s.carts, userID)
	return ok
}

// GetSummary returns a read-only projection of the user's cart, or nil
// when the user has no cart
func (s *CartService) GetSummary(userID string) *models.CartSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil
	}
	return cart.Summary()
}
