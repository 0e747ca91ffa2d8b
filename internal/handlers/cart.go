package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sports-package-store/internal/models"
	"sports-package-store/internal/services"

	"github.com/go-chi/chi/v5"
)

// CartHandler handles shopping cart requests
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Routes mounts the cart endpoints, rooted at /users/{userID}/cart
func (h *CartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/{userID}/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/", h.GetOrCreate)
		r.Delete("/", h.Clear)
		r.Get("/items", h.Items)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.UpdateItemQuantity)
		r.Delete("/items/{productID}", h.RemoveItem)
		r.Get("/summary", h.Summary)
	})
	return r
}

// Get returns the user's cart; it never creates one
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart := h.cartService.GetCart(chi.URLParam(r, "userID"))
	if cart == nil {
		writeServiceError(w, models.ErrCartNotFound)
		return
	}
	writeData(w, http.StatusOK, cart)
}

// GetOrCreate returns the user's cart, creating an empty one if needed
func (h *CartHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	cart := h.cartService.GetOrCreateCart(chi.URLParam(r, "userID"))
	writeDataMessage(w, http.StatusOK, cart, "Cart created/retrieved successfully")
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// AddItem adds a product to the user's cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cart item payload")
		return
	}
	if req.ProductID <= 0 || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "Product id and quantity must be positive integers")
		return
	}

	cart, err := h.cartService.AddItem(chi.URLParam(r, "userID"), req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeDataMessage(w, http.StatusOK, cart, "Item added to cart successfully")
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItemQuantity overwrites the quantity of a cart line. Zero removes
// the line.
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := cartProductID(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid quantity payload")
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(chi.URLParam(r, "userID"), productID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeDataMessage(w, http.StatusOK, cart, "Item quantity updated successfully")
}

// RemoveItem removes a product line from the user's cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := cartProductID(w, r)
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(chi.URLParam(r, "userID"), productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeDataMessage(w, http.StatusOK, cart, "Item removed from cart successfully")
}

// Items returns the item lines of the user's cart
func (h *CartHandler) Items(w http.ResponseWriter, r *http.Request) {
	items, err := h.cartService.GetItems(chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, items, len(items))
}

// Clear empties the user's cart, keeping the cart itself
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.Clear(chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeDataMessage(w, http.StatusOK, cart, "Cart cleared successfully")
}

// Summary returns a read-only projection of the user's cart
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary := h.cartService.GetSummary(chi.URLParam(r, "userID"))
	if summary == nil {
		writeServiceError(w, models.ErrCartNotFound)
		return
	}
	writeData(w, http.StatusOK, summary)
}

func cartProductID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return 0, false
	}
	return id, true
}
