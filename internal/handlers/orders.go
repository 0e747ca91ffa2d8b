package handlers

import (
	"encoding/json"
	"net/http"

	"sports-package-store/internal/models"
	"sports-package-store/internal/services"

	"github.com/go-chi/chi/v5"
)

// OrderHandler handles checkout and order queries
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Routes mounts the order endpoints on a fresh router
func (h *OrderHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/checkout/{userID}", h.Checkout)
	r.Get("/stats", h.Stats)
	r.Get("/user/{userID}", h.ListByUser)
	r.Get("/{orderID}", h.Get)
	r.Put("/{orderID}/status", h.UpdateStatus)
	r.Get("/{orderID}/summary", h.Summary)
	return r
}

type checkoutRequest struct {
	ShippingAddress models.Address `json:"shipping_address"`
	BillingAddress  models.Address `json:"billing_address"`
}

// Checkout converts the user's cart into an order
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid checkout payload")
		return
	}

	order, err := h.orderService.CreateOrder(chi.URLParam(r, "userID"), req.ShippingAddress, req.BillingAddress)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeDataMessage(w, http.StatusCreated, order, "Order created successfully")
}

// Get returns a single order by id
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order := h.orderService.GetOrder(chi.URLParam(r, "orderID"))
	if order == nil {
		writeServiceError(w, models.ErrOrderNotFound)
		return
	}
	writeData(w, http.StatusOK, order)
}

// ListByUser returns the user's orders, newest first
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	orders := h.orderService.GetOrdersByUser(chi.URLParam(r, "userID"))
	writeList(w, orders, len(orders))
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus overwrites an order's status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid status payload")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "Status is required")
		return
	}

	order, err := h.orderService.UpdateStatus(chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeDataMessage(w, http.StatusOK, order, "Order status updated successfully")
}

// Summary returns a read-only projection of an order
func (h *OrderHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary := h.orderService.GetSummary(chi.URLParam(r, "orderID"))
	if summary == nil {
		writeServiceError(w, models.ErrOrderNotFound)
		return
	}
	writeData(w, http.StatusOK, summary)
}

// Stats returns aggregate statistics over all orders
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.orderService.GetStats()
	writeData(w, http.StatusOK, stats)
}
