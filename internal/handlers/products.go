package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sports-package-store/internal/models"
	"sports-package-store/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product catalog requests
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Routes mounts the product endpoints on a fresh router
func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/stock", h.Stock)
	r.Post("/{id}/calculate-price", h.CalculatePrice)
	r.Post("/{id}/emi-calculation", h.CalculateEMI)
	r.Get("/{id}/emi-options", h.EMIOptions)
	return r
}

// List returns all products in the catalog
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.productService.GetAll()
	writeList(w, products, len(products))
}

// Get returns a single product by id
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product := h.productService.GetByID(id)
	if product == nil {
		writeServiceError(w, models.ErrProductNotFound)
		return
	}
	writeData(w, http.StatusOK, product)
}

// Create inserts a new product under the id supplied in the body
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product payload")
		return
	}
	if product.ID <= 0 {
		writeError(w, http.StatusBadRequest, "Product id must be a positive integer")
		return
	}

	created := h.productService.Create(product)
	writeDataMessage(w, http.StatusCreated, created, "Product created successfully")
}

// Update merges the supplied fields onto an existing product
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req models.ProductUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product payload")
		return
	}

	product, err := h.productService.Update(id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeDataMessage(w, http.StatusOK, product, "Product updated successfully")
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if !h.productService.Delete(id) {
		writeServiceError(w, models.ErrProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: "Product deleted successfully"})
}

// Stock reports whether a product is in stock
func (h *ProductHandler) Stock(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	writeData(w, http.StatusOK, map[string]interface{}{
		"product_id": id,
		"in_stock":   h.productService.IsInStock(id),
	})
}

type calculatePriceRequest struct {
	SelectedComponents map[string]bool `json:"selected_components"`
}

// CalculatePrice totals the prices of the selected package components
func (h *ProductHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product := h.productService.GetByID(id)
	if product == nil {
		writeServiceError(w, models.ErrProductNotFound)
		return
	}

	var req calculatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid price calculation payload")
		return
	}

	total := product.CalculateTotalPrice(req.SelectedComponents)
	writeData(w, http.StatusOK, map[string]interface{}{
		"product_id":          id,
		"selected_components": req.SelectedComponents,
		"total_price":         total,
		"formatted_price":     models.FormatINR(total),
	})
}

type emiCalculationRequest struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Tenure      int             `json:"tenure"`
}

// CalculateEMI returns the monthly installment quote for a tenure
func (h *ProductHandler) CalculateEMI(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product := h.productService.GetByID(id)
	if product == nil {
		writeServiceError(w, models.ErrProductNotFound)
		return
	}

	var req emiCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid EMI calculation payload")
		return
	}

	quote := product.EMICalculation(req.TotalAmount, req.Tenure)
	if quote == nil {
		writeError(w, http.StatusBadRequest, "EMI not available for this product or tenure")
		return
	}
	writeData(w, http.StatusOK, quote)
}

// EMIOptions returns the installment configuration of a product
func (h *ProductHandler) EMIOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product := h.productService.GetByID(id)
	if product == nil {
		writeServiceError(w, models.ErrProductNotFound)
		return
	}

	writeData(w, http.StatusOK, map[string]interface{}{
		"product_id":  id,
		"emi_options": product.EMIOptions,
	})
}

// productID parses the {id} URL parameter, answering 400 on garbage input
func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return 0, false
	}
	return id, true
}
