package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"sports-package-store/internal/models"
)

// ProductService holds the product catalog. The catalog lives in process
// memory and is seeded from a JSON file at startup; there is no write-back.
type ProductService struct {
	mu       sync.RWMutex
	products map[int]*models.Product
}

// NewProductService creates an empty product catalog
func NewProductService() *ProductService {
	return &ProductService{
		products: make(map[int]*models.Product),
	}
}

// GetAll returns all known products sorted by id. The ordering is not
// significant, it just keeps listings stable between calls.
func (s *ProductService) GetAll() []*models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products
}

// GetByID returns the product with the given id, or nil when it is unknown
func (s *ProductService) GetByID(id int) *models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products[id]
}

// Exists returns true if a product with the given id is in the catalog
func (s *ProductService) Exists(id int) bool {
	return s.GetByID(id) != nil
}

// IsInStock returns true if the product exists and is in stock
func (s *ProductService) IsInStock(id int) bool {
	p := s.GetByID(id)
	return p != nil && p.InStock
}

// Create inserts a product under its caller-supplied id. A colliding id
// silently overwrites the existing product; callers are expected to supply
// unique ids.
func (s *ProductService) Create(product models.Product) *models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := product
	s.products[p.ID] = &p
	return &p
}

// Update merges the non-nil request fields onto the existing product
func (s *ProductService) Update(id int, req *models.ProductUpdateRequest) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}

	p.ApplyUpdate(req)
	return p, nil
}

// Delete removes the product and reports whether it existed
func (s *ProductService) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.products[id]
	delete(s.products, id)
	return ok
}

// LoadFromRecords bulk-replaces the catalog with the given records. A
// malformed record aborts the whole load and leaves the catalog empty:
// predictable emptiness beats partial corruption.
func (s *ProductService) LoadFromRecords(records []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[int]*models.Product, len(records))

	for i, record := range records {
		if err := validateRecord(&record); err != nil {
			s.products = make(map[int]*models.Product)
			log.Printf("Warning: product load failed at record %d, catalog reset to empty: %v", i, err)
			return fmt.Errorf("record %d: %w", i, err)
		}
		p := record
		s.products[p.ID] = &p
	}

	return nil
}

// LoadFromFile seeds the catalog from a JSON file containing an array of
// product records. A missing file leaves the catalog empty with a warning;
// a decode or validation error also resets it to empty.
func (s *ProductService) LoadFromFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: products file %s not found, using empty catalog", path)
			return nil
		}
		return fmt.Errorf("failed to read products file: %w", err)
	}

	var records []models.Product
	if err := json.Unmarshal(content, &records); err != nil {
		s.mu.Lock()
		s.products = make(map[int]*models.Product)
		s.mu.Unlock()
		log.Printf("Warning: products file %s is malformed, catalog reset to empty: %v", path, err)
		return fmt.Errorf("failed to parse products file: %w", err)
	}

	if err := s.LoadFromRecords(records); err != nil {
		return err
	}

	log.Printf("Loaded %d products from %s", len(records), path)
	return nil
}

// validateRecord rejects records that cannot form a coherent catalog entry
func validateRecord(p *models.Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: product id must be a positive integer", models.ErrInvalidInput)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", models.ErrInvalidInput)
	}
	if p.BasePrice.IsNegative() {
		return fmt.Errorf("%w: base price cannot be negative", models.ErrInvalidInput)
	}
	for key, c := range p.Components {
		if c.Price.IsNegative() {
			return fmt.Errorf("%w: component %q price cannot be negative", models.ErrInvalidInput, key)
		}
	}
	for _, t := range p.EMIOptions.Tenure {
		if t <= 0 {
			return fmt.Errorf("%w: EMI tenure must be a positive number of months", models.ErrInvalidInput)
		}
	}
	return nil
}
