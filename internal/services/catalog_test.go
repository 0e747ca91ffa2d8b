package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-package-store/internal/models"
)

func seedProduct(id int, name string, price int64, inStock bool) models.Product {
	return models.Product{
		ID:        id,
		Name:      name,
		BasePrice: decimal.NewFromInt(price),
		InStock:   inStock,
	}
}

func TestProductService_CreateAndGet(t *testing.T) {
	svc := NewProductService()

	created := svc.Create(seedProduct(1, "World Cup Final", 45000, true))
	require.NotNil(t, created)

	got := svc.GetByID(1)
	require.NotNil(t, got)
	assert.Equal(t, "World Cup Final", got.Name)
	assert.True(t, svc.Exists(1))
	assert.True(t, svc.IsInStock(1))

	assert.Nil(t, svc.GetByID(99))
	assert.False(t, svc.Exists(99))
	assert.False(t, svc.IsInStock(99))
}

func TestProductService_CreateOverwritesOnDuplicateID(t *testing.T) {
	svc := NewProductService()

	svc.Create(seedProduct(1, "Original", 100, true))
	svc.Create(seedProduct(1, "Replacement", 200, false))

	got := svc.GetByID(1)
	require.NotNil(t, got)
	assert.Equal(t, "Replacement", got.Name)
	assert.False(t, got.InStock)
	assert.Len(t, svc.GetAll(), 1)
}

func TestProductService_GetAll_SortedByID(t *testing.T) {
	svc := NewProductService()
	svc.Create(seedProduct(3, "C", 30, true))
	svc.Create(seedProduct(1, "A", 10, true))
	svc.Create(seedProduct(2, "B", 20, true))

	all := svc.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})
}

func TestProductService_Update(t *testing.T) {
	svc := NewProductService()
	svc.Create(seedProduct(1, "Original", 100, true))

	name := "Updated"
	inStock := false
	updated, err := svc.Update(1, &models.ProductUpdateRequest{Name: &name, InStock: &inStock})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Name)
	assert.False(t, updated.InStock)
	// Untouched fields survive the merge
	assert.True(t, updated.BasePrice.Equal(decimal.NewFromInt(100)))

	_, err = svc.Update(99, &models.ProductUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestProductService_Delete(t *testing.T) {
	svc := NewProductService()
	svc.Create(seedProduct(1, "Package", 100, true))

	assert.True(t, svc.Delete(1))
	assert.False(t, svc.Delete(1))
	assert.Nil(t, svc.GetByID(1))
}

func TestProductService_LoadFromRecords_ReplacesCatalog(t *testing.T) {
	svc := NewProductService()
	svc.Create(seedProduct(50, "Stale", 1, true))

	err := svc.LoadFromRecords([]models.Product{
		seedProduct(1, "A", 100, true),
		seedProduct(2, "B", 200, true),
	})
	require.NoError(t, err)

	assert.Len(t, svc.GetAll(), 2)
	assert.Nil(t, svc.GetByID(50), "old catalog contents must be gone")
}

func TestProductService_LoadFromRecords_FailsSafeToEmpty(t *testing.T) {
	svc := NewProductService()
	svc.Create(seedProduct(50, "Stale", 1, true))

	records := make([]models.Product, 0, 10)
	for i := 1; i <= 9; i++ {
		records = append(records, seedProduct(i, "Valid", int64(i*100), true))
	}
	records = append(records, seedProduct(0, "", -5, true)) // malformed

	err := svc.LoadFromRecords(records)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	// Not nine-tenths populated: fully empty
	assert.Empty(t, svc.GetAll())
}

func TestProductService_LoadFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "products.json")
		content := `[{"id":1,"name":"World Cup Final","base_price":45000,"in_stock":true}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		svc := NewProductService()
		require.NoError(t, svc.LoadFromFile(path))
		require.NotNil(t, svc.GetByID(1))
		assert.True(t, svc.GetByID(1).BasePrice.Equal(decimal.NewFromInt(45000)))
	})

	t.Run("missing file leaves catalog empty without error", func(t *testing.T) {
		svc := NewProductService()
		require.NoError(t, svc.LoadFromFile(filepath.Join(dir, "nope.json")))
		assert.Empty(t, svc.GetAll())
	})

	t.Run("malformed JSON resets catalog to empty", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id":`), 0o644))

		svc := NewProductService()
		svc.Create(seedProduct(50, "Stale", 1, true))
		require.Error(t, svc.LoadFromFile(path))
		assert.Empty(t, svc.GetAll())
	})
}
