package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/domain"
)

func TestKVStore_ExportSnapshot_EmptyStore(t *testing.T) {
	s := newTestStore(t)

	snap, err := s.ExportSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Products)
	assert.Empty(t, snap.Categories)
	assert.NotNil(t, snap.Products)
	assert.NotNil(t, snap.Categories)
}

func TestKVStore_ExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	ctx := context.Background()

	cat, err := src.CreateCategory(ctx, &domain.Category{Name: "Treats"})
	require.NoError(t, err)
	_, err = src.CreateProduct(ctx, &domain.Product{Name: "Tuna", Quantity: 3, Category: PtrTo(cat.ID)})
	require.NoError(t, err)
	_, err = src.CreateProduct(ctx, &domain.Product{Name: "Litter", Quantity: 20})
	require.NoError(t, err)

	snap, err := src.ExportSnapshot(ctx)
	require.NoError(t, err)

	dst := newTestStore(t)
	require.NoError(t, dst.ImportSnapshot(ctx, snap))

	// Imported records keep their ids so the dataset is identical.
	reexported, err := dst.ExportSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, reexported)
}

func TestKVStore_ImportSnapshot_ReplacesExistingData(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, &domain.Product{Name: "Old", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, s.ImportSnapshot(ctx, &domain.Snapshot{
		Products:   []domain.Product{{ID: "p1", Name: "New", Quantity: 2}},
		Categories: []domain.Category{{ID: "c1", Name: "Fresh"}},
	}))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "c1", categories[0].ID)
}

func TestKVStore_ImportSnapshot_NilCollectionsBecomeEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, &domain.Product{Name: "Old", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, s.ImportSnapshot(ctx, &domain.Snapshot{}))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestKVStore_ClearProducts_LeavesCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, &domain.Product{Name: "Tuna", Quantity: 3})
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, &domain.Category{Name: "Treats"})
	require.NoError(t, err)

	require.NoError(t, s.ClearProducts(ctx))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestKVStore_ClearAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, &domain.Product{Name: "Tuna", Quantity: 3})
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, &domain.Category{Name: "Treats"})
	require.NoError(t, err)

	require.NoError(t, s.ClearAll(ctx))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}
