package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/domain"
	"catalog-service/internal/kvstore"
	"catalog-service/internal/store"
)

// flakyKV wraps a KV and can be switched to fail all loads, to exercise the
// "mutation committed but refresh failed" path.
type flakyKV struct {
	kvstore.KV
	failLoads bool
}

var errLoadBroken = errors.New("load broken")

func (f *flakyKV) Load(ctx context.Context, key string) ([]byte, error) {
	if f.failLoads {
		return nil, errLoadBroken
	}
	return f.KV.Load(ctx, key)
}

func newTestCatalog(t *testing.T) (*Catalog, *flakyKV) {
	t.Helper()
	kv := &flakyKV{KV: kvstore.NewMemoryStore()}
	c := New(store.NewKVStore(kv))
	require.NoError(t, c.Refresh(context.Background()))
	return c, kv
}

func PtrTo[T any](v T) *T {
	return &v
}

func TestCatalog_StartsEmpty(t *testing.T) {
	c, _ := newTestCatalog(t)

	assert.Empty(t, c.Products())
	assert.Empty(t, c.Categories())
}

func TestCatalog_RefreshBumpsTrigger(t *testing.T) {
	c, _ := newTestCatalog(t)

	before := c.RefreshTrigger()
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, before+1, c.RefreshTrigger())
}

func TestCatalog_MutationsRefreshCache(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	created, err := c.AddProduct(ctx, &domain.Product{Name: "Tuna", Quantity: 3})
	require.NoError(t, err)

	// The cache was rebuilt as part of the mutation, no manual refresh.
	products := c.Products()
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)

	cat, err := c.AddCategory(ctx, &domain.Category{Name: "Treats"})
	require.NoError(t, err)
	categories := c.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, cat.ID, categories[0].ID)

	require.NoError(t, c.DeleteProduct(ctx, created.ID))
	assert.Empty(t, c.Products())
}

func TestCatalog_EachMutationBumpsTrigger(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	before := c.RefreshTrigger()
	created, err := c.AddProduct(ctx, &domain.Product{Name: "Tuna", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, before+1, c.RefreshTrigger())

	created.Quantity = 5
	_, err = c.UpdateProduct(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, before+2, c.RefreshTrigger())
}

func TestCatalog_DeleteCategoryCascadesIntoCache(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	cat, err := c.AddCategory(ctx, &domain.Category{Name: "Treats"})
	require.NoError(t, err)
	created, err := c.AddProduct(ctx, &domain.Product{Name: "Tuna", Quantity: 3, Category: PtrTo(cat.ID)})
	require.NoError(t, err)

	require.NoError(t, c.DeleteCategory(ctx, cat.ID))

	assert.Empty(t, c.Categories())
	products := c.Products()
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)
	assert.Nil(t, products[0].Category, "cascade is visible in the refreshed cache")
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := c.AddProduct(ctx, &domain.Product{Name: "Tuna", Quantity: 3})
	require.NoError(t, err)

	products := c.Products()
	products[0].Name = "Mutated"

	assert.Equal(t, "Tuna", c.Products()[0].Name, "callers cannot reach the cache through returned slices")
}

func TestCatalog_RefreshFailurePropagates(t *testing.T) {
	c, kv := newTestCatalog(t)

	kv.failLoads = true
	err := c.Refresh(context.Background())
	assert.Error(t, err)
}

// A mutation failure propagates to the caller and leaves the cache alone.
func TestCatalog_MutationFailurePropagates(t *testing.T) {
	c, kv := newTestCatalog(t)
	ctx := context.Background()

	trigger := c.RefreshTrigger()
	kv.failLoads = true
	created, err := c.AddProduct(ctx, &domain.Product{Name: "Tuna", Quantity: 3})
	require.Error(t, err, "the mutation reads the collection first and sees the broken store")
	assert.Nil(t, created)
	assert.Equal(t, trigger, c.RefreshTrigger())
}

// A refresh failure after a committed mutation is swallowed: the mutation
// already succeeded and the cache catches up on the next refresh.
// ClearProducts removes the key without reading it, so breaking loads hits
// only the post-mutation refresh.
func TestCatalog_MutationSucceedsWhenPostRefreshFails(t *testing.T) {
	c, kv := newTestCatalog(t)
	ctx := context.Background()

	_, err := c.AddProduct(ctx, &domain.Product{Name: "Tuna", Quantity: 3})
	require.NoError(t, err)
	require.Len(t, c.Products(), 1)

	trigger := c.RefreshTrigger()
	kv.failLoads = true
	require.NoError(t, c.ClearProducts(ctx), "the mutation committed; the refresh failure is logged, not returned")

	// The stale cache survives until a later refresh succeeds.
	assert.Equal(t, trigger, c.RefreshTrigger())
	assert.Len(t, c.Products(), 1)

	kv.failLoads = false
	require.NoError(t, c.Refresh(ctx))
	assert.Empty(t, c.Products())
}

func TestCatalog_ImportAndClearRefreshCache(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.ImportSnapshot(ctx, &domain.Snapshot{
		Products:   []domain.Product{{ID: "p1", Name: "Tuna", Quantity: 3}},
		Categories: []domain.Category{{ID: "c1", Name: "Treats"}},
	}))
	assert.Len(t, c.Products(), 1)
	assert.Len(t, c.Categories(), 1)

	require.NoError(t, c.ClearProducts(ctx))
	assert.Empty(t, c.Products())
	assert.Len(t, c.Categories(), 1)

	require.NoError(t, c.ClearAll(ctx))
	assert.Empty(t, c.Products())
	assert.Empty(t, c.Categories())
}
