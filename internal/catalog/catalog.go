// Package catalog holds the process-wide data context: an in-memory snapshot
// of both collections, rebuilt in full after every mutation. The cache is a
// disposable read-through view; the store is the only source of truth and
// the cache is never written back directly.
package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"
)

// Storer is the full persistence surface the data context sits on.
type Storer interface {
	store.CategoryStorer
	store.ProductStorer
	store.SnapshotStorer
}

// Catalog caches the product and category collections and exposes the
// mutation operations the presentation layer calls. Construct one per
// process (or per test) with New; there is no package-level state.
type Catalog struct {
	storer Storer

	mu             sync.RWMutex
	products       []domain.Product
	categories     []domain.Category
	refreshTrigger uint64
}

// New creates a Catalog over the given store with an empty cache. Callers
// normally follow up with Refresh to perform the initial load.
func New(storer Storer) *Catalog {
	return &Catalog{
		storer:     storer,
		products:   []domain.Product{},
		categories: []domain.Category{},
	}
}

// Refresh re-reads both collections and replaces the cache wholesale. The
// two reads run concurrently; the swap happens under the write lock only
// after both succeed, so observers never see a half-refreshed cache.
// This is the only path by which the cache changes.
func (c *Catalog) Refresh(ctx context.Context) error {
	var (
		products   []domain.Product
		categories []domain.Category
		prodErr    error
		catErr     error
		wg         sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		products, prodErr = c.storer.ListProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, catErr = c.storer.ListCategories(ctx)
	}()
	wg.Wait()

	if prodErr != nil {
		return prodErr
	}
	if catErr != nil {
		return catErr
	}

	c.mu.Lock()
	c.products = products
	c.categories = categories
	c.refreshTrigger++
	c.mu.Unlock()
	return nil
}

// Products returns a copy of the cached product collection, insertion order.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns a copy of the cached category collection.
func (c *Catalog) Categories() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// RefreshTrigger returns an opaque counter that increases on every
// successful refresh. Observers that only need to know "something changed"
// watch this instead of diffing the collections.
func (c *Catalog) RefreshTrigger() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshTrigger
}

// refreshAfterMutation refreshes the cache after a committed mutation.
// The mutation already succeeded, so a refresh failure is logged and
// swallowed; the cache catches up on the next refresh.
func (c *Catalog) refreshAfterMutation(ctx context.Context, op string) {
	if err := c.Refresh(ctx); err != nil {
		zap.L().Warn("cache refresh after mutation failed",
			zap.String("op", op), zap.Error(err))
	}
}

// --- Mutation wrappers ---

func (c *Catalog) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	created, err := c.storer.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	c.refreshAfterMutation(ctx, "add product")
	return created, nil
}

func (c *Catalog) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	updated, err := c.storer.UpdateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	c.refreshAfterMutation(ctx, "update product")
	return updated, nil
}

func (c *Catalog) DeleteProduct(ctx context.Context, id string) error {
	if err := c.storer.DeleteProduct(ctx, id); err != nil {
		return err
	}
	c.refreshAfterMutation(ctx, "delete product")
	return nil
}

func (c *Catalog) AddCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created, err := c.storer.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	c.refreshAfterMutation(ctx, "add category")
	return created, nil
}

func (c *Catalog) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	updated, err := c.storer.UpdateCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	c.refreshAfterMutation(ctx, "update category")
	return updated, nil
}

func (c *Catalog) DeleteCategory(ctx context.Context, id string) error {
	if err := c.storer.DeleteCategory(ctx, id); err != nil {
		return err
	}
	c.refreshAfterMutation(ctx, "delete category")
	return nil
}

func (c *Catalog) ImportSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	if err := c.storer.ImportSnapshot(ctx, snap); err != nil {
		return err
	}
	c.refreshAfterMutation(ctx, "import snapshot")
	return nil
}

func (c *Catalog) ClearProducts(ctx context.Context) error {
	if err := c.storer.ClearProducts(ctx); err != nil {
		return err
	}
	c.refreshAfterMutation(ctx, "clear products")
	return nil
}

func (c *Catalog) ClearAll(ctx context.Context) error {
	if err := c.storer.ClearAll(ctx); err != nil {
		return err
	}
	c.refreshAfterMutation(ctx, "clear all")
	return nil
}

// --- Pass-through reads ---
// These go to the store rather than the cache so they are consistent with
// the persisted state even between refreshes.

func (c *Catalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return c.storer.GetProductByID(ctx, id)
}

func (c *Catalog) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return c.storer.GetCategoryByID(ctx, id)
}

func (c *Catalog) ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return c.storer.ListProductsByCategory(ctx, categoryID)
}

func (c *Catalog) LowStockProducts(ctx context.Context) ([]domain.Product, error) {
	return c.storer.ListLowStockProducts(ctx)
}

func (c *Catalog) ExportSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	return c.storer.ExportSnapshot(ctx)
}
