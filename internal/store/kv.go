package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"catalog-service/internal/domain"
	"catalog-service/internal/kvstore"
)

// Storage keys for the two collections. These names are part of the on-disk
// contract shared with exported snapshot files.
const (
	productsKey   = "products"
	categoriesKey = "categories"
)

// Predefined errors for store operations.
var (
	ErrCategoryNotFound = errors.New("store: category not found")
	ErrProductNotFound  = errors.New("store: product not found")
)

// KVStore implements CategoryStorer, ProductStorer and SnapshotStorer over a
// kvstore.KV adapter. Every mutation is a full read-modify-write of one
// collection; the mutex serializes those cycles so two mutations issued
// back-to-back cannot both read the pre-mutation state and lose an update.
type KVStore struct {
	mu sync.Mutex
	kv kvstore.KV
}

// NewKVStore creates a KVStore over the given adapter.
func NewKVStore(kv kvstore.KV) *KVStore {
	return &KVStore{kv: kv}
}

var (
	_ CategoryStorer = (*KVStore)(nil)
	_ ProductStorer  = (*KVStore)(nil)
	_ SnapshotStorer = (*KVStore)(nil)
)

// newID returns a fresh opaque identifier. UUIDs rather than timestamps so
// that rapid successive creates cannot collide.
func newID() string {
	return uuid.NewString()
}

// loadProducts reads the full product collection. A never-written key is an
// empty collection.
func (s *KVStore) loadProducts(ctx context.Context) ([]domain.Product, error) {
	raw, err := s.kv.Load(ctx, productsKey)
	if err != nil {
		return nil, fmt.Errorf("store: load products: %w", err)
	}
	if raw == nil {
		return []domain.Product{}, nil
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("store: decode products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *KVStore) saveProducts(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("store: encode products: %w", err)
	}
	if err := s.kv.Save(ctx, productsKey, raw); err != nil {
		return fmt.Errorf("store: save products: %w", err)
	}
	return nil
}

func (s *KVStore) loadCategories(ctx context.Context) ([]domain.Category, error) {
	raw, err := s.kv.Load(ctx, categoriesKey)
	if err != nil {
		return nil, fmt.Errorf("store: load categories: %w", err)
	}
	if raw == nil {
		return []domain.Category{}, nil
	}
	var categories []domain.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("store: decode categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *KVStore) saveCategories(ctx context.Context, categories []domain.Category) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("store: encode categories: %w", err)
	}
	if err := s.kv.Save(ctx, categoriesKey, raw); err != nil {
		return fmt.Errorf("store: save categories: %w", err)
	}
	return nil
}

// --- CategoryStorer implementation ---

func (s *KVStore) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	created := *category
	created.ID = newID()
	if err := s.saveCategories(ctx, append(categories, created)); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *KVStore) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			c := categories[i]
			return &c, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (s *KVStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.loadCategories(ctx)
}

// UpdateCategory replaces the record whose id matches. If no record matches,
// the collection is written back unchanged; callers wanting an existence
// guarantee check GetCategoryByID first.
func (s *KVStore) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == category.ID {
			categories[i] = *category
			break
		}
	}
	if err := s.saveCategories(ctx, categories); err != nil {
		return nil, err
	}
	updated := *category
	return &updated, nil
}

// DeleteCategory removes the category and clears the reference on every
// product that pointed at it. Deleting an absent id is a no-op. The two
// writes are sequential, not atomic, but always run together under the
// mutation lock.
func (s *KVStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}
	filtered := categories[:0:0]
	for _, c := range categories {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	if err := s.saveCategories(ctx, filtered); err != nil {
		return err
	}

	products, err := s.loadProducts(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range products {
		if products[i].Category != nil && *products[i].Category == id {
			products[i].Category = nil
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.saveProducts(ctx, products)
}

// --- ProductStorer implementation ---

func (s *KVStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	created := *product
	created.ID = newID()
	if err := s.saveProducts(ctx, append(products, created)); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *KVStore) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *KVStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.loadProducts(ctx)
}

// UpdateProduct replaces the record whose id matches; the supplied record
// wins entirely except for the immutable id. A non-matching id leaves the
// collection unchanged.
func (s *KVStore) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = *product
			break
		}
	}
	if err := s.saveProducts(ctx, products); err != nil {
		return nil, err
	}
	updated := *product
	return &updated, nil
}

// DeleteProduct removes the record matching id, a no-op when absent.
func (s *KVStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return err
	}
	filtered := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	return s.saveProducts(ctx, filtered)
}

func (s *KVStore) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Product, 0)
	for _, p := range products {
		if p.Category != nil && *p.Category == categoryID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *KVStore) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]domain.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

// --- SnapshotStorer implementation ---

func (s *KVStore) ExportSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{Products: products, Categories: categories}, nil
}

// ImportSnapshot replaces both collections with the snapshot contents.
// Record ids are taken as-is so a re-imported export is identical to the
// original dataset.
func (s *KVStore) ImportSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := snap.Products
	if products == nil {
		products = []domain.Product{}
	}
	categories := snap.Categories
	if categories == nil {
		categories = []domain.Category{}
	}
	if err := s.saveProducts(ctx, products); err != nil {
		return err
	}
	return s.saveCategories(ctx, categories)
}

// ClearProducts deletes the product collection and nothing else.
func (s *KVStore) ClearProducts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, productsKey); err != nil {
		return fmt.Errorf("store: clear products: %w", err)
	}
	return nil
}

// ClearAll deletes both collections.
func (s *KVStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, productsKey); err != nil {
		return fmt.Errorf("store: clear products: %w", err)
	}
	if err := s.kv.Remove(ctx, categoriesKey); err != nil {
		return fmt.Errorf("store: clear categories: %w", err)
	}
	return nil
}
