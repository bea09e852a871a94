package store

import (
	"context"

	"catalog-service/internal/domain"
)

// CategoryStorer defines the persistence operations for categories.
//
// DeleteCategory carries the one cross-entity obligation in the system: it
// must also clear the category reference of every product that pointed at
// the deleted id, as part of the same logical operation.
type CategoryStorer interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// ProductStorer defines the persistence operations for products, plus the
// derived queries the dashboard and category screens are built on.
type ProductStorer interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	ListLowStockProducts(ctx context.Context) ([]domain.Product, error)
}

// SnapshotStorer defines whole-dataset operations: the export/import file
// exchange and the destructive resets offered on the settings screen.
type SnapshotStorer interface {
	ExportSnapshot(ctx context.Context) (*domain.Snapshot, error)
	ImportSnapshot(ctx context.Context, snap *domain.Snapshot) error
	ClearProducts(ctx context.Context) error
	ClearAll(ctx context.Context) error
}
