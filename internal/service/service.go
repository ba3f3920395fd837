package service

import (
	"context"

	"storefront/internal/model"
)

// NoCategoryFilter is the category ID meaning "list every product".
const NoCategoryFilter = 0

// CatalogService defines the browsing and product management operations.
type CatalogService interface {
	// ListProducts returns every product when categoryID is NoCategoryFilter,
	// otherwise the products of that category.
	ListProducts(ctx context.Context, categoryID int) ([]model.Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id int) (*model.Product, error)

	// CreateProduct validates the request and stores a new product.
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// ListCategories returns every category.
	ListCategories(ctx context.Context) ([]model.Category, error)
}
