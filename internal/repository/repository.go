package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
)

// DBTX is the subset of the pgx API the repositories need. *pgxpool.Pool and
// pgx.Tx both satisfy it; the pool acquires a connection per statement and
// releases it when the rows are closed.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// FindAll retrieves every product. Order is whatever the store returns.
	FindAll(ctx context.Context) ([]model.Product, error)

	// FindByID retrieves a single product by its ID.
	// Returns model.ErrProductNotFound if no row matches.
	FindByID(ctx context.Context, id int) (*model.Product, error)

	// FindByCategory retrieves the products whose category ID equals categoryID.
	// No matches is not an error.
	FindByCategory(ctx context.Context, categoryID int) ([]model.Product, error)

	// Create inserts a product and returns a copy with the generated ID set.
	Create(ctx context.Context, product model.Product) (*model.Product, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// FindAll retrieves every category.
	FindAll(ctx context.Context) ([]model.Category, error)

	// Create inserts a category and returns a copy with the generated ID set.
	Create(ctx context.Context, category model.Category) (*model.Category, error)
}
