package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const productColumns = `id, category_id, name, description, stock, price`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	db     DBTX
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DBTX, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// FindAll retrieves every product.
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, model.NewDataAccessError("failed to query products", err)
	}

	products, err := pgx.CollectRows(rows, mapProduct)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to map product rows")
		return nil, model.NewDataAccessError("failed to map products", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// FindByID retrieves a single product by its ID.
func (r *productRepository) FindByID(ctx context.Context, id int) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to query product")
		return nil, model.NewDataAccessError("failed to query product", err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, mapProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int("product_id", id).Msg("product not found")
			return nil, model.ErrProductNotFound
		}
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to map product row")
		return nil, model.NewDataAccessError(fmt.Sprintf("failed to map product %d", id), err)
	}

	return &p, nil
}

// FindByCategory retrieves the products belonging to a category.
func (r *productRepository) FindByCategory(ctx context.Context, categoryID int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = $1`

	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		r.logger.Error().Err(err).Int("category_id", categoryID).Msg("failed to query products by category")
		return nil, model.NewDataAccessError("failed to query products by category", err)
	}

	products, err := pgx.CollectRows(rows, mapProduct)
	if err != nil {
		r.logger.Error().Err(err).Int("category_id", categoryID).Msg("failed to map product rows")
		return nil, model.NewDataAccessError("failed to map products", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// Create inserts a product and returns a copy carrying the generated ID.
func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	query := `
		INSERT INTO products (name, category_id, description, stock, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err := r.db.QueryRow(ctx, query,
		product.Name,
		product.CategoryID,
		product.Description,
		product.Stock,
		product.Price,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error().Str("name", product.Name).Msg("insert returned no generated key")
			return nil, model.NewDataAccessError("insert returned no generated key", err)
		}
		if pgErr, ok := constraintViolation(err); ok {
			r.logger.Warn().
				Str("constraint", pgErr.ConstraintName).
				Int("category_id", product.CategoryID).
				Msg("product violates a table constraint")
			if pgErr.Code == pgForeignKeyViolation {
				return nil, model.NewInvalidInputError(fmt.Sprintf("category %d does not exist", product.CategoryID))
			}
			return nil, model.NewInvalidInputError(fmt.Sprintf("product data constraint violation: %s", pgErr.Message))
		}
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to insert product")
		return nil, model.NewDataAccessError("failed to insert product", err)
	}

	product.ID = id

	r.logger.Debug().
		Int("product_id", id).
		Int("category_id", product.CategoryID).
		Msg("product created")

	return &product, nil
}
