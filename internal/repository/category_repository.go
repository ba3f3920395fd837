package repository

import (
	"context"
	"errors"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	db     DBTX
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(db DBTX, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// FindAll retrieves every category.
func (r *categoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, model.NewDataAccessError("failed to query categories", err)
	}

	categories, err := pgx.CollectRows(rows, mapCategory)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to map category rows")
		return nil, model.NewDataAccessError("failed to map categories", err)
	}

	if categories == nil {
		categories = []model.Category{}
	}

	return categories, nil
}

// Create inserts a category and returns a copy carrying the generated ID.
func (r *categoryRepository) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	var id int
	err := r.db.QueryRow(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`, category.Name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error().Str("name", category.Name).Msg("insert returned no generated key")
			return nil, model.NewDataAccessError("insert returned no generated key", err)
		}
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to insert category")
		return nil, model.NewDataAccessError("failed to insert category", err)
	}

	category.ID = id

	return &category, nil
}
