package seed

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// Result summarises an import run.
type Result struct {
	CategoriesCreated int
	CategoriesReused  int
	ProductsCreated   int
}

// Importer writes a seed catalogue through the repositories.
type Importer struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	logger     zerolog.Logger
}

// NewImporter creates a new importer.
func NewImporter(categories repository.CategoryRepository, products repository.ProductRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		categories: categories,
		products:   products,
		logger:     logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Import creates every product of catalog. Categories that already exist are
// matched by name; the rest are created first.
func (i *Importer) Import(ctx context.Context, catalog *Catalog) (Result, error) {
	var result Result

	existing, err := i.categories.FindAll(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list categories: %w", err)
	}

	ids := make(map[string]int, len(existing))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	for _, name := range catalog.CategoryNames() {
		if _, ok := ids[name]; ok {
			result.CategoriesReused++
			continue
		}

		created, err := i.categories.Create(ctx, model.Category{Name: name})
		if err != nil {
			return result, fmt.Errorf("failed to create category %q: %w", name, err)
		}
		ids[name] = created.ID
		result.CategoriesCreated++

		i.logger.Debug().Int("category_id", created.ID).Str("name", name).Msg("category created")
	}

	for n, row := range catalog.Rows {
		product := model.Product{
			CategoryID:  ids[row.Category],
			Name:        row.Name,
			Description: row.Description,
			Stock:       row.Stock,
			Price:       row.Price,
		}

		if _, err := i.products.Create(ctx, product); err != nil {
			return result, fmt.Errorf("failed to create product %q (row %d): %w", row.Name, n+1, err)
		}
		result.ProductsCreated++
	}

	i.logger.Info().
		Int("categories_created", result.CategoriesCreated).
		Int("categories_reused", result.CategoriesReused).
		Int("products_created", result.ProductsCreated).
		Msg("seed import completed")

	return result, nil
}
