package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts returns all products or the products of one category.
func (s *catalogService) ListProducts(ctx context.Context, categoryID int) ([]model.Product, error) {
	var (
		products []model.Product
		err      error
	)

	if categoryID == NoCategoryFilter {
		products, err = s.productRepo.FindAll(ctx)
	} else {
		products, err = s.productRepo.FindByCategory(ctx, categoryID)
	}
	if err != nil {
		s.logger.Error().Err(err).Int("category_id", categoryID).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("category_id", categoryID).
		Msg("retrieved products")

	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			s.logger.Debug().Int("product_id", id).Msg("product not found")
			return nil, err
		}
		s.logger.Error().Err(err).Int("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// CreateProduct validates the request and stores a new product.
func (s *catalogService) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if err := validateCreateProduct(req); err != nil {
		s.logger.Warn().Err(err).Msg("product rejected")
		return nil, err
	}

	p := req.ToProduct()
	p.Name = strings.TrimSpace(p.Name)

	product, err := s.productRepo.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int("product_id", product.ID).
		Int("category_id", product.CategoryID).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// ListCategories returns every category.
func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

func validateCreateProduct(req *model.CreateProductRequest) error {
	if req == nil {
		return model.NewInvalidInputError("request body is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewInvalidInputError("name is required")
	}
	if req.CategoryID <= 0 {
		return model.NewInvalidInputError("categoryId must be a positive integer")
	}
	if req.Stock < 0 {
		return model.NewInvalidInputError("stock cannot be negative")
	}
	if req.Price < 0 {
		return model.NewInvalidInputError("price cannot be negative")
	}
	return nil
}
