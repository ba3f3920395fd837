package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

const productsPath = "/api/products/"

// maxBodyBytes bounds the size of a create request body.
const maxBodyBytes = 1 << 20

// ProductHandler serves the product JSON API.
type ProductHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.CatalogService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products, optionally filtered by ?cat=.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	categoryID := parseCategoryFilter(r.URL.Query().Get("cat"), h.logger)

	products, err := h.service.ListProducts(r.Context(), categoryID)
	if err != nil {
		status, code, msg := errorStatus(err)
		writeError(w, r, status, code, msg, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok, err := pathID(r.URL.Path, productsPath)
	if !ok {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "product ID is required", h.logger)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "product ID must be an integer", h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		status, code, msg := errorStatus(err)
		writeError(w, r, status, code, msg, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CreateProductRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("failed to decode create product request")
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON body", h.logger)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		status, code, msg := errorStatus(err)
		writeError(w, r, status, code, msg, h.logger)
		return
	}

	h.logger.Info().
		Int("product_id", product.ID).
		Int("category_id", product.CategoryID).
		Msg("product created")

	writeJSON(w, http.StatusCreated, product)
}
