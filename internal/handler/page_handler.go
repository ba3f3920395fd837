package handler

import (
	"errors"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/view"

	"github.com/rs/zerolog"
)

const productPagePath = "/products/"

// PageHandler serves the server-rendered HTML pages.
type PageHandler struct {
	service  service.CatalogService
	renderer *view.Renderer
	logger   zerolog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(service service.CatalogService, renderer *view.Renderer, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		service:  service,
		renderer: renderer,
		logger:   logger.With().Str("handler", "page").Logger(),
	}
}

// Index handles GET / with an optional ?name= greeting. Any other path is a 404 page.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.renderError(w, r, http.StatusNotFound, "page not found")
		return
	}

	h.render(w, r, http.StatusOK, view.PageIndex, view.IndexData{Name: r.URL.Query().Get("name")})
}

// About handles GET /about.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageAbout, nil)
}

// Products handles GET /products?cat=N. An unparsable filter shows every product.
func (h *PageHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categoryID := parseCategoryFilter(r.URL.Query().Get("cat"), h.logger)

	products, err := h.service.ListProducts(ctx, categoryID)
	if err != nil {
		h.logger.Error().Err(err).Int("category_id", categoryID).Msg("failed to list products")
		h.renderError(w, r, http.StatusInternalServerError, "products are unavailable right now")
		return
	}

	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list categories")
		h.renderError(w, r, http.StatusInternalServerError, "products are unavailable right now")
		return
	}

	h.render(w, r, http.StatusOK, view.PageProducts, view.ProductsData{
		Products:         products,
		Categories:       categories,
		SelectedCategory: categoryID,
	})
}

// Product handles GET /products/{id}.
func (h *PageHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, ok, err := pathID(r.URL.Path, productPagePath)
	if !ok {
		h.Products(w, r)
		return
	}
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "product not found")
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			h.renderError(w, r, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error().Err(err).Int("product_id", id).Msg("failed to get product")
		h.renderError(w, r, http.StatusInternalServerError, "product is unavailable right now")
		return
	}

	h.render(w, r, http.StatusOK, view.PageProduct, view.ProductData{Product: *product})
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, view.PageError, view.ErrorData{
		Status:  status,
		Title:   http.StatusText(status),
		Message: message,
	})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	body, err := h.renderer.Render(page, data)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("page", page).
			Str("path", r.URL.Path).
			Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
