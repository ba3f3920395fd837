package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/view"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "router-test-key"

// fakeCatalog is an in-memory catalog used to exercise routing end to end.
type fakeCatalog struct {
	products   []model.Product
	categories []model.Category
}

func (f *fakeCatalog) ListProducts(ctx context.Context, categoryID int) ([]model.Product, error) {
	result := []model.Product{}
	for _, p := range f.products {
		if categoryID == 0 || p.CategoryID == categoryID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	p := req.ToProduct()
	p.ID = len(f.products) + 1
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]model.Category, error) {
	return f.categories, nil
}

type okPinger struct{}

func (okPinger) Ping(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	catalog := &fakeCatalog{
		products: []model.Product{
			{ID: 1, CategoryID: 2, Name: "Widget", Description: "A widget", Stock: 10, Price: 9.99},
			{ID: 2, CategoryID: 1, Name: "Hammer", Description: "Claw hammer", Stock: 4, Price: 24.5},
		},
		categories: []model.Category{{ID: 1, Name: "Tools"}, {ID: 2, Name: "Widgets"}},
	}

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	return New(Handlers{
		Pages:      handler.NewPageHandler(catalog, renderer, logger),
		Products:   handler.NewProductHandler(catalog, logger),
		Categories: handler.NewCategoryHandler(catalog, logger),
		Health:     handler.NewHealthHandler(okPinger{}, time.Second, logger),
	}, testAPIKey, logger)
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		apiKey         string
		expectedStatus int
		contains       string
	}{
		{name: "Health", method: http.MethodGet, target: "/health", expectedStatus: http.StatusOK, contains: "healthy"},
		{name: "Index page", method: http.MethodGet, target: "/?name=Ada", expectedStatus: http.StatusOK, contains: "Welcome, Ada"},
		{name: "About page", method: http.MethodGet, target: "/about", expectedStatus: http.StatusOK, contains: "About"},
		{name: "Products page", method: http.MethodGet, target: "/products?cat=1", expectedStatus: http.StatusOK, contains: "Hammer"},
		{name: "Product page", method: http.MethodGet, target: "/products/1", expectedStatus: http.StatusOK, contains: "<h1>Widget</h1>"},
		{name: "Missing product page", method: http.MethodGet, target: "/products/42", expectedStatus: http.StatusNotFound, contains: "404 Not Found"},
		{name: "Unknown page", method: http.MethodGet, target: "/missing", expectedStatus: http.StatusNotFound, contains: "404 Not Found"},
		{name: "Product list API", method: http.MethodGet, target: "/api/products?cat=2", expectedStatus: http.StatusOK, contains: `"name":"Widget"`},
		{name: "Product API", method: http.MethodGet, target: "/api/products/2", expectedStatus: http.StatusOK, contains: `"name":"Hammer"`},
		{name: "Missing product API", method: http.MethodGet, target: "/api/products/42", expectedStatus: http.StatusNotFound, contains: model.ErrCodeProductNotFound},
		{name: "Categories API", method: http.MethodGet, target: "/api/categories", expectedStatus: http.StatusOK, contains: `"name":"Tools"`},
		{
			name:           "Create without key",
			method:         http.MethodPost,
			target:         "/api/products",
			body:           `{"categoryId":1,"name":"Saw","stock":1,"price":30}`,
			expectedStatus: http.StatusUnauthorized,
			contains:       model.ErrCodeUnauthorised,
		},
		{
			name:           "Create with key",
			method:         http.MethodPost,
			target:         "/api/products",
			body:           `{"categoryId":1,"name":"Saw","stock":1,"price":30}`,
			apiKey:         testAPIKey,
			expectedStatus: http.StatusCreated,
			contains:       `"name":"Saw"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_ErrorCarriesRequestID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/42", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-42")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "trace-42", body.RequestID)
	assert.Equal(t, "trace-42", w.Header().Get(middleware.RequestIDHeader))
}
