package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context, categoryID int) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

var (
	testProducts = []model.Product{
		{ID: 1, CategoryID: 2, Name: "Widget", Description: "A widget", Stock: 10, Price: 9.99},
		{ID: 2, CategoryID: 1, Name: "Hammer", Description: "Claw hammer", Stock: 4, Price: 24.5},
	}
	testCategories = []model.Category{{ID: 1, Name: "Tools"}, {ID: 2, Name: "Widgets"}}
	storeErr       = model.NewDataAccessError("failed to query products", errors.New("connection refused"))
)

func TestProductHandler_GetAll(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		query            string
		expectedCategory int
		mockReturn       []model.Product
		mockError        error
		expectedStatus   int
		expectService    bool
	}{
		{
			name:             "All products",
			method:           http.MethodGet,
			expectedCategory: service.NoCategoryFilter,
			mockReturn:       testProducts,
			expectedStatus:   http.StatusOK,
			expectService:    true,
		},
		{
			name:             "Filtered by category",
			method:           http.MethodGet,
			query:            "?cat=2",
			expectedCategory: 2,
			mockReturn:       testProducts[:1],
			expectedStatus:   http.StatusOK,
			expectService:    true,
		},
		{
			name:             "Invalid filter lists everything",
			method:           http.MethodGet,
			query:            "?cat=abc",
			expectedCategory: service.NoCategoryFilter,
			mockReturn:       testProducts,
			expectedStatus:   http.StatusOK,
			expectService:    true,
		},
		{
			name:             "Out of range filter lists everything",
			method:           http.MethodGet,
			query:            "?cat=-2147483649",
			expectedCategory: service.NoCategoryFilter,
			mockReturn:       testProducts,
			expectedStatus:   http.StatusOK,
			expectService:    true,
		},
		{
			name:             "Empty category",
			method:           http.MethodGet,
			query:            "?cat=9",
			expectedCategory: 9,
			mockReturn:       []model.Product{},
			expectedStatus:   http.StatusOK,
			expectService:    true,
		},
		{
			name:             "Store failure",
			method:           http.MethodGet,
			expectedCategory: service.NoCategoryFilter,
			mockError:        storeErr,
			expectedStatus:   http.StatusInternalServerError,
			expectService:    true,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodDelete,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCatalogService)
			if tt.expectService {
				mockService.On("ListProducts", mock.Anything, tt.expectedCategory).Return(tt.mockReturn, tt.mockError)
			}

			handler := NewProductHandler(mockService, zerolog.Nop())
			req := httptest.NewRequest(tt.method, "/api/products"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.GetAll(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tt.expectedStatus == http.StatusOK {
				var products []model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
				assert.Equal(t, tt.mockReturn, products)
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProductHandler_GetAll_InvalidFilterMatchesNoFilter(t *testing.T) {
	mockService := new(MockCatalogService)
	mockService.On("ListProducts", mock.Anything, service.NoCategoryFilter).Return(testProducts, nil)

	handler := NewProductHandler(mockService, zerolog.Nop())

	unfiltered := httptest.NewRecorder()
	handler.GetAll(unfiltered, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	invalid := httptest.NewRecorder()
	handler.GetAll(invalid, httptest.NewRequest(http.MethodGet, "/api/products?cat=abc", nil))

	assert.Equal(t, http.StatusOK, invalid.Code)
	assert.JSONEq(t, unfiltered.Body.String(), invalid.Body.String())
	mockService.AssertNumberOfCalls(t, "ListProducts", 2)
}

func TestProductHandler_GetByID(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		productID      int
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectedCode   string
		expectService  bool
	}{
		{
			name:           "Found",
			method:         http.MethodGet,
			path:           "/api/products/1",
			productID:      1,
			mockReturn:     &testProducts[0],
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			method:         http.MethodGet,
			path:           "/api/products/999",
			productID:      999,
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeProductNotFound,
			expectService:  true,
		},
		{
			name:           "Store failure",
			method:         http.MethodGet,
			path:           "/api/products/1",
			productID:      1,
			mockError:      model.NewDataAccessError("failed to get product", errors.New("timeout")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
			expectService:  true,
		},
		{
			name:           "Non-integer ID",
			method:         http.MethodGet,
			path:           "/api/products/abc",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidInput,
		},
		{
			name:           "Out of range ID",
			method:         http.MethodGet,
			path:           "/api/products/99999999999",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidInput,
		},
		{
			name:           "Missing ID",
			method:         http.MethodGet,
			path:           "/api/products/",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidInput,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodPut,
			path:           "/api/products/1",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedCode:   model.ErrCodeMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCatalogService)
			if tt.expectService {
				mockService.On("GetProduct", mock.Anything, tt.productID).Return(tt.mockReturn, tt.mockError)
			}

			handler := NewProductHandler(mockService, zerolog.Nop())
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var product model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
				assert.Equal(t, *tt.mockReturn, product)
			} else {
				var body model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedCode, body.Error)
				assert.NotContains(t, body.Message, "timeout")
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	validReq := &model.CreateProductRequest{CategoryID: 2, Name: "Gizmo", Description: "Small", Stock: 3, Price: 4.5}
	created := &model.Product{ID: 7, CategoryID: 2, Name: "Gizmo", Description: "Small", Stock: 3, Price: 4.5}

	tests := []struct {
		name           string
		method         string
		body           string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectedCode   string
		expectService  bool
	}{
		{
			name:           "Created",
			method:         http.MethodPost,
			body:           `{"categoryId":2,"name":"Gizmo","description":"Small","stock":3,"price":4.5}`,
			mockReturn:     created,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			method:         http.MethodPost,
			body:           `{"categoryId":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Unknown field",
			method:         http.MethodPost,
			body:           `{"id":5,"categoryId":2,"name":"Gizmo","stock":3,"price":4.5}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Validation failure",
			method:         http.MethodPost,
			body:           `{"categoryId":2,"name":"Gizmo","description":"Small","stock":3,"price":4.5}`,
			mockError:      model.NewInvalidInputError("category 2 does not exist"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidInput,
			expectService:  true,
		},
		{
			name:           "Store failure",
			method:         http.MethodPost,
			body:           `{"categoryId":2,"name":"Gizmo","description":"Small","stock":3,"price":4.5}`,
			mockError:      model.NewDataAccessError("failed to insert product", errors.New("disk full")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
			expectService:  true,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
			expectedCode:   model.ErrCodeMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCatalogService)
			if tt.expectService {
				mockService.On("CreateProduct", mock.Anything, validReq).Return(tt.mockReturn, tt.mockError)
			}

			handler := NewProductHandler(mockService, zerolog.Nop())
			req := httptest.NewRequest(tt.method, "/api/products", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var product model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
				assert.Equal(t, *created, product)
			} else {
				var body model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedCode, body.Error)
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
			}
		})
	}
}
