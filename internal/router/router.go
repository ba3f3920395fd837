package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Pages      *handler.PageHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Health     http.Handler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.Handle("/health", h.Health)

	// Pages
	mux.HandleFunc("/", h.Pages.Index)
	mux.HandleFunc("/about", h.Pages.About)
	mux.HandleFunc("/products", h.Pages.Products)
	mux.HandleFunc("/products/", h.Pages.Product)

	// Product API: collection for GET and POST, item lookup otherwise
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			h.Products.GetByID(w, r)
			return
		}
		if r.Method == http.MethodPost {
			h.Products.Create(w, r)
			return
		}
		h.Products.GetAll(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	mux.HandleFunc("/api/categories", h.Categories.GetAll)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
