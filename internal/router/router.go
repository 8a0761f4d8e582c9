package router

import (
	"net/http"
	"strings"

	"mini-shop/internal/handler"
	"mini-shop/internal/middleware"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Favorite *handler.FavoriteHandler
	Stream   *handler.StreamHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, serviceName string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.HandleFunc("GET /api/filters", h.Product.FilterOptions)

	// Cart
	mux.HandleFunc("GET /api/cart", h.Cart.Get)
	mux.HandleFunc("DELETE /api/cart", h.Cart.Clear)
	mux.HandleFunc("GET /api/cart/summary", h.Cart.Summary)
	mux.HandleFunc("POST /api/cart/items", h.Cart.AddItem)
	mux.HandleFunc("GET /api/cart/items/{productId}", h.Cart.GetItem)
	mux.HandleFunc("PUT /api/cart/items/{productId}", h.Cart.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{productId}", h.Cart.RemoveItem)
	mux.HandleFunc("POST /api/cart/items/{productId}/increase", h.Cart.IncreaseItem)
	mux.HandleFunc("POST /api/cart/items/{productId}/decrease", h.Cart.DecreaseItem)
	mux.HandleFunc("POST /api/cart/checkout", h.Cart.Checkout)
	mux.HandleFunc("GET /api/cart/stream", h.Stream.Cart)

	// Favourites
	mux.HandleFunc("GET /api/favorites", h.Favorite.List)
	mux.HandleFunc("DELETE /api/favorites", h.Favorite.Clear)
	mux.HandleFunc("GET /api/favorites/ids", h.Favorite.IDs)
	mux.HandleFunc("GET /api/favorites/{productId}", h.Favorite.Get)
	mux.HandleFunc("POST /api/favorites/{productId}/toggle", h.Favorite.Toggle)
	mux.HandleFunc("GET /api/favorites/stream", h.Stream.Favorites)
	mux.HandleFunc("GET /api/favorites/ids/stream", h.Stream.FavoriteIDs)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	// Long-lived streams and health probes are not traced.
	return otelhttp.NewHandler(handler, serviceName,
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health" && !strings.HasSuffix(r.URL.Path, "/stream")
		}),
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
