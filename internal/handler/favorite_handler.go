package handler

import (
	"net/http"

	"mini-shop/internal/model"
	"mini-shop/internal/service"

	"github.com/rs/zerolog"
)

// FavoriteHandler handles favourite-related HTTP requests.
type FavoriteHandler struct {
	favorites service.FavoriteService
	catalog   service.CatalogService
	logger    zerolog.Logger
}

// NewFavoriteHandler creates a new favourite handler.
func NewFavoriteHandler(favorites service.FavoriteService, catalog service.CatalogService, logger zerolog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		catalog:   catalog,
		logger:    logger.With().Str("handler", "favorite").Logger(),
	}
}

// List handles GET /api/favorites requests.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.favorites.Favorites(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products, h.logger)
}

// IDs handles GET /api/favorites/ids requests.
func (h *FavoriteHandler) IDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.favorites.FavoriteIDs(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ids, h.logger)
}

// Get handles GET /api/favorites/{productId} requests.
func (h *FavoriteHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")

	favorite, err := h.favorites.IsFavorite(r.Context(), productID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.ToggleResponse{ProductID: productID, Favorite: favorite}, h.logger)
}

// Toggle handles POST /api/favorites/{productId}/toggle requests.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.ProductByID(r.Context(), r.PathValue("productId"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	favorite, err := h.favorites.ToggleFavorite(r.Context(), *product)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.ToggleResponse{ProductID: product.ID, Favorite: favorite}, h.logger)
}

// Clear handles DELETE /api/favorites requests.
func (h *FavoriteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.favorites.ClearFavorites(r.Context()); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
