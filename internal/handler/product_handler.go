package handler

import (
	"net/http"

	"mini-shop/internal/model"
	"mini-shop/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
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

// List handles GET /api/products?q=&sort=&brand=&model= requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sortBy, err := model.ParseSortType(query.Get("sort"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidFilter, err.Error(), h.logger)
		return
	}

	filter := model.NewFilter(sortBy, queryList(r, "brand"), queryList(r, "model"))

	products, err := h.service.Products(r.Context(), query.Get("q"), filter)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products, h.logger)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if productID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	product, err := h.service.ProductByID(r.Context(), productID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// FilterOptions handles GET /api/filters requests.
func (h *ProductHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.FilterOptions(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, options, h.logger)
}
