package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"mini-shop/internal/model"
	"mini-shop/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	cart    service.CartService
	catalog service.CatalogService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart service.CartService, catalog service.CatalogService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// inCartResponse reports whether a product is in the cart.
type inCartResponse struct {
	ProductID string          `json:"productId"`
	InCart    bool            `json:"inCart"`
	Line      *model.CartLine `json:"line,omitempty"`
}

// checkoutResponse reports a completed order.
type checkoutResponse struct {
	Status string `json:"status"`
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.cart.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, snapshot, h.logger)
}

// Summary handles GET /api/cart/summary requests.
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cart.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary, h.logger)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}

	product, err := h.catalog.ProductByID(r.Context(), req.ProductID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	line, err := h.cart.AddToCart(r.Context(), *product)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, line, h.logger)
}

// GetItem handles GET /api/cart/items/{productId} requests.
func (h *CartHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")

	line, err := h.cart.Line(r.Context(), productID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, inCartResponse{
		ProductID: productID,
		InCart:    line != nil,
		Line:      line,
	}, h.logger)
}

// UpdateItem handles PUT /api/cart/items/{productId} requests.
// A quantity of zero or less removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req model.QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(w, r, model.ErrInvalidQuantity, h.logger)
		return
	}

	if req.Quantity == nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "quantity is required", h.logger)
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), r.PathValue("productId"), *req.Quantity); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// IncreaseItem handles POST /api/cart/items/{productId}/increase requests.
func (h *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.cart.IncreaseItem)
}

// DecreaseItem handles POST /api/cart/items/{productId}/decrease requests.
func (h *CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.cart.DecreaseItem)
}

func (h *CartHandler) adjust(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, productID string) error) {
	if err := op(r.Context(), r.PathValue("productId")); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem handles DELETE /api/cart/items/{productId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.RemoveFromCart(r.Context(), r.PathValue("productId")); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearCart(r.Context()); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/cart/checkout requests. It returns once the
// order has been processed.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.CompleteOrder(r.Context()); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{Status: "completed"}, h.logger)
}
