package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mini-shop/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCartHandler() (*CartHandler, *MockCartService, *MockCatalogService) {
	cart := new(MockCartService)
	catalog := new(MockCatalogService)
	return NewCartHandler(cart, catalog, zerolog.Nop()), cart, catalog
}

func TestCartHandler_Get(t *testing.T) {
	handler, cart, _ := newTestCartHandler()

	cart.On("Snapshot", mock.Anything).Return(model.CartSnapshot{
		Items: []model.CartLine{{ProductID: "1", UnitPrice: decimal.NewFromInt(100), Quantity: 2}},
		CartSummary: model.CartSummary{
			ItemCount:  1,
			TotalPrice: decimal.NewFromInt(200),
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, float64(1), body["itemCount"])
	assert.Equal(t, "200", body["totalPrice"])
	assert.Len(t, body["items"], 1)
}

func TestCartHandler_Summary(t *testing.T) {
	handler, cart, _ := newTestCartHandler()

	cart.On("Summary", mock.Anything).Return(model.CartSummary{ItemCount: 0, TotalPrice: decimal.Zero}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/summary", nil)
	w := httptest.NewRecorder()

	handler.Summary(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"itemCount":0,"totalPrice":"0"}`, w.Body.String())
}

func TestCartHandler_AddItem(t *testing.T) {
	product := testProduct("1")
	line := &model.CartLine{ID: 1, ProductID: "1", UnitPrice: product.Price, Quantity: 1}

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*MockCartService, *MockCatalogService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Success",
			body: `{"productId":"1"}`,
			setupMocks: func(cart *MockCartService, catalog *MockCatalogService) {
				catalog.On("ProductByID", mock.Anything, "1").Return(&product, nil)
				cart.On("AddToCart", mock.Anything, product).Return(line, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Invalid JSON",
			body:           `{invalid}`,
			setupMocks:     func(*MockCartService, *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Missing product ID",
			body:           `{}`,
			setupMocks:     func(*MockCartService, *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeMissingField,
		},
		{
			name: "Unknown product",
			body: `{"productId":"99"}`,
			setupMocks: func(cart *MockCartService, catalog *MockCatalogService) {
				catalog.On("ProductByID", mock.Anything, "99").Return(nil, model.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeProductNotFound,
		},
		{
			name: "Storage failure",
			body: `{"productId":"1"}`,
			setupMocks: func(cart *MockCartService, catalog *MockCatalogService) {
				catalog.On("ProductByID", mock.Anything, "1").Return(&product, nil)
				cart.On("AddToCart", mock.Anything, product).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, cart, catalog := newTestCartHandler()
			tt.setupMocks(cart, catalog)

			req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.AddItem(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			}

			cart.AssertExpectations(t)
			catalog.AssertExpectations(t)
		})
	}
}

func TestCartHandler_GetItem(t *testing.T) {
	handler, cart, _ := newTestCartHandler()

	cart.On("Line", mock.Anything, "1").Return(&model.CartLine{ProductID: "1", Quantity: 3}, nil)
	cart.On("Line", mock.Anything, "2").Return(nil, nil)

	for _, tc := range []struct {
		productID string
		inCart    bool
	}{{"1", true}, {"2", false}} {
		req := httptest.NewRequest(http.MethodGet, "/api/cart/items/"+tc.productID, nil)
		req.SetPathValue("productId", tc.productID)
		w := httptest.NewRecorder()

		handler.GetItem(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp inCartResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, tc.inCart, resp.InCart)
		assert.Equal(t, tc.inCart, resp.Line != nil)
	}
}

func TestCartHandler_UpdateItem(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockCartService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Positive quantity",
			body: `{"quantity":4}`,
			setupMock: func(m *MockCartService) {
				m.On("UpdateQuantity", mock.Anything, "1", 4).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "Zero quantity is passed through",
			body: `{"quantity":0}`,
			setupMock: func(m *MockCartService) {
				m.On("UpdateQuantity", mock.Anything, "1", 0).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Non-integer quantity",
			body:           `{"quantity":"two"}`,
			setupMock:      func(*MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"INVALID_QUANTITY","message":"Quantity must be an integer"`,
		},
		{
			name:           "Missing quantity",
			body:           `{}`,
			setupMock:      func(*MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"MISSING_FIELD"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, cart, _ := newTestCartHandler()
			tt.setupMock(cart)

			req := httptest.NewRequest(http.MethodPut, "/api/cart/items/1", strings.NewReader(tt.body))
			req.SetPathValue("productId", "1")
			w := httptest.NewRecorder()

			handler.UpdateItem(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			cart.AssertExpectations(t)
		})
	}
}

func TestCartHandler_IncreaseDecrease(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		method         string
		serviceErr     error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Increase",
			path:           "/api/cart/items/1/increase",
			method:         "IncreaseItem",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Decrease",
			path:           "/api/cart/items/1/decrease",
			method:         "DecreaseItem",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Line not in cart",
			path:           "/api/cart/items/1/increase",
			method:         "IncreaseItem",
			serviceErr:     model.ErrCartLineNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeCartLineNotFound,
		},
		{
			name:           "Storage failure",
			path:           "/api/cart/items/1/decrease",
			method:         "DecreaseItem",
			serviceErr:     errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, cart, _ := newTestCartHandler()
			cart.On(tt.method, mock.Anything, "1").Return(tt.serviceErr)

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.SetPathValue("productId", "1")
			w := httptest.NewRecorder()

			if tt.method == "IncreaseItem" {
				handler.IncreaseItem(w, req)
			} else {
				handler.DecreaseItem(w, req)
			}

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Contains(t, w.Body.String(), tt.expectedCode)
			}
			cart.AssertExpectations(t)
			cart.AssertNotCalled(t, "Line", mock.Anything, mock.Anything)
		})
	}
}

func TestCartHandler_RemoveAndClear(t *testing.T) {
	handler, cart, _ := newTestCartHandler()
	cart.On("RemoveFromCart", mock.Anything, "1").Return(nil)
	cart.On("ClearCart", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/1", nil)
	req.SetPathValue("productId", "1")
	w := httptest.NewRecorder()
	handler.RemoveItem(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler.Clear(w, httptest.NewRequest(http.MethodDelete, "/api/cart", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	cart.AssertExpectations(t)
}

func TestCartHandler_Checkout(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{name: "Completed", expectedStatus: http.StatusOK},
		{name: "Already processing", mockError: model.ErrCheckoutInProgress, expectedStatus: http.StatusConflict},
		{name: "Storage failure", mockError: errors.New("db down"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, cart, _ := newTestCartHandler()
			cart.On("CompleteOrder", mock.Anything).Return(tt.mockError)

			w := httptest.NewRecorder()
			handler.Checkout(w, httptest.NewRequest(http.MethodPost, "/api/cart/checkout", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			cart.AssertExpectations(t)
		})
	}
}
