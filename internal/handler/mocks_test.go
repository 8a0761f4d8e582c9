package handler

import (
	"context"

	"mini-shop/internal/live"
	"mini-shop/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Products(ctx context.Context, searchText string, filter model.Filter) ([]model.Product, error) {
	args := m.Called(ctx, searchText, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogService) FilterOptions(ctx context.Context) (model.FilterOptions, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.FilterOptions), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddToCart(ctx context.Context, product model.Product) (*model.CartLine, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartLine), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *MockCartService) IncreaseQuantity(ctx context.Context, line model.CartLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *MockCartService) DecreaseQuantity(ctx context.Context, line model.CartLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *MockCartService) IncreaseItem(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *MockCartService) DecreaseItem(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *MockCartService) ClearCart(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCartService) IsInCart(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartService) Line(ctx context.Context, productID string) (*model.CartLine, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartLine), args.Error(1)
}

func (m *MockCartService) Items(ctx context.Context) ([]model.CartLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLine), args.Error(1)
}

func (m *MockCartService) Summary(ctx context.Context) (model.CartSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.CartSummary), args.Error(1)
}

func (m *MockCartService) Snapshot(ctx context.Context) (model.CartSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.CartSnapshot), args.Error(1)
}

func (m *MockCartService) WatchItems(ctx context.Context) *live.Feed[[]model.CartLine] {
	return m.Called(ctx).Get(0).(*live.Feed[[]model.CartLine])
}

func (m *MockCartService) WatchItemCount(ctx context.Context) *live.Feed[int] {
	return m.Called(ctx).Get(0).(*live.Feed[int])
}

func (m *MockCartService) WatchTotalPrice(ctx context.Context) *live.Feed[decimal.Decimal] {
	return m.Called(ctx).Get(0).(*live.Feed[decimal.Decimal])
}

func (m *MockCartService) WatchCart(ctx context.Context) *live.Feed[model.CartSnapshot] {
	return m.Called(ctx).Get(0).(*live.Feed[model.CartSnapshot])
}

func (m *MockCartService) CompleteOrder(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCartService) IsProcessing() bool {
	return m.Called().Bool(0)
}

// MockFavoriteService is a mock implementation of FavoriteService.
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) ToggleFavorite(ctx context.Context, product model.Product) (bool, error) {
	args := m.Called(ctx, product)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) IsFavorite(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) Favorites(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockFavoriteService) FavoriteIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFavoriteService) ClearFavorites(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockFavoriteService) WatchFavorites(ctx context.Context) *live.Feed[[]model.Product] {
	return m.Called(ctx).Get(0).(*live.Feed[[]model.Product])
}

func (m *MockFavoriteService) WatchFavoriteIDs(ctx context.Context) *live.Feed[[]string] {
	return m.Called(ctx).Get(0).(*live.Feed[[]string])
}
