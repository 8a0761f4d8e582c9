package service

import (
	"context"
	"sync"
	"time"

	"mini-shop/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) List(ctx context.Context) ([]model.CartLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLine), args.Error(1)
}

func (m *MockCartRepository) GetByProductID(ctx context.Context, productID string) (*model.CartLine, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartLine), args.Error(1)
}

func (m *MockCartRepository) AddOrIncrement(ctx context.Context, line model.CartLine) (*model.CartLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartLine), args.Error(1)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCartRepository) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// slowCartRepository is an in-memory CartRepository whose reads take a
// while, widening any read-then-write window in callers.
type slowCartRepository struct {
	mu        sync.Mutex
	lines     map[string]model.CartLine
	readDelay time.Duration
}

func newSlowCartRepository(readDelay time.Duration) *slowCartRepository {
	return &slowCartRepository{lines: make(map[string]model.CartLine), readDelay: readDelay}
}

func (r *slowCartRepository) put(productID string, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[productID] = model.CartLine{ProductID: productID, Quantity: quantity, UnitPrice: decimal.NewFromInt(1)}
}

func (r *slowCartRepository) List(ctx context.Context) ([]model.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]model.CartLine, 0, len(r.lines))
	for _, l := range r.lines {
		lines = append(lines, l)
	}
	return lines, nil
}

func (r *slowCartRepository) GetByProductID(ctx context.Context, productID string) (*model.CartLine, error) {
	r.mu.Lock()
	line, ok := r.lines[productID]
	r.mu.Unlock()

	time.Sleep(r.readDelay)

	if !ok {
		return nil, nil
	}
	return &line, nil
}

func (r *slowCartRepository) AddOrIncrement(ctx context.Context, line model.CartLine) (*model.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.lines[line.ProductID]; ok {
		existing.Quantity++
		r.lines[line.ProductID] = existing
		return &existing, nil
	}
	r.lines[line.ProductID] = line
	return &line, nil
}

func (r *slowCartRepository) UpdateQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.lines[productID]
	if !ok {
		return false, nil
	}
	line.Quantity = quantity
	r.lines[productID] = line
	return true, nil
}

func (r *slowCartRepository) Delete(ctx context.Context, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.lines[productID]
	delete(r.lines, productID)
	return ok, nil
}

func (r *slowCartRepository) Clear(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.lines))
	r.lines = make(map[string]model.CartLine)
	return n, nil
}

func (r *slowCartRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines), nil
}

func (r *slowCartRepository) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, l := range r.lines {
		total = total.Add(l.LineTotal())
	}
	return total, nil
}

// MockFavoriteRepository is a mock implementation of FavoriteRepository.
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) List(ctx context.Context) ([]model.FavoriteEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FavoriteEntry), args.Error(1)
}

func (m *MockFavoriteRepository) IDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Toggle(ctx context.Context, entry model.FavoriteEntry) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Clear(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductCatalog is a mock implementation of ProductCatalog.
type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) Products(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductCatalog) ProductByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func testProduct(id, brand, mdl string, price int64, createdAt string) model.Product {
	return model.Product{
		ID:        id,
		Name:      brand + " " + mdl,
		Brand:     brand,
		Model:     mdl,
		Price:     decimal.NewFromInt(price),
		CreatedAt: createdAt,
	}
}
