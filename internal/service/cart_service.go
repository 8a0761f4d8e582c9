package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"mini-shop/internal/live"
	"mini-shop/internal/model"
	"mini-shop/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ChangeBus publishes and subscribes to change signals.
type ChangeBus interface {
	live.Publisher
	live.Subscriber
}

// cartService implements CartService.
type cartService struct {
	cartRepo      repository.CartRepository
	bus           ChangeBus
	locks         *keyedMutex
	checkoutDelay time.Duration
	processing    atomic.Bool
	now           func() time.Time
	logger        zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	bus ChangeBus,
	checkoutDelay time.Duration,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:      cartRepo,
		bus:           bus,
		locks:         newKeyedMutex(),
		checkoutDelay: checkoutDelay,
		now:           time.Now,
		logger:        logger.With().Str("service", "cart").Logger(),
	}
}

// AddToCart adds one unit of product to the cart.
func (s *cartService) AddToCart(ctx context.Context, product model.Product) (*model.CartLine, error) {
	unlock := s.locks.Lock(product.ID)
	defer unlock()

	line, err := s.cartRepo.AddOrIncrement(ctx, model.NewCartLine(product, s.now().UTC()))
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to add product to cart")
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Int("quantity", line.Quantity).
		Msg("product added to cart")

	s.bus.Publish(live.TopicCart)
	return line, nil
}

// UpdateQuantity sets the line quantity, removing the line when quantity <= 0.
func (s *cartService) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	unlock := s.locks.Lock(productID)
	defer unlock()

	return s.updateQuantity(ctx, productID, quantity)
}

func (s *cartService) updateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.remove(ctx, productID)
	}

	updated, err := s.cartRepo.UpdateQuantity(ctx, productID, quantity)
	if err != nil {
		s.logger.Error().Err(err).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("failed to update cart quantity")
		return fmt.Errorf("failed to update quantity: %w", err)
	}

	if !updated {
		s.logger.Debug().Str("product_id", productID).Msg("no cart line to update")
		return nil
	}

	s.bus.Publish(live.TopicCart)
	return nil
}

// IncreaseQuantity adds one unit to the line.
func (s *cartService) IncreaseQuantity(ctx context.Context, line model.CartLine) error {
	return s.UpdateQuantity(ctx, line.ProductID, line.Quantity+1)
}

// DecreaseQuantity removes one unit from the line, or the line itself at quantity 1.
func (s *cartService) DecreaseQuantity(ctx context.Context, line model.CartLine) error {
	if line.Quantity > 1 {
		return s.UpdateQuantity(ctx, line.ProductID, line.Quantity-1)
	}
	return s.RemoveFromCart(ctx, line.ProductID)
}

// IncreaseItem adds one unit to the stored line of productID. The line is
// read and written under the product lock.
// Returns model.ErrCartLineNotFound when the product is not in the cart.
func (s *cartService) IncreaseItem(ctx context.Context, productID string) error {
	return s.adjustItem(ctx, productID, 1)
}

// DecreaseItem removes one unit from the stored line of productID, removing
// the line at quantity 1.
// Returns model.ErrCartLineNotFound when the product is not in the cart.
func (s *cartService) DecreaseItem(ctx context.Context, productID string) error {
	return s.adjustItem(ctx, productID, -1)
}

func (s *cartService) adjustItem(ctx context.Context, productID string, delta int) error {
	unlock := s.locks.Lock(productID)
	defer unlock()

	line, err := s.Line(ctx, productID)
	if err != nil {
		return err
	}
	if line == nil {
		return model.ErrCartLineNotFound
	}

	return s.updateQuantity(ctx, productID, line.Quantity+delta)
}

// RemoveFromCart removes the line for a product. Absent lines are ignored.
func (s *cartService) RemoveFromCart(ctx context.Context, productID string) error {
	unlock := s.locks.Lock(productID)
	defer unlock()

	return s.remove(ctx, productID)
}

func (s *cartService) remove(ctx context.Context, productID string) error {
	deleted, err := s.cartRepo.Delete(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to remove cart line")
		return fmt.Errorf("failed to remove from cart: %w", err)
	}

	if deleted {
		s.logger.Info().Str("product_id", productID).Msg("product removed from cart")
		s.bus.Publish(live.TopicCart)
	}
	return nil
}

// ClearCart removes every line.
func (s *cartService) ClearCart(ctx context.Context) error {
	removed, err := s.cartRepo.Clear(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.logger.Info().Int64("removed", removed).Msg("cart cleared")

	if removed > 0 {
		s.bus.Publish(live.TopicCart)
	}
	return nil
}

// IsInCart reports whether the product has a line.
func (s *cartService) IsInCart(ctx context.Context, productID string) (bool, error) {
	line, err := s.Line(ctx, productID)
	if err != nil {
		return false, err
	}
	return line != nil, nil
}

// Line returns the line for a product, or nil.
func (s *cartService) Line(ctx context.Context, productID string) (*model.CartLine, error) {
	line, err := s.cartRepo.GetByProductID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to get cart line")
		return nil, fmt.Errorf("failed to get cart line: %w", err)
	}
	return line, nil
}

// Items returns all lines.
func (s *cartService) Items(ctx context.Context) ([]model.CartLine, error) {
	lines, err := s.cartRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list cart lines")
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return lines, nil
}

// Summary returns the line count and total price.
func (s *cartService) Summary(ctx context.Context) (model.CartSummary, error) {
	count, err := s.itemCount(ctx)
	if err != nil {
		return model.CartSummary{}, err
	}

	total, err := s.totalPrice(ctx)
	if err != nil {
		return model.CartSummary{}, err
	}

	return model.CartSummary{ItemCount: count, TotalPrice: total}, nil
}

// Snapshot returns the lines with their summary. Count and total are
// derived from the same list.
func (s *cartService) Snapshot(ctx context.Context) (model.CartSnapshot, error) {
	lines, err := s.Items(ctx)
	if err != nil {
		return model.CartSnapshot{}, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}

	return model.CartSnapshot{
		Items: lines,
		CartSummary: model.CartSummary{
			ItemCount:  len(lines),
			TotalPrice: total,
		},
	}, nil
}

func (s *cartService) itemCount(ctx context.Context) (int, error) {
	count, err := s.cartRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count cart lines")
		return 0, fmt.Errorf("failed to count cart: %w", err)
	}
	return count, nil
}

func (s *cartService) totalPrice(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.cartRepo.TotalPrice(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to total cart")
		return decimal.Zero, fmt.Errorf("failed to total cart: %w", err)
	}
	return total, nil
}

func (s *cartService) WatchItems(ctx context.Context) *live.Feed[[]model.CartLine] {
	return live.Watch(ctx, s.bus, live.TopicCart, s.Items)
}

func (s *cartService) WatchItemCount(ctx context.Context) *live.Feed[int] {
	return live.Watch(ctx, s.bus, live.TopicCart, s.itemCount)
}

func (s *cartService) WatchTotalPrice(ctx context.Context) *live.Feed[decimal.Decimal] {
	return live.Watch(ctx, s.bus, live.TopicCart, s.totalPrice)
}

func (s *cartService) WatchCart(ctx context.Context) *live.Feed[model.CartSnapshot] {
	return live.Watch(ctx, s.bus, live.TopicCart, s.Snapshot)
}

// CompleteOrder waits the processing delay and clears the cart. The delay
// is not interrupted by ctx, and the clear runs even if ctx is cancelled.
func (s *cartService) CompleteOrder(ctx context.Context) error {
	if !s.processing.CompareAndSwap(false, true) {
		s.logger.Warn().Msg("order already processing")
		return model.ErrCheckoutInProgress
	}
	defer s.processing.Store(false)

	s.logger.Info().Dur("delay", s.checkoutDelay).Msg("processing order")

	timer := time.NewTimer(s.checkoutDelay)
	<-timer.C

	if err := s.ClearCart(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("failed to complete order: %w", err)
	}

	s.logger.Info().Msg("order completed")
	return nil
}

// IsProcessing reports whether an order is being processed.
func (s *cartService) IsProcessing() bool {
	return s.processing.Load()
}
