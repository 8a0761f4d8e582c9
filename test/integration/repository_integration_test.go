package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"mini-shop/internal/live"
	"mini-shop/internal/model"
	"mini-shop/internal/repository"
	"mini-shop/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationProduct(id string, price int64) model.Product {
	return model.Product{
		ID:        id,
		Name:      "Product " + id,
		Image:     "https://img.example.com/" + id + ".png",
		Price:     decimal.NewFromInt(price),
		Model:     "M" + id,
		Brand:     "B" + id,
		CreatedAt: "2023-01-01T00:00:00.000Z",
	}
}

func receive[T any](t *testing.T, feed *live.Feed[T]) T {
	t.Helper()

	select {
	case v, ok := <-feed.Updates():
		require.True(t, ok, "feed closed: %v", feed.Err())
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for feed update")
	}
	var zero T
	return zero
}

func TestCartService_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	hub := live.NewHub()
	cart := service.NewCartService(repository.NewCartRepository(testDB.Pool, logger), hub, 200*time.Millisecond, logger)
	ctx := context.Background()

	t.Run("total price feed follows writes", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		feedCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		feed := cart.WatchTotalPrice(feedCtx)
		defer feed.Cancel()

		assert.True(t, receive(t, feed).IsZero())

		_, err := cart.AddToCart(ctx, integrationProduct("1", 250))
		require.NoError(t, err)
		assert.Equal(t, "250", receive(t, feed).String())

		_, err = cart.AddToCart(ctx, integrationProduct("1", 250))
		require.NoError(t, err)
		assert.Equal(t, "500", receive(t, feed).String())
	})

	t.Run("second checkout while processing is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		_, err := cart.AddToCart(ctx, integrationProduct("2", 10))
		require.NoError(t, err)

		first := make(chan error, 1)
		go func() { first <- cart.CompleteOrder(ctx) }()

		require.Eventually(t, cart.IsProcessing, time.Second, 5*time.Millisecond)

		err = cart.CompleteOrder(ctx)
		assert.True(t, errors.Is(err, model.ErrCheckoutInProgress))

		require.NoError(t, <-first)
		assert.False(t, cart.IsProcessing())

		items, err := cart.Items(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestFavoriteService_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	hub := live.NewHub()
	favorites := service.NewFavoriteService(repository.NewFavoriteRepository(testDB.Pool, logger), hub, logger)
	ctx := context.Background()

	CleanupDB(t, testDB.Pool)

	feedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	feed := favorites.WatchFavoriteIDs(feedCtx)
	defer feed.Cancel()

	assert.Empty(t, receive(t, feed))

	added, err := favorites.ToggleFavorite(ctx, integrationProduct("7", 70))
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"7"}, receive(t, feed))

	list, err := favorites.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "70", list[0].Price.String())

	removed, err := favorites.ToggleFavorite(ctx, integrationProduct("7", 70))
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, receive(t, feed))
}
