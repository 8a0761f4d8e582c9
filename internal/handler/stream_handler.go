package handler

import (
	"context"
	"net/http"
	"time"

	"mini-shop/internal/live"
	"mini-shop/internal/model"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// CartWatcher streams live cart snapshots.
type CartWatcher interface {
	WatchCart(ctx context.Context) *live.Feed[model.CartSnapshot]
}

// FavoriteWatcher streams live favourites.
type FavoriteWatcher interface {
	WatchFavorites(ctx context.Context) *live.Feed[[]model.Product]
	WatchFavoriteIDs(ctx context.Context) *live.Feed[[]string]
}

// StreamHandler serves live aggregates over WebSocket. Each message is the
// full current value as JSON.
type StreamHandler struct {
	cart       CartWatcher
	favorites  FavoriteWatcher
	upgrader   websocket.Upgrader
	pingPeriod time.Duration
	logger     zerolog.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(cart CartWatcher, favorites FavoriteWatcher, logger zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		cart:      cart,
		favorites: favorites,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		pingPeriod: pingPeriod,
		logger:     logger.With().Str("handler", "stream").Logger(),
	}
}

// Cart handles GET /api/cart/stream requests.
func (h *StreamHandler) Cart(w http.ResponseWriter, r *http.Request) {
	serveFeed(h, w, r, "cart", h.cart.WatchCart)
}

// Favorites handles GET /api/favorites/stream requests.
func (h *StreamHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	serveFeed(h, w, r, "favorites", h.favorites.WatchFavorites)
}

// FavoriteIDs handles GET /api/favorites/ids/stream requests.
func (h *StreamHandler) FavoriteIDs(w http.ResponseWriter, r *http.Request) {
	serveFeed(h, w, r, "favorite-ids", h.favorites.WatchFavoriteIDs)
}

// serveFeed upgrades the connection and writes every feed value until the
// client goes away or the feed stops.
func serveFeed[T any](h *StreamHandler, w http.ResponseWriter, r *http.Request, stream string, watch func(ctx context.Context) *live.Feed[T]) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("stream", stream).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	feed := watch(ctx)
	defer feed.Cancel()

	go readPump(conn, cancel)

	logger := h.logger.With().Str("stream", stream).Str("remote_addr", r.RemoteAddr).Logger()
	logger.Debug().Msg("stream opened")

	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case value, ok := <-feed.Updates():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				if err := feed.Err(); err != nil {
					logger.Error().Err(err).Msg("stream stopped")
					conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "internal error"))
				} else {
					conn.WriteMessage(websocket.CloseMessage, []byte{})
				}
				return
			}

			if err := conn.WriteJSON(value); err != nil {
				logger.Debug().Err(err).Msg("stream write failed")
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			logger.Debug().Msg("stream closed")
			return
		}
	}
}

// readPump discards client messages and cancels the stream when the
// connection closes.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
