package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "medapp/internal/delivery/context"
	"medapp/internal/domain/entity"
	"medapp/internal/infra/navigation"
	"medapp/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	eventBuffer    = 32
)

// Event types pushed on the stream
const (
	EventSession  = "session"
	EventCart     = "cart"
	EventWishlist = "wishlist"
	EventRoute    = "route"
)

// Event is one state change pushed to the client
type Event struct {
	Type  string `json:"type"`
	State any    `json:"state"`
}

// EventsHandlerParams holds dependencies for EventsHandler, injected by Fx.
type EventsHandlerParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
	CartUC     usecase.CartUsecase     `optional:"true"`
	WishlistUC usecase.WishlistUsecase `optional:"true"`
	Routes     *navigation.Router      `optional:"true"`
	Logger     *slog.Logger
}

// EventsHandler streams provider state over a websocket
type EventsHandler struct {
	identityUC usecase.IdentityUsecase
	cartUC     usecase.CartUsecase
	wishlistUC usecase.WishlistUsecase
	routes     *navigation.Router
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

// NewEventsHandler is the constructor for EventsHandler
func NewEventsHandler(params EventsHandlerParams) *EventsHandler {
	return &EventsHandler{
		identityUC: params.IdentityUC,
		cartUC:     params.CartUC,
		wishlistUC: params.WishlistUC,
		routes:     params.Routes,
		logger:     params.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// the stream serves the local presentation layer only
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Stream upgrades the connection and pushes every state change until the client leaves.
// Each stream starts with the current state of every provider.
func (h *EventsHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		return nil
	}
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
	logger.Debug("Event stream opened")

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event, eventBuffer)
	publish := func(ev Event) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	unsubscribes := []func(){
		h.identityUC.Watch(func(s usecase.IdentityState) { publish(Event{Type: EventSession, State: s}) }),
	}
	if h.cartUC != nil {
		unsubscribes = append(unsubscribes,
			h.cartUC.Watch(func(s usecase.CollectionState[entity.CartItem]) { publish(Event{Type: EventCart, State: s}) }))
	}
	if h.wishlistUC != nil {
		unsubscribes = append(unsubscribes,
			h.wishlistUC.Watch(func(s usecase.CollectionState[entity.WishlistItem]) { publish(Event{Type: EventWishlist, State: s}) }))
	}
	if h.routes != nil {
		unsubscribes = append(unsubscribes,
			h.routes.Watch(func(route string) { publish(Event{Type: EventRoute, State: route}) }))
	}

	go h.readPump(conn, cancel)
	h.writePump(ctx, conn, events, logger)

	// release blocked publishers before unsubscribing, which waits for them
	cancel()
	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
	_ = conn.Close()
	logger.Debug("Event stream closed")

	return nil
}

// readPump discards client messages and answers pings until the connection drops.
func (h *EventsHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Event stream read failed", slog.Any("error", err))
			}

			return
		}
	}
}

func (h *EventsHandler) writePump(ctx context.Context, conn *websocket.Conn, events <-chan Event, logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))

			return

		case ev := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debug("Event stream write failed", slog.String("type", ev.Type), slog.Any("error", err))

				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
