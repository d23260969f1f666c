package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hyeok-dev/dicearena/internal/model"
	"github.com/hyeok-dev/dicearena/internal/services/session"
)

// Handler upgrades HTTP requests to websocket connections and dispatches
// inbound events to the session coordinator
type Handler struct {
	gateway     *Gateway
	coordinator *session.Coordinator
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// NewHandler creates a websocket handler
func NewHandler(gateway *Gateway, coordinator *session.Coordinator, logger *slog.Logger) *Handler {
	return &Handler{
		gateway:     gateway,
		coordinator: coordinator,
		logger:      logger.With(slog.String("component", "ws-handler")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The event surface carries its own identity; origin policy
			// is enforced upstream
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and runs its read loop until the peer
// goes away
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := NewClient(conn)
	go client.writePump()

	h.readPump(r.Context(), client)
}

// readPump consumes inbound events until the connection drops, then tears
// down presence and lets the coordinator decide the fate of any match
func (h *Handler) readPump(ctx context.Context, c *Client) {
	// The request context dies with the connection; teardown still has to
	// archive results
	teardownCtx := context.WithoutCancel(ctx)
	defer func() {
		playerID, had := h.gateway.Unregister(c)
		c.closeSend()
		if had {
			h.coordinator.PlayerDisconnected(teardownCtx, playerID)
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", slog.Any("error", err))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			h.gateway.send(c, model.EventError, model.ErrorPayload{Message: "malformed event"})
			continue
		}

		h.dispatch(ctx, c, env)
	}
}

// dispatch routes one inbound event. Request failures go back to the
// offending connection as error events; nothing here is fatal to the
// connection itself.
func (h *Handler) dispatch(ctx context.Context, c *Client, env Envelope) {
	switch env.Event {
	case model.EventRegister:
		var payload model.RegisterPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil || payload.PlayerID == "" {
			h.gateway.send(c, model.EventError, model.ErrorPayload{Message: "invalid register payload"})
			return
		}
		h.gateway.Register(payload.PlayerID, c)

	case model.EventJoinQueue:
		var payload model.JoinQueuePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.gateway.send(c, model.EventError, model.ErrorPayload{Message: "Invalid request data."})
			return
		}
		if err := h.coordinator.JoinQueue(ctx, payload); err != nil {
			h.gateway.send(c, model.EventError, model.ErrorPayload{Message: "Invalid request data."})
		}

	case model.EventLeaveQueue:
		var payload model.LeaveQueuePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.gateway.send(c, model.EventError, model.ErrorPayload{Message: "invalid leaveQueue payload"})
			return
		}
		h.coordinator.LeaveQueue(ctx, payload.PlayerID)

	case model.EventGetDice:
		var payload model.GetDicePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.gateway.send(c, model.EventError, model.ErrorPayload{Message: "invalid getDice payload"})
			return
		}
		reply := h.coordinator.GetDice(ctx, payload.RoomID, payload.PlayerID)
		h.gateway.send(c, model.EventDiceResult, reply)

	case model.EventSelectDice:
		var payload model.SelectDicePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.gateway.send(c, model.EventError, model.ErrorPayload{Message: "invalid selectDice payload"})
			return
		}
		if err := h.coordinator.SelectDice(ctx, payload); err != nil {
			h.gateway.send(c, model.EventError, model.ErrorPayload{Message: err.Error()})
		}

	default:
		h.gateway.send(c, model.EventError, model.ErrorPayload{Message: "unknown event: " + string(env.Event)})
	}
}
