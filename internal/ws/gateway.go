package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/hyeok-dev/dicearena/internal/model"
)

// Envelope is the wire framing for every event in both directions
type Envelope struct {
	Event model.EventType `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outbound mirrors Envelope with an unencoded payload
type outbound struct {
	Event model.EventType `json:"event"`
	Data  any             `json:"data,omitempty"`
}

// Gateway maps player identities to live connections and fans room-scoped
// events out to them. Delivery is best-effort and at-most-once per live
// connection: a slow client's full buffer drops the message rather than
// blocking the room.
type Gateway struct {
	logger *slog.Logger

	mu       sync.RWMutex
	byPlayer map[model.PlayerID]*Client
	players  map[*Client]model.PlayerID
	rooms    map[model.RoomID]map[*Client]bool
	roomOf   map[*Client]model.RoomID
}

// NewGateway creates an empty presence gateway
func NewGateway(logger *slog.Logger) *Gateway {
	return &Gateway{
		logger:   logger.With(slog.String("component", "ws-gateway")),
		byPlayer: make(map[model.PlayerID]*Client),
		players:  make(map[*Client]model.PlayerID),
		rooms:    make(map[model.RoomID]map[*Client]bool),
		roomOf:   make(map[*Client]model.RoomID),
	}
}

// Register binds a connection to a player identity. A prior connection for
// the same player is replaced and closed, which is what makes reconnects
// work: the new socket wins.
func (g *Gateway) Register(playerID model.PlayerID, c *Client) {
	g.mu.Lock()
	var stale *Client
	if prev, ok := g.byPlayer[playerID]; ok && prev != c {
		stale = prev
		g.detachLocked(prev)
	}
	g.byPlayer[playerID] = c
	g.players[c] = playerID
	g.mu.Unlock()

	if stale != nil {
		stale.closeSend()
	}

	g.logger.Info("player registered",
		slog.String("player_id", string(playerID)),
		slog.Bool("replaced", stale != nil))
}

// Unregister removes a connection from all maps and returns the player it
// was bound to, if any. The caller closes the send channel exactly once.
func (g *Gateway) Unregister(c *Client) (model.PlayerID, bool) {
	g.mu.Lock()
	playerID, had := g.players[c]
	if had {
		g.detachLocked(c)
	}
	g.mu.Unlock()

	if had {
		g.logger.Info("player unregistered", slog.String("player_id", string(playerID)))
	}
	return playerID, had
}

// detachLocked removes a client from every index. Caller holds g.mu.
func (g *Gateway) detachLocked(c *Client) {
	if playerID, ok := g.players[c]; ok {
		if g.byPlayer[playerID] == c {
			delete(g.byPlayer, playerID)
		}
		delete(g.players, c)
	}
	if roomID, ok := g.roomOf[c]; ok {
		delete(g.roomOf, c)
		if members, ok := g.rooms[roomID]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(g.rooms, roomID)
			}
		}
	}
}

// JoinRoom subscribes a player's live connection to a room. A player with
// no live connection is skipped; they may register and rejoin later.
func (g *Gateway) JoinRoom(playerID model.PlayerID, roomID model.RoomID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.byPlayer[playerID]
	if !ok {
		return
	}

	// Leaving any previous room keeps one room per connection
	if prev, ok := g.roomOf[c]; ok && prev != roomID {
		if members, ok := g.rooms[prev]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(g.rooms, prev)
			}
		}
	}

	if g.rooms[roomID] == nil {
		g.rooms[roomID] = make(map[*Client]bool)
	}
	g.rooms[roomID][c] = true
	g.roomOf[c] = roomID
}

// Broadcast sends an event to every connection currently joined to a room
func (g *Gateway) Broadcast(roomID model.RoomID, event model.EventType, payload any) {
	message, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		g.logger.Error("failed to encode broadcast",
			slog.String("event", string(event)),
			slog.Any("error", err))
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	dropped := 0
	for c := range g.rooms[roomID] {
		select {
		case c.send <- message:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		g.logger.Warn("broadcast dropped for slow clients",
			slog.String("room_id", string(roomID)),
			slog.String("event", string(event)),
			slog.Int("dropped", dropped))
	}
}

// SendToPlayer delivers an event to one player's connection, reporting
// whether a live connection existed
func (g *Gateway) SendToPlayer(playerID model.PlayerID, event model.EventType, payload any) bool {
	g.mu.RLock()
	c, ok := g.byPlayer[playerID]
	g.mu.RUnlock()
	if !ok {
		return false
	}
	return g.send(c, event, payload)
}

// send delivers an event to a single connection, best-effort
func (g *Gateway) send(c *Client, event model.EventType, payload any) bool {
	message, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		g.logger.Error("failed to encode event",
			slog.String("event", string(event)),
			slog.Any("error", err))
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		g.logger.Warn("event dropped - client buffer full",
			slog.String("event", string(event)))
		return false
	}
}

// LiveInRoom returns how many connections are currently joined to a room
func (g *Gateway) LiveInRoom(roomID model.RoomID) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms[roomID])
}

// PlayerOf returns the identity bound to a connection, if any
func (g *Gateway) PlayerOf(c *Client) (model.PlayerID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	playerID, ok := g.players[c]
	return playerID, ok
}
