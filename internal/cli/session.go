package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
)

// Envelope is the websocket wire format
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// wsSession wraps a websocket connection to the session gateway
type wsSession struct {
	conn *websocket.Conn
}

// dialSession connects to the gateway and registers the player identity
func dialSession(playerID string) (*wsSession, error) {
	wsURL, err := cfg.WebsocketURL()
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "connecting to %s\n", wsURL)
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connection failed: %w (HTTP %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	s := &wsSession{conn: conn}
	if err := s.Send("register", map[string]string{"playerId": playerID}); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Send writes one event envelope to the gateway
func (s *wsSession) Send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	if err := s.conn.WriteJSON(Envelope{Event: event, Data: payload}); err != nil {
		return fmt.Errorf("failed to send %s: %w", event, err)
	}
	return nil
}

// Next reads the next event envelope from the gateway
func (s *wsSession) Next() (Envelope, error) {
	var env Envelope
	if err := s.conn.ReadJSON(&env); err != nil {
		return Envelope{}, fmt.Errorf("connection lost: %w", err)
	}
	return env, nil
}

// Close shuts the connection down
func (s *wsSession) Close() {
	_ = s.conn.Close()
}

// interruptContext returns a context cancelled by SIGINT or SIGTERM
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// closeOnDone closes the session when the context is cancelled, unblocking
// any pending read
func closeOnDone(ctx context.Context, s *wsSession) {
	go func() {
		<-ctx.Done()
		s.Close()
	}()
}
