package action

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/artpar/lumebar/internal/logging"
)

// WebSocketSender delivers action messages over a WebSocket endpoint. The
// connection is dialed lazily on first send and reused afterwards.
type WebSocketSender struct {
	endpoint string
	dialer   *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebSocketSender creates a sender for the given ws:// or wss:// endpoint.
func NewWebSocketSender(endpoint string) *WebSocketSender {
	return &WebSocketSender{
		endpoint: endpoint,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// Send writes the message as JSON. A broken connection is dropped so the
// next send redials.
func (s *WebSocketSender) Send(ctx context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		conn, _, err := s.dialer.DialContext(ctx, s.endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to dial action channel %s: %w", s.endpoint, err)
		}
		s.conn = conn
	}

	s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.conn.Close()
		s.conn = nil
		return fmt.Errorf("failed to send action message: %w", err)
	}
	return nil
}

// Close closes the connection if one is open.
func (s *WebSocketSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// LogSender writes action messages to the diagnostic log. It is the default
// transport when no action channel endpoint is configured, keeping the bar
// usable without a backend.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	title := ""
	if msg.Item != nil {
		title = msg.Item.Title
	}
	logging.Infof("action %s from %q: %v", msg.ID, title, msg.Data)
	return nil
}

func (LogSender) Close() error { return nil }
