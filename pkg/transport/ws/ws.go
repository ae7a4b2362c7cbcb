// Package ws connects the bridge to a host over a WebSocket: each text
// frame is one raw inbound message, each Send is one outbound broadcast.
package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"framelink/pkg/config"
)

const transportName = "websocket"

// Adapter implements bridge.Transport over one WebSocket connection.
// There is no reconnect: a dropped connection ends Run.
type Adapter struct {
	cfg config.TransportConfig
	log *slog.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	handler func(raw any)
	pending []string

	writeMu sync.Mutex
}

// NewAdapter validates transport configuration and constructs an adapter
// instance.
func NewAdapter(cfg config.TransportConfig, log *slog.Logger) (*Adapter, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("transport.url is required")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Adapter{
		cfg: cfg,
		log: log.With("component", "transport.ws"),
	}, nil
}

// Name returns the transport identifier used in logs.
func (a *Adapter) Name() string {
	return transportName
}

// OnMessage registers the hook invoked once per inbound text frame.
func (a *Adapter) OnMessage(fn func(raw any)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = fn
}

// Send writes one outbound text frame. The host side is a wildcard
// broadcast; no recipient restriction is applied here. Payloads sent before
// the dial completes are queued and flushed in order once connected, so the
// controller's init-time fetch signal survives being issued ahead of Run.
func (a *Adapter) Send(payload string) error {
	a.mu.Lock()
	conn := a.conn
	if conn == nil {
		a.pending = append(a.pending, payload)
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	return a.write(conn, payload)
}

func (a *Adapter) write(conn *websocket.Conn, payload string) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, []byte(payload))
}

// Run dials the host and forwards inbound frames until the context is
// cancelled or the connection drops.
func (a *Adapter) Run(ctx context.Context) error {
	header := http.Header{}
	if origin := strings.TrimSpace(a.cfg.Origin); origin != "" {
		header.Set("Origin", origin)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, strings.TrimSpace(a.cfg.URL), header)
	if err != nil {
		return fmt.Errorf("dial host: %w", err)
	}

	a.mu.Lock()
	a.conn = conn
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	for _, payload := range pending {
		if err := a.write(conn, payload); err != nil {
			_ = conn.Close()
			return fmt.Errorf("flush queued payload: %w", err)
		}
	}

	// Closing the connection is the only way to unblock ReadMessage.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	a.log.Info("Host transport connected", "url", a.cfg.URL)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read host message: %w", err)
		}

		if messageType != websocket.TextMessage {
			a.log.Debug("Ignoring non-text frame", "type", messageType)
			continue
		}

		a.mu.Lock()
		handler := a.handler
		a.mu.Unlock()
		if handler == nil {
			a.log.Debug("Dropping frame received before hook registration")
			continue
		}

		handler(string(data))
	}
}
