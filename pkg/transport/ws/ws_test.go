package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"framelink/pkg/bridge"
	"framelink/pkg/config"
)

type hostStub struct {
	upgrader websocket.Upgrader

	mu       sync.Mutex
	received []string
	conn     *websocket.Conn
	ready    chan struct{}
}

func newHostStub() *hostStub {
	return &hostStub{ready: make(chan struct{})}
}

func (h *hostStub) handler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.conn = conn
	h.mu.Unlock()
	close(h.ready)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.mu.Lock()
		h.received = append(h.received, string(data))
		h.mu.Unlock()
	}
}

func (h *hostStub) push(t *testing.T, messageType int, payload string) {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.conn.WriteMessage(messageType, []byte(payload)); err != nil {
		t.Fatalf("host write: %v", err)
	}
}

func (h *hostStub) payloads() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.received))
	copy(out, h.received)
	return out
}

func newTestHost(t *testing.T) (*hostStub, string) {
	t.Helper()
	host := newHostStub()
	server := httptest.NewServer(http.HandlerFunc(host.handler))
	t.Cleanup(server.Close)
	return host, "ws" + strings.TrimPrefix(server.URL, "http")
}

func runAdapter(t *testing.T, adapter *Adapter, host *hostStub) context.CancelFunc {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- adapter.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-runErr:
		case <-time.After(2 * time.Second):
			t.Error("adapter did not stop after cancel")
		}
	})

	select {
	case <-host.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("adapter never connected")
	}

	return cancel
}

func startAdapter(t *testing.T) (*Adapter, *hostStub, context.CancelFunc) {
	t.Helper()

	host, url := newTestHost(t)
	adapter, err := NewAdapter(config.TransportConfig{URL: url}, nil)
	if err != nil {
		t.Fatalf("NewAdapter error: %v", err)
	}
	cancel := runAdapter(t, adapter, host)
	return adapter, host, cancel
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func TestNewAdapterRequiresURL(t *testing.T) {
	if _, err := NewAdapter(config.TransportConfig{}, nil); err == nil {
		t.Fatal("expected error for missing url")
	}
}

func TestTextFramesReachHookAsStrings(t *testing.T) {
	adapter, host, _ := startAdapter(t)

	var mu sync.Mutex
	var got []any
	adapter.OnMessage(func(raw any) {
		mu.Lock()
		got = append(got, raw)
		mu.Unlock()
	})

	host.push(t, websocket.TextMessage, `{"event":"appContext"}`)

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	if text, ok := got[0].(string); !ok || text != `{"event":"appContext"}` {
		t.Fatalf("hook received %#v, want raw text frame", got[0])
	}
}

func TestBinaryFramesIgnored(t *testing.T) {
	adapter, host, _ := startAdapter(t)

	var mu sync.Mutex
	var got []any
	adapter.OnMessage(func(raw any) {
		mu.Lock()
		got = append(got, raw)
		mu.Unlock()
	})

	host.push(t, websocket.BinaryMessage, "ignored")
	host.push(t, websocket.TextMessage, "kept")

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	if got[0] != "kept" {
		t.Fatalf("hook received %#v, want only the text frame", got)
	}
}

func TestSendWritesTextFrame(t *testing.T) {
	adapter, host, _ := startAdapter(t)

	if err := adapter.Send("dashboard-app:fetch-info"); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	waitFor(t, func() bool { return len(host.payloads()) == 1 })

	if got := host.payloads()[0]; got != "dashboard-app:fetch-info" {
		t.Fatalf("host received %q", got)
	}
}

func TestSendBeforeConnectQueuesUntilRun(t *testing.T) {
	host, url := newTestHost(t)
	adapter, err := NewAdapter(config.TransportConfig{URL: url}, nil)
	if err != nil {
		t.Fatalf("NewAdapter error: %v", err)
	}

	if err := adapter.Send("queued-1"); err != nil {
		t.Fatalf("Send before connect: %v", err)
	}
	if err := adapter.Send("queued-2"); err != nil {
		t.Fatalf("Send before connect: %v", err)
	}

	runAdapter(t, adapter, host)

	waitFor(t, func() bool { return len(host.payloads()) == 2 })

	if got := host.payloads(); got[0] != "queued-1" || got[1] != "queued-2" {
		t.Fatalf("host received %v, want queued payloads in send order", got)
	}
}

// Both commands call Init before the adapter dials; the fetch signal issued
// there must still reach the host once the connection is up.
func TestInitFetchSignalReachesHostWhenInitPrecedesRun(t *testing.T) {
	host, url := newTestHost(t)
	adapter, err := NewAdapter(config.TransportConfig{URL: url}, nil)
	if err != nil {
		t.Fatalf("NewAdapter error: %v", err)
	}

	ctrl, err := bridge.NewController(config.BridgeConfig{}, adapter, nil)
	if err != nil {
		t.Fatalf("NewController error: %v", err)
	}
	ctrl.Init()

	runAdapter(t, adapter, host)

	waitFor(t, func() bool { return len(host.payloads()) == 1 })

	if got := host.payloads()[0]; got != bridge.FetchSignal {
		t.Fatalf("host received %q, want %q", got, bridge.FetchSignal)
	}
}
