package transport

import (
	"context"

	"framelink/pkg/bridge"
)

// Adapter is one concrete host connection (for example WebSocket) driving
// the bridge controller. Run blocks until the context is cancelled or the
// connection fails.
type Adapter interface {
	bridge.Transport
	Name() string
	Run(ctx context.Context) error
}
