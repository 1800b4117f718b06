// Package action delivers activated item actions to the outbound channel.
package action

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/artpar/lumebar/internal/core"
)

// Message is the shape delivered to the external transport when a data
// action is activated.
type Message struct {
	ID   string         `json:"id"`
	Item *core.Item     `json:"item"`
	Data map[string]any `json:"data"`
}

// Sender is the external transport. The surrounding app wires this to a
// live socket; the core only defines the message shape.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// Dispatcher enforces the at-most-one-pending-activation rule: each action
// fires once per render generation and stays pending until a fresh render
// resets the dispatcher.
type Dispatcher struct {
	mu      sync.Mutex
	sender  Sender
	pending map[string]bool
}

// NewDispatcher creates a dispatcher over a sender.
func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		pending: make(map[string]bool),
	}
}

// Dispatch sends {item, data} for the action identified by key. It returns
// true if a message was sent, false if the action was already pending.
func (d *Dispatcher) Dispatch(ctx context.Context, key string, item *core.Item, data map[string]any) (bool, error) {
	d.mu.Lock()
	if d.pending[key] {
		d.mu.Unlock()
		return false, nil
	}
	d.pending[key] = true
	d.mu.Unlock()

	msg := Message{
		ID:   uuid.New().String(),
		Item: item,
		Data: data,
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		// Delivery failed, but the action stays pending: re-activation
		// before the next render must not produce a second send.
		return false, err
	}
	return true, nil
}

// Pending reports whether the action identified by key awaits a re-render.
func (d *Dispatcher) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending[key]
}

// Reset clears all pending marks. Called when a fresh render replaces the
// previous one.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = make(map[string]bool)
}
