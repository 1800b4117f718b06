// Package state persists the bar's UI state across reloads: whether the
// bar is closed, which collection tab is active, and which item was last
// toggled open.
package state

import "errors"

// Namespace scopes all persisted keys. It matches the original widget's
// storage key so state written by one deployment style is recognizable.
const Namespace = "lume-bar"

// The complete persisted key set. Typed accessors on BarState are the only
// intended way to touch them; the constants exist for the store backends.
const (
	KeyClosed           = "closed"
	KeyActiveCollection = "active_collection"
	KeyOpenItem         = "open_item"
)

// ErrStoreClosed is returned by store operations after Close.
var ErrStoreClosed = errors.New("state store is closed")

// Store is the minimal persisted key-value contract. Backing choice (file,
// SQLite, in-memory) is a deployment decision; all access is serialized by
// the UI event loop, so implementations only need to be safe for the odd
// background read.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
	Close() error
}

// BarState wraps a Store with the fixed key set, so callers cannot typo a
// key and tests can substitute an in-memory fake.
type BarState struct {
	store Store
}

// New creates a typed view over a store.
func New(store Store) *BarState {
	return &BarState{store: store}
}

// Closed reports whether the bar was last persisted closed. Never-set
// defaults to open.
func (b *BarState) Closed() bool {
	v, ok := b.store.Get(KeyClosed)
	return ok && v == "true"
}

// SetClosed persists the open/closed machine state. Open is represented by
// key absence, mirroring the original widget.
func (b *BarState) SetClosed(closed bool) error {
	if closed {
		return b.store.Set(KeyClosed, "true")
	}
	return b.store.Remove(KeyClosed)
}

// ActiveCollection returns the persisted active tab name, if any.
func (b *BarState) ActiveCollection() (string, bool) {
	return b.store.Get(KeyActiveCollection)
}

// SetActiveCollection persists the active tab name.
func (b *BarState) SetActiveCollection(name string) error {
	return b.store.Set(KeyActiveCollection, name)
}

// ClearActiveCollection removes the active tab record.
func (b *BarState) ClearActiveCollection() error {
	return b.store.Remove(KeyActiveCollection)
}

// OpenItem returns the persisted open item id, if any. At most one id is
// stored: the most recently toggled-open node.
func (b *BarState) OpenItem() (string, bool) {
	return b.store.Get(KeyOpenItem)
}

// SetOpenItem persists the open item id.
func (b *BarState) SetOpenItem(id string) error {
	return b.store.Set(KeyOpenItem, id)
}

// ClearOpenItem removes the open item record.
func (b *BarState) ClearOpenItem() error {
	return b.store.Remove(KeyOpenItem)
}

// Reset clears all persisted UI state.
func (b *BarState) Reset() error {
	return b.store.Clear()
}
