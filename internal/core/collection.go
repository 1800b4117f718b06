package core

import (
	"fmt"
	"strconv"
)

// Document is the top-level data structure supplied by the host.
// A document with no collections is valid and renders nothing.
type Document struct {
	Collections []*Collection `json:"collections,omitempty" yaml:"collections,omitempty"`
}

// Collection represents one tab of the bar: a named, ordered list of items.
// Name doubles as the persistence key for the active tab, so it must be
// stable across reloads of the same logical tab.
type Collection struct {
	Name     string                 `json:"name" yaml:"name"`
	Icon     string                 `json:"icon,omitempty" yaml:"icon,omitempty"`
	Contexts map[string]ItemContext `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	Empty    string                 `json:"empty,omitempty" yaml:"empty,omitempty"`
	Items    []*Item                `json:"items,omitempty" yaml:"items,omitempty"`
}

// ItemContext is a named visual classification shared by items within one
// collection. Background and Color accept the palette keywords or any
// literal color value.
type ItemContext struct {
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	Color      string `json:"color,omitempty" yaml:"color,omitempty"`
	Icon       string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// ItemKind discriminates leaf items from expandable ones. It is computed
// once during the id-assignment pass so renderers switch on an explicit
// tag instead of re-deriving it from optional fields.
type ItemKind int

const (
	KindLeaf ItemKind = iota
	KindExpandable
)

// Item is a node in the recursive content tree.
type Item struct {
	Title   string    `json:"title" yaml:"title"`
	ID      string    `json:"id,omitempty" yaml:"id,omitempty"`
	Context string    `json:"context,omitempty" yaml:"context,omitempty"`
	Details any       `json:"details,omitempty" yaml:"details,omitempty"`
	Text    string    `json:"text,omitempty" yaml:"text,omitempty"`
	Code    string    `json:"code,omitempty" yaml:"code,omitempty"`
	Items   []*Item   `json:"items,omitempty" yaml:"items,omitempty"`
	Actions []*Action `json:"actions,omitempty" yaml:"actions,omitempty"`

	// Kind is derived during AssignIDs, not part of the wire format.
	Kind ItemKind `json:"-" yaml:"-"`
}

// Action is either a navigable link (Href set) or a local button. A button
// with Data and no OnClick delivers {item, data} to the outbound channel
// exactly once per activation.
type Action struct {
	Text    string         `json:"text" yaml:"text"`
	Href    string         `json:"href,omitempty" yaml:"href,omitempty"`
	OnClick string         `json:"onclick,omitempty" yaml:"onclick,omitempty"`
	Icon    string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Target  string         `json:"target,omitempty" yaml:"target,omitempty"`
	Data    map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// DetailsText renders the details field, which the wire format allows to be
// a string or a number, as display text.
func (i *Item) DetailsText() string {
	switch v := i.Details.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Expandable reports whether the item gets a disclosure container.
func (i *Item) Expandable() bool {
	return i.Kind == KindExpandable
}

// ResolveContext looks up an item's context in the owning collection.
// A missing or unresolvable key is not an error; callers omit the badge.
func (c *Collection) ResolveContext(key string) (ItemContext, bool) {
	if key == "" || c.Contexts == nil {
		return ItemContext{}, false
	}
	ctx, ok := c.Contexts[key]
	return ctx, ok
}

// Walk visits every item of the collection in document order.
func (c *Collection) Walk(fn func(item *Item)) {
	var walk func(items []*Item)
	walk = func(items []*Item) {
		for _, it := range items {
			fn(it)
			walk(it.Items)
		}
	}
	walk(c.Items)
}
