package components

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/lumebar/internal/core"
	"github.com/artpar/lumebar/internal/icons"
)

// TabStrip renders the collection tabs. At most one tab is pressed at a
// time; pressing the active tab again releases it, leaving no tab active.
// The strip itself is a plain renderer, the bar view owns the key handling.
type TabStrip struct {
	width       int
	collections []*core.Collection
	active      string
	glyphs      icons.Resolver

	tabStyle    lipgloss.Style
	activeStyle lipgloss.Style
	countStyle  lipgloss.Style
}

// NewTabStrip creates an empty strip.
func NewTabStrip(glyphs icons.Resolver) *TabStrip {
	return &TabStrip{
		glyphs:      glyphs,
		tabStyle:    lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("250")),
		activeStyle: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("238")),
		countStyle:  lipgloss.NewStyle().Foreground(core.DimColor),
	}
}

// SetCollections replaces the tab set. An active tab whose collection no
// longer exists is released.
func (t *TabStrip) SetCollections(collections []*core.Collection) {
	t.collections = collections
	if t.active != "" && t.find(t.active) == nil {
		t.active = ""
	}
}

// SetActive presses the named tab. An empty name releases all tabs.
func (t *TabStrip) SetActive(name string) {
	t.active = name
}

// Active returns the pressed tab's collection name, or "".
func (t *TabStrip) Active() string {
	return t.active
}

// ByIndex returns the collection at a zero-based tab position, or nil.
func (t *TabStrip) ByIndex(i int) *core.Collection {
	if i < 0 || i >= len(t.collections) {
		return nil
	}
	return t.collections[i]
}

// Len returns the number of tabs.
func (t *TabStrip) Len() int {
	return len(t.collections)
}

func (t *TabStrip) find(name string) *core.Collection {
	for _, c := range t.collections {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Next returns the collection after the active one, wrapping around. With no
// active tab it returns the first.
func (t *TabStrip) Next() *core.Collection {
	return t.step(1)
}

// Prev returns the collection before the active one, wrapping around.
func (t *TabStrip) Prev() *core.Collection {
	return t.step(-1)
}

func (t *TabStrip) step(delta int) *core.Collection {
	if len(t.collections) == 0 {
		return nil
	}
	if t.active == "" {
		if delta > 0 {
			return t.collections[0]
		}
		return t.collections[len(t.collections)-1]
	}
	for i, c := range t.collections {
		if c.Name == t.active {
			next := (i + delta + len(t.collections)) % len(t.collections)
			return t.collections[next]
		}
	}
	return t.collections[0]
}

// SetWidth sets the render width.
func (t *TabStrip) SetWidth(width int) {
	t.width = width
}

// View renders the strip as one line.
func (t *TabStrip) View() string {
	if len(t.collections) == 0 {
		return t.countStyle.Render(" no collections ")
	}
	cells := make([]string, 0, len(t.collections))
	for i, c := range t.collections {
		label := fmt.Sprintf("%d:%s", i+1, c.Name)
		if c.Icon != "" {
			if glyph, err := t.glyphs.Resolve(context.Background(), c.Icon); err == nil {
				label = glyph + " " + label
			}
		}
		if n := len(c.Items); n > 0 {
			label += " " + t.countStyle.Render(fmt.Sprintf("(%d)", n))
		}
		style := t.tabStyle
		if c.Name == t.active {
			style = t.activeStyle
		}
		cells = append(cells, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
