package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/lumebar/internal/core"
	"github.com/artpar/lumebar/internal/icons"
)

func newStrip(names ...string) *TabStrip {
	strip := NewTabStrip(icons.NewGlyphs())
	collections := make([]*core.Collection, len(names))
	for i, name := range names {
		collections[i] = &core.Collection{Name: name}
	}
	strip.SetCollections(collections)
	return strip
}

func TestTabStripExclusiveActive(t *testing.T) {
	strip := newStrip("Errors", "Warnings")

	strip.SetActive("Errors")
	assert.Equal(t, "Errors", strip.Active())

	strip.SetActive("Warnings")
	assert.Equal(t, "Warnings", strip.Active())

	strip.SetActive("")
	assert.Equal(t, "", strip.Active())
}

func TestTabStripActiveDroppedWhenCollectionGone(t *testing.T) {
	strip := newStrip("Errors", "Warnings")
	strip.SetActive("Errors")

	strip.SetCollections([]*core.Collection{{Name: "Warnings"}})
	assert.Equal(t, "", strip.Active())
}

func TestTabStripByIndex(t *testing.T) {
	strip := newStrip("a", "b")
	require.NotNil(t, strip.ByIndex(1))
	assert.Equal(t, "b", strip.ByIndex(1).Name)
	assert.Nil(t, strip.ByIndex(2))
	assert.Nil(t, strip.ByIndex(-1))
}

func TestTabStripCycling(t *testing.T) {
	strip := newStrip("a", "b", "c")

	assert.Equal(t, "a", strip.Next().Name)
	assert.Equal(t, "c", strip.Prev().Name)

	strip.SetActive("c")
	assert.Equal(t, "a", strip.Next().Name)
	assert.Equal(t, "b", strip.Prev().Name)
}

func TestTabStripViewShowsCounts(t *testing.T) {
	strip := NewTabStrip(icons.NewGlyphs())
	strip.SetCollections([]*core.Collection{
		{Name: "Errors", Items: []*core.Item{{Title: "one"}, {Title: "two"}}},
		{Name: "Empty"},
	})
	strip.SetWidth(80)

	view := strip.View()
	assert.Contains(t, view, "1:Errors")
	assert.Contains(t, view, "(2)")
	assert.Contains(t, view, "2:Empty")
	assert.NotContains(t, view, "(0)")
}

func TestTabStripEmpty(t *testing.T) {
	strip := NewTabStrip(icons.NewGlyphs())
	assert.Contains(t, strip.View(), "no collections")
	assert.Nil(t, strip.Next())
}
