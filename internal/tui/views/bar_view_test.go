package views

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/lumebar/internal/action"
	"github.com/artpar/lumebar/internal/core"
	"github.com/artpar/lumebar/internal/state"
)

type nullSender struct{}

func (nullSender) Send(context.Context, action.Message) error { return nil }
func (nullSender) Close() error                               { return nil }

func testDocument() *core.Document {
	return &core.Document{
		Collections: []*core.Collection{
			{
				Name: "Errors",
				Items: []*core.Item{
					{
						Title: "Templates",
						Items: []*core.Item{{Title: "layout.vto", Text: "missing include"}},
					},
				},
			},
			{Name: "Warnings", Empty: "No warnings!"},
		},
	}
}

func newTestBar(t *testing.T, bar *state.BarState) *BarView {
	t.Helper()
	v := NewBarView(bar, nil, nil, nullSender{})
	v.SetSize(100, 12)
	return v
}

func pressBar(v *BarView, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		v.Update(msg)
	}
}

func TestManualTabActivation(t *testing.T) {
	store := state.NewMemoryStore()
	bar := state.New(store)
	v := newTestBar(t, bar)
	v.ApplyDocument(testDocument())

	pressBar(v, "1")

	assert.Equal(t, "Errors", v.ActiveTab())
	name, ok := bar.ActiveCollection()
	require.True(t, ok)
	assert.Equal(t, "Errors", name)
}

func TestPressingActiveTabReleasesIt(t *testing.T) {
	bar := state.New(state.NewMemoryStore())
	v := newTestBar(t, bar)
	v.ApplyDocument(testDocument())

	pressBar(v, "1", "1")

	assert.Equal(t, "", v.ActiveTab())
	_, ok := bar.ActiveCollection()
	assert.False(t, ok)
	assert.Nil(t, v.Detail().Collection())
}

func TestManualTabClickClearsOpenItem(t *testing.T) {
	bar := state.New(state.NewMemoryStore())
	v := newTestBar(t, bar)
	v.ApplyDocument(testDocument())

	pressBar(v, "1", "enter")
	_, ok := bar.OpenItem()
	require.True(t, ok)

	// Switching tabs by hand drops the remembered open item.
	pressBar(v, "2")
	_, ok = bar.OpenItem()
	assert.False(t, ok)
	assert.Equal(t, "Warnings", v.ActiveTab())
}

func TestReplayRestoresTabAndOpenItem(t *testing.T) {
	store := state.NewMemoryStore()
	bar := state.New(store)
	v := newTestBar(t, bar)
	doc := testDocument()
	v.ApplyDocument(doc)

	// Open the nested item, then simulate a reload with fresh state built
	// over the same persisted store.
	pressBar(v, "1", "enter", "j", "enter")
	openID, ok := bar.OpenItem()
	require.True(t, ok)

	v2 := newTestBar(t, state.New(store))
	v2.ApplyDocument(testDocument())

	assert.Equal(t, "Errors", v2.ActiveTab())
	detail := v2.Detail()
	rows := detail.Rows()
	require.Greater(t, len(rows), detail.Cursor())
	assert.Equal(t, openID, rows[detail.Cursor()].Item.ID)
	assert.True(t, detail.Expanded(openID))
}

func TestClosedStatePersists(t *testing.T) {
	store := state.NewMemoryStore()
	bar := state.New(store)
	v := newTestBar(t, bar)

	pressBar(v, "t")
	assert.True(t, v.Closed())

	v2 := newTestBar(t, state.New(store))
	assert.True(t, v2.Closed())

	pressBar(v2, "t")
	assert.False(t, v2.Closed())
	v3 := newTestBar(t, state.New(store))
	assert.False(t, v3.Closed())
}

func TestClosedBarIgnoresNavigation(t *testing.T) {
	bar := state.New(state.NewMemoryStore())
	v := newTestBar(t, bar)
	v.ApplyDocument(testDocument())

	pressBar(v, "t", "1")
	assert.Equal(t, "", v.ActiveTab())
}

func TestStaleActiveCollectionIsDropped(t *testing.T) {
	bar := state.New(state.NewMemoryStore())
	require.NoError(t, bar.SetActiveCollection("Removed"))
	v := newTestBar(t, bar)

	v.ApplyDocument(testDocument())

	assert.Equal(t, "", v.ActiveTab())
	assert.Nil(t, v.Detail().Collection())
}

func TestEmptyCollectionShowsPlaceholder(t *testing.T) {
	bar := state.New(state.NewMemoryStore())
	v := newTestBar(t, bar)
	v.ApplyDocument(testDocument())

	pressBar(v, "2")
	assert.Contains(t, v.View(), "No warnings!")
}

func TestEmptyDocumentRendersNoTabs(t *testing.T) {
	bar := state.New(state.NewMemoryStore())
	v := newTestBar(t, bar)

	v.ApplyDocument(&core.Document{})
	assert.Contains(t, v.View(), "no collections")

	v.ApplyDocument(nil)
	assert.Contains(t, v.View(), "no collections")
}

func TestTabCycling(t *testing.T) {
	bar := state.New(state.NewMemoryStore())
	v := newTestBar(t, bar)
	v.ApplyDocument(testDocument())

	pressBar(v, "tab")
	assert.Equal(t, "Errors", v.ActiveTab())
	pressBar(v, "tab")
	assert.Equal(t, "Warnings", v.ActiveTab())
}
