package components

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/lumebar/internal/action"
	"github.com/artpar/lumebar/internal/core"
	"github.com/artpar/lumebar/internal/icons"
	"github.com/artpar/lumebar/internal/script"
	"github.com/artpar/lumebar/internal/state"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []action.Message
}

func (r *recordingSender) Send(_ context.Context, msg action.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordingSender) Close() error { return nil }

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func newTestPane(t *testing.T) (*DetailPane, *state.BarState, *recordingSender) {
	t.Helper()
	bar := state.New(state.NewMemoryStore())
	sender := &recordingSender{}
	pane := NewDetailPane(
		bar,
		action.NewDispatcher(sender),
		script.NewEngine(nil),
		icons.NewGlyphs(),
	)
	pane.SetSize(80, 10)
	pane.Focus()
	return pane, bar, sender
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(pane *DetailPane, keys ...string) {
	for _, k := range keys {
		pane.Update(keyMsg(k))
	}
}

func TestToggleExpandPersistsOpenItem(t *testing.T) {
	pane, bar, _ := newTestPane(t)
	c := buildCollection(t)
	pane.SetCollection(c)
	templates := itemByTitle(t, c, "Templates")

	press(pane, "enter")

	assert.True(t, pane.Expanded(templates.ID))
	id, ok := bar.OpenItem()
	require.True(t, ok)
	assert.Equal(t, templates.ID, id)

	// Collapsing the recorded item removes the record.
	press(pane, "enter")
	assert.False(t, pane.Expanded(templates.ID))
	_, ok = bar.OpenItem()
	assert.False(t, ok)
}

func TestLeafItemDoesNotToggle(t *testing.T) {
	pane, bar, _ := newTestPane(t)
	c := buildCollection(t)
	pane.SetCollection(c)

	press(pane, "j", "enter")

	_, ok := bar.OpenItem()
	assert.False(t, ok)
	assert.Len(t, pane.Rows(), 2)
}

func TestRestoreOpensAncestorChain(t *testing.T) {
	pane, bar, _ := newTestPane(t)
	c := buildCollection(t)
	templates := itemByTitle(t, c, "Templates")
	layout := itemByTitle(t, c, "layout.vto")
	require.NoError(t, bar.SetOpenItem(layout.ID))

	pane.SetCollection(c)
	pane.Restore()

	assert.True(t, pane.Expanded(templates.ID))
	assert.True(t, pane.Expanded(layout.ID))
	// Cursor lands on the restored item.
	rows := pane.Rows()
	require.Greater(t, len(rows), pane.Cursor())
	assert.Equal(t, layout.ID, rows[pane.Cursor()].Item.ID)
}

func TestRestoreStaleIDIsSilent(t *testing.T) {
	pane, bar, _ := newTestPane(t)
	c := buildCollection(t)
	require.NoError(t, bar.SetOpenItem("id_gone"))

	pane.SetCollection(c)
	pane.Restore()

	assert.Equal(t, 0, pane.Cursor())
	for _, row := range pane.Rows() {
		if row.Kind == RowItem {
			assert.False(t, row.Expanded)
		}
	}
}

func TestDataActionDispatchesOnce(t *testing.T) {
	pane, _, sender := newTestPane(t)
	c := buildCollection(t)
	pane.SetCollection(c)
	templates := itemByTitle(t, c, "Templates")
	layout := itemByTitle(t, c, "layout.vto")

	// Open Templates and layout.vto, then move onto the action row.
	press(pane, "enter")
	press(pane, "j", "enter")
	require.True(t, pane.Expanded(layout.ID))
	_ = templates

	rows := pane.Rows()
	actionAt := -1
	for i, row := range rows {
		if row.Kind == RowAction {
			actionAt = i
		}
	}
	require.GreaterOrEqual(t, actionAt, 0)
	for pane.Cursor() < actionAt {
		press(pane, "j")
	}

	press(pane, "enter")
	assert.Equal(t, 1, sender.count())
	msg := sender.messages[0]
	assert.Equal(t, "layout.vto", msg.Item.Title)
	assert.Equal(t, map[string]any{"action": "fix"}, msg.Data)

	// Re-activation before a fresh render is swallowed.
	press(pane, "enter")
	assert.Equal(t, 1, sender.count())

	// A new render generation re-arms the action.
	pane.SetCollection(c)
	pane.Restore()
	for pane.Cursor() < actionAt {
		press(pane, "j")
	}
	press(pane, "enter")
	assert.Equal(t, 2, sender.count())
}

func TestOnClickRunsScript(t *testing.T) {
	var level, message string
	bar := state.New(state.NewMemoryStore())
	sender := &recordingSender{}
	pane := NewDetailPane(
		bar,
		action.NewDispatcher(sender),
		script.NewEngine(func(l, m string) { level, message = l, m }),
		icons.NewGlyphs(),
	)
	pane.SetSize(80, 10)
	pane.Focus()

	c := &core.Collection{
		Name: "Tools",
		Items: []*core.Item{{
			Title:   "Build",
			Actions: []*core.Action{{Text: "Log", OnClick: `console.log("hello", item.title)`}},
		}},
	}
	core.AssignIDs(c.Items, nil)
	pane.SetCollection(c)

	press(pane, "j", "enter")

	assert.Equal(t, "log", level)
	assert.Equal(t, "hello Build", message)
	// Script actions do not touch the outbound channel.
	assert.Equal(t, 0, sender.count())
}

func TestSearchFiltersRows(t *testing.T) {
	pane, _, _ := newTestPane(t)
	c := buildCollection(t)
	pane.SetCollection(c)

	press(pane, "/", "S", "t", "a")
	rows := pane.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Standalone", rows[0].Item.Title)

	press(pane, "esc")
	assert.Len(t, pane.Rows(), 2)
	assert.False(t, pane.Searching())
}

func TestSetCollectionResetsView(t *testing.T) {
	pane, _, _ := newTestPane(t)
	c := buildCollection(t)
	pane.SetCollection(c)
	press(pane, "enter", "j")

	other := &core.Collection{Name: "Other", Items: []*core.Item{{Title: "only"}}}
	core.AssignIDs(other.Items, nil)
	pane.SetCollection(other)

	assert.Equal(t, 0, pane.Cursor())
	assert.Len(t, pane.Rows(), 1)
	assert.Equal(t, "only", pane.Rows()[0].Item.Title)
}

func TestClearEmptiesPane(t *testing.T) {
	pane, _, _ := newTestPane(t)
	pane.SetCollection(buildCollection(t))
	pane.Clear()

	assert.Nil(t, pane.Collection())
	assert.Empty(t, pane.Rows())
	assert.Equal(t, "", pane.View())
}
