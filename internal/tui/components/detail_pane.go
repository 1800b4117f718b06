package components

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/lumebar/internal/action"
	"github.com/artpar/lumebar/internal/core"
	"github.com/artpar/lumebar/internal/icons"
	"github.com/artpar/lumebar/internal/logging"
	"github.com/artpar/lumebar/internal/script"
	"github.com/artpar/lumebar/internal/state"
	"github.com/artpar/lumebar/internal/tui"
)

type contextBadge struct {
	text  string
	glyph string
	fg    lipgloss.Color
	bg    lipgloss.Color
}

// DetailPane renders the active collection's item tree with cursor
// navigation, disclosure toggling, action activation, and fuzzy filtering.
type DetailPane struct {
	width   int
	height  int
	focused bool

	bar        *state.BarState
	dispatcher *action.Dispatcher
	scripts    *script.Engine
	glyphs     icons.Resolver

	collection *core.Collection
	index      *core.Index
	badges     map[string]contextBadge

	expanded map[string]bool
	rows     []Row
	cursor   int
	offset   int

	searching bool
	search    string

	cursorStyle lipgloss.Style
	dimStyle    lipgloss.Style
	codeStyle   lipgloss.Style
	actionStyle lipgloss.Style
	emptyStyle  lipgloss.Style
}

// NewDetailPane creates the pane. The dispatcher and script engine may be
// shared with other components; the pane only drives them.
func NewDetailPane(bar *state.BarState, dispatcher *action.Dispatcher, scripts *script.Engine, glyphs icons.Resolver) *DetailPane {
	return &DetailPane{
		bar:        bar,
		dispatcher: dispatcher,
		scripts:    scripts,
		glyphs:     glyphs,
		expanded:   make(map[string]bool),

		cursorStyle: lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("237")),
		dimStyle:    lipgloss.NewStyle().Foreground(core.DimColor),
		codeStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(core.BackgroundColor),
		actionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		emptyStyle:  lipgloss.NewStyle().Foreground(core.DimColor).Italic(true),
	}
}

// SetCollection switches the pane to a collection and resets all transient
// view state. A fresh render supersedes any pending action activations.
func (d *DetailPane) SetCollection(c *core.Collection) {
	d.collection = c
	d.index = core.BuildIndex(c)
	d.expanded = make(map[string]bool)
	d.cursor = 0
	d.offset = 0
	d.search = ""
	d.searching = false
	d.dispatcher.Reset()
	d.buildBadges()
	d.rebuild()
}

// Restore replays the persisted open item: every container on the path from
// the root to the remembered node is forced open, and the cursor lands on
// the node itself. A stale id is a silent no-op.
func (d *DetailPane) Restore() {
	id, ok := d.bar.OpenItem()
	if !ok || d.index == nil {
		return
	}
	chain := d.index.OpenChain(id)
	if chain == nil {
		logging.Warnf("persisted open item %s not found, skipping restore", id)
		return
	}
	d.expanded = OpenAll(d.expanded, chain)
	d.rebuild()
	if i := RowIndexByID(d.rows, id); i >= 0 {
		d.cursor = i
		d.offset = AdjustOffset(d.cursor, d.offset, d.height)
	}
}

// Clear empties the pane.
func (d *DetailPane) Clear() {
	d.collection = nil
	d.index = nil
	d.rows = nil
	d.cursor = 0
	d.offset = 0
	d.search = ""
	d.searching = false
}

// Collection returns the collection currently shown, or nil.
func (d *DetailPane) Collection() *core.Collection {
	return d.collection
}

// Rows exposes the flattened rows, mainly for tests.
func (d *DetailPane) Rows() []Row {
	return d.rows
}

// Cursor returns the current cursor row index.
func (d *DetailPane) Cursor() int {
	return d.cursor
}

// Searching reports whether the pane is capturing filter input, in which
// case all printable keys belong to it.
func (d *DetailPane) Searching() bool {
	return d.searching
}

// Expanded reports whether the item with the given id is disclosed.
func (d *DetailPane) Expanded(id string) bool {
	return d.expanded[id]
}

func (d *DetailPane) buildBadges() {
	d.badges = make(map[string]contextBadge)
	if d.collection == nil {
		return
	}
	d.collection.Walk(func(item *core.Item) {
		if item.Context == "" {
			return
		}
		if _, seen := d.badges[item.Context]; seen {
			return
		}
		ctx, ok := d.collection.ResolveContext(item.Context)
		if !ok {
			logging.Warnf("item %q references unknown context %q", item.Title, item.Context)
			return
		}
		badge := contextBadge{
			text: ctx.Title,
			fg:   core.ResolveColor(ctx.Color, core.DimColor),
			bg:   core.ResolveColor(ctx.Background, core.BackgroundColor),
		}
		if badge.text == "" {
			badge.text = item.Context
		}
		if ctx.Icon != "" {
			if glyph, err := d.glyphs.Resolve(context.Background(), ctx.Icon); err == nil {
				badge.glyph = glyph
			}
		}
		d.badges[item.Context] = badge
	})
}

func (d *DetailPane) rebuild() {
	d.rows = FilterRows(FlattenVisible(d.collection, d.expanded), d.search)
	d.cursor = MoveCursor(d.cursor, 0, len(d.rows))
	d.offset = AdjustOffset(d.cursor, d.offset, d.height)
}

// Init implements tui.Component.
func (d *DetailPane) Init() tea.Cmd { return nil }

// Update implements tui.Component.
func (d *DetailPane) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.FocusMsg:
		d.Focus()
	case tui.BlurMsg:
		d.Blur()
	case tea.KeyMsg:
		if !d.focused {
			return d, nil
		}
		if d.searching {
			return d, d.handleSearchKey(msg)
		}
		return d, d.handleKey(msg)
	}
	return d, nil
}

func (d *DetailPane) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		d.searching = false
		d.search = ""
		d.rebuild()
	case "enter":
		d.searching = false
	case "backspace":
		if len(d.search) > 0 {
			d.search = d.search[:len(d.search)-1]
			d.rebuild()
		}
	default:
		if msg.Type == tea.KeyRunes {
			d.search += string(msg.Runes)
			d.rebuild()
		}
	}
	return nil
}

func (d *DetailPane) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		d.cursor = MoveCursor(d.cursor, 1, len(d.rows))
		d.offset = AdjustOffset(d.cursor, d.offset, d.height)
	case "k", "up":
		d.cursor = MoveCursor(d.cursor, -1, len(d.rows))
		d.offset = AdjustOffset(d.cursor, d.offset, d.height)
	case "g":
		d.cursor = 0
		d.offset = 0
	case "G":
		d.cursor = MoveCursor(len(d.rows)-1, 0, len(d.rows))
		d.offset = AdjustOffset(d.cursor, d.offset, d.height)
	case "enter", " ":
		return d.activateCursor()
	case "y":
		d.yank()
	case "/":
		d.searching = true
		d.search = ""
	case "esc":
		if d.search != "" {
			d.search = ""
			d.rebuild()
		}
	}
	return nil
}

func (d *DetailPane) activateCursor() tea.Cmd {
	if d.cursor >= len(d.rows) {
		return nil
	}
	row := d.rows[d.cursor]
	switch row.Kind {
	case RowItem:
		d.toggleItem(row)
	case RowAction:
		d.activateAction(row)
	}
	return nil
}

// toggleItem flips a container's disclosure and persists the result: opening
// records the item as the open item, closing it removes the record when it
// was the one stored. Leaf items do not toggle.
func (d *DetailPane) toggleItem(row Row) {
	if !row.Expandable {
		return
	}
	id := row.Item.ID
	opening := !d.expanded[id]
	d.expanded = ToggleExpand(d.expanded, id, opening)
	if opening {
		if err := d.bar.SetOpenItem(id); err != nil {
			logging.Error(err)
		}
	} else if stored, ok := d.bar.OpenItem(); ok && stored == id {
		if err := d.bar.ClearOpenItem(); err != nil {
			logging.Error(err)
		}
	}
	d.rebuild()
}

func (d *DetailPane) activateAction(row Row) {
	a := row.Action
	switch {
	case a.OnClick != "":
		globals := map[string]any{"item": row.Item}
		if a.Data != nil {
			globals["data"] = a.Data
		}
		if err := d.scripts.Run(a.OnClick, globals); err != nil {
			logging.Error(err)
		}
	case a.Data != nil:
		sent, err := d.dispatcher.Dispatch(context.Background(), row.ActionKey, row.Item, a.Data)
		if err != nil {
			logging.Error(err)
		}
		if !sent {
			logging.Infof("action %s already pending", row.ActionKey)
		}
	case a.Href != "":
		// No browser in a terminal; hand the link to the clipboard instead.
		if !clipboard.Unsupported {
			if err := clipboard.WriteAll(a.Href); err != nil {
				logging.Error(err)
			}
		}
		logging.Infof("link copied: %s", a.Href)
	}
}

func (d *DetailPane) yank() {
	if d.cursor >= len(d.rows) {
		return
	}
	row := d.rows[d.cursor]
	var content string
	switch {
	case row.Kind == RowCode || row.Kind == RowText:
		content = row.Content
	case row.Item != nil && row.Item.Code != "":
		content = row.Item.Code
	case row.Item != nil && row.Item.Text != "":
		content = row.Item.Text
	case row.Item != nil:
		content = row.Item.Title
	}
	if content == "" || clipboard.Unsupported {
		return
	}
	if err := clipboard.WriteAll(content); err != nil {
		logging.Error(err)
	}
}

// View implements tui.Component.
func (d *DetailPane) View() string {
	if d.collection == nil {
		return ""
	}
	visible := d.height
	if visible < 1 {
		visible = 1
	}
	lines := make([]string, 0, visible)
	if d.searching || d.search != "" {
		lines = append(lines, d.dimStyle.Render("/"+d.search))
		visible--
	}
	end := d.offset + visible
	if end > len(d.rows) {
		end = len(d.rows)
	}
	for i := d.offset; i < end; i++ {
		lines = append(lines, d.renderRow(d.rows[i], i == d.cursor && d.focused))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (d *DetailPane) renderRow(row Row, selected bool) string {
	indent := ""
	for i := 0; i < row.Level; i++ {
		indent += "  "
	}

	var line string
	switch row.Kind {
	case RowEmpty:
		line = d.emptyStyle.Render(row.Content)
	case RowItem:
		line = indent + d.renderItemRow(row)
	case RowAction:
		line = indent + d.renderActionRow(row)
	case RowText:
		line = indent + d.dimStyle.Render(row.Content)
	case RowCode:
		line = indent + d.codeStyle.Render(row.Content)
	}

	line = tui.Truncate(line, d.width)
	if selected {
		return d.cursorStyle.Render(tui.PadRight(line, d.width))
	}
	return line
}

func (d *DetailPane) renderItemRow(row Row) string {
	marker := "  "
	if row.Expandable {
		marker = "▸ "
		if row.Expanded {
			marker = "▾ "
		}
	}
	line := marker + row.Item.Title
	if badge, ok := d.badges[row.Item.Context]; ok {
		style := lipgloss.NewStyle().Foreground(badge.fg).Background(badge.bg)
		text := badge.text
		if badge.glyph != "" {
			text = badge.glyph + " " + text
		}
		line += " " + style.Render(" "+text+" ")
	}
	if details := row.Item.DetailsText(); details != "" {
		line += " " + d.dimStyle.Render(details)
	}
	return line
}

func (d *DetailPane) renderActionRow(row Row) string {
	label := row.Action.Text
	if row.Action.Icon != "" {
		if glyph, err := d.glyphs.Resolve(context.Background(), row.Action.Icon); err == nil {
			label = glyph + " " + label
		}
	}
	if row.Action.Href != "" {
		label += " " + d.dimStyle.Render(row.Action.Href)
	}
	if d.dispatcher.Pending(row.ActionKey) {
		return d.dimStyle.Render("… " + label)
	}
	return d.actionStyle.Render("⏎ " + label)
}

// Focused implements tui.Component.
func (d *DetailPane) Focused() bool { return d.focused }

// Focus implements tui.Component.
func (d *DetailPane) Focus() { d.focused = true }

// Blur implements tui.Component.
func (d *DetailPane) Blur() { d.focused = false }

// SetSize implements tui.Component.
func (d *DetailPane) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.offset = AdjustOffset(d.cursor, d.offset, d.height)
}
