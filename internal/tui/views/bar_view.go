// Package views holds the top-level bubbletea model for the bar.
package views

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/lumebar/internal/action"
	"github.com/artpar/lumebar/internal/core"
	"github.com/artpar/lumebar/internal/feed"
	"github.com/artpar/lumebar/internal/icons"
	"github.com/artpar/lumebar/internal/logging"
	"github.com/artpar/lumebar/internal/script"
	"github.com/artpar/lumebar/internal/state"
	"github.com/artpar/lumebar/internal/tui/components"
)

// DataLoadedMsg carries the result of an asynchronous document load. The
// generation ties it to the load that produced it so superseded results can
// be discarded.
type DataLoadedMsg struct {
	Generation uint64
	Doc        *core.Document
	Err        error
}

// ReloadMsg requests a fresh load of the data source.
type ReloadMsg struct{}

// BarView is the root model: a tab strip over a detail pane, collapsible to
// a single line. All persisted UI state flows through the BarState.
type BarView struct {
	width  int
	height int

	bar     *state.BarState
	source  *feed.Source
	watcher *feed.Watcher

	tabs   *components.TabStrip
	detail *components.DetailPane

	closed bool
	status string

	statusStyle lipgloss.Style
	toggleStyle lipgloss.Style
}

// NewBarView wires the bar together. Source and watcher may be nil when the
// host pushes documents directly via ApplyDocument.
func NewBarView(bar *state.BarState, source *feed.Source, watcher *feed.Watcher, sender action.Sender) *BarView {
	glyphs := icons.NewMemo(icons.NewGlyphs())
	dispatcher := action.NewDispatcher(sender)
	scripts := script.NewEngine(func(level, message string) {
		logging.Infof("console.%s: %s", level, message)
	})

	v := &BarView{
		bar:     bar,
		source:  source,
		watcher: watcher,
		tabs:    components.NewTabStrip(glyphs),
		detail:  components.NewDetailPane(bar, dispatcher, scripts, glyphs),
		closed:  bar.Closed(),

		statusStyle: lipgloss.NewStyle().Foreground(core.DimColor),
		toggleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
	v.detail.Focus()
	return v
}

// Init implements tea.Model.
func (v *BarView) Init() tea.Cmd {
	return tea.Batch(v.loadCmd(), v.watchCmd())
}

func (v *BarView) loadCmd() tea.Cmd {
	if v.source == nil {
		return nil
	}
	gen := v.source.Begin()
	src := v.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		doc, err := src.Load(ctx)
		return DataLoadedMsg{Generation: gen, Doc: doc, Err: err}
	}
}

func (v *BarView) watchCmd() tea.Cmd {
	if v.watcher == nil {
		return nil
	}
	changes := v.watcher.Changes()
	return func() tea.Msg {
		<-changes
		return ReloadMsg{}
	}
}

// Update implements tea.Model.
func (v *BarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil

	case DataLoadedMsg:
		if v.source != nil && v.source.Stale(msg.Generation) {
			logging.Infof("discarding stale load generation %d", msg.Generation)
			return v, nil
		}
		if msg.Err != nil {
			logging.Error(msg.Err)
			v.status = "load failed, see log"
			return v, nil
		}
		v.status = ""
		v.ApplyDocument(msg.Doc)
		return v, nil

	case ReloadMsg:
		return v, tea.Batch(v.loadCmd(), v.watchCmd())

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	_, cmd := v.detail.Update(msg)
	return v, cmd
}

func (v *BarView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return v, tea.Quit
	}

	// Filter input captures every printable key.
	if v.detail.Searching() {
		_, cmd := v.detail.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "q":
		return v, tea.Quit
	case "t":
		v.toggleBar()
		return v, nil
	}

	if v.closed {
		return v, nil
	}

	switch key := msg.String(); key {
	case "r":
		return v, v.loadCmd()
	case "tab", "right":
		v.selectTab(v.tabs.Next())
		return v, nil
	case "shift+tab", "left":
		v.selectTab(v.tabs.Prev())
		return v, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		v.selectTab(v.tabs.ByIndex(int(key[0]-'0') - 1))
		return v, nil
	}

	_, cmd := v.detail.Update(msg)
	return v, cmd
}

// ApplyDocument replaces the bar's content with a freshly loaded document.
// Ids are assigned per collection, then the persisted active tab is
// replayed, which in turn restores the remembered open item.
func (v *BarView) ApplyDocument(doc *core.Document) {
	var collections []*core.Collection
	if doc != nil {
		collections = doc.Collections
	}
	for _, c := range collections {
		core.AssignIDs(c.Items, nil)
	}
	v.tabs.SetCollections(collections)
	v.detail.Clear()

	name, ok := v.bar.ActiveCollection()
	if !ok {
		return
	}
	for _, c := range collections {
		if c.Name == name {
			v.activate(c, true)
			return
		}
	}
	logging.Warnf("persisted active collection %q not in document", name)
}

// activate presses a tab and shows its collection. Programmatic activation
// replays the persisted open item; manual activation never does, because
// selectTab clears it beforehand.
func (v *BarView) activate(c *core.Collection, programmatic bool) {
	v.tabs.SetActive(c.Name)
	if err := v.bar.SetActiveCollection(c.Name); err != nil {
		logging.Error(err)
	}
	v.detail.SetCollection(c)
	v.detail.Focus()
	if programmatic {
		v.detail.Restore()
	}
}

// selectTab handles a manual tab press: the remembered open item is dropped
// first, and pressing the already-active tab releases it.
func (v *BarView) selectTab(c *core.Collection) {
	if c == nil {
		return
	}
	if err := v.bar.ClearOpenItem(); err != nil {
		logging.Error(err)
	}
	if v.tabs.Active() == c.Name {
		v.tabs.SetActive("")
		v.detail.Clear()
		if err := v.bar.ClearActiveCollection(); err != nil {
			logging.Error(err)
		}
		return
	}
	v.activate(c, false)
}

func (v *BarView) toggleBar() {
	v.closed = !v.closed
	if err := v.bar.SetClosed(v.closed); err != nil {
		logging.Error(err)
	}
}

// Closed reports the bar's machine state.
func (v *BarView) Closed() bool {
	return v.closed
}

// ActiveTab returns the pressed tab's name, or "".
func (v *BarView) ActiveTab() string {
	return v.tabs.Active()
}

// Detail exposes the detail pane, mainly for tests.
func (v *BarView) Detail() *components.DetailPane {
	return v.detail
}

// SetSize resizes the bar and its components.
func (v *BarView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.tabs.SetWidth(width)
	detailHeight := height - 2
	if detailHeight < 1 {
		detailHeight = 1
	}
	v.detail.SetSize(width, detailHeight)
}

// View implements tea.Model.
func (v *BarView) View() string {
	if v.closed {
		return v.toggleStyle.Render("▴") + v.statusStyle.Render(" lume  t to open")
	}

	header := v.toggleStyle.Render("▾ ") + v.tabs.View()
	body := v.detail.View()
	if v.tabs.Active() == "" {
		body = v.statusStyle.Render("select a tab: 1-9, tab/shift+tab")
	}

	footer := v.status
	if footer == "" {
		footer = "j/k move  enter toggle  / filter  y yank  r reload  t close  q quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		v.statusStyle.Render(footer),
	)
}
