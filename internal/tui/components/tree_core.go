package components

import (
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/artpar/lumebar/internal/core"
	"github.com/artpar/lumebar/internal/markup"
)

// This file contains pure functions for the detail pane: flattening the
// item tree into visible rows, cursor math, and disclosure state. They take
// values and return values, which keeps the component shell thin and the
// tests trivial.

// RowKind identifies what a flattened row displays.
type RowKind int

const (
	RowItem RowKind = iota
	RowAction
	RowText
	RowCode
	RowEmpty
)

// Row is one display line of the flattened item tree.
type Row struct {
	Kind       RowKind
	Item       *core.Item
	Action     *core.Action
	ActionKey  string
	Level      int
	Expandable bool
	Expanded   bool
	Content    string
}

// ActionKey identifies one action of one item for the pending-activation
// bookkeeping: the item id plus the action's position.
func ActionKey(item *core.Item, index int) string {
	return item.ID + "/" + strconv.Itoa(index)
}

// FlattenVisible turns a collection's item tree into display rows given the
// current disclosure state. Children, text, and code appear only under
// expanded items; actions sit beside their item and stay visible even when
// it is collapsed. An empty collection yields a single placeholder row.
func FlattenVisible(c *core.Collection, expanded map[string]bool) []Row {
	if c == nil {
		return nil
	}
	if len(c.Items) == 0 {
		empty := c.Empty
		if empty == "" {
			empty = "No items"
		}
		return []Row{{Kind: RowEmpty, Content: empty}}
	}

	var rows []Row
	var appendItems func(items []*core.Item, level int)
	appendItems = func(items []*core.Item, level int) {
		for _, item := range items {
			open := expanded[item.ID]
			rows = append(rows, Row{
				Kind:       RowItem,
				Item:       item,
				Level:      level,
				Expandable: item.Expandable(),
				Expanded:   open,
			})
			for i, a := range item.Actions {
				rows = append(rows, Row{
					Kind:      RowAction,
					Item:      item,
					Action:    a,
					ActionKey: ActionKey(item, i),
					Level:     level + 1,
				})
			}
			if !open {
				continue
			}
			for _, line := range markup.Lines(item.Text) {
				rows = append(rows, Row{Kind: RowText, Item: item, Level: level + 1, Content: line})
			}
			if item.Code != "" {
				for _, line := range strings.Split(item.Code, "\n") {
					rows = append(rows, Row{Kind: RowCode, Item: item, Level: level + 1, Content: line})
				}
			}
			appendItems(item.Items, level+1)
		}
	}
	appendItems(c.Items, 0)
	return rows
}

// RowIndexByID returns the index of the item row with the given id, or -1.
func RowIndexByID(rows []Row, id string) int {
	for i, row := range rows {
		if row.Kind == RowItem && row.Item != nil && row.Item.ID == id {
			return i
		}
	}
	return -1
}

// MoveCursor computes a new cursor position within bounds.
func MoveCursor(cursor, delta, rowCount int) int {
	if rowCount == 0 {
		return 0
	}
	next := cursor + delta
	if next < 0 {
		return 0
	}
	if next >= rowCount {
		return rowCount - 1
	}
	return next
}

// AdjustOffset keeps the cursor visible within the viewport.
func AdjustOffset(cursor, offset, visibleHeight int) int {
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visibleHeight {
		return cursor - visibleHeight + 1
	}
	return offset
}

// ToggleExpand returns a new disclosure map with one id toggled. The input
// map is never mutated.
func ToggleExpand(expanded map[string]bool, id string, expand bool) map[string]bool {
	result := make(map[string]bool, len(expanded)+1)
	for k, v := range expanded {
		result[k] = v
	}
	result[id] = expand
	return result
}

// OpenAll returns a new disclosure map with every id in the chain opened,
// on top of the existing state. Used by open-item restoration, which forces
// the whole ancestor chain open root-first.
func OpenAll(expanded map[string]bool, chain []string) map[string]bool {
	result := make(map[string]bool, len(expanded)+len(chain))
	for k, v := range expanded {
		result[k] = v
	}
	for _, id := range chain {
		result[id] = true
	}
	return result
}

// FilterRows returns the item rows fuzzy-matching the query, along with
// their attached action rows. An empty query returns the input unchanged.
func FilterRows(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}
	var result []Row
	keep := false
	for _, row := range rows {
		switch row.Kind {
		case RowItem:
			keep = fuzzy.MatchFold(query, row.Item.Title) ||
				(row.Content != "" && fuzzy.MatchFold(query, row.Content))
			if keep {
				result = append(result, row)
			}
		default:
			if keep {
				result = append(result, row)
			}
		}
	}
	return result
}
