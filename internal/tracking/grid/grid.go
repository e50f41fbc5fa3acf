// Package grid implements the filterable, sortable table both dashboard views
// are built on.
package grid

import (
	"errors"
	"slices"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/filter"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"
)

var (
	ErrUnknownColumn     = errors.New("unknown column")
	ErrColumnNotSortable = errors.New("column has no comparator")
	ErrSelectionDisabled = errors.New("selection is disabled")
	ErrItemNotFound      = errors.New("item not shown in grid")
)

type SelectionMode int

const (
	SelectionSingle SelectionMode = iota
	SelectionNone
)

type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// SelectionEvent reports the newly selected item, if any.
type SelectionEvent[T any] struct {
	item     T
	selected bool
}

// FirstSelectedItem returns the selected item, or false when the selection
// was cleared.
func (e SelectionEvent[T]) FirstSelectedItem() (T, bool) {
	return e.item, e.selected
}

// Row is one rendered grid line.
type Row struct {
	Key   string         `json:"key"`
	Cells map[string]any `json:"cells"`
}

// Grid displays a collection of T. The visible rows are always the current
// items narrowed by the current filter and ordered by the current sort.
// Grid is not safe for concurrent use; drive it from the UI thread.
type Grid[T any] struct {
	key     func(T) string
	columns []*Column[T]

	items   []T
	visible []T
	filter  filter.Predicate[T]

	sortColumn *Column[T]
	sortDir    SortDirection

	mode               SelectionMode
	selectedKey        string
	selectedItem       T
	hasSelection       bool
	selectionListeners []func(SelectionEvent[T])

	shown     bool
	resizeReg ui.Registration
	viewport  int
}

// New creates an empty grid that identifies items by key.
func New[T any](key func(T) string) *Grid[T] {
	return &Grid[T]{key: key, shown: true}
}

// SetItems replaces the backing collection and re-applies filter and sort.
// A selected item missing from items is deselected; a selected item that is
// still present is replaced by its new version and re-announced.
func (g *Grid[T]) SetItems(items []T) {
	g.items = slices.Clone(items)
	g.refresh()

	if !g.hasSelection {
		return
	}
	for _, it := range g.items {
		if g.key(it) == g.selectedKey {
			g.selectedItem = it
			g.fireSelection(SelectionEvent[T]{item: it, selected: true})
			return
		}
	}
	g.clearSelection()
}

// Items returns a copy of the full backing collection.
func (g *Grid[T]) Items() []T { return slices.Clone(g.items) }

// SetFilter replaces the active filter; nil shows every item.
func (g *Grid[T]) SetFilter(p filter.Predicate[T]) {
	g.filter = p
	g.refresh()
}

func (g *Grid[T]) Filter() filter.Predicate[T] { return g.filter }

// VisibleItems returns the filtered and sorted items.
func (g *Grid[T]) VisibleItems() []T { return slices.Clone(g.visible) }

// Rows renders the visible items through the visible columns.
func (g *Grid[T]) Rows() []Row {
	rows := make([]Row, 0, len(g.visible))
	for _, it := range g.visible {
		cells := make(map[string]any, len(g.columns))
		for _, c := range g.columns {
			if c.Hidden || c.Render == nil {
				continue
			}
			cells[c.ID] = c.Render(it)
		}
		rows = append(rows, Row{Key: g.key(it), Cells: cells})
	}
	return rows
}

// Sort orders the visible items by the given column.
func (g *Grid[T]) Sort(columnID string, dir SortDirection) error {
	c := g.Column(columnID)
	if c == nil {
		return ErrUnknownColumn
	}
	if c.Comparator == nil {
		return ErrColumnNotSortable
	}
	g.sortColumn = c
	g.sortDir = dir
	g.refresh()
	return nil
}

// ClearSortOrder restores load order.
func (g *Grid[T]) ClearSortOrder() {
	g.sortColumn = nil
	g.refresh()
}

// SortOrder reports the active sort column, or "" when unsorted.
func (g *Grid[T]) SortOrder() (string, SortDirection) {
	if g.sortColumn == nil {
		return "", Ascending
	}
	return g.sortColumn.ID, g.sortDir
}

func (g *Grid[T]) refresh() {
	visible := make([]T, 0, len(g.items))
	for _, it := range g.items {
		if g.filter == nil || g.filter.Test(it) {
			visible = append(visible, it)
		}
	}
	if c := g.sortColumn; c != nil {
		cmp := c.Comparator
		if g.sortDir == Descending {
			cmp = func(a, b T) int { return c.Comparator(b, a) }
		}
		slices.SortStableFunc(visible, cmp)
	}
	g.visible = visible
}

func (g *Grid[T]) SetSelectionMode(m SelectionMode) {
	g.mode = m
	if m == SelectionNone && g.hasSelection {
		g.clearSelection()
	}
}

func (g *Grid[T]) SelectionMode() SelectionMode { return g.mode }

// Select selects the visible item with the given key.
func (g *Grid[T]) Select(key string) error {
	if g.mode == SelectionNone {
		return ErrSelectionDisabled
	}
	for _, it := range g.visible {
		if g.key(it) != key {
			continue
		}
		if g.hasSelection && g.selectedKey == key {
			return nil
		}
		g.selectedKey = key
		g.selectedItem = it
		g.hasSelection = true
		g.fireSelection(SelectionEvent[T]{item: it, selected: true})
		return nil
	}
	return ErrItemNotFound
}

// Deselect clears the selection. Without a selection it does nothing.
func (g *Grid[T]) Deselect() {
	if g.hasSelection {
		g.clearSelection()
	}
}

func (g *Grid[T]) SelectedItem() (T, bool) {
	return g.selectedItem, g.hasSelection
}

func (g *Grid[T]) AddSelectionListener(fn func(SelectionEvent[T])) {
	g.selectionListeners = append(g.selectionListeners, fn)
}

func (g *Grid[T]) clearSelection() {
	var zero T
	g.selectedKey = ""
	g.selectedItem = zero
	g.hasSelection = false
	g.fireSelection(SelectionEvent[T]{})
}

func (g *Grid[T]) fireSelection(e SelectionEvent[T]) {
	for _, fn := range g.selectionListeners {
		fn(e)
	}
}

func (g *Grid[T]) IsVisible() bool { return g.shown }
func (g *Grid[T]) SetVisible(v bool) { g.shown = v }
