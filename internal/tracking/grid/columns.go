package grid

import "github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"

const defaultMinWidth = 80

// Column describes one grid column.
type Column[T any] struct {
	ID      string
	Caption string
	// Description is shown as the header tooltip.
	Description string
	Hidden      bool
	// ExpandRatio shares the space left after every column got MinWidth.
	ExpandRatio int
	MinWidth    float64
	// Render produces the cell value; hidden columns are not rendered.
	Render func(T) any
	// Comparator enables sorting by this column.
	Comparator func(a, b T) int

	width float64
}

// Width is the last computed width in pixels.
func (c *Column[T]) Width() float64 { return c.width }

func (c *Column[T]) minWidth() float64 {
	if c.MinWidth <= 0 {
		return defaultMinWidth
	}
	return c.MinWidth
}

// AddColumn appends c and returns the stored column for further tuning.
func (g *Grid[T]) AddColumn(c Column[T]) *Column[T] {
	col := &c
	g.columns = append(g.columns, col)
	if g.viewport > 0 {
		g.RecalculateColumnWidths(g.viewport)
	}
	return col
}

func (g *Grid[T]) Column(id string) *Column[T] {
	for _, c := range g.columns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (g *Grid[T]) Columns() []*Column[T] {
	out := make([]*Column[T], len(g.columns))
	copy(out, g.columns)
	return out
}

// RecalculateColumnWidths fits the visible columns into width pixels.
// Every visible column gets at least its minimum; the rest is split by
// expand ratio, or evenly when no column expands.
func (g *Grid[T]) RecalculateColumnWidths(width int) {
	g.viewport = width

	var shown []*Column[T]
	var sumMin float64
	var sumRatio int
	for _, c := range g.columns {
		if c.Hidden {
			c.width = 0
			continue
		}
		shown = append(shown, c)
		c.width = c.minWidth()
		sumMin += c.width
		sumRatio += max(c.ExpandRatio, 0)
	}
	if len(shown) == 0 {
		return
	}

	extra := float64(width) - sumMin
	if extra <= 0 {
		return
	}
	for _, c := range shown {
		if sumRatio == 0 {
			c.width += extra / float64(len(shown))
			continue
		}
		c.width += extra * float64(max(c.ExpandRatio, 0)) / float64(sumRatio)
	}
}

// Attach sizes the columns for the page and follows its resize events until
// Detach.
func (g *Grid[T]) Attach(page *ui.Page) {
	if g.resizeReg != nil {
		g.resizeReg.Remove()
	}
	g.RecalculateColumnWidths(page.Width())
	g.resizeReg = page.AddResizeListener(func(e ui.ResizeEvent) {
		g.RecalculateColumnWidths(e.Width)
	})
}

// Detach stops following resize events. It is safe to call when not attached.
func (g *Grid[T]) Detach() {
	if g.resizeReg == nil {
		return
	}
	g.resizeReg.Remove()
	g.resizeReg = nil
}

func (g *Grid[T]) Attached() bool { return g.resizeReg != nil }
