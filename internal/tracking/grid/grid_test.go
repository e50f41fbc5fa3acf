package grid

import (
	"cmp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/filter"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"
)

type item struct {
	id    string
	score int
}

func newItemGrid() *Grid[item] {
	g := New(func(i item) string { return i.id })
	g.AddColumn(Column[item]{
		ID:          "id",
		Caption:     "ID",
		ExpandRatio: 1,
		Render:      func(i item) any { return i.id },
	})
	g.AddColumn(Column[item]{
		ID:         "score",
		Caption:    "Score",
		MinWidth:   100,
		Render:     func(i item) any { return i.score },
		Comparator: func(a, b item) int { return cmp.Compare(a.score, b.score) },
	})
	return g
}

func items(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{id: "i" + strconv.Itoa(i), score: (i * 7) % 5}
	}
	return out
}

func ids(in []item) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		out = append(out, i.id)
	}
	return out
}

var evenScore = filter.Func[item](func(i item) bool { return i.score%2 == 0 })

func TestGrid_FilterIndependentOfCallOrder(t *testing.T) {
	data := items(10)

	var want []string
	for _, i := range data {
		if evenScore(i) {
			want = append(want, i.id)
		}
	}

	a := newItemGrid()
	a.SetItems(data)
	a.SetFilter(evenScore)

	b := newItemGrid()
	b.SetFilter(evenScore)
	b.SetItems(data)

	assert.Equal(t, want, ids(a.VisibleItems()))
	assert.Equal(t, want, ids(b.VisibleItems()))
}

func TestGrid_FilterDoesNotMutateItems(t *testing.T) {
	g := newItemGrid()
	data := items(6)
	g.SetItems(data)
	g.SetFilter(filter.Func[item](func(item) bool { return false }))

	assert.Empty(t, g.VisibleItems())
	assert.Equal(t, data, g.Items())

	g.SetFilter(nil)
	assert.Len(t, g.VisibleItems(), 6)
}

func TestGrid_SetItemsReplacesCollection(t *testing.T) {
	g := newItemGrid()
	g.SetItems(items(5))
	g.SetItems([]item{{id: "new"}})

	assert.Equal(t, []string{"new"}, ids(g.VisibleItems()))
}

func TestGrid_Sort(t *testing.T) {
	g := newItemGrid()
	g.SetItems([]item{{"a", 3}, {"b", 1}, {"c", 2}, {"d", 1}})

	require.NoError(t, g.Sort("score", Ascending))
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(g.VisibleItems()))

	require.NoError(t, g.Sort("score", Descending))
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(g.VisibleItems()))

	col, dir := g.SortOrder()
	assert.Equal(t, "score", col)
	assert.Equal(t, Descending, dir)

	t.Run("sort applies after filter", func(t *testing.T) {
		g.SetFilter(filter.Func[item](func(i item) bool { return i.id != "a" }))
		assert.Equal(t, []string{"c", "b", "d"}, ids(g.VisibleItems()))
		g.SetFilter(nil)
	})

	g.ClearSortOrder()
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(g.VisibleItems()))

	assert.ErrorIs(t, g.Sort("id", Ascending), ErrColumnNotSortable)
	assert.ErrorIs(t, g.Sort("nope", Ascending), ErrUnknownColumn)
}

func TestGrid_Selection(t *testing.T) {
	g := newItemGrid()
	g.SetItems([]item{{"a", 1}, {"b", 2}})

	var events []SelectionEvent[item]
	g.AddSelectionListener(func(e SelectionEvent[item]) { events = append(events, e) })

	require.NoError(t, g.Select("a"))
	require.NoError(t, g.Select("a"))
	require.Len(t, events, 1)
	sel, ok := events[0].FirstSelectedItem()
	assert.True(t, ok)
	assert.Equal(t, "a", sel.id)

	assert.ErrorIs(t, g.Select("zzz"), ErrItemNotFound)

	t.Run("reload keeps present item", func(t *testing.T) {
		g.SetItems([]item{{"a", 9}, {"c", 3}})
		cur, ok := g.SelectedItem()
		require.True(t, ok)
		assert.Equal(t, 9, cur.score)
	})

	t.Run("reload drops missing item", func(t *testing.T) {
		g.SetItems([]item{{"c", 3}})
		_, ok := g.SelectedItem()
		assert.False(t, ok)
		_, ok = events[len(events)-1].FirstSelectedItem()
		assert.False(t, ok)
	})

	t.Run("deselect without selection is silent", func(t *testing.T) {
		n := len(events)
		g.Deselect()
		assert.Len(t, events, n)
	})
}

func TestGrid_SelectionNone(t *testing.T) {
	g := newItemGrid()
	g.SetItems([]item{{"a", 1}})
	g.SetSelectionMode(SelectionNone)

	assert.ErrorIs(t, g.Select("a"), ErrSelectionDisabled)
}

func TestGrid_Rows(t *testing.T) {
	g := newItemGrid()
	g.AddColumn(Column[item]{ID: "hidden", Hidden: true, Render: func(item) any { return "x" }})
	g.SetItems([]item{{"a", 1}})

	rows := g.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].Key)
	assert.Equal(t, map[string]any{"id": "a", "score": 1}, rows[0].Cells)
}

func TestGrid_ColumnWidths(t *testing.T) {
	g := newItemGrid()

	g.RecalculateColumnWidths(500)
	assert.InDelta(t, 400, g.Column("id").Width(), 0.001)
	assert.InDelta(t, 100, g.Column("score").Width(), 0.001)

	t.Run("narrow viewport keeps minimums", func(t *testing.T) {
		g.RecalculateColumnWidths(50)
		assert.InDelta(t, defaultMinWidth, g.Column("id").Width(), 0.001)
		assert.InDelta(t, 100, g.Column("score").Width(), 0.001)
	})

	t.Run("no expanding column splits evenly", func(t *testing.T) {
		g.Column("id").ExpandRatio = 0
		g.RecalculateColumnWidths(380)
		assert.InDelta(t, 180, g.Column("id").Width(), 0.001)
		assert.InDelta(t, 200, g.Column("score").Width(), 0.001)
	})

	t.Run("hidden columns take no space", func(t *testing.T) {
		g.Column("score").Hidden = true
		g.RecalculateColumnWidths(300)
		assert.InDelta(t, 300, g.Column("id").Width(), 0.001)
		assert.Zero(t, g.Column("score").Width())
	})
}

func TestGrid_AttachFollowsResizeUntilDetach(t *testing.T) {
	page := ui.NewPage(300, 200)
	g := newItemGrid()

	g.Attach(page)
	assert.True(t, g.Attached())
	assert.InDelta(t, 200, g.Column("id").Width(), 0.001)

	page.Resize(1000, 200)
	assert.InDelta(t, 900, g.Column("id").Width(), 0.001)

	g.Detach()
	g.Detach()
	assert.False(t, g.Attached())
	assert.Equal(t, 0, page.ListenerCount())

	page.Resize(400, 200)
	assert.InDelta(t, 900, g.Column("id").Width(), 0.001)

	t.Run("re-attach does not stack listeners", func(t *testing.T) {
		g.Attach(page)
		g.Attach(page)
		assert.Equal(t, 1, page.ListenerCount())
		assert.InDelta(t, 300, g.Column("id").Width(), 0.001)
	})
}
