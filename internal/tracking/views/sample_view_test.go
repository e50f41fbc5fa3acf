package views

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/grid"
)

func testSamples() *fakeSamples {
	return &fakeSamples{byProject: map[string][]domain.Sample{
		"QAAAA": {
			{Label: "liver biopsy", Code: "QAAAA001AE", Status: domain.StatusDataAvailable},
			{Label: "blood draw", Code: "QAAAA002AM", Status: domain.StatusSampleQCFail},
			{Label: "Liver control", Code: "QAAAA003AU", Status: domain.StatusSampleReceived},
		},
		"QBBBB": {
			{Label: "soil", Code: "QBBBB001A1", Status: domain.StatusMetadataRegistered},
		},
	}}
}

func sampleCodes(ss []domain.Sample) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.Code)
	}
	return out
}

func TestSampleView_LoadsOnAttach(t *testing.T) {
	u := startUI(t)
	repo := testSamples()
	v := NewSampleView(SampleViewDeps{Samples: repo})

	onUI(t, u, func() {
		v.SetProjectCode("QAAAA")
		assert.Empty(t, repo.calls, "detached view defers the load")

		v.Attach(u)
		assert.Equal(t, []string{"QAAAA"}, repo.calls)
		assert.Len(t, v.Grid().VisibleItems(), 3)
		assert.Equal(t, grid.SelectionNone, v.Grid().SelectionMode())
	})
}

func TestSampleView_SameCodeIsNoop(t *testing.T) {
	u := startUI(t)
	repo := testSamples()
	v := NewSampleView(SampleViewDeps{Samples: repo})

	onUI(t, u, func() {
		v.Attach(u)
		v.SetProjectCode("QAAAA")
		v.SetProjectCode("QAAAA")
		assert.Equal(t, []string{"QAAAA"}, repo.calls)

		v.SetProjectCode("QBBBB")
		assert.Equal(t, []string{"QAAAA", "QBBBB"}, repo.calls)
		assert.Equal(t, "QBBBB", v.ProjectCode())
		assert.Equal(t, []string{"QBBBB001A1"}, sampleCodes(v.Grid().VisibleItems()))
	})
}

func TestSampleView_EmptyCodeShowsNothing(t *testing.T) {
	u := startUI(t)
	repo := testSamples()
	v := NewSampleView(SampleViewDeps{Samples: repo})

	onUI(t, u, func() {
		v.Attach(u)
		assert.Empty(t, v.Grid().Items())
		assert.Empty(t, repo.calls)
	})
}

func TestSampleView_Filters(t *testing.T) {
	u := startUI(t)
	v := NewSampleView(SampleViewDeps{Samples: testSamples()})

	onUI(t, u, func() {
		v.SetProjectCode("QAAAA")
		v.Attach(u)

		v.SetSearchText("LIVER")
		assert.Equal(t, []string{"QAAAA001AE", "QAAAA003AU"}, sampleCodes(v.Grid().VisibleItems()))

		require.NoError(t, v.SelectStatus("data_available"))
		assert.Equal(t, []string{"QAAAA001AE"}, sampleCodes(v.Grid().VisibleItems()))
		assert.Equal(t, domain.StatusDataAvailable, v.Filter().Status())

		v.SetSearchText("")
		require.NoError(t, v.SelectStatus(string(domain.StatusSampleQCFail)))
		assert.Equal(t, []string{"QAAAA002AM"}, sampleCodes(v.Grid().VisibleItems()))

		require.NoError(t, v.SelectStatus(""))
		assert.Len(t, v.Grid().VisibleItems(), 3)

		assert.ErrorIs(t, v.SelectStatus("SHIPPED"), domain.ErrUnknownStatus)
	})
}

func TestSampleView_SwitchingProjectResetsFilters(t *testing.T) {
	u := startUI(t)
	v := NewSampleView(SampleViewDeps{Samples: testSamples()})

	onUI(t, u, func() {
		v.SetProjectCode("QAAAA")
		v.Attach(u)
		v.SetSearchText("liver")
		require.NoError(t, v.SelectStatus("SAMPLE_RECEIVED"))

		v.SetProjectCode("QBBBB")
		assert.Equal(t, "", v.SearchField.Value())
		assert.Equal(t, domain.SampleStatus(""), v.StatusBox.Value())
		assert.Len(t, v.Grid().VisibleItems(), 1)
	})
}

func TestSampleView_StatusOptionsInPipelineOrder(t *testing.T) {
	v := NewSampleView(SampleViewDeps{Samples: testSamples()})
	assert.Equal(t, domain.AllSampleStatuses(), v.StatusBox.Items())
	assert.Equal(t, domain.StatusMetadataRegistered, v.StatusBox.Items()[0])
}

func TestSampleView_LoadFailureDropsPreviousProjectRows(t *testing.T) {
	u := startUI(t)
	repo := testSamples()
	v := NewSampleView(SampleViewDeps{Samples: repo})

	onUI(t, u, func() {
		v.SetProjectCode("QAAAA")
		v.Attach(u)
		require.Len(t, v.Grid().Items(), 3)

		repo.err = errors.New("db down")
		v.SetProjectCode("QBBBB")
		assert.Equal(t, "QBBBB", v.ProjectCode())
		assert.Empty(t, v.Grid().Items())
	})
}

func TestSampleView_ReloadFailureKeepsRowsOfSameProject(t *testing.T) {
	u := startUI(t)
	repo := testSamples()
	v := NewSampleView(SampleViewDeps{Samples: repo})

	onUI(t, u, func() {
		v.SetProjectCode("QAAAA")
		v.Attach(u)
		v.Detach()

		repo.err = errors.New("db down")
		v.Attach(u)
		assert.Len(t, v.Grid().Items(), 3)
	})
}

func TestSampleView_DetachedSwitchResetsFiltersOnAttach(t *testing.T) {
	u := startUI(t)
	v := NewSampleView(SampleViewDeps{Samples: testSamples()})

	onUI(t, u, func() {
		v.SetProjectCode("QAAAA")
		v.Attach(u)
		v.SetSearchText("liver")
		require.NoError(t, v.SelectStatus("DATA_AVAILABLE"))
		v.Detach()

		v.SetProjectCode("QBBBB")
		v.Attach(u)
		assert.Equal(t, "", v.SearchField.Value())
		assert.Equal(t, domain.SampleStatus(""), v.StatusBox.Value())
		assert.Equal(t, []string{"QBBBB001A1"}, sampleCodes(v.Grid().VisibleItems()))
	})
}

func TestSampleView_ReattachSameProjectKeepsFilters(t *testing.T) {
	u := startUI(t)
	v := NewSampleView(SampleViewDeps{Samples: testSamples()})

	onUI(t, u, func() {
		v.SetProjectCode("QAAAA")
		v.Attach(u)
		v.SetSearchText("liver")
		v.Detach()

		v.Attach(u)
		assert.Equal(t, "liver", v.SearchField.Value())
		assert.Len(t, v.Grid().VisibleItems(), 2)
	})
}

func TestSampleView_BackButton(t *testing.T) {
	v := NewSampleView(SampleViewDeps{Samples: testSamples()})
	l := &projectRequests{}
	v.AddProjectViewRequestedListener(l)
	v.AddProjectViewRequestedListener(l)

	assert.True(t, v.ClickBack())
	assert.Equal(t, 1, l.n)

	v.RemoveProjectViewRequestedListener(l)
	v.RemoveProjectViewRequestedListener(l)
	v.ClickBack()
	assert.Equal(t, 1, l.n)
}

func TestSampleView_Snapshot(t *testing.T) {
	u := startUI(t)
	v := NewSampleView(SampleViewDeps{Samples: testSamples()})

	onUI(t, u, func() {
		v.SetProjectCode("QBBBB")
		v.Attach(u)
		s := v.Snapshot()

		assert.Equal(t, "QBBBB", s.ProjectCode)
		assert.Equal(t, "Back to Projects", s.BackToProjects.Caption)
		require.Len(t, s.Grid.Rows, 1)
		badge, ok := s.Grid.Rows[0].Cells[ColumnStatus].(SampleStatusBadge)
		require.True(t, ok)
		assert.Equal(t, "pending", badge.Style)
		assert.Equal(t, "soil", s.Grid.Rows[0].Cells[ColumnLabel])
	})
}
