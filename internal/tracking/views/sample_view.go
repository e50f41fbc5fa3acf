package views

import (
	"log/slog"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/event"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/filter"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/grid"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"
)

// Sample grid column ids.
const (
	ColumnLabel  = "label"
	ColumnSample = "code"
	ColumnStatus = "status"
)

type SampleViewDeps struct {
	Samples        SampleRepository
	Logger         *slog.Logger
	StatusRenderer ItemRenderer[domain.Sample]
}

// SampleView lists the samples of one project. Samples are loaded
// synchronously; a project holds few enough of them.
type SampleView struct {
	deps   SampleViewDeps
	logger *slog.Logger

	grid           *grid.Grid[domain.Sample]
	SearchField    *ui.TextField
	StatusBox      *ui.ComboBox[domain.SampleStatus]
	ProjectsButton *ui.Button

	sampleFilter filter.SampleFilter
	listeners    event.List[ProjectViewRequested]

	ui          *ui.UI
	attached    bool
	projectCode string
	hasCode     bool
	// shownCode is the project whose filters and rows the view last showed.
	shownCode string
}

func NewSampleView(deps SampleViewDeps) *SampleView {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.StatusRenderer == nil {
		deps.StatusRenderer = RenderSampleStatus
	}

	v := &SampleView{
		deps:           deps,
		logger:         deps.Logger.With("view", "samples"),
		SearchField:    ui.NewTextField("Search"),
		StatusBox:      ui.NewComboBox[domain.SampleStatus]("Status", domain.AllSampleStatuses()...),
		ProjectsButton: ui.NewButton("Back to Projects"),
	}
	v.grid = v.createSampleGrid()
	v.addSampleFilter()
	v.ProjectsButton.AddClickListener(func() {
		v.listeners.Fire(ProjectViewRequested{})
	})
	return v
}

func (v *SampleView) createSampleGrid() *grid.Grid[domain.Sample] {
	g := grid.New(func(s domain.Sample) string { return s.Code })
	g.AddColumn(grid.Column[domain.Sample]{
		ID:          ColumnLabel,
		Caption:     "Sample Label",
		ExpandRatio: 1,
		MinWidth:    150,
		Render:      func(s domain.Sample) any { return s.Label },
	})
	g.AddColumn(grid.Column[domain.Sample]{
		ID:       ColumnSample,
		Caption:  "QBiC Code",
		MinWidth: 150,
		Render:   func(s domain.Sample) any { return s.Code },
	})
	g.AddColumn(grid.Column[domain.Sample]{
		ID:       ColumnStatus,
		Caption:  "Status",
		MinWidth: 150,
		Render:   v.deps.StatusRenderer,
	})
	g.SetSelectionMode(grid.SelectionNone)
	g.SetFilter(v.sampleFilter)
	return g
}

func (v *SampleView) addSampleFilter() {
	v.SearchField.AddValueChangeListener(func(text string) {
		v.sampleFilter = v.sampleFilter.ContainingText(text)
		v.grid.SetFilter(v.sampleFilter)
	})
	v.StatusBox.AddValueChangeListener(func(st domain.SampleStatus) {
		v.sampleFilter = v.sampleFilter.WithStatus(st)
		v.grid.SetFilter(v.sampleFilter)
	})
}

// SetProjectCode switches the view to another project. Setting the current
// code again does nothing. While detached the load waits for Attach.
func (v *SampleView) SetProjectCode(code string) {
	if v.hasCode && v.projectCode == code {
		return
	}
	v.projectCode = code
	v.hasCode = true
	if v.attached {
		v.showProject()
	}
}

func (v *SampleView) ProjectCode() string { return v.projectCode }

// Attach shows the view on u and loads the samples of the current project.
func (v *SampleView) Attach(u *ui.UI) {
	v.ui = u
	v.attached = true
	v.grid.Attach(u.Page())
	v.showProject()
}

// showProject reloads the current project. Moving to another project drops
// the search text, the status filter and the rows of the previous one.
func (v *SampleView) showProject() {
	if v.projectCode != v.shownCode {
		v.SearchField.Clear()
		v.StatusBox.Clear()
		v.grid.SetItems(nil)
		v.shownCode = v.projectCode
	}
	v.loadSamplesForProject(v.projectCode)
}

func (v *SampleView) Detach() {
	v.attached = false
	v.grid.Detach()
}

func (v *SampleView) loadSamplesForProject(code string) {
	if code == "" {
		v.grid.SetItems(nil)
		return
	}
	samples, err := v.deps.Samples.FindAllSamplesForProject(v.ui.Context(), code)
	if err != nil {
		v.logger.Error("load samples", "project", code, "error", err)
		return
	}
	v.grid.SetItems(samples)
}

func (v *SampleView) Grid() *grid.Grid[domain.Sample] { return v.grid }

func (v *SampleView) Filter() filter.SampleFilter { return v.sampleFilter }

func (v *SampleView) SetSearchText(text string) { v.SearchField.SetValue(text) }

// SelectStatus narrows the grid to one status; "" shows all statuses.
func (v *SampleView) SelectStatus(status string) error {
	if status == "" {
		v.StatusBox.Clear()
		return nil
	}
	st, err := domain.ParseSampleStatus(status)
	if err != nil {
		return err
	}
	return v.StatusBox.SetValue(st)
}

// ClickBack asks the host to show the project list again.
func (v *SampleView) ClickBack() bool { return v.ProjectsButton.Click() }

func (v *SampleView) AddProjectViewRequestedListener(l ProjectViewRequestedListener) {
	v.listeners.Add(l)
}

func (v *SampleView) RemoveProjectViewRequestedListener(l ProjectViewRequestedListener) {
	v.listeners.Remove(l)
}
