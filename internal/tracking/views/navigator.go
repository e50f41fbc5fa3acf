package views

import (
	"log/slog"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"
)

type ViewName string

const (
	ViewProjects ViewName = "projects"
	ViewSamples  ViewName = "samples"
)

// Navigator is the host of both views: it shows one at a time and switches on
// their navigation events.
type Navigator struct {
	ui       *ui.UI
	projects *ProjectView
	samples  *SampleView
	logger   *slog.Logger
	current  ViewName

	toSamples  *sampleViewSwitch
	toProjects *projectViewSwitch
}

type sampleViewSwitch struct{ n *Navigator }

func (s *sampleViewSwitch) Handle(e SampleViewRequested) { s.n.showSamples(e.ProjectCode) }

type projectViewSwitch struct{ n *Navigator }

func (s *projectViewSwitch) Handle(ProjectViewRequested) { s.n.showProjects() }

func NewNavigator(u *ui.UI, projects *ProjectView, samples *SampleView, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	n := &Navigator{ui: u, projects: projects, samples: samples, logger: logger}
	n.toSamples = &sampleViewSwitch{n: n}
	n.toProjects = &projectViewSwitch{n: n}
	projects.AddSampleViewRequestedListener(n.toSamples)
	samples.AddProjectViewRequestedListener(n.toProjects)
	return n
}

// Start shows the project list. Call it on the UI thread.
func (n *Navigator) Start() {
	n.projects.Attach(n.ui)
	n.current = ViewProjects
}

func (n *Navigator) showSamples(projectCode string) {
	n.logger.Info("show samples", "project", projectCode)
	n.samples.SetProjectCode(projectCode)
	if n.current == ViewSamples {
		return
	}
	n.projects.Detach()
	n.samples.Attach(n.ui)
	n.current = ViewSamples
}

func (n *Navigator) showProjects() {
	if n.current == ViewProjects {
		return
	}
	n.samples.Detach()
	n.projects.Attach(n.ui)
	n.current = ViewProjects
}

// Stop detaches whichever view is shown.
func (n *Navigator) Stop() {
	switch n.current {
	case ViewProjects:
		n.projects.Detach()
	case ViewSamples:
		n.samples.Detach()
	}
	n.current = ""
	n.projects.RemoveSampleViewRequestedListener(n.toSamples)
	n.samples.RemoveProjectViewRequestedListener(n.toProjects)
}

func (n *Navigator) Current() ViewName { return n.current }

func (n *Navigator) Projects() *ProjectView { return n.projects }

func (n *Navigator) Samples() *SampleView { return n.samples }
