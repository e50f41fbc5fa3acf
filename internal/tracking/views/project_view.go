package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/event"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/filter"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/grid"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"
)

var (
	ErrNotAttached           = errors.New("view is not attached")
	ErrSubscriptionsReadOnly = errors.New("subscriptions cannot be changed")
	ErrNoProjectSelected     = errors.New("no project selected")
)

// Sort dropdown options of the project list.
const (
	SortNewestChanges = "Newest Changes"
	SortOldestChanges = "Oldest Changes"
	SortSubscribed    = "Subscribed"
	SortNotSubscribed = "Not Subscribed"
)

// Project grid column ids.
const (
	ColumnSubscription  = "subscription"
	ColumnTitle         = "title"
	ColumnCode          = "code"
	ColumnProjectStatus = "projectStatus"
	ColumnLastModified  = "lastModified"
)

const manifestDescription = "A manifest is a text file with sample codes used by our client application " +
	"to download the data attached to the defined samples. Use qpostman " +
	"(https://github.com/qbicsoftware/postman-cli) to download the sample data."

type ProjectViewState int

const (
	StateIdle ProjectViewState = iota
	StateLoading
	StateReady
)

func (s ProjectViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// ProjectViewDeps bundles the collaborators of a ProjectView. Subscriptions
// may be nil when the checkbox is read only; renderers default to the
// built-in badges.
type ProjectViewDeps struct {
	Projects      ProjectRepository
	Subscriptions SubscriptionRepository
	Subscriber    SubscriptionWriter
	Manifests     ManifestProvider
	Logger        *slog.Logger

	StatusRenderer   ItemRenderer[domain.Project]
	CheckboxRenderer ItemRenderer[domain.Project]
}

// ProjectView lists all projects with their status summary.
type ProjectView struct {
	deps   ProjectViewDeps
	logger *slog.Logger

	grid           *grid.Grid[domain.Project]
	SearchField    *ui.TextField
	SortBox        *ui.ComboBox[string]
	Spinner        ui.Spinner
	DownloadButton *ui.Button
	SamplesButton  *ui.Button
	downloader     ui.Downloader

	listeners event.List[SampleViewRequested]

	ui       *ui.UI
	attached bool
	state    ProjectViewState
	loadSeq  int
}

func NewProjectView(deps ProjectViewDeps) *ProjectView {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.StatusRenderer == nil {
		deps.StatusRenderer = RenderProjectStatus
	}
	if deps.CheckboxRenderer == nil {
		deps.CheckboxRenderer = RenderSubscriptionCheckbox
	}

	v := &ProjectView{
		deps:           deps,
		logger:         deps.Logger.With("view", "projects"),
		SearchField:    ui.NewTextField("Search"),
		SortBox:        ui.NewComboBox("Sort by", SortNewestChanges, SortOldestChanges, SortSubscribed, SortNotSubscribed),
		DownloadButton: ui.NewButton("Download Manifest"),
		SamplesButton:  ui.NewButton("View Samples"),
	}
	v.grid = v.createProjectGrid()
	v.addSorting()
	v.addProjectFilter()
	v.listenToProjectSelection()
	v.listenToSampleViewButton()
	v.setupDownloadButton()
	return v
}

func (v *ProjectView) createProjectGrid() *grid.Grid[domain.Project] {
	g := grid.New(func(p domain.Project) string { return p.Code })

	g.AddColumn(grid.Column[domain.Project]{
		ID:          ColumnSubscription,
		Caption:     "Subscribe",
		Description: "Select a project to get status updates over email.",
		MinWidth:    90,
		Render:      v.deps.CheckboxRenderer,
		Comparator: func(a, b domain.Project) int {
			return compareBool(a.Subscribed, b.Subscribed)
		},
	})
	g.AddColumn(grid.Column[domain.Project]{
		ID:          ColumnTitle,
		Caption:     "Project Title",
		ExpandRatio: 1,
		MinWidth:    120,
		Render:      func(p domain.Project) any { return p.Title },
	})
	g.AddColumn(grid.Column[domain.Project]{
		ID:       ColumnCode,
		Caption:  "Project Code",
		MinWidth: 100,
		Render:   func(p domain.Project) any { return p.Code },
	})
	g.AddColumn(grid.Column[domain.Project]{
		ID:          ColumnProjectStatus,
		Caption:     "Status",
		Description: projectStatusHeaderDescription(),
		MinWidth:    400,
		Render:      v.deps.StatusRenderer,
	})
	g.AddColumn(grid.Column[domain.Project]{
		ID:      ColumnLastModified,
		Caption: "Last Modified",
		Hidden:  true,
		Render:  func(p domain.Project) any { return p.Status.LastModified() },
		Comparator: func(a, b domain.Project) int {
			return a.Status.LastModified().Compare(b.Status.LastModified())
		},
	})

	g.SetSelectionMode(grid.SelectionSingle)
	return g
}

func (v *ProjectView) addSorting() {
	v.SortBox.AddValueChangeListener(func(order string) {
		var err error
		switch order {
		case SortSubscribed:
			err = v.grid.Sort(ColumnSubscription, grid.Descending)
		case SortNotSubscribed:
			err = v.grid.Sort(ColumnSubscription, grid.Ascending)
		case SortNewestChanges:
			err = v.grid.Sort(ColumnLastModified, grid.Descending)
		case SortOldestChanges:
			err = v.grid.Sort(ColumnLastModified, grid.Ascending)
		default:
			v.grid.ClearSortOrder()
		}
		if err != nil {
			v.logger.Error("sort projects", "order", order, "error", err)
		}
	})
}

func (v *ProjectView) addProjectFilter() {
	v.SearchField.AddValueChangeListener(func(text string) {
		v.grid.SetFilter(filter.ProjectFilter{}.ContainingText(text))
	})
}

func (v *ProjectView) listenToProjectSelection() {
	v.grid.AddSelectionListener(func(e grid.SelectionEvent[domain.Project]) {
		if p, ok := e.FirstSelectedItem(); ok {
			v.selectProject(p)
			return
		}
		v.clearSelectedProject()
	})
}

func (v *ProjectView) listenToSampleViewButton() {
	v.SamplesButton.AddClickListener(func() {
		if p, ok := v.grid.SelectedItem(); ok {
			v.listeners.Fire(SampleViewRequested{ProjectCode: p.Code})
		}
	})
}

func (v *ProjectView) setupDownloadButton() {
	v.DownloadButton.Description = manifestDescription
	v.hideDownloadButton()
	v.SamplesButton.SetEnabled(false)
}

func (v *ProjectView) selectProject(p domain.Project) {
	if p.Status.CountDataAvailable() > 0 {
		v.DownloadButton.SetVisible(true)
		v.DownloadButton.SetEnabled(true)
		v.updateDownloadableProject(p.Code)
	} else {
		v.hideDownloadButton()
	}
	v.SamplesButton.SetEnabled(p.Status.TotalCount() >= 1)
}

func (v *ProjectView) clearSelectedProject() {
	v.hideDownloadButton()
	v.SamplesButton.SetEnabled(false)
}

func (v *ProjectView) hideDownloadButton() {
	v.DownloadButton.SetVisible(false)
	v.DownloadButton.SetEnabled(false)
	v.downloader.SetTarget(nil)
}

func (v *ProjectView) updateDownloadableProject(code string) {
	if t := v.downloader.Target(); t != nil && t.Filename == manifestFilename(code) {
		return
	}
	manifests := v.deps.Manifests
	v.downloader.SetTarget(ui.NewStreamResource(manifestFilename(code), func(ctx context.Context) (io.ReadCloser, error) {
		if manifests == nil {
			return nil, ui.ErrNothingToDownload
		}
		return manifests.GetManifestForProject(ctx, code)
	}))
}

func manifestFilename(code string) string {
	return fmt.Sprintf("%s-manifest.txt", code)
}

// Attach shows the view on u and starts loading projects in the background.
func (v *ProjectView) Attach(u *ui.UI) {
	v.ui = u
	v.attached = true
	v.grid.Attach(u.Page())
	v.loadProjects()
}

// Detach hides the view. A load still in flight is discarded when it lands.
func (v *ProjectView) Detach() {
	v.attached = false
	v.grid.Detach()
}

// Reload fetches the projects again.
func (v *ProjectView) Reload() error {
	if !v.attached {
		return ErrNotAttached
	}
	v.loadProjects()
	return nil
}

func (v *ProjectView) loadProjects() {
	u := v.ui
	v.state = StateLoading
	v.Spinner.SetVisible(true)
	v.grid.SetVisible(false)

	v.loadSeq++
	seq := v.loadSeq
	repo := v.deps.Projects

	err := u.Workers().Submit(u.Context(), func(ctx context.Context) {
		projects, err := repo.FindAllProjects(ctx)
		if err != nil {
			v.logger.Error("load projects", "error", err)
			return
		}
		v.logger.Info("loaded projects", "count", len(projects))

		if err := u.Access(func() { v.showProjects(seq, projects) }); err != nil {
			v.logger.Warn("drop loaded projects", "error", err)
		}
	})
	if err != nil {
		v.logger.Error("schedule project load", "error", err)
	}
}

func (v *ProjectView) showProjects(seq int, projects []domain.Project) {
	if seq != v.loadSeq || !v.attached {
		return
	}

	var subs []domain.Subscription
	if v.deps.Subscriptions != nil {
		var err error
		subs, err = v.deps.Subscriptions.FindAll(v.ui.Context())
		if err != nil {
			v.logger.Error("load subscriptions", "error", err)
			return
		}
	}

	v.grid.SetItems(domain.MergeSubscriptions(projects, subs))
	v.grid.SetVisible(true)
	v.Spinner.SetVisible(false)
	v.state = StateReady
}

func (v *ProjectView) State() ProjectViewState { return v.state }

func (v *ProjectView) Grid() *grid.Grid[domain.Project] { return v.grid }

func (v *ProjectView) SetSearchText(text string) { v.SearchField.SetValue(text) }

// SelectSortOrder picks one of the Sort* options; "" restores load order.
func (v *ProjectView) SelectSortOrder(order string) error {
	return v.SortBox.SetValue(order)
}

// SelectProject selects a project by code; "" clears the selection.
func (v *ProjectView) SelectProject(code string) error {
	if code == "" {
		v.grid.Deselect()
		return nil
	}
	return v.grid.Select(code)
}

// ClickViewSamples reports whether a SampleViewRequested event was fired.
func (v *ProjectView) ClickViewSamples() bool {
	if _, ok := v.grid.SelectedItem(); !ok {
		return false
	}
	return v.SamplesButton.Click()
}

// Download opens the manifest of the selected project.
func (v *ProjectView) Download(ctx context.Context) (string, io.ReadCloser, error) {
	if !v.DownloadButton.Visible() || !v.DownloadButton.Enabled() {
		return "", nil, ui.ErrNothingToDownload
	}
	return v.downloader.Open(ctx)
}

// DownloadTarget returns the currently bound manifest, if any.
func (v *ProjectView) DownloadTarget() *ui.StreamResource { return v.downloader.Target() }

// SetSubscribed stores the subscription choice and updates the row.
func (v *ProjectView) SetSubscribed(ctx context.Context, code string, subscribed bool) error {
	if v.deps.Subscriber == nil {
		return ErrSubscriptionsReadOnly
	}

	items := v.grid.Items()
	idx := -1
	for i, p := range items {
		if p.Code == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrProjectNotFound
	}

	var err error
	if subscribed {
		err = v.deps.Subscriber.Subscribe(ctx, code)
	} else {
		err = v.deps.Subscriber.Unsubscribe(ctx, code)
	}
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	items[idx].Subscribed = subscribed
	v.grid.SetItems(items)
	return nil
}

func (v *ProjectView) AddSampleViewRequestedListener(l SampleViewRequestedListener) {
	v.listeners.Add(l)
}

func (v *ProjectView) RemoveSampleViewRequestedListener(l SampleViewRequestedListener) {
	v.listeners.Remove(l)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
