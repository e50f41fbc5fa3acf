package views

import (
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/grid"
)

// ColumnState describes a column header as sent to the browser.
type ColumnState struct {
	ID          string  `json:"id"`
	Caption     string  `json:"caption"`
	Description string  `json:"description,omitempty"`
	Width       float64 `json:"width"`
}

type ButtonState struct {
	Caption     string `json:"caption"`
	Description string `json:"description,omitempty"`
	Visible     bool   `json:"visible"`
	Enabled     bool   `json:"enabled"`
}

type GridState struct {
	Visible  bool          `json:"visible"`
	Columns  []ColumnState `json:"columns"`
	Rows     []grid.Row    `json:"rows"`
	Total    int           `json:"total"`
	SortedBy string        `json:"sorted_by,omitempty"`
	SortDir  string        `json:"sort_direction,omitempty"`
}

type ProjectViewSnapshot struct {
	State          string      `json:"state"`
	SpinnerVisible bool        `json:"spinner_visible"`
	SearchText     string      `json:"search_text"`
	SortOrder      string      `json:"sort_order"`
	SortOptions    []string    `json:"sort_options"`
	Selected       string      `json:"selected,omitempty"`
	Download       ButtonState `json:"download"`
	DownloadFile   string      `json:"download_file,omitempty"`
	ViewSamples    ButtonState `json:"view_samples"`
	Grid           GridState   `json:"grid"`
}

type SampleViewSnapshot struct {
	ProjectCode    string                `json:"project_code"`
	SearchText     string                `json:"search_text"`
	Status         domain.SampleStatus   `json:"status,omitempty"`
	StatusOptions  []domain.SampleStatus `json:"status_options"`
	BackToProjects ButtonState           `json:"back_to_projects"`
	Grid           GridState             `json:"grid"`
}

func gridState[T any](g *grid.Grid[T]) GridState {
	st := GridState{
		Visible: g.IsVisible(),
		Rows:    g.Rows(),
		Total:   len(g.Items()),
	}
	for _, c := range g.Columns() {
		if c.Hidden {
			continue
		}
		st.Columns = append(st.Columns, ColumnState{
			ID:          c.ID,
			Caption:     c.Caption,
			Description: c.Description,
			Width:       c.Width(),
		})
	}
	if col, dir := g.SortOrder(); col != "" {
		st.SortedBy = col
		st.SortDir = dir.String()
	}
	return st
}

// Snapshot captures everything the browser needs to render the view.
func (v *ProjectView) Snapshot() ProjectViewSnapshot {
	s := ProjectViewSnapshot{
		State:          v.state.String(),
		SpinnerVisible: v.Spinner.Visible(),
		SearchText:     v.SearchField.Value(),
		SortOrder:      v.SortBox.Value(),
		SortOptions:    v.SortBox.Items(),
		Download: ButtonState{
			Caption:     v.DownloadButton.Caption,
			Description: v.DownloadButton.Description,
			Visible:     v.DownloadButton.Visible(),
			Enabled:     v.DownloadButton.Enabled(),
		},
		ViewSamples: ButtonState{
			Caption: v.SamplesButton.Caption,
			Visible: v.SamplesButton.Visible(),
			Enabled: v.SamplesButton.Enabled(),
		},
		Grid: gridState(v.grid),
	}
	if p, ok := v.grid.SelectedItem(); ok {
		s.Selected = p.Code
	}
	if t := v.downloader.Target(); t != nil {
		s.DownloadFile = t.Filename
	}
	return s
}

func (v *SampleView) Snapshot() SampleViewSnapshot {
	return SampleViewSnapshot{
		ProjectCode:   v.projectCode,
		SearchText:    v.SearchField.Value(),
		Status:        v.StatusBox.Value(),
		StatusOptions: v.StatusBox.Items(),
		BackToProjects: ButtonState{
			Caption: v.ProjectsButton.Caption,
			Visible: v.ProjectsButton.Visible(),
			Enabled: v.ProjectsButton.Enabled(),
		},
		Grid: gridState(v.grid),
	}
}
