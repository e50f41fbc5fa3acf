package views

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
)

// StageCount is one cell of the project status badge.
type StageCount struct {
	Caption string `json:"caption"`
	Count   int    `json:"count"`
	Ratio   string `json:"ratio"`
}

// ProjectStatusBadge is the status widget shown in each project row.
type ProjectStatusBadge struct {
	Stages   []StageCount `json:"stages"`
	QCFailed int          `json:"qc_failed"`
	Style    string       `json:"style"`
}

// SampleStatusBadge is the status widget shown in each sample row.
type SampleStatusBadge struct {
	Status  domain.SampleStatus `json:"status"`
	Caption string              `json:"caption"`
	Style   string              `json:"style"`
}

// SubscriptionCheckbox is the subscribe toggle shown in each project row.
type SubscriptionCheckbox struct {
	ProjectCode string `json:"project_code"`
	Checked     bool   `json:"checked"`
}

// Header captions and tooltips of the project status column.
var projectStages = []struct {
	caption     string
	description string
	count       func(domain.ProjectStatus) int
}{
	{"Samples Received", "Number of samples that arrived in the sequencing facility.", func(s domain.ProjectStatus) int { return s.Received }},
	{"Samples Passed QC", "Number of samples that passed quality control.", func(s domain.ProjectStatus) int { return s.QCPassed }},
	{"Library Prep Finished", "Number of samples where library preparation has finished.", func(s domain.ProjectStatus) int { return s.LibraryPrepFinished }},
	{"Data Available", "Number of available raw datasets.", func(s domain.ProjectStatus) int { return s.DataAvailable }},
}

func RenderProjectStatus(p domain.Project) any {
	st := p.Status
	badge := ProjectStatusBadge{QCFailed: st.QCFailed}
	for _, stage := range projectStages {
		n := stage.count(st)
		badge.Stages = append(badge.Stages, StageCount{
			Caption: stage.caption,
			Count:   n,
			Ratio:   fmt.Sprintf("%d/%d", n, st.TotalCount()),
		})
	}

	switch {
	case st.TotalCount() == 0:
		badge.Style = "empty"
	case st.QCFailed > 0:
		badge.Style = "failed"
	case st.CountDataAvailable() == st.TotalCount():
		badge.Style = "complete"
	default:
		badge.Style = "in-progress"
	}
	return badge
}

func RenderSampleStatus(s domain.Sample) any {
	style := "in-progress"
	switch s.Status {
	case domain.StatusSampleQCFail:
		style = "failed"
	case domain.StatusDataAvailable:
		style = "complete"
	case domain.StatusMetadataRegistered:
		style = "pending"
	}
	return SampleStatusBadge{Status: s.Status, Caption: s.Status.Caption(), Style: style}
}

func RenderSubscriptionCheckbox(p domain.Project) any {
	return SubscriptionCheckbox{ProjectCode: p.Code, Checked: p.Subscribed}
}

func projectStatusHeaderDescription() string {
	parts := make([]string, 0, len(projectStages))
	for _, stage := range projectStages {
		parts = append(parts, stage.caption+": "+stage.description)
	}
	return strings.Join(parts, " ")
}
