package domain

import "time"

// Project is one laboratory project as shown in the project overview.
// Values are rebuilt on every repository load and never shared between loads.
type Project struct {
	Code       string        `json:"code"`
	Title      string        `json:"title"`
	Subscribed bool          `json:"subscribed"`
	Status     ProjectStatus `json:"status"`
}

// ProjectStatus aggregates the pipeline progress of all samples of a project.
type ProjectStatus struct {
	Received            int       `json:"samples_received"`
	QCPassed            int       `json:"samples_qc_pass"`
	QCFailed            int       `json:"samples_qc_fail"`
	LibraryPrepFinished int       `json:"library_prep_finished"`
	DataAvailable       int       `json:"data_available"`
	Total               int       `json:"total"`
	Modified            time.Time `json:"last_modified"`
}

func (s ProjectStatus) CountDataAvailable() int { return s.DataAvailable }

func (s ProjectStatus) TotalCount() int { return s.Total }

func (s ProjectStatus) LastModified() time.Time { return s.Modified }

// Sample is a single sample of a project.
type Sample struct {
	Label  string       `json:"label"`
	Code   string       `json:"code"`
	Status SampleStatus `json:"status"`
}

// Subscription records that the current user wants status updates for a project.
type Subscription struct {
	ProjectCode string `json:"project_code"`
}

// MergeSubscriptions returns copies of projects with Subscribed set iff the
// project code appears in subs. The input slice is left untouched.
// Duplicate project codes keep their first occurrence only.
func MergeSubscriptions(projects []Project, subs []Subscription) []Project {
	subscribed := make(map[string]struct{}, len(subs))
	for _, s := range subs {
		subscribed[s.ProjectCode] = struct{}{}
	}

	seen := make(map[string]struct{}, len(projects))
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if _, dup := seen[p.Code]; dup {
			continue
		}
		seen[p.Code] = struct{}{}

		_, ok := subscribed[p.Code]
		p.Subscribed = ok
		out = append(out, p)
	}
	return out
}
