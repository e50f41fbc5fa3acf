// Package filter holds the predicates used to narrow the project and sample grids.
package filter

import (
	"strings"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
)

// Predicate decides whether an item is visible.
// Implementations must be total: Test may not panic for any item.
type Predicate[T any] interface {
	Test(item T) bool
}

// Func adapts a plain function to a Predicate.
type Func[T any] func(T) bool

func (f Func[T]) Test(item T) bool { return f(item) }

// ProjectFilter matches projects whose title or code contains the query text,
// ignoring case. The zero value matches every project.
type ProjectFilter struct {
	text string
}

// ContainingText returns a copy of the filter with the given query text.
func (f ProjectFilter) ContainingText(text string) ProjectFilter {
	f.text = normalize(text)
	return f
}

func (f ProjectFilter) Text() string { return f.text }

func (f ProjectFilter) Test(p domain.Project) bool {
	if f.text == "" {
		return true
	}
	return containsFold(p.Title, f.text) || containsFold(p.Code, f.text)
}

// SampleFilter matches samples by label/code text and by status.
// Both clauses are optional; the zero value matches every sample.
type SampleFilter struct {
	text   string
	status domain.SampleStatus
}

// ContainingText returns a copy of the filter with the given query text.
func (f SampleFilter) ContainingText(text string) SampleFilter {
	f.text = normalize(text)
	return f
}

// WithStatus returns a copy of the filter restricted to status.
// An empty status removes the restriction.
func (f SampleFilter) WithStatus(status domain.SampleStatus) SampleFilter {
	f.status = status
	return f
}

func (f SampleFilter) Text() string { return f.text }

func (f SampleFilter) Status() domain.SampleStatus { return f.status }

func (f SampleFilter) Test(s domain.Sample) bool {
	if f.status != "" && s.Status != f.status {
		return false
	}
	if f.text == "" {
		return true
	}
	return containsFold(s.Label, f.text) || containsFold(s.Code, f.text)
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// containsFold reports whether lowered needle occurs in s, ignoring case.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
