package views

import (
	"fmt"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/event"
)

// SampleViewRequested asks the host to show the samples of a project.
type SampleViewRequested struct {
	ProjectCode string
}

func (e SampleViewRequested) String() string {
	return fmt.Sprintf("SampleViewRequested[projectCode=%q]", e.ProjectCode)
}

// ProjectViewRequested asks the host to go back to the project list.
type ProjectViewRequested struct{}

type (
	SampleViewRequestedListener  = event.Listener[SampleViewRequested]
	ProjectViewRequestedListener = event.Listener[ProjectViewRequested]
)
