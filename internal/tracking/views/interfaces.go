// Package views holds the two dashboard views and the navigator that switches
// between them. All exported methods expect to run on the session's UI thread.
package views

import (
	"context"
	"io"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
)

type ProjectRepository interface {
	FindAllProjects(ctx context.Context) ([]domain.Project, error)
}

type SubscriptionRepository interface {
	FindAll(ctx context.Context) ([]domain.Subscription, error)
}

// SubscriptionWriter persists changes made with the subscribe checkbox.
type SubscriptionWriter interface {
	Subscribe(ctx context.Context, projectCode string) error
	Unsubscribe(ctx context.Context, projectCode string) error
}

type SampleRepository interface {
	FindAllSamplesForProject(ctx context.Context, projectCode string) ([]domain.Sample, error)
}

// ManifestProvider streams the manifest of a project. The returned reader is
// only requested when the user actually downloads.
type ManifestProvider interface {
	GetManifestForProject(ctx context.Context, projectCode string) (io.ReadCloser, error)
}

// ItemRenderer turns a row item into the widget value shown in a cell.
type ItemRenderer[T any] func(T) any
