package bootstrap

import (
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/repository"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/session"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/views"
)

type TrackingStores struct {
	Projects      views.ProjectRepository
	Samples       views.SampleRepository
	Manifests     views.ManifestProvider
	Subscriptions *repository.SubscriptionRepository
}

// ViewBuilder wires the shared stores into the views of one user's session.
// Subscriptions are scoped to that user.
func ViewBuilder(s TrackingStores) session.ViewBuilder {
	return func(userID string) (views.ProjectViewDeps, views.SampleViewDeps) {
		pd := views.ProjectViewDeps{
			Projects:  s.Projects,
			Manifests: s.Manifests,
		}
		if s.Subscriptions != nil {
			subs := s.Subscriptions.ForUser(userID)
			pd.Subscriptions = subs
			pd.Subscriber = subs
		}
		return pd, views.SampleViewDeps{Samples: s.Samples}
	}
}
