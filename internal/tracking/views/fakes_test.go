package views

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"
)

type fakeProjects struct {
	projects []domain.Project
	err      error
	gate     chan struct{}
	calls    atomic.Int32
}

func (f *fakeProjects) FindAllProjects(ctx context.Context) ([]domain.Project, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.projects, f.err
}

type fakeSubscriptions struct {
	mu    sync.Mutex
	codes map[string]bool
	err   error
}

func newFakeSubscriptions(codes ...string) *fakeSubscriptions {
	f := &fakeSubscriptions{codes: map[string]bool{}}
	for _, c := range codes {
		f.codes[c] = true
	}
	return f
}

func (f *fakeSubscriptions) FindAll(context.Context) ([]domain.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Subscription
	for c := range f.codes {
		out = append(out, domain.Subscription{ProjectCode: c})
	}
	return out, nil
}

func (f *fakeSubscriptions) Subscribe(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[code] = true
	return f.err
}

func (f *fakeSubscriptions) Unsubscribe(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.codes, code)
	return f.err
}

type fakeSamples struct {
	byProject map[string][]domain.Sample
	err       error
	calls     []string
}

func (f *fakeSamples) FindAllSamplesForProject(_ context.Context, code string) ([]domain.Sample, error) {
	f.calls = append(f.calls, code)
	return f.byProject[code], f.err
}

type fakeManifests struct {
	requested []string
}

func (f *fakeManifests) GetManifestForProject(_ context.Context, code string) (io.ReadCloser, error) {
	f.requested = append(f.requested, code)
	return io.NopCloser(strings.NewReader(code + "001\n" + code + "002\n")), nil
}

type sampleRequests struct {
	got []SampleViewRequested
}

func (r *sampleRequests) Handle(e SampleViewRequested) { r.got = append(r.got, e) }

type projectRequests struct {
	n int
}

func (r *projectRequests) Handle(ProjectViewRequested) { r.n++ }

func startUI(t *testing.T) *ui.UI {
	t.Helper()
	u := ui.New(context.Background(), ui.Options{Page: ui.NewPage(1280, 800)})
	u.Start()
	t.Cleanup(u.Close)
	return u
}

// onUI runs fn on the UI thread and waits for it.
func onUI(t *testing.T, u *ui.UI, fn func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, u.AccessSync(ctx, fn))
}

func waitForState(t *testing.T, u *ui.UI, v *ProjectView, want ProjectViewState) {
	t.Helper()
	require.Eventually(t, func() bool {
		var st ProjectViewState
		if err := u.AccessSync(context.Background(), func() { st = v.State() }); err != nil {
			return false
		}
		return st == want
	}, 2*time.Second, 5*time.Millisecond)
}

func project(code, title string, total, data int, modified time.Time) domain.Project {
	return domain.Project{
		Code:  code,
		Title: title,
		Status: domain.ProjectStatus{
			Received:      total,
			DataAvailable: data,
			Total:         total,
			Modified:      modified,
		},
	}
}
