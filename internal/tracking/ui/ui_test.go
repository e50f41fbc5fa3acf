package ui

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI(t *testing.T) *UI {
	t.Helper()
	u := New(context.Background(), Options{QueueSize: 8})
	u.Start()
	t.Cleanup(u.Close)
	return u
}

func TestUI_TasksRunSequentially(t *testing.T) {
	u := newTestUI(t)

	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		i := i
		require.NoError(t, u.Access(func() {
			defer wg.Done()
			order = append(order, i)
		}))
	}
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestUI_AccessSync(t *testing.T) {
	u := newTestUI(t)

	ran := false
	err := u.AccessSync(context.Background(), func() { ran = true })
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestUI_AccessSyncTimeout(t *testing.T) {
	u := newTestUI(t)

	block := make(chan struct{})
	require.NoError(t, u.Access(func() { <-block }))
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := u.AccessSync(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUI_PanicDoesNotStopLoop(t *testing.T) {
	u := newTestUI(t)

	require.NoError(t, u.AccessSync(context.Background(), func() { panic("boom") }))

	ok := false
	require.NoError(t, u.AccessSync(context.Background(), func() { ok = true }))
	assert.True(t, ok)
}

func TestUI_Close(t *testing.T) {
	u := New(context.Background(), Options{})
	u.Start()
	u.Close()
	u.Close()

	assert.ErrorIs(t, u.Access(func() {}), ErrClosed)
	assert.ErrorIs(t, u.AccessSync(context.Background(), func() {}), ErrClosed)
	assert.Error(t, u.Context().Err())
}

func TestUI_CloseWithoutStart(t *testing.T) {
	u := New(context.Background(), Options{})
	done := make(chan struct{})
	go func() {
		u.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close blocked on a UI that was never started")
	}
}

func TestPage_ResizeListeners(t *testing.T) {
	p := NewPage(800, 600)

	var got []ResizeEvent
	reg := p.AddResizeListener(func(e ResizeEvent) { got = append(got, e) })
	assert.Equal(t, 1, p.ListenerCount())

	p.Resize(1024, 768)
	assert.Equal(t, []ResizeEvent{{Width: 1024, Height: 768}}, got)
	assert.Equal(t, 1024, p.Width())
	assert.Equal(t, 768, p.Height())

	reg.Remove()
	reg.Remove()
	assert.Equal(t, 0, p.ListenerCount())

	p.Resize(640, 480)
	assert.Len(t, got, 1)
}

func TestWorkers_BoundsConcurrency(t *testing.T) {
	w := NewWorkers(2, nil)

	var running, peak int32
	release := make(chan struct{})
	for i := 0; i < 5; i++ {
		require.NoError(t, w.Submit(context.Background(), func(context.Context) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&running, -1)
		}))
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&running) == 2 }, time.Second, 5*time.Millisecond)
	close(release)
	w.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&peak))
}

func TestWorkers_SubmitWithDoneContext(t *testing.T) {
	w := NewWorkers(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Submit(ctx, func(context.Context) { t.Fatal("must not run") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestButton_ClickOnlyWhenEnabledAndVisible(t *testing.T) {
	b := NewButton("Go")
	clicks := 0
	b.AddClickListener(func() { clicks++ })

	assert.True(t, b.Click())
	b.SetEnabled(false)
	assert.False(t, b.Click())
	b.SetEnabled(true)
	b.SetVisible(false)
	assert.False(t, b.Click())

	assert.Equal(t, 1, clicks)
}

func TestTextField_NotifiesOnChange(t *testing.T) {
	f := NewTextField("Search")
	var got []string
	f.AddValueChangeListener(func(v string) { got = append(got, v) })

	f.SetValue("a")
	f.SetValue("a")
	f.Clear()

	assert.Equal(t, []string{"a", ""}, got)
}

func TestComboBox(t *testing.T) {
	c := NewComboBox("Sort", "x", "y")
	var got []string
	c.AddValueChangeListener(func(v string) { got = append(got, v) })

	require.NoError(t, c.SetValue("y"))
	assert.ErrorIs(t, c.SetValue("z"), ErrUnknownItem)
	assert.Equal(t, "y", c.Value())

	c.SetItems("x")
	assert.Equal(t, "", c.Value(), "value dropped with its item")

	assert.Equal(t, []string{"y", ""}, got)
}

func TestDownloader(t *testing.T) {
	var d Downloader

	_, _, err := d.Open(context.Background())
	assert.ErrorIs(t, err, ErrNothingToDownload)

	opened := 0
	d.SetTarget(NewStreamResource("a.txt", func(context.Context) (io.ReadCloser, error) {
		opened++
		return io.NopCloser(strings.NewReader("hello")), nil
	}))
	assert.Equal(t, 0, opened, "content is produced lazily")

	name, rc, err := d.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "a.txt", name)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, 1, opened)

	d.SetTarget(nil)
	assert.Nil(t, d.Target())
}
