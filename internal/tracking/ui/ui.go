// Package ui is the small server-side UI runtime the dashboard views run on:
// one update loop per session, a page that reports viewport changes, a shared
// background worker pool and a handful of stateful widgets.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrClosed = errors.New("ui closed")
)

const defaultQueueSize = 64

// UI serialises all view mutations of one session onto a single goroutine.
// Code running inside Access/AccessSync callbacks is "on the UI thread" and
// may touch view state freely; any other goroutine must go through Access.
type UI struct {
	page    *Page
	workers *Workers
	logger  *slog.Logger

	tasks  chan func()
	ctx    context.Context
	cancel context.CancelFunc

	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

type Options struct {
	QueueSize int
	Logger    *slog.Logger
	Workers   *Workers
	Page      *Page
}

// New creates a UI bound to ctx. Cancelling ctx closes the UI.
func New(ctx context.Context, opt Options) *UI {
	if opt.QueueSize <= 0 {
		opt.QueueSize = defaultQueueSize
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Workers == nil {
		opt.Workers = NewWorkers(4, opt.Logger)
	}
	if opt.Page == nil {
		opt.Page = NewPage(0, 0)
	}

	cctx, cancel := context.WithCancel(ctx)
	return &UI{
		page:    opt.Page,
		workers: opt.Workers,
		logger:  opt.Logger,
		tasks:   make(chan func(), opt.QueueSize),
		ctx:     cctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Start launches the update loop. Calling it more than once is harmless.
func (u *UI) Start() {
	u.startOnce.Do(func() {
		go u.loop()
	})
}

func (u *UI) loop() {
	defer close(u.done)
	for {
		select {
		case <-u.ctx.Done():
			return
		case task := <-u.tasks:
			u.run(task)
		}
	}
}

func (u *UI) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("ui task panicked", "panic", r)
		}
	}()
	task()
}

// Access schedules fn on the UI thread without waiting for it.
func (u *UI) Access(fn func()) error {
	select {
	case <-u.ctx.Done():
		return ErrClosed
	default:
	}
	select {
	case u.tasks <- fn:
		return nil
	case <-u.ctx.Done():
		return ErrClosed
	}
}

// AccessSync runs fn on the UI thread and waits until it has finished or ctx
// is done. If ctx ends first, fn may still run later. It must not be called
// from the UI thread itself.
func (u *UI) AccessSync(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := u.Access(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("ui access: %w", ctx.Err())
	case <-u.done:
		return ErrClosed
	}
}

// Close stops the loop and waits for the running task to finish.
// Pending tasks are dropped.
func (u *UI) Close() {
	u.closeOnce.Do(func() {
		u.cancel()
	})
	u.startOnce.Do(func() { close(u.done) })
	<-u.done
}

// Context is cancelled when the UI closes.
func (u *UI) Context() context.Context { return u.ctx }

func (u *UI) Page() *Page { return u.page }

func (u *UI) Workers() *Workers { return u.workers }

func (u *UI) Logger() *slog.Logger { return u.logger }
