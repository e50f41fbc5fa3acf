package ui

import (
	"slices"
	"sync"
)

// Registration is returned by listener registrations. Remove unsubscribes the
// listener; calling it more than once is a no-op.
type Registration interface {
	Remove()
}

type registration struct {
	once   sync.Once
	remove func()
}

func (r *registration) Remove() {
	r.once.Do(r.remove)
}

// ResizeEvent carries the new browser window size in pixels.
type ResizeEvent struct {
	Width  int
	Height int
}

type ResizeListener func(ResizeEvent)

// Page models the browser window of a session.
type Page struct {
	mu        sync.Mutex
	width     int
	height    int
	nextID    int
	listeners map[int]ResizeListener
}

func NewPage(width, height int) *Page {
	return &Page{
		width:     width,
		height:    height,
		listeners: make(map[int]ResizeListener),
	}
}

func (p *Page) Width() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width
}

func (p *Page) Height() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.height
}

// AddResizeListener subscribes l to window resize notifications.
func (p *Page) AddResizeListener(l ResizeListener) Registration {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = l

	return &registration{remove: func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}}
}

func (p *Page) ListenerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

// Resize records the new window size and notifies listeners in registration
// order. Call it on the UI thread.
func (p *Page) Resize(width, height int) {
	p.mu.Lock()
	p.width = width
	p.height = height
	ids := make([]int, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	snapshot := make([]ResizeListener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		snapshot = append(snapshot, p.listeners[id])
	}
	p.mu.Unlock()

	ev := ResizeEvent{Width: width, Height: height}
	for _, l := range snapshot {
		l(ev)
	}
}
