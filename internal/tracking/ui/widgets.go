package ui

import (
	"context"
	"errors"
	"io"
	"slices"
)

var (
	ErrNothingToDownload = errors.New("nothing to download")
	ErrUnknownItem       = errors.New("value is not one of the items")
)

// Button is a clickable action. Clicks are ignored while the button is hidden
// or disabled.
type Button struct {
	Caption     string
	Description string
	visible     bool
	enabled     bool
	listeners   []func()
}

func NewButton(caption string) *Button {
	return &Button{Caption: caption, visible: true, enabled: true}
}

func (b *Button) Visible() bool { return b.visible }
func (b *Button) SetVisible(v bool) { b.visible = v }
func (b *Button) Enabled() bool { return b.enabled }
func (b *Button) SetEnabled(e bool) { b.enabled = e }
func (b *Button) AddClickListener(fn func()) { b.listeners = append(b.listeners, fn) }

// Click fires the click listeners and reports whether the click was accepted.
func (b *Button) Click() bool {
	if !b.visible || !b.enabled {
		return false
	}
	for _, fn := range b.listeners {
		fn()
	}
	return true
}

// TextField holds free text entered by the user.
type TextField struct {
	Placeholder string
	value       string
	listeners   []func(string)
}

func NewTextField(placeholder string) *TextField {
	return &TextField{Placeholder: placeholder}
}

func (f *TextField) Value() string { return f.value }

// SetValue stores v and notifies listeners when it differs from the old value.
func (f *TextField) SetValue(v string) {
	if v == f.value {
		return
	}
	f.value = v
	for _, fn := range f.listeners {
		fn(v)
	}
}

func (f *TextField) Clear() { f.SetValue("") }

func (f *TextField) AddValueChangeListener(fn func(string)) {
	f.listeners = append(f.listeners, fn)
}

// ComboBox is a dropdown over a fixed item list. The zero T is "no selection".
type ComboBox[T comparable] struct {
	Caption   string
	items     []T
	value     T
	listeners []func(T)
}

func NewComboBox[T comparable](caption string, items ...T) *ComboBox[T] {
	return &ComboBox[T]{Caption: caption, items: slices.Clone(items)}
}

func (c *ComboBox[T]) Items() []T { return slices.Clone(c.items) }

func (c *ComboBox[T]) SetItems(items ...T) {
	c.items = slices.Clone(items)
	var zero T
	if c.value != zero && !slices.Contains(c.items, c.value) {
		_ = c.SetValue(zero)
	}
}

func (c *ComboBox[T]) Value() T { return c.value }

// SetValue selects v, which must be one of the items or the zero value.
func (c *ComboBox[T]) SetValue(v T) error {
	var zero T
	if v != zero && !slices.Contains(c.items, v) {
		return ErrUnknownItem
	}
	if v == c.value {
		return nil
	}
	c.value = v
	for _, fn := range c.listeners {
		fn(v)
	}
	return nil
}

func (c *ComboBox[T]) Clear() {
	var zero T
	_ = c.SetValue(zero)
}

func (c *ComboBox[T]) AddValueChangeListener(fn func(T)) {
	c.listeners = append(c.listeners, fn)
}

// Spinner is the loading indicator.
type Spinner struct {
	visible bool
}

func (s *Spinner) Visible() bool { return s.visible }
func (s *Spinner) SetVisible(v bool) { s.visible = v }

// StreamResource is a named file whose content is produced only when opened.
type StreamResource struct {
	Filename string
	open     func(ctx context.Context) (io.ReadCloser, error)
}

func NewStreamResource(filename string, open func(ctx context.Context) (io.ReadCloser, error)) *StreamResource {
	return &StreamResource{Filename: filename, open: open}
}

func (r *StreamResource) Open(ctx context.Context) (io.ReadCloser, error) {
	return r.open(ctx)
}

// Downloader binds at most one StreamResource to a button.
type Downloader struct {
	target *StreamResource
}

// SetTarget replaces the current download target. Passing nil clears it.
func (d *Downloader) SetTarget(r *StreamResource) { d.target = r }

func (d *Downloader) Target() *StreamResource { return d.target }

// Open starts the download of the current target.
func (d *Downloader) Open(ctx context.Context) (string, io.ReadCloser, error) {
	if d.target == nil {
		return "", nil, ErrNothingToDownload
	}
	rc, err := d.target.Open(ctx)
	if err != nil {
		return "", nil, err
	}
	return d.target.Filename, rc, nil
}
