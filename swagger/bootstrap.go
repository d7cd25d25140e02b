package swagger

import (
	"sync/atomic"
	"time"
)

// Handle is the value returned by a Factory for one mounted viewer.
type Handle struct {
	Seq       uint64              `json:"seq"`
	CreatedAt time.Time           `json:"createdAt"`
	Config    ViewerConfiguration `json:"config"`
	Script    []byte              `json:"-"`
}

// Factory builds a viewer from a configuration.
type Factory interface {
	New(cfg ViewerConfiguration) (*Handle, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(cfg ViewerConfiguration) (*Handle, error)

// New calls f(cfg).
func (f FactoryFunc) New(cfg ViewerConfiguration) (*Handle, error) {
	return f(cfg)
}

// Slot holds the most recently created handle. The zero value is empty and
// ready to use.
type Slot struct {
	handle atomic.Pointer[Handle]
}

// DefaultSlot is the process-wide slot used by New. Diagnostic tooling reads
// it the way a browser console reads window.ui.
var DefaultSlot = &Slot{}

// Load returns the stored handle, or nil if nothing was stored yet.
func (s *Slot) Load() *Handle {
	return s.handle.Load()
}

// Store replaces the stored handle.
func (s *Slot) Store(h *Handle) {
	s.handle.Store(h)
}

// Initializer runs the bootstrap step of a page load: it derives the
// specification URL, builds the configuration, calls the factory once and
// stores the result.
type Initializer struct {
	factory Factory
	slot    *Slot
	opts    Options
}

// NewInitializer creates an Initializer. A nil slot means DefaultSlot.
func NewInitializer(factory Factory, slot *Slot, opts Options) *Initializer {
	if slot == nil {
		slot = DefaultSlot
	}
	return &Initializer{
		factory: factory,
		slot:    slot,
		opts:    opts.withDefaults(),
	}
}

// Configuration returns the configuration a page load from loc would use.
func (i *Initializer) Configuration(loc Location) ViewerConfiguration {
	specURL := i.opts.SpecURL
	if specURL == "" {
		specURL = SpecURL(loc, i.opts.SpecPath)
	}
	return NewViewerConfiguration(specURL, i.opts)
}

// Bootstrap performs one page load. Every call invokes the factory again and
// overwrites the slot; factory errors are returned as-is and leave the slot
// untouched.
func (i *Initializer) Bootstrap(loc Location) (*Handle, error) {
	h, err := i.factory.New(i.Configuration(loc))
	if err != nil {
		return nil, err
	}
	i.slot.Store(h)
	return h, nil
}

// Slot returns the slot the initializer writes to.
func (i *Initializer) Slot() *Slot {
	return i.slot
}

// Options returns the effective options, defaults included.
func (i *Initializer) Options() Options {
	return i.opts
}
