// Package registry maps component names to component types and dotted
// subcomponent names to their owners' handlers.
//
// A Registry is an explicit value; Default is the process-wide instance
// used by the craft package. Outside development mode a name can only be
// registered once. In development mode re-registration replaces the entry,
// which is how hot reload swaps component implementations.
//
// The subcomponent table is derived from the component table: registering
// a type adds one "Parent.Short" entry per declared subcomponent and
// unregistering removes all of them.
package registry

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	cerrors "github.com/vango-dev/craft/internal/errors"
	"github.com/vango-dev/craft/pkg/component"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrAlreadyRegistered = cerrors.New("C001")
	ErrNotRegistered     = cerrors.New("C002")
	ErrInvalidType       = cerrors.New("C003")
)

// Subcomponent describes a registered "Parent.Short" entry.
type Subcomponent struct {
	Parent    *component.Type
	ShortName string
	FullName  string
	Handler   component.Handler
}

// Registry holds component and subcomponent tables.
type Registry struct {
	mu            sync.RWMutex
	components    map[string]*component.Type
	subcomponents map[string]*Subcomponent
	dev           bool
	listeners     map[int]func(Change)
	nextListener  int
	logger        *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithDevMode enables re-registration.
func WithDevMode(on bool) Option {
	return func(r *Registry) {
		r.dev = on
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		components:    make(map[string]*component.Type),
		subcomponents: make(map[string]*Subcomponent),
		listeners:     make(map[int]func(Change)),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default is the process-wide registry.
var Default = New()

// SetDevMode toggles development mode.
func (r *Registry) SetDevMode(on bool) {
	r.mu.Lock()
	r.dev = on
	r.mu.Unlock()
}

// DevMode reports whether re-registration is allowed.
func (r *Registry) DevMode() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dev
}

// Register adds t under name, or under t.Name when name is empty, along
// with one entry per declared subcomponent.
func (r *Registry) Register(t *component.Type, name string) error {
	if t != nil && name == "" {
		name = t.Name
	}
	if err := t.Validate(); err != nil {
		return cerrors.New("C003").WithSubject(name).Wrap(err)
	}
	if name == "" || strings.Contains(name, ".") || strings.HasPrefix(name, component.ShorthandPrefix) {
		return cerrors.New("C003").WithSubject(name).
			WithDetailf("Component names must be non-empty and must not contain %q.", ".")
	}

	r.mu.Lock()
	_, exists := r.components[name]
	if exists && !r.dev {
		r.mu.Unlock()
		return cerrors.New("C001").WithSubject(name).
			WithSuggestion("Unregister the existing component first, or enable development mode")
	}
	if exists {
		r.removeSubcomponentsLocked(name)
	}
	r.components[name] = t
	for short, h := range t.Subcomponents {
		full := component.FullName(name, short)
		r.subcomponents[full] = &Subcomponent{
			Parent:    t,
			ShortName: short,
			FullName:  full,
			Handler:   h,
		}
	}
	listeners := r.listenersLocked()
	r.mu.Unlock()

	kind := ChangeRegistered
	if exists {
		kind = ChangeReplaced
		r.logger.Info("component replaced", "component", name)
	} else {
		r.logger.Debug("component registered", "component", name, "subcomponents", len(t.Subcomponents))
	}
	notify(listeners, Change{Kind: kind, Name: name, Type: t})
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// package init.
func (r *Registry) MustRegister(t *component.Type, name string) {
	if err := r.Register(t, name); err != nil {
		panic(err)
	}
}

// Unregister removes name and all of its subcomponent entries.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	t, ok := r.components[name]
	if !ok {
		r.mu.Unlock()
		return cerrors.New("C002").WithSubject(name)
	}
	delete(r.components, name)
	r.removeSubcomponentsLocked(name)
	listeners := r.listenersLocked()
	r.mu.Unlock()

	r.logger.Debug("component unregistered", "component", name)
	notify(listeners, Change{Kind: ChangeUnregistered, Name: name, Type: t})
	return nil
}

// Get returns the type registered under name, or nil.
func (r *Registry) Get(name string) *component.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.components[name]
}

// GetSubcomponent returns the entry for a "Parent.Short" name, or nil.
func (r *Registry) GetSubcomponent(fullName string) *Subcomponent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.subcomponents[fullName]
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subcomponents returns the entries registered for name, sorted by full
// name.
func (r *Registry) Subcomponents(name string) []*Subcomponent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prefix := name + "."
	var out []*Subcomponent
	for full, sc := range r.subcomponents {
		if strings.HasPrefix(full, prefix) {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

func (r *Registry) removeSubcomponentsLocked(name string) {
	prefix := name + "."
	for full := range r.subcomponents {
		if strings.HasPrefix(full, prefix) {
			delete(r.subcomponents, full)
		}
	}
}
