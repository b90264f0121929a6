package registry

import (
	"sort"

	"github.com/vango-dev/craft/pkg/component"
)

// ChangeKind identifies a registry mutation.
type ChangeKind int

const (
	ChangeRegistered ChangeKind = iota
	ChangeReplaced
	ChangeUnregistered
)

// String returns the change name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeRegistered:
		return "registered"
	case ChangeReplaced:
		return "replaced"
	case ChangeUnregistered:
		return "unregistered"
	default:
		return "unknown"
	}
}

// Change is delivered to listeners after each mutation.
type Change struct {
	Kind ChangeKind
	Name string
	Type *component.Type
}

// OnChange subscribes fn to registry mutations. Listeners run on the
// mutating goroutine, after the registry lock is released. The returned
// func unsubscribes.
func (r *Registry) OnChange(fn func(Change)) (cancel func()) {
	r.mu.Lock()
	id := r.nextListener
	r.nextListener++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *Registry) listenersLocked() []func(Change) {
	if len(r.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Change), len(ids))
	for i, id := range ids {
		out[i] = r.listeners[id]
	}
	return out
}

func notify(listeners []func(Change), c Change) {
	for _, fn := range listeners {
		fn(c)
	}
}

