// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package interceptor

import (
	"context"
	"sync"
)

// A SuccessFunc handles the value settled by the previous pipeline
// stage. It returns the value to hand to the next stage, or an error
// to put the pipeline onto its failure path.
type SuccessFunc[V any] func(context.Context, V) (V, error)

// A FailureFunc handles the error settled by the previous pipeline
// stage. It may recover by returning a value and a nil error, or keep
// the pipeline on its failure path by returning a non-nil error (which
// need not be the error it was given).
type FailureFunc[V any] func(context.Context, error) (V, error)

// An Entry is one registered interceptor. OnSuccess is never nil.
// OnFailure may be nil, which means failures pass through the entry
// unchanged.
type Entry[V any] struct {
	OnSuccess SuccessFunc[V]
	OnFailure FailureFunc[V]
}

// A Handle identifies a registered interceptor so it can later be
// removed from its registry with Eject.
type Handle int

// A Registry is an ordered collection of interceptors. Its zero value
// is an empty registry ready to use.
//
// Registry is safe for concurrent use by multiple goroutines. A
// Registry must not be copied after first use.
type Registry[V any] struct {
	lock  sync.RWMutex
	slots []*Entry[V]
}

// Use appends an interceptor to the registry and returns its handle.
//
// The handle is equal to the number of interceptors ever registered
// before this one, ejected ones included, so handles increase
// monotonically and are never reused.
//
// Parameter onSuccess must not be nil. Parameter onFailure may be nil.
func (r *Registry[V]) Use(onSuccess SuccessFunc[V], onFailure FailureFunc[V]) Handle {
	if onSuccess == nil {
		panic("pipex/interceptor: nil success handler")
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	h := Handle(len(r.slots))
	r.slots = append(r.slots, &Entry[V]{OnSuccess: onSuccess, OnFailure: onFailure})
	return h
}

// Eject removes the interceptor identified by h. Ejecting a handle
// that is out of range, or that was already ejected, does nothing.
func (r *Registry[V]) Eject(h Handle) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if h < 0 || int(h) >= len(r.slots) {
		return
	}
	r.slots[h] = nil
}

// ForEach calls visit once for each interceptor which has not been
// ejected, in registration order.
//
// ForEach visits a snapshot of the registry taken when it is called,
// so visit may safely call Use or Eject; such changes are not seen by
// the ongoing iteration.
func (r *Registry[V]) ForEach(visit func(Entry[V])) {
	for _, e := range r.snapshot() {
		visit(e)
	}
}

// Len returns the number of interceptors which have not been ejected.
func (r *Registry[V]) Len() int {
	return len(r.snapshot())
}

func (r *Registry[V]) snapshot() []Entry[V] {
	r.lock.RLock()
	defer r.lock.RUnlock()
	active := make([]Entry[V], 0, len(r.slots))
	for _, e := range r.slots {
		if e != nil {
			active = append(active, *e)
		}
	}
	return active
}
