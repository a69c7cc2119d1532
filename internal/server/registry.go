package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/alnah/marrow"
)

// registry holds the open views by id.
type registry struct {
	mu    sync.RWMutex
	views map[string]*marrow.View
}

func newRegistry() *registry {
	return &registry{views: make(map[string]*marrow.View)}
}

// add stores view under a fresh random id and returns the id.
func (r *registry) add(view *marrow.View) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[id] = view
	return id
}

func (r *registry) get(id string) (*marrow.View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[id]
	return v, ok
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, id)
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}
