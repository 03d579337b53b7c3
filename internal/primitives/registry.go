// Package primitives builds and caches the box meshes bricks and mortar are made of.
package primitives

import (
	"slices"
	"sync"

	"masonry/internal/geom"
)

// Registry maps mesh keys to shared meshes. A mesh is built on first request and reused
// by every later request for the same key, so instanced elements across walls share it.
// Safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	cache map[string]*Mesh
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[string]*Mesh)}
}

// Box returns the cached box mesh for key, building it with size and detail the first time.
func (r *Registry) Box(key string, size geom.Vec3, d Detail) *Mesh {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.cache[key]; ok {
		return m
	}
	m := Box(size, d)
	m.Name = key
	r.cache[key] = m
	return m
}

// Lookup returns the mesh stored under key.
func (r *Registry) Lookup(key string) (*Mesh, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.cache[key]
	return m, ok
}

// Keys returns the cached keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.cache))
	for k := range r.cache {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
