// Package scene holds generated objects in named collections. Publishing a collection replaces
// its previous contents in one step, and meshes no object refers to any more are dropped.
package scene

import (
	"encoding/json"
	"io"
	"slices"
	"sync"

	"masonry/internal/geom"
	"masonry/internal/primitives"
)

// ObjectInstance is one placed object. Mesh is a key into the scene's mesh table.
type ObjectInstance struct {
	Type      string    `json:"type"`
	Facade    string    `json:"facade,omitempty"`
	Mesh      string    `json:"mesh"`
	Transform geom.Mat4 `json:"transform"`
	Material  string    `json:"material,omitempty"`
	Color     string    `json:"color,omitempty"`
}

// Collection is a published batch of objects. Generation counts how often it was replaced.
type Collection struct {
	Name       string           `json:"name"`
	Generation int              `json:"generation"`
	Objects    []ObjectInstance `json:"objects"`
}

// Scene is safe for concurrent use. Readers see either the old or the new contents of a
// collection, never a mix.
type Scene struct {
	mu          sync.RWMutex
	collections map[string]*Collection
	meshes      map[string]*primitives.Mesh
	refs        map[string]int
}

func New() *Scene {
	return &Scene{
		collections: make(map[string]*Collection),
		meshes:      make(map[string]*primitives.Mesh),
		refs:        make(map[string]int),
	}
}

// Replace publishes objs as collection name, removing whatever the collection held before.
// meshes holds the meshes objs refer to; keys the scene already knows are overwritten.
// It returns the number of objects removed.
func (s *Scene) Replace(name string, objs []ObjectInstance, meshes map[string]*primitives.Mesh) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range objs {
		if m, ok := meshes[o.Mesh]; ok {
			s.meshes[o.Mesh] = m
		}
		s.refs[o.Mesh]++
	}
	gen := 1
	removed := 0
	if old, ok := s.collections[name]; ok {
		removed = len(old.Objects)
		gen = old.Generation + 1
		s.release(old.Objects)
	}
	s.collections[name] = &Collection{Name: name, Generation: gen, Objects: slices.Clone(objs)}
	return removed
}

// Remove deletes a collection and returns how many objects it held.
func (s *Scene) Remove(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.collections[name]
	if !ok {
		return 0
	}
	delete(s.collections, name)
	s.release(old.Objects)
	return len(old.Objects)
}

func (s *Scene) release(objs []ObjectInstance) {
	for _, o := range objs {
		s.refs[o.Mesh]--
		if s.refs[o.Mesh] <= 0 {
			delete(s.refs, o.Mesh)
			delete(s.meshes, o.Mesh)
		}
	}
}

// Collection returns a copy of the named collection.
func (s *Scene) Collection(name string) (Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return Collection{}, false
	}
	out := *c
	out.Objects = slices.Clone(c.Objects)
	return out, true
}

// Names lists collections in sorted order.
func (s *Scene) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namesLocked()
}

// Len is the number of objects across all collections.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.collections {
		n += len(c.Objects)
	}
	return n
}

func (s *Scene) Mesh(key string) (*primitives.Mesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meshes[key]
	return m, ok
}

// MeshCount is the number of meshes still referenced by some object.
func (s *Scene) MeshCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meshes)
}

// Each calls fn for every object with its mesh, collection by collection in name order.
// fn must not call back into the scene.
func (s *Scene) Each(fn func(o ObjectInstance, m *primitives.Mesh)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.namesLocked() {
		for _, o := range s.collections[n].Objects {
			fn(o, s.meshes[o.Mesh])
		}
	}
}

type document struct {
	Collections []Collection                `json:"collections"`
	Meshes      map[string]*primitives.Mesh `json:"meshes"`
}

// WriteJSON exports every collection and the meshes they use.
func (s *Scene) WriteJSON(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := document{Meshes: s.meshes, Collections: []Collection{}}
	for _, n := range s.namesLocked() {
		doc.Collections = append(doc.Collections, *s.collections[n])
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (s *Scene) namesLocked() []string {
	names := make([]string, 0, len(s.collections))
	for n := range s.collections {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
