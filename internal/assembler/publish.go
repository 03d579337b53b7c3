package assembler

import (
	"context"
	"sync"

	"masonry/internal/emit"
	"masonry/internal/primitives"
	"masonry/internal/scene"
)

// Regenerate builds req and replaces the scene collection named target with the result.
// Everything the previous pass published under target is removed in the same step. When the
// build fails or is cancelled the scene is left untouched.
func (a *Assembler) Regenerate(ctx context.Context, sc *scene.Scene, target string, req Request) (*Result, error) {
	res, err := a.Build(ctx, req)
	if err != nil {
		return res, err
	}
	objs, meshes := Objects(target, res.Elements)
	removed := sc.Replace(target, objs, meshes)
	a.opts.Logger.Logf("%s: published %d objects, removed %d", target, len(objs), removed)
	return res, nil
}

// Objects translates elements into scene objects. Shared meshes keep their registry key;
// owned meshes are keyed under target so two targets never collide.
func Objects(target string, els []emit.Element) ([]scene.ObjectInstance, map[string]*primitives.Mesh) {
	objs := make([]scene.ObjectInstance, 0, len(els))
	meshes := make(map[string]*primitives.Mesh)
	for _, e := range els {
		key := e.Mesh.Name
		if !e.Shared {
			key = target + "/" + key
		}
		meshes[key] = e.Mesh
		o := scene.ObjectInstance{
			Type:      string(e.Role),
			Facade:    e.Facade.String(),
			Mesh:      key,
			Transform: e.Transform,
		}
		if e.Material != nil {
			o.Material = e.Material.Name
			o.Color = e.Material.Tinted(e.Tint).Hex()
		}
		objs = append(objs, o)
	}
	return objs, meshes
}

// Publisher guards one scene target against overlapping rebuilds. Each build takes a ticket
// from Begin before it starts; only the holder of the newest ticket may publish, so a slow
// build that finishes after a newer one never overwrites it.
type Publisher struct {
	Scene  *scene.Scene
	Target string

	mu  sync.Mutex
	seq uint64
}

// Begin returns the ticket for a build starting now and retires every earlier one.
func (p *Publisher) Begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	return p.seq
}

// Publish replaces the target with res if ticket is still the newest. It reports whether
// the scene changed.
func (p *Publisher) Publish(ticket uint64, res *Result) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ticket != p.seq {
		return false
	}
	objs, meshes := Objects(p.Target, res.Elements)
	p.Scene.Replace(p.Target, objs, meshes)
	return true
}
