package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"masonry/internal/assembler"
	"masonry/internal/blueprint"
	"masonry/internal/config"
	"masonry/internal/emit"
	"masonry/internal/scene"
	"masonry/internal/session"
	"masonry/internal/viewer"
)

// qualityKeys select a tier and regenerate.
var qualityKeys = map[int32]emit.Quality{
	rl.KeyOne:   emit.Low,
	rl.KeyTwo:   emit.Medium,
	rl.KeyThree: emit.High,
	rl.KeyFour:  emit.Ultra,
}

// regenerator rebuilds the blueprint in the background. A new request cancels the one in
// flight; the scene keeps the last published result until a build succeeds, and a build
// that was overtaken by a newer one is never published.
type regenerator struct {
	s   *session.Session
	doc *blueprint.Document
	pub *assembler.Publisher

	mu      sync.Mutex
	cancel  context.CancelFunc
	status  string
	quality string
}

func (r *regenerator) start(quality string) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.quality = quality
	r.status = "building..."
	ticket := r.pub.Begin()
	r.mu.Unlock()

	go func() {
		defer cancel()
		msg := r.build(ctx, ticket, quality)
		r.mu.Lock()
		defer r.mu.Unlock()
		if ctx.Err() == nil {
			r.status = msg
		}
	}()
}

func (r *regenerator) build(ctx context.Context, ticket uint64, quality string) string {
	a, req, err := r.s.Prepare(r.doc, quality)
	if err != nil {
		r.s.Log.Logf("viewer: %v", err)
		return err.Error()
	}
	res, err := a.Build(ctx, req)
	if err != nil {
		r.s.Log.Logf("viewer: %v", err)
		return err.Error()
	}
	if !r.pub.Publish(ticket, res) {
		r.s.Log.Logf("viewer: dropped %s build, a newer one started", req.Quality)
		return "superseded"
	}
	t := res.Totals()
	return fmt.Sprintf("%s %s: %d elements, %d warnings", r.doc.Name, req.Quality, t.Total(), len(res.Warnings))
}

// again rebuilds at the last requested quality.
func (r *regenerator) again() {
	r.mu.Lock()
	q := r.quality
	r.mu.Unlock()
	r.start(q)
}

func (r *regenerator) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return []string{r.status, "R rebuild  1-4 quality  G grid"}
}

func main() {
	path := flag.String("blueprint", "blueprints/cottage.yaml", "blueprint file")
	quality := flag.String("quality", "", "LOW, MEDIUM, HIGH or ULTRA")
	flag.Parse()

	s, err := session.Open(config.Path, session.EnvFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "masonry-viewer:", err)
		os.Exit(1)
	}
	doc, err := blueprint.Load(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "masonry-viewer:", err)
		os.Exit(1)
	}

	sc := scene.New()
	regen := &regenerator{s: s, doc: doc, pub: &assembler.Publisher{Scene: sc, Target: doc.Name}}
	regen.start(*quality)

	v := viewer.New(sc)
	update := func() {
		v.Update()
		if rl.IsKeyPressed(rl.KeyR) {
			regen.again()
		}
		for key, q := range qualityKeys {
			if rl.IsKeyPressed(key) {
				regen.start(q.String())
			}
		}
		v.Sync()
	}
	draw := func() {
		v.Draw()
		lines := append(regen.lines(), fmt.Sprintf("%d objects, %d meshes on GPU", sc.Len(), v.Meshes()))
		viewer.Overlay(lines...)
	}
	viewer.Run("masonry - "+doc.Name, update, draw, v.Close)
}
