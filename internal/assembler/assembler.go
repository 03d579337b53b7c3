// Package assembler runs the per-wall pipeline (surface, layout, opening filter, emission)
// for a set of walls, merges the results in facade order, binds materials and publishes the
// outcome into a scene.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"masonry/internal/diag"
	"masonry/internal/emit"
	"masonry/internal/layout"
	"masonry/internal/logger"
	"masonry/internal/material"
	"masonry/internal/primitives"
	"masonry/internal/wall"
)

// Options configures an Assembler. Zero fields take the defaults of DefaultOptions.
type Options struct {
	Emit emit.Options
	// Workers bounds how many walls are built at once.
	Workers int
	// FullCorners builds every wall to its full length. By default each wall stops one
	// thickness short of its trailing corner, which the next wall builds.
	FullCorners bool
	Presets     *material.Registry
	Logger      *logger.Logger
	// Progress is called once per finished wall. Calls are serialized.
	Progress func(Progress)
}

func DefaultOptions() Options {
	return Options{
		Emit:    emit.DefaultOptions(),
		Workers: min(runtime.NumCPU(), len(wall.Order)),
	}
}

// Request is one generation pass.
type Request struct {
	Walls     []wall.Spec
	Openings  []wall.OpeningSpec
	Quality   emit.Quality
	Materials material.Plan
}

// Progress reports a finished wall.
type Progress struct {
	Done   int
	Total  int
	Status Status
}

// Status is the outcome of one wall. Err is set when the wall produced nothing: invalid input,
// a degenerate face or cancellation before it started.
type Status struct {
	Facade   wall.Facade
	Stats    emit.Stats
	Warnings []diag.Warning
	Err      error
	// Start and End delimit the wall's elements in Result.Elements.
	Start, End int
}

// Result owns the elements of a pass until they are published.
type Result struct {
	Elements  []emit.Element
	Walls     []Status
	Warnings  []diag.Warning
	Materials material.BindReport
}

// Wall returns the elements built for facade f.
func (r *Result) Wall(f wall.Facade) []emit.Element {
	for _, s := range r.Walls {
		if s.Facade == f {
			return r.Elements[s.Start:s.End]
		}
	}
	return nil
}

// Totals sums the per-wall statistics.
func (r *Result) Totals() emit.Stats {
	var t emit.Stats
	for _, s := range r.Walls {
		t.Candidates += s.Stats.Candidates
		t.Excluded += s.Stats.Excluded
		t.Displaced += s.Stats.Displaced
		t.Bricks += s.Stats.Bricks
		t.Lintels += s.Stats.Lintels
		t.Mortar += s.Stats.Mortar
	}
	return t
}

type Assembler struct {
	opts   Options
	meshes *primitives.Registry
	binder *material.Binder
}

func New(opts Options) *Assembler {
	def := DefaultOptions()
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if opts.Emit.Units == (layout.Units{}) {
		opts.Emit = def.Emit
	}
	if opts.Presets == nil {
		opts.Presets = material.DefaultRegistry()
	}
	meshes := opts.Emit.Meshes
	if meshes == nil {
		meshes = primitives.NewRegistry()
		opts.Emit.Meshes = meshes
	}
	return &Assembler{opts: opts, meshes: meshes, binder: material.NewBinder(opts.Presets)}
}

// Meshes is the registry instanced master meshes are cached in.
func (a *Assembler) Meshes() *primitives.Registry { return a.meshes }

// Build runs every wall of req. Walls are handed to up to Workers goroutines in facade order;
// each writes only its own buffer, and the buffers are merged in facade order afterwards, so
// the result does not depend on scheduling. Cancellation is checked before each wall starts.
// The error is non-nil only for an empty or ambiguous wall set, or when ctx was cancelled.
func (a *Assembler) Build(ctx context.Context, req Request) (*Result, error) {
	specs, err := ordered(req.Walls)
	if err != nil {
		return nil, err
	}
	opts := a.opts.Emit
	opts.Quality = req.Quality
	strategy := emit.ForQuality(opts)

	outs := make([]*emit.Output, len(specs))
	statuses := make([]Status, len(specs))
	jobs := make(chan int)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for range min(a.opts.Workers, len(specs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				st := Status{Facade: specs[i].Facade}
				if err := ctx.Err(); err != nil {
					st.Err = err
				} else {
					outs[i], st = a.buildWall(specs[i], req.Openings, strategy)
				}
				statuses[i] = st
				mu.Lock()
				done++
				if a.opts.Progress != nil {
					a.opts.Progress(Progress{Done: done, Total: len(specs), Status: st})
				}
				mu.Unlock()
			}
		}()
	}
	for i := range specs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	res := a.merge(outs, statuses)
	if err := ctx.Err(); err != nil {
		a.opts.Logger.Logf("build cancelled: %v", err)
		return res, err
	}

	rep, warns := a.binder.Bind(emit.Targets(res.Elements), req.Materials)
	res.Materials = rep
	res.Warnings = append(res.Warnings, warns...)
	for _, w := range warns {
		a.opts.Logger.Warn(w)
	}
	t := res.Totals()
	a.opts.Logger.Logf("built %d walls at %s: %d bricks, %d lintels, %d mortar, %d warnings",
		len(specs), req.Quality, t.Bricks, t.Lintels, t.Mortar, len(res.Warnings))
	return res, nil
}

func (a *Assembler) buildWall(spec wall.Spec, openings []wall.OpeningSpec, strategy emit.Strategy) (*emit.Output, Status) {
	st := Status{Facade: spec.Facade}
	w, err := wall.New(spec)
	if err != nil {
		st.Err = err
		return nil, st
	}
	surf, warns := wall.NewSurface(w, openings, !a.opts.FullCorners)
	st.Warnings = warns
	out, err := strategy.Emit(surf)
	if err != nil {
		st.Err = err
		// Degenerate walls are skipped with a warning.
		if errors.Is(err, diag.ErrGeometryConstruction) {
			st.Warnings = append(st.Warnings, diag.Warn(spec.Facade.String(), err))
		}
		return nil, st
	}
	st.Stats = out.Stats
	st.Warnings = append(st.Warnings, out.Warnings...)
	return out, st
}

// merge concatenates the per-wall buffers in facade order.
func (a *Assembler) merge(outs []*emit.Output, statuses []Status) *Result {
	n := 0
	for _, o := range outs {
		if o != nil {
			n += len(o.Elements)
		}
	}
	res := &Result{Elements: make([]emit.Element, 0, n)}
	for i, st := range statuses {
		st.Start = len(res.Elements)
		if outs[i] != nil {
			res.Elements = append(res.Elements, outs[i].Elements...)
		}
		st.End = len(res.Elements)
		res.Walls = append(res.Walls, st)
		res.Warnings = append(res.Warnings, st.Warnings...)

		switch {
		case st.Err != nil:
			a.opts.Logger.Logf("%s: skipped: %v", st.Facade, st.Err)
		default:
			a.opts.Logger.Logf("%s: %s, %d bricks, %d lintels, %d mortar, %d excluded, %d displaced",
				st.Facade, st.Stats.Strategy, st.Stats.Bricks, st.Stats.Lintels, st.Stats.Mortar,
				st.Stats.Excluded, st.Stats.Displaced)
		}
		for _, w := range st.Warnings {
			a.opts.Logger.Warn(w)
		}
	}
	return res
}

// ordered sorts specs into facade order and rejects sets that cannot be assembled.
func ordered(specs []wall.Spec) ([]wall.Spec, error) {
	if len(specs) == 0 {
		return nil, diag.Invalid("no walls to build")
	}
	seen := make(map[wall.Facade]bool, len(specs))
	for _, s := range specs {
		if !s.Facade.Valid() {
			return nil, diag.Invalid("wall without a facade")
		}
		if seen[s.Facade] {
			return nil, diag.Invalid("duplicate wall for facade %s", s.Facade)
		}
		seen[s.Facade] = true
	}
	out := slices.Clone(specs)
	slices.SortFunc(out, func(a, b wall.Spec) int { return int(a.Facade) - int(b.Facade) })
	return out, nil
}

// String renders a status line.
func (s Status) String() string {
	if s.Err != nil {
		return fmt.Sprintf("%s: %v", s.Facade, s.Err)
	}
	return fmt.Sprintf("%s: %d elements (%d bricks, %d lintels, %d mortar)",
		s.Facade, s.Stats.Total(), s.Stats.Bricks, s.Stats.Lintels, s.Stats.Mortar)
}
