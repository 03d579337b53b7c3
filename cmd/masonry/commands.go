package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"masonry/internal/assembler"
	"masonry/internal/blueprint"
	"masonry/internal/commands"
	"masonry/internal/config"
	"masonry/internal/layout"
	"masonry/internal/preview"
	"masonry/internal/scene"
	"masonry/internal/session"
)

func register(reg *commands.Registry, s *session.Session) {
	gen := flag.NewFlagSet("generate", flag.ContinueOnError)
	genBlueprint := gen.String("blueprint", "blueprints/cottage.yaml", "blueprint file")
	genQuality := gen.String("quality", "", "LOW, MEDIUM, HIGH or ULTRA (default from blueprint or config)")
	genOut := gen.String("out", "", "write the scene as JSON to this file (- for stdout)")
	reg.Register("generate", "build a blueprint and report per-wall results", gen, func() error {
		return generate(s, *genBlueprint, *genQuality, *genOut)
	})

	stats := flag.NewFlagSet("stats", flag.ContinueOnError)
	statsBlueprint := stats.String("blueprint", "blueprints/cottage.yaml", "blueprint file")
	reg.Register("stats", "estimate brick counts without building geometry", stats, func() error {
		return estimate(s, *statsBlueprint, os.Stdout)
	})

	pv := flag.NewFlagSet("preview", flag.ContinueOnError)
	pvBlueprint := pv.String("blueprint", "blueprints/cottage.yaml", "blueprint file")
	pvQuality := pv.String("quality", "", "detail tier")
	pvDir := pv.String("dir", "previews", "output directory")
	pvScale := pv.Float64("scale", float64(preview.DefaultOptions().Scale), "pixels per metre")
	reg.Register("preview", "render one PNG elevation per wall", pv, func() error {
		return renderPreviews(s, *pvBlueprint, *pvQuality, *pvDir, float32(*pvScale))
	})

	presets := flag.NewFlagSet("presets", flag.ContinueOnError)
	reg.Register("presets", "list material presets", presets, func() error {
		listPresets(s, os.Stdout)
		return nil
	})

	cfg := flag.NewFlagSet("config", flag.ContinueOnError)
	cfgWrite := cfg.Bool("write", false, "save the effective preferences to "+config.Path)
	reg.Register("config", "show (or save) the effective preferences", cfg, func() error {
		if *cfgWrite {
			if err := config.Save(config.Path, s.Prefs); err != nil {
				return err
			}
			fmt.Println("saved", config.Path)
		}
		fmt.Printf("%+v\n", s.Prefs)
		return nil
	})
}

func build(s *session.Session, path, quality string) (*blueprint.Document, *assembler.Assembler, assembler.Request, error) {
	doc, err := blueprint.Load(path)
	if err != nil {
		return nil, nil, assembler.Request{}, err
	}
	a, req, err := s.Prepare(doc, quality)
	if err != nil {
		return nil, nil, assembler.Request{}, err
	}
	return doc, a, req, nil
}

func generate(s *session.Session, path, quality, out string) error {
	doc, a, req, err := build(s, path, quality)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sc := scene.New()
	res, err := a.Regenerate(ctx, sc, doc.Name, req)
	if err != nil {
		return err
	}
	fmt.Printf("%s at %s: %d objects, %d meshes\n", doc.Name, req.Quality, sc.Len(), sc.MeshCount())
	for _, st := range res.Walls {
		fmt.Println(" ", st)
	}
	for _, w := range res.Warnings {
		fmt.Println("  warning:", w)
	}
	switch out {
	case "":
		return nil
	case "-":
		return sc.WriteJSON(os.Stdout)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := sc.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func estimate(s *session.Session, path string, w io.Writer) error {
	doc, err := blueprint.Load(path)
	if err != nil {
		return err
	}
	walls, err := doc.WallSpecs()
	if err != nil {
		return err
	}
	opts, err := s.Prefs.EmitOptions()
	if err != nil {
		return err
	}
	opts = doc.Options(opts)
	area, err := doc.Area()
	if err != nil {
		return err
	}
	pr := message.NewPrinter(language.English)
	total := 0
	for _, spec := range walls {
		length := spec.Length
		if !s.Prefs.FullCorners {
			length -= spec.Thickness
		}
		n := layout.Estimate(length, spec.Height, opts.Units, opts.Bond)
		total += n
		pr.Fprintf(w, "%-6s %6.2f x %5.2f m  %7d bricks\n", spec.Facade, length, spec.Height, n)
	}
	pr.Fprintf(w, "total  %.2f m2 of wall face, about %d bricks (%s bond, openings not subtracted)\n",
		area, total, opts.Bond)
	return nil
}

func renderPreviews(s *session.Session, path, quality, dir string, scale float32) error {
	doc, a, req, err := build(s, path, quality)
	if err != nil {
		return err
	}
	res, err := a.Build(context.Background(), req)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	opts := preview.DefaultOptions()
	opts.Scale = scale
	for _, st := range res.Walls {
		if st.Err != nil {
			fmt.Println("skipped", st)
			continue
		}
		opts.Label = fmt.Sprintf("%s %s %s", doc.Name, st.Facade, req.Quality)
		img := preview.Elevation(res.Wall(st.Facade), opts)
		name := filepath.Join(dir, fmt.Sprintf("%s_%s.png", doc.Name, strings.ToLower(st.Facade.String())))
		if err := preview.Save(name, img); err != nil {
			return err
		}
		fmt.Println("wrote", name)
	}
	return nil
}

func listPresets(s *session.Session, w io.Writer) {
	def := s.Presets.Default().Name
	for _, name := range s.Presets.Names() {
		r, err := s.Presets.Lookup(name)
		if err != nil {
			continue
		}
		mark := " "
		if name == def {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-16s %s  %s\n", mark, r.Name, r.Hex, r.Description)
	}
}
