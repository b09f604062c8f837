// Package render provides the render command as a library: scene
// files are loaded, outlined and written as SVG or PNG.
package render

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/cmd/bubblesets/internal/load"
	"github.com/paulhankin/bubblesets/paths"
	"github.com/paulhankin/bubblesets/surface"
	"github.com/rustyoz/svg"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoInput   = zerr.New("no scene files matched")
	ErrBadFormat = zerr.New("unsupported output format")
)

type Config struct {
	// Inputs are scene files or doublestar globs.
	Inputs []string
	Out    string
	Format string

	// Force recomputes every outline from scratch.
	Force bool
	// Check re-reads written SVG files with an independent parser.
	Check bool
	// Backdrop draws the nodes and edges under the outlines.
	Backdrop bool
	Scale    float64
	Jobs     int

	Options bubbleset.Options
}

type encoder interface {
	bubbleset.Surface
	Encode(w io.Writer) error
}

// Files expands the inputs, dropping duplicates.
func Files(inputs []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, in := range inputs {
		matches, err := doublestar.FilepathGlob(in)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid glob pattern"), "pattern", in)
		}
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, err
			}
			if !seen[abs] {
				seen[abs] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return nil, zerr.With(ErrNoInput, "inputs", strings.Join(inputs, " "))
	}
	return files, nil
}

// Render renders every input file, concurrently.
func Render(ctx context.Context, cfg *Config) error {
	if cfg.Format != "svg" && cfg.Format != "png" {
		return zerr.With(ErrBadFormat, "format", cfg.Format)
	}
	files, err := Files(cfg.Inputs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return zerr.Wrap(err, "failed to create output directory")
	}
	eg, ctx := errgroup.WithContext(ctx)
	if cfg.Jobs > 0 {
		eg.SetLimit(cfg.Jobs)
	}
	for _, f := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return renderFile(cfg, f)
		})
	}
	return eg.Wait()
}

// OutputName returns the file an input is rendered to.
func OutputName(cfg *Config, in string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return filepath.Join(cfg.Out, base+"."+cfg.Format)
}

func renderFile(cfg *Config, in string) error {
	g, err := load.Scene(in)
	if err != nil {
		return err
	}
	var backdrop func() []paths.Layer
	if cfg.Backdrop {
		backdrop = g.Backdrop
	}
	var s encoder
	if cfg.Format == "png" {
		s = surface.NewRaster(backdrop, cfg.Scale)
	} else {
		s = surface.NewSVG(backdrop)
	}
	c := bubbleset.NewCollection(g, s, bubbleset.WithDefaults(cfg.Options))
	defer c.Destroy()
	if err := load.Outlines(g, c); err != nil {
		return zerr.With(err, "file", in)
	}
	if err := c.UpdateAll(cfg.Force); err != nil {
		return zerr.With(err, "file", in)
	}

	out := OutputName(cfg, in)
	if err := write(out, s); err != nil {
		return err
	}
	if cfg.Check && cfg.Format == "svg" {
		if err := check(out); err != nil {
			return err
		}
	}
	slog.Info("rendered", "in", in, "out", out, "outlines", len(c.Outlines()))
	return nil
}

func write(name string, s encoder) error {
	f, err := os.Create(name)
	if err != nil {
		return zerr.Wrap(err, "failed to open output file")
	}
	err = s.Encode(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write output"), "file", name)
	}
	return nil
}

func check(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := svg.ParseSvgFromReader(f, name, 1.0); err != nil {
		return zerr.With(zerr.Wrap(err, "written svg does not parse"), "file", name)
	}
	return nil
}
