package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/natefinch/atomic"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/tuxedo/log"
)

// TemplateExt is the file extension of the templates rendered by generate.
const TemplateExt = ".template"

// Generate renders every template below a directory and writes each result
// next to its template, without the extension.
type Generate struct {
	Dir      string        `arg:"" default:"."     help:"Directory to search for templates"  type:"existingdir"`
	Watch    bool          `       help:"Render templates again when they change" short:"w"`
	Debounce time.Duration `       default:"100ms" help:"Delay before rendering changed templates"`
}

// Run executes the generate command.
func (g *Generate) Run(ctx context.Context, env *Env) error {
	gen := newGenerator(env)

	templates, err := findTemplates(g.Dir)
	if err != nil {
		return err
	}

	written, err := gen.generate(ctx, templates...)

	log.InfoContext(ctx, "generated templates",
		slog.String("dir", g.Dir),
		slog.Int("templates", len(templates)),
		slog.Int("written", written),
	)

	if err != nil || !g.Watch {
		return err
	}

	return gen.watch(ctx, g.Dir, g.Debounce)
}

// outputPath returns the file a template renders to.
func outputPath(template string) string {
	return strings.TrimSuffix(template, TemplateExt)
}

func isTemplate(path string) bool {
	return strings.HasSuffix(path, TemplateExt) && len(outputPath(filepath.Base(path))) > 0
}

// findTemplates walks dir for template files in lexical order.
func findTemplates(dir string) ([]string, error) {
	var found []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && isTemplate(path) {
			found = append(found, path)
		}

		return nil
	})
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("dir", dir))
	}

	return found, nil
}

// generator renders templates and remembers the content hash of every output
// it has seen so that unchanged outputs are not rewritten.
type generator struct {
	env *Env

	mu   sync.Mutex
	sums map[string]uint64
}

func newGenerator(env *Env) *generator {
	return &generator{env: env, sums: make(map[string]uint64)}
}

// generate renders templates concurrently and reports how many outputs were
// written. Every template is attempted; the first error is returned.
func (g *generator) generate(ctx context.Context, templates ...string) (int, error) {
	var (
		eg      errgroup.Group
		written int
		mu      sync.Mutex
	)

	eg.SetLimit(runtime.GOMAXPROCS(0))

	for _, path := range templates {
		eg.Go(func() error {
			changed, err := g.generateFile(ctx, path)
			if err != nil {
				log.WarnContext(ctx, "template failed", slog.Any("error", err))

				return err
			}

			if changed {
				mu.Lock()
				written++
				mu.Unlock()
			}

			return nil
		})
	}

	err := eg.Wait()

	return written, err
}

func (g *generator) generateFile(ctx context.Context, path string) (bool, error) {
	out, err := g.env.engine().RenderFile(ctx, path, g.env.Vars)
	if err != nil {
		return false, ErrRender.Wrap(err).With(slog.String("template", path))
	}

	dst := outputPath(path)
	sum := xxh3.HashString(out)

	if !g.changed(dst, sum) {
		log.DebugContext(ctx, "output unchanged", slog.String("file", dst))

		return false, nil
	}

	if err := atomic.WriteFile(dst, strings.NewReader(out)); err != nil {
		return false, ErrWriteOutput.Wrap(err).With(slog.String("file", dst))
	}

	g.mu.Lock()
	g.sums[dst] = sum
	g.mu.Unlock()

	log.DebugContext(ctx, "output written",
		slog.String("file", dst),
		slog.Int("bytes", len(out)),
	)

	return true, nil
}

// changed reports whether sum differs from the last output written to dst,
// or from the current content of dst if it was not written by g.
func (g *generator) changed(dst string, sum uint64) bool {
	g.mu.Lock()
	prev, ok := g.sums[dst]
	g.mu.Unlock()

	if !ok {
		data, err := os.ReadFile(dst)
		if err != nil {
			return true
		}

		prev = xxh3.Hash(data)
	}

	return prev != sum
}

// watch renders templates below dir again whenever they are created or
// modified, until ctx is canceled. Events are collected until no new event
// arrives for delay.
func (g *generator) watch(ctx context.Context, dir string, delay time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer w.Close()

	if err := addRecursive(w, dir); err != nil {
		return ErrWatch.Wrap(err).With(slog.String("dir", dir))
	}

	log.InfoContext(ctx, "watching templates", slog.String("dir", dir))

	timer := time.NewTimer(delay)
	timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			g.handle(ctx, w, event, pending)

			if len(pending) > 0 {
				timer.Reset(delay)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", err))

		case <-timer.C:
			templates := make([]string, 0, len(pending))
			for path := range pending {
				templates = append(templates, path)
			}

			clear(pending)

			written, _ := g.generate(ctx, templates...)

			log.InfoContext(ctx, "generated templates",
				slog.Int("templates", len(templates)),
				slog.Int("written", written),
			)
		}
	}
}

func (g *generator) handle(
	ctx context.Context,
	w *fsnotify.Watcher,
	event fsnotify.Event,
	pending map[string]struct{},
) {
	log.TraceContext(ctx, "watch event",
		slog.String("name", event.Name),
		slog.String("op", event.Op.String()),
	)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addRecursive(w, event.Name); err != nil {
				log.WarnContext(ctx, "watch directory failed",
					slog.String("dir", event.Name),
					slog.Any("error", err),
				)
			}

			return
		}
	}

	if !isTemplate(event.Name) || !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) {
		return
	}

	pending[event.Name] = struct{}{}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}

			return err
		}

		if d.IsDir() {
			return w.Add(path)
		}

		return nil
	})
}
