package lang

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/tuxedo/pattern"
	"github.com/ardnew/tuxedo/value"
)

// Render renders text with a new [Context] holding the engine globals and
// vars.
func (e *Engine) Render(
	ctx context.Context,
	text string,
	vars map[string]any,
) (string, error) {
	return e.RenderContext(ctx, text, e.NewContext(vars))
}

// RenderContext renders text in c. Variables and macros defined by the
// template remain in c afterwards; block definitions do not.
//
// Rendering never aborts. The returned error is nil unless the engine is
// strict and diagnostics were recorded, or ctx was canceled.
func (e *Engine) RenderContext(
	ctx context.Context,
	text string,
	c *Context,
) (string, error) {
	if c == nil {
		c = e.NewContext(nil)
	}

	r := e.newRun(ctx, c)

	c.resetBlocks()

	e.logger.DebugContext(r.ctx, "render start", slog.Int("bytes", len(text)))

	out := r.resolve(r.render(trimMarkers(text)))

	e.logger.DebugContext(r.ctx, "render done",
		slog.Int("bytes", len(out)),
		slog.Int("diagnostics", len(r.diags)),
	)

	return out, r.err()
}

// RenderReader reads the whole template from rd and renders it.
func (e *Engine) RenderReader(
	ctx context.Context,
	rd io.Reader,
	vars map[string]any,
) (string, error) {
	ra := readahead.NewReader(rd)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadTemplate.Wrap(err)
	}

	return e.Render(ctx, string(data), vars)
}

// RenderFile renders the template stored at path. Imports are resolved
// relative to the directory containing path first, then by the configured
// loader.
func (e *Engine) RenderFile(
	ctx context.Context,
	path string,
	vars map[string]any,
) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", ErrReadTemplate.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	local := DirLoader{Dir: filepath.Dir(path)}

	eng := e.With(WithLoader(local))
	if e.loader != nil {
		eng = e.With(WithLoader(SearchLoader{local, e.loader}))
	}

	out, err := eng.RenderReader(ctx, f, vars)
	if err != nil {
		return out, WrapError(err).With(slog.String("path", path))
	}

	return out, nil
}

// render interprets the tags of text.
func (r *run) render(text string) string {
	if !r.enter() {
		return ""
	}
	defer r.leave()

	var sb strings.Builder

	sb.Grow(len(text))

	for i := 0; i < len(text); {
		k := strings.IndexByte(text[i:], '{')
		if k < 0 {
			sb.WriteString(text[i:])

			break
		}

		sb.WriteString(text[i : i+k])
		i += k

		if r.interrupted() {
			sb.WriteString(text[i:])

			break
		}

		if out, end, ok := r.tag(text, i); ok {
			sb.WriteString(out)
			i = end

			continue
		}

		sb.WriteByte('{')
		i++
	}

	return sb.String()
}

// tag tries every tag at offset at. A region that is shaped like a tag but
// cannot be interpreted renders as empty text.
func (r *run) tag(text string, at int) (out string, end int, ok bool) {
	for _, t := range r.e.tags {
		m, ok := t.pattern.MatchPrefix(text, at, func(m *pattern.Match) bool {
			s, ok := t.render(r, m)
			if ok {
				out = s
			}

			return ok
		})
		if ok {
			r.trace("tag matched", slog.String("tag", t.name), slog.Int("offset", at))

			return out, m.End, true
		}
	}

	for _, t := range r.e.tags {
		if m, ok := t.pattern.MatchPrefix(text, at, pattern.Structural); ok {
			r.trace("tag rejected", slog.String("tag", t.name), slog.Int("offset", at))

			return "", m.End, true
		}
	}

	return "", 0, false
}

// resolve replaces block placeholders with the output of the last renderer
// registered for each block. Blocks defined while resolving are resolved in
// the following pass.
func (r *run) resolve(text string) string {
	for pass := 0; strings.Contains(text, placeholderOpen); pass++ {
		if pass == r.e.maxDepth {
			r.report(ErrMaxDepthExceeded.With(slog.String("stage", "blocks")))

			return strings.ReplaceAll(text, placeholderOpen, "")
		}

		var sb strings.Builder

		for {
			start, end, name, ok := nextPlaceholder(text)
			if !ok {
				sb.WriteString(text)

				break
			}

			sb.WriteString(text[:start])

			chain := r.c.blockChain(name)
			if s, ok := r.renderBlock(name, len(chain)-1, nil); ok {
				sb.WriteString(s)
			}

			text = text[end:]
		}

		text = sb.String()
	}

	return text
}

// renderBlock renders renderer index of the named block chain. The renderer
// sees the variables captured at its definition, unless a visible variable of
// the same name exists, and then args.
func (r *run) renderBlock(
	name string,
	index int,
	args map[string]value.Value,
) (string, bool) {
	chain := r.c.blockChain(name)
	if index < 0 || index >= len(chain) {
		return "", false
	}

	b := chain[index]

	r.c.Push()
	defer r.c.Pop()

	for k, v := range b.vars {
		if _, ok := r.c.Get(k); !ok {
			r.c.Set(k, v)
		}
	}

	for k, v := range args {
		r.c.Set(k, v)
	}

	r.c.innermost().block = &blockFrame{name: name, index: index}
	r.c.touch()

	r.trace("block", slog.String("name", name), slog.Int("index", index))

	return r.render(b.body), true
}
