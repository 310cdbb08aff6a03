package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of the pretty handler. Styles are bound to the
// renderer of the output, so no escape sequences are written to writers that
// are not colour terminals.
type palette struct {
	key, text, number, boolean, duration, time, source lipgloss.Style
	trace, debug, info, warn, err                      lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		key:      fg("8"),
		text:     fg("6"),
		number:   fg("3"),
		boolean:  fg("5"),
		duration: fg("5"),
		time:     fg("8"),
		source:   fg("8").Italic(true),
		trace:    fg("4"),
		debug:    fg("4").Bold(true),
		info:     fg("2").Bold(true),
		warn:     fg("3").Bold(true),
		err:      fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes one line per record:
//
//	15:04:05 WARN  message key=value group.key=value
//
// Attributes added with WithAttrs are formatted once and reused.
type prettyHandler struct {
	opts       slog.HandlerOptions
	mu         *sync.Mutex
	w          io.Writer
	formatTime FormatTime
	style      palette
	prefix     string
	attrs      []byte
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, formatTime FormatTime) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		mu:         &sync.Mutex{},
		w:          w,
		formatTime: formatTime,
		style:      newPalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	lowest := slog.LevelInfo
	if h.opts.Level != nil {
		lowest = h.opts.Level.Level()
	}

	return level >= lowest
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if s := h.formatTime(r.Time); s != "" {
			buf.WriteString(h.style.time.Render(s))
			buf.WriteByte(' ')
		}
	}

	level := strings.ToUpper(Level(r.Level).String())
	buf.WriteString(h.style.level(r.Level).Render(fmt.Sprintf("%-5s", level)))
	buf.WriteByte(' ')

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			buf.WriteString(h.style.source.Render(
				fmt.Sprintf("%s:%d", shortFile(src.File), src.Line)))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(r.Message)
	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h

	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))
	for _, a := range attrs {
		c.writeAttr(buf, h.prefix, a)
	}

	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(buf, inner, g)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.style.key.Render(prefix + a.Key + "="))
	h.writeValue(buf, a.Value)
}

func (h *prettyHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		buf.WriteString(h.style.text.Render(s))

	case slog.KindInt64:
		buf.WriteString(h.style.number.Render(strconv.FormatInt(v.Int64(), 10)))

	case slog.KindUint64:
		buf.WriteString(h.style.number.Render(strconv.FormatUint(v.Uint64(), 10)))

	case slog.KindFloat64:
		buf.WriteString(h.style.number.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64)))

	case slog.KindBool:
		buf.WriteString(h.style.boolean.Render(strconv.FormatBool(v.Bool())))

	case slog.KindDuration:
		buf.WriteString(h.style.duration.Render(v.Duration().String()))

	case slog.KindTime:
		buf.WriteString(h.style.time.Render(v.Time().Format(time.RFC3339)))

	default:
		s := fmt.Sprint(v.Any())
		if strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		buf.WriteString(h.style.text.Render(s))
	}
}

// shortFile trims a source path to its final two elements.
func shortFile(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return path
	}

	if j := strings.LastIndexByte(path[:i], '/'); j >= 0 {
		return path[j+1:]
	}

	return path
}
