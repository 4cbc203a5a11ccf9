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

// palette holds the styles of a pretty handler. Styles are bound to the
// handler's writer, so output to a non-terminal carries no escape codes.
type palette struct {
	key     lipgloss.Style
	str     lipgloss.Style
	number  lipgloss.Style
	boolean lipgloss.Style
	time    lipgloss.Style
	message lipgloss.Style
	levels  map[Level]lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)

	return palette{
		key:     r.NewStyle().Foreground(lipgloss.Color("8")),
		str:     r.NewStyle().Foreground(lipgloss.Color("6")),
		number:  r.NewStyle().Foreground(lipgloss.Color("3")),
		boolean: r.NewStyle().Foreground(lipgloss.Color("5")),
		time:    r.NewStyle().Foreground(lipgloss.Color("4")),
		message: r.NewStyle().Bold(true),
		levels: map[Level]lipgloss.Style{
			LevelTrace: r.NewStyle().Foreground(lipgloss.Color("8")),
			LevelDebug: r.NewStyle().Foreground(lipgloss.Color("4")),
			LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("2")),
			LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
			LevelError: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

// prettyHandler writes one colorized key=value line per record.
type prettyHandler struct {
	opts   slog.HandlerOptions
	style  *palette
	mu     *sync.Mutex
	w      io.Writer
	prefix string // rendered attrs from WithAttrs
	groups []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	style := makePalette(w)

	return &prettyHandler{
		opts:  *opts,
		style: &style,
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, nil, slog.Time(slog.TimeKey, r.Time))
	}

	h.writeAttr(buf, nil, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, nil, slog.String(
				slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line),
			))
		}
	}

	h.writeAttr(buf, nil, slog.String(slog.MessageKey, r.Message))

	if h.prefix != "" {
		buf.WriteByte(' ')
		buf.WriteString(h.prefix)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.groups, a)

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

	buf := new(bytes.Buffer)
	buf.WriteString(h.prefix)

	for _, a := range attrs {
		h.writeAttr(buf, h.groups, a)
	}

	c := *h
	c.prefix = buf.String()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
	}

	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(groups[:len(groups):len(groups)], a.Key)
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, sub, ga)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	buf.WriteString(h.style.key.Render(key))
	buf.WriteByte('=')

	if len(groups) == 0 {
		switch a.Key {
		case slog.LevelKey:
			h.writeLevel(buf, a.Value)

			return

		case slog.MessageKey:
			buf.WriteString(h.style.message.Render(a.Value.String()))

			return
		}
	}

	h.writeValue(buf, a.Value)
}

func (h *prettyHandler) writeLevel(buf *bytes.Buffer, v slog.Value) {
	var name string

	level := LevelInfo

	switch v.Kind() {
	case slog.KindAny:
		if l, ok := v.Any().(slog.Level); ok {
			level = Level(l)
		}

		name = strings.ToUpper(level.String())

	default:
		// Already replaced by ReplaceAttr.
		name = v.String()
		level = ParseLevel(name)
	}

	style, ok := h.style.levels[level]
	if !ok {
		style = h.style.str
	}

	buf.WriteString(style.Render(name))
}

func (h *prettyHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		buf.WriteString(h.style.str.Render(s))

	case slog.KindInt64:
		buf.WriteString(h.style.number.Render(strconv.FormatInt(v.Int64(), 10)))

	case slog.KindUint64:
		buf.WriteString(h.style.number.Render(strconv.FormatUint(v.Uint64(), 10)))

	case slog.KindFloat64:
		buf.WriteString(h.style.number.Render(
			strconv.FormatFloat(v.Float64(), 'g', -1, 64),
		))

	case slog.KindBool:
		buf.WriteString(h.style.boolean.Render(strconv.FormatBool(v.Bool())))

	case slog.KindDuration:
		buf.WriteString(h.style.number.Render(v.Duration().String()))

	case slog.KindTime:
		buf.WriteString(h.style.time.Render(v.Time().Format(time.RFC3339)))

	default:
		if err, ok := v.Any().(error); ok {
			buf.WriteString(h.style.levels[LevelError].Render(strconv.Quote(err.Error())))

			return
		}

		buf.WriteString(fmt.Sprint(v.Any()))
	}
}
