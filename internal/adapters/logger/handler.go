package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

// areaKey is the record attribute rendered as a "[area]" prefix instead of key=value.
const areaKey = "area"

// PrettyHandler is a slog.Handler that produces human-readable, colored lines:
//
//	<icon> [area] message key=value ...
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []string
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	mark := style.Level(r.Level)
	if mark.Icon != "" {
		b.WriteString(mark.Icon + " ")
	}

	fields := append([]string(nil), h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == areaKey && h.group == "" {
			b.WriteString("[" + attr.Value.String() + "] ")
			return true
		}
		fields = append(fields, h.format(attr))
		return true
	})

	b.WriteString(r.Message)
	for _, f := range fields {
		b.WriteString(" " + f)
	}

	styled := h.out.String(b.String()).Foreground(termenv.RGBColor(string(mark.Color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, attr := range attrs {
		c.attrs = append(c.attrs, h.format(attr))
	}
	return c
}

// WithGroup returns a new Handler nesting later attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	if c.group != "" {
		name = c.group + "." + name
	}
	c.group = name
	return c
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: append([]string(nil), h.attrs...),
		group: h.group,
	}
}

func (h *PrettyHandler) format(attr slog.Attr) string {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	return key + "=" + attr.Value.String()
}
