package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

// CharmHandler renders slog records through charmbracelet/log.
type CharmHandler struct {
	writer io.Writer
	opts   CharmHandlerOptions
	logger *charmlog.Logger
	attrs  []slog.Attr
	groups []string
}

// CharmHandlerOptions configures a CharmHandler.
type CharmHandlerOptions struct {
	Level      slog.Leveler
	NoColor    bool
	TimeFormat string
	ShowCaller bool
	Prefix     string
}

var levelColors = map[charmlog.Level]string{
	charmlog.DebugLevel: "63",
	charmlog.InfoLevel:  "42",
	charmlog.WarnLevel:  "214",
	charmlog.ErrorLevel: "196",
}

var levelLabels = map[charmlog.Level]string{
	charmlog.DebugLevel: "DEBUG",
	charmlog.InfoLevel:  "INFO ",
	charmlog.WarnLevel:  "WARN ",
	charmlog.ErrorLevel: "ERROR",
}

func styles(noColor bool) *charmlog.Styles {
	s := charmlog.DefaultStyles()
	for lvl, label := range levelLabels {
		st := lipgloss.NewStyle().SetString(label).Bold(true)
		if !noColor {
			st = st.Foreground(lipgloss.Color(levelColors[lvl]))
		}
		s.Levels[lvl] = st
	}
	if noColor {
		s.Key = lipgloss.NewStyle()
		s.Value = lipgloss.NewStyle()
		s.Prefix = lipgloss.NewStyle()
		return s
	}
	s.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	s.Value = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	s.Timestamp = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	s.Prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	return s
}

// NewCharmHandler creates a handler writing to w.
func NewCharmHandler(w io.Writer, opts *CharmHandlerOptions) *CharmHandler {
	h := &CharmHandler{writer: w}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	if h.opts.TimeFormat == "" {
		h.opts.TimeFormat = time.TimeOnly
	}
	h.logger = h.newCharm()
	return h
}

func (h *CharmHandler) newCharm() *charmlog.Logger {
	l := charmlog.NewWithOptions(h.writer, charmlog.Options{
		ReportCaller:    h.opts.ShowCaller,
		ReportTimestamp: true,
		TimeFormat:      h.opts.TimeFormat,
		Prefix:          h.opts.Prefix,
		Level:           charmLevel(h.opts.Level.Level()),
	})
	l.SetStyles(styles(h.opts.NoColor))
	return l
}

// Enabled implements slog.Handler.
func (h *CharmHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle implements slog.Handler.
func (h *CharmHandler) Handle(_ context.Context, r slog.Record) error {
	kvs := make([]any, 0, (len(h.attrs)+r.NumAttrs())*2)
	add := func(a slog.Attr) bool {
		if k, v, ok := h.flatten(a); ok {
			kvs = append(kvs, k, v)
		}
		return true
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(add)

	h.logger.Log(charmLevel(r.Level), r.Message, kvs...)
	return nil
}

// flatten qualifies a's key with the open groups and folds nested groups
// into a single "k=v k=v" value.
func (h *CharmHandler) flatten(a slog.Attr) (string, any, bool) {
	if a.Key == "" && a.Value.Kind() != slog.KindGroup {
		return "", nil, false
	}
	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}

	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		return key, display(v), true
	}
	members := v.Group()
	if len(members) == 0 {
		return "", nil, false
	}
	parts := make([]string, 0, len(members))
	for _, m := range members {
		if m.Key == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", m.Key, display(m.Value.Resolve())))
	}
	return key, strings.Join(parts, " "), true
}

// WithAttrs implements slog.Handler.
func (h *CharmHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.attrs = append(c.attrs, attrs...)
	return c
}

// WithGroup implements slog.Handler.
func (h *CharmHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.groups = append(c.groups, name)
	return c
}

func (h *CharmHandler) clone() *CharmHandler {
	return &CharmHandler{
		writer: h.writer,
		opts:   h.opts,
		logger: h.logger,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

func display(v slog.Value) any {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	default:
		return v.Any()
	}
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level >= slog.LevelError:
		return charmlog.ErrorLevel
	case level >= slog.LevelWarn:
		return charmlog.WarnLevel
	case level >= slog.LevelInfo:
		return charmlog.InfoLevel
	default:
		return charmlog.DebugLevel
	}
}
