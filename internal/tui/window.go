package tui

import (
	"fmt"
	"strings"

	"panebar/internal/toolbar"
	"panebar/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Renderer is pane content that draws itself into a box.
type Renderer interface {
	Render(width, height int) string
}

// Sizer is pane content with a preferred body height. The window resizes to
// it during a transition.
type Sizer interface {
	PreferredHeight() int
}

// Titled is pane content with a heading.
type Titled interface {
	Title() string
}

// Window is the content area below the tab bar. During a transition its
// height moves from the old content's size to the new one over a fixed number
// of frames.
type Window struct {
	theme *theme.Theme

	width     int
	maxHeight int

	content toolbar.Content
	frames  int
	frame   int
	from    int
	to      int
	swaps   int
}

// NewWindow creates an empty window animating over frames ticks.
func NewWindow(th *theme.Theme, frames int) *Window {
	w := &Window{theme: th, frames: max(frames, 0), maxHeight: 1}
	w.frame = w.frames
	return w
}

var _ toolbar.Window = (*Window)(nil)

// SetContentWithTransition replaces the content and starts a resize
// animation. The new content is visible immediately.
func (w *Window) SetContentWithTransition(c toolbar.Content) {
	w.from = w.Height()
	w.content = c
	w.to = w.preferred(c)
	w.frame = 0
	w.swaps++
}

// Tick advances the animation and reports whether it is still running.
func (w *Window) Tick() bool {
	if w.frame < w.frames {
		w.frame++
	}
	return w.Animating()
}

// Animating reports whether a transition is in progress.
func (w *Window) Animating() bool {
	return w.frame < w.frames
}

// Height returns the current body height.
func (w *Window) Height() int {
	if w.content == nil {
		return 0
	}
	if !w.Animating() {
		return w.to
	}
	return w.from + (w.to-w.from)*w.frame/w.frames
}

// SetSize sets the area available to the window, borders included.
func (w *Window) SetSize(width, height int) {
	w.width = width
	w.maxHeight = max(height-w.chrome(), 1)
	w.to = w.preferred(w.content)
	if !w.Animating() {
		w.from = w.to
	}
}

// SetTheme restyles the window.
func (w *Window) SetTheme(th *theme.Theme) {
	w.theme = th
}

// Content returns the displayed content.
func (w *Window) Content() toolbar.Content {
	return w.content
}

// Swaps counts content replacements.
func (w *Window) Swaps() int {
	return w.swaps
}

// chrome is the number of rows used by the border and title.
func (w *Window) chrome() int {
	rows := w.theme.Content.GetVerticalFrameSize()
	if t, ok := w.content.(Titled); ok && t.Title() != "" {
		rows += 1 + w.theme.Title.GetVerticalMargins()
	}
	return rows
}

func (w *Window) preferred(c toolbar.Content) int {
	if c == nil {
		return 0
	}
	h := w.maxHeight
	if s, ok := c.(Sizer); ok {
		h = s.PreferredHeight()
	}
	return min(max(h, 1), w.maxHeight)
}

// View renders the window.
func (w *Window) View() string {
	if w.content == nil {
		return ""
	}
	inner := max(w.width-w.theme.Content.GetHorizontalFrameSize(), 1)
	height := w.Height()

	var body string
	switch c := w.content.(type) {
	case Renderer:
		body = c.Render(inner, height)
	case fmt.Stringer:
		body = c.String()
	default:
		body = fmt.Sprint(c)
	}
	body = fitLines(body, height)

	if t, ok := w.content.(Titled); ok && t.Title() != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, w.theme.Title.Render(t.Title()), body)
	}
	return w.theme.Content.Width(max(w.width-w.theme.Content.GetHorizontalBorderSize(), 1)).Render(body)
}

// fitLines pads or clips s to exactly n lines.
func fitLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
