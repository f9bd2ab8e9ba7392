package tui

import (
	"fmt"
	"strings"

	"panebar/internal/toolbar"
	"panebar/internal/tui/theme"

	"github.com/mattn/go-runewidth"
)

// TabBar is a one-line toolbar. Flexible-space items absorb the spare width,
// so a bar with one at each end keeps its tabs centered.
type TabBar struct {
	id     string
	window *Window
	theme  *theme.Theme
	width  int

	items    []toolbar.Item
	selected string
	zones    []zone
}

// zone is the column range [start, end) of a rendered tab.
type zone struct {
	start, end int
	id         string
}

// NewTabBar creates a tab bar identified by id whose content goes to w.
func NewTabBar(id string, w *Window, th *theme.Theme) *TabBar {
	return &TabBar{id: id, window: w, theme: th}
}

var (
	_ toolbar.Toolbar    = (*TabBar)(nil)
	_ toolbar.ItemLister = (*TabBar)(nil)
)

// Identifier implements toolbar.Toolbar.
func (t *TabBar) Identifier() string { return t.id }

// Window implements toolbar.Toolbar.
func (t *TabBar) Window() toolbar.Window {
	if t.window == nil {
		return nil
	}
	return t.window
}

// SetItems implements toolbar.Toolbar.
func (t *TabBar) SetItems(items []toolbar.Item) {
	t.items = items
	t.layout()
}

// SetSelectedItem implements toolbar.Toolbar.
func (t *TabBar) SetSelectedItem(id string) {
	t.selected = id
}

// ImageNamed implements toolbar.Toolbar with the theme's glyphs.
func (t *TabBar) ImageNamed(name string) toolbar.Image {
	return theme.IconOr(name)
}

// Items returns the current items.
func (t *TabBar) Items() []toolbar.Item { return t.items }

// Selected returns the highlighted item identifier.
func (t *TabBar) Selected() string { return t.selected }

// SetWidth sets the bar width in cells.
func (t *TabBar) SetWidth(width int) {
	t.width = width
	t.layout()
}

// SetTheme restyles the bar.
func (t *TabBar) SetTheme(th *theme.Theme) {
	t.theme = th
	t.layout()
}

// ItemAt returns the item under column x.
func (t *TabBar) ItemAt(x int) (string, bool) {
	for _, z := range t.zones {
		if x >= z.start && x < z.end {
			return z.id, true
		}
	}
	return "", false
}

// ItemAtIndex returns the n-th selectable item, counting from zero.
func (t *TabBar) ItemAtIndex(n int) (string, bool) {
	if n < 0 || n >= len(t.zones) {
		return "", false
	}
	return t.zones[n].id, true
}

// caption is the unstyled tab text.
func caption(it toolbar.Item) string {
	label := it.Label
	if img, ok := it.Image.(string); ok && img != "" {
		return img + " " + label
	}
	if it.Image != nil {
		return fmt.Sprint(it.Image) + " " + label
	}
	return label
}

// labels returns the captions, truncated when the bar is too narrow.
func (t *TabBar) labels() []string {
	var (
		out   []string
		total int
		tabs  int
	)
	pad := t.theme.TabInactive.GetHorizontalFrameSize()
	for _, it := range t.items {
		if it.Placeholder {
			out = append(out, "")
			continue
		}
		c := caption(it)
		out = append(out, c)
		total += runewidth.StringWidth(c) + pad
		tabs++
	}
	if t.width <= 0 || tabs == 0 || total <= t.width {
		return out
	}

	limit := max(t.width/tabs-pad, 1)
	for i, it := range t.items {
		if !it.Placeholder {
			out[i] = runewidth.Truncate(out[i], limit, "…")
		}
	}
	return out
}

// layout computes the click zones for the current items and width.
func (t *TabBar) layout() {
	t.zones = t.zones[:0]
	if t.theme == nil {
		return
	}
	labels := t.labels()
	pad := t.theme.TabInactive.GetHorizontalFrameSize()
	fills := t.fillWidths(labels)

	x, f := 0, 0
	for i, it := range t.items {
		if it.Placeholder {
			x += fills[f]
			f++
			continue
		}
		w := runewidth.StringWidth(labels[i]) + pad
		t.zones = append(t.zones, zone{start: x, end: x + w, id: it.Identifier})
		x += w
	}
}

// fillWidths splits the spare width between placeholders, left first.
func (t *TabBar) fillWidths(labels []string) []int {
	pad := t.theme.TabInactive.GetHorizontalFrameSize()
	used, n := 0, 0
	for i, it := range t.items {
		if it.Placeholder {
			n++
			continue
		}
		used += runewidth.StringWidth(labels[i]) + pad
	}
	fills := make([]int, n)
	spare := t.width - used
	if n == 0 || spare <= 0 {
		return fills
	}
	for i := range fills {
		fills[i] = spare / n
	}
	fills[n-1] += spare % n
	return fills
}

// View renders the bar.
func (t *TabBar) View() string {
	if len(t.items) == 0 {
		return ""
	}
	labels := t.labels()
	fills := t.fillWidths(labels)

	var sb strings.Builder
	used, f := 0, 0
	for i, it := range t.items {
		if it.Placeholder {
			sb.WriteString(t.theme.TabFill.Render(strings.Repeat(" ", fills[f])))
			used += fills[f]
			f++
			continue
		}
		style := t.theme.TabInactive
		if it.Identifier == t.selected {
			style = t.theme.TabActive
		}
		sb.WriteString(style.Render(labels[i]))
		used += runewidth.StringWidth(labels[i]) + style.GetHorizontalFrameSize()
	}
	if rest := t.width - used; rest > 0 {
		sb.WriteString(t.theme.TabFill.Render(strings.Repeat("─", rest)))
	}
	return sb.String()
}
