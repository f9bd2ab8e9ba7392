package panes

import (
	"errors"
	"fmt"
	"strings"

	"panebar/internal/toolbar"

	"github.com/charmbracelet/lipgloss"
)

// Built-in view names.
const (
	ViewText = "text"
	ViewList = "list"
)

// ViewFactory builds pane content from a definition.
type ViewFactory func(Spec) (toolbar.Content, error)

// DefaultViews returns the built-in view factories.
func DefaultViews() map[string]ViewFactory {
	return map[string]ViewFactory{
		ViewText: newTextView,
		ViewList: newListView,
	}
}

// TextView shows a title and a wrapped body.
type TextView struct {
	Heading string
	Body    string
	Height  int
}

func newTextView(spec Spec) (toolbar.Content, error) {
	return &TextView{Heading: spec.Title, Body: strings.TrimSpace(spec.Body), Height: spec.Height}, nil
}

// Title returns the heading shown above the view.
func (v *TextView) Title() string { return v.Heading }

// Render wraps the body to width and clips it to height.
func (v *TextView) Render(width, height int) string {
	return clip(lipgloss.NewStyle().Width(width).Render(v.Body), height)
}

// PreferredHeight is the declared height, or the body's line count.
func (v *TextView) PreferredHeight() int {
	if v.Height > 0 {
		return v.Height
	}
	return strings.Count(v.Body, "\n") + 1
}

// ListView shows a bulleted list.
type ListView struct {
	Heading string
	Items   []string
	Height  int
}

func newListView(spec Spec) (toolbar.Content, error) {
	if len(spec.Items) == 0 {
		return nil, errors.New("list view needs items")
	}
	return &ListView{Heading: spec.Title, Items: spec.Items, Height: spec.Height}, nil
}

// Title returns the heading shown above the view.
func (v *ListView) Title() string { return v.Heading }

// Render lists the items, one per line.
func (v *ListView) Render(width, height int) string {
	var sb strings.Builder
	style := lipgloss.NewStyle().MaxWidth(width)
	for i, item := range v.Items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(style.Render(fmt.Sprintf("• %s", item)))
	}
	return clip(sb.String(), height)
}

// PreferredHeight is the declared height, or one line per item.
func (v *ListView) PreferredHeight() int {
	if v.Height > 0 {
		return v.Height
	}
	return len(v.Items)
}

func clip(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
