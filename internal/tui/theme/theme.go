// Package theme holds the color presets and styles of the panebar TUI.
package theme

import (
	"slices"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Preset names.
const (
	Dark    = "dark"
	Light   = "light"
	Dracula = "dracula"
	Nord    = "nord"
	Gruvbox = "gruvbox"
)

// Theme is a palette plus the styles derived from it.
type Theme struct {
	Name    string
	Palette Palette

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabFill     lipgloss.Style
	Title       lipgloss.Style
	Content     lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	HelpSep     lipgloss.Style
}

// New derives a theme from p.
func New(name string, p Palette) *Theme {
	return &Theme{
		Name:    name,
		Palette: p,

		TabActive: lipgloss.NewStyle().
			Foreground(p.Primary).
			Background(p.Selection).
			Bold(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Padding(0, 1),
		TabFill: lipgloss.NewStyle().Foreground(p.Border),

		Title: lipgloss.NewStyle().Foreground(p.Secondary).Bold(true).MarginBottom(1),
		Content: lipgloss.NewStyle().
			Foreground(p.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		Status:      lipgloss.NewStyle().Foreground(p.TextSubtle),
		StatusError: lipgloss.NewStyle().Foreground(p.Warning).Bold(true),

		HelpKey:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		HelpDesc: lipgloss.NewStyle().Foreground(p.TextMuted),
		HelpSep:  lipgloss.NewStyle().Foreground(p.TextSubtle),
	}
}

// HuhTheme returns a form theme matching t.
func (t *Theme) HuhTheme() *huh.Theme {
	ht := huh.ThemeBase()
	p := t.Palette

	ht.Focused.Title = ht.Focused.Title.Foreground(p.Primary).Bold(true)
	ht.Focused.Description = ht.Focused.Description.Foreground(p.TextMuted)
	ht.Focused.Base = ht.Focused.Base.BorderForeground(p.Primary)
	ht.Focused.SelectedOption = ht.Focused.SelectedOption.Foreground(p.Primary)
	ht.Focused.SelectSelector = ht.Focused.SelectSelector.Foreground(p.Primary)
	ht.Blurred.Title = ht.Blurred.Title.Foreground(p.TextMuted)

	return ht
}

// Registry maps preset names to themes.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]*Theme
}

var (
	global     *Registry
	globalOnce sync.Once
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// NewRegistry returns a registry holding the built-in presets.
func NewRegistry() *Registry {
	return &Registry{themes: map[string]*Theme{
		Dark:    New(Dark, DarkPalette()),
		Light:   New(Light, LightPalette()),
		Dracula: New(Dracula, DraculaPalette()),
		Nord:    New(Nord, NordPalette()),
		Gruvbox: New(Gruvbox, GruvboxPalette()),
	}}
}

// Get returns the theme named name.
func (r *Registry) Get(name string) (*Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[name]
	return t, ok
}

// Resolve returns the theme named name, or the dark preset.
func (r *Registry) Resolve(name string) *Theme {
	if t, ok := r.Get(name); ok {
		return t
	}
	t, _ := r.Get(Dark)
	return t
}

// Register adds or replaces a theme.
func (r *Registry) Register(t *Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[t.Name] = t
}

// Names returns the registered theme names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
