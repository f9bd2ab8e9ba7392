package tui

import (
	"strings"
	"testing"
	"testing/fstest"

	"panebar/internal/config"
	"panebar/internal/logger"
	"panebar/internal/metrics"
	"panebar/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

const testPanes = `
panes:
  - identifier: General
    tag: 0
    title: General
    icon: gear
    body: general settings
  - identifier: Advanced
    tag: 2
    body: advanced settings
  - identifier: Network
    tag: 1
    view: list
    items: [proxy, dns]
`

func newTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Toolbar.TransitionFrames = 0
	if mutate != nil {
		mutate(cfg)
	}
	a, err := New(Options{
		Config:     cfg,
		Panes:      fstest.MapFS{"Main.yaml": &fstest.MapFile{Data: []byte(testPanes)}},
		Identifier: "Main",
		Logger:     logger.Discard(),
		Themes:     theme.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return a
}

func TestApp_InitialSelection(t *testing.T) {
	a := newTestApp(t, nil)

	if got := a.Manager().SelectedIdentifier(); got != "General" {
		t.Errorf("expected General selected, got %q", got)
	}
	if a.TabBar().Selected() != "General" {
		t.Errorf("expected General highlighted, got %q", a.TabBar().Selected())
	}
	if a.Window().Swaps() != 1 {
		t.Errorf("expected one swap, got %d", a.Window().Swaps())
	}
	if !strings.Contains(a.View(), "general settings") {
		t.Error("expected General content in view")
	}
}

func TestApp_KeysNavigate(t *testing.T) {
	a := newTestApp(t, nil)

	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := a.Manager().SelectedIdentifier(); got != "Network" {
		t.Errorf("expected Network after right, got %q", got)
	}
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if got := a.Manager().SelectedIdentifier(); got != "Advanced" {
		t.Errorf("expected Advanced after 3, got %q", got)
	}
	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := a.Manager().SelectedIdentifier(); got != "Advanced" {
		t.Errorf("expected no wrap at the end, got %q", got)
	}
	a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := a.Manager().SelectedIdentifier(); got != "Network" {
		t.Errorf("expected Network after left, got %q", got)
	}
}

func TestApp_MouseSelects(t *testing.T) {
	a := newTestApp(t, nil)

	id, ok := a.TabBar().ItemAtIndex(2)
	if !ok {
		t.Fatal("expected third tab")
	}
	var x int
	for x = 0; x < 60; x++ {
		if got, _ := a.TabBar().ItemAt(x); got == id {
			break
		}
	}

	a.Update(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got := a.Manager().SelectedIdentifier(); got != id {
		t.Errorf("expected %s after click, got %q", id, got)
	}

	a.Update(tea.MouseMsg{X: 0, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got := a.Manager().SelectedIdentifier(); got != id {
		t.Errorf("clicks below the bar must not select, got %q", got)
	}
}

func TestApp_DelegateFromConfig(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) {
		c.Toolbar.Center = true
		c.Toolbar.DefaultPane = "Advanced"
	})

	ids := a.Manager().ItemIdentifiers()
	if len(ids) != 5 {
		t.Errorf("expected centered items, got %v", ids)
	}
	if got := a.Manager().SelectedIdentifier(); got != "Advanced" {
		t.Errorf("expected configured default, got %q", got)
	}
	item, _ := a.Manager().Item("General")
	if item.Image != "⚙" {
		t.Errorf("expected gear icon, got %v", item.Image)
	}
}

func TestApp_UnknownDefaultShowsDiagnostic(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) {
		c.Toolbar.DefaultPane = "Genral"
	})

	if got := a.Manager().SelectedIdentifier(); got != "General" {
		t.Errorf("expected fallback to first pane, got %q", got)
	}
	if a.Status() == "" {
		t.Error("expected diagnostic in status line")
	}
}

func TestApp_SilentDiagnostics(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) {
		c.Diagnostics.Level = 0
		c.Toolbar.DefaultPane = "Genral"
	})
	if a.Status() != "" {
		t.Errorf("expected no status at level 0, got %q", a.Status())
	}
}

func TestApp_RejectsBadLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Diagnostics.Level = 5
	if _, err := New(Options{Config: cfg, Logger: logger.Discard()}); err == nil {
		t.Error("expected error for invalid diagnostics level")
	}
}

func TestApp_ThemeMsg(t *testing.T) {
	a := newTestApp(t, nil)

	a.Update(ThemeMsg{Name: theme.Nord})
	if a.Theme().Name != theme.Nord {
		t.Errorf("expected nord, got %q", a.Theme().Name)
	}
	if a.TabBar().Selected() != "General" {
		t.Error("expected selection kept across theme change")
	}

	a.Update(ThemeMsg{Name: "nope"})
	if a.Theme().Name != theme.Nord {
		t.Error("expected unknown theme ignored")
	}
}

func TestApp_TransitionTicks(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) { c.Toolbar.TransitionFrames = 3 })

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("expected a frame tick while animating")
	}
	for range 3 {
		a.Update(frameMsg{})
	}
	if a.Window().Animating() {
		t.Error("expected animation to finish")
	}
}

func TestApp_Quit(t *testing.T) {
	a := newTestApp(t, nil)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if a.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestApp_BuiltinPanes(t *testing.T) {
	a, err := New(Options{Logger: logger.Discard(), Metrics: metrics.New()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(a.Manager().Panes()) != 4 {
		t.Errorf("expected builtin panes, got %d", len(a.Manager().Panes()))
	}

	a.Close()
	if !a.Manager().Delegate().Empty() {
		t.Error("expected delegate released on Close")
	}
}
