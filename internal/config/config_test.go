package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got %q", cfg.Log.Level)
	}
	if cfg.Log.Output != "" {
		t.Errorf("expected no console output by default, got %q", cfg.Log.Output)
	}
	if cfg.Log.FilePath == "" {
		t.Error("expected a default log file")
	}
	if cfg.Diagnostics.Level != 1 {
		t.Errorf("expected diagnostics level 1, got %d", cfg.Diagnostics.Level)
	}
	if cfg.Toolbar.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", cfg.Toolbar.Theme)
	}
	if cfg.Toolbar.TransitionFrames != 6 {
		t.Errorf("expected 6 transition frames, got %d", cfg.Toolbar.TransitionFrames)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSSHConfig_Address(t *testing.T) {
	c := SSHConfig{Host: "0.0.0.0", Port: 2222}
	if got := c.Address(); got != "0.0.0.0:2222" {
		t.Errorf("expected 0.0.0.0:2222, got %q", got)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
diagnostics:
  level: 0
panes:
  dir: /srv/panes
  resource: Preferences
toolbar:
  theme: nord
  center: true
  default_pane: Advanced
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Diagnostics.Level != 0 {
		t.Errorf("expected diagnostics level 0, got %d", cfg.Diagnostics.Level)
	}
	if cfg.Panes.Dir != "/srv/panes" || cfg.Panes.Resource != "Preferences" {
		t.Errorf("unexpected panes config %+v", cfg.Panes)
	}
	if cfg.Toolbar.Theme != "nord" || !cfg.Toolbar.Center || cfg.Toolbar.DefaultPane != "Advanced" {
		t.Errorf("unexpected toolbar config %+v", cfg.Toolbar)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Toolbar.TransitionFrames != 6 {
		t.Errorf("expected default transition frames, got %d", cfg.Toolbar.TransitionFrames)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "toolbar:\n  theme: light\n")
	t.Setenv("PANEBAR_TOOLBAR_THEME", "dracula")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Toolbar.Theme != "dracula" {
		t.Errorf("expected env override, got %q", cfg.Toolbar.Theme)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"diagnostics level", "diagnostics:\n  level: 3\n"},
		{"log format", "log:\n  format: xml\n"},
		{"negative frames", "toolbar:\n  transition_frames: -1\n"},
		{"ssh port", "ssh:\n  port: 70000\n"},
		{"negative session rate", "ssh:\n  session_rate: -1\n"},
		{"negative session burst", "ssh:\n  session_burst: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad_SessionLimits(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "ssh:\n  session_rate: 2.5\n  session_burst: 4\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SSH.SessionRate != 2.5 {
		t.Errorf("expected session rate 2.5, got %v", cfg.SSH.SessionRate)
	}
	if cfg.SSH.SessionBurst != 4 {
		t.Errorf("expected session burst 4, got %d", cfg.SSH.SessionBurst)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "toolbar: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Toolbar.Theme = "gruvbox"
	cfg.Toolbar.Center = true

	if err := Write(path, cfg, false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Toolbar.Theme != "gruvbox" || !loaded.Toolbar.Center {
		t.Errorf("unexpected toolbar config %+v", loaded.Toolbar)
	}
}

func TestWrite_Exists(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "toolbar:\n  theme: light\n")

	if err := Write(path, DefaultConfig(), false); !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}
	if err := Write(path, DefaultConfig(), true); err != nil {
		t.Errorf("expected forced write to succeed, got %v", err)
	}
}

func TestWatcher_Reload(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "toolbar:\n  theme: light\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if w.File() != path {
		t.Errorf("expected watched file %q, got %q", path, w.File())
	}
	if w.Current().Toolbar.Theme != "light" {
		t.Errorf("expected light, got %q", w.Current().Toolbar.Theme)
	}

	var seen []string
	w.OnChange(func(c *Config) { seen = append(seen, c.Toolbar.Theme) })

	writeFile(t, filepath.Dir(path), "config.yaml", "toolbar:\n  theme: nord\n")
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if len(seen) != 1 || seen[0] != "nord" {
		t.Errorf("expected one callback with nord, got %v", seen)
	}
	if w.Current().Toolbar.Theme != "nord" {
		t.Errorf("expected current nord, got %q", w.Current().Toolbar.Theme)
	}
}

func TestWatcher_InvalidReloadKeepsCurrent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "toolbar:\n  theme: light\n")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	writeFile(t, filepath.Dir(path), "config.yaml", "diagnostics:\n  level: 9\n")
	if err := w.Reload(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if w.Current().Toolbar.Theme != "light" {
		t.Errorf("expected previous config kept, got %q", w.Current().Toolbar.Theme)
	}
}

func TestWatcher_StopSuppressesCallbacks(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "toolbar:\n  theme: light\n")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	called := false
	w.OnChange(func(*Config) { called = true })

	w.Stop()
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if called {
		t.Error("expected no callback after Stop")
	}
}
