package logger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"panebar/internal/config"

	"github.com/spf13/cobra"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panebar.log")
	l, err := New(config.LogConfig{Level: "debug", Format: "json", FilePath: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l.Debug("toolbar built", "panes", 3)
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"toolbar built"`) || !strings.Contains(string(data), `"panes":3`) {
		t.Errorf("unexpected log content: %s", data)
	}
}

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"text", "json", "pretty", ""} {
		t.Run(format, func(t *testing.T) {
			l, err := New(config.LogConfig{Format: format})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if l.Logger == nil {
				t.Fatal("expected slog logger")
			}
			_ = l.Close()
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "chatty"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"nope", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_WithDoesNotOwnFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panebar.log")
	l, err := New(config.LogConfig{FilePath: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer l.Close()

	child := l.With("manager", "Main")
	if child.closer != nil {
		t.Error("child logger must not own the parent's files")
	}
	if err := child.Close(); err != nil {
		t.Errorf("child Close should be a no-op, got %v", err)
	}
	if g := l.WithGroup("pane"); g.closer != nil {
		t.Error("group logger must not own files")
	}
}

func TestLogger_CloseNil(t *testing.T) {
	var l *Logger
	if err := l.Close(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestWithError(t *testing.T) {
	err := fmt.Errorf("load panes: %w", os.ErrNotExist)
	attr := WithError(err)

	if attr.Key != "error" {
		t.Fatalf("expected key 'error', got %q", attr.Key)
	}
	got := map[string]string{}
	for _, a := range attr.Value.Group() {
		got[a.Key] = a.Value.String()
	}
	if got["message"] != err.Error() {
		t.Errorf("unexpected message %q", got["message"])
	}
	if got["cause"] != os.ErrNotExist.Error() {
		t.Errorf("unexpected cause %q", got["cause"])
	}

	if !WithError(nil).Equal(slog.Attr{}) {
		t.Error("expected empty attr for nil error")
	}
}

func TestErrorChain(t *testing.T) {
	base := errors.New("base")
	err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", base))

	chain := ErrorChain(err)
	if len(chain) != 3 || chain[2] != "base" {
		t.Errorf("unexpected chain %v", chain)
	}
}

func TestCommandContext(t *testing.T) {
	cmd := &cobra.Command{Use: "panebar"}
	cc := NewCommandContext(cmd, []string{"run"})

	if cc.Command != "panebar" {
		t.Errorf("expected command panebar, got %q", cc.Command)
	}
	if len(cc.RequestID) != 36 {
		t.Errorf("expected uuid request id, got %q", cc.RequestID)
	}

	ctx := WithCommandContext(context.Background(), cc)
	if CommandContextFrom(ctx) != cc {
		t.Error("expected stored command context")
	}
	if CommandContextFrom(context.Background()) != nil {
		t.Error("expected nil when unset")
	}

	attrs := cc.LogAttrs()
	if attrs[0].Key != "request_id" || attrs[len(attrs)-1].Key != "args" {
		t.Errorf("unexpected attrs %v", attrs)
	}
	var nilCC *CommandContext
	if nilCC.LogAttrs() != nil {
		t.Error("expected nil attrs for nil context")
	}
}

func TestNewSessionContext(t *testing.T) {
	a := NewSessionContext("alice", "10.0.0.1:5000")
	b := NewSessionContext("alice", "10.0.0.1:5000")
	if a.RequestID == b.RequestID {
		t.Error("expected distinct request ids per session")
	}
	if a.User != "alice" || a.Command != "session" {
		t.Errorf("unexpected session context %+v", a)
	}
}

func TestLoggerContext(t *testing.T) {
	l := Discard()
	ctx := WithLogger(context.Background(), l)
	if LoggerFrom(ctx) != l {
		t.Error("expected stored logger")
	}
	if LoggerFrom(context.Background()) == nil {
		t.Error("expected default logger")
	}
}

func TestCommandContext_Attach(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	cc := NewSessionContext("bob", "remote")

	cc.Attach(l).Info("hello")

	if !strings.Contains(buf.String(), "request_id="+cc.RequestID) {
		t.Errorf("expected request id in output, got %q", buf.String())
	}
}

func TestCharmHandler_Levels(t *testing.T) {
	var buf bytes.Buffer
	h := NewCharmHandler(&buf, &CharmHandlerOptions{Level: slog.LevelWarn, NoColor: true})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn")
	}

	slog.New(h).Warn("invalid delegate response", "hook", "label")
	out := buf.String()
	if !strings.Contains(out, "invalid delegate response") || !strings.Contains(out, "hook") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCharmHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewCharmHandler(&buf, &CharmHandlerOptions{NoColor: true})

	l := slog.New(h).With("manager", "Main").WithGroup("pane")
	l.Info("selected", "id", "General", WithError(errors.New("boom")))

	out := buf.String()
	for _, want := range []string{"manager", "Main", "pane.id", "General", "message=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestCharmHandler_WithGroupEmpty(t *testing.T) {
	h := NewCharmHandler(&bytes.Buffer{}, nil)
	if h.WithGroup("") != slog.Handler(h) {
		t.Error("empty group should return the same handler")
	}
}

func TestCharmLevel(t *testing.T) {
	if charmLevel(slog.LevelDebug-4) != charmLevel(slog.LevelDebug) {
		t.Error("levels below debug map to debug")
	}
	if charmLevel(slog.LevelError+4) != charmLevel(slog.LevelError) {
		t.Error("levels above error map to error")
	}
}
