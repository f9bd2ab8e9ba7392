package tui

import (
	"strings"
	"testing"
)

type sized struct {
	lines int
}

func (s sized) Render(width, height int) string {
	return strings.TrimSuffix(strings.Repeat("x\n", s.lines), "\n")
}

func (s sized) PreferredHeight() int { return s.lines }

func TestWindow_TransitionInterpolatesHeight(t *testing.T) {
	w := NewWindow(testTheme(), 4)
	w.SetSize(40, 30)

	w.SetContentWithTransition(sized{lines: 2})
	for w.Tick() {
	}
	if w.Height() != 2 {
		t.Fatalf("expected settled height 2, got %d", w.Height())
	}

	w.SetContentWithTransition(sized{lines: 10})
	if !w.Animating() {
		t.Fatal("expected transition to start")
	}
	if w.Height() != 2 {
		t.Errorf("expected start height 2, got %d", w.Height())
	}

	var heights []int
	for w.Tick() {
		heights = append(heights, w.Height())
	}
	heights = append(heights, w.Height())

	want := []int{4, 6, 8, 10}
	if len(heights) != len(want) {
		t.Fatalf("heights = %v, want %v", heights, want)
	}
	for i := range want {
		if heights[i] != want[i] {
			t.Fatalf("heights = %v, want %v", heights, want)
		}
	}
}

func TestWindow_NoFramesIsImmediate(t *testing.T) {
	w := NewWindow(testTheme(), 0)
	w.SetSize(40, 30)
	w.SetContentWithTransition(sized{lines: 5})

	if w.Animating() {
		t.Error("expected no animation with zero frames")
	}
	if w.Height() != 5 {
		t.Errorf("expected height 5, got %d", w.Height())
	}
	if w.Swaps() != 1 || w.Content() == nil {
		t.Error("expected content swapped once")
	}
}

func TestWindow_ClampsToAvailableHeight(t *testing.T) {
	w := NewWindow(testTheme(), 0)
	w.SetSize(40, 6)
	w.SetContentWithTransition(sized{lines: 50})

	// 6 rows minus two border rows.
	if w.Height() != 4 {
		t.Errorf("expected height 4, got %d", w.Height())
	}
	if got := strings.Count(w.View(), "\n") + 1; got != 6 {
		t.Errorf("expected 6 rendered rows, got %d", got)
	}
}

func TestWindow_PlainContent(t *testing.T) {
	w := NewWindow(testTheme(), 0)
	w.SetSize(30, 8)
	w.SetContentWithTransition("hello pane")

	if !strings.Contains(w.View(), "hello pane") {
		t.Errorf("expected plain content rendered, got %q", w.View())
	}
	if NewWindow(testTheme(), 0).View() != "" {
		t.Error("expected empty view without content")
	}
}
