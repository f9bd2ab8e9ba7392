package toolbar

import (
	"panebar/internal/diag"
	"panebar/internal/weakref"
)

type fakeWindow struct {
	swaps []Content
}

func (w *fakeWindow) SetContentWithTransition(c Content) {
	w.swaps = append(w.swaps, c)
}

type fakeToolbar struct {
	id       string
	window   *fakeWindow
	items    []Item
	selected string
	sets     int
}

func newFakeToolbar(id string) *fakeToolbar {
	return &fakeToolbar{id: id, window: &fakeWindow{}}
}

func (tb *fakeToolbar) Identifier() string { return tb.id }

func (tb *fakeToolbar) Window() Window {
	if tb.window == nil {
		return nil
	}
	return tb.window
}

func (tb *fakeToolbar) SetItems(items []Item) {
	tb.items = items
	tb.sets++
}

func (tb *fakeToolbar) SetSelectedItem(id string) { tb.selected = id }

func (tb *fakeToolbar) ImageNamed(name string) Image { return "img:" + name }

func pane(id string, tag uint) Pane {
	return Pane{Identifier: id, Tag: tag, Content: "content:" + id}
}

func recordingReporter(level diag.Level) (*diag.Reporter, *diag.Recorder) {
	rec := &diag.Recorder{}
	return diag.NewReporter(level, diag.WithSink(rec)), rec
}

func anchorDelegate(d Delegate) (*weakref.Anchor[Delegate], weakref.Ref[Delegate]) {
	a := weakref.NewAnchor(d)
	return a, a.Ref()
}

func identifiersOf(panes []Pane) []string {
	out := make([]string, len(panes))
	for i, p := range panes {
		out[i] = p.Identifier
	}
	return out
}

// listingToolbar reports the items it holds, like a toolbar set up by the
// host before the manager attaches.
type listingToolbar struct {
	*fakeToolbar
}

func newListingToolbar(id string, items ...Item) *listingToolbar {
	tb := &listingToolbar{fakeToolbar: newFakeToolbar(id)}
	tb.items = items
	return tb
}

func (tb *listingToolbar) Items() []Item { return tb.items }
