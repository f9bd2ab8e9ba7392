package toolbar

import (
	"fmt"
	"log/slog"

	"panebar/internal/diag"
)

// Selection is the pane selection state machine. It starts Unselected and
// moves to Selected(id) only through SelectByIdentifier.
type Selection struct {
	registry *Registry
	sync     *Synchronizer
	window   func() Window
	reporter *diag.Reporter
	manager  string

	current  string
	selected bool

	// onChange is called after a transition is committed.
	onChange func(from, to string)
}

// NewSelection creates an Unselected state machine. window is consulted on
// every transition since the toolbar may be attached to a window late.
func NewSelection(registry *Registry, sync *Synchronizer, window func() Window, reporter *diag.Reporter, manager string) *Selection {
	return &Selection{
		registry: registry,
		sync:     sync,
		window:   window,
		reporter: reporter,
		manager:  manager,
	}
}

// Current returns the selected identifier and whether anything is selected.
func (s *Selection) Current() (string, bool) {
	return s.current, s.selected
}

// SelectByIdentifier makes id the selected pane. Unknown identifiers are
// rejected with ErrUnknownIdentifier and leave the state unchanged.
// Reselecting the current pane does nothing.
func (s *Selection) SelectByIdentifier(id string) error {
	pane, ok := s.registry.Lookup(id)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownIdentifier, id)
		attrs := []slog.Attr{slog.String("identifier", id)}
		if guess, found := s.registry.Suggest(id); found {
			attrs = append(attrs, slog.String("did_you_mean", guess))
		}
		s.reporter.Report(diag.Diagnostic{
			Kind:    diag.KindUnknownIdentifier,
			Manager: s.manager,
			Message: "selection requested for an unknown pane",
			Err:     err,
			Attrs:   attrs,
		})
		return err
	}
	if s.selected && s.current == id {
		return nil
	}

	if w := s.window(); w != nil {
		w.SetContentWithTransition(pane.Content)
	}

	from := s.current
	s.current, s.selected = id, true
	s.sync.HighlightSelected(id)

	if s.onChange != nil {
		s.onChange(from, id)
	}
	return nil
}

// SelectNext selects the pane after the current one. It does nothing when
// nothing is selected or the last pane is selected.
func (s *Selection) SelectNext() {
	s.step(1)
}

// SelectPrevious selects the pane before the current one. It does nothing
// when nothing is selected or the first pane is selected.
func (s *Selection) SelectPrevious() {
	s.step(-1)
}

func (s *Selection) step(delta int) {
	if !s.selected {
		return
	}
	idx := s.registry.Index(s.current)
	if idx < 0 {
		return
	}
	next, ok := s.registry.At(idx + delta)
	if !ok {
		return
	}
	_ = s.SelectByIdentifier(next.Identifier)
}

// SelectInitial performs the first selection using the resolver's default.
// With no panes registered the state stays Unselected.
func (s *Selection) SelectInitial(resolver *Resolver) {
	id, ok := resolver.DefaultSelectedIdentifier()
	if !ok {
		return
	}
	_ = s.SelectByIdentifier(id)
}
