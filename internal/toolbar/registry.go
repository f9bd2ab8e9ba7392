package toolbar

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/agnivade/levenshtein"
)

// Pane is a selectable view: an identifier, an ordering tag and the content
// shown when the pane is selected.
type Pane struct {
	Identifier string
	Tag        uint
	Content    Content
}

// Registry holds the panes declared for one manager. Panes are append-only.
type Registry struct {
	panes   []Pane // registration order
	ordered []Pane // sorted by tag, stable for ties
	index   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds p. A pane whose identifier is already present is rejected
// with ErrDuplicateIdentifier and the first registration is kept.
func (r *Registry) Register(p Pane) error {
	if p.Identifier == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidPane)
	}
	if IsPlaceholder(p.Identifier) {
		return fmt.Errorf("%w: %q is reserved for toolbar spacing", ErrInvalidPane, p.Identifier)
	}
	if p.Content == nil {
		return fmt.Errorf("%w: pane %q has no content", ErrInvalidPane, p.Identifier)
	}
	if _, exists := r.index[p.Identifier]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateIdentifier, p.Identifier)
	}

	r.panes = append(r.panes, p)
	r.ordered = slices.Clone(r.panes)
	slices.SortStableFunc(r.ordered, func(a, b Pane) int {
		return cmp.Compare(a.Tag, b.Tag)
	})
	for i, pane := range r.ordered {
		r.index[pane.Identifier] = i
	}
	return nil
}

// Lookup returns the pane registered under identifier.
func (r *Registry) Lookup(identifier string) (Pane, bool) {
	i, ok := r.index[identifier]
	if !ok {
		return Pane{}, false
	}
	return r.ordered[i], true
}

// Index returns the position of identifier in Ordered, or -1.
func (r *Registry) Index(identifier string) int {
	if i, ok := r.index[identifier]; ok {
		return i
	}
	return -1
}

// At returns the pane at position i of Ordered.
func (r *Registry) At(i int) (Pane, bool) {
	if i < 0 || i >= len(r.ordered) {
		return Pane{}, false
	}
	return r.ordered[i], true
}

// Ordered returns the panes sorted ascending by tag. Panes with equal tags
// keep their registration order.
func (r *Registry) Ordered() []Pane {
	return slices.Clone(r.ordered)
}

// Identifiers returns the pane identifiers in the order of Ordered.
func (r *Registry) Identifiers() []string {
	ids := make([]string, len(r.ordered))
	for i, p := range r.ordered {
		ids[i] = p.Identifier
	}
	return ids
}

// Len returns the number of registered panes.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// First returns the first pane of Ordered.
func (r *Registry) First() (Pane, bool) {
	return r.At(0)
}

// Suggest returns the registered identifier closest to identifier by edit
// distance, if any is close enough to be a plausible typo.
func (r *Registry) Suggest(identifier string) (string, bool) {
	best, bestDist := "", -1
	for _, p := range r.ordered {
		d := levenshtein.ComputeDistance(identifier, p.Identifier)
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.Identifier, d
		}
	}
	if bestDist < 0 {
		return "", false
	}
	limit := max(2, len(identifier)/3)
	if bestDist > limit {
		return "", false
	}
	return best, true
}
