package toolbar

import "slices"

// Synchronizer keeps the toolbar's displayed items consistent with the
// registry. It holds no pane mapping of its own.
type Synchronizer struct {
	toolbar  Toolbar
	registry *Registry
	resolver *Resolver

	itemIDs     []string
	hostItems   []Item
	highlighted string
	built       bool
}

// NewSynchronizer creates a synchronizer for tb.
func NewSynchronizer(tb Toolbar, registry *Registry, resolver *Resolver) *Synchronizer {
	return &Synchronizer{toolbar: tb, registry: registry, resolver: resolver}
}

// Build recomputes the item list, pushes it to the toolbar and reapplies the
// current highlight. It queries the resolver once per item. Items the host
// placed on the toolbar before the first build are kept ahead of the panes.
func (s *Synchronizer) Build() []Item {
	if !s.built {
		s.hostItems = s.existingItems()
	}
	ids := s.registry.Identifiers()
	center := s.resolver.ShouldCenterItems()

	items := make([]Item, 0, len(s.hostItems)+len(ids)+2)
	items = append(items, s.hostItems...)
	if center {
		items = append(items, placeholderItem())
	}
	for _, id := range ids {
		label := s.resolver.LabelForIdentifier(id)
		items = append(items, Item{
			Identifier:   id,
			Label:        label,
			PaletteLabel: label,
			Image:        s.resolver.ImageForIdentifier(id),
		})
	}
	if center {
		items = append(items, placeholderItem())
	}

	s.itemIDs = s.itemIDs[:0]
	for _, it := range items {
		s.itemIDs = append(s.itemIDs, it.Identifier)
	}
	s.built = true

	s.toolbar.SetItems(items)
	if s.highlighted != "" {
		s.toolbar.SetSelectedItem(s.highlighted)
	}
	return items
}

// existingItems returns the host's own items, skipping spacers and anything
// that names a registered pane.
func (s *Synchronizer) existingItems() []Item {
	lister, ok := s.toolbar.(ItemLister)
	if !ok {
		return nil
	}
	var out []Item
	for _, it := range lister.Items() {
		if it.Placeholder || IsPlaceholder(it.Identifier) {
			continue
		}
		if _, pane := s.registry.Lookup(it.Identifier); pane {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Built reports whether Build has run at least once.
func (s *Synchronizer) Built() bool {
	return s.built
}

// CurrentItemIdentifiers returns the displayed item identifiers, including
// placeholders.
func (s *Synchronizer) CurrentItemIdentifiers() []string {
	return slices.Clone(s.itemIDs)
}

// SelectableIdentifiers returns the pane items of CurrentItemIdentifiers.
// Placeholders and host items are left out.
func (s *Synchronizer) SelectableIdentifiers() []string {
	out := make([]string, 0, len(s.itemIDs))
	for _, id := range s.itemIDs {
		if _, ok := s.registry.Lookup(id); ok {
			out = append(out, id)
		}
	}
	return out
}

// HostItems returns the items kept from the toolbar's initial contents.
func (s *Synchronizer) HostItems() []Item {
	return slices.Clone(s.hostItems)
}

// HighlightSelected marks identifier as the active item. An empty or
// placeholder identifier clears the highlight.
func (s *Synchronizer) HighlightSelected(identifier string) {
	if IsPlaceholder(identifier) {
		identifier = ""
	}
	s.highlighted = identifier
	s.toolbar.SetSelectedItem(identifier)
}

// Highlighted returns the highlighted identifier, or "".
func (s *Synchronizer) Highlighted() string {
	return s.highlighted
}

// IsPlaceholder reports whether identifier is a spacer inserted for centering.
func IsPlaceholder(identifier string) bool {
	return identifier == FlexibleSpaceItemIdentifier
}

func placeholderItem() Item {
	return Item{Identifier: FlexibleSpaceItemIdentifier, Placeholder: true}
}
