package toolbar

// Delegate is the capability record of an optional customization delegate.
// Every hook is optional; a nil hook means the delegate does not implement
// it and the resolver uses the default without reporting anything.
type Delegate struct {
	// AssociatedResourceName names the pane-definition resource to load
	// instead of the manager's identifier.
	AssociatedResourceName func(tb Toolbar) string
	// DefaultSelectedIdentifier names the pane to select first.
	DefaultSelectedIdentifier func(tb Toolbar) string
	// ShouldCenterItems pads the items with flexible space on both ends.
	ShouldCenterItems func(tb Toolbar) bool
	// LabelForIdentifier returns the label and palette label of an item.
	LabelForIdentifier func(tb Toolbar, identifier string) string
	// ImageForIdentifier returns the image of an item.
	ImageForIdentifier func(tb Toolbar, identifier string) Image
}

// The interfaces below let an ordinary value act as a delegate. DelegateOf
// checks for each one once and records the result.
type (
	AssociatedResourceNamer interface {
		ToolbarAssociatedResourceName(tb Toolbar) string
	}
	DefaultSelectionProvider interface {
		ToolbarDefaultSelectedIdentifier(tb Toolbar) string
	}
	CenteringProvider interface {
		ToolbarShouldCenterItems(tb Toolbar) bool
	}
	LabelProvider interface {
		ToolbarLabelForIdentifier(tb Toolbar, identifier string) string
	}
	ImageProvider interface {
		ToolbarImageForIdentifier(tb Toolbar, identifier string) Image
	}
)

// DelegateOf builds the capability record for v from the optional delegate
// interfaces it implements. A nil v yields an empty record.
func DelegateOf(v any) Delegate {
	var d Delegate
	if v == nil {
		return d
	}
	if x, ok := v.(AssociatedResourceNamer); ok {
		d.AssociatedResourceName = x.ToolbarAssociatedResourceName
	}
	if x, ok := v.(DefaultSelectionProvider); ok {
		d.DefaultSelectedIdentifier = x.ToolbarDefaultSelectedIdentifier
	}
	if x, ok := v.(CenteringProvider); ok {
		d.ShouldCenterItems = x.ToolbarShouldCenterItems
	}
	if x, ok := v.(LabelProvider); ok {
		d.LabelForIdentifier = x.ToolbarLabelForIdentifier
	}
	if x, ok := v.(ImageProvider); ok {
		d.ImageForIdentifier = x.ToolbarImageForIdentifier
	}
	return d
}
