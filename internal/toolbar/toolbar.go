package toolbar

// FlexibleSpaceItemIdentifier is the placeholder inserted on both ends of the
// item list when items are centered. It is never selectable.
const FlexibleSpaceItemIdentifier = "panebar.flexible-space"

// Content is an opaque handle to a displayable view. The declarer of a pane
// owns it; the manager only passes it to the window.
type Content any

// Image is an opaque toolbar item image as understood by the host toolkit.
type Image any

// Item is one entry of the toolbar as computed by the manager.
type Item struct {
	Identifier   string
	Label        string
	PaletteLabel string
	Image        Image
	Placeholder  bool
}

// Toolbar is the host toolkit's toolbar widget.
type Toolbar interface {
	// Identifier returns the toolbar's own identifier.
	Identifier() string
	// Window returns the window the toolbar is attached to, or nil.
	Window() Window
	// SetItems replaces the displayed items, in order.
	SetItems(items []Item)
	// SetSelectedItem highlights the item with the given identifier. An empty
	// identifier clears the highlight.
	SetSelectedItem(identifier string)
	// ImageNamed loads the toolkit's default image for name. It may return nil.
	ImageNamed(name string) Image
}

// ItemLister is implemented by toolbars that can report the items they
// already hold. Those items survive every build.
type ItemLister interface {
	Items() []Item
}

// Window is the collaborator that displays pane content.
type Window interface {
	// SetContentWithTransition replaces the visible content, resizing as
	// needed, with an animated transition. content is never nil.
	SetContentWithTransition(content Content)
}

// Definition is one declared pane as read from a pane-definition resource.
// An empty Identifier marks a malformed entry.
type Definition struct {
	Identifier string
	Tag        uint
	Content    Content
}

// Source loads pane definitions from the resource with the given name.
type Source interface {
	Load(name string) ([]Definition, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(name string) ([]Definition, error)

// Load implements Source.
func (f SourceFunc) Load(name string) ([]Definition, error) { return f(name) }
