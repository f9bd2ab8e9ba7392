package toolbar

import (
	"fmt"
	"log/slog"
	"strings"

	"panebar/internal/diag"
	"panebar/internal/weakref"
)

// Resolver answers customization queries, consulting the delegate when one
// is attached, alive and implements the hook, and falling back to a safe
// default otherwise. It never mutates the registry.
type Resolver struct {
	toolbar    Toolbar
	registry   *Registry
	identifier string
	delegate   weakref.Ref[Delegate]
	reporter   *diag.Reporter
}

// NewResolver creates a resolver for the manager identified by identifier.
func NewResolver(tb Toolbar, registry *Registry, identifier string, reporter *diag.Reporter) *Resolver {
	return &Resolver{
		toolbar:    tb,
		registry:   registry,
		identifier: identifier,
		reporter:   reporter,
	}
}

// SetDelegate attaches a delegate. The zero Ref detaches it.
func (r *Resolver) SetDelegate(d weakref.Ref[Delegate]) {
	r.delegate = d
}

// Delegate returns the attached delegate reference.
func (r *Resolver) Delegate() weakref.Ref[Delegate] {
	return r.delegate
}

// AssociatedResourceName returns the name of the pane-definition resource.
// Defaults to the manager's identifier.
func (r *Resolver) AssociatedResourceName() string {
	d, ok := r.delegate.Get()
	if !ok || d.AssociatedResourceName == nil {
		return r.identifier
	}
	name := strings.TrimSpace(d.AssociatedResourceName(r.toolbar))
	if name == "" {
		r.invalid("associated resource name", "delegate returned an empty resource name")
		return r.identifier
	}
	return name
}

// DefaultSelectedIdentifier returns the pane to select first. Defaults to the
// first pane in tag order. It reports false only when no pane is registered.
func (r *Resolver) DefaultSelectedIdentifier() (string, bool) {
	first, ok := r.registry.First()
	if !ok {
		return "", false
	}

	d, alive := r.delegate.Get()
	if !alive || d.DefaultSelectedIdentifier == nil {
		return first.Identifier, true
	}
	id := d.DefaultSelectedIdentifier(r.toolbar)
	if id == "" {
		r.invalid("default selected identifier", "delegate returned an empty default selection")
		return first.Identifier, true
	}
	if _, known := r.registry.Lookup(id); !known {
		r.invalid("default selected identifier", "delegate returned an unknown default selection",
			slog.String("identifier", id))
		return first.Identifier, true
	}
	return id, true
}

// ShouldCenterItems reports whether items are padded to the center.
// Defaults to false.
func (r *Resolver) ShouldCenterItems() bool {
	d, ok := r.delegate.Get()
	if !ok || d.ShouldCenterItems == nil {
		return false
	}
	return d.ShouldCenterItems(r.toolbar)
}

// LabelForIdentifier returns the item label. Defaults to the identifier.
func (r *Resolver) LabelForIdentifier(identifier string) string {
	d, ok := r.delegate.Get()
	if !ok || d.LabelForIdentifier == nil {
		return identifier
	}
	label := d.LabelForIdentifier(r.toolbar, identifier)
	if strings.TrimSpace(label) == "" {
		r.invalid("label for identifier", "delegate returned an empty label",
			slog.String("identifier", identifier))
		return identifier
	}
	return label
}

// ImageForIdentifier returns the item image. Defaults to the toolbar's image
// named after the identifier.
func (r *Resolver) ImageForIdentifier(identifier string) Image {
	d, ok := r.delegate.Get()
	if !ok || d.ImageForIdentifier == nil {
		return r.toolbar.ImageNamed(identifier)
	}
	img := d.ImageForIdentifier(r.toolbar, identifier)
	if isEmptyImage(img) {
		r.invalid("image for identifier", "delegate returned no image",
			slog.String("identifier", identifier))
		return r.toolbar.ImageNamed(identifier)
	}
	return img
}

func isEmptyImage(img Image) bool {
	if img == nil {
		return true
	}
	s, ok := img.(string)
	return ok && s == ""
}

func (r *Resolver) invalid(hook, msg string, attrs ...slog.Attr) {
	r.reporter.Report(diag.Diagnostic{
		Kind:    diag.KindInvalidDelegateResponse,
		Manager: r.identifier,
		Message: msg,
		Err:     fmt.Errorf("%w: %s", ErrInvalidDelegateResponse, hook),
		Attrs:   attrs,
	})
}
