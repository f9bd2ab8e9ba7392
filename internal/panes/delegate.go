package panes

import (
	"panebar/internal/config"
	"panebar/internal/toolbar"
)

// NewDelegate builds the delegate used by the panebar binary. Hooks are only
// installed for settings that are configured, so unset values fall back to
// the manager's defaults instead of producing diagnostics.
func NewDelegate(cfg *config.Config, src *Source) toolbar.Delegate {
	d := toolbar.Delegate{
		ShouldCenterItems: func(toolbar.Toolbar) bool { return cfg.Toolbar.Center },
	}

	if res := cfg.Panes.Resource; res != "" {
		d.AssociatedResourceName = func(toolbar.Toolbar) string { return res }
	}
	if def := cfg.Toolbar.DefaultPane; def != "" {
		d.DefaultSelectedIdentifier = func(toolbar.Toolbar) string { return def }
	}
	if src == nil {
		return d
	}

	d.LabelForIdentifier = func(_ toolbar.Toolbar, id string) string {
		if m, ok := src.Meta(id); ok && m.Title != "" {
			return m.Title
		}
		return id
	}
	d.ImageForIdentifier = func(tb toolbar.Toolbar, id string) toolbar.Image {
		if m, ok := src.Meta(id); ok && m.Icon != "" {
			return tb.ImageNamed(m.Icon)
		}
		return tb.ImageNamed(id)
	}
	return d
}
