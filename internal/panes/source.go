// Package panes loads pane definitions from YAML resources.
//
// A resource named N is the file N.yaml inside the source's file system:
//
//	panes:
//	  - identifier: General
//	    tag: 0
//	    title: General
//	    icon: gear
//	    view: text
//	    body: |
//	      Settings that apply everywhere.
//
// A missing tag means 0. Entries with a negative tag or an unknown view are
// reported and skipped. Entries without an identifier are passed on so the
// manager can report them.
package panes

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"panebar/internal/diag"
	"panebar/internal/toolbar"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtin embed.FS

// ErrMalformed marks a definition that could not be turned into a pane.
var ErrMalformed = errors.New("malformed pane definition")

// Builtin returns the pane resources compiled into the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "builtin")
	if err != nil {
		panic(err)
	}
	return sub
}

// Spec is one entry of a resource file.
type Spec struct {
	Identifier string   `yaml:"identifier"`
	Tag        *int     `yaml:"tag"`
	Title      string   `yaml:"title"`
	Icon       string   `yaml:"icon"`
	View       string   `yaml:"view"`
	Body       string   `yaml:"body"`
	Items      []string `yaml:"items"`
	Height     int      `yaml:"height"`
}

type document struct {
	Panes []Spec `yaml:"panes"`
}

// Meta is the display metadata declared alongside a pane.
type Meta struct {
	Title string
	Icon  string
}

// Source implements toolbar.Source over a file system.
type Source struct {
	fsys     fs.FS
	views    map[string]ViewFactory
	reporter *diag.Reporter
	meta     map[string]Meta
}

// Option configures a Source.
type Option func(*Source)

// WithView registers a view factory under name, replacing any existing one.
func WithView(name string, f ViewFactory) Option {
	return func(s *Source) {
		s.views[name] = f
	}
}

// WithReporter reports skipped definitions through r.
func WithReporter(r *diag.Reporter) Option {
	return func(s *Source) {
		s.reporter = r
	}
}

// NewSource creates a source reading <name>.yaml files from fsys.
func NewSource(fsys fs.FS, opts ...Option) *Source {
	s := &Source{
		fsys:  fsys,
		views: DefaultViews(),
		meta:  make(map[string]Meta),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ toolbar.Source = (*Source)(nil)

// Load reads the resource named name.
func (s *Source) Load(name string) ([]toolbar.Definition, error) {
	data, err := fs.ReadFile(s.fsys, name+".yaml")
	if err != nil {
		return nil, fmt.Errorf("read pane resource %q: %w", name, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse pane resource %q: %w", name, err)
	}

	defs := make([]toolbar.Definition, 0, len(doc.Panes))
	for i, spec := range doc.Panes {
		def, err := s.build(spec)
		if err != nil {
			s.reporter.Report(diag.Diagnostic{
				Kind:    diag.KindMalformedPane,
				Message: "skipping pane definition",
				Err:     err,
				Attrs: []slog.Attr{
					slog.String("resource", name),
					slog.Int("entry", i),
				},
			})
			continue
		}
		// The registry keeps the first pane with an identifier, so its
		// metadata must come from the same entry.
		if _, seen := s.meta[spec.Identifier]; spec.Identifier != "" && !seen {
			s.meta[spec.Identifier] = Meta{Title: spec.Title, Icon: spec.Icon}
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (s *Source) build(spec Spec) (toolbar.Definition, error) {
	var tag uint
	if spec.Tag != nil {
		if *spec.Tag < 0 {
			return toolbar.Definition{}, fmt.Errorf("%w: %q has negative tag %d", ErrMalformed, spec.Identifier, *spec.Tag)
		}
		tag = uint(*spec.Tag)
	}

	view := spec.View
	if view == "" {
		view = ViewText
	}
	factory, ok := s.views[view]
	if !ok {
		return toolbar.Definition{}, fmt.Errorf("%w: %q has unknown view %q", ErrMalformed, spec.Identifier, view)
	}
	content, err := factory(spec)
	if err != nil {
		return toolbar.Definition{}, fmt.Errorf("%w: %q: %w", ErrMalformed, spec.Identifier, err)
	}

	return toolbar.Definition{Identifier: spec.Identifier, Tag: tag, Content: content}, nil
}

// Meta returns the metadata of a loaded pane.
func (s *Source) Meta(identifier string) (Meta, bool) {
	m, ok := s.meta[identifier]
	return m, ok
}
