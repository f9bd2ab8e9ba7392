// Package toolbar binds a window's toolbar to a set of selectable panes.
//
// A Manager owns four collaborators that all read the same Registry:
//   - Registry: the declared panes, ordered by tag
//   - Resolver: delegate customization with safe defaults
//   - Synchronizer: the toolbar's item list and highlight
//   - Selection: the Unselected/Selected state machine
//
// All operations are expected to run on the host's UI goroutine.
package toolbar

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"panebar/internal/diag"
	"panebar/internal/logger"
	"panebar/internal/metrics"
	"panebar/internal/weakref"
)

// Manager is the single entry point for a toolbar's pane selection.
type Manager struct {
	identifier string
	toolbar    Toolbar

	registry  *Registry
	resolver  *Resolver
	sync      *Synchronizer
	selection *Selection

	delegate     weakref.Ref[Delegate]
	encapsulated weakref.Ref[any]

	source   Source
	panes    []Pane
	reporter *diag.Reporter
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// Option configures a Manager.
type Option func(*Manager)

// WithIdentifier overrides the manager identifier. Empty means the toolbar's
// identifier.
func WithIdentifier(id string) Option {
	return func(m *Manager) {
		m.identifier = id
	}
}

// WithDelegate attaches a delegate before the first build.
func WithDelegate(d weakref.Ref[Delegate]) Option {
	return func(m *Manager) {
		m.delegate = d
	}
}

// WithSource sets where pane definitions are loaded from.
func WithSource(src Source) Option {
	return func(m *Manager) {
		m.source = src
	}
}

// WithPanes registers panes after those loaded from the source.
func WithPanes(panes ...Pane) Option {
	return func(m *Manager) {
		m.panes = append(m.panes, panes...)
	}
}

// WithReporter sets the reporting channel for recovered errors.
func WithReporter(r *diag.Reporter) Option {
	return func(m *Manager) {
		m.reporter = r
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithMetrics records selection activity in mt.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// New creates a manager bound to tb, loads its panes, builds the toolbar and
// selects the default pane. It fails only when tb is nil.
func New(tb Toolbar, opts ...Option) (*Manager, error) {
	if tb == nil {
		return nil, ErrMissingToolbar
	}

	m := &Manager{toolbar: tb}
	for _, opt := range opts {
		opt(m)
	}
	if m.identifier == "" {
		m.identifier = tb.Identifier()
	}
	if m.log == nil {
		m.log = logger.Default()
	}
	m.log = m.log.With("manager", m.identifier)

	m.registry = NewRegistry()
	m.resolver = NewResolver(tb, m.registry, m.identifier, m.reporter)
	m.resolver.SetDelegate(m.delegate)
	m.sync = NewSynchronizer(tb, m.registry, m.resolver)
	m.selection = NewSelection(m.registry, m.sync, tb.Window, m.reporter, m.identifier)
	m.selection.onChange = m.selectionChanged

	m.loadPanes()
	m.Rebuild()

	m.log.Debug("toolbar built",
		"panes", m.registry.Len(),
		"centered", m.centered(),
		"selected", m.SelectedIdentifier(),
	)
	m.metrics.SetPanes(m.identifier, m.registry.Len())

	return m, nil
}

func (m *Manager) loadPanes() {
	if m.source != nil {
		name := m.resolver.AssociatedResourceName()
		defs, err := m.source.Load(name)
		if err != nil {
			m.log.Warn("failed to load pane definitions", "resource", name, logger.WithError(err))
		}
		for i, def := range defs {
			if def.Identifier == "" {
				m.report(diag.KindMalformedPane, "pane definition has no identifier",
					fmt.Errorf("%w: entry %d of %q", ErrInvalidPane, i, name))
				continue
			}
			m.register(Pane{Identifier: def.Identifier, Tag: def.Tag, Content: def.Content})
		}
	}
	for _, p := range m.panes {
		m.register(p)
	}
	m.panes = nil
}

func (m *Manager) register(p Pane) {
	err := m.registry.Register(p)
	switch {
	case err == nil:
	case errors.Is(err, ErrDuplicateIdentifier):
		m.report(diag.KindDuplicateIdentifier, "pane identifier already registered; keeping the first", err)
	default:
		m.report(diag.KindMalformedPane, "pane rejected", err)
	}
}

func (m *Manager) report(kind diag.Kind, msg string, err error) {
	m.reporter.Report(diag.Diagnostic{
		Kind:    kind,
		Manager: m.identifier,
		Message: msg,
		Err:     err,
	})
}

func (m *Manager) selectionChanged(from, to string) {
	m.log.Debug("pane selected", slog.String("from", from), slog.String("to", to))
	m.metrics.ObserveSelection(m.identifier)
}

func (m *Manager) centered() bool {
	return slices.ContainsFunc(m.sync.CurrentItemIdentifiers(), IsPlaceholder)
}

// Rebuild recomputes the toolbar items. The first build also performs the
// initial selection.
func (m *Manager) Rebuild() {
	m.sync.Build()
	if _, selected := m.selection.Current(); !selected {
		m.selection.SelectInitial(m.resolver)
	}
}

// Identifier returns the manager's identifier.
func (m *Manager) Identifier() string {
	return m.identifier
}

// Toolbar returns the bound toolbar.
func (m *Manager) Toolbar() Toolbar {
	return m.toolbar
}

// Window returns the toolbar's window, or nil.
func (m *Manager) Window() Window {
	return m.toolbar.Window()
}

// SelectedIdentifier returns the selected pane identifier, or "".
func (m *Manager) SelectedIdentifier() string {
	id, _ := m.selection.Current()
	return id
}

// SelectedTag returns the tag of the selected pane.
func (m *Manager) SelectedTag() (uint, bool) {
	id, ok := m.selection.Current()
	if !ok {
		return 0, false
	}
	p, ok := m.registry.Lookup(id)
	return p.Tag, ok
}

// Panes returns the registered panes in tag order.
func (m *Manager) Panes() []Pane {
	return m.registry.Ordered()
}

// ItemIdentifiers returns the toolbar item identifiers, placeholders included.
func (m *Manager) ItemIdentifiers() []string {
	return m.sync.CurrentItemIdentifiers()
}

// Item builds the toolbar item for identifier.
func (m *Manager) Item(identifier string) (Item, bool) {
	if IsPlaceholder(identifier) {
		return placeholderItem(), true
	}
	if _, ok := m.registry.Lookup(identifier); !ok {
		return Item{}, false
	}
	label := m.resolver.LabelForIdentifier(identifier)
	return Item{
		Identifier:   identifier,
		Label:        label,
		PaletteLabel: label,
		Image:        m.resolver.ImageForIdentifier(identifier),
	}, true
}

// Delegate returns the delegate reference.
func (m *Manager) Delegate() weakref.Ref[Delegate] {
	return m.resolver.Delegate()
}

// SetDelegate replaces the delegate. Call Rebuild to apply new display hints.
func (m *Manager) SetDelegate(d weakref.Ref[Delegate]) {
	m.resolver.SetDelegate(d)
}

// EncapsulatedObject returns the caller-supplied context reference.
func (m *Manager) EncapsulatedObject() weakref.Ref[any] {
	return m.encapsulated
}

// SetEncapsulatedObject stores a caller-supplied context reference. The
// manager never inspects it.
func (m *Manager) SetEncapsulatedObject(obj weakref.Ref[any]) {
	m.encapsulated = obj
}

// SelectNextPane selects the next pane in tag order, if any.
func (m *Manager) SelectNextPane() {
	m.selection.SelectNext()
}

// SelectPreviousPane selects the previous pane in tag order, if any.
func (m *Manager) SelectPreviousPane() {
	m.selection.SelectPrevious()
}

// SelectToolbarItemWithIdentifier selects the pane behind a toolbar item.
// Placeholders and unknown identifiers are rejected with
// ErrUnknownIdentifier.
func (m *Manager) SelectToolbarItemWithIdentifier(identifier string) error {
	return m.selection.SelectByIdentifier(identifier)
}
