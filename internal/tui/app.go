// Package tui hosts a toolbar manager in a Bubble Tea program: the toolbar is
// a tab bar and the window is the content area below it.
package tui

import (
	"errors"
	"io/fs"
	"time"

	"panebar/internal/config"
	"panebar/internal/diag"
	"panebar/internal/logger"
	"panebar/internal/metrics"
	"panebar/internal/panes"
	"panebar/internal/toolbar"
	"panebar/internal/tui/theme"
	"panebar/internal/weakref"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultIdentifier names the demo toolbar and its built-in resource.
const DefaultIdentifier = "Preferences"

const frameInterval = 16 * time.Millisecond

// ThemeMsg switches the running app to the named theme.
type ThemeMsg struct {
	Name string
}

type frameMsg struct{}

// Options configures an App.
type Options struct {
	Config     *config.Config
	Panes      fs.FS
	Identifier string
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
	Themes     *theme.Registry
}

// App is the root model.
type App struct {
	manager *toolbar.Manager
	tabs    *TabBar
	window  *Window
	source  *panes.Source
	themes  *theme.Registry
	theme   *theme.Theme
	log     *logger.Logger

	// delegate keeps the manager's weak delegate reference alive for the
	// lifetime of the app.
	delegate *weakref.Anchor[toolbar.Delegate]

	keys     keyMap
	help     help.Model
	status   string
	alert    bool
	width    int
	height   int
	quitting bool
}

// New builds the tab bar, window and manager for one session.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Themes == nil {
		opts.Themes = theme.Global()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Panes == nil {
		opts.Panes = panes.Builtin()
	}
	if opts.Identifier == "" {
		opts.Identifier = DefaultIdentifier
	}

	a := &App{
		themes: opts.Themes,
		theme:  opts.Themes.Resolve(cfg.Toolbar.Theme),
		log:    opts.Logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	a.applyHelpStyles()

	level, err := diag.ParseLevel(cfg.Diagnostics.Level)
	if err != nil {
		return nil, err
	}
	reporter := diag.NewReporter(level,
		diag.WithLogger(opts.Logger.Logger),
		diag.WithObserver(opts.Metrics.ObserveDiagnostic),
		diag.WithSink(diag.SinkFunc(a.showDiagnostic)),
	)

	a.window = NewWindow(a.theme, cfg.Toolbar.TransitionFrames)
	a.tabs = NewTabBar(opts.Identifier, a.window, a.theme)
	a.source = panes.NewSource(opts.Panes, panes.WithReporter(reporter))
	a.delegate = weakref.NewAnchor(panes.NewDelegate(cfg, a.source))

	a.manager, err = toolbar.New(a.tabs,
		toolbar.WithSource(a.source),
		toolbar.WithDelegate(a.delegate.Ref()),
		toolbar.WithReporter(reporter),
		toolbar.WithLogger(opts.Logger),
		toolbar.WithMetrics(opts.Metrics),
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Manager returns the toolbar manager.
func (a *App) Manager() *toolbar.Manager { return a.manager }

// TabBar returns the toolbar widget.
func (a *App) TabBar() *TabBar { return a.tabs }

// Window returns the content window.
func (a *App) Window() *Window { return a.window }

// Theme returns the active theme.
func (a *App) Theme() *theme.Theme { return a.theme }

// Status returns the status line text.
func (a *App) Status() string { return a.status }

// Close releases the delegate. The manager then falls back to its defaults.
func (a *App) Close() {
	a.delegate.Release()
}

func (a *App) showDiagnostic(d diag.Diagnostic) {
	a.status = d.Message
	if d.Err != nil {
		a.status += ": " + d.Err.Error()
	}
	a.alert = true
}

func (a *App) applyHelpStyles() {
	a.help.Styles.ShortKey = a.theme.HelpKey
	a.help.Styles.ShortDesc = a.theme.HelpDesc
	a.help.Styles.ShortSeparator = a.theme.HelpSep
	a.help.Styles.FullKey = a.theme.HelpKey
	a.help.Styles.FullDesc = a.theme.HelpDesc
	a.help.Styles.FullSeparator = a.theme.HelpSep
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.animate()
}

func (a *App) animate() tea.Cmd {
	if !a.window.Animating() {
		return nil
	}
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case frameMsg:
		if a.window.Tick() {
			return a, a.animate()
		}
		return a, nil

	case ThemeMsg:
		a.setTheme(msg.Name)
		return a, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if id, ok := a.tabs.ItemAt(msg.X); ok {
				a.selectPane(id)
			}
		}
		return a, a.animate()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.resize(a.width, a.height)
	case key.Matches(msg, a.keys.Next):
		a.clearStatus()
		a.manager.SelectNextPane()
	case key.Matches(msg, a.keys.Prev):
		a.clearStatus()
		a.manager.SelectPreviousPane()
	case key.Matches(msg, a.keys.Jump):
		n := int(msg.String()[0] - '1')
		if id, ok := a.tabs.ItemAtIndex(n); ok {
			a.selectPane(id)
		}
	}
	return a, a.animate()
}

func (a *App) selectPane(id string) {
	a.clearStatus()
	if err := a.manager.SelectToolbarItemWithIdentifier(id); err != nil && !errors.Is(err, toolbar.ErrUnknownIdentifier) {
		a.log.Warn("selection failed", "pane", id, logger.WithError(err))
	}
}

func (a *App) clearStatus() {
	a.status = ""
	a.alert = false
}

func (a *App) setTheme(name string) {
	th, ok := a.themes.Get(name)
	if !ok {
		a.log.Warn("unknown theme", "theme", name)
		return
	}
	a.theme = th
	a.tabs.SetTheme(th)
	a.window.SetTheme(th)
	a.applyHelpStyles()
	a.manager.Rebuild()
	a.resize(a.width, a.height)
	a.log.Debug("theme changed", "theme", name)
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.help.Width = width
	a.tabs.SetWidth(width)
	a.window.SetSize(width, height-1-lipgloss.Height(a.footer()))
}

func (a *App) footer() string {
	line := a.help.View(a.keys)
	if a.status == "" {
		return line
	}
	style := a.theme.Status
	if a.alert {
		style = a.theme.StatusError
	}
	return lipgloss.JoinVertical(lipgloss.Left, style.Render(a.status), line)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.tabs.View(),
		a.window.View(),
		a.footer(),
	)
}
