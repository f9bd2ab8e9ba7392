package cmd

import (
	"errors"
	"io/fs"
	"os"

	"panebar/internal/config"
	"panebar/internal/logger"
	"panebar/internal/metrics"
	"panebar/internal/panes"
	"panebar/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("stdout is not a terminal; use 'panebar panes' for non-interactive output")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the toolbar TUI",
	Long: `Open the toolbar TUI in the current terminal.

Panes are read from panes.dir when set, otherwise from the built-in
Preferences resource. Changing toolbar.theme in the config file while the
TUI runs restyles it in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	addTUIFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

// addTUIFlags registers the flags that override toolbar settings.
func addTUIFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("theme", "", "toolbar theme (dark, light, dracula, nord, gruvbox)")
	f.Bool("center", false, "center toolbar items")
	f.String("pane", "", "pane selected at startup")
	f.String("resource", "", "pane-definition resource name")
	f.String("panes-dir", "", "directory holding pane-definition resources")
}

// applyTUIFlags copies explicitly set flags onto c.
func applyTUIFlags(f *pflag.FlagSet, c *config.Config) error {
	var err error
	if f.Changed("theme") {
		if c.Toolbar.Theme, err = f.GetString("theme"); err != nil {
			return err
		}
	}
	if f.Changed("center") {
		if c.Toolbar.Center, err = f.GetBool("center"); err != nil {
			return err
		}
	}
	if f.Changed("pane") {
		if c.Toolbar.DefaultPane, err = f.GetString("pane"); err != nil {
			return err
		}
	}
	if f.Changed("resource") {
		if c.Panes.Resource, err = f.GetString("resource"); err != nil {
			return err
		}
	}
	if f.Changed("panes-dir") {
		if c.Panes.Dir, err = f.GetString("panes-dir"); err != nil {
			return err
		}
	}
	return nil
}

// panesFS returns the directory named by panes.dir, or the built-in resources.
func panesFS(c *config.Config) fs.FS {
	if c.Panes.Dir != "" {
		return os.DirFS(c.Panes.Dir)
	}
	return panes.Builtin()
}

func runTUI(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	if err := applyTUIFlags(cmd.Flags(), cfg); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	m := metrics.New()
	app, err := tui.New(tui.Options{
		Config:  cfg,
		Panes:   panesFS(cfg),
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	stop := watchTheme(p)
	defer stop()

	if addr := cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := m.Serve(ctx, addr); err != nil {
				log.Warn("metrics endpoint stopped", logger.WithError(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// watchTheme forwards toolbar.theme changes in the config file to p.
func watchTheme(p *tea.Program) func() {
	w, err := config.NewWatcher(cfgFile)
	if err != nil {
		log.Warn("config watch disabled", logger.WithError(err))
		return func() {}
	}

	last := w.Current().Toolbar.Theme
	w.OnChange(func(c *config.Config) {
		if c.Toolbar.Theme == last {
			return
		}
		last = c.Toolbar.Theme
		log.Info("theme changed", "theme", last)
		p.Send(tui.ThemeMsg{Name: last})
	})
	w.OnError(func(err error) {
		log.Warn("config reload failed", logger.WithError(err))
	})
	if err := w.Start(); err != nil {
		log.Warn("config watch disabled", logger.WithError(err))
	}
	return w.Stop
}
