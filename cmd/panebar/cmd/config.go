package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"panebar/internal/config"
	"panebar/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	initForce bool
	initYes   bool
	initPath  string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a configuration file",
	Long:        `Write a configuration file, asking for the main settings unless --yes is given.`,
	Annotations: map[string]string{"config": "skip"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := initPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}

		c := config.DefaultConfig()
		if !initYes {
			form, apply := configForm(c)
			if err := form.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
				return err
			}
			apply()
		}

		if err := config.Write(path, c, initForce); err != nil {
			if errors.Is(err, config.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileUsed(cfgFile)
		if path == "" {
			path = "(none, defaults only)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "write defaults without asking")
	configInitCmd.Flags().StringVar(&initPath, "path", "", "file to write (default is $HOME/.config/panebar/config.yaml)")

	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configForm edits the main settings of c. apply copies the fields that need
// conversion once the form completes.
func configForm(c *config.Config) (*huh.Form, func()) {
	themes := theme.Global()
	options := make([]huh.Option[string], 0, len(themes.Names()))
	for _, name := range themes.Names() {
		options = append(options, huh.NewOption(name, name))
	}

	frames := strconv.Itoa(c.Toolbar.TransitionFrames)
	verbose := c.Diagnostics.Level == 1

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Toolbar"),

			huh.NewSelect[string]().
				Title("Theme").
				Options(options...).
				Value(&c.Toolbar.Theme),

			huh.NewConfirm().
				Title("Center items").
				Value(&c.Toolbar.Center),

			huh.NewInput().
				Title("Default pane").
				Description("Identifier selected at startup; empty selects the first pane").
				Value(&c.Toolbar.DefaultPane),

			huh.NewInput().
				Title("Transition frames").
				Value(&frames).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(s); err != nil || n < 0 {
						return fmt.Errorf("frames must be a non-negative number")
					}
					return nil
				}),
		),

		huh.NewGroup(
			huh.NewNote().
				Title("Panes"),

			huh.NewInput().
				Title("Directory").
				Description("Directory of pane-definition files; empty uses the built-in panes").
				Value(&c.Panes.Dir),

			huh.NewInput().
				Title("Resource").
				Description("Resource name; empty uses the toolbar identifier").
				Value(&c.Panes.Resource),
		),

		huh.NewGroup(
			huh.NewNote().
				Title("Logging"),

			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warning", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&c.Log.Level),

			huh.NewConfirm().
				Title("Report diagnostics").
				Description("Show recovered toolbar errors in the status line").
				Value(&verbose),
		),
	).WithTheme(themes.Resolve(c.Toolbar.Theme).HuhTheme())

	apply := func() {
		if n, err := strconv.Atoi(frames); err == nil {
			c.Toolbar.TransitionFrames = n
		}
		c.Diagnostics.Level = 0
		if verbose {
			c.Diagnostics.Level = 1
		}
	}
	return form, apply
}
