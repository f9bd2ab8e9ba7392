package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"panebar/internal/config"
	"panebar/internal/logger"

	"github.com/spf13/cobra"
)

var (
	// cfgFile is the path to the config file (set via --config flag)
	cfgFile string

	// cfg holds the loaded configuration
	cfg *config.Config

	// log is the logger instance
	log *logger.Logger

	// cmdStartTime tracks when command execution started
	cmdStartTime time.Time

	// cmdCtx carries the logger and command context
	cmdCtx context.Context
)

// rootCmd runs the TUI when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "panebar",
	Short: "panebar switches content panes from a toolbar",
	Long: `panebar binds a tab-bar toolbar to a set of content panes loaded from
YAML resources. Selecting a toolbar item swaps the pane shown below it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config init must work with a broken or missing file
		if skipsConfig(cmd) {
			cfg = config.DefaultConfig()
			log = logger.Discard()
			cmdCtx = context.Background()
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err = logger.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cc := logger.NewCommandContext(cmd, args)
		cmdCtx = logger.WithCommandContext(context.Background(), cc)
		cmdCtx = logger.WithLogger(cmdCtx, log)
		cmdStartTime = time.Now()

		log.LogAttrs(cmdCtx, slog.LevelDebug, "command started", cc.LogAttrs()...)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log == nil {
			return nil
		}

		cc := logger.CommandContextFrom(cmdCtx)
		if cc != nil {
			log.Debug("command completed",
				"command", cc.Command,
				"duration_ms", time.Since(cmdStartTime).Milliseconds(),
				"request_id", cc.RequestID,
			)
		}
		return log.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/panebar/config.yaml)")
	addTUIFlags(rootCmd)
}

func skipsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["config"] == "skip" {
			return true
		}
	}
	return false
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmdCtx, os.Interrupt, syscall.SIGTERM)
}
