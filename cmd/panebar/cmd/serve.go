package cmd

import (
	"panebar/internal/logger"
	"panebar/internal/metrics"
	"panebar/internal/ssh"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the toolbar TUI over SSH",
	Long: `Serve the toolbar TUI over SSH on ssh.host:ssh.port. Every session gets
its own toolbar, window and manager.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyTUIFlags(cmd.Flags(), cfg); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		m := metrics.New()
		if addr := cfg.Metrics.Addr; addr != "" {
			go func() {
				if err := m.Serve(ctx, addr); err != nil {
					log.Warn("metrics endpoint stopped", logger.WithError(err))
				}
			}()
		}

		srv := ssh.NewServer(cfg,
			ssh.WithLogger(log),
			ssh.WithMetrics(m),
			ssh.WithPanes(panesFS(cfg)),
		)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	addTUIFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}
