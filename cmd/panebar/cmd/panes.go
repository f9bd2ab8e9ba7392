package cmd

import (
	"fmt"
	"io"
	"strconv"

	"panebar/internal/toolbar"
	"panebar/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var panesOutput string

var panesCmd = &cobra.Command{
	Use:   "panes",
	Short: "List panes in toolbar order",
	Long: `Resolve the pane-definition resource the way the TUI does and print the
panes in toolbar order, marking the one selected at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyTUIFlags(cmd.Flags(), cfg); err != nil {
			return err
		}
		app, err := tui.New(tui.Options{
			Config: cfg,
			Panes:  panesFS(cfg),
			Logger: log,
		})
		if err != nil {
			return err
		}
		defer app.Close()
		return printPanes(cmd.OutOrStdout(), app.Manager(), panesOutput)
	},
}

func init() {
	addTUIFlags(panesCmd)
	panesCmd.Flags().StringVarP(&panesOutput, "output", "o", "table", "output format (table, yaml)")
	rootCmd.AddCommand(panesCmd)
}

// paneRow is one line of panes output.
type paneRow struct {
	Identifier string `yaml:"identifier"`
	Tag        uint   `yaml:"tag"`
	Label      string `yaml:"label"`
	Icon       string `yaml:"icon,omitempty"`
	Selected   bool   `yaml:"selected,omitempty"`
}

func paneRows(m *toolbar.Manager) []paneRow {
	rows := make([]paneRow, 0, len(m.Panes()))
	for _, p := range m.Panes() {
		row := paneRow{
			Identifier: p.Identifier,
			Tag:        p.Tag,
			Selected:   p.Identifier == m.SelectedIdentifier(),
		}
		if it, ok := m.Item(p.Identifier); ok {
			row.Label = it.Label
			if icon, ok := it.Image.(string); ok {
				row.Icon = icon
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func printPanes(w io.Writer, m *toolbar.Manager, format string) error {
	rows := paneRows(m)
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rows)
	case "table", "":
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("", "IDENTIFIER", "TAG", "LABEL", "ICON")
		for _, r := range rows {
			mark := ""
			if r.Selected {
				mark = "*"
			}
			t.Row(mark, r.Identifier, strconv.FormatUint(uint64(r.Tag), 10), r.Label, r.Icon)
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
