package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ppiankov/leakguard/internal/report"
	"github.com/ppiankov/leakguard/internal/store"
)

var (
	historyLimit int
	historyJSON  bool
	statsJSON    bool
	clearYes     bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded checks, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := openApp(cmd.Context(), cmd, modeReadOnly)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		items := a.store.History()
		if historyLimit > 0 && len(items) > historyLimit {
			items = items[:historyLimit]
		}

		if historyJSON {
			return report.WriteJSON(cmd.OutOrStdout(), items)
		}
		return a.out.History(items)
	},
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the dashboard: counters, last check, top item and recent alerts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := openApp(cmd.Context(), cmd, modeReadOnly)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if statsJSON {
			return report.WriteJSON(cmd.OutOrStdout(), a.store.Stats())
		}

		d := report.Dashboard{
			Stats:  a.store.Stats(),
			Alerts: a.store.Alerts(),
		}
		if last, ok := a.store.Last(); ok {
			d.Last = &last
		}
		if top, ok := a.store.Top(); ok {
			d.Top = &top
		}
		return a.out.Dashboard(d)
	},
}

// clearHistoryCmd represents the clear-history command
var clearHistoryCmd = &cobra.Command{
	Use:   "clear-history",
	Short: "Delete all recorded checks and reset counters (alerts are kept)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if err := requireYes(clearYes, "clear history"); err != nil {
			return err
		}

		a, err := openApp(cmd.Context(), cmd, modeReadOnly)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if err := a.store.ClearHistory(cmd.Context()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ History cleared")
		return nil
	},
}

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the last check as a plain-text report for copying",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := openApp(cmd.Context(), cmd, modeReadOnly)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		last, ok := a.store.Last()
		if !ok {
			return fmt.Errorf("no report to copy: %w", store.ErrNoAssessment)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), report.CopyText(last)+"\n")
		return err
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(clearHistoryCmd)
	rootCmd.AddCommand(reportCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of checks to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print history as JSON")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print counters as JSON")
	clearHistoryCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "confirm deletion")
}

// isNoAssessment reports whether err means nothing has been checked yet
func isNoAssessment(err error) bool {
	return errors.Is(err, store.ErrNoAssessment)
}
