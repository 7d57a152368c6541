package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/leakguard/internal/store"
)

var (
	alertsYes  bool
	alertsJSON bool
)

// alertsCmd represents the alerts command
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Manage saved alerts",
	Long: `Alerts are checks you chose to keep. They survive clear-history and can
be exported as JSON.

Example:
  leakguard alerts
  leakguard alerts add
  leakguard alerts remove 3f2b9c1e-...
  leakguard alerts export alerts.json`,
	Args: cobra.NoArgs,
	RunE: runAlertsList,
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved alerts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runAlertsList,
}

var alertsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save the last check as an alert",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := openApp(cmd.Context(), cmd, modeReadOnly)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		alert, err := a.store.PromoteLast(cmd.Context())
		if isNoAssessment(err) {
			return errors.New("no result to save; run a check first")
		}
		if err != nil {
			return fmt.Errorf("save alert: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved alert %s (%s, %d)\n", alert.ID, alert.Label, alert.Score)
		return nil
	},
}

var alertsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a saved alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := openApp(cmd.Context(), cmd, modeReadOnly)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if err := a.store.RemoveAlert(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, store.ErrAlertNotFound) {
				return fmt.Errorf("alert %s: %w", args[0], err)
			}
			return fmt.Errorf("remove alert: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed alert %s\n", args[0])
		return nil
	},
}

var alertsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved alerts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if err := requireYes(alertsYes, "clear all alerts"); err != nil {
			return err
		}

		a, err := openApp(cmd.Context(), cmd, modeReadOnly)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if err := a.store.ClearAlerts(cmd.Context()); err != nil {
			return fmt.Errorf("clear alerts: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Alerts cleared")
		return nil
	},
}

var alertsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export saved alerts as JSON (default: stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := openApp(cmd.Context(), cmd, modeReadOnly)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if len(args) == 0 || args[0] == "-" {
			return a.store.ExportAlerts(cmd.OutOrStdout())
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close export file: %w", closeErr)
			}
		}()

		if err := a.store.ExportAlerts(f); err != nil {
			return fmt.Errorf("export alerts: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %s to %s\n", plural(len(a.store.Alerts()), "alert"), args[0])
		return nil
	},
}

func runAlertsList(cmd *cobra.Command, args []string) (err error) {
	a, err := openApp(cmd.Context(), cmd, modeReadOnly)
	if err != nil {
		return err
	}
	defer closeApp(a, &err)

	if alertsJSON {
		return a.store.ExportAlerts(cmd.OutOrStdout())
	}
	return a.out.Alerts(a.store.Alerts())
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsAddCmd)
	alertsCmd.AddCommand(alertsRemoveCmd)
	alertsCmd.AddCommand(alertsClearCmd)
	alertsCmd.AddCommand(alertsExportCmd)

	alertsListCmd.Flags().BoolVar(&alertsJSON, "json", false, "print alerts as JSON")
	alertsClearCmd.Flags().BoolVarP(&alertsYes, "yes", "y", false, "confirm deletion")
}
