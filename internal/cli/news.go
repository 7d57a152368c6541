package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/leakguard/internal/model"
)

var sampleCheck bool

// newsCmd represents the news command
var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show recent security news, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newRenderer(cmd.OutOrStdout()).News(model.DefaultNews())
	},
}

// sampleCmd represents the sample command
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a sample input that trips every detector",
	Long: `Sample prints a demo input containing an email, a password, a link and
a card number. With --check it is scored (and recorded) right away.

Example:
  leakguard sample
  leakguard sample | leakguard check
  leakguard sample --check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sampleCheck {
			return checkText(cmd.Context(), cmd, model.SampleText, model.TypeAuto, checkOptions{mode: modeRecord})
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), model.SampleText)
		return err
	},
}

func init() {
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().BoolVar(&sampleCheck, "check", false, "check the sample instead of printing it")
}
