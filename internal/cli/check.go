package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/leakguard/internal/model"
)

var (
	checkType    string
	checkAlert   bool
	checkJSON    string
	checkMD      string
	checkNoStore bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Score text for privacy leak risk",
	Long: `Check scores a piece of text for the risk that sharing it leaks
personal or financial data:
- Detect emails, phone numbers, URLs, card-like numbers and sensitive keywords
- Combine detector weights into a 0-100 score with a Low/Medium/High label
- Explain every point with reasons and give concrete suggestions

Text is read from the argument, or from stdin when it is omitted or "-".
The result is recorded in history unless --no-store is given.

Example:
  leakguard check "Contact me at john@example.com"
  pbpaste | leakguard check --type email
  leakguard check "my password is Secret123" --alert --json -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// quickCmd represents the quick command
var quickCmd = &cobra.Command{
	Use:   "quick <text>",
	Short: "Check text with automatic type detection",
	Long: `Quick checks a single argument with automatic content type detection
and records the result, like "check --type auto".

Example:
  leakguard quick "call me on +1 555-123-4567"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkText(cmd.Context(), cmd, args[0], model.TypeAuto, checkOptions{mode: modeRecord})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(quickCmd)

	checkCmd.Flags().StringVarP(&checkType, "type", "t", "auto", "content type (auto, email, phone, link, sms, other)")
	checkCmd.Flags().BoolVar(&checkAlert, "alert", false, "save the result as an alert")
	checkCmd.Flags().StringVar(&checkJSON, "json", "", "write the assessment as JSON to path (\"-\" for stdout)")
	checkCmd.Flags().StringVar(&checkMD, "md", "", "write the assessment as Markdown to path (\"-\" for stdout)")
	checkCmd.Flags().BoolVar(&checkNoStore, "no-store", false, "do not record the check in history (cannot be combined with --alert)")
}

type checkOptions struct {
	mode     appMode
	alert    bool
	jsonPath string
	mdPath   string
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkAlert && checkNoStore {
		return fmt.Errorf("--alert saves the check and cannot be combined with --no-store")
	}

	declared, err := model.ParseContentType(checkType)
	if err != nil {
		return err
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	mode := modeRecord
	if checkNoStore {
		mode = modeEphemeral
	}

	return checkText(cmd.Context(), cmd, text, declared, checkOptions{
		mode:     mode,
		alert:    checkAlert,
		jsonPath: checkJSON,
		mdPath:   checkMD,
	})
}

func checkText(ctx context.Context, cmd *cobra.Command, text string, declared model.ContentType, opts checkOptions) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx, cmd, opts.mode)
	if err != nil {
		return err
	}
	defer closeApp(a, &err)

	result, err := a.pipeline.Check(ctx, text, declared)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	// stdout belongs to the structured output when it is requested there
	if opts.jsonPath != "-" && opts.mdPath != "-" {
		if err := a.out.Assessment(result); err != nil {
			return err
		}
	}

	if err := writeOutput(cmd, opts.jsonPath, result, false); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	if err := writeOutput(cmd, opts.mdPath, result, true); err != nil {
		return fmt.Errorf("write Markdown: %w", err)
	}

	if opts.alert {
		alert, err := a.store.Promote(ctx, result)
		if err != nil {
			return fmt.Errorf("save alert: %w", err)
		}
		logger.Info("alert saved", "id", alert.ID, "score", alert.Score)
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Saved as alert %s\n", alert.ID)
	}

	return nil
}
