package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/leakguard/internal/model"
	"github.com/ppiankov/leakguard/internal/report"
	"github.com/ppiankov/leakguard/internal/worker"
)

var (
	concurrency  int
	batchType    string
	batchTimeout time.Duration
	batchJSON    string
	batchNoStore bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check multiple inputs from a file in parallel",
	Long: `Batch checks many inputs concurrently:
- Read inputs from a file, one per line ("-" reads stdin)
- Skip blank lines and lines starting with #, drop duplicates
- Score inputs in parallel with a configurable worker count
- Record results in history in input order

Example:
  leakguard batch messages.txt
  leakguard batch messages.txt --concurrency 8 --json results.json
  cat numbers.txt | leakguard batch - --type phone --no-store`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers from config)")
	batchCmd.Flags().StringVarP(&batchType, "type", "t", "auto", "content type applied to every input")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchJSON, "json", "", "write all results as JSON to path (\"-\" for stdout)")
	batchCmd.Flags().BoolVar(&batchNoStore, "no-store", false, "do not record results in history")
}

// batchEntry is the JSON shape of one batch result
type batchEntry struct {
	Input      string            `json:"input"`
	Assessment *model.Assessment `json:"assessment,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	file := args[0]

	declared, err := model.ParseContentType(batchType)
	if err != nil {
		return err
	}

	workers := concurrency
	if workers <= 0 {
		workers = appConfig.Concurrency.Workers
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  leakguard Batch Check\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(stderr, "  Type:         %s\n", declared)
	fmt.Fprintf(stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(stderr, "\n")

	mode := modeReadOnly
	if batchNoStore {
		mode = modeEphemeral
	}
	a, err := openApp(ctx, cmd, mode)
	if err != nil {
		return err
	}
	defer closeApp(a, &err)

	// the processor records in input order itself
	var recorder worker.Recorder
	if !batchNoStore {
		recorder = a.store
	}
	processor := worker.NewBatchProcessor(a.pipeline, recorder, workers, logger)

	results, err := processor.ProcessFile(ctx, file, declared)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0
	entries := make([]batchEntry, 0, len(results))

	out := cmd.OutOrStdout()
	for _, result := range results {
		entry := batchEntry{Input: result.Input, Assessment: result.Assessment}
		if result.Error != nil {
			entry.Error = result.Error.Error()
		}
		entries = append(entries, entry)

		if result.Assessment == nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: %v\n", report.Truncate(result.Input, report.PeekWidth), result.Error)
			continue
		}
		if result.Error != nil {
			// scored but not recorded
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: %v\n", report.Truncate(result.Input, report.PeekWidth), result.Error)
		} else {
			successCount++
		}

		if batchJSON != "-" {
			fmt.Fprintf(out, "%3d  %-6s  %s\n", result.Assessment.Score, result.Assessment.Label, report.Truncate(result.Input, report.PeekWidth))
		}
	}

	if batchJSON == "-" {
		if err := report.WriteJSON(out, entries); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	} else if batchJSON != "" {
		if err := report.WriteJSONFile(batchJSON, entries); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}

	// Summary
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Batch Complete\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:     %s\n", plural(len(results), "input"))
	fmt.Fprintf(stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(stderr, "\n")

	return ctx.Err()
}
