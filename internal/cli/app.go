package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/leakguard/internal/model"
	"github.com/ppiankov/leakguard/internal/pipeline"
	"github.com/ppiankov/leakguard/internal/report"
	"github.com/ppiankov/leakguard/internal/store"
)

// app bundles the collaborators a command needs
type app struct {
	store    *store.Store
	pipeline *pipeline.Pipeline
	out      *report.Renderer
}

// appMode controls what a command's pipeline persists
type appMode int

const (
	modeReadOnly  appMode = iota // score without recording
	modeRecord                   // record every check in history
	modeEphemeral                // score without recording or writing the disk cache
)

// openApp opens the configured store and builds the pipeline for mode
func openApp(ctx context.Context, cmd *cobra.Command, mode appMode) (*app, error) {
	s, err := store.OpenConfigured(ctx, appConfig.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cfg := *appConfig
	var recorder pipeline.Recorder
	switch mode {
	case modeRecord:
		recorder = s
	case modeEphemeral:
		cfg.Cache.Dir = ""
	}

	return &app{
		store:    s,
		pipeline: pipeline.NewPipeline(&cfg, recorder, logger),
		out:      newRenderer(cmd.OutOrStdout()),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// closeApp folds a close error into the command's error
func closeApp(a *app, err *error) {
	if closeErr := a.Close(); closeErr != nil && *err == nil {
		*err = fmt.Errorf("close store: %w", closeErr)
	}
}

func newRenderer(w io.Writer) *report.Renderer {
	color := false
	if f, ok := w.(*os.File); ok && appConfig.Output.Color {
		color = report.ColorEnabled(f, noColor)
	}
	return report.NewRenderer(w, color)
}

// readInput returns the text argument, or stdin when it is absent or "-"
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// writeOutput writes v to path, "-" meaning stdout
func writeOutput(cmd *cobra.Command, path string, a model.Assessment, markdown bool) error {
	switch {
	case path == "":
		return nil
	case path == "-" && markdown:
		_, err := io.WriteString(cmd.OutOrStdout(), report.Markdown(a))
		return err
	case path == "-":
		return report.WriteJSON(cmd.OutOrStdout(), a)
	case markdown:
		return report.WriteMarkdownFile(path, a)
	default:
		return report.WriteJSONFile(path, a)
	}
}

// requireYes guards destructive commands
func requireYes(yes bool, action string) error {
	if !yes {
		return fmt.Errorf("refusing to %s without --yes", action)
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %s", n, word+"s")
}
