package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cvform/pkg/render"
	"github.com/goliatone/go-cvform/pkg/renderers/tui"
)

var fillOutput string

// newPromptDriver is swapped in tests.
var newPromptDriver = func(out io.Writer) tui.PromptDriver {
	return tui.NewSurveyDriver(out)
}

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill in the CV interactively",
	Long: `Prompts for every field of a chosen section, submits it into the CV and
returns to the section menu. Choose "Done" to finish; the CV is then rendered
with the configured renderer to stdout or --output.`,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "write the rendered CV to this file")
}

func runFill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	state, err := buildState(ctx, cfg, logger)
	if err != nil {
		return err
	}

	session, err := tui.New(state,
		tui.WithPromptDriver(newPromptDriver(cmd.OutOrStdout())),
		tui.WithMaxAttempts(cfg.Form.MaxAttempts),
		tui.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	if err := session.Run(ctx); err != nil {
		return err
	}

	renderer, err := buildRenderer(cfg, false)
	if err != nil {
		return err
	}
	themeCfg, err := buildTheme(cfg)
	if err != nil {
		return err
	}
	out, err := renderer.Render(ctx, state.View(), render.RenderOptions{Theme: themeCfg})
	if err != nil {
		return err
	}
	logger.Debug("cv rendered", zap.String("renderer", renderer.Name()), zap.Int("bytes", len(out)))
	return writeOutput(cmd.OutOrStdout(), fillOutput, out)
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if strings.TrimSpace(path) == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(w, "CV written to %s\n", path)
	return nil
}
