package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cvform/pkg/render"
)

var (
	renderName    string
	renderFormat  string
	renderOutput  string
	renderSets    []string
	renderSubmits []string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the CV page once",
	Long: `Renders the page for a fresh state. Drafts can be filled with --set and
submitted with --submit, which run in that order.

Example:
  cvform render --set general.name=Ada --set general.email=ada@example.com --submit general`,
	RunE: runRender,
}

func init() {
	flags := renderCmd.Flags()
	flags.StringVarP(&renderName, "renderer", "r", "", "renderer to use (vanilla or text)")
	flags.StringVarP(&renderFormat, "format", "f", "", "text renderer format (plain, styled or json)")
	flags.StringVarP(&renderOutput, "output", "o", "", "output file (stdout if empty)")
	flags.StringArrayVar(&renderSets, "set", nil, "set a draft field: section.key=value")
	flags.StringArrayVar(&renderSubmits, "submit", nil, "submit the draft of a section")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	local := cfg
	if cmd.Flags().Changed("renderer") {
		local.Render.Renderer = renderName
	}
	if cmd.Flags().Changed("format") {
		local.Render.TextFormat = renderFormat
	}

	state, err := buildState(ctx, local, logger)
	if err != nil {
		return err
	}
	updates, err := parseSets(renderSets)
	if err != nil {
		return err
	}
	for section := range updates {
		if !state.Registry().Has(section) {
			return fmt.Errorf("--set: unknown section %q", section)
		}
	}
	for _, section := range state.Registry().Sections() {
		if values, ok := updates[section]; ok {
			if err := state.UpdateMany(section, values); err != nil {
				return err
			}
		}
	}
	for _, section := range renderSubmits {
		if _, err := state.Submit(strings.TrimSpace(section)); err != nil {
			return err
		}
	}

	renderer, err := buildRenderer(local, true)
	if err != nil {
		return err
	}
	themeCfg, err := buildTheme(local)
	if err != nil {
		return err
	}
	view := state.View()
	out, err := renderer.Render(ctx, view, render.RenderOptions{
		Errors: render.DraftErrors(view),
		Theme:  themeCfg,
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), renderOutput, out)
}

// parseSets groups section.key=value assignments by section. Later values
// for the same key win.
func parseSets(raw []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, item := range raw {
		path, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected section.key=value", item)
		}
		section, key, ok := strings.Cut(strings.TrimSpace(path), ".")
		if !ok || section == "" || key == "" {
			return nil, fmt.Errorf("--set %q: expected section.key=value", item)
		}
		if out[section] == nil {
			out[section] = make(map[string]string)
		}
		out[section][key] = value
	}
	return out, nil
}
