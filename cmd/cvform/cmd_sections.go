package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sectionsJSON bool

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the registered sections and their fields",
	RunE:  runSections,
}

func init() {
	sectionsCmd.Flags().BoolVar(&sectionsJSON, "json", false, "print the section schemas as JSON")
}

func runSections(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sectionsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reg.Schemas())
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, schema := range reg.Schemas() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", schema.Name, schema.Multiplicity, schema.Title)
		for _, field := range schema.Fields {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", field.Key, field.Kind, field.Label)
		}
	}
	return w.Flush()
}
