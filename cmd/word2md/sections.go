// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/word2md/internal/convert"
	"github.com/pdiddy/word2md/internal/section"
	"github.com/pdiddy/word2md/pkg/types"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the Heading 1 sections of a Word document",
	Long: `Sections prints the selectable sections of a .docx file with their
indices, the numbers accepted by convert --range. Sections without body
text are not listed but keep their number.`,
	Args: cobra.NoArgs,
	RunE: runSections,
}

func init() {
	sectionsCmd.Flags().StringP("input", "i", "", "input .docx file")
	sectionsCmd.Flags().Bool("json", false, "output as JSON")
	sectionsCmd.Flags().Bool("yaml", false, "output as YAML")
	_ = sectionsCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")

	sections, err := convert.LoadSections(input)
	if err != nil {
		return err
	}
	summaries := section.Summaries(sections)
	if summaries == nil {
		summaries = []types.SectionSummary{}
	}

	w := cmd.OutOrStdout()
	switch {
	case asJSON:
		return encode(w, "json", summaries)
	case asYAML:
		return encode(w, "yaml", summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No sections found.")
		return nil
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "%d: %s\n", s.Index, s.Title)
	}
	return nil
}

// encode writes v to w as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q: use yaml or json", format)
}
