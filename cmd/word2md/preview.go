// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const defaultPreviewWidth = 100

var previewCmd = &cobra.Command{
	Use:   "preview <file.md>",
	Short: "Render a Markdown file in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		out, err := renderMarkdown(string(data), width)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	previewCmd.Flags().Int("width", defaultPreviewWidth, "word wrap width")
	rootCmd.AddCommand(previewCmd)
}

// renderMarkdown styles Markdown for the terminal, falling back to the
// plain text when no renderer can be built.
func renderMarkdown(markdown string, width int) (string, error) {
	if width <= 0 {
		width = defaultPreviewWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown, nil
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
