// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/word2md/internal/convert"
	"github.com/pdiddy/word2md/internal/logger"
	"github.com/pdiddy/word2md/internal/opener"
	"github.com/pdiddy/word2md/internal/section"
	"github.com/pdiddy/word2md/internal/tui"
	"github.com/pdiddy/word2md/pkg/types"
)

var guiCmd = &cobra.Command{
	Use:     "gui",
	Aliases: []string{"form"},
	Short:   "Open the interactive conversion form",
	Long: `Gui opens a terminal form: enter a Word file, move sections from the
section list to the conversion list, pick a code language and convert.
After a successful conversion the Markdown file or its folder can be
opened, or the result previewed in place.`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	guiCmd.Flags().StringP("input", "i", "", "input .docx file to load on start")
	guiCmd.Flags().StringP("output", "o", "", "output .md file")
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")

	// The form owns the terminal, so diagnostics are dropped.
	log := logger.Discard()
	opts := []convert.Option{convert.WithLogger(log)}
	if store := openHistory(cfg, log); store != nil {
		defer store.Close()
		opts = append(opts, convert.WithRecorder(store))
	}
	c := convert.New(opts...)

	formOpts := tui.Options{
		Input:        input,
		Output:       output,
		CodeLanguage: cfg.CodeLanguage,
		Load:         loadSummaries,
		Convert: func(ctx context.Context, req tui.Request) (string, error) {
			res, err := c.Convert(ctx, formRequest(cfg, req), io.Discard)
			return res.Output, err
		},
		Render: renderMarkdown,
	}
	if op, err := opener.Detect(); err == nil {
		formOpts.Opener = op
	}

	return tui.Run(commandContext(cmd), formOpts)
}

func loadSummaries(path string) ([]types.SectionSummary, error) {
	sections, err := convert.LoadSections(path)
	if err != nil {
		return nil, err
	}
	return section.Summaries(sections), nil
}

// formRequest turns the form's conversion list into a conversion request.
func formRequest(cfg types.Config, req tui.Request) convert.Request {
	return convert.Request{
		Source:       req.Input,
		Output:       req.Output,
		CodeLanguage: req.CodeLanguage,
		Selection:    section.NewSelection(req.Sections...),
		Images:       cfg.Images,
		Frontmatter:  cfg.Output.Frontmatter,
	}
}
