// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/word2md/internal/convert"
	"github.com/pdiddy/word2md/internal/logger"
	"github.com/pdiddy/word2md/internal/opener"
	"github.com/pdiddy/word2md/internal/section"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert selected sections of a Word document to Markdown",
	Long: `Convert reads a .docx file, splits it into sections at every Heading 1
and writes the chosen sections to a Markdown file. Without --range the
detected sections are listed and you are asked which to convert.

Ranges are either start-end (2-4) or a comma-separated list (1,3,5).
Images are written to an images/ directory next to the output and named
<section>-<n>.jpg.`,
	Example: `  word2md convert -i guide.docx -o guide.md
  word2md convert -i guide.docx -o out/guide.md -l python -r 2-4
  word2md convert -i guide.docx -o guide.md -r 1,3 --watch`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "input .docx file")
	f.StringP("output", "o", "", "output .md file")
	f.StringP("lang", "l", "", "language for code blocks")
	f.StringP("range", "r", "", "sections to convert, e.g. 2-4 or 1,3,5 (prompted when omitted)")
	f.Bool("frontmatter", false, "prepend YAML frontmatter")
	f.String("image-format", "", "image files: jpg (raw bytes), native (detected extension), or jpeg (re-encoded)")
	f.String("image-dir", "", "image directory name next to the output")
	f.Bool("watch", false, "convert again whenever the input file changes")
	f.Bool("open", false, "open the Markdown file after converting")
}

// bindConvertFlags binds the flags of the running command to config keys.
// Root and convert define the same flags, so binding happens per run.
func bindConvertFlags(f *pflag.FlagSet) {
	for key, name := range map[string]string{
		"code_language":      "lang",
		"images.format":      "image-format",
		"images.dir":         "image-dir",
		"output.frontmatter": "frontmatter",
	} {
		if fl := f.Lookup(name); fl != nil && fl.Changed {
			_ = viper.BindPFlag(key, fl)
		}
	}
}

func runConvert(cmd *cobra.Command, _ []string) error {
	bindConvertFlags(cmd.Flags())
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	rangeStr, _ := cmd.Flags().GetString("range")
	watch, _ := cmd.Flags().GetBool("watch")
	openAfter, _ := cmd.Flags().GetBool("open")

	if input == "" || output == "" {
		return fmt.Errorf("both --input and --output are required")
	}

	req := convert.Request{
		Source:       input,
		Output:       output,
		CodeLanguage: cfg.CodeLanguage,
		Images:       cfg.Images,
		Frontmatter:  cfg.Output.Frontmatter,
	}
	if rangeStr != "" {
		sel, err := section.ParseRange(rangeStr)
		if err != nil {
			return err
		}
		req.Selection = sel
	}

	log := newLogger(cfg)
	opts := []convert.Option{
		convert.WithLogger(log),
		convert.WithSelector(section.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())),
	}
	if store := openHistory(cfg, log); store != nil {
		defer store.Close()
		opts = append(opts, convert.WithRecorder(store))
	}
	c := convert.New(opts...)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch {
		return c.Watch(ctx, req, cmd.OutOrStdout())
	}

	res, err := c.Convert(ctx, req, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if openAfter {
		openResult(res.Output, log)
	}
	return nil
}

func openResult(path string, log *logger.Logger) {
	op, err := opener.Detect()
	if err != nil {
		log.Warn("cannot open result", "err", err)
		return
	}
	if err := op.Open(path); err != nil {
		log.Warn("cannot open result", "path", path, "err", err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
