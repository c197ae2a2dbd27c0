// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/word2md/internal/history"
	"github.com/pdiddy/word2md/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent conversions",
	Long: `History lists conversions recorded in the local history database,
newest first. Recording is controlled by history.enabled in word2md.yaml.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion history as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of conversions to show (0 for all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistoryStore() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return history.NewStore(cfg.History)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(commandContext(cmd), limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON {
		if records == nil {
			records = []types.ConversionRecord{}
		}
		return encode(w, "json", records)
	}
	formatHistory(w, records)
	return nil
}

func formatHistory(w io.Writer, records []types.ConversionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-9s  %-12s  %-6s  %s\n", "When", "Status", "Sections", "Images", "Source -> Output")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range records {
		secs := make([]string, len(r.Sections))
		for i, s := range r.Sections {
			secs[i] = fmt.Sprint(s)
		}
		fmt.Fprintf(w, "%-19s  %-9s  %-12s  %-6d  %s -> %s\n",
			r.ConvertedAt.Local().Format(time.DateTime), r.Status,
			strings.Join(secs, ","), r.Images, r.SourcePath, r.OutputPath)
		if r.Error != "" {
			fmt.Fprintf(w, "%21s%s\n", "", r.Error)
		}
	}
}

func runHistoryExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}
	if err := store.Export(commandContext(cmd), w, format); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported history to %s\n", outPath)
	}
	return nil
}
