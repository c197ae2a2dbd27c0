// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the word2md CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/word2md/internal/history"
	"github.com/pdiddy/word2md/internal/logger"
	"github.com/pdiddy/word2md/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the word2md CLI. Given -i and -o it
// converts directly, like the convert subcommand.
var rootCmd = &cobra.Command{
	Use:   "word2md",
	Short: "Convert Word documents to Markdown, section by section",
	Long: `word2md converts .docx files to Markdown. The document is split into
sections at every Heading 1; you choose which sections to convert, either
interactively, with a range such as 2-4 or 1,3,5, or in the terminal form.

Heading 2 and Heading 3, bold text, code blocks, embedded images and plain
URLs are carried over. Images are written to an images/ directory next to
the Markdown file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("input") {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./word2md.yaml or ~/.config/word2md/word2md.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	addConvertFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("word2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "word2md"))
		}
	}

	viper.SetDefault("code_language", "")
	viper.SetDefault("images.dir", types.DefaultImageDir)
	viper.SetDefault("images.format", string(types.ImageJPG))
	viper.SetDefault("output.frontmatter", false)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.db", "")
	viper.SetDefault("log.level", "warn")

	viper.SetEnvPrefix("WORD2MD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged configuration.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	cfg = cfg.WithDefaults()
	if !cfg.Images.Format.Valid() {
		return types.Config{}, fmt.Errorf("invalid image format %q: use jpg, native, or jpeg", cfg.Images.Format)
	}
	if !cfg.Images.ValidDir() {
		return types.Config{}, fmt.Errorf("invalid image directory %q: use a single directory name", cfg.Images.Dir)
	}
	return cfg, nil
}

func newLogger(cfg types.Config) *logger.Logger {
	return logger.New(os.Stderr, cfg.Log.Level)
}

// openHistory opens the history store when history is enabled. A store
// that cannot be opened is logged and skipped.
func openHistory(cfg types.Config, log *logger.Logger) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.NewStore(cfg.History)
	if err != nil {
		log.Warn("history disabled", "err", err)
		return nil
	}
	return store
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
