// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"strings"
)

// ImageFormat selects how extracted images are written to disk.
type ImageFormat string

const (
	// ImageJPG writes the raw image bytes under a .jpg name regardless of
	// the embedded format.
	ImageJPG ImageFormat = "jpg"

	// ImageNative writes the raw bytes under the extension of the detected
	// format (png, gif, bmp, ...).
	ImageNative ImageFormat = "native"

	// ImageJPEG decodes the image and re-encodes it as JPEG.
	ImageJPEG ImageFormat = "jpeg"
)

// Valid reports whether f is a known image format.
func (f ImageFormat) Valid() bool {
	switch f {
	case ImageJPG, ImageNative, ImageJPEG:
		return true
	}
	return false
}

// ImageConfig holds settings for image extraction.
type ImageConfig struct {
	// Dir is the name of the image directory created next to the
	// Markdown output (default "images").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Format selects how image files are written: jpg, native, or jpeg.
	Format ImageFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// ValidDir reports whether Dir names a single directory directly inside the
// output directory. An empty Dir selects the default and is valid.
func (c ImageConfig) ValidDir() bool {
	switch c.Dir {
	case "":
		return true
	case ".", "..":
		return false
	}
	if filepath.IsAbs(c.Dir) || filepath.VolumeName(c.Dir) != "" {
		return false
	}
	return !strings.ContainsAny(c.Dir, `/\`)
}

// OutputConfig holds settings for the Markdown output file.
type OutputConfig struct {
	// Frontmatter prepends a YAML frontmatter block describing the source
	// document and the converted sections.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter" mapstructure:"frontmatter"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Enabled controls whether conversions are recorded.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// DBPath is the SQLite database file
	// (default ~/.config/word2md/history.db).
	DBPath string `json:"db" yaml:"db" mapstructure:"db"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all settings read from word2md.yaml, the environment,
// and command-line flags.
type Config struct {
	// CodeLanguage is the info string placed after the opening code fence.
	CodeLanguage string `json:"code_language" yaml:"code_language" mapstructure:"code_language"`

	Images  ImageConfig   `json:"images" yaml:"images" mapstructure:"images"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultImageDir is the image directory name used when none is configured.
const DefaultImageDir = "images"

// WithDefaults returns a copy of c with empty fields filled in.
func (c Config) WithDefaults() Config {
	if c.Images.Dir == "" {
		c.Images.Dir = DefaultImageDir
	}
	if c.Images.Format == "" {
		c.Images.Format = ImageJPG
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	return c
}
