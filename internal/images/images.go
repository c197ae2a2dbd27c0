// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images writes embedded document images next to the Markdown
// output and returns the links that reference them.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/word2md/internal/docx"
	"github.com/pdiddy/word2md/pkg/types"
)

// ErrInvalidDir is returned for an image directory that is not a single
// name inside the output directory.
var ErrInvalidDir = errors.New("invalid image directory")

// jpegQuality is the quality used when re-encoding images as JPEG.
const jpegQuality = 90

// Extractor saves images into a directory beside the Markdown file.
type Extractor struct {
	dir     string
	dirName string
	format  types.ImageFormat
	saved   int
}

// New returns an Extractor writing into <outputDir>/<cfg.Dir>. Prepare
// deletes that directory, so cfg.Dir must be a plain directory name.
func New(outputDir string, cfg types.ImageConfig) (*Extractor, error) {
	if !cfg.ValidDir() {
		return nil, fmt.Errorf("%w %q: use a single directory name", ErrInvalidDir, cfg.Dir)
	}
	dirName := cfg.Dir
	if dirName == "" {
		dirName = types.DefaultImageDir
	}
	format := cfg.Format
	if format == "" {
		format = types.ImageJPG
	}
	return &Extractor{
		dir:     filepath.Join(outputDir, dirName),
		dirName: dirName,
		format:  format,
	}, nil
}

// Dir returns the image directory path.
func (e *Extractor) Dir() string { return e.dir }

// Saved returns the number of images written since Prepare.
func (e *Extractor) Saved() int { return e.saved }

// Prepare removes any previous image directory and creates it empty.
func (e *Extractor) Prepare() error {
	if err := os.RemoveAll(e.dir); err != nil {
		return fmt.Errorf("clearing image directory %s: %w", e.dir, err)
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("creating image directory %s: %w", e.dir, err)
	}
	e.saved = 0
	return nil
}

// Save writes image n of the given section and returns the link to use in
// the Markdown document, relative to the Markdown file.
func (e *Extractor) Save(section, n int, m docx.Media) (string, error) {
	data, ext, err := e.encode(m)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d-%d.%s", section, n, ext)
	if err := os.WriteFile(filepath.Join(e.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing image %s: %w", name, err)
	}
	e.saved++
	return path.Join(e.dirName, name), nil
}

// encode returns the bytes and file extension for m under the configured
// format.
func (e *Extractor) encode(m docx.Media) ([]byte, string, error) {
	switch e.format {
	case types.ImageNative:
		return m.Data, nativeExt(m), nil
	case types.ImageJPEG:
		img, _, err := image.Decode(bytes.NewReader(m.Data))
		if err != nil {
			// Vector formats (EMF, WMF) cannot be decoded; keep them as-is.
			return m.Data, nativeExt(m), nil
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("encoding %s as JPEG: %w", m.Target, err)
		}
		return buf.Bytes(), "jpg", nil
	default:
		return m.Data, "jpg", nil
	}
}

// nativeExt detects the image format from its content, falling back to
// the extension of the part name.
func nativeExt(m docx.Media) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(m.Data)); err == nil {
		if format == "jpeg" {
			return "jpg"
		}
		return format
	}
	if ext := strings.TrimPrefix(strings.ToLower(path.Ext(m.Target)), "."); ext != "" {
		return ext
	}
	return "bin"
}
