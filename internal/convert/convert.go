// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the Word-to-Markdown pipeline: parse sections,
// select sections, render them with their images, and write the result.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/word2md/internal/docx"
	"github.com/pdiddy/word2md/internal/images"
	"github.com/pdiddy/word2md/internal/logger"
	"github.com/pdiddy/word2md/internal/markdown"
	"github.com/pdiddy/word2md/internal/section"
	"github.com/pdiddy/word2md/pkg/types"
)

// ErrNoSections is returned when the selection matches no section.
var ErrNoSections = errors.New("no sections selected")

// Selector chooses sections when a request carries no explicit selection.
// section.Prompter implements it for console use.
type Selector interface {
	Choose(ctx context.Context, sections []section.Section) ([]section.Section, error)
}

// Recorder stores the outcome of each conversion. history.Store
// implements it.
type Recorder interface {
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// Request describes one conversion.
type Request struct {
	// Source is the .docx file to read.
	Source string

	// Output is the Markdown file to write. Images go to a directory
	// beside it.
	Output string

	// CodeLanguage is the info string for code fences.
	CodeLanguage string

	// Selection lists the sections to convert. When nil, the Converter's
	// Selector is asked.
	Selection section.Selection

	Images types.ImageConfig

	// Frontmatter prepends a YAML block describing the conversion.
	Frontmatter bool
}

// Result summarizes a finished conversion.
type Result struct {
	Output   string
	ImageDir string
	Sections []int
	Images   int
	Lines    int
}

// Converter runs conversions.
type Converter struct {
	selector Selector
	recorder Recorder
	log      *logger.Logger
	now      func() time.Time
}

// Option configures a Converter.
type Option func(*Converter)

// WithSelector sets the Selector used for requests without a selection.
func WithSelector(s Selector) Option {
	return func(c *Converter) { c.selector = s }
}

// WithRecorder records every conversion outcome.
func WithRecorder(r Recorder) Option {
	return func(c *Converter) { c.recorder = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// New returns a Converter configured by opts.
func New(opts ...Option) *Converter {
	c := &Converter{
		log: logger.Discard(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadSections opens path and returns its sections.
func LoadSections(path string) ([]section.Section, error) {
	doc, err := docx.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return section.Parse(doc.Paragraphs()), nil
}

// Convert performs req, writing progress lines to w. The outcome is
// recorded when a Recorder is configured, including failures.
func (c *Converter) Convert(ctx context.Context, req Request, w io.Writer) (Result, error) {
	start := c.now()
	c.log.ConversionStarted(req.Source, req.Output)

	res, err := c.convert(ctx, req, w)
	if err != nil {
		c.log.ConversionFailed(req.Source, err)
	} else {
		c.log.ConversionCompleted(res.Output, len(res.Sections), res.Images, c.now().Sub(start))
	}

	if c.recorder != nil && !errors.Is(err, context.Canceled) {
		if recErr := c.recorder.Record(ctx, c.record(req, res, err)); recErr != nil {
			c.log.Warn("recording conversion", "err", recErr)
		}
	}
	return res, err
}

func (c *Converter) convert(ctx context.Context, req Request, w io.Writer) (Result, error) {
	doc, err := docx.Open(req.Source)
	if err != nil {
		return Result{}, err
	}
	defer doc.Close()

	sections := section.Parse(doc.Paragraphs())

	selected, err := c.choose(ctx, sections, req.Selection)
	if err != nil {
		return Result{}, err
	}
	if len(selected) == 0 {
		return Result{}, ErrNoSections
	}

	outPath, err := filepath.Abs(req.Output)
	if err != nil {
		return Result{}, fmt.Errorf("resolving output path %s: %w", req.Output, err)
	}
	outDir := filepath.Dir(outPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	extractor, err := images.New(outDir, req.Images)
	if err != nil {
		return Result{}, err
	}
	if err := extractor.Prepare(); err != nil {
		return Result{}, err
	}

	gen := markdown.NewGenerator(req.CodeLanguage, doc, extractor, c.log)
	lines, err := gen.Generate(selected)
	if err != nil {
		return Result{}, fmt.Errorf("generating markdown: %w", err)
	}

	res := Result{
		Output:   outPath,
		ImageDir: extractor.Dir(),
		Images:   extractor.Saved(),
		Lines:    len(lines),
	}
	for _, s := range selected {
		res.Sections = append(res.Sections, s.Index)
	}

	content := strings.Join(lines, "\n")
	if req.Frontmatter {
		content, err = addFrontmatter(req.Source, doc.Metadata(), res.Sections, c.now(), content)
		if err != nil {
			return Result{}, err
		}
	}

	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(w, "\nConversion complete: %s\n", outPath)
	fmt.Fprintf(w, "Image directory: %s\n", extractor.Dir())
	return res, nil
}

// choose applies sel, or asks the Selector when sel is nil.
func (c *Converter) choose(ctx context.Context, sections []section.Section, sel section.Selection) ([]section.Section, error) {
	if sel != nil {
		if err := section.Validate(sel, section.MaxIndex(sections)); err != nil {
			return nil, err
		}
		return section.Select(sections, sel), nil
	}
	if c.selector == nil {
		return nil, fmt.Errorf("no section range given and no interactive selector available")
	}
	return c.selector.Choose(ctx, sections)
}

func (c *Converter) record(req Request, res Result, err error) types.ConversionRecord {
	rec := types.ConversionRecord{
		SourcePath:   req.Source,
		OutputPath:   req.Output,
		Sections:     res.Sections,
		CodeLanguage: req.CodeLanguage,
		Images:       res.Images,
		Status:       types.ConversionDone,
		ConvertedAt:  c.now().UTC(),
	}
	if res.Output != "" {
		rec.OutputPath = res.Output
	}
	if err != nil {
		rec.Status = types.ConversionFailed
		rec.Error = err.Error()
	}
	return rec
}
