// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx adapts a parsed Word (.docx) package to the view the
// Markdown converter needs: body paragraphs with their resolved style names,
// runs with direct bold formatting and image references, and the embedded
// media those references point to. Body parsing is done by go-docx.
package docx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	godocx "github.com/fumiama/go-docx"
)

// ErrNotDocx is returned when a file is not a readable Word package.
var ErrNotDocx = errors.New("not a Word document")

// mediaFolder is the package folder go-docx loads media from.
const mediaFolder = "word/media/"

// Run is a span of text sharing direct formatting.
type Run struct {
	// Text is the run text with tabs as \t and line breaks as \n.
	Text string

	// Bold reports direct bold formatting on the run.
	Bold bool

	// ImageRefs lists the relationship ids of the images in the first
	// drawing of the run.
	ImageRefs []string
}

// Paragraph is a body paragraph with its resolved style.
type Paragraph struct {
	style string
	runs  []Run
}

// NewParagraph builds a paragraph with the given style name and runs.
func NewParagraph(style string, runs ...Run) Paragraph {
	return Paragraph{style: style, runs: runs}
}

// StyleName returns the display name of the paragraph style (e.g. "Heading 1").
func (p Paragraph) StyleName() string { return p.style }

// Runs returns the paragraph runs in document order.
func (p Paragraph) Runs() []Run { return p.runs }

// Text returns the concatenated text of all runs.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Media is an embedded part referenced from the document body.
type Media struct {
	// RelID is the relationship id used by the referencing element.
	RelID string

	// Target is the part name inside the package (e.g. "word/media/image1.png").
	Target string

	Data []byte
}

// Metadata holds document core properties.
type Metadata struct {
	Title   string
	Subject string
	Author  string
}

// Document is a parsed Word package.
type Document struct {
	src        *godocx.Docx
	paragraphs []Paragraph
	meta       Metadata
	closer     io.Closer
}

// Open opens and parses the .docx file at filename.
func Open(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", filename, err)
	}
	doc, err := Parse(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	doc.closer = f
	return doc, nil
}

// Parse reads a Word package from r.
func Parse(r io.ReaderAt, size int64) (*Document, error) {
	pkg, err := openPackage(r, size)
	if err != nil {
		return nil, err
	}

	src, err := godocx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	styles, err := pkg.styleTable()
	if err != nil {
		return nil, fmt.Errorf("parsing styles: %w", err)
	}

	return &Document{
		src:        src,
		paragraphs: bodyParagraphs(src.Document.Body.Items, styles),
		meta:       pkg.coreProperties(),
	}, nil
}

// Close releases the underlying file, if any.
func (d *Document) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}

// Paragraphs returns the top-level body paragraphs in document order.
func (d *Document) Paragraphs() []Paragraph {
	return d.paragraphs
}

// Metadata returns the document core properties.
func (d *Document) Metadata() Metadata {
	return d.meta
}

// Media resolves relID through the document relationships and returns the
// embedded part. It reports false when the id is unknown or does not point
// at media inside the package, as for linked images.
func (d *Document) Media(relID string) (Media, bool, error) {
	target, err := d.src.ReferTarget(relID)
	if err != nil {
		return Media{}, false, nil
	}
	part := resolveTarget(target)
	name, ok := strings.CutPrefix(part, mediaFolder)
	if !ok {
		return Media{}, false, nil
	}
	m := d.src.Media(name)
	if m == nil {
		return Media{}, false, nil
	}
	return Media{RelID: relID, Target: part, Data: m.Data}, true, nil
}

// resolveTarget turns a relationship target relative to word/ into a
// package part name.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join("word", target))
}
