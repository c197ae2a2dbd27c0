// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown renders document sections as Markdown lines.
package markdown

import (
	"fmt"
	"strings"

	"github.com/pdiddy/word2md/internal/docx"
	"github.com/pdiddy/word2md/internal/logger"
	"github.com/pdiddy/word2md/internal/section"
)

const fence = "```"

// MediaSource resolves image relationship ids to embedded media.
type MediaSource interface {
	Media(relID string) (docx.Media, bool, error)
}

// ImageSink stores image n of a section and returns its Markdown link target.
type ImageSink interface {
	Save(section, n int, m docx.Media) (string, error)
}

// Generator turns sections into Markdown lines.
type Generator struct {
	codeLanguage string
	media        MediaSource
	sink         ImageSink
	log          *logger.Logger
}

// NewGenerator returns a Generator that labels code fences with
// codeLanguage and extracts images from media into sink.
func NewGenerator(codeLanguage string, media MediaSource, sink ImageSink, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Discard()
	}
	return &Generator{
		codeLanguage: codeLanguage,
		media:        media,
		sink:         sink,
		log:          log,
	}
}

// Render joins the lines of the given sections into one document.
func (g *Generator) Render(sections []section.Section) (string, error) {
	lines, err := g.Generate(sections)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// Generate emits the Markdown lines of the given sections in order.
func (g *Generator) Generate(sections []section.Section) ([]string, error) {
	var lines []string
	for _, sec := range sections {
		out, err := g.section(sec)
		if err != nil {
			return nil, fmt.Errorf("section %d (%s): %w", sec.Index, sec.Title, err)
		}
		lines = append(lines, out...)
	}
	return lines, nil
}

// sectionWriter holds the walk state of one section.
type sectionWriter struct {
	lines  []string
	inCode bool
	images int
}

func (w *sectionWriter) emit(lines ...string) {
	w.lines = append(w.lines, lines...)
}

func (w *sectionWriter) closeFence() {
	if w.inCode {
		w.emit(fence)
		w.inCode = false
	}
}

func (g *Generator) section(sec section.Section) ([]string, error) {
	w := &sectionWriter{}
	w.emit("## " + sec.Title)

	for _, p := range sec.Paragraphs {
		switch strings.TrimSpace(p.StyleName()) {
		case docx.StyleHeading2:
			w.closeFence()
			w.emit("### " + strings.TrimSpace(p.Text()))
			continue
		case docx.StyleHeading3:
			w.closeFence()
			w.emit("#### " + strings.TrimSpace(p.Text()))
			continue
		case docx.StyleCode:
			if !w.inCode {
				w.emit(fence + g.codeLanguage)
				w.inCode = true
			}
			w.emit(p.Text())
			continue
		}

		w.closeFence()

		text, err := g.runs(sec.Index, p.Runs(), w)
		if err != nil {
			return nil, err
		}
		if text = strings.TrimSpace(text); text != "" {
			w.emit(LinkURLs(text))
		}
		w.emit("")
	}

	w.closeFence()
	return w.lines, nil
}

// runs emits the paragraph's images and returns its text with bold spans
// wrapped in **. Runs without text do not open or close a bold span.
func (g *Generator) runs(secIndex int, runs []docx.Run, w *sectionWriter) (string, error) {
	var b strings.Builder
	bold := false

	for _, r := range runs {
		for _, id := range r.ImageRefs {
			link, err := g.image(secIndex, id, w)
			if err != nil {
				return "", err
			}
			if link != "" {
				w.emit(link)
			}
		}

		if r.Text == "" {
			continue
		}
		if r.Bold != bold {
			b.WriteString("**")
			bold = r.Bold
		}
		b.WriteString(r.Text)
	}
	if bold {
		b.WriteString("**")
	}
	return b.String(), nil
}

// image saves one referenced image and returns its Markdown line, or ""
// when the reference does not resolve to embedded media.
func (g *Generator) image(secIndex int, relID string, w *sectionWriter) (string, error) {
	if g.media == nil || g.sink == nil {
		return "", nil
	}
	m, ok, err := g.media.Media(relID)
	if err != nil {
		return "", err
	}
	if !ok {
		g.log.ImageSkipped(secIndex, relID, "not embedded")
		return "", nil
	}
	n := w.images + 1
	target, err := g.sink.Save(secIndex, n, m)
	if err != nil {
		return "", err
	}
	w.images = n
	return fmt.Sprintf("![img%d-%d](%s)", secIndex, n, target), nil
}
