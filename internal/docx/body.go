// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"strings"

	godocx "github.com/fumiama/go-docx"
)

// bodyParagraphs converts the top-level body items. Tables and section
// properties are skipped, so table paragraphs never reach the converter.
func bodyParagraphs(items []interface{}, styles styleTable) []Paragraph {
	paras := make([]Paragraph, 0, len(items))
	for _, item := range items {
		p, ok := item.(*godocx.Paragraph)
		if !ok {
			continue
		}
		paras = append(paras, newParagraph(p, styles))
	}
	return paras
}

func newParagraph(p *godocx.Paragraph, styles styleTable) Paragraph {
	para := Paragraph{style: styles.resolve(styleID(p))}
	for _, child := range p.Children {
		switch c := child.(type) {
		case *godocx.Run:
			para.runs = append(para.runs, newRun(c))
		case *godocx.Hyperlink:
			para.runs = append(para.runs, newRun(&c.Run))
		}
	}
	return para
}

func styleID(p *godocx.Paragraph) string {
	if p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}

func newRun(r *godocx.Run) Run {
	out := Run{Bold: r.RunProperties != nil && r.RunProperties.Bold != nil}

	var text strings.Builder
	drawingSeen := false
	for _, child := range r.Children {
		switch c := child.(type) {
		case *godocx.Text:
			text.WriteString(c.Text)
		case *godocx.Tab:
			text.WriteString("\t")
		case *godocx.BarterRabbet:
			text.WriteString(breakText(c.Type))
		case *godocx.Drawing:
			if drawingSeen {
				continue
			}
			drawingSeen = true
			out.ImageRefs = blipIDs(c)
		}
	}
	out.Text = text.String()
	return out
}

// breakText renders a w:br. Page and column breaks carry no text.
func breakText(kind string) string {
	switch kind {
	case "page", "column":
		return ""
	}
	return "\n"
}

// blipIDs returns the r:embed ids of the pictures in an inline or anchored
// drawing.
func blipIDs(d *godocx.Drawing) []string {
	var graphics []*godocx.AGraphic
	if d.Inline != nil {
		graphics = append(graphics, d.Inline.Graphic)
	}
	if d.Anchor != nil {
		graphics = append(graphics, d.Anchor.Graphic)
	}

	var ids []string
	for _, g := range graphics {
		if g == nil || g.GraphicData == nil || g.GraphicData.Pic == nil || g.GraphicData.Pic.BlipFill == nil {
			continue
		}
		if id := g.GraphicData.Pic.BlipFill.Blip.Embed; id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
