// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docxtest builds small Word packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Style ids defined in the generated styles.xml.
const (
	StyleHeading1 = "Heading1"
	StyleHeading2 = "Heading2"
	StyleHeading3 = "Heading3"
	StyleCode     = "Code"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  <Default Extension="jpeg" ContentType="image/jpeg"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:customStyle="1" w:styleId="Code"><w:name w:val="Code"/><w:basedOn w:val="Normal"/></w:style>
  <w:style w:type="character" w:styleId="Strong"><w:name w:val="Strong"/></w:style>
</w:styles>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"
  xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
  xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
  xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">
  <w:body>`

const documentFooter = `</w:body>
</w:document>`

// Run describes one run of a generated paragraph.
type Run struct {
	Text string
	Bold bool
	// Image is a relationship id registered with Builder.Image.
	Image string
}

// Builder accumulates paragraphs and media for a Word package.
type Builder struct {
	body     strings.Builder
	rels     []string
	media    map[string][]byte
	noStyles bool
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{media: make(map[string][]byte)}
}

// WithoutStyles omits word/styles.xml from the package.
func (b *Builder) WithoutStyles() *Builder {
	b.noStyles = true
	return b
}

// Heading adds a heading paragraph of the given level (1-3).
func (b *Builder) Heading(level int, text string) *Builder {
	return b.Paragraph(fmt.Sprintf("Heading%d", level), Run{Text: text})
}

// Text adds a paragraph in the default style.
func (b *Builder) Text(text string) *Builder {
	return b.Paragraph("", Run{Text: text})
}

// Code adds a paragraph in the Code style.
func (b *Builder) Code(text string) *Builder {
	return b.Paragraph(StyleCode, Run{Text: text})
}

// Paragraph adds a paragraph with the given style id and runs.
func (b *Builder) Paragraph(styleID string, runs ...Run) *Builder {
	b.body.WriteString("<w:p>")
	if styleID != "" {
		fmt.Fprintf(&b.body, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, styleID)
	}
	for _, r := range runs {
		b.body.WriteString(runXML(r))
	}
	b.body.WriteString("</w:p>")
	return b
}

// Hyperlink adds a default-style paragraph whose runs sit inside a hyperlink.
func (b *Builder) Hyperlink(runs ...Run) *Builder {
	b.body.WriteString(`<w:p><w:hyperlink r:id="rIdLink">`)
	for _, r := range runs {
		b.body.WriteString(runXML(r))
	}
	b.body.WriteString("</w:hyperlink></w:p>")
	return b
}

// Table adds a one-cell table containing text. Table paragraphs are not
// part of the body paragraph list.
func (b *Builder) Table(text string) *Builder {
	fmt.Fprintf(&b.body, `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`, html.EscapeString(text))
	return b
}

// Raw appends raw body XML.
func (b *Builder) Raw(xml string) *Builder {
	b.body.WriteString(xml)
	return b
}

// Image registers media under relID, stored at word/media/<name>.
func (b *Builder) Image(relID, name string, data []byte) *Builder {
	b.rels = append(b.rels, fmt.Sprintf(
		`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`,
		relID, name))
	b.media["word/media/"+name] = data
	return b
}

// ExternalImage registers relID as an external (linked) image.
func (b *Builder) ExternalImage(relID, url string) *Builder {
	b.rels = append(b.rels, fmt.Sprintf(
		`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s" TargetMode="External"/>`,
		relID, url))
	return b
}

func runXML(r Run) string {
	var s strings.Builder
	s.WriteString("<w:r>")
	if r.Bold {
		s.WriteString("<w:rPr><w:b/></w:rPr>")
	}
	if r.Image != "" {
		fmt.Fprintf(&s, `<w:drawing><wp:inline><wp:extent cx="100" cy="100"/><wp:docPr id="1" name="Picture"/>`+
			`<a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip r:embed="%s"/></pic:blipFill></pic:pic></a:graphicData></a:graphic>`+
			`</wp:inline></w:drawing>`, r.Image)
	}
	if r.Text != "" {
		lines := strings.Split(r.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				s.WriteString("<w:br/>")
			}
			parts := strings.Split(line, "\t")
			for j, part := range parts {
				if j > 0 {
					s.WriteString("<w:tab/>")
				}
				if part != "" {
					fmt.Fprintf(&s, `<w:t xml:space="preserve">%s</w:t>`, html.EscapeString(part))
				}
			}
		}
	}
	s.WriteString("</w:r>")
	return s.String()
}

// Bytes returns the zipped package.
func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	docRels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		strings.Join(b.rels, "") + `</Relationships>`

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypes)},
		{"_rels/.rels", []byte(packageRels)},
		{"word/document.xml", []byte(documentHeader + b.body.String() + documentFooter)},
		{"word/_rels/document.xml.rels", []byte(docRels)},
	}
	if !b.noStyles {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/styles.xml", []byte(stylesXML)})
	}
	for name, data := range b.media {
		parts = append(parts, struct {
			name string
			data []byte
		}{name, data})
	}

	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the package to dir/name and returns the path.
func (b *Builder) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("building docx: %v", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("writing docx: %v", err)
	}
	return p
}
