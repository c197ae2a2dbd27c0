// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	partContentTypes = "[Content_Types].xml"
	partDocument     = "word/document.xml"
	partStyles       = "word/styles.xml"
	partCore         = "docProps/core.xml"
)

// wordPackage gives access to the parts go-docx does not load: the style
// definitions and the core properties.
type wordPackage struct {
	files map[string]*zip.File
}

func openPackage(r io.ReaderAt, size int64) (*wordPackage, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}
	pkg := &wordPackage{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		pkg.files[f.Name] = f
	}
	for _, name := range []string{partContentTypes, partDocument} {
		if _, ok := pkg.files[name]; !ok {
			return nil, fmt.Errorf("%w: missing required part %s", ErrNotDocx, name)
		}
	}
	return pkg, nil
}

func (p *wordPackage) unmarshal(name string, v any) error {
	f, ok := p.files[name]
	if !ok {
		return fmt.Errorf("part not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// styleTable loads word/styles.xml. The part is optional.
func (p *wordPackage) styleTable() (styleTable, error) {
	if _, ok := p.files[partStyles]; !ok {
		return newStyleTable(nil), nil
	}
	var styles stylesXML
	if err := p.unmarshal(partStyles, &styles); err != nil {
		return styleTable{}, err
	}
	return newStyleTable(&styles), nil
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata).
type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Subject string   `xml:"subject"`
	Creator string   `xml:"creator"`
}

// coreProperties reads the document metadata. Missing or malformed
// metadata leaves the fields empty.
func (p *wordPackage) coreProperties() Metadata {
	var core corePropertiesXML
	if err := p.unmarshal(partCore, &core); err != nil {
		return Metadata{}
	}
	return Metadata{
		Title:   strings.TrimSpace(core.Title),
		Subject: strings.TrimSpace(core.Subject),
		Author:  strings.TrimSpace(core.Creator),
	}
}
