// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"strings"
)

// Style names the converter acts on.
const (
	StyleNormal   = "Normal"
	StyleHeading1 = "Heading 1"
	StyleHeading2 = "Heading 2"
	StyleHeading3 = "Heading 3"
	StyleCode     = "Code"
)

// stylesXML represents the structure of word/styles.xml.
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string       `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string       `xml:"styleId,attr"`
	Default string       `xml:"default,attr"` // "1" if default style
	Name    styleNameXML `xml:"name"`
}

// styleNameXML represents a style name.
type styleNameXML struct {
	Val string `xml:"val,attr"`
}

// builtinNames maps the lower-case names Word stores for built-in styles to
// the names shown in the Word UI.
var builtinNames = map[string]string{
	"normal":    "Normal",
	"caption":   "Caption",
	"footer":    "Footer",
	"header":    "Header",
	"title":     "Title",
	"heading 1": "Heading 1",
	"heading 2": "Heading 2",
	"heading 3": "Heading 3",
	"heading 4": "Heading 4",
	"heading 5": "Heading 5",
	"heading 6": "Heading 6",
	"heading 7": "Heading 7",
	"heading 8": "Heading 8",
	"heading 9": "Heading 9",
}

// uiName returns the display name for a stored style name.
func uiName(name string) string {
	if ui, ok := builtinNames[name]; ok {
		return ui
	}
	return name
}

// styleTable resolves paragraph style ids to display names.
type styleTable struct {
	names        map[string]string
	defaultStyle string
}

func newStyleTable(s *stylesXML) styleTable {
	st := styleTable{
		names:        make(map[string]string),
		defaultStyle: StyleNormal,
	}
	if s == nil {
		// Without styles.xml Word falls back to its default template, whose
		// ids are the built-in names without spaces.
		for _, name := range builtinNames {
			st.names[strings.ReplaceAll(name, " ", "")] = name
		}
		return st
	}
	for _, def := range s.Styles {
		if def.Type != "" && def.Type != "paragraph" {
			continue
		}
		name := uiName(def.Name.Val)
		if name == "" {
			name = def.StyleID
		}
		st.names[def.StyleID] = name
		if isOn(def.Default) {
			st.defaultStyle = name
		}
	}
	return st
}

// resolve returns the display name for styleID. Paragraphs without a style,
// or with an id that styles.xml does not define, use the default style.
func (st styleTable) resolve(styleID string) string {
	if styleID == "" {
		return st.defaultStyle
	}
	if name, ok := st.names[styleID]; ok {
		return name
	}
	return st.defaultStyle
}

func isOn(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on":
		return true
	}
	return false
}
