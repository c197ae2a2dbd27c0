// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of a Word-to-Markdown conversion.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// SectionSummary describes one selectable section of a document.
type SectionSummary struct {
	// Index is the 1-based position of the section's Heading 1.
	Index int `json:"index" yaml:"index"`

	// Title is the trimmed text of the Heading 1 paragraph.
	Title string `json:"title" yaml:"title"`

	// Paragraphs is the number of paragraphs in the section body.
	Paragraphs int `json:"paragraphs" yaml:"paragraphs"`
}

// ConversionRecord is one entry of the conversion history.
type ConversionRecord struct {
	// ID is a random UUID assigned when the record is stored.
	ID string `json:"id" yaml:"id"`

	// SourcePath is the .docx file that was converted.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputPath is the Markdown file that was written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Sections lists the converted section indices in ascending order.
	Sections []int `json:"sections" yaml:"sections"`

	// CodeLanguage is the fence info string used for code blocks.
	CodeLanguage string `json:"code_language,omitempty" yaml:"code_language,omitempty"`

	// Images is the number of images extracted.
	Images int `json:"images" yaml:"images"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the failure message for failed conversions.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
