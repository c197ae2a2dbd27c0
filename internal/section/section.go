// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package section splits a document into Heading 1 sections and selects the
// sections a user asks for.
package section

import (
	"sort"
	"strings"

	"github.com/pdiddy/word2md/internal/docx"
	"github.com/pdiddy/word2md/pkg/types"
)

// Section is the run of paragraphs between two Heading 1 paragraphs.
type Section struct {
	// Index counts Heading 1 paragraphs from 1. The preamble before the
	// first Heading 1 has index 0.
	Index int

	// Title is the trimmed text of the Heading 1 paragraph.
	Title string

	// Paragraphs holds the body of the section, excluding the heading.
	Paragraphs []docx.Paragraph
}

// Parse splits paragraphs into sections at every Heading 1. A section with
// no body paragraphs is dropped, but its heading still consumes an index.
func Parse(paragraphs []docx.Paragraph) []Section {
	var sections []Section
	current := Section{}
	index := 0

	for _, p := range paragraphs {
		if strings.TrimSpace(p.StyleName()) == docx.StyleHeading1 {
			if len(current.Paragraphs) > 0 {
				sections = append(sections, current)
			}
			index++
			current = Section{
				Index: index,
				Title: strings.TrimSpace(p.Text()),
			}
			continue
		}
		current.Paragraphs = append(current.Paragraphs, p)
	}
	if len(current.Paragraphs) > 0 {
		sections = append(sections, current)
	}
	return sections
}

// Selectable returns the sections a user may choose from, skipping the
// preamble.
func Selectable(sections []Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s.Index > 0 {
			out = append(out, s)
		}
	}
	return out
}

// MaxIndex returns the largest section index, or 0 when there are none.
func MaxIndex(sections []Section) int {
	highest := 0
	for _, s := range sections {
		if s.Index > highest {
			highest = s.Index
		}
	}
	return highest
}

// Summaries describes the selectable sections, ordered by index.
func Summaries(sections []Section) []types.SectionSummary {
	sel := Selectable(sections)
	out := make([]types.SectionSummary, 0, len(sel))
	for _, s := range sel {
		out = append(out, types.SectionSummary{
			Index:      s.Index,
			Title:      s.Title,
			Paragraphs: len(s.Paragraphs),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Select returns the sections whose index is in sel, in document order.
func Select(sections []Section, sel Selection) []Section {
	var out []Section
	for _, s := range sections {
		if sel.Contains(s.Index) {
			out = append(out, s)
		}
	}
	return out
}
