// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/word2md/internal/docx"
)

// frontmatter is the YAML block written ahead of the Markdown body.
type frontmatter struct {
	Title       string `yaml:"title,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Source      string `yaml:"source"`
	Sections    []int  `yaml:"sections,flow"`
	ConvertedAt string `yaml:"converted_at"`
}

// addFrontmatter prepends YAML frontmatter to the converted Markdown content.
func addFrontmatter(source string, meta docx.Metadata, sections []int, now time.Time, body string) (string, error) {
	fm := frontmatter{
		Title:       meta.Title,
		Author:      meta.Author,
		Source:      source,
		Sections:    sections,
		ConvertedAt: now.UTC().Format(time.RFC3339),
	}
	data, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}
