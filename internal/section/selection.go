// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var (
	// ErrInvalidRange is returned for input that is neither "a-b" nor "a,b,c".
	ErrInvalidRange = errors.New("invalid section range")

	// ErrOutOfRange is returned when a selected index is outside 1..max.
	ErrOutOfRange = errors.New("section index out of range")
)

// Span is an inclusive run of section indices. A span whose Lo exceeds
// its Hi selects nothing.
type Span struct {
	Lo, Hi int
}

func (sp Span) empty() bool { return sp.Lo > sp.Hi }

// Selection is a set of section indices kept as spans, so that a range is
// never expanded before it has been checked against the document.
type Selection []Span

// NewSelection returns a selection holding indices.
func NewSelection(indices ...int) Selection {
	s := make(Selection, 0, len(indices))
	for _, i := range indices {
		s = append(s, Span{Lo: i, Hi: i})
	}
	return s
}

// Contains reports whether index is selected.
func (s Selection) Contains(index int) bool {
	for _, sp := range s {
		if sp.Lo <= index && index <= sp.Hi {
			return true
		}
	}
	return false
}

// Indices returns the selected indices in ascending order. It expands every
// span, so callers check the selection with Validate first.
func (s Selection) Indices() []int {
	seen := make(map[int]struct{})
	out := []int{}
	for _, sp := range s {
		if sp.empty() {
			continue
		}
		for i := sp.Lo; ; i++ {
			if _, ok := seen[i]; !ok {
				seen[i] = struct{}{}
				out = append(out, i)
			}
			if i == sp.Hi {
				break
			}
		}
	}
	sort.Ints(out)
	return out
}

// String renders the selection as a comma-separated list of indices and
// start-end ranges.
func (s Selection) String() string {
	spans := make([]Span, 0, len(s))
	for _, sp := range s {
		if !sp.empty() {
			spans = append(spans, sp)
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Lo < spans[j].Lo })

	parts := make([]string, 0, len(spans))
	for i, sp := range spans {
		if i > 0 && spans[i-1] == sp {
			continue
		}
		if sp.Lo == sp.Hi {
			parts = append(parts, strconv.Itoa(sp.Lo))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d-%d", sp.Lo, sp.Hi))
	}
	return strings.Join(parts, ",")
}

// ParseRange parses "a-b" (inclusive) or "a,b,c". Full-width digits and
// punctuation typed through CJK input methods are accepted. A range whose
// start exceeds its end yields an empty selection.
func ParseRange(input string) (Selection, error) {
	s := fold(input)
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidRange)
	}

	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRange, input)
		}
		start, err := atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRange, input)
		}
		end, err := atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRange, input)
		}
		if start > end {
			return Selection{}, nil
		}
		return Selection{{Lo: start, Hi: end}}, nil
	}

	var sel Selection
	for _, part := range strings.Split(s, ",") {
		n, err := atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRange, input)
		}
		sel = append(sel, Span{Lo: n, Hi: n})
	}
	return sel, nil
}

// Validate checks that every selected index lies in 1..max. Only the span
// bounds are inspected.
func Validate(sel Selection, maxIndex int) error {
	for _, sp := range sel {
		if sp.empty() {
			continue
		}
		if sp.Lo < 1 {
			return fmt.Errorf("%w: %d (maximum is %d)", ErrOutOfRange, sp.Lo, maxIndex)
		}
		if sp.Hi > maxIndex {
			return fmt.Errorf("%w: %d (maximum is %d)", ErrOutOfRange, sp.Hi, maxIndex)
		}
	}
	return nil
}

// fold maps full-width characters to ASCII and normalizes CJK list
// separators.
func fold(s string) string {
	s = strings.NewReplacer("、", ",", "—", "-", "–", "-").Replace(strings.TrimSpace(s))
	return width.Narrow.String(s)
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
