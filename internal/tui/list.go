// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"fmt"
	"strings"

	"github.com/pdiddy/word2md/pkg/types"
)

// sectionList is a multi-select list of sections.
type sectionList struct {
	items  []types.SectionSummary
	cursor int
	marked map[int]bool // keyed by section index
}

func newSectionList() sectionList {
	return sectionList{marked: make(map[int]bool)}
}

func (l *sectionList) move(delta int) {
	if len(l.items) == 0 {
		l.cursor = 0
		return
	}
	l.cursor = min(max(l.cursor+delta, 0), len(l.items)-1)
}

// toggle marks or unmarks the item under the cursor.
func (l *sectionList) toggle() {
	if len(l.items) == 0 {
		return
	}
	idx := l.items[l.cursor].Index
	if l.marked[idx] {
		delete(l.marked, idx)
	} else {
		l.marked[idx] = true
	}
}

// selected returns the marked items in list order, or the item under the
// cursor when nothing is marked.
func (l *sectionList) selected() []types.SectionSummary {
	var out []types.SectionSummary
	for _, it := range l.items {
		if l.marked[it.Index] {
			out = append(out, it)
		}
	}
	if len(out) == 0 && len(l.items) > 0 {
		out = append(out, l.items[l.cursor])
	}
	return out
}

func (l *sectionList) contains(index int) bool {
	for _, it := range l.items {
		if it.Index == index {
			return true
		}
	}
	return false
}

// add appends items not already present and returns how many were added.
func (l *sectionList) add(items ...types.SectionSummary) int {
	n := 0
	for _, it := range items {
		if l.contains(it.Index) {
			continue
		}
		l.items = append(l.items, it)
		n++
	}
	return n
}

// remove drops items and clears their marks.
func (l *sectionList) remove(items ...types.SectionSummary) {
	drop := make(map[int]bool, len(items))
	for _, it := range items {
		drop[it.Index] = true
		delete(l.marked, it.Index)
	}
	kept := l.items[:0]
	for _, it := range l.items {
		if !drop[it.Index] {
			kept = append(kept, it)
		}
	}
	l.items = kept
	l.move(0)
}

func (l *sectionList) set(items []types.SectionSummary) {
	l.items = items
	l.cursor = 0
	l.marked = make(map[int]bool)
}

func (l *sectionList) clear() { l.set(nil) }

func (l *sectionList) indices() []int {
	out := make([]int, len(l.items))
	for i, it := range l.items {
		out[i] = it.Index
	}
	return out
}

func (l sectionList) view(title string, focused bool, width, height int) string {
	var b strings.Builder
	label := labelStyle
	panel := panelStyle
	if focused {
		label = focusedLabelStyle
		panel = focusedPanelStyle
	}
	b.WriteString(label.Render(fmt.Sprintf("%s (%d)", title, len(l.items))))
	b.WriteString("\n")

	if len(l.items) == 0 {
		b.WriteString(helpStyle.Render("(empty)"))
	}

	// Scroll so the cursor stays visible.
	start := 0
	if height > 0 && l.cursor >= height {
		start = l.cursor - height + 1
	}
	for i := start; i < len(l.items) && (height <= 0 || i < start+height); i++ {
		it := l.items[i]
		mark := "[ ]"
		if l.marked[it.Index] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %d: %s", mark, it.Index, it.Title)
		switch {
		case focused && i == l.cursor:
			line = cursorStyle.Render(line)
		case l.marked[it.Index]:
			line = markedStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(l.items)-1 {
			b.WriteString("\n")
		}
	}
	return panel.Width(width).Render(b.String())
}
