// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/word2md/pkg/types"
)

var sampleSections = []types.SectionSummary{
	{Index: 1, Title: "Intro", Paragraphs: 2},
	{Index: 2, Title: "Setup", Paragraphs: 4},
	{Index: 4, Title: "Usage", Paragraphs: 1},
}

type fakeOpener struct {
	opened  []string
	folders []string
	err     error
}

func (f *fakeOpener) Name() string { return "fake" }

func (f *fakeOpener) Open(path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

func (f *fakeOpener) OpenFolder(path string) error {
	f.folders = append(f.folders, path)
	return f.err
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msgs in order and returns the model and the last command.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	return m
}

func loadedModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Input == "" {
		opts.Input = "/docs/guide.docx"
	}
	if opts.Load == nil {
		opts.Load = func(string) ([]types.SectionSummary, error) { return sampleSections, nil }
	}
	m := New(context.Background(), opts)
	return run(t, m, m.Init())
}

func TestLoadSections(t *testing.T) {
	var loaded string
	m := New(context.Background(), Options{
		Load: func(path string) ([]types.SectionSummary, error) {
			loaded = path
			return sampleSections, nil
		},
	})

	m, _ = send(t, m, key("/docs/guide.docx"))
	m, cmd := send(t, m, key("enter"))
	m = run(t, m, cmd)

	assert.Equal(t, "/docs/guide.docx", loaded)
	assert.Equal(t, sampleSections, m.all.items)
	assert.Equal(t, "/docs/guide.md", m.output.Value(), "output defaults next to the input")
	assert.Contains(t, m.status, "Loaded 3 sections")
}

func TestLoadSections_KeepsOutputAndReportsErrors(t *testing.T) {
	m := loadedModel(t, Options{Output: "/tmp/custom.md"})
	assert.Equal(t, "/tmp/custom.md", m.output.Value())

	m = loadedModel(t, Options{Load: func(string) ([]types.SectionSummary, error) {
		return nil, errors.New("not a docx")
	}})
	assert.Equal(t, statusError, m.statusKind)
	assert.Contains(t, m.status, "not a docx")
	assert.Empty(t, m.all.items)
}

func TestConversionList(t *testing.T) {
	m := loadedModel(t, Options{})
	m, _ = send(t, m, key("tab"), key("tab"))
	require.Equal(t, focusAll, m.focus)

	// Mark Intro and Usage, add them.
	m, _ = send(t, m, key("space"), key("down"), key("down"), key("space"), key("a"))
	assert.Equal(t, []int{1, 4}, m.Queue())

	// Adding the cursor item again does not duplicate it.
	m, _ = send(t, m, key("a"))
	assert.Equal(t, []int{1, 4}, m.Queue())

	// Add all appends only what is missing.
	m, _ = send(t, m, key("A"))
	assert.Equal(t, []int{1, 4, 2}, m.Queue())

	// Remove the cursor item in the conversion list.
	m, _ = send(t, m, key("tab"))
	require.Equal(t, focusQueue, m.focus)
	m, _ = send(t, m, key("d"))
	assert.Equal(t, []int{4, 2}, m.Queue())

	// Remove marked items.
	m, _ = send(t, m, key("space"), key("down"), key("space"), key("d"))
	assert.Empty(t, m.Queue())

	m.focus = focusAll
	m, _ = send(t, m, key("A"))
	m.focus = focusQueue
	m, _ = send(t, m, key("D"))
	assert.Empty(t, m.Queue())
}

func TestLanguageCycle(t *testing.T) {
	m := New(context.Background(), Options{})
	m.focus = focusLanguage
	assert.Equal(t, "", m.CodeLanguage())

	m, _ = send(t, m, key("right"))
	m, _ = send(t, m, key("l"))
	assert.Equal(t, "C", m.CodeLanguage())

	m, _ = send(t, m, key("h"), key("h"), key("h"))
	assert.Equal(t, "CSS", m.CodeLanguage(), "cycling wraps around")

	m = New(context.Background(), Options{CodeLanguage: "javascript"})
	assert.Equal(t, "JavaScript", m.CodeLanguage(), "configured language matches the listed name")

	m = New(context.Background(), Options{CodeLanguage: "go"})
	assert.Equal(t, "go", m.CodeLanguage())
	assert.Len(t, m.languages, len(Languages)+1)
}

func TestConvert_Warnings(t *testing.T) {
	called := false
	convert := func(context.Context, Request) (string, error) {
		called = true
		return "", nil
	}

	t.Run("missing paths", func(t *testing.T) {
		m := New(context.Background(), Options{Convert: convert})
		m, cmd := send(t, m, key("ctrl+s"))
		assert.Nil(t, cmd)
		assert.Equal(t, statusWarning, m.statusKind)
		assert.Contains(t, m.status, "input and output")
	})

	t.Run("empty conversion list", func(t *testing.T) {
		m := loadedModel(t, Options{Convert: convert})
		m, cmd := send(t, m, key("ctrl+s"))
		assert.Nil(t, cmd)
		assert.Equal(t, statusWarning, m.statusKind)
		assert.Contains(t, m.status, "No sections selected")
	})

	assert.False(t, called)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "guide.md")
	require.NoError(t, os.WriteFile(out, []byte("## Intro\nhello\n"), 0o644))

	var got Request
	op := &fakeOpener{}
	m := loadedModel(t, Options{
		Output:       out,
		CodeLanguage: "Python",
		Convert: func(_ context.Context, req Request) (string, error) {
			got = req
			return out, nil
		},
		Render: func(md string, _ int) (string, error) { return "RENDERED " + md, nil },
		Opener: op,
	})

	m.focus = focusAll
	m, _ = send(t, m, key("down"), key("a"), key("up"), key("a"))
	m, cmd := send(t, m, key("c"))
	assert.True(t, m.busy)
	m = run(t, m, cmd)

	assert.Equal(t, Request{
		Input:        "/docs/guide.docx",
		Output:       out,
		CodeLanguage: "Python",
		Sections:     []int{2, 1},
	}, got)
	assert.False(t, m.busy)
	assert.Equal(t, statusSuccess, m.statusKind)
	assert.Contains(t, m.status, "Conversion complete: "+out)
	assert.Contains(t, m.View(), "o open file")

	m, _ = send(t, m, key("o"), key("f"))
	assert.Equal(t, []string{out}, op.opened)
	assert.Equal(t, []string{out}, op.folders)

	m, cmd = send(t, m, key("p"))
	m = run(t, m, cmd)
	require.True(t, m.previewing)
	assert.Contains(t, m.View(), "RENDERED ## Intro")

	m, _ = send(t, m, key("esc"))
	assert.False(t, m.previewing)
}

func TestConvert_Failure(t *testing.T) {
	m := loadedModel(t, Options{
		Convert: func(context.Context, Request) (string, error) {
			return "", errors.New("section 9 out of range")
		},
	})
	m.focus = focusAll
	m, _ = send(t, m, key("A"))
	m, cmd := send(t, m, key("ctrl+s"))
	m = run(t, m, cmd)

	assert.Equal(t, statusError, m.statusKind)
	assert.Contains(t, m.status, "section 9 out of range")
	assert.Empty(t, m.lastOutput)

	// Open actions do nothing without a converted file.
	m, cmd = send(t, m, key("o"))
	assert.Nil(t, cmd)
}

func TestOpen_WithoutOpener(t *testing.T) {
	m := loadedModel(t, Options{})
	m.lastOutput = "/tmp/out.md"
	m.focus = focusQueue
	m, _ = send(t, m, key("o"))
	assert.Equal(t, statusError, m.statusKind)
}

func TestView(t *testing.T) {
	m := loadedModel(t, Options{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()

	for _, want := range []string{"Word to Markdown", "All sections (3)", "Conversion list (0)", "1: Intro", "4: Usage", "(none)"} {
		assert.True(t, strings.Contains(view, want), "view should contain %q", want)
	}
}

func TestQuit(t *testing.T) {
	m := New(context.Background(), Options{})
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
