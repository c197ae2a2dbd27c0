// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui implements the interactive conversion form: pick a Word file,
// move sections into a conversion list, choose a code language, convert,
// then open or preview the result.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/word2md/internal/opener"
	"github.com/pdiddy/word2md/pkg/types"
)

// Languages are the code languages offered by the form. The empty entry
// writes fences without an info string.
var Languages = []string{"", "Python", "C", "Java", "JavaScript", "HTML", "CSS"}

// Request is what the form asks its Convert function to do.
type Request struct {
	Input        string
	Output       string
	CodeLanguage string
	Sections     []int
}

// Options wires the form to the conversion pipeline.
type Options struct {
	// Input and Output prefill the path fields. A prefilled input is
	// loaded on start.
	Input  string
	Output string

	// CodeLanguage preselects a language. Values outside Languages are
	// added to the choices.
	CodeLanguage string

	// Load returns the selectable sections of a Word file.
	Load func(path string) ([]types.SectionSummary, error)

	// Convert performs a conversion and returns the written Markdown path.
	Convert func(ctx context.Context, req Request) (string, error)

	// Render formats Markdown for the preview pane. When nil the raw
	// Markdown is shown.
	Render func(markdown string, width int) (string, error)

	// Opener opens results. When nil the open actions report an error.
	Opener opener.Opener
}

type focus int

const (
	focusInput focus = iota
	focusOutput
	focusAll
	focusQueue
	focusLanguage
	focusCount
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

type sectionsLoadedMsg struct {
	path     string
	sections []types.SectionSummary
	err      error
}

type convertedMsg struct {
	output string
	err    error
}

type previewMsg struct {
	content string
	err     error
}

// Model is the bubbletea model of the form.
type Model struct {
	ctx  context.Context
	opts Options

	input  textinput.Model
	output textinput.Model
	all    sectionList
	queue  sectionList

	languages []string
	language  int

	focus      focus
	status     string
	statusKind statusKind
	busy       bool
	lastOutput string

	previewing bool
	preview    viewport.Model

	width  int
	height int
}

// New returns a form model wired with opts.
func New(ctx context.Context, opts Options) Model {
	in := textinput.New()
	in.Placeholder = "path/to/document.docx"
	in.Prompt = ""
	in.SetValue(opts.Input)
	in.Focus()

	out := textinput.New()
	out.Placeholder = "path/to/output.md"
	out.Prompt = ""
	out.SetValue(opts.Output)

	langs := append([]string{}, Languages...)
	lang := 0
	if opts.CodeLanguage != "" {
		lang = -1
		for i, l := range langs {
			if strings.EqualFold(l, opts.CodeLanguage) {
				lang = i
				break
			}
		}
		if lang < 0 {
			langs = append(langs, opts.CodeLanguage)
			lang = len(langs) - 1
		}
	}

	vp := viewport.New(80, 20)
	vp.Style = panelStyle

	return Model{
		ctx:       ctx,
		opts:      opts,
		input:     in,
		output:    out,
		all:       newSectionList(),
		queue:     newSectionList(),
		languages: langs,
		language:  lang,
		preview:   vp,
		width:     80,
		height:    24,
		status:    "Enter a Word file path and press enter to load its sections.",
	}
}

// CodeLanguage returns the fence info string for the chosen language, as
// shown in the form.
func (m Model) CodeLanguage() string {
	return m.languages[m.language]
}

// Queue returns the section indices in the conversion list, in list order.
func (m Model) Queue() []int { return m.queue.indices() }

func (m Model) Init() tea.Cmd {
	if strings.TrimSpace(m.opts.Input) != "" {
		return m.load(strings.TrimSpace(m.opts.Input))
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = msg.Width - 4
		m.preview.Height = msg.Height - 6
		return m, nil

	case sectionsLoadedMsg:
		if msg.err != nil {
			m.setStatus(statusError, fmt.Sprintf("Failed to parse the Word file: %v", msg.err))
			return m, nil
		}
		m.all.set(msg.sections)
		m.queue.clear()
		m.lastOutput = ""
		if strings.TrimSpace(m.output.Value()) == "" {
			m.output.SetValue(strings.TrimSuffix(msg.path, filepath.Ext(msg.path)) + ".md")
		}
		m.setStatus(statusInfo, fmt.Sprintf("Loaded %d sections from %s.", len(msg.sections), msg.path))
		return m, nil

	case convertedMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(statusError, fmt.Sprintf("Conversion failed: %v", msg.err))
			return m, nil
		}
		m.lastOutput = msg.output
		m.setStatus(statusSuccess, fmt.Sprintf("Conversion complete: %s", msg.output))
		return m, nil

	case previewMsg:
		if msg.err != nil {
			m.setStatus(statusError, fmt.Sprintf("Preview failed: %v", msg.err))
			return m, nil
		}
		m.preview.SetContent(msg.content)
		m.preview.GotoTop()
		m.previewing = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.previewing {
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q":
			m.previewing = false
			return m, nil
		}
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "ctrl+s":
		return m.convert()
	}

	switch m.focus {
	case focusInput, focusOutput:
		return m.handleTextKey(msg)
	case focusAll:
		switch key {
		case "up", "k":
			m.all.move(-1)
		case "down", "j":
			m.all.move(1)
		case " ", "x":
			m.all.toggle()
		case "a", "enter":
			m.addSelected()
		case "A":
			m.addAll()
		default:
			return m.handleCommonKey(key)
		}
	case focusQueue:
		switch key {
		case "up", "k":
			m.queue.move(-1)
		case "down", "j":
			m.queue.move(1)
		case " ", "x":
			m.queue.toggle()
		case "d", "delete", "backspace":
			m.removeSelected()
		case "D":
			m.queue.clear()
			m.setStatus(statusInfo, "Conversion list cleared.")
		default:
			return m.handleCommonKey(key)
		}
	case focusLanguage:
		switch key {
		case "left", "h":
			m.language = (m.language + len(m.languages) - 1) % len(m.languages)
		case "right", "l", " ", "enter":
			m.language = (m.language + 1) % len(m.languages)
		default:
			return m.handleCommonKey(key)
		}
	}
	return m, nil
}

func (m Model) handleTextKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if m.focus == focusInput {
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				m.setStatus(statusWarning, "Please enter the input Word file path.")
				return m, nil
			}
			m.setStatus(statusInfo, "Loading sections...")
			return m, m.load(path)
		}
		return m, m.setFocus(focusAll)
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.output, cmd = m.output.Update(msg)
	}
	return m, cmd
}

// handleCommonKey handles keys shared by the list and language panes.
func (m Model) handleCommonKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "c":
		return m.convert()
	case "o":
		return m.open(false)
	case "f":
		return m.open(true)
	case "p":
		return m.showPreview()
	}
	return m, nil
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.input.Blur()
	m.output.Blur()
	switch f {
	case focusInput:
		return m.input.Focus()
	case focusOutput:
		return m.output.Focus()
	}
	return nil
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) addSelected() {
	n := m.queue.add(m.all.selected()...)
	m.all.marked = make(map[int]bool)
	m.setStatus(statusInfo, fmt.Sprintf("Added %d sections to the conversion list.", n))
}

func (m *Model) addAll() {
	n := m.queue.add(m.all.items...)
	m.setStatus(statusInfo, fmt.Sprintf("Added %d sections to the conversion list.", n))
}

func (m *Model) removeSelected() {
	if len(m.queue.items) == 0 {
		return
	}
	sel := m.queue.selected()
	m.queue.remove(sel...)
	m.setStatus(statusInfo, fmt.Sprintf("Removed %d sections from the conversion list.", len(sel)))
}

func (m Model) load(path string) tea.Cmd {
	loadFn := m.opts.Load
	return func() tea.Msg {
		if loadFn == nil {
			return sectionsLoadedMsg{path: path, err: fmt.Errorf("no section loader configured")}
		}
		sections, err := loadFn(path)
		return sectionsLoadedMsg{path: path, sections: sections, err: err}
	}
}

func (m Model) convert() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	req := Request{
		Input:        strings.TrimSpace(m.input.Value()),
		Output:       strings.TrimSpace(m.output.Value()),
		CodeLanguage: m.CodeLanguage(),
		Sections:     m.queue.indices(),
	}
	if req.Input == "" || req.Output == "" {
		m.setStatus(statusWarning, "Please enter both the input and output file paths.")
		return m, nil
	}
	if len(req.Sections) == 0 {
		m.setStatus(statusWarning, "No sections selected for conversion.")
		return m, nil
	}
	if m.opts.Convert == nil {
		m.setStatus(statusError, "Conversion is not available.")
		return m, nil
	}

	m.busy = true
	m.setStatus(statusInfo, "Converting...")
	ctx, convertFn := m.ctx, m.opts.Convert
	return m, func() tea.Msg {
		out, err := convertFn(ctx, req)
		return convertedMsg{output: out, err: err}
	}
}

func (m Model) open(folder bool) (tea.Model, tea.Cmd) {
	if m.lastOutput == "" {
		return m, nil
	}
	if m.opts.Opener == nil {
		m.setStatus(statusError, "No file opener available on this system.")
		return m, nil
	}
	var err error
	if folder {
		err = m.opts.Opener.OpenFolder(m.lastOutput)
	} else {
		err = m.opts.Opener.Open(m.lastOutput)
	}
	if err != nil {
		m.setStatus(statusError, err.Error())
	}
	return m, nil
}

func (m Model) showPreview() (tea.Model, tea.Cmd) {
	if m.lastOutput == "" {
		return m, nil
	}
	path, render, width := m.lastOutput, m.opts.Render, m.preview.Width
	return m, func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return previewMsg{err: err}
		}
		if render == nil {
			return previewMsg{content: string(data)}
		}
		out, err := render(string(data), width)
		return previewMsg{content: out, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Word to Markdown"))
	b.WriteString("\n\n")

	if m.previewing {
		b.WriteString(labelStyle.Render("Preview: " + m.lastOutput))
		b.WriteString("\n")
		b.WriteString(m.preview.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc/q back"))
		return b.String()
	}

	b.WriteString(m.fieldView("Input Word file", m.input, m.focus == focusInput))
	b.WriteString("\n")

	listWidth := max((m.width-6)/2, 20)
	listHeight := max(m.height-16, 3)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.all.view("All sections", m.focus == focusAll, listWidth, listHeight),
		" ",
		m.queue.view("Conversion list", m.focus == focusQueue, listWidth, listHeight),
	))
	b.WriteString("\n")

	b.WriteString(m.fieldView("Output Markdown file", m.output, m.focus == focusOutput))
	b.WriteString("\n")
	b.WriteString(m.languageView())
	b.WriteString("\n\n")

	b.WriteString(m.statusView())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) fieldView(label string, in textinput.Model, focused bool) string {
	style := labelStyle
	if focused {
		style = focusedLabelStyle
	}
	return style.Render(label+": ") + in.View()
}

func (m Model) languageView() string {
	style := labelStyle
	if m.focus == focusLanguage {
		style = focusedLabelStyle
	}
	name := m.languages[m.language]
	if name == "" {
		name = "(none)"
	}
	return style.Render("Code language: ") + "< " + name + " >"
}

func (m Model) statusView() string {
	switch m.statusKind {
	case statusSuccess:
		return successStyle.Render("✓ " + m.status)
	case statusWarning:
		return warningStyle.Render("! " + m.status)
	case statusError:
		return errorStyle.Render("✗ " + m.status)
	}
	return labelStyle.Render(m.status)
}

func (m Model) help() string {
	var keys []string
	switch m.focus {
	case focusInput:
		keys = []string{"enter load sections"}
	case focusOutput:
		keys = []string{"enter next"}
	case focusAll:
		keys = []string{"↑/↓ move", "space mark", "a add", "A add all"}
	case focusQueue:
		keys = []string{"↑/↓ move", "space mark", "d remove", "D remove all"}
	case focusLanguage:
		keys = []string{"←/→ change"}
	}
	keys = append(keys, "tab next field", "ctrl+s convert")
	if m.lastOutput != "" {
		keys = append(keys, "o open file", "f open folder", "p preview")
	}
	return strings.Join(keys, " • ") + " • ctrl+c quit"
}

// Run starts the form on the terminal and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
