// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/word2md/internal/docx"
)

func para(style, text string) docx.Paragraph {
	return docx.NewParagraph(style, docx.Run{Text: text})
}

func h1(text string) docx.Paragraph   { return para(docx.StyleHeading1, text) }
func body(text string) docx.Paragraph { return para(docx.StyleNormal, text) }

func indices(sections []Section) []int {
	out := make([]int, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Index)
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []docx.Paragraph
		wantIdx    []int
		wantTitles []string
	}{
		{
			name:       "preamble kept when it has content",
			paragraphs: []docx.Paragraph{body("intro"), h1(" One "), body("a"), h1("Two"), body("b")},
			wantIdx:    []int{0, 1, 2},
			wantTitles: []string{"", "One", "Two"},
		},
		{
			name:       "no preamble",
			paragraphs: []docx.Paragraph{h1("One"), body("a")},
			wantIdx:    []int{1},
			wantTitles: []string{"One"},
		},
		{
			name:       "empty heading dropped but index consumed",
			paragraphs: []docx.Paragraph{h1("One"), h1("Two"), body("b"), h1("Three")},
			wantIdx:    []int{2},
			wantTitles: []string{"Two"},
		},
		{
			name:       "no headings at all",
			paragraphs: []docx.Paragraph{body("a"), body("b")},
			wantIdx:    []int{0},
			wantTitles: []string{""},
		},
		{
			name:    "empty document",
			wantIdx: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.paragraphs)
			assert.Equal(t, tt.wantIdx, indices(got))
			for i, s := range got {
				assert.Equal(t, tt.wantTitles[i], s.Title)
			}
		})
	}
}

func TestParse_BodyExcludesHeading(t *testing.T) {
	got := Parse([]docx.Paragraph{h1("One"), body("a"), para(docx.StyleHeading2, "sub"), body("b")})
	require.Len(t, got, 1)
	require.Len(t, got[0].Paragraphs, 3)
	assert.Equal(t, "a", got[0].Paragraphs[0].Text())
	assert.Equal(t, "sub", got[0].Paragraphs[1].Text())
}

func TestSummariesAndMaxIndex(t *testing.T) {
	sections := Parse([]docx.Paragraph{body("pre"), h1("One"), body("a"), body("b"), h1("Two"), body("c")})

	sums := Summaries(sections)
	require.Len(t, sums, 2)
	assert.Equal(t, 1, sums[0].Index)
	assert.Equal(t, "One", sums[0].Title)
	assert.Equal(t, 2, sums[0].Paragraphs)
	assert.Equal(t, 2, MaxIndex(sections))
	assert.Equal(t, 0, MaxIndex(nil))
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{input: "2-4", want: []int{2, 3, 4}},
		{input: " 2 - 4 ", want: []int{2, 3, 4}},
		{input: "1,3,5", want: []int{1, 3, 5}},
		{input: "3", want: []int{3}},
		{input: "3,3", want: []int{3}},
		{input: "4-2", want: []int{}},
		{input: "１－３", want: []int{1, 2, 3}},
		{input: "１，３", want: []int{1, 3}},
		{input: "1、2", want: []int{1, 2}},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "1-2-3", wantErr: true},
		{input: "1,,2", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "1-99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Indices())
		})
	}
}

func TestParseRange_LargeBounds(t *testing.T) {
	tests := []struct {
		input string
		want  Selection
		bad   int
	}{
		{input: "1-9223372036854775807", want: Selection{{Lo: 1, Hi: 9223372036854775807}}, bad: 9223372036854775807},
		{input: "1-99999999999", want: Selection{{Lo: 1, Hi: 99999999999}}, bad: 99999999999},
		{input: "0-2", want: Selection{{Lo: 0, Hi: 2}}, bad: 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			done := make(chan struct{})
			var (
				got Selection
				err error
			)
			go func() {
				defer close(done)
				got, err = ParseRange(tt.input)
			}()
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("ParseRange did not return")
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Contains(2))

			err = Validate(got, 3)
			require.ErrorIs(t, err, ErrOutOfRange)
			assert.Contains(t, err.Error(), fmt.Sprintf("%d (maximum is 3)", tt.bad))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(NewSelection(1, 2, 3), 3))
	assert.NoError(t, Validate(NewSelection(), 3))

	err := Validate(NewSelection(0), 3)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	err = Validate(NewSelection(2, 4), 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Contains(t, err.Error(), "maximum is 3")
}

func TestSelect_DocumentOrder(t *testing.T) {
	sections := Parse([]docx.Paragraph{h1("One"), body("a"), h1("Two"), body("b"), h1("Three"), body("c")})
	got := Select(sections, NewSelection(3, 1))
	assert.Equal(t, []int{1, 3}, indices(got))
}

func TestSelection_String(t *testing.T) {
	assert.Equal(t, "1,4,9", NewSelection(9, 1, 4).String())
	assert.Equal(t, "2-4,7", Selection{{Lo: 7, Hi: 7}, {Lo: 2, Hi: 4}, {Lo: 5, Hi: 1}}.String())
}

func TestPrompter_Choose(t *testing.T) {
	sections := Parse([]docx.Paragraph{body("pre"), h1("One"), body("a"), h1("Two"), body("b"), h1("Three"), body("c")})

	tests := []struct {
		name     string
		input    string
		want     []int
		wantErr  error
		wantOuts []string
	}{
		{
			name:     "range",
			input:    "2-3\n",
			want:     []int{2, 3},
			wantOuts: []string{"Detected sections:", "1: One", "2: Two", "3: Three"},
		},
		{
			name:     "retries after bad format",
			input:    "x\n1,3\n",
			want:     []int{1, 3},
			wantOuts: []string{"Invalid input format"},
		},
		{
			name:     "retries after out of range",
			input:    "7\n2\n",
			want:     []int{2},
			wantOuts: []string{"the maximum is 3"},
		},
		{
			name:  "last line without newline",
			input: "1",
			want:  []int{1},
		},
		{
			name:    "input ends",
			input:   "",
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "input ends after bad answer",
			input:   "x",
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Choose(context.Background(), sections)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, indices(got))
			for _, s := range tt.wantOuts {
				assert.Contains(t, out.String(), s)
			}
			assert.NotContains(t, out.String(), "0: ")
		})
	}
}

func TestPrompter_OutOfRangeRetries(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1-9223372036854775807\n2\n"), &out)

	got, err := p.Choose(context.Background(), Parse([]docx.Paragraph{h1("One"), body("a"), h1("Two"), body("b")}))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, indices(got))
	assert.Contains(t, out.String(), "the maximum is 2")
}

func TestPrompter_CancelWhileReading(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPrompter(pr, io.Discard)

	done := make(chan error, 1)
	go func() {
		_, err := p.Choose(ctx, Parse([]docx.Paragraph{h1("One"), body("a")}))
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Choose kept blocking after cancel")
	}

	// A line typed after the cancel is picked up by the next Choose.
	go func() { _, _ = pw.Write([]byte("1\n")) }()
	got, err := p.Choose(context.Background(), Parse([]docx.Paragraph{h1("One"), body("a")}))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, indices(got))
}

func TestPrompter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPrompter(strings.NewReader("1\n"), io.Discard)
	_, err := p.Choose(ctx, Parse([]docx.Paragraph{h1("One"), body("a")}))
	assert.ErrorIs(t, err, context.Canceled)
}
