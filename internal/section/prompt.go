// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user on a console which sections to convert.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// pending carries the result of a read that is still in flight. A read
	// abandoned on cancellation is picked up by the next call.
	pending chan lineRead
}

type lineRead struct {
	line string
	err  error
}

// NewPrompter returns a Prompter reading answers from in and writing the
// section list and prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Choose lists the selectable sections and reads a range until the answer
// parses and every index is in range. It gives up when input ends or ctx is
// cancelled.
func (p *Prompter) Choose(ctx context.Context, sections []Section) ([]Section, error) {
	fmt.Fprintln(p.out, "Detected sections:")
	for _, s := range Summaries(sections) {
		fmt.Fprintf(p.out, "%d: %s\n", s.Index, s.Title)
	}

	maxIndex := MaxIndex(sections)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fmt.Fprint(p.out, "Enter the sections to convert (e.g. 2-4 or 1,3,5): ")
		line, readErr := p.readLine(ctx)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("reading selection: %w", readErr)
		}
		if readErr != nil && strings.TrimSpace(line) == "" {
			fmt.Fprintln(p.out)
			return nil, fmt.Errorf("reading selection: %w", io.ErrUnexpectedEOF)
		}

		sel, err := ParseRange(line)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input format, please try again.")
			if readErr != nil {
				return nil, err
			}
			continue
		}
		if err := Validate(sel, maxIndex); err != nil {
			fmt.Fprintf(p.out, "Invalid selection, the maximum is %d.\n", maxIndex)
			if readErr != nil {
				return nil, err
			}
			continue
		}
		return Select(sections, sel), nil
	}
}

// readLine reads one line from the input, returning early with ctx.Err()
// when ctx is cancelled while the read blocks.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if p.pending == nil {
		ch := make(chan lineRead, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- lineRead{line: line, err: err}
		}()
		p.pending = ch
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.pending:
		p.pending = nil
		return r.line, r.err
	}
}
