// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdiddy/word2md/internal/docx/docxtest"
	"github.com/pdiddy/word2md/internal/section"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_ReconvertsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	old := DebounceDelay
	DebounceDelay = 20 * time.Millisecond
	t.Cleanup(func() { DebounceDelay = old })

	srcDir, outDir := t.TempDir(), t.TempDir()
	src := docxtest.New().Heading(1, "One").Text("first draft").WriteFile(t, srcDir, "doc.docx")
	out := filepath.Join(outDir, "doc.md")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var log syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- New().Watch(ctx, Request{Source: src, Output: out, Selection: section.NewSelection(1)}, &log)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(log.String(), "Watching ")
	}, 5*time.Second, 10*time.Millisecond)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "## One\nfirst draft\n", string(data))

	docxtest.New().Heading(1, "One").Text("second draft").WriteFile(t, srcDir, "doc.docx")

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "second draft")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_FirstConversionErrorStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	err := New().Watch(context.Background(), Request{
		Source:    filepath.Join(dir, "missing.docx"),
		Output:    filepath.Join(dir, "doc.md"),
		Selection: section.NewSelection(1),
	}, &bytes.Buffer{})
	require.Error(t, err)
}
