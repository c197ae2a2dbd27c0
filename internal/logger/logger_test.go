// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.ConversionStarted("in.docx", "out.md")
	assert.Empty(t, buf.String(), "info should be filtered at warn level")

	l.ImageSkipped(2, "rId7", "external")
	assert.Contains(t, buf.String(), "image skipped")
	assert.Contains(t, buf.String(), "rId7")
}

func TestNew_UnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "chatty")

	l.ConversionCompleted("out.md", 1, 0, time.Second)
	assert.Empty(t, buf.String())

	l.ConversionFailed("in.docx", errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.ConversionFailed("in.docx", errors.New("boom"))
}
