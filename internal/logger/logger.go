// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger wraps charm log for structured diagnostics. User-facing
// progress output does not go through the logger.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at the given level name
// (debug, info, warn, error). Unknown names fall back to warn.
func New(w io.Writer, level string) *Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           lvl,
		Prefix:          "word2md",
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(io.Discard, "error")
}

// ConversionStarted logs the start of a conversion.
func (l *Logger) ConversionStarted(source, output string) {
	l.Info("conversion started", "source", source, "output", output)
}

// ConversionCompleted logs a finished conversion.
func (l *Logger) ConversionCompleted(output string, sections, images int, duration time.Duration) {
	l.Info("conversion completed",
		"output", output,
		"sections", sections,
		"images", images,
		"duration", duration.Round(time.Millisecond))
}

// ConversionFailed logs a failed conversion.
func (l *Logger) ConversionFailed(source string, err error) {
	l.Error("conversion failed", "source", source, "err", err)
}

// ImageSkipped logs an image reference that could not be resolved.
func (l *Logger) ImageSkipped(section int, relID, reason string) {
	l.Warn("image skipped", "section", section, "rel", relID, "reason", reason)
}
