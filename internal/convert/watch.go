// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/word2md/internal/section"
)

// DebounceDelay is how long Watch waits after the last write to the source
// before converting again. Word saves a document in several writes.
var DebounceDelay = 500 * time.Millisecond

// Watch converts req once, then converts again every time the source file
// changes, until ctx is cancelled. The first conversion's section choice
// is reused for later runs. Errors from later runs are reported to w and
// do not stop the watch.
func (c *Converter) Watch(ctx context.Context, req Request, w io.Writer) error {
	res, err := c.Convert(ctx, req, w)
	if err != nil {
		return err
	}
	if req.Selection == nil {
		req.Selection = section.NewSelection(res.Sections...)
	}

	source, err := filepath.Abs(req.Source)
	if err != nil {
		return fmt.Errorf("resolving source path %s: %w", req.Source, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory rather than
	// the file itself.
	if err := watcher.Add(filepath.Dir(source)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(source), err)
	}
	fmt.Fprintf(w, "Watching %s for changes (Ctrl+C to stop)\n", source)

	timer := time.NewTimer(DebounceDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != source {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			c.log.Debug("source changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(DebounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("file watcher error", "err", err)

		case <-timer.C:
			if _, err := c.Convert(ctx, req, w); err != nil {
				fmt.Fprintf(w, "Conversion failed: %v\n", err)
			}
		}
	}
}
