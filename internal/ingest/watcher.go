package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay lets rapid successive writes (editors, sync tools) settle
// before the export is re-read.
const debounceDelay = 500 * time.Millisecond

// Watcher monitors an export file and invokes a callback when it changes.
// Watching the parent directory instead of the file itself survives the
// replace-by-rename pattern most tools use when writing CSVs.
type Watcher struct {
	path     string
	onChange func()
	fw       *fsnotify.Watcher
	logger   *slog.Logger
}

// NewWatcher creates a watcher for the export file at path.
// onChange fires after changes settle; it runs on the watcher goroutine.
func NewWatcher(path string, onChange func(), logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch export directory: %w", err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		fw:       fw,
		logger:   logger,
	}, nil
}

// Start processes file events until the context is canceled.
func (w *Watcher) Start(ctx context.Context) {
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.logger.Debug("export changed", "path", w.path, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, w.onChange)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("export watch error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
