package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Ensure DirectoryWatcher implements the interface.
var _ driving.Watcher = (*DirectoryWatcher)(nil)

// defaultSettleDelay is how long a file must stay quiet before it is
// considered fully written and gets uploaded.
const defaultSettleDelay = 500 * time.Millisecond

// DirectoryWatcher uploads PDF files dropped into a watched directory.
// Each file is uploaded once per watch session; files already in the
// directory when the watch starts are not touched.
type DirectoryWatcher struct {
	documents   driving.DocumentService
	settleDelay time.Duration
}

// NewDirectoryWatcher creates a directory watcher.
func NewDirectoryWatcher(documents driving.DocumentService) *DirectoryWatcher {
	return &DirectoryWatcher{
		documents:   documents,
		settleDelay: defaultSettleDelay,
	}
}

// SetSettleDelay overrides how long a file must stay unchanged before
// upload. Used in tests to keep runs fast.
func (w *DirectoryWatcher) SetSettleDelay(d time.Duration) {
	if d > 0 {
		w.settleDelay = d
	}
}

// Watch blocks until ctx is cancelled. Create and write events for .pdf
// files restart the file's settle timer; once a file has been quiet for
// the settle delay it is read and uploaded. Upload failures are logged
// and do not stop the watch.
func (w *DirectoryWatcher) Watch(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch path %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}

	logger.Info("Watching %s for PDF files", dir)

	pending := make(map[string]time.Time)
	uploaded := make(map[string]bool)

	tick := w.settleDelay / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if strings.ToLower(filepath.Ext(event.Name)) != ".pdf" {
				continue
			}
			if uploaded[event.Name] {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.settleDelay {
					continue
				}
				delete(pending, path)
				uploaded[path] = true
				w.upload(ctx, path)
			}
		}
	}
}

// upload reads the settled file and runs the full upload flow.
func (w *DirectoryWatcher) upload(ctx context.Context, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read %s: %v", path, err)
		return
	}

	doc, count, err := w.documents.Upload(ctx, filepath.Base(path), raw, nil)
	if err != nil {
		logger.Warn("Failed to upload %s: %v", path, err)
		return
	}

	logger.Info("Uploaded %s as document %s (%d chunks)", path, doc.ID, count)
}
