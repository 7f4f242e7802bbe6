package sessions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

var DebounceDelay = 100 * time.Millisecond

// Watch calls onChange whenever the session file is written, replaced or
// removed by any process, until ctx is done. Bursts of events are
// collapsed into a single call.
func (m *FileStorage) Watch(ctx context.Context, onChange func()) error {
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory so removal and re-creation of the file are seen
	if err := watcher.Add(m.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch session directory: %w", err)
	}

	go func() {
		defer watcher.Close()

		target := filepath.Clean(m.Path())
		var pending <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					logrus.WithFields(logrus.Fields{
						"path": event.Name,
						"op":   event.Op.String(),
					}).Debugln("Session file change detected")
					pending = time.After(DebounceDelay)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.WithError(err).Warnln("Session watcher error")

			case <-pending:
				pending = nil
				onChange()
			}
		}
	}()

	return nil
}
