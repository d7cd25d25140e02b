package specdoc

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the document whenever its file changes. The parent
// directory is watched so that editors and deploy tools replacing the file
// are picked up too. Watch blocks until ctx is canceled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("specdoc: create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("specdoc: watch %q: %w", dir, err)
	}

	s.logger.Info("watching specification document", "path", s.path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("specification watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			s.logger.Debug("specification document changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			err := s.Reload()
			if err != nil {
				s.logger.Error("failed to reload specification document; keeping previous version",
					"path", s.path,
					"err", err)
			} else {
				s.logger.Info("specification document reloaded",
					"path", s.path,
					"title", s.Info().Title)
			}
			if s.onReload != nil {
				s.onReload(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("specification watcher error", "err", err)
		}
	}
}
