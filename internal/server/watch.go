package server

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Zachkp/folio/internal/effects"
)

// settle is how long a burst of edits is collected before the page is
// dropped.
const settle = 300 * time.Millisecond

// Watch invalidates the cached page whenever a file under one of paths
// changes. It blocks until ctx is done.
func (s *Server) Watch(ctx context.Context, paths ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, root := range paths {
		if root == "" {
			continue
		}
		info, err := os.Stat(root)
		if err != nil {
			s.logger.Warn("not watching", "path", root, "err", err)
			continue
		}
		if !info.IsDir() {
			if err := w.Add(root); err != nil {
				s.logger.Warn("failed to watch", "path", root, "err", err)
			}
			continue
		}
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if err := w.Add(path); err != nil {
					s.logger.Warn("failed to watch", "path", path, "err", err)
				}
			}
			return nil
		})
	}

	rebuild := effects.NewThrottle(effects.TickerScheduler{Interval: settle}, func() {
		s.logger.Info("site data changed, page will be rebuilt")
		s.Invalidate()
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.Add(ev.Name)
				}
			}
			s.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			rebuild.Request()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "err", err)
		}
	}
}
