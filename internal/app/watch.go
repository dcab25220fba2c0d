package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/keynote/internal/engine"
)

// watchLoop reloads the opened file after writes settle for the debounce
// delay. Events for other files in the directory are ignored.
func (a *App) watchLoop(ctx context.Context, fsw *fsnotify.Watcher) error {
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
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !a.isOpened(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(a.debounce)
			} else {
				timer.Reset(a.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := a.reload(ctx); err != nil {
				a.log.Warn().Err(err).Msg("reload failed")
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			a.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (a *App) isOpened(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.path != "" && filepath.Clean(name) == a.path
}

// reload replaces the session with the file's content unless the session
// has unsaved edits or already holds that content.
func (a *App) reload(ctx context.Context) error {
	path := a.Path()
	content, err := ReadText("reload", path)
	if err != nil {
		return err
	}

	var (
		sum      engine.Summary
		reloaded bool
	)
	err = a.Do(ctx, func(s *engine.Session) error {
		if s.IsModified() {
			a.log.Info().Str("path", path).Msg("skipping reload of modified document")
			return nil
		}
		if content == s.Text() {
			return nil
		}
		s.OpenDocument(content, filepath.Base(path))
		sum = s.Statistics()
		reloaded = true
		return nil
	})
	if err != nil || !reloaded {
		return err
	}

	a.log.Info().
		Str("path", path).
		Int("characters", sum.Characters).
		Msg("document reloaded")

	if a.onReload != nil {
		a.onReload(path, sum)
	}
	return nil
}
