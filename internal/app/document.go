package app

import (
	"context"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"

	"github.com/dshills/keynote/internal/engine"
	"github.com/dshills/keynote/internal/script"
)

// ReadText reads the whole file at path as text. Files that are not valid
// UTF-8 are rejected with ErrInvalidUTF8 so they are never rewritten.
func ReadText(op, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Op: op, Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &FileError{Op: op, Path: path, Err: ErrInvalidUTF8}
	}
	return string(data), nil
}

// Open reads the whole file at path and opens it in the session. With
// WithWatch the file is watched from then on.
func (a *App) Open(ctx context.Context, path string) (engine.Summary, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return engine.Summary{}, &FileError{Op: "open", Path: path, Err: err}
	}

	content, err := ReadText("open", abs)
	if err != nil {
		return engine.Summary{}, err
	}

	var sum engine.Summary
	err = a.Do(ctx, func(s *engine.Session) error {
		s.OpenDocument(content, filepath.Base(abs))
		sum = s.Statistics()
		return nil
	})
	if err != nil {
		return engine.Summary{}, err
	}

	a.mu.Lock()
	a.path = abs
	fsw := a.fsw
	a.mu.Unlock()

	a.log.Info().
		Str("path", abs).
		Int("characters", sum.Characters).
		Msg("document opened")

	if fsw != nil {
		// Watch the directory so editors that save by rename are seen.
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			return sum, &FileError{Op: "watch", Path: abs, Err: err}
		}
	}
	return sum, nil
}

// Save writes the session text to path, or to the opened file when path is
// empty. The session is renamed to the file's base name.
func (a *App) Save(ctx context.Context, path string) error {
	if path == "" {
		path = a.Path()
	}
	if path == "" {
		return ErrNoFilePath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}

	err = a.Do(ctx, func(s *engine.Session) error {
		if s.Len() == 0 {
			return engine.ErrEmptyDocument
		}
		if err := os.WriteFile(abs, []byte(s.Text()), 0o644); err != nil {
			return &FileError{Op: "save", Path: abs, Err: err}
		}
		return s.Save(filepath.Base(abs))
	})
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.path = abs
	a.mu.Unlock()

	a.log.Info().Str("path", abs).Msg("document saved")
	return nil
}

// Text returns the current session text.
func (a *App) Text(ctx context.Context) (string, error) {
	var text string
	err := a.Do(ctx, func(s *engine.Session) error {
		text = s.Text()
		return nil
	})
	return text, err
}

// Copy puts the selection on the clipboard. It reports false when nothing
// is selected.
func (a *App) Copy(ctx context.Context) (bool, error) {
	var copied bool
	err := a.Do(ctx, func(s *engine.Session) error {
		text, ok := s.Copy()
		if !ok {
			return nil
		}
		if err := a.clip.WriteAll(text); err != nil {
			return errors.Errorf("copy: %w", err)
		}
		copied = true
		return nil
	})
	return copied, err
}

// Cut moves the selection to the clipboard. The session is only edited once
// the clipboard write succeeded.
func (a *App) Cut(ctx context.Context) (bool, error) {
	var cut bool
	err := a.Do(ctx, func(s *engine.Session) error {
		text, ok := s.Copy()
		if !ok {
			return nil
		}
		if err := a.clip.WriteAll(text); err != nil {
			return errors.Errorf("cut: %w", err)
		}
		s.Cut()
		cut = true
		return nil
	})
	return cut, err
}

// Paste replaces the selection with the clipboard text. An empty clipboard
// leaves the session unchanged.
func (a *App) Paste(ctx context.Context) (bool, error) {
	clip, err := a.clip.ReadAll()
	if err != nil {
		return false, errors.Errorf("paste: %w", err)
	}
	if clip == "" {
		return false, nil
	}
	return true, a.Do(ctx, func(s *engine.Session) error {
		s.Paste(clip)
		return nil
	})
}

// RunScript runs Lua code against the session on the event loop. print
// output goes to opts' WithOutput writer.
func (a *App) RunScript(ctx context.Context, code string, opts ...script.Option) error {
	return a.Do(ctx, func(s *engine.Session) error {
		r := a.newRunner(s, opts)
		defer r.Close()
		return r.Run(ctx, code)
	})
}

// RunScriptFile runs the Lua file at path against the session.
func (a *App) RunScriptFile(ctx context.Context, path string, opts ...script.Option) error {
	return a.Do(ctx, func(s *engine.Session) error {
		r := a.newRunner(s, opts)
		defer r.Close()
		return r.RunFile(ctx, path)
	})
}

func (a *App) newRunner(s *engine.Session, opts []script.Option) *script.Runner {
	base := []script.Option{
		script.WithClipboard(a.clip),
		script.WithLogger(a.logger.With("script")),
	}
	return script.NewRunner(s, append(base, opts...)...)
}
