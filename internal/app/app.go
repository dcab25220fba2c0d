// Package app hosts one editing session for a front end.
//
// The engine is single threaded. An App owns its Session and serves every
// call through one event loop goroutine, so any number of callers (a CLI, a
// script, the file watcher) can share it. Callers hand work to the loop with
// Do and block until it has run.
package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/keynote/internal/clipboard"
	"github.com/dshills/keynote/internal/config"
	"github.com/dshills/keynote/internal/engine"
	"github.com/dshills/keynote/internal/log"
)

// DefaultDebounce is how long the watcher waits for writes to settle before
// reloading.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc is called after the watcher reloaded path into the session.
type ReloadFunc func(path string, sum engine.Summary)

// App is the single writer for one engine.Session.
type App struct {
	id     string
	sess   *engine.Session
	clip   clipboard.Clipboard
	cfg    *config.Config
	logger *log.Logger
	log    zerolog.Logger

	requests chan request
	done     chan struct{}
	running  atomic.Bool

	// file state, guarded by mu
	mu       sync.Mutex
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	onReload ReloadFunc
	watch    bool
}

type request struct {
	fn    func(*engine.Session) error
	reply chan error
}

// Option configures an App.
type Option func(*App)

// WithConfig applies cfg to the session (history size, search defaults and
// language globs).
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.cfg = cfg
	}
}

// WithLogger sets the host logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClipboard sets the clipboard used by Copy, Cut and Paste.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(a *App) {
		if c != nil {
			a.clip = c
		}
	}
}

// WithWatch enables reloading the opened file when it changes on disk.
func WithWatch(onReload ReloadFunc) Option {
	return func(a *App) {
		a.watch = true
		a.onReload = onReload
	}
}

// WithDebounce sets the watcher settle delay.
func WithDebounce(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.debounce = d
		}
	}
}

// New creates an App with an empty session. The event loop does not start
// until Run is called.
func New(opts ...Option) (*App, error) {
	a := &App{
		id:       uuid.NewString(),
		clip:     clipboard.NewMemory(),
		logger:   log.Nop(),
		requests: make(chan request),
		done:     make(chan struct{}),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.log = a.logger.With("app").With().Str("session", a.id).Logger()

	sessOpts := []engine.Option{
		engine.WithLogger(a.logger.With("engine").With().Str("session", a.id).Logger()),
	}
	if a.cfg != nil {
		extra, err := a.cfg.SessionOptions()
		if err != nil {
			return nil, errors.Errorf("configuring session: %w", err)
		}
		sessOpts = append(sessOpts, extra...)
	}
	a.sess = engine.New(sessOpts...)

	if a.watch {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, errors.Errorf("creating watcher: %w", err)
		}
		a.fsw = fsw
	}

	return a, nil
}

// ID returns the session identifier used in log events.
func (a *App) ID() string {
	return a.id
}

// Path returns the file the session was opened from or saved to.
func (a *App) Path() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.path
}

// Do runs fn on the event loop and returns its error. It blocks until the
// loop has served the request, ctx ends, or the loop has stopped.
// fn must not retain the session or call Do.
func (a *App) Do(ctx context.Context, fn func(*engine.Session) error) error {
	req := request{fn: fn, reply: make(chan error, 1)}

	select {
	case a.requests <- req:
	case <-a.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run serves requests and watches the opened file until ctx ends. Ending
// ctx is a normal shutdown and returns nil.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(a.done)

	a.mu.Lock()
	fsw := a.fsw
	a.mu.Unlock()

	a.log.Debug().Bool("watch", fsw != nil).Msg("event loop started")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.loop(ctx)
	})
	if fsw != nil {
		g.Go(func() error {
			return a.watchLoop(ctx, fsw)
		})
	}

	err := g.Wait()
	a.log.Debug().Err(err).Msg("event loop stopped")
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Close releases the file watcher. It is safe to call more than once.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fsw == nil {
		return nil
	}
	err := a.fsw.Close()
	a.fsw = nil
	return err
}

func (a *App) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-a.requests:
			req.reply <- a.serve(req.fn)
		}
	}
}

func (a *App) serve(fn func(*engine.Session) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
			a.log.Error().Err(err).Msg("request panicked")
		}
	}()
	return fn(a.sess)
}
