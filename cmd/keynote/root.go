package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/keynote/internal/app"
	"github.com/dshills/keynote/internal/config"
	"github.com/dshills/keynote/internal/engine"
	"github.com/dshills/keynote/internal/log"
)

// rootOpts carries the state shared by every subcommand.
type rootOpts struct {
	configPath string
	debug      bool

	out    io.Writer
	errOut io.Writer

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	o := &rootOpts{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "keynote",
		Short: "Inspect and edit text files with the keynote engine",
		Long: `keynote counts, searches, replaces and highlights text files using the
same engine as the editor. Edits are scriptable with Lua.`,
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setup()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "config file path (default: user config dir)")
	cmd.PersistentFlags().BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		newStatsCmd(o),
		newFindCmd(o),
		newReplaceCmd(o),
		newHighlightCmd(o),
		newRunCmd(o),
		newWatchCmd(o),
	)
	return cmd
}

// setup loads the config and builds the logger.
func (o *rootOpts) setup() error {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err == nil {
			path = p
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.cfg = cfg

	level := cfg.LogLevel()
	switch {
	case o.debug:
		level = zerolog.DebugLevel
	case level < zerolog.WarnLevel:
		// console rows already report what info events would
		level = zerolog.WarnLevel
	}
	o.logger = log.NewWithSink(o.out, zerolog.ConsoleWriter{Out: o.errOut}, level)
	return nil
}

// newSession opens content named after path in a configured session.
func (o *rootOpts) newSession(content, path string) (*engine.Session, error) {
	opts, err := o.cfg.SessionOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		engine.WithLogger(o.logger.With("engine")),
		engine.WithContent(content, filepath.Base(path)),
	)
	return engine.New(opts...), nil
}

// openSession reads the whole file at path into a new session.
func (o *rootOpts) openSession(path string) (*engine.Session, error) {
	content, err := app.ReadText("open", path)
	if err != nil {
		return nil, err
	}
	return o.newSession(content, path)
}

// startApp runs a configured App until the returned stop function is called.
func (o *rootOpts) startApp(ctx context.Context, opts ...app.Option) (*app.App, func(), error) {
	base := []app.Option{app.WithConfig(o.cfg), app.WithLogger(o.logger)}
	a, err := app.New(append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	errc := make(chan error, 1)
	go func() { errc <- a.Run(ctx) }()

	stop := func() {
		cancel()
		o.loopStopped(<-errc)
		_ = a.Close()
	}
	return a, stop, nil
}

func (o *rootOpts) loopStopped(err error) {
	if err == nil {
		return
	}
	zl := o.logger.Zerolog()
	zl.Warn().Err(err).Msg("event loop failed")
}

// searchFlags binds --case and --word.
type searchFlags struct {
	caseSensitive bool
	wholeWord     bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.caseSensitive, "case", false, "match case")
	cmd.Flags().BoolVarP(&f.wholeWord, "word", "w", false, "match whole words only")
}

// options returns the configured search defaults overridden by the flags
// the user set.
func (f *searchFlags) options(cmd *cobra.Command, defaults engine.SearchOptions) engine.SearchOptions {
	opts := defaults
	if cmd.Flags().Changed("case") {
		opts.CaseSensitive = f.caseSensitive
	}
	if cmd.Flags().Changed("word") {
		opts.WholeWord = f.wholeWord
	}
	return opts
}
