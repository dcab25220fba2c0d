package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/keynote/internal/app"
	"github.com/dshills/keynote/internal/engine"
	"github.com/dshills/keynote/internal/log"
)

func newWatchCmd(o *rootOpts) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Report statistics whenever a file changes",
		Long: `Watch opens FILE, prints its statistics and prints them again each time
the file is written by another program. It runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.watch(cmd.Context(), args[0], debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", app.DefaultDebounce, "wait for writes to settle")
	return cmd
}

func (o *rootOpts) watch(ctx context.Context, path string, debounce time.Duration) error {
	row := func(sum engine.Summary, kind string, reloaded bool) log.DocumentEntry {
		return log.DocumentEntry{
			Name:       path,
			Language:   kind,
			Characters: sum.Characters,
			Words:      sum.Words,
			Lines:      sum.Lines,
			Modified:   reloaded,
		}
	}

	detector, err := o.cfg.Detector()
	if err != nil {
		return err
	}
	kind := detector.Detect(path).String()

	a, err := app.New(
		app.WithConfig(o.cfg),
		app.WithLogger(o.logger),
		app.WithDebounce(debounce),
		app.WithWatch(func(_ string, sum engine.Summary) {
			o.logger.Document(ctx, row(sum, kind, true))
		}),
	)
	if err != nil {
		return err
	}
	defer a.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Run(ctx)
	})
	g.Go(func() error {
		sum, err := a.Open(ctx, path)
		if err != nil {
			return err
		}
		o.logger.Header("watching " + path)
		o.logger.Document(ctx, row(sum, kind, false))
		return nil
	})
	return g.Wait()
}
