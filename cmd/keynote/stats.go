package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/keynote/internal/engine"
	"github.com/dshills/keynote/internal/log"
)

type fileStats struct {
	path     string
	language string
	stats    engine.Detailed
	err      error
}

func newStatsCmd(o *rootOpts) *cobra.Command {
	var (
		detailed bool
		asJSON   bool
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "stats FILE...",
		Short: "Count characters, words and lines",
		Long: `Stats prints character, word and line counts for each file. With
--detailed it adds paragraph and sentence counts. Files are read
concurrently; a file that cannot be read is reported and the rest are
still counted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := o.collectStats(cmd.Context(), args, jobs)
			if err != nil {
				return err
			}
			if asJSON {
				if err := o.writeStatsJSON(results, detailed); err != nil {
					return err
				}
			} else {
				o.writeStatsRows(cmd.Context(), results, detailed)
			}
			return statsError(results)
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "include paragraph and sentence counts")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "files read in parallel")
	return cmd
}

// collectStats counts every path concurrently. Per-file failures are kept
// in the results; only cancellation fails the whole run.
func (o *rootOpts) collectStats(ctx context.Context, paths []string, jobs int) ([]fileStats, error) {
	results := make([]fileStats, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = o.statFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *rootOpts) statFile(path string) fileStats {
	sess, err := o.openSession(path)
	if err != nil {
		return fileStats{path: path, language: "none", err: err}
	}
	return fileStats{
		path:     path,
		language: sess.Language().String(),
		stats:    sess.DetailedStatistics(),
	}
}

func (o *rootOpts) writeStatsRows(ctx context.Context, results []fileStats, detailed bool) {
	o.logger.Header("statistics")
	for _, r := range results {
		o.logger.Document(ctx, log.DocumentEntry{
			Name:       r.path,
			Language:   r.language,
			Characters: r.stats.Characters,
			Words:      r.stats.Words,
			Lines:      r.stats.Lines,
			Failed:     r.err != nil,
		})
		switch {
		case r.err != nil:
			fmt.Fprintf(o.out, "      %v\n", r.err)
		case detailed:
			fmt.Fprintf(o.out, "      %d paragraphs, %d sentences\n", r.stats.Paragraphs, r.stats.Sentences)
		}
	}
	o.logger.Infof("%d files", o.logger.Entries())
}

func (o *rootOpts) writeStatsJSON(results []fileStats, detailed bool) error {
	doc := `{"files":[]}`
	var total engine.Detailed

	var setErr error
	set := func(path string, value any) {
		if setErr == nil {
			doc, setErr = sjson.Set(doc, path, value)
		}
	}

	for i, r := range results {
		prefix := fmt.Sprintf("files.%d.", i)
		set(prefix+"path", r.path)
		set(prefix+"language", r.language)
		if r.err != nil {
			set(prefix+"error", r.err.Error())
			continue
		}
		set(prefix+"characters", r.stats.Characters)
		set(prefix+"words", r.stats.Words)
		set(prefix+"lines", r.stats.Lines)
		if detailed {
			set(prefix+"paragraphs", r.stats.Paragraphs)
			set(prefix+"sentences", r.stats.Sentences)
		}

		total.Characters += r.stats.Characters
		total.Words += r.stats.Words
		total.Lines += r.stats.Lines
		total.Paragraphs += r.stats.Paragraphs
		total.Sentences += r.stats.Sentences
	}

	set("total.characters", total.Characters)
	set("total.words", total.Words)
	set("total.lines", total.Lines)
	if detailed {
		set("total.paragraphs", total.Paragraphs)
		set("total.sentences", total.Sentences)
	}

	if setErr != nil {
		return errors.Errorf("encoding stats: %w", setErr)
	}
	_, err := fmt.Fprintln(o.out, doc)
	return err
}

func statsError(results []fileStats) error {
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d files could not be read", failed, len(results))
	}
	return nil
}
