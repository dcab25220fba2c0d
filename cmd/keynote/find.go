package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/keynote/internal/engine"
)

func newFindCmd(o *rootOpts) *cobra.Command {
	var (
		flags  searchFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "find FILE PATTERN",
		Short: "List the matches of a literal pattern",
		Long: `Find prints every match of PATTERN in FILE as path:line:column followed
by the matching line. PATTERN is literal text, not a regular expression.
Matching ignores case unless --case is given or the config says otherwise.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, pattern := args[0], args[1]
			sess, err := o.openSession(path)
			if err != nil {
				return err
			}

			matches := sess.Find(pattern, flags.options(cmd, o.cfg.Search))
			if asJSON {
				return o.writeMatchesJSON(sess, path, pattern, matches)
			}
			o.writeMatches(sess, path, matches)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (o *rootOpts) writeMatches(sess *engine.Session, path string, matches engine.MatchSet) {
	lines := strings.Split(sess.Text(), "\n")
	for _, pos := range sess.PositionsOf(matches.Positions) {
		fmt.Fprintf(o.out, "%s:%d:%d: %s\n", path, pos.Line+1, pos.Column+1, lines[pos.Line])
	}
	o.logger.Info(sess.MatchStatus())
}

func (o *rootOpts) writeMatchesJSON(sess *engine.Session, path, pattern string, matches engine.MatchSet) error {
	doc := `{"matches":[]}`
	var err error

	doc, err = sjson.Set(doc, "path", path)
	if err == nil {
		doc, err = sjson.Set(doc, "pattern", pattern)
	}
	if err == nil {
		doc, err = sjson.Set(doc, "count", matches.Len())
	}
	positions := sess.PositionsOf(matches.Positions)
	for i, r := range matches.Ranges() {
		if err != nil {
			break
		}
		pos := positions[i]
		doc, err = sjson.Set(doc, fmt.Sprintf("matches.%d", i), map[string]int{
			"start":  r.Start,
			"end":    r.End,
			"line":   pos.Line + 1,
			"column": pos.Column + 1,
		})
	}
	if err != nil {
		return errors.Errorf("encoding matches: %w", err)
	}

	_, err = fmt.Fprintln(o.out, doc)
	return err
}
