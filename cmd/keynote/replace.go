package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

func newReplaceCmd(o *rootOpts) *cobra.Command {
	var (
		flags searchFlags
		write bool
		diff  bool
	)

	cmd := &cobra.Command{
		Use:   "replace FILE PATTERN REPLACEMENT",
		Short: "Replace every match of a literal pattern",
		Long: `Replace substitutes REPLACEMENT for every match of PATTERN in FILE.
The result is printed unless --write saves it back to FILE. --diff prints
a patch against the original instead of the text.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, pattern, replacement := args[0], args[1], args[2]
			sess, err := o.openSession(path)
			if err != nil {
				return err
			}

			n := sess.ReplaceAll(pattern, replacement, flags.options(cmd, o.cfg.Search))
			if n == 0 {
				o.logger.Warningf("No matches found for %q", pattern)
				return nil
			}

			switch {
			case diff:
				fmt.Fprint(o.out, sess.Diff())
			case !write:
				fmt.Fprint(o.out, sess.Text())
			}

			if write {
				if err := os.WriteFile(path, []byte(sess.Text()), 0o644); err != nil {
					return errors.Errorf("writing %s: %w", path, err)
				}
				o.logger.Successf("replaced %d matches in %s", n, path)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&write, "write", false, "save the result back to FILE")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a patch instead of the text")
	return cmd
}
