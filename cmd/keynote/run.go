package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keynote/internal/app"
	"github.com/dshills/keynote/internal/clipboard"
	"github.com/dshills/keynote/internal/engine"
	"github.com/dshills/keynote/internal/script"
)

func newRunCmd(o *rootOpts) *cobra.Command {
	var (
		write bool
		diff  bool
	)

	cmd := &cobra.Command{
		Use:   "run SCRIPT FILE",
		Short: "Run a Lua script against a file",
		Long: `Run opens FILE and runs the Lua SCRIPT against it. Scripts drive the
session through the editor module (editor.find, editor.replace_all,
editor.undo and friends) and print to standard output. --write saves the
edited text back to FILE.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptPath, path := args[0], args[1]
			ctx := cmd.Context()

			a, stop, err := o.startApp(ctx, app.WithClipboard(clipboard.Default()))
			if err != nil {
				return err
			}
			defer stop()

			if _, err := a.Open(ctx, path); err != nil {
				return err
			}
			if err := a.RunScriptFile(ctx, scriptPath, script.WithOutput(o.out)); err != nil {
				return err
			}

			if diff {
				err := a.Do(ctx, func(s *engine.Session) error {
					_, err := fmt.Fprint(o.out, s.Diff())
					return err
				})
				if err != nil {
					return err
				}
			}
			if write {
				if err := a.Save(ctx, ""); err != nil {
					return err
				}
				o.logger.Successf("saved %s", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "save the result back to FILE")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a patch of the script's changes")
	return cmd
}
