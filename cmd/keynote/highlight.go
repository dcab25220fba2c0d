package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/keynote/internal/engine"
	"github.com/dshills/keynote/internal/highlight"
)

func newHighlightCmd(o *rootOpts) *cobra.Command {
	var (
		language string
		spans    bool
	)

	cmd := &cobra.Command{
		Use:   "highlight FILE",
		Short: "Print a file with syntax colours",
		Long: `Highlight prints FILE coloured with the configured theme. The language
is detected from the file name unless --language names one. --spans lists
the highlighted regions instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := o.openSession(args[0])
			if err != nil {
				return err
			}
			if language != "" {
				kind, err := highlight.ParseLanguageKind(language)
				if err != nil {
					return err
				}
				sess.SetLanguage(kind)
			}

			if spans {
				return writeSpans(o.out, sess)
			}

			theme, err := o.cfg.HighlightTheme()
			if err != nil {
				return err
			}
			return paint(o.out, sess.Text(), sess.Highlights(), theme)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "language kind (kotlin, java, xml, json, markdown, none)")
	cmd.Flags().BoolVar(&spans, "spans", false, "list spans instead of colouring")
	return cmd
}

func writeSpans(w io.Writer, sess *engine.Session) error {
	text := []rune(sess.Text())
	for _, s := range sess.Highlights() {
		if _, err := fmt.Fprintf(w, "%-10s %d %d %q\n", s.Category, s.Start, s.End, string(text[s.Start:s.End])); err != nil {
			return err
		}
	}
	return nil
}

// paint writes text with each span coloured. Later spans win where spans
// overlap.
func paint(w io.Writer, text string, spans []engine.Span, theme *highlight.Theme) error {
	runes := []rune(text)
	cats := make([]highlight.Category, len(runes))
	for _, s := range spans {
		for i := s.Start; i < s.End && i < len(cats); i++ {
			cats[i] = s.Category
		}
	}

	var b strings.Builder
	for start := 0; start < len(runes); {
		end := start + 1
		for end < len(runes) && cats[end] == cats[start] {
			end++
		}
		b.WriteString(colorize(string(runes[start:end]), cats[start], theme))
		start = end
	}
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func colorize(s string, c highlight.Category, theme *highlight.Theme) string {
	if c == highlight.CategoryNone {
		return s
	}
	r, g, bl, ok := theme.RGB(c)
	if !ok {
		return s
	}
	return color.RGB(int(r), int(g), int(bl)).Sprint(s)
}
