// Package log provides console and structured logging for Keynote hosts.
//
// A Logger writes short coloured lines for people to a console writer and
// structured zerolog events to a separate sink. The engine only ever sees the
// zerolog side through Zerolog.
package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Display configuration
const (
	entryIndent = 2  // spaces before document rows
	nameWidth   = 30 // width of the document name column
	kindWidth   = 10 // width of the language column
)

// DocumentEntry is one document row in a listing.
type DocumentEntry struct {
	Name       string
	Language   string
	Characters int
	Words      int
	Lines      int
	Modified   bool
	Failed     bool
}

// Logger handles structured logging with console output.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	entries int
}

// NewWithSink creates a logger whose zerolog events go to sink.
func NewWithSink(console, sink io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(sink).With().Timestamp().Logger().Level(level)
	return &Logger{zlog: zlog, console: console}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), console: io.Discard}
}

// Zerolog returns the structured logger, for engine.WithLogger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zlog
}

// With returns a structured logger with the component field set.
func (l *Logger) With(component string) zerolog.Logger {
	return l.zlog.With().Str("component", component).Logger()
}

func (l *Logger) formatDocument(e DocumentEntry) string {
	symbol, symbolColor := "•", color.FgCyan
	switch {
	case e.Failed:
		symbol, symbolColor = "✗", color.FgRed
	case e.Modified:
		symbol, symbolColor = "⟳", color.FgBlue
	}

	return fmt.Sprintf("%*s%s %-*s %s %d chars, %d words, %d lines",
		entryIndent, "",
		color.New(symbolColor).Sprint(symbol),
		nameWidth, e.Name,
		color.New(color.FgYellow).Sprintf("%-*s", kindWidth, e.Language),
		e.Characters, e.Words, e.Lines)
}

// Document prints a document row and logs it.
func (l *Logger) Document(ctx context.Context, e DocumentEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries++
	fmt.Fprintln(l.console, l.formatDocument(e))

	l.zlog.Info().
		Str("name", e.Name).
		Str("language", e.Language).
		Int("characters", e.Characters).
		Int("words", e.Words).
		Int("lines", e.Lines).
		Bool("modified", e.Modified).
		Msg("document")
}

// Entries returns the number of document rows printed.
func (l *Logger) Entries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries
}

// Header prints a section header.
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("keynote")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// Success logs a success message.
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✓ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "! %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✗ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "• %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warningf logs a formatted warning message.
func (l *Logger) Warningf(format string, args ...any) {
	l.Warning(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// Successf logs a formatted success message.
func (l *Logger) Successf(format string, args ...any) {
	l.Success(fmt.Sprintf(format, args...))
}
