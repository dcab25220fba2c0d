package script

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keynote/internal/clipboard"
	"github.com/dshills/keynote/internal/engine"
)

// ModuleName is the global and require name of the editor API.
const ModuleName = "editor"

// Runner executes scripts against one session.
type Runner struct {
	state   *State
	sess    *engine.Session
	clip    clipboard.Clipboard
	log     zerolog.Logger
	out     io.Writer
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithClipboard sets the clipboard used by copy, cut and paste.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(r *Runner) {
		if c != nil {
			r.clip = c
		}
	}
}

// WithOutput sets where print writes.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithTimeout bounds each run.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the logger for script events.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// NewRunner creates a runner bound to sess. Without WithClipboard it uses an
// in-process clipboard.
func NewRunner(sess *engine.Session, opts ...Option) *Runner {
	r := &Runner{
		sess: sess,
		clip: clipboard.NewMemory(),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.state = NewState(r.out, r.timeout)
	r.state.Preload(ModuleName, r.functions())
	return r
}

// Run executes code.
func (r *Runner) Run(ctx context.Context, code string) error {
	err := r.state.DoString(ctx, code)
	r.logRun("<string>", err)
	return err
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	err := r.state.DoFile(ctx, path)
	r.logRun(path, err)
	return err
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.state.Close()
}

func (r *Runner) logRun(source string, err error) {
	ev := r.log.Debug()
	if err != nil {
		ev = r.log.Warn().Err(err)
	}
	ev.Str("source", source).
		Int("length", r.sess.Len()).
		Msg("script finished")
}

func (r *Runner) functions() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"text":        r.text,
		"set_text":    r.setText,
		"select":      r.selectRange,
		"selection":   r.selection,
		"find":        r.find,
		"next":        r.next,
		"previous":    r.previous,
		"replace":     r.replace,
		"replace_all": r.replaceAll,
		"status":      r.status,
		"undo":        r.undo,
		"redo":        r.redo,
		"stats":       r.stats,
		"language":    r.language,
		"copy":        r.copy,
		"cut":         r.cut,
		"paste":       r.paste,
	}
}

// text() -> string
func (r *Runner) text(L *lua.LState) int {
	L.Push(lua.LString(r.sess.Text()))
	return 1
}

// set_text(s) -> stats
func (r *Runner) setText(L *lua.LState) int {
	sum := r.sess.ApplyEdit(L.CheckString(1))
	t := L.NewTable()
	t.RawSetString("characters", lua.LNumber(sum.Characters))
	t.RawSetString("words", lua.LNumber(sum.Words))
	t.RawSetString("lines", lua.LNumber(sum.Lines))
	L.Push(t)
	return 1
}

// select(start, end) with zero-based character offsets.
func (r *Runner) selectRange(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.OptInt(2, start)
	r.sess.Select(start, end)
	return 0
}

// selection() -> start, end
func (r *Runner) selection(L *lua.LState) int {
	sel := r.sess.Selection()
	L.Push(lua.LNumber(sel.Start))
	L.Push(lua.LNumber(sel.End))
	return 2
}

// find(pattern [, opts]) -> count
func (r *Runner) find(L *lua.LState) int {
	pattern := L.CheckString(1)
	m := r.sess.Find(pattern, r.searchOptions(L, 2))
	L.Push(lua.LNumber(m.Len()))
	return 1
}

// next() -> bool
func (r *Runner) next(L *lua.LState) int {
	L.Push(lua.LBool(r.sess.FindNext()))
	return 1
}

// previous() -> bool
func (r *Runner) previous(L *lua.LState) int {
	L.Push(lua.LBool(r.sess.FindPrevious()))
	return 1
}

// replace(replacement) -> bool
func (r *Runner) replace(L *lua.LState) int {
	L.Push(lua.LBool(r.sess.ReplaceCurrent(L.CheckString(1))))
	return 1
}

// replace_all(pattern, replacement [, opts]) -> count
func (r *Runner) replaceAll(L *lua.LState) int {
	pattern := L.CheckString(1)
	replacement := L.CheckString(2)
	n := r.sess.ReplaceAll(pattern, replacement, r.searchOptions(L, 3))
	L.Push(lua.LNumber(n))
	return 1
}

// status() -> string
func (r *Runner) status(L *lua.LState) int {
	L.Push(lua.LString(r.sess.MatchStatus()))
	return 1
}

// undo() -> bool
func (r *Runner) undo(L *lua.LState) int {
	_, ok := r.sess.Undo()
	L.Push(lua.LBool(ok))
	return 1
}

// redo() -> bool
func (r *Runner) redo(L *lua.LState) int {
	_, ok := r.sess.Redo()
	L.Push(lua.LBool(ok))
	return 1
}

// stats() -> table
func (r *Runner) stats(L *lua.LState) int {
	d := r.sess.DetailedStatistics()
	t := L.NewTable()
	t.RawSetString("characters", lua.LNumber(d.Characters))
	t.RawSetString("words", lua.LNumber(d.Words))
	t.RawSetString("lines", lua.LNumber(d.Lines))
	t.RawSetString("paragraphs", lua.LNumber(d.Paragraphs))
	t.RawSetString("sentences", lua.LNumber(d.Sentences))
	L.Push(t)
	return 1
}

// language() -> string
func (r *Runner) language(L *lua.LState) int {
	L.Push(lua.LString(r.sess.Language().String()))
	return 1
}

// copy() -> bool
func (r *Runner) copy(L *lua.LState) int {
	text, ok := r.sess.Copy()
	if ok {
		if err := r.clip.WriteAll(text); err != nil {
			L.RaiseError("copy: %v", err)
		}
	}
	L.Push(lua.LBool(ok))
	return 1
}

// cut() -> bool
func (r *Runner) cut(L *lua.LState) int {
	text, ok := r.sess.Copy()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	if err := r.clip.WriteAll(text); err != nil {
		L.RaiseError("cut: %v", err)
	}
	r.sess.Cut()
	L.Push(lua.LTrue)
	return 1
}

// paste() -> bool, false when the clipboard is empty
func (r *Runner) paste(L *lua.LState) int {
	text, err := r.clip.ReadAll()
	if err != nil {
		L.RaiseError("paste: %v", err)
	}
	r.sess.Paste(text)
	L.Push(lua.LBool(text != ""))
	return 1
}

// searchOptions reads an optional {case_sensitive=, whole_word=} table at
// idx. Missing fields use the session defaults.
func (r *Runner) searchOptions(L *lua.LState, idx int) engine.SearchOptions {
	opts := r.sess.SearchDefaults()
	t := L.OptTable(idx, nil)
	if t == nil {
		return opts
	}
	if v := t.RawGetString("case_sensitive"); v != lua.LNil {
		opts.CaseSensitive = lua.LVAsBool(v)
	}
	if v := t.RawGetString("whole_word"); v != lua.LNil {
		opts.WholeWord = lua.LVAsBool(v)
	}
	return opts
}
