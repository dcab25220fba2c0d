package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/keynote/internal/clipboard"
	"github.com/dshills/keynote/internal/engine"
)

func newRunner(t *testing.T, text string, opts ...Option) (*Runner, *engine.Session) {
	t.Helper()
	sess := engine.New(engine.WithContent(text, "notes.txt"))
	r := NewRunner(sess, opts...)
	t.Cleanup(r.Close)
	return r, sess
}

func TestRunFindReplace(t *testing.T) {
	r, sess := newRunner(t, "I have a cat")

	err := r.Run(context.Background(), `
		local n = editor.find("Cat")
		assert(n == 1, "find count " .. n)
		assert(editor.status() == "1 matches found (1/1)")
		assert(editor.replace("dog"))
		assert(editor.text() == "I have a dog")
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sess.Text() != "I have a dog" {
		t.Errorf("session text = %q", sess.Text())
	}
}

func TestRunReplaceAllUndo(t *testing.T) {
	r, sess := newRunner(t, "ababab")

	err := r.Run(context.Background(), `
		local n = editor.replace_all("ab", "abcd", {case_sensitive = true})
		assert(n == 3, "count " .. n)
		assert(editor.text() == "abcdabcdabcd")
		assert(editor.undo())
		assert(editor.redo())
		assert(editor.undo())
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sess.Text() != "ababab" {
		t.Errorf("session text = %q", sess.Text())
	}
}

func TestRunFindOptions(t *testing.T) {
	r, _ := newRunner(t, "catcatalog cat")

	err := r.Run(context.Background(), `
		assert(editor.find("cat") == 3)
		assert(editor.find("cat", {whole_word = true}) == 1)
		local s, e = editor.selection()
		assert(s == 11 and e == 14, "selection " .. s .. ":" .. e)
		assert(editor.next())
		assert(editor.previous())
		assert(editor.find("dog") == 0)
		assert(not editor.next())
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRunStatsAndPrint(t *testing.T) {
	var out bytes.Buffer
	r, _ := newRunner(t, "One. Two.\n\nThree", WithOutput(&out))

	err := r.Run(context.Background(), `
		local s = editor.stats()
		print(s.words, s.lines, s.paragraphs, s.sentences)
		local t = editor.set_text("a b c")
		print(t.words)
		print(editor.language())
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "3\t3\t2\t3\n3\nnone\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunClipboard(t *testing.T) {
	clip := clipboard.NewMemory()
	r, sess := newRunner(t, "hello world", WithClipboard(clip))

	err := r.Run(context.Background(), `
		assert(not editor.copy(), "nothing selected")
		editor.select(0, 5)
		assert(editor.cut())
		editor.select(6)
		assert(editor.paste())
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if sess.Text() != " worldhello" {
		t.Errorf("session text = %q", sess.Text())
	}
	if got, _ := clip.ReadAll(); got != "hello" {
		t.Errorf("clipboard = %q, want hello", got)
	}
}

func TestRunRequire(t *testing.T) {
	r, _ := newRunner(t, "x")

	if err := r.Run(context.Background(), `
		local ed = require("editor")
		assert(ed.text() == "x")
		local s = require("string")
		assert(s.upper("a") == "A")
	`); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if err := r.Run(context.Background(), `require("os")`); err == nil {
		t.Error("require(os) should fail")
	}
}

func TestSandbox(t *testing.T) {
	r, _ := newRunner(t, "")

	err := r.Run(context.Background(), `
		assert(io == nil, "io")
		assert(os == nil, "os")
		assert(debug == nil, "debug")
		assert(dofile == nil, "dofile")
		assert(loadfile == nil, "loadfile")
		assert(load == nil, "load")
	`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRunSyntaxError(t *testing.T) {
	r, _ := newRunner(t, "")

	if err := r.Run(context.Background(), `invalid lua code !!!`); err == nil {
		t.Error("expected syntax error")
	}
}

func TestRunTimeout(t *testing.T) {
	r, _ := newRunner(t, "", WithTimeout(50*time.Millisecond))

	err := r.Run(context.Background(), `while true do end`)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Run() error = %v, want ErrTimeout", err)
	}
}

func TestRunCanceled(t *testing.T) {
	r, _ := newRunner(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Run(ctx, `while true do end`); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunFile(t *testing.T) {
	r, sess := newRunner(t, "TODO: one\nTODO: two")

	path := filepath.Join(t.TempDir(), "done.lua")
	code := `editor.replace_all("TODO", "DONE", {case_sensitive = true})`
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := r.RunFile(context.Background(), path); err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if !strings.HasPrefix(sess.Text(), "DONE: one") {
		t.Errorf("session text = %q", sess.Text())
	}

	if err := r.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("missing script should fail")
	}
}

func TestRunAfterClose(t *testing.T) {
	sess := engine.New()
	r := NewRunner(sess)
	r.Close()
	r.Close()

	if err := r.Run(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Run() error = %v, want ErrStateClosed", err)
	}
}
