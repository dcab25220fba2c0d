// Package script runs Lua scripts against an editing session.
//
// Scripts see a restricted standard library (base, table, string, math) and
// an editor module that drives the session. There is no io, os or debug
// library and require only resolves the built-in safe modules and editor.
package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"gitlab.com/tozd/go/errors"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Errors for script execution.
var (
	// ErrStateClosed is returned when running on a closed state.
	ErrStateClosed = errors.Base("lua state is closed")

	// ErrTimeout is returned when a script outlives its deadline.
	ErrTimeout = errors.Base("script timed out")
)

// State wraps a sandboxed gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe; a State must be used from one
// goroutine at a time.
type State struct {
	L       *lua.LState
	out     io.Writer
	timeout time.Duration
	modules map[string]bool // names require resolves
	closed  bool
}

// NewState creates a sandboxed Lua state. print writes to out.
func NewState(out io.Writer, timeout time.Duration) *State {
	if out == nil {
		out = io.Discard
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	s := &State{
		L:       L,
		out:     out,
		timeout: timeout,
		modules: map[string]bool{"string": true, "table": true, "math": true},
	}

	openSafeLibraries(L)
	s.install()
	return s
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenPackage(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// install removes loaders that reach the file system and redirects print.
func (s *State) install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !s.modules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))

	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.out, strings.Join(parts, "\t"))
		return 0
	}))
}

// Preload registers a module that scripts can get as a global and through
// require.
func (s *State) Preload(name string, funcs map[string]lua.LGFunction) {
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal(name, mod)
	s.L.PreloadModule(name, func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
	s.modules[name] = true
}

// DoString executes code. It blocks until the script returns, fails, or
// ctx or the state's timeout ends it.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.do(ctx, func() error {
		return s.L.DoString(code)
	})
}

// DoFile executes the script at path.
func (s *State) DoFile(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Errorf("reading script: %w", err)
	}
	return s.do(ctx, func() error {
		return s.L.DoFile(path)
	})
}

func (s *State) do(ctx context.Context, fn func() error) (err error) {
	if s.closed {
		return ErrStateClosed
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("lua panic: %v", r)
		}
	}()

	if err := fn(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.WithDetails(ErrTimeout, "timeout", s.timeout.String())
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.Errorf("lua: %w", err)
	}
	return nil
}

// Close releases the Lua state.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
