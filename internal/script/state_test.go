package script

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := state.GetGlobal("x"); v != lua.LNumber(2) {
		t.Errorf("GetGlobal(x) = %v, expected 2", v)
	}

	if err := state.DoString(`error("boom")`); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected boom error, got %v", err)
	}
}

func TestStatePrintUsesOutput(t *testing.T) {
	var buf bytes.Buffer
	state := NewState(WithOutput(&buf))
	defer state.Close()

	if err := state.DoString(`print("a", 1, true)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := buf.String(); got != "a\t1\ttrue\n" {
		t.Errorf("print wrote %q", got)
	}
}

func TestStateSandbox(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		if v := state.GetGlobal(name); v != lua.LNil {
			t.Errorf("expected %s to be unavailable, got %v", name, v.Type())
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs"} {
		if state.GetGlobal(name) == lua.LNil {
			t.Errorf("expected %s to be available", name)
		}
	}
}

func TestStateTimeout(t *testing.T) {
	state := NewState(WithTimeout(50 * time.Millisecond))
	defer state.Close()

	start := time.Now()
	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("expected ErrExecutionTimeout, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout did not interrupt the loop")
	}

	// The state stays usable after a timeout.
	if err := state.DoString(`y = 3`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.lua")
	if err := os.WriteFile(path, []byte(`z = "file"`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	state := NewState()
	defer state.Close()
	if err := state.DoFile(path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if v := state.GetGlobal("z"); v.String() != "file" {
		t.Errorf("z = %v", v)
	}
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("expected ErrStateClosed, got %v", err)
	}
	if v := state.GetGlobal("x"); v != lua.LNil {
		t.Errorf("GetGlobal() on closed state = %v", v)
	}
}
