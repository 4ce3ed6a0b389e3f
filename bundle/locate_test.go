package bundle

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/unbundle/errors"
	"github.com/wippyai/unbundle/js"
)

func parseProgram(t *testing.T, src string) *js.Program {
	t.Helper()
	prog, err := js.Parse(src, "test.js")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	js.ResolveScopes(prog)
	return prog
}

func TestLocate(t *testing.T) {
	t.Run("single call", func(t *testing.T) {
		prog := parseProgram(t, `f({}, {}, []);`)
		var diags Diagnostics
		call, err := Locate(prog, "test.js", &diags)
		if err != nil {
			t.Fatalf("Locate: %v", err)
		}
		if len(call.Args) != 3 {
			t.Errorf("args = %d, want 3", len(call.Args))
		}
		if diags.Len() != 0 {
			t.Errorf("diagnostics = %d, want 0", diags.Len())
		}
	})

	t.Run("no call", func(t *testing.T) {
		prog := parseProgram(t, `var x = 1;`)
		var diags Diagnostics
		_, err := Locate(prog, "test.js", &diags)
		if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLocate, Kind: errors.KindNoBundle}) {
			t.Fatalf("err = %v, want no_bundle", err)
		}
	})

	t.Run("extra candidates keep first", func(t *testing.T) {
		prog := parseProgram(t, `f(1); g(2); h(3);`)
		var diags Diagnostics
		call, err := Locate(prog, "test.js", &diags)
		if err != nil {
			t.Fatalf("Locate: %v", err)
		}
		callee, ok := call.Callee.(*js.Ident)
		if !ok || callee.Name != "f" {
			t.Errorf("kept callee = %v, want f", call.Callee)
		}
		if diags.Len() != 1 {
			t.Fatalf("diagnostics = %d, want 1", diags.Len())
		}
		if diags.Warnings()[0].Kind != errors.KindAmbiguousBundle {
			t.Errorf("kind = %s, want ambiguous_bundle", diags.Warnings()[0].Kind)
		}
	})

	t.Run("calls inside function bodies ignored", func(t *testing.T) {
		prog := parseProgram(t, `function setup() { inner(); } outer({});`)
		var diags Diagnostics
		call, err := Locate(prog, "test.js", &diags)
		if err != nil {
			t.Fatalf("Locate: %v", err)
		}
		callee := call.Callee.(*js.Ident)
		if callee.Name != "outer" {
			t.Errorf("callee = %s, want outer", callee.Name)
		}
		if diags.Len() != 0 {
			t.Errorf("diagnostics = %d, want 0", diags.Len())
		}
	})

	t.Run("candidate arguments not descended", func(t *testing.T) {
		prog := parseProgram(t, `f(g(), h());`)
		var diags Diagnostics
		_, err := Locate(prog, "test.js", &diags)
		if err != nil {
			t.Fatalf("Locate: %v", err)
		}
		if diags.Len() != 0 {
			t.Errorf("diagnostics = %d, want 0 (nested calls are not candidates)", diags.Len())
		}
	})
}
