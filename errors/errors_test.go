package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseExtract,
				Kind:   KindInvalidShape,
				Input:  "app.bundle.js",
				Path:   []string{"moduleTable", "7"},
				Detail: "entry is not a two-element array",
			},
			contains: []string{"[extract]", "invalid_shape", "app.bundle.js", "moduleTable.7", "two-element array"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLocate,
				Kind:  KindNoBundle,
			},
			contains: []string{"[locate]", "no_bundle"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindSyntax,
				Detail: "unexpected token",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[parse]", "syntax", "unexpected token", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEmit,
		Kind:  KindWriteFailed,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseLocate,
		Kind:  KindNoBundle,
		Input: "a.js",
	}

	if !err.Is(&Error{Phase: PhaseLocate, Kind: KindNoBundle}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseExtract, Kind: KindNoBundle}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseLocate, Kind: KindAmbiguousBundle}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseLocate, Kind: KindNoBundle}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseExtract, KindInvalidShape).
		File("bundle.js").
		Path("moduleTable", "3").
		Cause(cause).
		Detail("expected %s, got %s", "object literal", "array literal").
		Build()

	if err.Phase != PhaseExtract {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseExtract)
	}
	if err.Kind != KindInvalidShape {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidShape)
	}
	if err.Input != "bundle.js" {
		t.Errorf("Input = %v, want 'bundle.js'", err.Input)
	}
	if len(err.Path) != 2 || err.Path[0] != "moduleTable" || err.Path[1] != "3" {
		t.Errorf("Path = %v, want [moduleTable 3]", err.Path)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected object literal, got array literal" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NoBundle", func(t *testing.T) {
		err := NoBundle("main.js")
		if err.Kind != KindNoBundle {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNoBundle)
		}
		if err.Input != "main.js" {
			t.Errorf("Input = %v, want 'main.js'", err.Input)
		}
	})

	t.Run("AmbiguousBundle", func(t *testing.T) {
		err := AmbiguousBundle("main.js", 2)
		if err.Kind != KindAmbiguousBundle {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAmbiguousBundle)
		}
		if !strings.Contains(err.Detail, "2 additional") {
			t.Errorf("Detail = %v, should count extras", err.Detail)
		}
	})

	t.Run("InvalidShape", func(t *testing.T) {
		err := InvalidShape("main.js", []string{"arg0"}, "not an object literal")
		if err.Kind != KindInvalidShape {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidShape)
		}
	})

	t.Run("NameConflict", func(t *testing.T) {
		err := NameConflict("7", "util", "Util")
		if err.Kind != KindNameConflict {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNameConflict)
		}
		for _, s := range []string{"util", "Util", "7"} {
			if !strings.Contains(err.Detail+strings.Join(err.Path, "."), s) {
				t.Errorf("error should mention %q: %v", s, err)
			}
		}
	})

	t.Run("UnexpectedVariant", func(t *testing.T) {
		err := UnexpectedVariant(PhaseExtract, []string{"entry"}, "string literal", "function expression")
		if err.Kind != KindUnexpectedVariant {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnexpectedVariant)
		}
	})

	t.Run("Syntax", func(t *testing.T) {
		cause := errors.New("line 3: unexpected token")
		err := Syntax("main.js", cause)
		if err.Kind != KindSyntax {
			t.Errorf("Kind = %v, want %v", err.Kind, KindSyntax)
		}
		if !errors.Is(err, &Error{Phase: PhaseParse, Kind: KindSyntax}) {
			t.Error("errors.Is should match syntax error")
		}
	})

	t.Run("WriteFailed", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WriteFailed("out/main.js", cause)
		if err.Kind != KindWriteFailed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindWriteFailed)
		}
		if !strings.Contains(err.Detail, "out/main.js") {
			t.Errorf("Detail = %v, should contain path", err.Detail)
		}
	})
}
