package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the pipeline the error occurred
type Phase string

const (
	PhaseParse     Phase = "parse"     // source text to tree
	PhaseLocate    Phase = "locate"    // finding the bundle invocation
	PhaseName      Phase = "name"      // canonical name assignment
	PhaseExtract   Phase = "extract"   // module table splitting
	PhaseNormalize Phase = "normalize" // decompress pass
	PhaseEmit      Phase = "emit"      // printing and writing output
)

// Kind categorizes the error
type Kind string

const (
	KindNoBundle          Kind = "no_bundle"
	KindAmbiguousBundle   Kind = "ambiguous_bundle"
	KindInvalidShape      Kind = "invalid_shape"
	KindNameConflict      Kind = "name_conflict"
	KindMergedModules     Kind = "merged_modules"
	KindUnexpectedVariant Kind = "unexpected_variant"
	KindSyntax            Kind = "syntax"
	KindWriteFailed       Kind = "write_failed"
)

// Error is the structured error type used throughout the toolkit
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Input  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Input != "" {
		b.WriteString(" in ")
		b.WriteString(e.Input)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// File sets the input file the error belongs to
func (b *Builder) File(name string) *Builder {
	b.err.Input = name
	return b
}

// Path sets the structural path into the bundle
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NoBundle reports an input with zero top-level call expressions
func NoBundle(input string) *Error {
	return &Error{
		Phase:  PhaseLocate,
		Kind:   KindNoBundle,
		Input:  input,
		Detail: "no bundle invocation found at top level",
	}
}

// AmbiguousBundle reports extra bundle candidates beyond the first.
// Non-fatal: callers keep the first candidate and surface this as a warning.
func AmbiguousBundle(input string, extra int) *Error {
	return &Error{
		Phase:  PhaseLocate,
		Kind:   KindAmbiguousBundle,
		Input:  input,
		Detail: fmt.Sprintf("%d additional call expression(s) at top level, using the first", extra),
	}
}

// InvalidShape reports a bundle invocation whose arguments do not form a
// module table
func InvalidShape(input string, path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseExtract,
		Kind:   KindInvalidShape,
		Input:  input,
		Path:   path,
		Detail: detail,
	}
}

// NameConflict reports two require stems resolving the same module id to
// different names. Non-fatal: the first assignment wins.
func NameConflict(moduleID, kept, rejected string) *Error {
	return &Error{
		Phase:  PhaseName,
		Kind:   KindNameConflict,
		Path:   []string{moduleID},
		Detail: fmt.Sprintf("module %s already named %q, ignoring conflicting name %q", moduleID, kept, rejected),
	}
}

// MergedModules reports distinct module ids collapsing into one output
// file. The concatenation may be an intended re-merge of split chunks or
// an accidental stem collision, so it is surfaced loudly but non-fatally.
func MergedModules(name string, ids []string) *Error {
	return &Error{
		Phase:  PhaseExtract,
		Kind:   KindMergedModules,
		Path:   ids,
		Detail: fmt.Sprintf("modules %s merged into one file %q", strings.Join(ids, ", "), name+".js"),
	}
}

// UnexpectedVariant reports a tree node of a variant the bundle grammar
// does not allow at that position
func UnexpectedVariant(phase Phase, path []string, got, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnexpectedVariant,
		Path:   path,
		Detail: fmt.Sprintf("got %s, want %s", got, want),
	}
}

// Syntax wraps a parser failure
func Syntax(input string, cause error) *Error {
	return &Error{
		Phase: PhaseParse,
		Kind:  KindSyntax,
		Input: input,
		Cause: cause,
	}
}

// WriteFailed wraps an output write failure
func WriteFailed(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseEmit,
		Kind:   KindWriteFailed,
		Detail: fmt.Sprintf("write %s", path),
		Cause:  cause,
	}
}
