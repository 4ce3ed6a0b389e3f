package bundle

import (
	"github.com/wippyai/unbundle/errors"
	"github.com/wippyai/unbundle/js"
)

// Locate finds the bundle invocation: the first call expression reached
// by a depth-first traversal of the program's top level. Traversal
// descends into nested expressions but not into function bodies, and
// does not descend into a found call's arguments. Additional candidates
// after the first are recorded as an ambiguous-bundle diagnostic and the
// first is kept; zero candidates is an error.
func Locate(prog *js.Program, file string, diags *Diagnostics) (*js.CallExpr, error) {
	var candidates []*js.CallExpr
	js.Walk(prog, func(n js.Node) bool {
		switch n := n.(type) {
		case *js.CallExpr:
			candidates = append(candidates, n)
			return false
		case *js.FuncLit:
			// Function bodies are not top level
			return false
		}
		return true
	})

	if len(candidates) == 0 {
		return nil, errors.NoBundle(file)
	}
	if extra := len(candidates) - 1; extra > 0 {
		diags.Add(errors.AmbiguousBundle(file, extra))
	}
	return candidates[0], nil
}
