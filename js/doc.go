// Package js provides parsing, scope resolution, and printing for the
// ES5 subset of JavaScript that bundlers emit.
//
// This package is the front end and back end of the unbundle pipeline:
// it turns bundle source text into a typed tree, binds every identifier
// reference to its declaration, and prints trees back to formatted source.
//
// Basic usage:
//
//	prog, err := js.Parse(src, "app.bundle.js")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	js.ResolveScopes(prog)
//	out := js.Print(prog, js.Options{BracketizeBlocks: true})
//
// # Tree Shape
//
// Every node is a concrete struct implementing Node; expressions and
// statements implement Expr and Stmt. There is no generic "any" node:
// consumers match on variants with type switches and handle unexpected
// variants explicitly.
//
// # Bindings
//
// ResolveScopes computes a Binding for every identifier following ES5
// function scoping: parameters, var declarations, and function
// declarations are hoisted to the enclosing function. References that
// resolve to no declaration share one unresolved binding per name, so
// identity comparison still groups them.
//
// # Printing
//
// Print never mutates the tree. Renaming is expressed as a table from
// binding identity to replacement text in Options.Rename; an identifier
// whose binding has an entry prints under the replacement while the
// binding keeps its declared name.
//
// Supported syntax: function declarations and expressions, var
// declarations, if/else, while, do-while, for, for-in, switch,
// try/catch/finally, throw, return/break/continue, labels, and all ES5
// expression forms including regex literals. Not supported: ES6+ syntax
// (arrow functions, classes, template literals, let/const destructuring),
// with statements, getters/setters in object literals.
package js
