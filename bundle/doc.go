// Package bundle reverses the browserify-style bundling transformation.
//
// A bundle is one JavaScript file whose top level is a single invocation
// of a loader function:
//
//	(function(modules, loaded, mains) { ... })({
//		0: [function(require, module, exports) { ... }, { "./util.js": 1 }],
//		1: [function(require, module, exports) { ... }, {}]
//	}, {}, [0]);
//
// The first argument is the module table: an object literal mapping
// module ids to two-element entries of (module function, require
// mapping). The second is the loaded-module cache, the third the list of
// entry-point ids.
//
// The pipeline splits the table back into one file per original module:
//
//	prog, _ := js.Parse(src, file)
//	js.ResolveScopes(prog)
//	diags := &bundle.Diagnostics{}
//	call, err := bundle.Locate(prog, file, diags)
//	table, err := bundle.ReadTable(call, file)
//	reg := bundle.BuildRegistry(table, diags)
//	ext, err := bundle.Extract(table, reg, diags)
//	err = emitter.Emit(ext, diags)
//
// or equivalently bundle.Unbundle(src, file, emitter).
//
// Canonical names come from the require mappings: a module required as
// "./util.js" is named util. Entry points are named main. First
// assignment wins; conflicting stems and accidental merges are surfaced
// as diagnostics, never silently dropped.
package bundle
