// Package unbundle reverses single-file JavaScript bundles back into
// one source file per module.
//
// A bundler packs a module graph into one script: a table mapping
// module ids to [factory function, require mapping] pairs, handed to a
// tiny loader together with the entry-point ids. This library parses
// the bundled script, finds that invocation, and reconstructs the
// original modules with canonical names, canonical parameter names,
// and require calls rewritten to relative sibling paths.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	unbundle/            Root package documentation
//	├── js/              ES5 parser, scope resolver, and printer
//	├── bundle/          Bundle location, naming, extraction, emission
//	├── errors/          Structured error types for diagnostics
//	└── cmd/unbundle/    Command-line interface with interactive mode
//
// # Quick Start
//
// Split a bundle into files under ./out:
//
//	em := &bundle.Emitter{
//	    OutDir:  "out",
//	    Options: bundle.DefaultOptions(),
//	}
//	diags, err := bundle.Unbundle(src, "bundle.js", em)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, warn := range diags.Warnings() {
//	    log.Println(warn)
//	}
//
// Non-fatal findings such as naming conflicts or merged modules are
// collected as diagnostics rather than aborting the run.
package unbundle
