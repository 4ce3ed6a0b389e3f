package bundle

import (
	"strings"
	"testing"

	"github.com/wippyai/unbundle/errors"
	"github.com/wippyai/unbundle/js"
)

// extractSource runs the pipeline up to extraction on a bundle source.
func extractSource(t *testing.T, src string) (*Registry, *Extraction, *Diagnostics) {
	t.Helper()
	prog := parseProgram(t, src)
	diags := &Diagnostics{}
	call, err := Locate(prog, "test.js", diags)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	table, err := ReadTable(call, "test.js")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	reg := BuildRegistry(table, diags)
	ext, err := Extract(table, reg, diags)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return reg, ext, diags
}

func TestExtract(t *testing.T) {
	src := `(function e(t, n, r) {
})({
    3: [function(r, m, e) {
        var u = r("util");
        m.exports = u.double(21);
    }, { "util": 7 }],
    7: [function(r, m, e) {
        e.double = function(x) { return 2 * x; };
        e.misc = r("unknown");
    }, {}]
}, {}, [3]);`

	_, ext, diags := extractSource(t, src)

	if len(ext.Modules) != 2 {
		t.Fatalf("modules = %d, want 2", len(ext.Modules))
	}
	main, ok := ext.Module("main")
	if !ok {
		t.Fatal("no main module")
	}
	util, ok := ext.Module("util")
	if !ok {
		t.Fatal("no util module")
	}

	mainSrc := js.Print(&js.Program{Body: main.Body}, js.Options{Rename: ext.Rename})
	utilSrc := js.Print(&js.Program{Body: util.Body}, js.Options{Rename: ext.Rename})

	if !strings.Contains(mainSrc, `require("./util.js")`) {
		t.Errorf("require not rewritten:\n%s", mainSrc)
	}
	if !strings.Contains(mainSrc, "module.exports") {
		t.Errorf("module param not canonicalized:\n%s", mainSrc)
	}
	if !strings.Contains(utilSrc, "exports.double") {
		t.Errorf("exports param not canonicalized:\n%s", utilSrc)
	}
	if !strings.Contains(utilSrc, `require("unknown")`) {
		t.Errorf("unknown require should be untouched:\n%s", utilSrc)
	}
	if diags.Len() != 0 {
		t.Errorf("diagnostics = %d, want 0: %v", diags.Len(), diags.Warnings())
	}
}

func TestExtractShadowedRequire(t *testing.T) {
	// The callee is matched by binding identity, so a rebound name is
	// not a require call and an aliased first parameter name still is.
	src := `f({
    1: [function(req, m, e) {
        m.exports = req("dep");
        function local(require) { return require("dep"); }
    }, { "dep": 2 }],
    2: [function() {}, {}]
}, {}, [1]);`

	_, ext, _ := extractSource(t, src)
	mod, _ := ext.Module("module_1")
	out := js.Print(&js.Program{Body: mod.Body}, js.Options{Rename: ext.Rename})

	if !strings.Contains(out, `require("./dep.js")`) {
		t.Errorf("aliased require not rewritten:\n%s", out)
	}
	if !strings.Contains(out, `require("dep")`) {
		t.Errorf("shadowed require should be untouched:\n%s", out)
	}
}

func TestExtractMerge(t *testing.T) {
	src := `f({
    1: [function(r, m, e) { var first = 1; }, {}],
    2: [function(r, m, e) { var second = 2; }, {}],
    3: [function(r, m, e) {
        m.exports = [r("./part.js"), r("./sub/part.js")];
    }, { "./part.js": 1, "./sub/part.js": 2 }]
}, {}, [3]);`

	_, ext, diags := extractSource(t, src)

	part, ok := ext.Module("part")
	if !ok {
		t.Fatal("no part module")
	}
	if len(part.IDs) != 2 {
		t.Fatalf("merged ids = %v, want [1 2]", part.IDs)
	}
	out := js.Print(&js.Program{Body: part.Body}, js.Options{})
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("merged body incomplete:\n%s", out)
	}

	var merged int
	for _, w := range diags.Warnings() {
		if w.Kind == errors.KindMergedModules {
			merged++
		}
	}
	if merged != 1 {
		t.Errorf("merged_modules diagnostics = %d, want 1", merged)
	}
}

func TestCanonicalizeParamsIdempotent(t *testing.T) {
	src := `f({
    1: [function(require, module, exports) { module.exports = 1; }, {}]
}, {}, [1]);`

	_, ext, _ := extractSource(t, src)
	if len(ext.Rename) != 0 {
		t.Errorf("rename entries = %d, want 0 for already-canonical params", len(ext.Rename))
	}
}
