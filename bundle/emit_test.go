package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBundle = `(function e(t, n, r) {
})({
    "3": [function(r, m, e) {
        var u = r("./util.js");
        m.exports = u.double(21);
    }, { "./util.js": 7 }],
    7: [function(r, m, e) {
        e.double = function(x) { return 2 * x; };
    }, {}]
}, {}, [3]);
`

func TestUnbundle(t *testing.T) {
	dir := t.TempDir()
	em := &Emitter{OutDir: dir, Options: DefaultOptions()}

	diags, err := Unbundle(sampleBundle, "bundle.js", em)
	if err != nil {
		t.Fatalf("Unbundle: %v", err)
	}
	if diags.Len() != 0 {
		t.Errorf("diagnostics = %d, want 0: %v", diags.Len(), diags.Warnings())
	}

	mainSrc, err := os.ReadFile(filepath.Join(dir, "main.js"))
	if err != nil {
		t.Fatalf("read main.js: %v", err)
	}
	if !strings.Contains(string(mainSrc), `require("./util.js")`) {
		t.Errorf("main.js missing rewritten require:\n%s", mainSrc)
	}
	if !strings.Contains(string(mainSrc), "module.exports") {
		t.Errorf("main.js missing canonical module param:\n%s", mainSrc)
	}

	utilSrc, err := os.ReadFile(filepath.Join(dir, "util.js"))
	if err != nil {
		t.Fatalf("read util.js: %v", err)
	}
	if !strings.Contains(string(utilSrc), "exports.double") {
		t.Errorf("util.js missing canonical exports param:\n%s", utilSrc)
	}
}

func TestUnbundleStdout(t *testing.T) {
	var buf bytes.Buffer
	em := &Emitter{Stdout: &buf, Options: DefaultOptions()}

	if _, err := Unbundle(sampleBundle, "bundle.js", em); err != nil {
		t.Fatalf("Unbundle: %v", err)
	}

	out := buf.String()
	for _, header := range []string{"// module: main.js", "// module: util.js"} {
		if !strings.Contains(out, header) {
			t.Errorf("stdout missing %q:\n%s", header, out)
		}
	}
	if strings.Index(out, "// module: main.js") > strings.Index(out, "// module: util.js") {
		t.Error("modules emitted out of table order")
	}
}

func TestUnbundleSyntaxError(t *testing.T) {
	em := &Emitter{Stdout: &bytes.Buffer{}}
	if _, err := Unbundle(`var x = ;`, "broken.js", em); err == nil {
		t.Fatal("want syntax error, got nil")
	}
}

func TestUnbundleRoundTrip(t *testing.T) {
	// An already-canonical module function survives a pass unchanged in
	// meaning: canonical params stay, rewritten paths stay.
	src := `f({
    1: [function(require, module, exports) {
        module.exports = require("./util.js");
    }, { "./util.js": 2 }],
    2: [function(require, module, exports) {
        exports.x = 1;
    }, {}]
}, {}, [1]);
`
	dir := t.TempDir()
	em := &Emitter{OutDir: dir, Options: DefaultOptions()}
	if _, err := Unbundle(src, "bundle.js", em); err != nil {
		t.Fatalf("Unbundle: %v", err)
	}

	mainSrc, err := os.ReadFile(filepath.Join(dir, "main.js"))
	if err != nil {
		t.Fatalf("read main.js: %v", err)
	}
	if !strings.Contains(string(mainSrc), `module.exports = require("./util.js");`) {
		t.Errorf("canonical input changed:\n%s", mainSrc)
	}
}
