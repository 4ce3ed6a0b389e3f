package bundle

import (
	"testing"

	"github.com/wippyai/unbundle/js"
)

// printNormalized parses src as a module body, normalizes it, and
// prints it back.
func printNormalized(t *testing.T, src string) string {
	t.Helper()
	mod := &Module{Body: parseProgram(t, src).Body}
	Normalize(mod)
	return js.Print(&js.Program{Body: mod.Body}, js.Options{})
}

// printPlain parses and prints src without normalizing.
func printPlain(t *testing.T, src string) string {
	t.Helper()
	return js.Print(parseProgram(t, src), js.Options{})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"sequence statement splits",
			`a(), b(), c();`,
			`a(); b(); c();`,
		},
		{
			"return sequence splits",
			`function f() { return a(), b; }`,
			`function f() { a(); return b; }`,
		},
		{
			"not-zero becomes true",
			`var x = !0;`,
			`var x = true;`,
		},
		{
			"not-one becomes false",
			`var x = !1;`,
			`var x = false;`,
		},
		{
			"void zero becomes undefined",
			`var x = void 0;`,
			`var x = undefined;`,
		},
		{
			"and statement becomes if",
			`ready && start();`,
			`if (ready) start();`,
		},
		{
			"or statement becomes guarded if",
			`cache || load();`,
			`if (!cache) load();`,
		},
		{
			"ternary statement becomes if else",
			`fast ? run() : walk();`,
			`if (fast) run(); else walk();`,
		},
		{
			"combined idioms",
			`ok && (setup(), go(!0));`,
			`if (ok) { setup(); go(true); }`,
		},
		{
			"nested function bodies normalized",
			`var f = function() { return init(), done; };`,
			`var f = function() { init(); return done; };`,
		},
		{
			"negation of other literals untouched",
			`var x = !2; var y = void 1;`,
			`var x = !2; var y = void 1;`,
		},
		{
			"value-position conditionals untouched",
			`var x = a ? b : c; use(p && q);`,
			`var x = a ? b : c; use(p && q);`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := printNormalized(t, tt.src)
			want := printPlain(t, tt.want)
			if got != want {
				t.Errorf("normalized output:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	src := `ready && (a(), b(!0));
function f() { return void 0, g() ? x() : y(); }
for (i = 0, n = len; i < n; i++) total += i;`

	once := printNormalized(t, src)
	twice := printNormalized(t, once)
	if once != twice {
		t.Errorf("second pass changed output:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}
