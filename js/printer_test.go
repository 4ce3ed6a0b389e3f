package js

import (
	"strings"
	"testing"
)

func printSrc(t *testing.T, src string, opts Options) string {
	t.Helper()
	prog := mustParse(t, src)
	ResolveScopes(prog)
	return Print(prog, opts)
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		want string
	}{
		{
			name: "var statement",
			src:  "var a=1;",
			want: "var a = 1;\n",
		},
		{
			name: "declarators one per line",
			src:  "var a=1,b=2;",
			opts: Options{DeclaratorsOnePerLine: true},
			want: "var a = 1,\n    b = 2;\n",
		},
		{
			name: "declarators inline without option",
			src:  "var a=1,b=2;",
			want: "var a = 1, b = 2;\n",
		},
		{
			name: "bracketize single statement body",
			src:  "if(a)b();",
			opts: Options{BracketizeBlocks: true},
			want: "if (a) {\n  b();\n}\n",
		},
		{
			name: "if else chain",
			src:  "if(a){b()}else if(c){d()}else{e()}",
			opts: Options{BracketizeBlocks: true},
			want: "if (a) {\n  b();\n} else if (c) {\n  d();\n} else {\n  e();\n}\n",
		},
		{
			name: "function declaration",
			src:  "function add(a,b){return a+b}",
			want: "function add(a, b) {\n  return a + b;\n}\n",
		},
		{
			name: "precedence parens preserved",
			src:  "x=(a+b)*c;",
			want: "x = (a + b) * c;\n",
		},
		{
			name: "no spurious parens",
			src:  "x=a+b*c;",
			want: "x = a + b * c;\n",
		},
		{
			name: "statement-level function gets parens",
			src:  "(function(){})();",
			want: "(function() {}());\n",
		},
		{
			name: "ascii only escapes",
			src:  `x="héllo";`,
			opts: Options{ASCIIOnly: true},
			want: `x = "h\u00e9llo";` + "\n",
		},
		{
			name: "non-ascii preserved without option",
			src:  `x="héllo";`,
			want: `x = "héllo";` + "\n",
		},
		{
			name: "hex number raw preserved",
			src:  "x=0x1F;",
			want: "x = 0x1F;\n",
		},
		{
			name: "require call",
			src:  `var u=require("./util.js");`,
			want: `var u = require("./util.js");` + "\n",
		},
		{
			name: "new expression",
			src:  "x=new Foo(1);",
			want: "x = new Foo(1);\n",
		},
		{
			name: "object literal",
			src:  `x={a:1,"b c":2};`,
			want: `x = { a: 1, "b c": 2 };` + "\n",
		},
		{
			name: "labeled loop keeps label on loop",
			src:  "outer:while(a){break outer}",
			opts: Options{BracketizeBlocks: true},
			want: "outer: while (a) {\n  break outer;\n}\n",
		},
		{
			name: "ternary and sequence",
			src:  "x=(a?b:c,d);",
			want: "x = (a ? b : c, d);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := printSrc(t, tt.src, tt.opts)
			if got != tt.want {
				t.Errorf("Print = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintRename(t *testing.T) {
	prog := mustParse(t, "function f(r) { var x = r(1); return r; }")
	ResolveScopes(prog)
	fd := prog.Body[0].(*FuncDecl)
	param := fd.Fn.Params[0]

	out := Print(prog, Options{Rename: map[*Binding]string{param.Binding: "require"}})
	for _, want := range []string{"function f(require)", "require(1)", "return require;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// The tree itself is untouched
	if param.Name != "r" {
		t.Errorf("param name mutated to %q", param.Name)
	}
	plain := Print(prog, Options{})
	if !strings.Contains(plain, "function f(r)") {
		t.Errorf("printing without rename table should use declared names:\n%s", plain)
	}
}

func TestPrintRenameLeavesOthersAlone(t *testing.T) {
	prog := mustParse(t, "function f(r) { return other(r); }")
	ResolveScopes(prog)
	fd := prog.Body[0].(*FuncDecl)
	out := Print(prog, Options{Rename: map[*Binding]string{fd.Fn.Params[0].Binding: "require"}})
	if !strings.Contains(out, "other(require)") {
		t.Errorf("output = %q", out)
	}
}

// Printing then reparsing then printing again must be a fixed point.
func TestPrintStable(t *testing.T) {
	srcs := []string{
		"var a = 1, b = 2;",
		"function f(a) { if (a) return a * 2; return 0; }",
		`(function(m) { m.x = 1; })({});`,
		"for (var i = 0; i < 10; i++) f(i);",
		"x = a ? b : c;",
		"try { f(); } catch (e) { g(e); }",
		"switch (v) {\ncase 1:\n  a();\ndefault:\n  b();\n}",
	}
	opts := Options{ASCIIOnly: true, BracketizeBlocks: true, DeclaratorsOnePerLine: true}
	for _, src := range srcs {
		first := printSrc(t, src, opts)
		second := printSrc(t, first, opts)
		if first != second {
			t.Errorf("printing not stable for %q:\nfirst:  %q\nsecond: %q", src, first, second)
		}
	}
}
