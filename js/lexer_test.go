package js

import (
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  []string
		types []tokenType
	}{
		{
			name:  "punctuation",
			src:   "a >>>= b === c && d",
			want:  []string{"a", ">>>=", "b", "===", "c", "&&", "d"},
			types: []tokenType{tokIdent, tokPunct, tokIdent, tokPunct, tokIdent, tokPunct, tokIdent},
		},
		{
			name:  "numbers",
			src:   "0x1F 1.5e3 .25 42",
			want:  []string{"0x1F", "1.5e3", ".25", "42"},
			types: []tokenType{tokNumber, tokNumber, tokNumber, tokNumber},
		},
		{
			name:  "string decoding",
			src:   `"a\nb" 'c\x41'`,
			want:  []string{"a\nb", "cA"},
			types: []tokenType{tokString, tokString},
		},
		{
			name:  "unicode escape",
			src:   `"é"`,
			want:  []string{"é"},
			types: []tokenType{tokString},
		},
		{
			name:  "division stays division",
			src:   "a / b / c",
			want:  []string{"a", "/", "b", "/", "c"},
			types: []tokenType{tokIdent, tokPunct, tokIdent, tokPunct, tokIdent},
		},
		{
			name:  "regex after assignment",
			src:   "x = /ab[/]c/g",
			want:  []string{"x", "=", "/ab[/]c/g"},
			types: []tokenType{tokIdent, tokPunct, tokRegex},
		},
		{
			name:  "regex after return",
			src:   "return /x/",
			want:  []string{"return", "/x/"},
			types: []tokenType{tokIdent, tokRegex},
		},
		{
			name:  "comments skipped",
			src:   "a // line\n/* block\nstill */ b",
			want:  []string{"a", "b"},
			types: []tokenType{tokIdent, tokIdent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tokenize(tt.src)
			if err != nil {
				t.Fatalf("tokenize failed: %v", err)
			}
			if len(tokens) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.want), tokens)
			}
			for i, tok := range tokens {
				if tok.Value != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, tok.Value, tt.want[i])
				}
				if tok.Type != tt.types[i] {
					t.Errorf("token %d type = %v, want %v", i, tok.Type, tt.types[i])
				}
			}
		})
	}
}

func TestTokenizeNewlines(t *testing.T) {
	tokens, err := tokenize("a\nb")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	if tokens[0].NewlineBefore {
		t.Error("first token should not be marked NewlineBefore")
	}
	if !tokens[1].NewlineBefore {
		t.Error("second token should be marked NewlineBefore")
	}
	if tokens[1].Line != 2 {
		t.Errorf("second token line = %d, want 2", tokens[1].Line)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name, src, wantErr string
	}{
		{"unterminated string", `"abc`, "unterminated string"},
		{"string newline", "\"ab\nc\"", "unterminated string"},
		{"unterminated comment", "/* abc", "unterminated block comment"},
		{"unterminated regex", "x = /abc", "unterminated regex"},
		{"bad character", "a # b", "unexpected character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokenize(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q missing %q", err, tt.wantErr)
			}
		})
	}
}
