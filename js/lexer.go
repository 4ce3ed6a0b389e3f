package js

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokNumber
	tokString
	tokRegex
	tokPunct
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokRegex:
		return "regex"
	case tokPunct:
		return "punctuator"
	}
	return "unknown"
}

type token struct {
	Value         string
	Type          tokenType
	Line          int
	NewlineBefore bool
}

// Multi-character punctuators, longest first so maximal munch works.
var puncts = []string{
	">>>=", "===", "!==", ">>>", "<<=", ">>=",
	"==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*",
	"/", "%", "&", "|", "^", "!", "~", "?", ":", "=", ".",
}

// Words after which a '/' starts a regex literal rather than division.
var regexPrecedingWords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true,
	"new": true, "delete": true, "void": true, "throw": true,
	"case": true, "do": true, "else": true,
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenize splits src into tokens, decoding string literals and keeping
// number and regex literals verbatim.
func tokenize(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)
	line := 1
	newline := false

	// regexAllowed reports whether a '/' at the current position starts a
	// regex literal, based on the previous meaningful token.
	regexAllowed := func() bool {
		if len(tokens) == 0 {
			return true
		}
		prev := tokens[len(tokens)-1]
		switch prev.Type {
		case tokIdent:
			return regexPrecedingWords[prev.Value]
		case tokNumber, tokString, tokRegex:
			return false
		case tokPunct:
			return prev.Value != ")" && prev.Value != "]" && prev.Value != "++" && prev.Value != "--"
		}
		return true
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			newline = true
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			i--
			continue
		}

		// Block comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			i += 2
			for i+1 < len(runes) && !(runes[i] == '*' && runes[i+1] == '/') {
				if runes[i] == '\n' {
					line++
					newline = true
				}
				i++
			}
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("line %d: unterminated block comment", line)
			}
			i++
			continue
		}

		// Regex literal
		if r == '/' && regexAllowed() {
			start := i
			i++
			inClass := false
			for i < len(runes) {
				c := runes[i]
				if c == '\\' {
					i += 2
					continue
				}
				if c == '\n' {
					return nil, fmt.Errorf("line %d: unterminated regex literal", line)
				}
				if c == '[' {
					inClass = true
				} else if c == ']' {
					inClass = false
				} else if c == '/' && !inClass {
					break
				}
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("line %d: unterminated regex literal", line)
			}
			i++ // past closing slash
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			tokens = append(tokens, token{string(runes[start:i]), tokRegex, line, newline})
			newline = false
			i--
			continue
		}

		// String literal
		if r == '"' || r == '\'' {
			value, consumed, err := decodeString(runes[i:], line)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{value, tokString, line, newline})
			newline = false
			i += consumed - 1
			continue
		}

		// Number literal, kept verbatim
		if unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])) {
			start := i
			if r == '0' && i+1 < len(runes) && (runes[i+1] == 'x' || runes[i+1] == 'X') {
				i += 2
				for i < len(runes) && isHexDigit(runes[i]) {
					i++
				}
			} else {
				for i < len(runes) && unicode.IsDigit(runes[i]) {
					i++
				}
				if i < len(runes) && runes[i] == '.' {
					i++
					for i < len(runes) && unicode.IsDigit(runes[i]) {
						i++
					}
				}
				if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
					i++
					if i < len(runes) && (runes[i] == '+' || runes[i] == '-') {
						i++
					}
					for i < len(runes) && unicode.IsDigit(runes[i]) {
						i++
					}
				}
			}
			tokens = append(tokens, token{string(runes[start:i]), tokNumber, line, newline})
			newline = false
			i--
			continue
		}

		// Identifier or keyword
		if isIdentStart(r) {
			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			tokens = append(tokens, token{string(runes[start:i]), tokIdent, line, newline})
			newline = false
			i--
			continue
		}

		// Punctuator, longest match first
		rest := string(runes[i:])
		matched := ""
		for _, p := range puncts {
			if strings.HasPrefix(rest, p) {
				matched = p
				break
			}
		}
		if matched == "" {
			return nil, fmt.Errorf("line %d: unexpected character %q", line, r)
		}
		tokens = append(tokens, token{matched, tokPunct, line, newline})
		newline = false
		i += len([]rune(matched)) - 1
	}

	return tokens, nil
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// decodeString decodes the quoted literal at the start of runes and
// returns the decoded value and the number of runes consumed.
func decodeString(runes []rune, line int) (string, int, error) {
	quote := runes[0]
	var b strings.Builder
	i := 1
	for i < len(runes) {
		r := runes[i]
		if r == quote {
			return b.String(), i + 1, nil
		}
		if r == '\n' {
			return "", 0, fmt.Errorf("line %d: unterminated string literal", line)
		}
		if r != '\\' {
			b.WriteRune(r)
			i++
			continue
		}
		i++
		if i >= len(runes) {
			break
		}
		switch runes[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			line++ // line continuation
		case 'x':
			if i+2 >= len(runes) {
				return "", 0, fmt.Errorf("line %d: truncated \\x escape", line)
			}
			v, err := hexValue(runes[i+1 : i+3])
			if err != nil {
				return "", 0, fmt.Errorf("line %d: %v", line, err)
			}
			b.WriteRune(rune(v))
			i += 2
		case 'u':
			if i+4 >= len(runes) {
				return "", 0, fmt.Errorf("line %d: truncated \\u escape", line)
			}
			v, err := hexValue(runes[i+1 : i+5])
			if err != nil {
				return "", 0, fmt.Errorf("line %d: %v", line, err)
			}
			i += 4
			// Combine surrogate pairs into one rune
			if utf16.IsSurrogate(rune(v)) && i+6 < len(runes) && runes[i+1] == '\\' && runes[i+2] == 'u' {
				lo, err := hexValue(runes[i+3 : i+7])
				if err == nil {
					combined := utf16.DecodeRune(rune(v), rune(lo))
					if combined != 0xFFFD {
						b.WriteRune(combined)
						i += 6
						break
					}
				}
			}
			b.WriteRune(rune(v))
		default:
			b.WriteRune(runes[i])
		}
		i++
	}
	return "", 0, fmt.Errorf("line %d: unterminated string literal", line)
}

func hexValue(runes []rune) (int, error) {
	v := 0
	for _, r := range runes {
		switch {
		case r >= '0' && r <= '9':
			v = v*16 + int(r-'0')
		case r >= 'a' && r <= 'f':
			v = v*16 + int(r-'a'+10)
		case r >= 'A' && r <= 'F':
			v = v*16 + int(r-'A'+10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", r)
		}
	}
	return v, nil
}
