package thunderbird

import (
	"fmt"
	"regexp"
	"strings"
)

// Token is one `key="value"` line of a msgFilterRules.dat document.
type Token struct {
	Line  int // 1-based
	Key   string
	Value string
}

var linePattern = regexp.MustCompile(`^(.*?)\s*=\s*"(.*)"$`)

// Tokenize splits contents into tokens. CRLF, LF and CR all end a line,
// blank lines are skipped and values are unescaped.
func Tokenize(contents string) ([]Token, error) {
	var tokens []Token
	for i, line := range splitLines(contents) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		m := linePattern.FindStringSubmatch(trimmed)
		if m == nil {
			return nil, &ParseError{
				Kind: KindSyntax,
				Line: i + 1,
				Err:  fmt.Errorf("%w: %s", ErrMalformedLine, line),
			}
		}
		tokens = append(tokens, Token{
			Line:  i + 1,
			Key:   strings.TrimSpace(m[1]),
			Value: unescapeValue(m[2]),
		})
	}
	return tokens, nil
}

func splitLines(contents string) []string {
	contents = strings.ReplaceAll(contents, "\r\n", "\n")
	contents = strings.ReplaceAll(contents, "\r", "\n")
	return strings.Split(contents, "\n")
}

// unescapeValue resolves \" and \\. Any other backslash sequence is kept
// verbatim.
func unescapeValue(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\\' && i+1 < len(v) && (v[i+1] == '"' || v[i+1] == '\\') {
			b.WriteByte(v[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
