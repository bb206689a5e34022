package thunderbird

import (
	"fmt"
	"os"
	"strconv"
)

type parseState int

const (
	awaitVersion parseState = iota
	awaitRule
	inRule
)

// ParseFile reads and parses a msgFilterRules.dat file.
func ParseFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse parses the contents of a msgFilterRules.dat document. It returns
// (nil, nil) when the document holds no tokens at all.
func Parse(contents string) (*RuleSet, error) {
	tokens, err := Tokenize(contents)
	if err != nil {
		return nil, err
	}
	return Assemble(tokens)
}

// Assemble builds a RuleSet from a token stream, following the key order
// Thunderbird writes: version, optional logging, then one block per rule
// starting with name.
func Assemble(tokens []Token) (*RuleSet, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var (
		rs    *RuleSet
		rule  *Rule
		state = awaitVersion
	)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.Key == "version" && state == awaitVersion:
			if tok.Value != FormatVersion {
				return nil, newParseError(KindSemantic, tok, fmt.Errorf("%w (%s)", ErrUnsupportedVersion, tok.Value))
			}
			rs = &RuleSet{Version: tok.Value}
			state = awaitRule

		case tok.Key == "logging" && state == awaitRule:
			v, err := yesNo(tok)
			if err != nil {
				return nil, err
			}
			if err := rs.setLogging(v); err != nil {
				return nil, unexpectedKey(tok)
			}

		case tok.Key == "name" && state != awaitVersion:
			rule = &Rule{Name: tok.Value, Type: TypeNone}
			rs.Rules = append(rs.Rules, rule)
			state = inRule

		case tok.Key == "enabled" && state == inRule:
			v, err := yesNo(tok)
			if err != nil {
				return nil, err
			}
			rule.Enabled = v

		case tok.Key == "type" && state == inRule:
			t, err := parseType(tok)
			if err != nil {
				return nil, err
			}
			rule.Type = t

		case tok.Key == "action" && state == inRule:
			value, present := "", false
			if i+1 < len(tokens) && tokens[i+1].Key == "actionValue" {
				value, present = tokens[i+1].Value, true
				i++
			}
			a, err := NewAction(tok.Value, value, present)
			if err != nil {
				return nil, newParseError(KindAction, tok, err)
			}
			rule.Actions = append(rule.Actions, a)

		case tok.Key == "condition" && state == inRule:
			conds, err := ParseCondition(tok.Value)
			if err != nil {
				return nil, newParseError(KindSyntax, tok, err)
			}
			for _, c := range conds {
				if err := rule.Conditions.Add(c); err != nil {
					return nil, newParseError(KindSemantic, tok, err)
				}
			}

		default:
			return nil, unexpectedKey(tok)
		}
	}

	return rs, nil
}

func unexpectedKey(tok Token) *ParseError {
	return newParseError(KindSemantic, tok, fmt.Errorf("%w %q", ErrUnexpectedKey, tok.Key))
}

func yesNo(tok Token) (bool, error) {
	switch tok.Value {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return false, newParseError(KindSemantic, tok, fmt.Errorf("%w for %q: %q", ErrUnsupportedValue, tok.Key, tok.Value))
}

func parseType(tok Token) (Type, error) {
	if !isDigits(tok.Value) {
		return 0, newParseError(KindSemantic, tok, fmt.Errorf("%w: %q", ErrUnsupportedType, tok.Value))
	}
	n, err := strconv.ParseUint(tok.Value, 10, 32)
	if err != nil {
		return 0, newParseError(KindSemantic, tok, fmt.Errorf("%w: %q: %v", ErrUnsupportedType, tok.Value, err))
	}
	t := Type(n)
	if _, err := Decompose(t); err != nil {
		return 0, newParseError(KindSemantic, tok, err)
	}
	return t, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
