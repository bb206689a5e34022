package thunderbird

import (
	"fmt"
	"sort"
	"strings"
)

// Combinator joins a condition to the rest of its group.
type Combinator string

const (
	And Combinator = "and"
	Or  Combinator = "or"
)

// Field selects the part of the message a condition inspects.
type Field string

const (
	FieldFrom         Field = "from"
	FieldTo           Field = "to"
	FieldCc           Field = "cc"
	FieldToOrCc       Field = "to or cc"
	FieldAllAddresses Field = "all addresses"
	FieldSubject      Field = "subject"
	FieldBody         Field = "body"
	FieldDate         Field = "date"
	FieldJunkStatus   Field = "junk status"
	// FieldCustom marks a quoted header name; see Condition.Header.
	FieldCustom Field = "custom"
)

// Comparator is the match operator of a condition.
type Comparator string

const (
	Contains       Comparator = "contains"
	DoesNotContain Comparator = "doesn't contain"
	BeginsWith     Comparator = "begins with"
	EndsWith       Comparator = "ends with"
	Is             Comparator = "is"
	IsNot          Comparator = "isn't"
	IsBefore       Comparator = "is before"
)

// Condition is one COMBINATOR(FIELD,COMPARATOR,SEARCH) clause.
type Condition struct {
	Combinator Combinator
	Field      Field
	Header     string // custom header name when Field is FieldCustom
	Comparator Comparator
	Search     string
}

func (c Condition) String() string {
	where := string(c.Field)
	if c.Field == FieldCustom {
		where = `"` + c.Header + `"`
	}
	return fmt.Sprintf("[%s] %s %s %q", c.Combinator, where, c.Comparator, c.Search)
}

type vocabWord[T any] struct {
	word  string
	value T
}

// longestFirst sorts so that "is before" is tried ahead of "is".
func longestFirst[T any](words []vocabWord[T]) []vocabWord[T] {
	sort.SliceStable(words, func(i, j int) bool { return len(words[i].word) > len(words[j].word) })
	return words
}

var (
	combinatorWords = longestFirst([]vocabWord[Combinator]{
		{"and", And},
		{"or", Or},
	})

	fieldWords = longestFirst([]vocabWord[Field]{
		{"from", FieldFrom},
		{"to", FieldTo},
		{"cc", FieldCc},
		{"to or cc", FieldToOrCc},
		{"to-or-cc", FieldToOrCc},
		{"all addresses", FieldAllAddresses},
		{"all-addresses", FieldAllAddresses},
		{"subject", FieldSubject},
		{"body", FieldBody},
		{"date", FieldDate},
		{"junk status", FieldJunkStatus},
		{"junk-status", FieldJunkStatus},
	})

	comparatorWords = longestFirst([]vocabWord[Comparator]{
		{"contains", Contains},
		{"doesn't contain", DoesNotContain},
		{"begins with", BeginsWith},
		{"ends with", EndsWith},
		{"is", Is},
		{"isn't", IsNot},
		{"is before", IsBefore},
	})
)

// ParseCondition parses a condition string such as
//
//	AND (to,contains,someone@example.com) AND (subject,is,"hi")
//
// into its clauses, in source order.
func ParseCondition(value string) ([]Condition, error) {
	invalid := fmt.Errorf("%w: %s", ErrInvalidCondition, value)

	var out []Condition
	rest := value
	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			break
		}

		var c Condition
		var ok bool
		if c.Combinator, rest, ok = extractCombinator(rest); !ok {
			return nil, invalid
		}
		if c.Field, c.Header, rest, ok = extractField(rest); !ok {
			return nil, invalid
		}
		if c.Comparator, rest, ok = extractComparator(rest); !ok {
			return nil, invalid
		}
		if c.Search, rest, ok = extractSearch(rest); !ok {
			return nil, invalid
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, invalid
	}
	return out, nil
}

// ───── clause extraction ─────

func extractCombinator(s string) (Combinator, string, bool) {
	for _, w := range combinatorWords {
		if !hasPrefixFold(s, w.word) {
			continue
		}
		after := strings.TrimLeft(s[len(w.word):], " \t")
		if !strings.HasPrefix(after, "(") {
			continue
		}
		after = strings.TrimSpace(after[1:])
		if after == "" {
			return "", "", false
		}
		return w.value, after, true
	}
	return "", "", false
}

func extractField(s string) (Field, string, string, bool) {
	if strings.HasPrefix(s, `"`) {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", "", "", false
		}
		header := s[1 : end+1]
		if after, ok := afterComma(s[end+2:]); ok {
			return FieldCustom, header, after, true
		}
		return "", "", "", false
	}
	for _, w := range fieldWords {
		if !hasPrefixFold(s, w.word) {
			continue
		}
		if after, ok := afterComma(s[len(w.word):]); ok {
			return w.value, "", after, true
		}
	}
	return "", "", "", false
}

func extractComparator(s string) (Comparator, string, bool) {
	for _, w := range comparatorWords {
		if !hasPrefixFold(s, w.word) {
			continue
		}
		if after, ok := afterComma(s[len(w.word):]); ok {
			return w.value, after, true
		}
	}
	return "", "", false
}

// extractSearch reads a quoted search string, or the raw run up to the next
// ")" not preceded by a backslash, and consumes the closing parenthesis.
func extractSearch(s string) (string, string, bool) {
	if strings.HasPrefix(s, `"`) {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", "", false
		}
		search := s[1 : end+1]
		after := strings.TrimLeft(s[end+2:], " \t\r\n")
		if !strings.HasPrefix(after, ")") {
			return "", "", false
		}
		return search, after[1:], true
	}
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ')':
			i++
		case s[i] == ')':
			return strings.TrimSpace(s[:i]), s[i+1:], true
		}
	}
	return "", "", false
}

// afterComma expects optional blanks, a comma, then a non-empty remainder.
func afterComma(s string) (string, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	if !strings.HasPrefix(s, ",") {
		return "", false
	}
	s = strings.TrimSpace(s[1:])
	if s == "" {
		return "", false
	}
	return s, true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
