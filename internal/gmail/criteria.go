package gmail

import (
	"fmt"
	"strings"
	"time"

	"tb2gmail/internal/thunderbird"
)

// Date layouts: Thunderbird writes "01-Jan-2024", Gmail reads "2024/01/01".
const (
	thunderbirdDate = "2-Jan-2006"
	gmailDate       = "2006/01/02"
)

// Criteria is the search side of a Gmail filter.
type Criteria struct {
	Query string `yaml:"query"`
}

// CompileCriteria turns a condition group into one Gmail search query.
// AND is juxtaposition; an OR condition gets an explicit "OR" in front of
// it unless it comes first.
func CompileCriteria(g *thunderbird.ConditionGroup) (Criteria, error) {
	var chunks []string
	for _, c := range g.Conditions() {
		term, err := compileCondition(c)
		if err != nil {
			return Criteria{}, err
		}
		if len(chunks) > 0 && c.Combinator == thunderbird.Or {
			chunks = append(chunks, "OR")
		}
		chunks = append(chunks, term)
	}
	return Criteria{Query: strings.Join(chunks, " ")}, nil
}

func compileCondition(c thunderbird.Condition) (string, error) {
	switch c.Field {
	case thunderbird.FieldFrom, thunderbird.FieldTo, thunderbird.FieldCc:
		return searchTerm(string(c.Field), c)
	case thunderbird.FieldToOrCc:
		return orGroup(c, "to", "cc")
	case thunderbird.FieldAllAddresses:
		return orGroup(c, "from", "to", "cc", "bcc")
	case thunderbird.FieldSubject:
		return searchTerm("subject", c)
	case thunderbird.FieldBody:
		return searchTerm("", c)
	case thunderbird.FieldDate:
		return dateTerm(c)
	case thunderbird.FieldCustom:
		return "", fmt.Errorf("%w: header %q", ErrNotImplemented, c.Header)
	default:
		return "", fmt.Errorf("%w: %s", ErrNotImplemented, c.Field)
	}
}

func orGroup(c thunderbird.Condition, keys ...string) (string, error) {
	parts := make([]string, 0, 2*len(keys)-1)
	for i, k := range keys {
		term, err := searchTerm(k, c)
		if err != nil {
			return "", err
		}
		if i > 0 {
			parts = append(parts, "OR")
		}
		parts = append(parts, term)
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}

// searchTerm renders key:"search". Gmail has no prefix, suffix or exact
// operators, so those compile to the same term as contains.
func searchTerm(key string, c thunderbird.Condition) (string, error) {
	switch c.Comparator {
	case thunderbird.Contains, thunderbird.BeginsWith, thunderbird.EndsWith, thunderbird.Is:
		return quotedTerm(key, c.Search), nil
	case thunderbird.DoesNotContain:
		return "-{" + quotedTerm(key, c.Search) + "}", nil
	default:
		return "", fmt.Errorf("%w: %s %s", ErrNotImplemented, c.Field, c.Comparator)
	}
}

func quotedTerm(key, search string) string {
	term := `"` + strings.ReplaceAll(search, `"`, "") + `"`
	if key == "" {
		return term
	}
	return key + ":" + term
}

func dateTerm(c thunderbird.Condition) (string, error) {
	if c.Comparator != thunderbird.IsBefore {
		return "", fmt.Errorf("%w: %s %s", ErrNotImplemented, c.Field, c.Comparator)
	}
	d, err := time.Parse(thunderbirdDate, c.Search)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, c.Search)
	}
	return "before:" + d.Format(gmailDate), nil
}
