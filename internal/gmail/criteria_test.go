package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tb2gmail/internal/thunderbird"
)

func group(t *testing.T, expr string) *thunderbird.ConditionGroup {
	t.Helper()
	conds, err := thunderbird.ParseCondition(expr)
	require.NoError(t, err)
	var g thunderbird.ConditionGroup
	for _, c := range conds {
		require.NoError(t, g.Add(c))
	}
	return &g
}

func TestCompileCriteria(t *testing.T) {
	testCases := []struct {
		name string
		expr string
		want string
	}{
		{"from contains", `AND (from,contains,boss@example.com)`, `from:"boss@example.com"`},
		{"and is juxtaposition", `AND (from,contains,a) AND (subject,is,b)`, `from:"a" subject:"b"`},
		{"or gets joiner after first", `OR (to,contains,a) OR (cc,begins with,b) OR (subject,ends with,c)`, `to:"a" OR cc:"b" OR subject:"c"`},
		{"doesn't contain is negated", `AND (subject,doesn't contain,"spam")`, `-{subject:"spam"}`},
		{"to or cc", `AND (to or cc,contains,x@y.z)`, `(to:"x@y.z" OR cc:"x@y.z")`},
		{"all addresses", `AND (all addresses,is,x@y.z)`, `(from:"x@y.z" OR to:"x@y.z" OR cc:"x@y.z" OR bcc:"x@y.z")`},
		{"negated group", `AND (to or cc,doesn't contain,x)`, `(-{to:"x"} OR -{cc:"x"})`},
		{"body has no prefix", `AND (body,contains,invoice)`, `"invoice"`},
		{"date before", `AND (date,is before,01-Jan-2024)`, `before:2024/01/01`},
		{"single digit day", `AND (date,is before,5-Mar-2023)`, `before:2023/03/05`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CompileCriteria(group(t, tc.expr))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Query)
		})
	}
}

func TestCompileCriteria_StripsQuotes(t *testing.T) {
	g := &thunderbird.ConditionGroup{}
	require.NoError(t, g.Add(thunderbird.Condition{
		Combinator: thunderbird.And,
		Field:      thunderbird.FieldSubject,
		Comparator: thunderbird.Contains,
		Search:     `say "hi"`,
	}))
	got, err := CompileCriteria(g)
	require.NoError(t, err)
	assert.Equal(t, `subject:"say hi"`, got.Query)
}

func TestCompileCriteria_Failures(t *testing.T) {
	testCases := []struct {
		name string
		expr string
		want error
	}{
		{"junk status", `AND (junk status,is,2)`, ErrNotImplemented},
		{"custom header", `AND ("X-Spam",contains,yes)`, ErrNotImplemented},
		{"isn't", `AND (subject,isn't,x)`, ErrNotImplemented},
		{"is before on subject", `AND (subject,is before,x)`, ErrNotImplemented},
		{"date with contains", `AND (date,contains,01-Jan-2024)`, ErrNotImplemented},
		{"bad date", `AND (date,is before,yesterday)`, ErrInvalidDate},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CompileCriteria(group(t, tc.expr))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCompileCriteria_EmptyGroup(t *testing.T) {
	got, err := CompileCriteria(&thunderbird.ConditionGroup{})
	require.NoError(t, err)
	assert.Equal(t, "", got.Query)
}
