package thunderbird

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondition_TwoClauses(t *testing.T) {
	conds, err := ParseCondition(`AND(to,contains,"foo@bar.com")OR(subject,is,"hi")`)
	require.NoError(t, err)
	require.Len(t, conds, 2)

	assert.Equal(t, Condition{Combinator: And, Field: FieldTo, Comparator: Contains, Search: "foo@bar.com"}, conds[0])
	assert.Equal(t, Condition{Combinator: Or, Field: FieldSubject, Comparator: Is, Search: "hi"}, conds[1])
}

func TestParseCondition_Variants(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want []Condition
	}{
		{
			name: "unquoted search",
			in:   "AND (from,contains,someone@example.com)",
			want: []Condition{{And, FieldFrom, "", Contains, "someone@example.com"}},
		},
		{
			name: "lower case and spaces",
			in:   "  or ( subject , begins with , [list] ) ",
			want: []Condition{{Or, FieldSubject, "", BeginsWith, "[list]"}},
		},
		{
			name: "multi word field and comparator",
			in:   `AND (to or cc,doesn't contain,"spam") AND (all addresses,ends with,example.org)`,
			want: []Condition{
				{And, FieldToOrCc, "", DoesNotContain, "spam"},
				{And, FieldAllAddresses, "", EndsWith, "example.org"},
			},
		},
		{
			name: "hyphenated field aliases",
			in:   "AND (to-or-cc,is,a@b.c) AND (junk-status,is,2)",
			want: []Condition{
				{And, FieldToOrCc, "", Is, "a@b.c"},
				{And, FieldJunkStatus, "", Is, "2"},
			},
		},
		{
			name: "is before versus is",
			in:   "AND (date,is before,01-Jan-2024) AND (subject,isn't,x)",
			want: []Condition{
				{And, FieldDate, "", IsBefore, "01-Jan-2024"},
				{And, FieldSubject, "", IsNot, "x"},
			},
		},
		{
			name: "custom header",
			in:   `AND ("X-Mailing-List",contains,golang-nuts)`,
			want: []Condition{{And, FieldCustom, "X-Mailing-List", Contains, "golang-nuts"}},
		},
		{
			name: "escaped parenthesis in raw search",
			in:   `AND (subject,contains,a\)b)`,
			want: []Condition{{And, FieldSubject, "", Contains, `a\)b`}},
		},
		{
			name: "parenthesis inside quoted search",
			in:   `AND (body,contains,"(urgent)")`,
			want: []Condition{{And, FieldBody, "", Contains, "(urgent)"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCondition(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCondition_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"ALL",
		"XOR (from,contains,x)",
		"AND (sender,contains,x)",
		"AND (from,matches,x)",
		"AND (from,contains,x",
		`AND (from,contains,"x"`,
		`AND ("unterminated,contains,x)`,
		"AND (from,contains,x) garbage",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCondition(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCondition)
			assert.Contains(t, err.Error(), in)
		})
	}
}

func TestConditionGroup_RejectsMixedCombinators(t *testing.T) {
	var g ConditionGroup
	require.NoError(t, g.Add(Condition{Combinator: And, Field: FieldFrom, Comparator: Contains, Search: "a"}))
	require.NoError(t, g.Add(Condition{Combinator: And, Field: FieldTo, Comparator: Contains, Search: "b"}))

	err := g.Add(Condition{Combinator: Or, Field: FieldCc, Comparator: Contains, Search: "c"})
	assert.ErrorIs(t, err, ErrMixedCombinators)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, And, g.Combinator())
}

func TestCondition_String(t *testing.T) {
	c := Condition{Combinator: And, Field: FieldCustom, Header: "X-Spam", Comparator: Is, Search: "yes"}
	assert.Equal(t, `[and] "X-Spam" is "yes"`, c.String())
}
