package thunderbird

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_LineEndings(t *testing.T) {
	input := "version=\"9\"\r\nlogging=\"no\"\n\nname=\"a\"\rname=\"b\"\r\n"

	tokens, err := Tokenize(input)
	require.NoError(t, err)

	assert.Equal(t, []Token{
		{Line: 1, Key: "version", Value: "9"},
		{Line: 2, Key: "logging", Value: "no"},
		{Line: 4, Key: "name", Value: "a"},
		{Line: 5, Key: "name", Value: "b"},
	}, tokens)
}

func TestTokenize_KeyAndValueShape(t *testing.T) {
	tokens, err := Tokenize(`   name  =  "a = b"  `)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "name", tokens[0].Key)
	assert.Equal(t, "a = b", tokens[0].Value)
}

func TestTokenize_MalformedLine(t *testing.T) {
	_, err := Tokenize("version=\"9\"\n\nname=unquoted\n")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindSyntax, perr.Kind)
	assert.Equal(t, 3, perr.Line)
	assert.ErrorIs(t, err, ErrMalformedLine)
	assert.Contains(t, err.Error(), "line 3")
}

func TestUnescapeValue(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{`plain`, `plain`},
		{`say \"hi\"`, `say "hi"`},
		{`back\\slash`, `back\slash`},
		{`keep \n and \t`, `keep \n and \t`},
		{`trailing \`, `trailing \`},
		{`\\\"`, `\"`},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, unescapeValue(tc.in))
		})
	}
}

func TestTokenize_UnescapesValues(t *testing.T) {
	tokens, err := Tokenize(`condition="AND (subject,contains,\"quoted\")"`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, `AND (subject,contains,"quoted")`, tokens[0].Value)
}
