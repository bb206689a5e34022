package thunderbird

import (
	"errors"
	"fmt"
)

// ErrorKind groups fatal parse failures.
type ErrorKind int

const (
	KindSyntax ErrorKind = iota + 1
	KindSemantic
	KindAction
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindSemantic:
		return "semantic error"
	case KindAction:
		return "action validation error"
	default:
		return "parse error"
	}
}

var (
	// syntax
	ErrMalformedLine    = errors.New("unable to recognize line")
	ErrInvalidCondition = errors.New("invalid condition string")

	// semantic
	ErrUnexpectedKey      = errors.New("unexpected key")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnsupportedValue   = errors.New("unsupported value")
	ErrUnsupportedType    = errors.New("unsupported filter type")
	ErrMixedCombinators   = errors.New("mixed AND/OR conditions are not supported")

	// actions
	ErrUnsupportedAction  = errors.New("unrecognized action")
	ErrMissingArgument    = errors.New("missing argument")
	ErrUnexpectedArgument = errors.New("unexpected argument")
	ErrInvalidRecipient   = errors.New("invalid email recipient")
	ErrInvalidFolder      = errors.New("invalid folder specification")
	ErrInvalidScore       = errors.New("invalid junk score")
)

// ParseError is a fatal failure that aborts the whole parse. Err wraps one
// of the sentinel errors above.
type ParseError struct {
	Kind ErrorKind
	Line int
	Key  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %v", e.Kind, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(kind ErrorKind, tok Token, err error) *ParseError {
	return &ParseError{Kind: kind, Line: tok.Line, Key: tok.Key, Err: err}
}
