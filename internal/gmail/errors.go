package gmail

import (
	"errors"
	"fmt"

	"tb2gmail/internal/thunderbird"
)

var (
	ErrNotImplemented   = errors.New("not implemented")
	ErrInvalidDate      = errors.New("invalid date")
	ErrAtMostOneForward = errors.New(`only one "forward to" action is supported by Gmail filters`)

	// Publisher-side rejections. Publishers wrap these so the writer can
	// attach them to the originating rule.
	ErrUnrecognizedForwardingAddress = errors.New("unrecognized forwarding address")
	ErrFilterAlreadyExists           = errors.New("filter already exists")
)

// FilterNotCompilableError reports a rule that cannot become a Gmail
// filter. It is recoverable: the other rules of the batch still compile.
type FilterNotCompilableError struct {
	Rule              *thunderbird.Rule
	ForwardingAddress string // set for ErrUnrecognizedForwardingAddress
	Err               error
}

func (e *FilterNotCompilableError) Error() string {
	name := ""
	if e.Rule != nil {
		name = e.Rule.Name
	}
	msg := fmt.Sprintf("filter %q: %v", name, e.Err)
	if e.ForwardingAddress != "" {
		msg += " (forwarding address: " + e.ForwardingAddress + ")"
	}
	return msg
}

func (e *FilterNotCompilableError) Unwrap() error { return e.Err }

// reason is a short metrics label for the wrapped error.
func (e *FilterNotCompilableError) reason() string {
	switch {
	case errors.Is(e.Err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(e.Err, ErrAtMostOneForward):
		return "multiple_forwards"
	case errors.Is(e.Err, ErrUnrecognizedForwardingAddress):
		return "unrecognized_forwarding_address"
	case errors.Is(e.Err, ErrFilterAlreadyExists):
		return "already_exists"
	case errors.Is(e.Err, ErrNotImplemented):
		return "not_implemented"
	default:
		return "other"
	}
}
