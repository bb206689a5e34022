package gmail

import (
	"errors"
	"fmt"

	"tb2gmail/internal/thunderbird"
)

// Publisher submits a compiled filter to the remote account. A rejection
// because the filter exists should wrap ErrFilterAlreadyExists; one because
// Gmail does not know the forwarding address should wrap
// ErrUnrecognizedForwardingAddress.
type Publisher interface {
	Publish(f *Filter) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(f *Filter) error

func (fn PublisherFunc) Publish(f *Filter) error { return fn(f) }

// Writer compiles a RuleSet and hands each filter to its Publisher.
type Writer struct {
	Compiler  *Compiler
	Publisher Publisher
}

// EnsureFilters compiles and publishes the enabled rules of rs. Nothing is
// published when dryRun is set. Per-rule failures, from compilation or from
// recognized publisher rejections, are returned in failures; err reports
// the first failure that stops the run.
func (w *Writer) EnsureFilters(rs *thunderbird.RuleSet, dryRun bool) (published []*Filter, failures []*FilterNotCompilableError, err error) {
	filters, failures, err := w.Compiler.CompileRuleSet(rs)
	if err != nil {
		return nil, failures, err
	}
	if dryRun {
		return filters, failures, nil
	}

	for _, f := range filters {
		perr := w.Publisher.Publish(f)
		if perr == nil {
			published = append(published, f)
			w.Compiler.Metrics.filterPublished()
			continue
		}
		nc, ok := classifyPublishError(f, perr)
		if !ok {
			return published, failures, fmt.Errorf("publishing filter %q: %w", f.Name, perr)
		}
		failures = append(failures, nc)
		w.Compiler.Metrics.ruleFailed(nc)
	}
	return published, failures, nil
}

func classifyPublishError(f *Filter, err error) (*FilterNotCompilableError, bool) {
	switch {
	case errors.Is(err, ErrUnrecognizedForwardingAddress):
		return &FilterNotCompilableError{Rule: f.Rule, ForwardingAddress: forwardRecipient(f.Rule), Err: err}, true
	case errors.Is(err, ErrFilterAlreadyExists):
		return &FilterNotCompilableError{Rule: f.Rule, Err: err}, true
	}
	return nil, false
}

func forwardRecipient(r *thunderbird.Rule) string {
	if r == nil {
		return ""
	}
	for _, a := range r.Actions {
		if fw, ok := a.(thunderbird.Forward); ok {
			return fw.Recipient
		}
	}
	return ""
}
