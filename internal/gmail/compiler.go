package gmail

import (
	"errors"
	"fmt"

	"tb2gmail/internal/thunderbird"
)

// Filter is a compiled rule, ready for a Publisher.
type Filter struct {
	Rule     *thunderbird.Rule `yaml:"-"`
	Name     string            `yaml:"name"`
	Criteria Criteria          `yaml:"criteria"`
	Action   FilterAction      `yaml:"action"`
}

// Compiler turns rules into Gmail filters. Its LabelDirectory is shared by
// every rule it compiles.
type Compiler struct {
	Actions ActionCompiler
	Metrics *Metrics // optional
}

// NewCompiler returns a compiler resolving labels through labels and
// naming the built-in tags with thunderbird.DefaultTagNames.
func NewCompiler(labels LabelDirectory) *Compiler {
	return &Compiler{
		Actions: ActionCompiler{
			Labels:   labels,
			TagNames: thunderbird.DefaultTagNames,
		},
	}
}

// CompileRule compiles one rule. Unsupported conditions and actions come
// back as *FilterNotCompilableError; any other error comes from the label
// directory.
func (c *Compiler) CompileRule(r *thunderbird.Rule) (*Filter, error) {
	criteria, err := CompileCriteria(&r.Conditions)
	if err != nil {
		return nil, &FilterNotCompilableError{Rule: r, Err: err}
	}
	action, err := c.Actions.Compile(r.Actions)
	if err != nil {
		if isCompileFailure(err) {
			return nil, &FilterNotCompilableError{Rule: r, Err: err}
		}
		return nil, fmt.Errorf("compiling filter %q: %w", r.Name, err)
	}
	return &Filter{Rule: r, Name: r.Name, Criteria: criteria, Action: action}, nil
}

// CompileRuleSet compiles every enabled rule of rs. Rules that cannot be
// compiled are reported in failures and left out of filters; err is set
// only when the label directory fails, which stops the run.
func (c *Compiler) CompileRuleSet(rs *thunderbird.RuleSet) (filters []*Filter, failures []*FilterNotCompilableError, err error) {
	if rs == nil {
		return nil, nil, nil
	}
	for _, r := range rs.Enabled() {
		f, err := c.CompileRule(r)
		var nc *FilterNotCompilableError
		switch {
		case errors.As(err, &nc):
			failures = append(failures, nc)
			c.Metrics.ruleFailed(nc)
		case err != nil:
			return filters, failures, err
		default:
			filters = append(filters, f)
			c.Metrics.ruleCompiled()
		}
	}
	return filters, failures, nil
}

func isCompileFailure(err error) bool {
	return errors.Is(err, ErrNotImplemented) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrAtMostOneForward)
}
