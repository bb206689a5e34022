package thunderbird

import (
	"fmt"
	"strings"
)

// FormatVersion is the only msgFilterRules.dat version this package reads.
const FormatVersion = "9"

// RuleSet is the parsed content of a msgFilterRules.dat document.
type RuleSet struct {
	Version string
	Rules   []*Rule

	logging    bool
	loggingSet bool
}

// Logging reports the logging flag and whether the document declared it.
func (rs *RuleSet) Logging() (value bool, declared bool) {
	return rs.logging, rs.loggingSet
}

func (rs *RuleSet) setLogging(v bool) error {
	if rs.loggingSet {
		return fmt.Errorf("logging already declared")
	}
	rs.logging = v
	rs.loggingSet = true
	return nil
}

// Enabled returns the rules that are switched on, in document order.
func (rs *RuleSet) Enabled() []*Rule {
	var out []*Rule
	for _, r := range rs.Rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

func (rs *RuleSet) String() string {
	if len(rs.Rules) == 0 {
		return "(empty)"
	}
	chunks := make([]string, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		chunks = append(chunks, r.String())
	}
	return strings.Join(chunks, "\n")
}

// Rule is one named filter: a homogeneous condition group plus an ordered
// action list.
type Rule struct {
	Name       string
	Enabled    bool
	Type       Type
	Conditions ConditionGroup
	Actions    []Action
}

// TypeNames lists the canonical flag names the rule's type decomposes into.
func (r *Rule) TypeNames() []string {
	names, err := Decompose(r.Type)
	if err != nil {
		return nil
	}
	return names
}

func (r *Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	fmt.Fprintf(&sb, "\n - Enabled: %t", r.Enabled)
	sb.WriteString("\n - Type: " + strings.Join(r.TypeNames(), ", "))
	sb.WriteString("\n - Conditions:")
	if r.Conditions.Len() == 0 {
		sb.WriteString(" (none)")
	}
	for _, c := range r.Conditions.Conditions() {
		sb.WriteString("\n  - " + c.String())
	}
	sb.WriteString("\n - Actions:")
	if len(r.Actions) == 0 {
		sb.WriteString(" (none)")
	}
	for _, a := range r.Actions {
		sb.WriteString("\n  - " + a.String())
	}
	return sb.String()
}

// ConditionGroup holds conditions that all share one combinator.
type ConditionGroup struct {
	conditions []Condition
}

// Add appends c, rejecting it if its combinator differs from the group's.
func (g *ConditionGroup) Add(c Condition) error {
	if len(g.conditions) > 0 && g.conditions[0].Combinator != c.Combinator {
		return ErrMixedCombinators
	}
	g.conditions = append(g.conditions, c)
	return nil
}

// Conditions returns a copy of the group's members in insertion order.
func (g *ConditionGroup) Conditions() []Condition {
	out := make([]Condition, len(g.conditions))
	copy(out, g.conditions)
	return out
}

func (g *ConditionGroup) Len() int { return len(g.conditions) }

// Combinator is the shared combinator, or "" for an empty group.
func (g *ConditionGroup) Combinator() Combinator {
	if len(g.conditions) == 0 {
		return ""
	}
	return g.conditions[0].Combinator
}
