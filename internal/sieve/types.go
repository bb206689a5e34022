package sieve

import (
	"fmt"
	"sort"
	"strings"
)

// SieveScript represents a single output sieve file
type SieveScript struct {
	Name     string
	Requires []string // extensions, sorted and unique
	Body     string
}

// Content renders the require header followed by the body.
func (s SieveScript) Content() string {
	var sb strings.Builder
	if len(s.Requires) > 0 {
		quoted := make([]string, len(s.Requires))
		for i, r := range s.Requires {
			quoted[i] = fmt.Sprintf("%q", r)
		}
		sb.WriteString("require [")
		sb.WriteString(strings.Join(quoted, ", "))
		sb.WriteString("];\n\n")
	}
	sb.WriteString(s.Body)
	return sb.String()
}

// extSet collects the extensions a script needs.
type extSet map[string]bool

func (e extSet) add(names ...string) {
	for _, n := range names {
		e[n] = true
	}
}

func (e extSet) merge(o extSet) {
	for n := range o {
		e[n] = true
	}
}

func (e extSet) sorted() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	for n := range e {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
