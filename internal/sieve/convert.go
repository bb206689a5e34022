package sieve

import (
	"fmt"
	"strings"
	"time"

	"tb2gmail/internal/thunderbird"
)

const (
	thunderbirdDate = "2-Jan-2006"
	sieveDate       = "2006-01-02"
)

// ConvertRuleSet renders every enabled rule of rs as its own Sieve script.
func ConvertRuleSet(rs *thunderbird.RuleSet) []SieveScript {
	if rs == nil {
		return nil
	}
	var scripts []SieveScript
	for _, r := range rs.Enabled() {
		scripts = append(scripts, ConvertRule(r))
	}
	return scripts
}

// ConvertRule renders r as a single if block. Conditions Sieve cannot
// express become "false" so the block never fires on a guess.
func ConvertRule(r *thunderbird.Rule) SieveScript {
	exts := extSet{}
	var sb strings.Builder

	if r.Conditions.Len() == 0 {
		sb.WriteString("# Rule has no conditions; nothing to match.\n")
		return SieveScript{Name: r.Name, Body: sb.String()}
	}

	sb.WriteString("if ")
	sb.WriteString(buildConditions(&r.Conditions, exts))
	sb.WriteString(" {\n")

	lines := buildActions(r.Actions, exts)
	if len(lines) == 0 {
		sb.WriteString("    # no actions defined in original rule\n")
	}
	for _, l := range lines {
		sb.WriteString("    ")
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	return SieveScript{Name: r.Name, Requires: exts.sorted(), Body: sb.String()}
}

// buildConditions joins the group with allof or anyof, one test per line.
func buildConditions(g *thunderbird.ConditionGroup, exts extSet) string {
	conds := g.Conditions()
	if len(conds) == 1 {
		return buildSingleCondition(conds[0], exts)
	}

	join := "allof"
	if g.Combinator() == thunderbird.Or {
		join = "anyof"
	}

	var b strings.Builder
	b.WriteString(join)
	b.WriteString(" (\n")
	for i, c := range conds {
		b.WriteString("    ")
		b.WriteString(buildSingleCondition(c, exts))
		if i < len(conds)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

func buildSingleCondition(c thunderbird.Condition, exts extSet) string {
	if c.Field == thunderbird.FieldDate {
		return dateCondition(c, exts)
	}

	field, ok := mapField(c)
	if !ok {
		return unsupported(c)
	}
	op, negative, pattern, ok := mapComparator(c.Comparator, c.Search)
	if !ok {
		return unsupported(c)
	}

	var cond string
	if field.kind == fieldBody {
		exts.add("body")
		cond = fmt.Sprintf("body %s %s", op, quoteString(pattern))
	} else {
		cond = fmt.Sprintf("%s %s %s %s", field.test(), op, field.headerExpr(), quoteString(pattern))
	}
	if negative {
		cond = "not " + cond
	}
	return cond
}

func dateCondition(c thunderbird.Condition, exts extSet) string {
	if c.Comparator != thunderbird.IsBefore {
		return unsupported(c)
	}
	d, err := time.Parse(thunderbirdDate, c.Search)
	if err != nil {
		return falseWithComment(fmt.Sprintf("invalid date %q", c.Search))
	}
	exts.add("date", "relational")
	return fmt.Sprintf(`date :value "lt" "date" "date" %s`, quoteString(d.Format(sieveDate)))
}

func unsupported(c thunderbird.Condition) string {
	return falseWithComment("unsupported condition: " + c.String())
}

func falseWithComment(msg string) string {
	return "false /* " + strings.ReplaceAll(msg, "*/", "* /") + " */"
}

// ─────────────────────────── Field mapping helpers ─────────────────────────

type fieldKind int

const (
	fieldHeader fieldKind = iota
	fieldAddress
	fieldBody
)

type fieldInfo struct {
	kind    fieldKind
	headers []string
}

func (f fieldInfo) test() string {
	if f.kind == fieldAddress {
		return "address"
	}
	return "header"
}

func (f fieldInfo) headerExpr() string {
	if len(f.headers) == 1 {
		return quoteString(f.headers[0])
	}
	var parts []string
	for _, h := range f.headers {
		parts = append(parts, quoteString(h))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func mapField(c thunderbird.Condition) (fieldInfo, bool) {
	switch c.Field {
	case thunderbird.FieldFrom:
		return fieldInfo{kind: fieldAddress, headers: []string{"From"}}, true
	case thunderbird.FieldTo:
		return fieldInfo{kind: fieldAddress, headers: []string{"To"}}, true
	case thunderbird.FieldCc:
		return fieldInfo{kind: fieldAddress, headers: []string{"Cc"}}, true
	case thunderbird.FieldToOrCc:
		return fieldInfo{kind: fieldAddress, headers: []string{"To", "Cc"}}, true
	case thunderbird.FieldAllAddresses:
		return fieldInfo{kind: fieldAddress, headers: []string{"From", "To", "Cc", "Bcc"}}, true
	case thunderbird.FieldSubject:
		return fieldInfo{kind: fieldHeader, headers: []string{"Subject"}}, true
	case thunderbird.FieldCustom:
		return fieldInfo{kind: fieldHeader, headers: []string{c.Header}}, true
	case thunderbird.FieldBody:
		return fieldInfo{kind: fieldBody}, true
	}
	return fieldInfo{}, false
}

// mapComparator maps a comparator to (sieveOp, negative, pattern).
func mapComparator(cmp thunderbird.Comparator, val string) (op string, negative bool, pattern string, ok bool) {
	switch cmp {
	case thunderbird.Contains:
		return ":contains", false, val, true
	case thunderbird.DoesNotContain:
		return ":contains", true, val, true
	case thunderbird.Is:
		return ":is", false, val, true
	case thunderbird.IsNot:
		return ":is", true, val, true
	case thunderbird.BeginsWith:
		return ":matches", false, escapeWildcards(val) + "*", true
	case thunderbird.EndsWith:
		return ":matches", false, "*" + escapeWildcards(val), true
	}
	return "", false, "", false
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// escapeWildcards makes * and ? literal inside a :matches key.
func escapeWildcards(s string) string {
	return wildcardEscaper.Replace(s)
}

// ─────────────────────────── Actions ─────────────────────────

// buildActions returns one statement per action. Flag changes come first
// so they apply to the copies that fileinto and redirect make.
func buildActions(actions []thunderbird.Action, exts extSet) []string {
	var flags, rest []string
	addflag := func(flag string) {
		exts.add("imap4flags")
		flags = append(flags, fmt.Sprintf("addflag %s;", quoteString(flag)))
	}

	for _, a := range actions {
		switch a := a.(type) {
		case thunderbird.MarkRead:
			addflag(`\Seen`)
		case thunderbird.MarkFlagged:
			addflag(`\Flagged`)
		case thunderbird.AddTag:
			addflag(a.Tag)
		case thunderbird.JunkScore:
			switch a.Score {
			case 100:
				addflag("$Junk")
			case 0:
				addflag("$NotJunk")
			default:
				rest = append(rest, fmt.Sprintf("# junk score %d not converted", a.Score))
			}
		case thunderbird.MoveToFolder:
			exts.add("fileinto")
			rest = append(rest, fmt.Sprintf("fileinto %s;", quoteString(a.Folder.Path())))
		case thunderbird.CopyToFolder:
			exts.add("fileinto", "copy")
			rest = append(rest, fmt.Sprintf("fileinto :copy %s;", quoteString(a.Folder.Path())))
		case thunderbird.Delete:
			rest = append(rest, "discard;")
		case thunderbird.Forward:
			exts.add("copy")
			rest = append(rest, fmt.Sprintf("redirect :copy %s;", quoteString(a.Recipient)))
		case thunderbird.Reply:
			rest = append(rest, fmt.Sprintf("# reply using %q not converted", a.ModelRef))
		case thunderbird.StopExecution:
			rest = append(rest, "stop;")
		default:
			rest = append(rest, fmt.Sprintf("# unsupported action %q", a.String()))
		}
	}
	return append(flags, rest...)
}

// quoteString escapes a Go string into a Sieve double-quoted string
func quoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
