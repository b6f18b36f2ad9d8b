package rules

import (
	"regexp"
	"strings"
)

// Version identifies the rule table. Bump it whenever a rule is added,
// removed or changes category, severity or title.
const Version = "2025.1"

type Family string

const (
	FamilyHTTP        Family = "http"
	FamilyApplication Family = "application"
	FamilySecurity    Family = "security"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityCritical Severity = "critical"
)

// Weight orders severities, higher is more severe.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

func (s Severity) Valid() bool {
	return s.Weight() > 0
}

// Rule maps a line pattern to a category and severity.
type Rule struct {
	Family   Family
	Category string
	Severity Severity
	Title    string
	source   string
	pattern  *regexp.Regexp
	// substring every matching line contains, checked before the pattern
	literal string
}

func (r Rule) Match(line string) bool {
	if r.literal != "" && !strings.Contains(line, r.literal) {
		return false
	}
	return r.pattern.MatchString(line)
}

// Pattern is the rule expression as declared, before folding.
func (r Rule) Pattern() string {
	return r.source
}

// Render builds the finding message for a matching line. HTTP rules prefix
// the trimmed line with the status title.
func (r Rule) Render(line string) string {
	trimmed := strings.TrimSpace(line)
	if r.Family == FamilyHTTP {
		return r.Title + ": " + trimmed
	}
	return trimmed
}

func newRule(family Family, category string, severity Severity, title, expr string) Rule {
	return Rule{
		Family:   family,
		Category: category,
		Severity: severity,
		Title:    title,
		source:   expr,
		pattern:  regexp.MustCompile(fold(expr)),
	}
}

// whitespace is what \s stands for in a rule: ASCII whitespace including \v,
// no-break space and the Unicode space separators.
const whitespace = `[\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

// fold rewrites expr so a leading (?i) pairs ASCII letters with their other
// case only. The Kelvin sign never matches K and the long s never matches S.
// Escaped \s becomes whitespace.
func fold(expr string) string {
	insensitive := strings.HasPrefix(expr, "(?i)")
	expr = strings.TrimPrefix(expr, "(?i)")

	var b strings.Builder
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '\\' && i+1 < len(expr):
			i++
			if expr[i] == 's' {
				b.WriteString(whitespace)
				continue
			}
			b.WriteByte(c)
			b.WriteByte(expr[i])
		case insensitive && c >= 'A' && c <= 'Z':
			b.WriteByte('[')
			b.WriteByte(c)
			b.WriteByte(c + 'a' - 'A')
			b.WriteByte(']')
		case insensitive && c >= 'a' && c <= 'z':
			b.WriteByte('[')
			b.WriteByte(c - 'a' + 'A')
			b.WriteByte(c)
			b.WriteByte(']')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func newStatusRule(code string, severity Severity, title string) Rule {
	r := newRule(FamilyHTTP, code, severity, title, `\s`+code+`\s`)
	r.literal = code
	return r
}

var httpRules = []Rule{
	newStatusRule("400", SeverityMedium, "Bad Request"),
	newStatusRule("401", SeverityCritical, "Unauthorized Access"),
	newStatusRule("403", SeverityCritical, "Forbidden Access"),
	newStatusRule("404", SeverityMedium, "Resource Not Found"),
	newStatusRule("500", SeverityCritical, "Internal Server Error"),
	newStatusRule("502", SeverityCritical, "Bad Gateway"),
	newStatusRule("503", SeverityCritical, "Service Unavailable"),
	newStatusRule("504", SeverityCritical, "Gateway Timeout"),
}

var applicationRules = []Rule{
	newRule(FamilyApplication, "APPLICATION_ERROR", SeverityMedium, "Application Error", `(?i)ERROR`),
	newRule(FamilyApplication, "FATAL_ERROR", SeverityCritical, "Fatal Error", `(?i)FATAL`),
	newRule(FamilyApplication, "WARNING", SeverityLow, "Warning", `(?i)WARN(ING)?`),
	newRule(FamilyApplication, "EXCEPTION", SeverityMedium, "Exception", `(?i)EXCEPTION`),
	newRule(FamilyApplication, "TIMEOUT", SeverityMedium, "Timeout", `(?i)TIMEOUT`),
	newRule(FamilyApplication, "CONNECTION_ERROR", SeverityMedium, "Connection Error", `(?i)CONNECTION\s+(FAILED|REFUSED|RESET)`),
	newRule(FamilyApplication, "DATABASE_ERROR", SeverityCritical, "Database Error", `(?i)DATABASE\s+ERROR`),
	newRule(FamilyApplication, "MEMORY_ERROR", SeverityCritical, "Out Of Memory", `(?i)OUT\s+OF\s+MEMORY`),
}

var securityRules = []Rule{
	newRule(FamilySecurity, "SECURITY_VIOLATION", SeverityCritical, "Security Violation", `(?i)SECURITY\s+VIOLATION`),
	newRule(FamilySecurity, "FAILED_LOGIN", SeverityMedium, "Failed Login", `(?i)FAILED\s+LOGIN`),
	newRule(FamilySecurity, "BRUTE_FORCE", SeverityCritical, "Brute Force", `(?i)BRUTE\s+FORCE`),
	newRule(FamilySecurity, "SQL_INJECTION", SeverityCritical, "SQL Injection", `(?i)SQL\s+INJECTION`),
	newRule(FamilySecurity, "XSS_ATTACK", SeverityCritical, "XSS Attack", `(?i)XSS\s+ATTACK`),
}

// families fixes the evaluation order of the groups.
var families = []struct {
	family Family
	rules  []Rule
}{
	{FamilyHTTP, httpRules},
	{FamilyApplication, applicationRules},
	{FamilySecurity, securityRules},
}

var catalogue = buildCatalogue()

func buildCatalogue() []Rule {
	var all []Rule
	for _, f := range families {
		all = append(all, f.rules...)
	}
	return all
}

// All returns every rule: HTTP, then application, then security, each
// group in table order. The returned slice is a copy.
func All() []Rule {
	out := make([]Rule, len(catalogue))
	copy(out, catalogue)
	return out
}

// Families returns the rule groups in evaluation order.
func Families() []Family {
	out := make([]Family, 0, len(families))
	for _, f := range families {
		out = append(out, f.family)
	}
	return out
}

// Lookup finds the rule for a category.
func Lookup(category string) (Rule, bool) {
	for _, r := range catalogue {
		if r.Category == category {
			return r, true
		}
	}
	return Rule{}, false
}
