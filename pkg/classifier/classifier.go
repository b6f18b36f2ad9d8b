package classifier

import (
	"github.com/NeuralTrust/TakeALook/pkg/rules"
)

// Finding is one rule match on one line.
type Finding struct {
	Category   string         `json:"category"`
	Message    string         `json:"message"`
	LineNumber int            `json:"line_number"`
	Severity   rules.Severity `json:"severity"`
	Family     rules.Family   `json:"family"`
}

type Counts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	Critical int `json:"critical"`
}

func (c Counts) Total() int {
	return c.Low + c.Medium + c.Critical
}

func (c *Counts) add(s rules.Severity) {
	switch s {
	case rules.SeverityLow:
		c.Low++
	case rules.SeverityMedium:
		c.Medium++
	case rules.SeverityCritical:
		c.Critical++
	}
}

// Tally counts findings by severity.
func Tally(findings []Finding) Counts {
	var c Counts
	for _, f := range findings {
		c.add(f.Severity)
	}
	return c
}

type Result struct {
	Findings []Finding `json:"findings"`
	Counts   Counts    `json:"counts"`
	Lines    int       `json:"lines"`
}

// Categories returns the distinct categories in first-seen order.
func (r Result) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, f := range r.Findings {
		if _, ok := seen[f.Category]; ok {
			continue
		}
		seen[f.Category] = struct{}{}
		out = append(out, f.Category)
	}
	return out
}

// Classifier scans content against an ordered rule set. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	rules []rules.Rule
}

func New(ruleSet []rules.Rule) *Classifier {
	return &Classifier{rules: ruleSet}
}

var defaultClassifier = New(rules.All())

// Classify runs the built-in catalogue over content.
func Classify(content string) Result {
	return defaultClassifier.Classify(content)
}

// Classify tests every rule against every line. Findings come out by line
// number and, within a line, in rule order. Rules never suppress each other.
func (c *Classifier) Classify(content string) Result {
	result := Result{Findings: []Finding{}}

	lineNumber := 0
	forEachLine(content, func(line string) {
		lineNumber++
		for _, rule := range c.rules {
			if !rule.Match(line) {
				continue
			}
			result.Findings = append(result.Findings, Finding{
				Category:   rule.Category,
				Message:    rule.Render(line),
				LineNumber: lineNumber,
				Severity:   rule.Severity,
				Family:     rule.Family,
			})
			result.Counts.add(rule.Severity)
		}
	})
	result.Lines = lineNumber

	return result
}
