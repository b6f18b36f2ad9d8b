package response

import "github.com/NeuralTrust/TakeALook/pkg/rules"

type RuleOutput struct {
	Family   rules.Family   `json:"family"`
	Category string         `json:"category"`
	Severity rules.Severity `json:"severity"`
	Title    string         `json:"title"`
	Pattern  string         `json:"pattern"`
}

type ListRulesOutput struct {
	Version  string         `json:"version"`
	Families []rules.Family `json:"families"`
	Rules    []RuleOutput   `json:"rules"`
}

func NewListRulesOutput(all []rules.Rule) ListRulesOutput {
	out := ListRulesOutput{
		Version:  rules.Version,
		Families: rules.Families(),
		Rules:    make([]RuleOutput, 0, len(all)),
	}
	for _, r := range all {
		out.Rules = append(out.Rules, RuleOutput{
			Family:   r.Family,
			Category: r.Category,
			Severity: r.Severity,
			Title:    r.Title,
			Pattern:  r.Pattern(),
		})
	}
	return out
}

type SuggestionsOutput struct {
	Category    string         `json:"category"`
	Title       string         `json:"title,omitempty"`
	Severity    rules.Severity `json:"severity,omitempty"`
	Suggestions []string       `json:"suggestions"`
}
