package model

// RuleStore holds the loaded rules in file discovery order.
type RuleStore struct {
	rules []*MockRule
}

func NewRuleStore(rules []*MockRule) *RuleStore {
	return &RuleStore{rules: rules}
}

func (s *RuleStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

func (s *RuleStore) Rules() []*MockRule {
	if s == nil {
		return nil
	}
	return append([]*MockRule(nil), s.rules...)
}

// MatchResult is the variant served for a request and the rule it came from.
type MatchResult struct {
	Rule    *MockRule
	Variant *ResponseVariant
	Index   int
}

// Match serves the next variant of the first rule matching method and url.
// Earlier rules win; there is no specificity ranking.
func (s *RuleStore) Match(method, url string) (*MatchResult, error) {
	if s == nil {
		return nil, ErrNoMatch
	}
	for _, rule := range s.rules {
		if !rule.Matches(method, url) {
			continue
		}
		variant, idx := rule.Next()
		return &MatchResult{Rule: rule, Variant: variant, Index: idx}, nil
	}
	return nil, ErrNoMatch
}

func (s *RuleStore) Summaries() []RuleSummary {
	summaries := make([]RuleSummary, 0, s.Len())
	for _, rule := range s.Rules() {
		summaries = append(summaries, rule.Summary())
	}
	return summaries
}
