package domain

import "fmt"

// WCAGLevel identifies the conformance level driving tag selection.
type WCAGLevel string

const (
	LevelA   WCAGLevel = "A"
	LevelAA  WCAGLevel = "AA"
	LevelAAA WCAGLevel = "AAA"
)

// ValidLevels enumerates all recognized conformance levels.
var ValidLevels = []WCAGLevel{LevelA, LevelAA, LevelAAA}

// BestPracticeTag is the axe rule category applied on top of every
// conformance level unless the caller opts out.
const BestPracticeTag = "best-practice"

// Tag sets grow with the level so that Tags(A) ⊆ Tags(AA) ⊆ Tags(AAA).
var levelTags = map[WCAGLevel][]string{
	LevelA:   {"wcag2a", "wcag21a"},
	LevelAA:  {"wcag2a", "wcag21a", "wcag2aa", "wcag21aa"},
	LevelAAA: {"wcag2a", "wcag21a", "wcag2aa", "wcag21aa", "wcag2aaa"},
}

// RuleSelector is the filter handed to the rule engine. It is built once
// from the run configuration and shared read-only across audit tasks.
// A non-empty RuleIDs list restricts evaluation to exactly those rules and
// the tag set is ignored entirely.
type RuleSelector struct {
	Level        WCAGLevel
	BestPractice bool
	RuleIDs      []string
}

// NewRuleSelector validates the level and builds a selector.
func NewRuleSelector(level WCAGLevel, bestPractice bool, ruleIDs []string) (RuleSelector, error) {
	if _, ok := levelTags[level]; !ok {
		return RuleSelector{}, fmt.Errorf("unknown WCAG level %q (want A, AA or AAA)", level)
	}
	return RuleSelector{Level: level, BestPractice: bestPractice, RuleIDs: ruleIDs}, nil
}

// Explicit reports whether an explicit rule-id list overrides the tag set.
func (s RuleSelector) Explicit() bool {
	return len(s.RuleIDs) > 0
}

// Tags returns the tag set derived from the WCAG level. The best-practice
// tag is always appended unless the selector opts out. Returns nil when an
// explicit rule list is active.
func (s RuleSelector) Tags() []string {
	if s.Explicit() {
		return nil
	}
	base := levelTags[s.Level]
	tags := make([]string, 0, len(base)+1)
	tags = append(tags, base...)
	if s.BestPractice {
		tags = append(tags, BestPracticeTag)
	}
	return tags
}
