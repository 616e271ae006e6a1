package domain

import (
	"fmt"
	"strings"
)

// LegendEntry maps one assigned number to its rule id and description.
type LegendEntry struct {
	Number      int
	RuleID      string
	Description string
}

// ViolationNumbering is the stable rule-id → number mapping for one target
// audit. Numbers are 1-based and assigned in first-appearance order, so the
// same violation list always reproduces the same numbers. A numbering is
// built once per target and never reused across targets.
type ViolationNumbering struct {
	numbers map[string]int
	entries []LegendEntry
}

// AssignNumbers scans violations in original order and gives each rule id
// not yet seen the next unused number. The first violation's description
// wins for the legend.
func AssignNumbers(violations []Violation) *ViolationNumbering {
	n := &ViolationNumbering{numbers: make(map[string]int)}
	for _, v := range violations {
		if _, seen := n.numbers[v.RuleID]; seen {
			continue
		}
		num := len(n.entries) + 1
		n.numbers[v.RuleID] = num
		n.entries = append(n.entries, LegendEntry{
			Number:      num,
			RuleID:      v.RuleID,
			Description: v.Description,
		})
	}
	return n
}

// NumberFor returns the number assigned to a rule id.
func (n *ViolationNumbering) NumberFor(ruleID string) (int, bool) {
	num, ok := n.numbers[ruleID]
	return num, ok
}

// Len returns the count of distinct numbered rules.
func (n *ViolationNumbering) Len() int {
	return len(n.entries)
}

// Entries returns the legend entries in numbering order.
func (n *ViolationNumbering) Entries() []LegendEntry {
	return n.entries
}

// LegendText renders the legend: one line per distinct rule in numbering
// order, "number: rule-id - description".
func (n *ViolationNumbering) LegendText() string {
	var b strings.Builder
	for i, e := range n.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %s - %s", e.Number, e.RuleID, e.Description)
	}
	return b.String()
}
