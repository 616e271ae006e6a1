package domain

import (
	"fmt"
	"strings"
	"time"
)

// Violation is one rule failure reported by the evaluation engine. It is
// read-only downstream of the audit runner.
type Violation struct {
	RuleID      string          `json:"rule_id"`
	Description string          `json:"description"`
	Impact      string          `json:"impact,omitempty"`
	HelpURL     string          `json:"help_url,omitempty"`
	Nodes       []ViolationNode `json:"nodes"`
}

// ViolationNode describes one affected document node. Targets holds the
// locator strings that resolve the node in the live page; HTML is the
// engine's source snippet for the node.
type ViolationNode struct {
	Targets []string `json:"targets"`
	HTML    string   `json:"html,omitempty"`
}

// DistinctRules counts the distinct rule ids across a violation list.
func DistinctRules(violations []Violation) int {
	seen := make(map[string]bool, len(violations))
	for _, v := range violations {
		seen[v.RuleID] = true
	}
	return len(seen)
}

// FormatListing renders the human-readable violation listing: one line per
// violation in original order, "index. rule-id - description".
func FormatListing(violations []Violation) string {
	if len(violations) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range violations {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s - %s", i+1, v.RuleID, v.Description)
	}
	return b.String()
}

// ArtifactSet holds the paths of the files generated for one target. Empty
// fields mean the artifact was not produced.
type ArtifactSet struct {
	HTMLReport string `json:"html_report,omitempty"`
	JSONReport string `json:"json_report,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
	Legend     string `json:"legend,omitempty"`
}

// Paths returns the produced artifact paths in a fixed order.
func (a ArtifactSet) Paths() []string {
	var paths []string
	for _, p := range []string{a.HTMLReport, a.JSONReport, a.Screenshot, a.Legend} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// AuditSummary is the outcome for one target, immutable after creation.
// A non-empty Failure marks a degenerate summary: the target could not be
// audited and every statistic is zero.
type AuditSummary struct {
	Target         AuditTarget   `json:"target"`
	Elapsed        time.Duration `json:"elapsed"`
	ViolationCount int           `json:"violation_count"`
	RuleCount      int           `json:"rule_count"`
	Artifacts      ArtifactSet   `json:"artifacts"`
	Listing        string        `json:"listing,omitempty"`
	Failure        string        `json:"failure,omitempty"`
}

// Failed reports whether this summary records an audit failure.
func (s AuditSummary) Failed() bool {
	return s.Failure != ""
}

// FailedSummary builds the degenerate summary for a target whose audit did
// not complete: zero elapsed time and no statistics.
func FailedSummary(target AuditTarget, err error) AuditSummary {
	s := AuditSummary{Target: target}
	if err != nil {
		s.Failure = err.Error()
	}
	return s
}

// BatchResult aggregates a settled audit batch: summaries in target
// resolution order plus the total duration across successful targets.
type BatchResult struct {
	Summaries []AuditSummary `json:"summaries"`
	Total     time.Duration  `json:"total"`
}

// Failures counts the degenerate summaries in the batch.
func (b BatchResult) Failures() int {
	n := 0
	for _, s := range b.Summaries {
		if s.Failed() {
			n++
		}
	}
	return n
}

// Violations sums the violation counts across the batch.
func (b BatchResult) Violations() int {
	n := 0
	for _, s := range b.Summaries {
		n += s.ViolationCount
	}
	return n
}
