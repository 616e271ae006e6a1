package domain

import "time"

// NoViolationsPlaceholder is substituted for an absent violation listing so
// the aggregation step can never fail on a summary without one.
const NoViolationsPlaceholder = "No violations detected."

// ReportMeta carries the run-level metadata stamped into the combined
// report header.
type ReportMeta struct {
	GeneratedAt time.Time
	ToolVersion string
	CommitHash  string
}

// ReportSection is one target's slice of the combined report.
type ReportSection struct {
	Title          string
	TargetURL      string
	Duration       time.Duration
	ViolationCount int
	RuleCount      int
	Artifacts      []string
	Listing        string
	Failure        string
}

// CombinedReport is the terminal artifact of a run: a header, one section
// per audited target in resolution order, and the grand total duration.
type CombinedReport struct {
	Meta     ReportMeta
	Sections []ReportSection
	Total    time.Duration
}

// BuildCombinedReport folds the settled batch into the combined report.
// It is a pure transformation: sections preserve summary order, an absent
// listing becomes the placeholder, and the total is taken from the batch.
func BuildCombinedReport(batch BatchResult, meta ReportMeta) CombinedReport {
	report := CombinedReport{
		Meta:     meta,
		Sections: make([]ReportSection, 0, len(batch.Summaries)),
		Total:    batch.Total,
	}

	for _, s := range batch.Summaries {
		listing := s.Listing
		if listing == "" {
			listing = NoViolationsPlaceholder
		}
		report.Sections = append(report.Sections, ReportSection{
			Title:          s.Target.Name,
			TargetURL:      s.Target.URL,
			Duration:       s.Elapsed,
			ViolationCount: s.ViolationCount,
			RuleCount:      s.RuleCount,
			Artifacts:      s.Artifacts.Paths(),
			Listing:        listing,
			Failure:        s.Failure,
		})
	}

	return report
}
