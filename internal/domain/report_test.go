package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anditpl/a11y-audit/internal/domain"
)

func TestBuildCombinedReport_SectionPerTarget(t *testing.T) {
	a := domain.NormalizeTarget("a.html", "/work")
	b := domain.NormalizeTarget("b.html", "/work")
	batch := domain.BatchResult{
		Summaries: []domain.AuditSummary{
			{
				Target:         a,
				Elapsed:        2 * time.Second,
				ViolationCount: 2,
				RuleCount:      2,
				Listing:        "1. button-name - Buttons must have discernible text\n2. image-alt - Images must have alternate text",
				Artifacts:      domain.ArtifactSet{HTMLReport: "a-1.html", JSONReport: "a-1.json"},
			},
			{Target: b, Elapsed: 1 * time.Second},
		},
		Total: 3 * time.Second,
	}

	report := domain.BuildCombinedReport(batch, domain.ReportMeta{ToolVersion: "dev"})

	require.Len(t, report.Sections, 2)
	assert.Equal(t, "a", report.Sections[0].Title)
	assert.Contains(t, report.Sections[0].Listing, "1. button-name")
	assert.Contains(t, report.Sections[0].Listing, "2. image-alt")
	assert.Equal(t, []string{"a-1.html", "a-1.json"}, report.Sections[0].Artifacts)
	assert.Equal(t, domain.NoViolationsPlaceholder, report.Sections[1].Listing)
	assert.Equal(t, 3*time.Second, report.Total)
}

func TestBuildCombinedReport_PreservesOrder(t *testing.T) {
	batch := domain.BatchResult{
		Summaries: []domain.AuditSummary{
			{Target: domain.NormalizeTarget("z.html", ".")},
			{Target: domain.NormalizeTarget("a.html", ".")},
			{Target: domain.NormalizeTarget("m.html", ".")},
		},
	}

	report := domain.BuildCombinedReport(batch, domain.ReportMeta{})

	titles := make([]string, 0, len(report.Sections))
	for _, s := range report.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"z", "a", "m"}, titles)
}

func TestBuildCombinedReport_FailedTargetSection(t *testing.T) {
	batch := domain.BatchResult{
		Summaries: []domain.AuditSummary{
			domain.FailedSummary(domain.NormalizeTarget("https://down.example.com", "."), assertErr("navigation timeout")),
		},
	}

	report := domain.BuildCombinedReport(batch, domain.ReportMeta{})

	require.Len(t, report.Sections, 1)
	assert.Equal(t, "navigation timeout", report.Sections[0].Failure)
	assert.Zero(t, report.Sections[0].Duration)
	assert.Equal(t, domain.NoViolationsPlaceholder, report.Sections[0].Listing)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
