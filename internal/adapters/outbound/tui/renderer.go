// Package tui renders the settled audit batch for the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderBatch renders the combined batch outcome: a header box, one block
// per target in resolution order, and a totals footer.
func RenderBatch(batch domain.BatchResult, reportPath string) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("a11y-audit")
	subtitle := dimStyle.Render("Accessibility Audit")
	counts := fmt.Sprintf("%d target(s)   %d violation(s)", len(batch.Summaries), batch.Violations())
	countsStyled := titleStyle.Render(counts)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + countsStyled))
	b.WriteString("\n\n")

	// ── Targets ──
	for _, s := range batch.Summaries {
		renderSummary(&b, s)
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Footer ──
	b.WriteString("  " + titleStyle.Render("Total audit time") + "  " + formatDuration(batch.Total))
	if failures := batch.Failures(); failures > 0 {
		b.WriteString("\n  " + failStyle.Render(fmt.Sprintf("%d target(s) failed", failures)))
	}
	if reportPath != "" {
		b.WriteString("\n  " + dimStyle.Render("Combined report: "+reportPath))
	}
	b.WriteString("\n")

	return b.String()
}

func renderSummary(b *strings.Builder, s domain.AuditSummary) {
	b.WriteString("  " + titleStyle.Render(s.Target.Name) + "\n")
	b.WriteString("  " + dimStyle.Render(s.Target.URL) + "\n")

	if s.Failed() {
		b.WriteString("  " + failStyle.Render("✗ audit failed") + "  " + dimStyle.Render(s.Failure) + "\n")
		return
	}

	status := passStyle.Render("✓ clean")
	if s.ViolationCount > 0 {
		status = warnStyle.Render(fmt.Sprintf("● %d violation(s), %d rule(s)", s.ViolationCount, s.RuleCount))
	}
	b.WriteString("  " + status + "  " + dimStyle.Render(formatDuration(s.Elapsed)) + "\n")

	for _, path := range s.Artifacts.Paths() {
		b.WriteString("  " + faintStyle.Render("↳ "+path) + "\n")
	}
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
