// Package report holds the document encoders and the artifact store. The
// encoders are pure: they take data in and return serialized bytes, and
// the caller decides where the bytes land.
package report

import (
	"bytes"
	"fmt"
	"html"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// HTMLEncoder renders one target's violation list as a standalone HTML
// document.
type HTMLEncoder struct{}

// NewHTMLEncoder creates an HTMLEncoder.
func NewHTMLEncoder() *HTMLEncoder { return &HTMLEncoder{} }

// Encode implements domain.ViolationEncoder.
func (e *HTMLEncoder) Encode(target domain.AuditTarget, violations []domain.Violation) ([]byte, error) {
	var b bytes.Buffer

	b.WriteString("<!doctype html>\n")
	b.WriteString("<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"utf-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "  <title>Accessibility Report — %s</title>\n", html.EscapeString(target.Name))
	b.WriteString("  <style>\n")
	b.WriteString("    :root { --bg: #f3f6fb; --surface: #ffffff; --border: #d7dee9; --text: #102033; --muted: #4f6278; --critical: #b91c1c; --serious: #c2410c; --moderate: #b45309; --minor: #1d4ed8; }\n")
	b.WriteString("    body { margin: 0; font-family: \"Segoe UI\", \"Helvetica Neue\", Arial, sans-serif; background: var(--bg); color: var(--text); line-height: 1.5; }\n")
	b.WriteString("    .page { max-width: 960px; margin: 0 auto; padding: 28px 20px 40px; }\n")
	b.WriteString("    .hero { background: linear-gradient(140deg, #102033, #1e3550); color: #f8fbff; border-radius: 12px; padding: 20px 24px; }\n")
	b.WriteString("    .hero .url { color: #9fb3c8; font-size: 0.9rem; word-break: break-all; }\n")
	b.WriteString("    .violation { background: var(--surface); border: 1px solid var(--border); border-radius: 10px; padding: 16px 20px; margin-top: 16px; }\n")
	b.WriteString("    .violation h2 { margin: 0 0 4px; font-size: 1.05rem; }\n")
	b.WriteString("    .impact { display: inline-block; padding: 1px 8px; border-radius: 9px; color: #fff; font-size: 0.75rem; text-transform: uppercase; }\n")
	b.WriteString("    .impact.critical { background: var(--critical); } .impact.serious { background: var(--serious); } .impact.moderate { background: var(--moderate); } .impact.minor { background: var(--minor); }\n")
	b.WriteString("    .node { border-left: 3px solid var(--border); margin: 8px 0; padding: 4px 12px; }\n")
	b.WriteString("    .node code { display: block; background: #eef2f8; border-radius: 6px; padding: 6px 8px; overflow-x: auto; font-size: 0.85rem; }\n")
	b.WriteString("    .locator { color: var(--muted); font-size: 0.85rem; }\n")
	b.WriteString("    .empty { background: var(--surface); border: 1px solid var(--border); border-radius: 10px; padding: 24px; margin-top: 16px; text-align: center; color: var(--muted); }\n")
	b.WriteString("    a { color: #1d4ed8; }\n")
	b.WriteString("  </style>\n</head>\n<body>\n<div class=\"page\">\n")

	b.WriteString("  <div class=\"hero\">\n")
	fmt.Fprintf(&b, "    <h1>%s</h1>\n", html.EscapeString(target.Name))
	fmt.Fprintf(&b, "    <div class=\"url\">%s</div>\n", html.EscapeString(target.URL))
	fmt.Fprintf(&b, "    <div>%d violation(s), %d distinct rule(s)</div>\n", len(violations), domain.DistinctRules(violations))
	b.WriteString("  </div>\n")

	if len(violations) == 0 {
		fmt.Fprintf(&b, "  <div class=\"empty\">%s</div>\n", html.EscapeString(domain.NoViolationsPlaceholder))
	}

	for i, v := range violations {
		b.WriteString("  <div class=\"violation\">\n")
		fmt.Fprintf(&b, "    <h2>%d. %s</h2>\n", i+1, html.EscapeString(v.RuleID))
		if v.Impact != "" {
			fmt.Fprintf(&b, "    <span class=\"impact %s\">%s</span>\n",
				html.EscapeString(v.Impact), html.EscapeString(v.Impact))
		}
		fmt.Fprintf(&b, "    <p>%s</p>\n", html.EscapeString(v.Description))
		if v.HelpURL != "" {
			fmt.Fprintf(&b, "    <p><a href=\"%s\">Rule documentation</a></p>\n", html.EscapeString(v.HelpURL))
		}
		for _, n := range v.Nodes {
			b.WriteString("    <div class=\"node\">\n")
			for _, loc := range n.Targets {
				fmt.Fprintf(&b, "      <div class=\"locator\">%s</div>\n", html.EscapeString(loc))
			}
			if n.HTML != "" {
				fmt.Fprintf(&b, "      <code>%s</code>\n", html.EscapeString(n.HTML))
			}
			b.WriteString("    </div>\n")
		}
		b.WriteString("  </div>\n")
	}

	b.WriteString("</div>\n</body>\n</html>\n")
	return b.Bytes(), nil
}
