package application

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// badgeStyle is installed once per page. The id guard keeps a second
// installation from duplicating the sheet.
const badgeStyle = `(() => {
	if (document.getElementById('a11y-audit-style')) return;
	const s = document.createElement('style');
	s.id = 'a11y-audit-style';
	s.textContent = ` + "`" + `
		.a11y-audit-flag { outline: 3px solid #ef4444 !important; outline-offset: 1px; }
		.a11y-audit-badge {
			position: absolute; z-index: 2147483647;
			background: #ef4444; color: #ffffff;
			font: bold 12px/18px sans-serif; text-align: center;
			min-width: 18px; height: 18px; border-radius: 9px;
			margin: -9px 0 0 -9px; padding: 0 3px;
		}` + "`" + `;
	document.head.appendChild(s);
})()`

// Annotator applies the visual violation markers to a live page, captures
// the annotated document, and emits the numbering legend.
type Annotator struct {
	store domain.ArtifactStore
	log   *zap.SugaredLogger
}

// NewAnnotator creates an Annotator writing into store.
func NewAnnotator(store domain.ArtifactStore, log *zap.SugaredLogger) *Annotator {
	return &Annotator{store: store, log: log}
}

// Annotate numbers the violations by first appearance, badges every
// matching element that does not already carry a badge, captures one
// full-document screenshot after all marks are applied, and writes the
// screenshot plus the legend under base. It mutates the live document and
// must only be called once the page's evaluation is complete.
//
// An element flagged by two violations keeps the first-processed
// violation's number; the legend still lists every rule. A locator that
// matches nothing, or that the document rejects, is skipped without error.
func (a *Annotator) Annotate(ctx context.Context, page domain.Page, violations []domain.Violation, base string) (string, string, error) {
	numbering := domain.AssignNumbers(violations)

	if _, err := page.Evaluate(ctx, badgeStyle); err != nil {
		return "", "", fmt.Errorf("installing marker style: %w", err)
	}

	for _, v := range violations {
		number, ok := numbering.NumberFor(v.RuleID)
		if !ok {
			continue
		}
		for _, node := range v.Nodes {
			for _, locator := range node.Targets {
				expr, err := markExpression(locator, number)
				if err != nil {
					a.log.Debugw("locator skipped", "locator", locator, "error", err)
					continue
				}
				if _, err := page.Evaluate(ctx, expr); err != nil {
					a.log.Debugw("locator skipped", "locator", locator, "error", err)
				}
			}
		}
	}

	shot, err := page.Screenshot(ctx)
	if err != nil {
		return "", "", fmt.Errorf("capturing annotated page: %w", err)
	}
	shotPath, err := a.store.Write(base+".png", shot)
	if err != nil {
		return "", "", err
	}

	legendPath, err := a.store.Write(base+"-legend.txt", []byte(numbering.LegendText()+"\n"))
	if err != nil {
		return shotPath, "", err
	}

	a.log.Debugw("annotation captured", "rules", numbering.Len(), "screenshot", shotPath)
	return shotPath, legendPath, nil
}

// markExpression builds the script that badges every element matched by
// locator with number. Elements already carrying a badge are left alone,
// and an invalid or unmatched locator resolves to zero marks rather than
// an error. The badge span goes on document.body, positioned over the
// element's top-left corner: replaced elements like img and input never
// render children, so the badge cannot live inside the element itself.
// The locator is JSON-escaped into the script.
func markExpression(locator string, number int) (string, error) {
	selector, err := json.Marshal(locator)
	if err != nil {
		return "", fmt.Errorf("escaping locator %q: %w", locator, err)
	}

	return fmt.Sprintf(`(() => {
	let els;
	try { els = document.querySelectorAll(%s); } catch (e) { return 0; }
	let marked = 0;
	for (const el of els) {
		if (el.dataset.a11yBadge) continue;
		el.dataset.a11yBadge = '%d';
		el.classList.add('a11y-audit-flag');
		const rect = el.getBoundingClientRect();
		const badge = document.createElement('span');
		badge.className = 'a11y-audit-badge';
		badge.textContent = '%d';
		badge.style.left = (rect.left + window.scrollX) + 'px';
		badge.style.top = (rect.top + window.scrollY) + 'px';
		document.body.appendChild(badge);
		marked++;
	}
	return marked;
})()`, selector, number, number), nil
}
