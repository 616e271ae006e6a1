// Package axe adapts the axe-core JavaScript rule engine to the domain
// RuleEngine port. The engine script is resolved once at construction and
// injected into every audited page before axe.run is evaluated.
package axe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// CDNURL is the pinned fallback location for the engine script when no
// local copy is available.
const CDNURL = "https://cdn.jsdelivr.net/npm/axe-core@4.10.2/axe.min.js"

const localScript = "node_modules/axe-core/axe.min.js"

// Engine evaluates axe-core rules against a loaded page.
type Engine struct {
	source string
	log    *zap.SugaredLogger
}

// NewEngine resolves the axe-core script: an explicit scriptPath wins, then
// a local node_modules installation, then a one-time CDN fetch bounded by
// a 30 second timeout.
func NewEngine(scriptPath string, log *zap.SugaredLogger) (*Engine, error) {
	source, err := resolveScript(scriptPath, log)
	if err != nil {
		return nil, err
	}
	return &Engine{source: source, log: log}, nil
}

// NewEngineFromSource builds an engine over an already-loaded script.
func NewEngineFromSource(source string, log *zap.SugaredLogger) *Engine {
	return &Engine{source: source, log: log}
}

func resolveScript(scriptPath string, log *zap.SugaredLogger) (string, error) {
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return "", fmt.Errorf("reading axe script %s: %w", scriptPath, err)
		}
		return string(data), nil
	}

	if data, err := os.ReadFile(filepath.FromSlash(localScript)); err == nil {
		log.Debugw("using local axe-core script", "path", localScript)
		return string(data), nil
	}

	log.Infow("fetching axe-core script", "url", CDNURL)
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(CDNURL)
	if err != nil {
		return "", fmt.Errorf("fetching axe-core: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching axe-core: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading axe-core response: %w", err)
	}
	return string(data), nil
}

// runOptions is the axe.run options document. An explicit rule-id list
// restricts evaluation to exactly those rules; otherwise the tag set
// applies. Never both.
type runOptions struct {
	RunOnly runOnly `json:"runOnly"`
}

type runOnly struct {
	Type   string   `json:"type"`
	Values []string `json:"values"`
}

// Expression builds the JavaScript evaluated in the page: axe.run over the
// whole document, mapped down to the fields the domain model carries.
func Expression(selector domain.RuleSelector) (string, error) {
	opts := runOptions{RunOnly: runOnly{Type: "tag", Values: selector.Tags()}}
	if selector.Explicit() {
		opts.RunOnly = runOnly{Type: "rule", Values: selector.RuleIDs}
	}
	encoded, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("encoding axe options: %w", err)
	}

	return fmt.Sprintf(`axe.run(document, %s).then(r => r.violations.map(v => ({
		id: v.id,
		description: v.description,
		impact: v.impact,
		helpUrl: v.helpUrl,
		nodes: v.nodes.map(n => ({target: n.target, html: n.html}))
	})))`, encoded), nil
}

// Evaluate injects the engine script and runs it with the selector's
// filter, returning violations in the engine's reported order.
func (e *Engine) Evaluate(ctx context.Context, page domain.Page, selector domain.RuleSelector) ([]domain.Violation, error) {
	if err := page.AddScript(ctx, e.source); err != nil {
		return nil, fmt.Errorf("injecting axe-core: %w", err)
	}

	expr, err := Expression(selector)
	if err != nil {
		return nil, err
	}

	raw, err := page.Evaluate(ctx, expr)
	if err != nil {
		return nil, fmt.Errorf("running axe: %w", err)
	}

	violations, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	e.log.Debugw("axe evaluation settled", "violations", len(violations))
	return violations, nil
}

// rawViolation mirrors the shape produced by the evaluated expression.
// Node targets stay untyped because axe reports iframe-crossing locators
// as nested arrays.
type rawViolation struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	HelpURL     string `json:"helpUrl"`
	Nodes       []struct {
		Target []any  `json:"target"`
		HTML   string `json:"html"`
	} `json:"nodes"`
}

// Decode converts the driver's untyped evaluation result into domain
// violations, preserving order.
func Decode(result any) ([]domain.Violation, error) {
	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("re-encoding axe result: %w", err)
	}

	var raws []rawViolation
	if err := json.Unmarshal(encoded, &raws); err != nil {
		return nil, fmt.Errorf("decoding axe result: %w", err)
	}

	violations := make([]domain.Violation, 0, len(raws))
	for _, r := range raws {
		v := domain.Violation{
			RuleID:      r.ID,
			Description: r.Description,
			Impact:      r.Impact,
			HelpURL:     r.HelpURL,
		}
		for _, n := range r.Nodes {
			v.Nodes = append(v.Nodes, domain.ViolationNode{
				Targets: flattenLocators(n.Target),
				HTML:    n.HTML,
			})
		}
		violations = append(violations, v)
	}
	return violations, nil
}

// flattenLocators collects the locator strings from a target entry,
// descending into the nested arrays axe emits for frame chains.
func flattenLocators(entries []any) []string {
	var out []string
	for _, entry := range entries {
		switch v := entry.(type) {
		case string:
			out = append(out, v)
		case []any:
			out = append(out, flattenLocators(v)...)
		}
	}
	return out
}
