// Package application wires the audit pipeline: one AuditService run per
// target, fanned out by the Orchestrator, with the Annotator handling the
// visual capture.
package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// AuditService audits a single target: isolated page, bounded navigation,
// rule evaluation, report artifacts, optional visual annotation.
type AuditService struct {
	session   domain.BrowserSession
	engine    domain.RuleEngine
	html      domain.ViolationEncoder
	json      domain.ViolationEncoder
	store     domain.ArtifactStore
	annotator *Annotator
	cfg       domain.RunConfig
	log       *zap.SugaredLogger
}

// NewAuditService creates an AuditService over the run's collaborators.
func NewAuditService(
	session domain.BrowserSession,
	engine domain.RuleEngine,
	htmlEnc domain.ViolationEncoder,
	jsonEnc domain.ViolationEncoder,
	store domain.ArtifactStore,
	annotator *Annotator,
	cfg domain.RunConfig,
	log *zap.SugaredLogger,
) *AuditService {
	return &AuditService{
		session:   session,
		engine:    engine,
		html:      htmlEnc,
		json:      jsonEnc,
		store:     store,
		annotator: annotator,
		cfg:       cfg,
		log:       log,
	}
}

// Run audits one target. Any failure comes back as a degenerate summary
// plus the error; the caller treats it as data, not a reason to abort
// sibling audits. The page and its browsing context are released on every
// exit path.
func (s *AuditService) Run(ctx context.Context, target domain.AuditTarget, selector domain.RuleSelector) (domain.AuditSummary, error) {
	start := time.Now()

	page, err := s.session.NewPage(ctx)
	if err != nil {
		err = fmt.Errorf("opening page for %s: %w", target.URL, err)
		return domain.FailedSummary(target, err), err
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			s.log.Debugw("closing page", "target", target.URL, "error", cerr)
		}
	}()

	if err := page.Navigate(ctx, target.URL, s.cfg.NavigationTimeout()); err != nil {
		return domain.FailedSummary(target, err), err
	}

	violations, err := s.engine.Evaluate(ctx, page, selector)
	if err != nil {
		err = fmt.Errorf("evaluating %s: %w", target.URL, err)
		return domain.FailedSummary(target, err), err
	}
	elapsed := time.Since(start)

	base := target.ArtifactBase(time.Now())
	artifacts, err := s.writeReports(target, violations, base)
	if err != nil {
		return domain.FailedSummary(target, err), err
	}

	if s.cfg.Capture && len(violations) > 0 {
		shot, legend, err := s.annotator.Annotate(ctx, page, violations, base)
		if err != nil {
			// The audit itself succeeded; losing the capture only costs
			// the optional artifacts.
			s.log.Warnw("annotation failed", "target", target.URL, "error", err)
		}
		artifacts.Screenshot = shot
		artifacts.Legend = legend
	}

	s.log.Infow("target audited",
		"target", target.URL,
		"violations", len(violations),
		"rules", domain.DistinctRules(violations),
		"elapsed", elapsed,
	)

	return domain.AuditSummary{
		Target:         target,
		Elapsed:        elapsed,
		ViolationCount: len(violations),
		RuleCount:      domain.DistinctRules(violations),
		Artifacts:      artifacts,
		Listing:        domain.FormatListing(violations),
	}, nil
}

// writeReports encodes and persists the per-target HTML and JSON reports.
func (s *AuditService) writeReports(target domain.AuditTarget, violations []domain.Violation, base string) (domain.ArtifactSet, error) {
	var set domain.ArtifactSet

	htmlBytes, err := s.html.Encode(target, violations)
	if err != nil {
		return set, fmt.Errorf("encoding HTML report: %w", err)
	}
	if set.HTMLReport, err = s.store.Write(base+".html", htmlBytes); err != nil {
		return set, err
	}

	jsonBytes, err := s.json.Encode(target, violations)
	if err != nil {
		return set, fmt.Errorf("encoding JSON report: %w", err)
	}
	if set.JSONReport, err = s.store.Write(base+".json", jsonBytes); err != nil {
		return set, err
	}

	return set, nil
}
