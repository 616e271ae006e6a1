package application

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// Orchestrator fans one audit task out per target and waits for the whole
// batch to settle. Tasks share nothing mutable: the selector is read-only
// and every runner invocation opens its own browsing context.
type Orchestrator struct {
	runner domain.AuditRunner
	log    *zap.SugaredLogger
}

// NewOrchestrator creates an Orchestrator over one audit runner.
func NewOrchestrator(runner domain.AuditRunner, log *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{runner: runner, log: log}
}

// RunBatch audits every target concurrently and returns once all have
// settled. Summaries preserve target-resolution order regardless of
// completion order; a failed target contributes a degenerate summary and
// zero duration, and never blocks or aborts its siblings. There are no
// retries.
func (o *Orchestrator) RunBatch(ctx context.Context, targets []domain.AuditTarget, selector domain.RuleSelector) domain.BatchResult {
	o.log.Infow("starting audit batch", "targets", len(targets), "level", selector.Level)

	summaries := make([]domain.AuditSummary, len(targets))
	var wg sync.WaitGroup

	for i, target := range targets {
		wg.Add(1)
		go func(i int, target domain.AuditTarget) {
			defer wg.Done()
			summary, err := o.runner.Run(ctx, target, selector)
			if err != nil {
				o.log.Warnw("target audit failed", "target", target.URL, "error", err)
				summary = domain.FailedSummary(target, err)
			}
			summaries[i] = summary
		}(i, target)
	}

	wg.Wait()

	var total time.Duration
	for _, s := range summaries {
		if !s.Failed() {
			total += s.Elapsed
		}
	}

	batch := domain.BatchResult{Summaries: summaries, Total: total}
	o.log.Infow("audit batch settled", "targets", len(targets), "failures", batch.Failures(), "total", total)
	return batch
}
