package domain

import (
	"context"
	"time"
)

// BrowserSession is the long-lived automation session shared by the whole
// batch. It is read-only from each audit task's perspective: tasks only use
// it to spawn their own isolated page.
type BrowserSession interface {
	// NewPage opens a fresh browsing context and page that share no
	// cookies or state with any other page from this session.
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is one isolated live page. Callers must Close it on every exit path.
type Page interface {
	// Navigate loads url and waits for network quiescence, bounded by
	// timeout. There are no retries.
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	// AddScript injects a script source into the current document.
	AddScript(ctx context.Context, source string) error
	// Evaluate runs a JavaScript expression against the live document and
	// returns its JSON-compatible result.
	Evaluate(ctx context.Context, expression string) (any, error)
	// Screenshot captures the full document as an image.
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// RuleEngine evaluates accessibility rules against a loaded page and
// returns the ordered violation list.
type RuleEngine interface {
	Evaluate(ctx context.Context, page Page, selector RuleSelector) ([]Violation, error)
}

// ViolationEncoder turns one target's violation list into a serialized
// document. Encoders write to nothing themselves; the caller persists the
// returned bytes.
type ViolationEncoder interface {
	Encode(target AuditTarget, violations []Violation) ([]byte, error)
}

// ReportEncoder turns the combined report into its final serialized form.
type ReportEncoder interface {
	Encode(report CombinedReport) ([]byte, error)
}

// ArtifactStore persists generated artifact bytes under the run's output
// directory and returns the path the artifact landed at.
type ArtifactStore interface {
	Write(name string, data []byte) (string, error)
}

// TargetResolver assembles the ordered audit target list for a run.
type TargetResolver interface {
	Resolve(args []string) []AuditTarget
}

// AuditRunner audits a single target. Implementations must isolate
// failures: a returned error never aborts sibling audits.
type AuditRunner interface {
	Run(ctx context.Context, target AuditTarget, selector RuleSelector) (AuditSummary, error)
}

// CommitInfo resolves version-control metadata for report headers.
type CommitInfo interface {
	CommitHash(path string) (string, error)
}
