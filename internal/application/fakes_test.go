package application_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// fakePage records interactions and plays back configured behavior.
type fakePage struct {
	mu          sync.Mutex
	navigated   []string
	scripts     []string
	expressions []string
	shotTaken   bool

	navigateErr error
	evalErrFor  string // expressions containing this substring fail
	shot        []byte
	shotErr     error
	closed      bool
}

func (p *fakePage) Navigate(_ context.Context, url string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.navigated = append(p.navigated, url)
	return p.navigateErr
}

func (p *fakePage) AddScript(_ context.Context, source string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts = append(p.scripts, source)
	return nil
}

func (p *fakePage) Evaluate(_ context.Context, expression string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.evalErrFor != "" && strings.Contains(expression, p.evalErrFor) {
		return nil, errors.New("evaluation rejected")
	}
	p.expressions = append(p.expressions, expression)
	return nil, nil
}

func (p *fakePage) Screenshot(context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shotTaken = true
	if p.shotErr != nil {
		return nil, p.shotErr
	}
	if p.shot == nil {
		return []byte("png"), nil
	}
	return p.shot, nil
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// fakeSession hands out one page per NewPage call. The err fields are
// copied onto every page it opens.
type fakeSession struct {
	mu      sync.Mutex
	pages   []*fakePage
	openErr error

	navigateErr error
	shotErr     error
	evalErrFor  string
}

func (s *fakeSession) NewPage(context.Context) (domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	p := &fakePage{
		navigateErr: s.navigateErr,
		shotErr:     s.shotErr,
		evalErrFor:  s.evalErrFor,
	}
	s.pages = append(s.pages, p)
	return p, nil
}

func (s *fakeSession) Close() error { return nil }

// fakeEngine returns canned violations, keyed by URL when the map is set.
type fakeEngine struct {
	violations []domain.Violation
	byURL      map[string][]domain.Violation
	err        error

	mu        sync.Mutex
	selectors []domain.RuleSelector
}

func (e *fakeEngine) Evaluate(_ context.Context, page domain.Page, selector domain.RuleSelector) ([]domain.Violation, error) {
	e.mu.Lock()
	e.selectors = append(e.selectors, selector)
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	if e.byURL != nil {
		fp := page.(*fakePage)
		fp.mu.Lock()
		url := fp.navigated[len(fp.navigated)-1]
		fp.mu.Unlock()
		return e.byURL[url], nil
	}
	return e.violations, nil
}

// fakeEncoder emits a tagged payload so tests can tell artifacts apart.
type fakeEncoder struct {
	tag string
	err error
}

func (e *fakeEncoder) Encode(target domain.AuditTarget, violations []domain.Violation) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []byte(fmt.Sprintf("%s:%s:%d", e.tag, target.Slug, len(violations))), nil
}

// fakeStore keeps artifacts in memory under a virtual output directory.
type fakeStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	failFor string // names containing this substring fail
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: make(map[string][]byte)}
}

func (s *fakeStore) Write(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor != "" && strings.Contains(name, s.failFor) {
		return "", fmt.Errorf("write %s: disk full", name)
	}
	s.files[name] = data
	return "out/" + name, nil
}

func (s *fakeStore) file(suffix string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, data := range s.files {
		if strings.HasSuffix(name, suffix) {
			return data, true
		}
	}
	return nil, false
}

// fakeRunner drives orchestrator tests with a per-target function.
type fakeRunner struct {
	run func(ctx context.Context, target domain.AuditTarget, selector domain.RuleSelector) (domain.AuditSummary, error)
}

func (r *fakeRunner) Run(ctx context.Context, target domain.AuditTarget, selector domain.RuleSelector) (domain.AuditSummary, error) {
	return r.run(ctx, target, selector)
}

func target(name string) domain.AuditTarget {
	return domain.AuditTarget{
		Raw:  name,
		URL:  "https://" + name,
		Name: name,
		Slug: name,
	}
}

func mustSelector() domain.RuleSelector {
	sel, err := domain.NewRuleSelector(domain.LevelAA, true, nil)
	if err != nil {
		panic(err)
	}
	return sel
}
