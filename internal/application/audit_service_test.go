package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anditpl/a11y-audit/internal/application"
	"github.com/anditpl/a11y-audit/internal/domain"
	"github.com/anditpl/a11y-audit/internal/logging"
)

func sampleViolations() []domain.Violation {
	return []domain.Violation{
		{
			RuleID:      "button-name",
			Description: "Buttons must have discernible text",
			Nodes:       []domain.ViolationNode{{Targets: []string{"#submit"}}},
		},
		{
			RuleID:      "image-alt",
			Description: "Images must have alternate text",
			Nodes:       []domain.ViolationNode{{Targets: []string{"img.hero"}}},
		},
	}
}

type serviceFixture struct {
	session *fakeSession
	engine  *fakeEngine
	store   *fakeStore
	svc     *application.AuditService
}

func newServiceFixture(session *fakeSession, engine *fakeEngine, cfg domain.RunConfig) *serviceFixture {
	store := newFakeStore()
	log := logging.NewNop()
	svc := application.NewAuditService(
		session,
		engine,
		&fakeEncoder{tag: "html"},
		&fakeEncoder{tag: "json"},
		store,
		application.NewAnnotator(store, log),
		cfg,
		log,
	)
	return &serviceFixture{session: session, engine: engine, store: store, svc: svc}
}

func TestAuditService_SuccessPopulatesSummary(t *testing.T) {
	cfg := domain.DefaultRunConfig()
	cfg.Capture = false
	fx := newServiceFixture(&fakeSession{}, &fakeEngine{violations: sampleViolations()}, cfg)

	summary, err := fx.svc.Run(context.Background(), target("shop"), mustSelector())
	require.NoError(t, err)

	assert.False(t, summary.Failed())
	assert.Equal(t, 2, summary.ViolationCount)
	assert.Equal(t, 2, summary.RuleCount)
	assert.Equal(t, "1. button-name - Buttons must have discernible text\n2. image-alt - Images must have alternate text", summary.Listing)
	assert.NotEmpty(t, summary.Artifacts.HTMLReport)
	assert.NotEmpty(t, summary.Artifacts.JSONReport)
	assert.Empty(t, summary.Artifacts.Screenshot, "capture disabled")

	require.Len(t, fx.session.pages, 1)
	assert.True(t, fx.session.pages[0].closed, "page released on success")
	assert.Equal(t, []string{"https://shop"}, fx.session.pages[0].navigated)
}

func TestAuditService_NavigationFailureYieldsDegenerateSummary(t *testing.T) {
	session := &fakeSession{navigateErr: errors.New("net::ERR_TIMED_OUT")}
	fx := newServiceFixture(session, &fakeEngine{violations: sampleViolations()}, domain.DefaultRunConfig())

	summary, err := fx.svc.Run(context.Background(), target("down"), mustSelector())

	require.Error(t, err)
	assert.True(t, summary.Failed())
	assert.Zero(t, summary.Elapsed)
	assert.Zero(t, summary.ViolationCount)
	assert.Empty(t, summary.Listing)
	require.Len(t, fx.session.pages, 1)
	assert.True(t, fx.session.pages[0].closed, "page released on failure too")
}

func TestAuditService_PageOpenFailureYieldsDegenerateSummary(t *testing.T) {
	session := &fakeSession{openErr: errors.New("browser gone")}
	fx := newServiceFixture(session, &fakeEngine{}, domain.DefaultRunConfig())

	summary, err := fx.svc.Run(context.Background(), target("a"), mustSelector())

	require.Error(t, err)
	assert.True(t, summary.Failed())
	assert.Zero(t, summary.Elapsed)
}

func TestAuditService_EvaluationFailureYieldsDegenerateSummary(t *testing.T) {
	fx := newServiceFixture(&fakeSession{}, &fakeEngine{err: errors.New("axe blew up")}, domain.DefaultRunConfig())

	summary, err := fx.svc.Run(context.Background(), target("a"), mustSelector())

	require.Error(t, err)
	assert.True(t, summary.Failed())
	require.Len(t, fx.session.pages, 1)
	assert.True(t, fx.session.pages[0].closed)
}

func TestAuditService_SelectorPassedThroughUnchanged(t *testing.T) {
	engine := &fakeEngine{}
	fx := newServiceFixture(&fakeSession{}, engine, domain.DefaultRunConfig())

	sel, err := domain.NewRuleSelector(domain.LevelAAA, false, []string{"button-name"})
	require.NoError(t, err)

	_, err = fx.svc.Run(context.Background(), target("a"), sel)
	require.NoError(t, err)

	require.Len(t, engine.selectors, 1)
	assert.Equal(t, []string{"button-name"}, engine.selectors[0].RuleIDs)
	assert.Nil(t, engine.selectors[0].Tags(), "explicit rules suppress tag filtering")
}

func TestAuditService_CaptureProducesScreenshotAndLegend(t *testing.T) {
	cfg := domain.DefaultRunConfig()
	cfg.Capture = true
	fx := newServiceFixture(&fakeSession{}, &fakeEngine{violations: sampleViolations()}, cfg)

	summary, err := fx.svc.Run(context.Background(), target("shop"), mustSelector())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.Artifacts.Screenshot)
	assert.NotEmpty(t, summary.Artifacts.Legend)

	legend, ok := fx.store.file("-legend.txt")
	require.True(t, ok, "legend artifact must be written")
	assert.Contains(t, string(legend), "1: button-name - Buttons must have discernible text")
	assert.Contains(t, string(legend), "2: image-alt - Images must have alternate text")
}

func TestAuditService_NoCaptureWithoutViolations(t *testing.T) {
	cfg := domain.DefaultRunConfig()
	cfg.Capture = true
	fx := newServiceFixture(&fakeSession{}, &fakeEngine{}, cfg)

	summary, err := fx.svc.Run(context.Background(), target("clean"), mustSelector())
	require.NoError(t, err)

	assert.Empty(t, summary.Artifacts.Screenshot, "capture only runs when violations exist")
	require.Len(t, fx.session.pages, 1)
	assert.False(t, fx.session.pages[0].shotTaken)
}

func TestAuditService_AnnotationFailureDoesNotFailAudit(t *testing.T) {
	cfg := domain.DefaultRunConfig()
	cfg.Capture = true
	session := &fakeSession{shotErr: errors.New("capture broke")}
	fx := newServiceFixture(session, &fakeEngine{violations: sampleViolations()}, cfg)

	summary, err := fx.svc.Run(context.Background(), target("shop"), mustSelector())

	require.NoError(t, err, "the audit itself succeeded")
	assert.False(t, summary.Failed())
	assert.Equal(t, 2, summary.ViolationCount)
	assert.Empty(t, summary.Artifacts.Screenshot)
}

func TestAuditService_ReportWriteFailureFailsTarget(t *testing.T) {
	fx := newServiceFixture(&fakeSession{}, &fakeEngine{violations: sampleViolations()}, domain.DefaultRunConfig())
	fx.store.failFor = ".json"

	summary, err := fx.svc.Run(context.Background(), target("shop"), mustSelector())

	require.Error(t, err)
	assert.True(t, summary.Failed())
}
