package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anditpl/a11y-audit/internal/domain"
)

func TestDefaultRunConfig(t *testing.T) {
	cfg := domain.DefaultRunConfig()

	assert.Equal(t, domain.LevelAA, cfg.Level)
	assert.True(t, cfg.BestPractice)
	assert.True(t, cfg.Capture)
	assert.True(t, cfg.Headless)
	assert.Equal(t, "pages", cfg.PagesDir)
	assert.Equal(t, "targets.json", cfg.TargetsFile)
	assert.Equal(t, "reports", cfg.OutDir)
	assert.Equal(t, 30*time.Second, cfg.NavigationTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestRunConfig_ValidateRejectsBadLevel(t *testing.T) {
	cfg := domain.DefaultRunConfig()
	cfg.Level = "AAAA"
	assert.Error(t, cfg.Validate())
}

func TestRunConfig_ValidateRejectsZeroTimeout(t *testing.T) {
	cfg := domain.DefaultRunConfig()
	cfg.TimeoutMS = 0
	assert.Error(t, cfg.Validate())
}

func TestRunConfig_SelectorCarriesExplicitRules(t *testing.T) {
	cfg := domain.DefaultRunConfig()
	cfg.Rules = []string{"button-name"}

	sel, err := cfg.Selector()
	require.NoError(t, err)
	assert.True(t, sel.Explicit())
	assert.Nil(t, sel.Tags())
}
