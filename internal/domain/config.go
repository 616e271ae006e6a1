package domain

import (
	"fmt"
	"time"
)

// RunConfig is the explicit audit configuration, assembled once from file,
// environment and flags before any audit begins and immutable afterwards.
type RunConfig struct {
	Level        WCAGLevel `yaml:"level"          json:"level"`
	BestPractice bool      `yaml:"best_practice"  json:"best_practice"`
	Rules        []string  `yaml:"rules"          json:"rules,omitempty"`
	Capture      bool      `yaml:"capture"        json:"capture"`
	PagesDir     string    `yaml:"pages_dir"      json:"pages_dir"`
	TargetsFile  string    `yaml:"targets_file"   json:"targets_file"`
	OutDir       string    `yaml:"out_dir"        json:"out_dir"`
	TimeoutMS    int       `yaml:"timeout_ms"     json:"timeout_ms"`
	Headless     bool      `yaml:"headless"       json:"headless"`
	AxeScript    string    `yaml:"axe_script"     json:"axe_script,omitempty"`
}

// DefaultRunConfig returns the configuration used when nothing overrides it.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Level:        LevelAA,
		BestPractice: true,
		Capture:      true,
		PagesDir:     "pages",
		TargetsFile:  "targets.json",
		OutDir:       "reports",
		TimeoutMS:    30000,
		Headless:     true,
	}
}

// Validate catches unusable values before the run starts.
func (c RunConfig) Validate() error {
	if _, ok := levelTags[c.Level]; !ok {
		return fmt.Errorf("unknown WCAG level %q (want A, AA or AAA)", c.Level)
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMS)
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir must not be empty")
	}
	return nil
}

// NavigationTimeout returns the per-target navigation bound.
func (c RunConfig) NavigationTimeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Selector builds the rule selector shared by every audit task in the run.
func (c RunConfig) Selector() (RuleSelector, error) {
	return NewRuleSelector(c.Level, c.BestPractice, c.Rules)
}
