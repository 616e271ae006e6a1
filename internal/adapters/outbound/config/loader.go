package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anditpl/a11y-audit/internal/domain"
)

const fileName = ".a11yaudit.yaml"

// Loader builds the run configuration: defaults, overlaid by
// .a11yaudit.yaml when present, overlaid by A11Y_* environment variables.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// fileConfig mirrors RunConfig with pointer fields so an unset key is
// distinguishable from an explicit zero value.
type fileConfig struct {
	Level        *string  `yaml:"level"`
	BestPractice *bool    `yaml:"best_practice"`
	Rules        []string `yaml:"rules"`
	Capture      *bool    `yaml:"capture"`
	PagesDir     *string  `yaml:"pages_dir"`
	TargetsFile  *string  `yaml:"targets_file"`
	OutDir       *string  `yaml:"out_dir"`
	TimeoutMS    *int     `yaml:"timeout_ms"`
	Headless     *bool    `yaml:"headless"`
	AxeScript    *string  `yaml:"axe_script"`
}

// Load reads .a11yaudit.yaml from dir. A missing file means defaults; an
// unparsable or invalid file is an error so typos never silently vanish.
func (l *Loader) Load(dir string) (domain.RunConfig, error) {
	cfg := domain.DefaultRunConfig()

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	switch {
	case err == nil:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return domain.RunConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
		}
		mergeFile(&cfg, fc)
	case errors.Is(err, os.ErrNotExist):
		// defaults apply
	default:
		return domain.RunConfig{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return domain.RunConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return domain.RunConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays explicit file values onto the defaults.
func mergeFile(cfg *domain.RunConfig, fc fileConfig) {
	if fc.Level != nil {
		cfg.Level = domain.WCAGLevel(strings.ToUpper(*fc.Level))
	}
	if fc.BestPractice != nil {
		cfg.BestPractice = *fc.BestPractice
	}
	if len(fc.Rules) > 0 {
		cfg.Rules = fc.Rules
	}
	if fc.Capture != nil {
		cfg.Capture = *fc.Capture
	}
	if fc.PagesDir != nil {
		cfg.PagesDir = *fc.PagesDir
	}
	if fc.TargetsFile != nil {
		cfg.TargetsFile = *fc.TargetsFile
	}
	if fc.OutDir != nil {
		cfg.OutDir = *fc.OutDir
	}
	if fc.TimeoutMS != nil {
		cfg.TimeoutMS = *fc.TimeoutMS
	}
	if fc.Headless != nil {
		cfg.Headless = *fc.Headless
	}
	if fc.AxeScript != nil {
		cfg.AxeScript = *fc.AxeScript
	}
}

// applyEnv overlays A11Y_* environment variables.
func applyEnv(cfg *domain.RunConfig) error {
	if v := os.Getenv("A11Y_LEVEL"); v != "" {
		cfg.Level = domain.WCAGLevel(strings.ToUpper(v))
	}
	if v := os.Getenv("A11Y_RULES"); v != "" {
		cfg.Rules = splitList(v)
	}
	if v := os.Getenv("A11Y_PAGES_DIR"); v != "" {
		cfg.PagesDir = v
	}
	if v := os.Getenv("A11Y_TARGETS_FILE"); v != "" {
		cfg.TargetsFile = v
	}
	if v := os.Getenv("A11Y_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("A11Y_AXE_SCRIPT"); v != "" {
		cfg.AxeScript = v
	}

	boolVars := []struct {
		name string
		dst  *bool
	}{
		{"A11Y_BEST_PRACTICE", &cfg.BestPractice},
		{"A11Y_CAPTURE", &cfg.Capture},
		{"A11Y_HEADLESS", &cfg.Headless},
	}
	for _, bv := range boolVars {
		v := os.Getenv(bv.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", bv.name, v, err)
		}
		*bv.dst = parsed
	}

	if v := os.Getenv("A11Y_TIMEOUT_MS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing A11Y_TIMEOUT_MS=%q: %w", v, err)
		}
		cfg.TimeoutMS = parsed
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
