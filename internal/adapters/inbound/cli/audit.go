package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anditpl/a11y-audit/internal/adapters/outbound/axe"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/browser"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/config"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/gitinfo"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/report"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/targets"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/tui"
	"github.com/anditpl/a11y-audit/internal/application"
	"github.com/anditpl/a11y-audit/internal/domain"
	"github.com/anditpl/a11y-audit/internal/logging"
)

func newAuditCmd() *cobra.Command {
	var (
		level        string
		bestPractice bool
		rules        []string
		capture      bool
		pagesDir     string
		targetsFile  string
		outDir       string
		timeoutMS    int
		headless     bool
		axeScript    string
		jsonOutput   bool
		ciMode       bool
		debug        bool
	)

	cmd := &cobra.Command{
		Use:   "audit [target...]",
		Short: "Audit targets for accessibility violations",
		Long:  "Audit every target concurrently and produce per-target HTML/JSON reports, annotated screenshots, and one combined PDF summary. Explicit targets are the exclusive source when given; otherwise the pages directory and the JSON targets file contribute.",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(debug)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			cfg, err := config.New().Load(".")
			if err != nil {
				return err
			}

			// Flags override file and environment values, but only when
			// actually set.
			fl := cmd.Flags()
			if fl.Changed("level") {
				cfg.Level = domain.WCAGLevel(strings.ToUpper(level))
			}
			if fl.Changed("best-practice") {
				cfg.BestPractice = bestPractice
			}
			if fl.Changed("rules") {
				cfg.Rules = rules
			}
			if fl.Changed("capture") {
				cfg.Capture = capture
			}
			if fl.Changed("pages-dir") {
				cfg.PagesDir = pagesDir
			}
			if fl.Changed("targets-file") {
				cfg.TargetsFile = targetsFile
			}
			if fl.Changed("out") {
				cfg.OutDir = outDir
			}
			if fl.Changed("timeout-ms") {
				cfg.TimeoutMS = timeoutMS
			}
			if fl.Changed("headless") {
				cfg.Headless = headless
			}
			if fl.Changed("axe-script") {
				cfg.AxeScript = axeScript
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runAudit(cmd, cfg, args, jsonOutput, ciMode, log)
		},
	}

	cmd.Flags().StringVar(&level, "level", "AA", "WCAG conformance level (A, AA or AAA)")
	cmd.Flags().BoolVar(&bestPractice, "best-practice", true, "Include the best-practice rule tag")
	cmd.Flags().StringSliceVar(&rules, "rules", nil, "Explicit rule ids, overriding the WCAG tag set")
	cmd.Flags().BoolVar(&capture, "capture", true, "Capture annotated screenshots for violating pages")
	cmd.Flags().StringVar(&pagesDir, "pages-dir", "pages", "Directory of local page files")
	cmd.Flags().StringVar(&targetsFile, "targets-file", "targets.json", "JSON file listing additional targets")
	cmd.Flags().StringVar(&outDir, "out", "reports", "Output directory for generated artifacts")
	cmd.Flags().IntVar(&timeoutMS, "timeout-ms", 30000, "Navigation timeout per target in milliseconds")
	cmd.Flags().BoolVar(&headless, "headless", true, "Run the browser headless")
	cmd.Flags().StringVar(&axeScript, "axe-script", "", "Path to a local axe-core script")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the batch result as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 on any violation or target failure")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

// runAudit resolves targets and, when any exist, drives the full batch:
// browser session, concurrent audits, combined report. Shared with the
// watch command.
func runAudit(cmd *cobra.Command, cfg domain.RunConfig, args []string, jsonOutput, ciMode bool, log *zap.SugaredLogger) error {
	resolver := targets.New(cfg.PagesDir, cfg.TargetsFile, log)
	resolved := resolver.Resolve(args)
	if len(resolved) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No targets to audit.")
		return nil
	}

	selector, err := cfg.Selector()
	if err != nil {
		return err
	}

	session, err := browser.Launch(cfg.Headless, log)
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	defer func() { _ = session.Close() }()

	engine, err := axe.NewEngine(cfg.AxeScript, log)
	if err != nil {
		return err
	}

	store := report.NewStore(cfg.OutDir)
	svc := application.NewAuditService(
		session,
		engine,
		report.NewHTMLEncoder(),
		report.NewJSONEncoder(),
		store,
		application.NewAnnotator(store, log),
		cfg,
		log,
	)

	batch := application.NewOrchestrator(svc, log).RunBatch(cmd.Context(), resolved, selector)

	meta := domain.ReportMeta{GeneratedAt: time.Now(), ToolVersion: version}
	if gi := gitinfo.New(); gi.IsRepo(".") {
		if hash, err := gi.CommitHash("."); err == nil {
			meta.CommitHash = hash
		}
	}
	combined := domain.BuildCombinedReport(batch, meta)

	pdfBytes, err := report.NewPDFEncoder().Encode(combined)
	if err != nil {
		return fmt.Errorf("encoding combined report: %w", err)
	}
	reportPath, err := store.Write(fmt.Sprintf("combined-%d.pdf", meta.GeneratedAt.UnixMilli()), pdfBytes)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(batch); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderBatch(batch, reportPath))
	}

	if ciMode {
		if n := batch.Failures(); n > 0 {
			return fmt.Errorf("%d target(s) failed to audit", n)
		}
		if n := batch.Violations(); n > 0 {
			return fmt.Errorf("%d accessibility violation(s) found", n)
		}
	}

	return nil
}
