package targets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// Resolver assembles the ordered audit target list. CLI arguments are the
// exclusive source when present; otherwise page files from PagesDir are
// concatenated with entries from the JSON TargetsFile. A missing directory
// or an unreadable/invalid list file degrades to an empty contribution,
// never an error.
type Resolver struct {
	PagesDir    string
	TargetsFile string

	// Base overrides the working directory used to qualify local page
	// references. Empty means the process working directory.
	Base string

	log *zap.SugaredLogger
}

// New creates a Resolver over the configured sources.
func New(pagesDir, targetsFile string, log *zap.SugaredLogger) *Resolver {
	return &Resolver{PagesDir: pagesDir, TargetsFile: targetsFile, log: log}
}

// Resolve returns the normalized targets in resolution order: CLI order
// when args are given, else directory-listing order followed by list-file
// order. Duplicates are kept.
func (r *Resolver) Resolve(args []string) []domain.AuditTarget {
	base := r.Base
	if base == "" {
		base, _ = os.Getwd()
	}

	var raws []string
	if len(args) > 0 {
		raws = args
	} else {
		raws = append(r.pageFiles(), r.listEntries()...)
	}

	targets := make([]domain.AuditTarget, 0, len(raws))
	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		targets = append(targets, domain.NormalizeTarget(raw, base))
	}
	return targets
}

// pageFiles lists PagesDir entries carrying the page extension, in
// directory order.
func (r *Resolver) pageFiles() []string {
	entries, err := os.ReadDir(r.PagesDir)
	if err != nil {
		r.log.Debugw("pages directory unavailable", "dir", r.PagesDir, "error", err)
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), domain.PageExtension) {
			continue
		}
		files = append(files, filepath.Join(r.PagesDir, e.Name()))
	}
	return files
}

// listEntries parses the targets file. Only a JSON array of strings
// contributes; any other document shape is treated as no list at all.
func (r *Resolver) listEntries() []string {
	data, err := os.ReadFile(r.TargetsFile)
	if err != nil {
		r.log.Debugw("targets file unavailable", "file", r.TargetsFile, "error", err)
		return nil
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		r.log.Warnw("targets file is not a JSON array of strings, ignoring", "file", r.TargetsFile, "error", err)
		return nil
	}
	return entries
}
