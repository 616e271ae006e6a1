package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/camelcase"
)

// PageExtension is the file extension recognized as a local audit page.
const PageExtension = ".html"

// AuditTarget is one navigable location to audit. Targets are immutable
// once resolved; Name is the human-readable form used in report sections
// and Slug is the file-safe form used for artifact names.
type AuditTarget struct {
	Raw  string `json:"raw"`
	URL  string `json:"url"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NormalizeTarget turns a raw target string into a fully qualified
// AuditTarget. Values already carrying a scheme pass through unchanged.
// A scheme-less value ending in the page extension becomes a file://
// reference resolved against baseDir; any other value gets the https://
// prefix.
func NormalizeTarget(raw, baseDir string) AuditTarget {
	trimmed := strings.TrimSpace(raw)
	t := AuditTarget{Raw: raw}

	switch {
	case strings.Contains(trimmed, "://"):
		t.URL = trimmed
		t.Name = displayURL(trimmed)
		t.Slug = slugify(t.Name)
	case strings.HasSuffix(trimmed, PageExtension):
		path := trimmed
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		t.URL = "file://" + filepath.ToSlash(path)
		base := strings.TrimSuffix(filepath.Base(trimmed), PageExtension)
		t.Name = humanize(base)
		t.Slug = slugify(base)
	default:
		t.URL = "https://" + trimmed
		t.Name = displayURL(t.URL)
		t.Slug = slugify(t.Name)
	}

	return t
}

// IsLocal reports whether the target points at a local page file.
func (t AuditTarget) IsLocal() bool {
	return strings.HasPrefix(t.URL, "file://")
}

// ArtifactBase derives the shared base name for this target's generated
// files. The timestamp keeps repeated runs from colliding.
func (t AuditTarget) ArtifactBase(at time.Time) string {
	return fmt.Sprintf("%s-%d", t.Slug, at.UnixMilli())
}

// displayURL strips the scheme and trailing slash for section titles.
func displayURL(url string) string {
	s := url
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+len("://"):]
	}
	return strings.TrimSuffix(s, "/")
}

// humanize splits a camel-cased or separator-delimited file base name into
// lowercased words: "loginForm" and "login-form" both become "login form".
func humanize(base string) string {
	var words []string
	for _, chunk := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	}) {
		for _, w := range camelcase.Split(chunk) {
			words = append(words, strings.ToLower(w))
		}
	}
	if len(words) == 0 {
		return base
	}
	return strings.Join(words, " ")
}

// slugify reduces a name to lowercase alphanumerics joined by hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
