package plans

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-planstatus/internal/logging"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

const defaultPattern = "*.md"

// LoaderConfig configures how plans are discovered within the plans directory.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Cutoff excludes plans dated on or after it. Empty admits every plan.
	Cutoff string
}

// Loader turns the entries of a plans directory into plan documents. Only the
// top level of the filesystem is considered.
type Loader struct {
	fs      fs.FS
	pattern string
	cutoff  string
	logger  interfaces.Logger
}

// Document is a plan entry along with the bytes read from disk.
type Document struct {
	Entry    interfaces.PlanEntry
	Source   []byte
	Title    string
	Checksum []byte
}

// Text returns the document source as a string.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	return string(d.Source)
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig, logger interfaces.Logger) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = defaultPattern
	}
	return &Loader{
		fs:      filesystem,
		pattern: pattern,
		cutoff:  strings.TrimSpace(cfg.Cutoff),
		logger:  logging.EnsureLogger(logger),
	}
}

// Discover lists the plans eligible for stamping, sorted by filename. Names
// that do not follow the YYYY-MM-DD-<slug>.md convention and plans dated on or
// after the cutoff are left out. No file contents are read.
func (l *Loader) Discover(ctx context.Context) ([]interfaces.PlanEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := fs.ReadDir(l.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("plans loader read dir: %w", err)
	}

	var entries []interfaces.PlanEntry
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !l.matchesPattern(dirEntry.Name()) {
			continue
		}
		entry, ok := ParseFilename(dirEntry.Name())
		if !ok {
			l.logger.Debug("plans.discover.unrecognised_name", "plan_file", dirEntry.Name())
			continue
		}
		if !BeforeCutoff(entry, l.cutoff) {
			l.logger.Debug("plans.discover.after_cutoff", "plan_file", entry.Name, "cutoff", l.cutoff)
			continue
		}
		if !slug.IsValid(entry.Slug) {
			l.logger.Warn("plans.discover.noncanonical_slug", "plan_file", entry.Name, "plan_slug", entry.Slug)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Load reads a single plan document.
func (l *Loader) Load(ctx context.Context, entry interfaces.PlanEntry) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, entry.Path)
	if err != nil {
		return nil, fmt.Errorf("plans loader read %s: %w", entry.Path, err)
	}

	sum := sha256.Sum256(data)
	return &Document{
		Entry:    entry,
		Source:   data,
		Title:    documentTitle(data),
		Checksum: sum[:],
	}, nil
}

func (l *Loader) matchesPattern(name string) bool {
	match, err := filepath.Match(l.pattern, name)
	if err != nil {
		return false
	}
	return match
}
