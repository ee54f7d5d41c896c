package plans

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-planstatus/internal/logging"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

// ErrPlanNotFound is returned by Preview when no eligible plan has the requested name.
var ErrPlanNotFound = errors.New("plans: plan not found")

// Config controls where plans are read from and which ones are eligible.
type Config struct {
	Dir     string
	Cutoff  string
	Pattern string
	Parser  interfaces.ParseOptions
}

// WriteFunc persists a stamped plan. It matches os.WriteFile.
type WriteFunc func(name string, data []byte, perm fs.FileMode) error

// Option customises a Service during construction.
type Option func(*Service)

// WithLogger sets the logger used for discovery and stamping events.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		s.logger = logging.EnsureLogger(logger)
	}
}

// WithParser overrides the Markdown parser used by Preview.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithWriter overrides how stamped plans are written back to disk.
func WithWriter(write WriteFunc) Option {
	return func(s *Service) {
		if write != nil {
			s.write = write
		}
	}
}

// WithRunIDs overrides the generator used to tag each Apply run.
func WithRunIDs(next func() uuid.UUID) Option {
	return func(s *Service) {
		if next != nil {
			s.newRunID = next
		}
	}
}

// Service implements interfaces.PlanService for a plans directory on disk.
type Service struct {
	cfg      Config
	fs       fs.FS
	loader   *Loader
	parser   interfaces.MarkdownParser
	logger   interfaces.Logger
	write    WriteFunc
	newRunID func() uuid.UUID
}

var _ interfaces.PlanService = (*Service)(nil)

// NewService constructs a Service rooted at cfg.Dir. The directory must exist.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.Dir)
	if err != nil {
		return nil, err
	}

	s := &Service{
		cfg:      cfg,
		fs:       filesystem,
		logger:   logging.NoOp(),
		write:    os.WriteFile,
		newRunID: uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.parser == nil {
		s.parser = NewGoldmarkParser(cfg.Parser)
	}
	s.loader = NewLoader(filesystem, LoaderConfig{
		Pattern: cfg.Pattern,
		Cutoff:  cfg.Cutoff,
	}, s.logger)

	return s, nil
}

// Discover lists the plans eligible for stamping.
func (s *Service) Discover(ctx context.Context) ([]interfaces.PlanEntry, error) {
	return s.loader.Discover(ctx)
}

// Plan computes the header for every eligible plan without writing anything.
func (s *Service) Plan(ctx context.Context) ([]interfaces.PlanResult, error) {
	evaluations, err := s.evaluate(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]interfaces.PlanResult, 0, len(evaluations))
	for _, ev := range evaluations {
		results = append(results, ev.result)
	}
	return results, nil
}

// Apply stamps every eligible plan that lacks a header. The first failure
// aborts the run; files written before it keep their new header.
func (s *Service) Apply(ctx context.Context, opts interfaces.ApplyOptions) (*interfaces.StampReport, error) {
	report := &interfaces.StampReport{
		RunID:     s.newRunID(),
		Directory: s.cfg.Dir,
		Cutoff:    s.cfg.Cutoff,
		DryRun:    opts.DryRun,
	}
	ctx = logging.ContextWithFields(ctx, map[string]any{"run_id": report.RunID.String()})
	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{
		"dry_run": opts.DryRun,
	})

	evaluations, err := s.evaluate(ctx)
	if err != nil {
		return nil, err
	}

	for _, ev := range evaluations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := ev.result
		entryLogger := logging.WithPlanContext(logger, result.Entry.Name, result.Entry.Slug, string(result.Action))

		if result.Action != interfaces.StampActionWouldStamp {
			entryLogger.Debug("plans.stamp.skipped")
			report.Skipped++
			report.Results = append(report.Results, result)
			continue
		}

		if !opts.DryRun {
			if err := s.persist(result.Entry, ev.stamped); err != nil {
				entryLogger.Error("plans.stamp.failed", "error", err)
				return nil, err
			}
			result.Action = interfaces.StampActionStamped
		}
		entryLogger.Info("plans.stamp.written",
			"status", string(result.Status),
			"superseded_by", result.SupersededBy,
		)
		report.Stamped++
		report.Results = append(report.Results, result)
	}

	logger.Info("plans.apply.completed",
		"stamped_count", report.Stamped,
		"skipped_count", report.Skipped,
	)
	return report, nil
}

// Preview returns the stamped form of the plan named name without writing it.
func (s *Service) Preview(ctx context.Context, name string, opts interfaces.PreviewOptions) (*interfaces.PlanPreview, error) {
	target := path.Base(filepath.ToSlash(strings.TrimSpace(name)))

	evaluations, err := s.evaluate(ctx)
	if err != nil {
		return nil, err
	}

	for _, ev := range evaluations {
		if ev.result.Entry.Name != target {
			continue
		}

		preview := &interfaces.PlanPreview{
			Result:   ev.result,
			Markdown: []byte(ev.doc.Text()),
		}
		if ev.result.Action == interfaces.StampActionWouldStamp {
			preview.Markdown = []byte(ev.stamped)
			preview.Changed = true
		}
		if opts.RenderHTML {
			html, err := s.parser.ParseWithOptions(preview.Markdown, mergeParseOptions(s.cfg.Parser, opts.Parser))
			if err != nil {
				return nil, fmt.Errorf("plans preview %s: %w", target, err)
			}
			preview.HTML = html
		}
		return preview, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, target)
}

type evaluation struct {
	doc     *Document
	result  interfaces.PlanResult
	stamped string
}

// evaluate discovers the plans, resolves supersession across all of them and
// computes each plan's header and stamped text.
func (s *Service) evaluate(ctx context.Context) ([]evaluation, error) {
	entries, err := s.loader.Discover(ctx)
	if err != nil {
		return nil, err
	}
	superseded := ResolveSupersession(entries)

	evaluations := make([]evaluation, 0, len(entries))
	for _, entry := range entries {
		doc, err := s.loader.Load(ctx, entry)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, evaluateDocument(doc, superseded.Target(entry.Path)))
	}
	return evaluations, nil
}

func evaluateDocument(doc *Document, target string) evaluation {
	text := normalizeNewlines(doc.Text())
	result := interfaces.PlanResult{
		Entry:    doc.Entry,
		Title:    doc.Title,
		Checksum: doc.Checksum,
	}

	summary := ExtractSummary(text)
	header := NewHeader(target, summary)
	result.Status = header.Status
	result.SupersededBy = header.SupersededBy
	result.Summary = header.Summary
	result.Planned = header.Planned

	if HasHeader(text) {
		result.Action = interfaces.StampActionSkippedHeader
		return evaluation{doc: doc, result: result}
	}

	stamped, ok := Stamp(text, header)
	if !ok {
		result.Action = interfaces.StampActionSkippedEmpty
		return evaluation{doc: doc, result: result}
	}
	result.Action = interfaces.StampActionWouldStamp
	return evaluation{doc: doc, result: result, stamped: stamped}
}

func (s *Service) persist(entry interfaces.PlanEntry, stamped string) error {
	perm := fs.FileMode(0o644)
	if info, err := fs.Stat(s.fs, entry.Path); err == nil {
		perm = info.Mode().Perm()
	}
	target := filepath.Join(s.cfg.Dir, filepath.FromSlash(entry.Path))
	if err := s.write(target, []byte(stamped), perm); err != nil {
		return fmt.Errorf("plans write %s: %w", entry.Path, err)
	}
	return nil
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	result.Sanitize = result.Sanitize || override.Sanitize
	result.HardWraps = result.HardWraps || override.HardWraps
	result.SafeMode = result.SafeMode || override.SafeMode
	return result
}

func prepareFilesystem(dir string) (fs.FS, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("plans service: plans directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("plans service: stat plans dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("plans service: %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
