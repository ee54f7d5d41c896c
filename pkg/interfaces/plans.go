package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// PlanStatus is the status value written into a plan header.
type PlanStatus string

const (
	// PlanStatusHistorical marks a plan nobody has replaced.
	PlanStatusHistorical PlanStatus = "Historical"
	// PlanStatusSuperseded marks a plan replaced by a later document.
	PlanStatusSuperseded PlanStatus = "Historical (superseded)"
)

// NotSuperseded is the supersession value used when no later plan exists.
const NotSuperseded = "N/A"

// StampAction describes what a run did (or would do) to a single plan file.
type StampAction string

const (
	StampActionStamped       StampAction = "stamped"
	StampActionWouldStamp    StampAction = "would_stamp"
	StampActionSkippedHeader StampAction = "skipped_header"
	StampActionSkippedEmpty  StampAction = "skipped_empty"
)

// PlanEntry identifies a dated plan document. Entries are immutable once parsed.
type PlanEntry struct {
	// Path is the location of the file relative to the plans directory.
	Path string
	// Name is the base filename, e.g. 2025-01-01-foo-design.md.
	Name string
	// Date is the ISO date prefix. Dates compare lexically.
	Date string
	// Slug is the topic identifier following the date prefix.
	Slug string
}

// PlanResult captures the outcome computed for a single plan.
type PlanResult struct {
	Entry        PlanEntry
	Title        string
	Status       PlanStatus
	SupersededBy string
	Summary      []string
	Planned      []string
	Action       StampAction
	// Checksum is the SHA-256 digest of the file contents as read.
	Checksum []byte
}

// Superseded reports whether another plan replaces this one.
func (r PlanResult) Superseded() bool {
	return r.SupersededBy != "" && r.SupersededBy != NotSuperseded
}

// ApplyOptions tunes a stamping run.
type ApplyOptions struct {
	// DryRun computes headers without writing any file.
	DryRun bool
}

// StampReport aggregates the outcome of a stamping run.
type StampReport struct {
	RunID     uuid.UUID
	Directory string
	Cutoff    string
	DryRun    bool
	Results   []PlanResult
	Stamped   int
	Skipped   int
}

// PreviewOptions controls how a single plan preview is produced.
type PreviewOptions struct {
	RenderHTML bool
	Parser     ParseOptions
}

// PlanPreview is the stamped form of one plan, computed without touching disk.
type PlanPreview struct {
	Result   PlanResult
	Markdown []byte
	HTML     []byte
	Changed  bool
}

// PlanService exposes the plan stamping workflows.
type PlanService interface {
	Discover(ctx context.Context) ([]PlanEntry, error)
	Plan(ctx context.Context) ([]PlanResult, error)
	Apply(ctx context.Context, opts ApplyOptions) (*StampReport, error)
	Preview(ctx context.Context, name string, opts PreviewOptions) (*PlanPreview, error)
}

// MarkdownParser converts Markdown bytes into HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}
