package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrPlansDirRequired indicates the plans directory was left blank.
	ErrPlansDirRequired = errors.New("planstatus config: plans directory is required")
	// ErrCutoffInvalid indicates the cutoff is not an ISO date.
	ErrCutoffInvalid = errors.New("planstatus config: cutoff must be a YYYY-MM-DD date")
	// ErrPatternInvalid indicates the discovery glob cannot be compiled.
	ErrPatternInvalid = errors.New("planstatus config: plans pattern is invalid")
)

var ErrLoggingProviderUnknown = errors.New("planstatus config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("planstatus config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("planstatus config: logging format is invalid")

// DateLayout is the layout of the date prefix carried by plan filenames.
const DateLayout = "2006-01-02"

const (
	defaultPlansDir = "doc/plans"
	defaultCutoff   = "2026-02-05"
	defaultPattern  = "*.md"
)

// Config aggregates the settings for a stamping run.
type Config struct {
	Plans    PlansConfig
	Markdown MarkdownParserConfig
	Logging  LoggingConfig
}

// PlansConfig locates the plan documents and bounds which ones are eligible.
type PlansConfig struct {
	// Dir is the directory holding YYYY-MM-DD-<slug>.md files. It is not walked recursively.
	Dir string
	// Cutoff excludes every plan dated on or after it. Compared lexically.
	Cutoff string
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for previews.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the defaults used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Plans: PlansConfig{
			Dir:     defaultPlansDir,
			Cutoff:  defaultCutoff,
			Pattern: defaultPattern,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate reports the first inconsistency found in the configuration.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Plans.Dir) == "" {
		return ErrPlansDirRequired
	}
	if cutoff := strings.TrimSpace(cfg.Plans.Cutoff); cutoff != "" {
		if _, err := time.Parse(DateLayout, cutoff); err != nil {
			return fmt.Errorf("%w: %s", ErrCutoffInvalid, cutoff)
		}
	}
	if pattern := strings.TrimSpace(cfg.Plans.Pattern); pattern != "" {
		if _, err := matchPattern(pattern); err != nil {
			return fmt.Errorf("%w: %s", ErrPatternInvalid, pattern)
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return nil
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
