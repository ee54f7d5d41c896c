package planstatus

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	planscmd "github.com/goliatone/go-planstatus/internal/commands/plans"
	"github.com/goliatone/go-planstatus/internal/logging"
	"github.com/goliatone/go-planstatus/internal/logging/console"
	"github.com/goliatone/go-planstatus/internal/logging/gologger"
	"github.com/goliatone/go-planstatus/internal/plans"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

type (
	StampDirectoryCommand = planscmd.StampDirectoryCommand
	PreviewPlanCommand    = planscmd.PreviewPlanCommand
	StampDirectoryHandler = planscmd.StampDirectoryHandler
	PreviewPlanHandler    = planscmd.PreviewPlanHandler
	CommandRegistry       = planscmd.CommandRegistry
)

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider        interfaces.LoggerProvider
	logOutput       io.Writer
	registry        planscmd.CommandRegistry
	stampReporter   planscmd.StampReporter
	previewReporter planscmd.PreviewReporter
}

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithLogOutput directs console provider output to w (stderr by default).
func WithLogOutput(w io.Writer) Option {
	return func(o *moduleOptions) {
		o.logOutput = w
	}
}

// WithCommandRegistry registers the plan command handlers with reg.
func WithCommandRegistry(reg CommandRegistry) Option {
	return func(o *moduleOptions) {
		o.registry = reg
	}
}

// WithStampReporter receives the report of every stamp command.
func WithStampReporter(fn func(context.Context, *interfaces.StampReport)) Option {
	return func(o *moduleOptions) {
		o.stampReporter = fn
	}
}

// WithPreviewReporter receives the preview computed by every preview command.
func WithPreviewReporter(fn func(context.Context, *interfaces.PlanPreview)) Option {
	return func(o *moduleOptions) {
		o.previewReporter = fn
	}
}

// Module wires configuration, logging, plan services and command handlers.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	handlers *planscmd.HandlerSet
}

// New validates cfg and builds a Module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{logOutput: os.Stderr}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.provider
	if provider == nil {
		built, err := newLoggerProvider(cfg.Logging, options.logOutput)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
	}

	handlers, err := planscmd.RegisterPlanCommands(options.registry, m.OpenPlans, provider,
		planscmd.WithStampReporter(options.stampReporter),
		planscmd.WithPreviewReporter(options.previewReporter),
	)
	if err != nil {
		return nil, err
	}
	m.handlers = handlers
	return m, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// LoggerProvider returns the provider every module logger derives from.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Logger returns the logger used by the planstatus binary.
func (m *Module) Logger() interfaces.Logger {
	return logging.CLILogger(m.provider)
}

// Plans opens the plan service for the configured directory and cutoff.
func (m *Module) Plans() (interfaces.PlanService, error) {
	return m.OpenPlans("", "")
}

// OpenPlans opens a plan service rooted at dir. Empty arguments fall back to
// the configured directory and cutoff.
func (m *Module) OpenPlans(dir, cutoff string) (interfaces.PlanService, error) {
	if strings.TrimSpace(dir) == "" {
		dir = m.cfg.Plans.Dir
	}
	if strings.TrimSpace(cutoff) == "" {
		cutoff = m.cfg.Plans.Cutoff
	}
	return plans.NewService(plans.Config{
		Dir:     dir,
		Cutoff:  cutoff,
		Pattern: m.cfg.Plans.Pattern,
		Parser: interfaces.ParseOptions{
			Extensions: append([]string(nil), m.cfg.Markdown.Extensions...),
			Sanitize:   m.cfg.Markdown.Sanitize,
			HardWraps:  m.cfg.Markdown.HardWraps,
			SafeMode:   m.cfg.Markdown.SafeMode,
		},
	}, plans.WithLogger(logging.PlansLogger(m.provider)))
}

// StampHandler returns the handler executing StampDirectoryCommand.
func (m *Module) StampHandler() *StampDirectoryHandler {
	return m.handlers.Stamp
}

// PreviewHandler returns the handler executing PreviewPlanCommand.
func (m *Module) PreviewHandler() *PreviewPlanHandler {
	return m.handlers.Preview
}

func newLoggerProvider(cfg LoggingConfig, out io.Writer) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level, _ := console.ParseLevel(cfg.Level)
		return console.NewProvider(console.Options{
			Writer:   out,
			MinLevel: &level,
		}), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}
