package planscmd

import (
	"errors"

	"github.com/goliatone/go-planstatus/internal/commands"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterPlanCommands.
type HandlerSet struct {
	Stamp   *StampDirectoryHandler
	Preview *PreviewPlanHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	stampReporter      StampReporter
	previewReporter    PreviewReporter
	stampHandlerOpts   []commands.HandlerOption[StampDirectoryCommand]
	previewHandlerOpts []commands.HandlerOption[PreviewPlanCommand]
}

// WithStampReporter receives the report of every stamping run.
func WithStampReporter(fn StampReporter) Option {
	return func(cfg *options) {
		cfg.stampReporter = fn
	}
}

// WithPreviewReporter receives every computed preview.
func WithPreviewReporter(fn PreviewReporter) Option {
	return func(cfg *options) {
		cfg.previewReporter = fn
	}
}

// WithStampHandlerOptions forwards options to the StampDirectoryHandler constructor.
func WithStampHandlerOptions(opts ...commands.HandlerOption[StampDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.stampHandlerOpts = append(cfg.stampHandlerOpts, opts...)
	}
}

// WithPreviewHandlerOptions forwards options to the PreviewPlanHandler constructor.
func WithPreviewHandlerOptions(opts ...commands.HandlerOption[PreviewPlanCommand]) Option {
	return func(cfg *options) {
		cfg.previewHandlerOpts = append(cfg.previewHandlerOpts, opts...)
	}
}

// RegisterPlanCommands builds the plan command handlers and registers them
// with reg when it is not nil.
func RegisterPlanCommands(reg CommandRegistry, factory ServiceFactory, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if factory == nil {
		return nil, errors.New("plan command registration: service factory is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "plans")

	stampHandler := NewStampDirectoryHandler(factory, cfg.stampReporter, logger, cfg.stampHandlerOpts...)
	previewHandler := NewPreviewPlanHandler(factory, cfg.previewReporter, logger, cfg.previewHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(stampHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(previewHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Stamp:   stampHandler,
		Preview: previewHandler,
	}, nil
}
