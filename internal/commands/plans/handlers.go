package planscmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-planstatus/internal/commands"
	"github.com/goliatone/go-planstatus/internal/logging"
	"github.com/goliatone/go-planstatus/internal/plans"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

const (
	stampOperation   = "plans.stamp_directory"
	previewOperation = "plans.preview_plan"

	planNotFoundCode = "PLAN_NOT_FOUND"
)

var (
	_ command.Commander[StampDirectoryCommand] = (*StampDirectoryHandler)(nil)
	_ command.Commander[PreviewPlanCommand]    = (*PreviewPlanHandler)(nil)
)

// ServiceFactory opens a plan service rooted at dir. An empty cutoff selects
// the configured default.
type ServiceFactory func(dir, cutoff string) (interfaces.PlanService, error)

// StampReporter receives the report of a completed stamping run.
type StampReporter func(ctx context.Context, report *interfaces.StampReport)

// PreviewReporter receives a computed preview.
type PreviewReporter func(ctx context.Context, preview *interfaces.PlanPreview)

// StampDirectoryHandler runs a stamping pass through the shared command handler.
type StampDirectoryHandler struct {
	inner *commands.Handler[StampDirectoryCommand]
}

// NewStampDirectoryHandler creates a handler that opens a service per command
// through factory and hands the resulting report to reporter (which may be nil).
func NewStampDirectoryHandler(factory ServiceFactory, reporter StampReporter, logger interfaces.Logger, opts ...commands.HandlerOption[StampDirectoryCommand]) *StampDirectoryHandler {
	baseLogger := logging.EnsureLogger(logger)

	exec := func(ctx context.Context, msg StampDirectoryCommand) error {
		service, err := factory(strings.TrimSpace(msg.Directory), strings.TrimSpace(msg.Cutoff))
		if err != nil {
			return err
		}

		report, err := service.Apply(ctx, interfaces.ApplyOptions{DryRun: msg.DryRun})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"run_id":        report.RunID.String(),
			"stamped_count": report.Stamped,
			"skipped_count": report.Skipped,
			"dry_run":       report.DryRun,
		}).Info("plans.command.stamp_directory.completed")

		if reporter != nil {
			reporter(ctx, report)
		}
		return nil
	}

	// A stamp run rewrites files one by one, so it is never cut short by a deadline.
	handlerOpts := []commands.HandlerOption[StampDirectoryCommand]{
		commands.WithTimeout[StampDirectoryCommand](0),
		commands.WithLogger[StampDirectoryCommand](baseLogger),
		commands.WithOperation[StampDirectoryCommand](stampOperation),
		commands.WithMessageFields(func(msg StampDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Cutoff != "" {
				fields["cutoff"] = msg.Cutoff
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[StampDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &StampDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[StampDirectoryCommand].
func (h *StampDirectoryHandler) Execute(ctx context.Context, msg StampDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PreviewPlanHandler computes a single plan preview through the shared command handler.
type PreviewPlanHandler struct {
	inner *commands.Handler[PreviewPlanCommand]
}

// NewPreviewPlanHandler creates a handler that opens a service per command
// through factory and hands the preview to reporter (which may be nil).
func NewPreviewPlanHandler(factory ServiceFactory, reporter PreviewReporter, logger interfaces.Logger, opts ...commands.HandlerOption[PreviewPlanCommand]) *PreviewPlanHandler {
	baseLogger := logging.EnsureLogger(logger)

	exec := func(ctx context.Context, msg PreviewPlanCommand) error {
		service, err := factory(strings.TrimSpace(msg.Directory), strings.TrimSpace(msg.Cutoff))
		if err != nil {
			return err
		}

		preview, err := service.Preview(ctx, msg.File, interfaces.PreviewOptions{RenderHTML: msg.HTML})
		if err != nil {
			if errors.Is(err, plans.ErrPlanNotFound) {
				return goerrors.Wrap(err, goerrors.CategoryNotFound, "plan not found").
					WithTextCode(planNotFoundCode)
			}
			return err
		}

		if reporter != nil {
			reporter(ctx, preview)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[PreviewPlanCommand]{
		commands.WithLogger[PreviewPlanCommand](baseLogger),
		commands.WithOperation[PreviewPlanCommand](previewOperation),
		commands.WithMessageFields(func(msg PreviewPlanCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
				"plan_file": msg.File,
			}
			if msg.HTML {
				fields["html"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PreviewPlanCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PreviewPlanHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PreviewPlanCommand].
func (h *PreviewPlanHandler) Execute(ctx context.Context, msg PreviewPlanCommand) error {
	return h.inner.Execute(ctx, msg)
}
