package planscmd

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-planstatus/internal/commands"
	"github.com/goliatone/go-planstatus/internal/commands/fixtures"
	"github.com/goliatone/go-planstatus/internal/logging"
	"github.com/goliatone/go-planstatus/internal/plans"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

type stubPlanService struct {
	applyCalls     []interfaces.ApplyOptions
	applyDeadlines []bool
	previewCalls   []string

	report  *interfaces.StampReport
	preview *interfaces.PlanPreview

	applyErr   error
	previewErr error
}

func (s *stubPlanService) Discover(context.Context) ([]interfaces.PlanEntry, error) {
	return nil, nil
}

func (s *stubPlanService) Plan(context.Context) ([]interfaces.PlanResult, error) {
	return nil, nil
}

func (s *stubPlanService) Apply(ctx context.Context, opts interfaces.ApplyOptions) (*interfaces.StampReport, error) {
	s.applyCalls = append(s.applyCalls, opts)
	_, hasDeadline := ctx.Deadline()
	s.applyDeadlines = append(s.applyDeadlines, hasDeadline)
	if s.applyErr != nil {
		return nil, s.applyErr
	}
	return s.report, nil
}

func (s *stubPlanService) Preview(_ context.Context, name string, _ interfaces.PreviewOptions) (*interfaces.PlanPreview, error) {
	s.previewCalls = append(s.previewCalls, name)
	if s.previewErr != nil {
		return nil, s.previewErr
	}
	return s.preview, nil
}

type factoryCall struct {
	dir    string
	cutoff string
}

func stubFactory(service interfaces.PlanService, calls *[]factoryCall) ServiceFactory {
	return func(dir, cutoff string) (interfaces.PlanService, error) {
		*calls = append(*calls, factoryCall{dir: dir, cutoff: cutoff})
		return service, nil
	}
}

type captureLogger struct {
	fields       []map[string]any
	infoMessages []string
}

var _ interfaces.Logger = (*captureLogger)(nil)

func (c *captureLogger) Trace(string, ...any) {}
func (c *captureLogger) Debug(string, ...any) {}
func (c *captureLogger) Info(msg string, _ ...any) {
	c.infoMessages = append(c.infoMessages, msg)
}
func (c *captureLogger) Warn(string, ...any)  {}
func (c *captureLogger) Error(string, ...any) {}
func (c *captureLogger) Fatal(string, ...any) {}

func (c *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	c.fields = append(c.fields, copied)
	return c
}

func (c *captureLogger) WithContext(context.Context) interfaces.Logger {
	return c
}

func TestStampDirectoryHandlerAppliesService(t *testing.T) {
	runID := uuid.New()
	service := &stubPlanService{
		report: &interfaces.StampReport{RunID: runID, Stamped: 3, Skipped: 1, DryRun: true},
	}
	var calls []factoryCall
	var reported *interfaces.StampReport
	logger := &captureLogger{}

	handler := NewStampDirectoryHandler(stubFactory(service, &calls), func(_ context.Context, report *interfaces.StampReport) {
		reported = report
	}, logger)

	err := handler.Execute(context.Background(), StampDirectoryCommand{
		Directory: " doc/plans ",
		Cutoff:    "2026-02-05",
		DryRun:    true,
	})
	require.NoError(t, err)

	require.Equal(t, []factoryCall{{dir: "doc/plans", cutoff: "2026-02-05"}}, calls)
	require.Len(t, service.applyCalls, 1)
	assert.True(t, service.applyCalls[0].DryRun)
	assert.Same(t, service.report, reported)

	assert.Contains(t, logger.infoMessages, "plans.command.stamp_directory.completed")
	found := false
	for _, fields := range logger.fields {
		if count, ok := fields["stamped_count"]; ok {
			found = true
			assert.Equal(t, 3, count)
			assert.Equal(t, runID.String(), fields["run_id"])
		}
	}
	assert.True(t, found, "expected summary fields recorded, got %#v", logger.fields)
}

func TestStampDirectoryHandlerRunsWithoutDeadline(t *testing.T) {
	service := &stubPlanService{report: &interfaces.StampReport{}}
	var calls []factoryCall

	handler := NewStampDirectoryHandler(stubFactory(service, &calls), nil, nil)
	require.NoError(t, handler.Execute(context.Background(), StampDirectoryCommand{Directory: "doc/plans"}))
	assert.Equal(t, []bool{false}, service.applyDeadlines)

	bounded := NewStampDirectoryHandler(stubFactory(service, &calls), nil, nil,
		commands.WithTimeout[StampDirectoryCommand](time.Minute))
	require.NoError(t, bounded.Execute(context.Background(), StampDirectoryCommand{Directory: "doc/plans"}))
	assert.Equal(t, []bool{false, true}, service.applyDeadlines)
}

func TestStampDirectoryHandlerValidationSkipsService(t *testing.T) {
	var calls []factoryCall
	handler := NewStampDirectoryHandler(stubFactory(&stubPlanService{}, &calls), nil, logging.NoOp())

	err := handler.Execute(context.Background(), StampDirectoryCommand{Directory: "doc/plans", Cutoff: "soon"})
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.Empty(t, calls)
}

func TestStampDirectoryHandlerWrapsServiceErrors(t *testing.T) {
	writeErr := errors.New("disk full")
	service := &stubPlanService{applyErr: fmt.Errorf("plans write a.md: %w", writeErr)}
	var calls []factoryCall
	handler := NewStampDirectoryHandler(stubFactory(service, &calls), nil, nil)

	err := handler.Execute(context.Background(), StampDirectoryCommand{Directory: "doc/plans"})
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryCommand))
	assert.ErrorIs(t, err, writeErr)
}

func TestStampDirectoryHandlerFactoryError(t *testing.T) {
	factoryErr := errors.New("no such directory")
	handler := NewStampDirectoryHandler(func(string, string) (interfaces.PlanService, error) {
		return nil, factoryErr
	}, nil, nil)

	err := handler.Execute(context.Background(), StampDirectoryCommand{Directory: "missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, factoryErr)
}

func TestStampDirectoryHandlerContextCancellation(t *testing.T) {
	service := &stubPlanService{}
	var calls []factoryCall
	handler := NewStampDirectoryHandler(stubFactory(service, &calls), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, StampDirectoryCommand{Directory: "doc/plans"})
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryCommand))
	assert.Empty(t, service.applyCalls)
}

func TestPreviewPlanHandlerReportsPreview(t *testing.T) {
	service := &stubPlanService{
		preview: &interfaces.PlanPreview{Markdown: []byte("# Foo\n"), Changed: true},
	}
	var calls []factoryCall
	var got *interfaces.PlanPreview

	handler := NewPreviewPlanHandler(stubFactory(service, &calls), func(_ context.Context, preview *interfaces.PlanPreview) {
		got = preview
	}, nil)

	err := handler.Execute(context.Background(), PreviewPlanCommand{Directory: "doc/plans", File: "2025-01-01-foo.md"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-01-foo.md"}, service.previewCalls)
	assert.Same(t, service.preview, got)
}

func TestPreviewPlanHandlerMapsNotFound(t *testing.T) {
	service := &stubPlanService{previewErr: fmt.Errorf("%w: 2025-01-01-gone.md", plans.ErrPlanNotFound)}
	var calls []factoryCall
	handler := NewPreviewPlanHandler(stubFactory(service, &calls), nil, nil)

	err := handler.Execute(context.Background(), PreviewPlanCommand{Directory: "doc/plans", File: "2025-01-01-gone.md"})
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryNotFound))
	assert.ErrorIs(t, err, plans.ErrPlanNotFound)
}

func TestRegisterPlanCommandsRegistersHandlers(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	var calls []factoryCall

	set, err := RegisterPlanCommands(reg, stubFactory(&stubPlanService{}, &calls), nil)
	require.NoError(t, err)
	require.NotNil(t, set)
	require.Len(t, reg.Handlers, 2)
	assert.Same(t, set.Stamp, reg.Handlers[0])
	assert.Same(t, set.Preview, reg.Handlers[1])
}

func TestRegisterPlanCommandsHandlerOptionsApplied(t *testing.T) {
	stampApplied := false
	previewApplied := false
	var calls []factoryCall

	_, err := RegisterPlanCommands(nil, stubFactory(&stubPlanService{}, &calls), nil,
		WithStampHandlerOptions(func(*commands.Handler[StampDirectoryCommand]) {
			stampApplied = true
		}),
		WithPreviewHandlerOptions(func(*commands.Handler[PreviewPlanCommand]) {
			previewApplied = true
		}),
	)
	require.NoError(t, err)
	assert.True(t, stampApplied)
	assert.True(t, previewApplied)
}

func TestRegisterPlanCommandsErrors(t *testing.T) {
	_, err := RegisterPlanCommands(nil, nil, nil)
	assert.Error(t, err)

	reg := fixtures.NewRecordingRegistry()
	reg.Err = errors.New("registry closed")
	var calls []factoryCall
	_, err = RegisterPlanCommands(reg, stubFactory(&stubPlanService{}, &calls), nil)
	assert.ErrorIs(t, err, reg.Err)
}
