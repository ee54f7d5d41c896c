package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

// CommandsModule prefixes every command handler logger.
const CommandsModule = "planstatus.commands"

const (
	rootModule  = "planstatus"
	plansModule = "planstatus.plans"
	cliModule   = "planstatus.cli"
)

const (
	fieldPlanFile   = "plan_file"
	fieldPlanSlug   = "plan_slug"
	fieldPlanAction = "stamp_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PlansLogger returns the logger namespace reserved for plan discovery and stamping.
func PlansLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, plansModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, CommandsModule)
}

// CLILogger returns the logger namespace used by the planstatus binary.
func CLILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cliModule)
}

// WithPlanContext enriches the logger with the plan filename, slug and the
// action taken. Empty values are ignored.
func WithPlanContext(logger interfaces.Logger, file, slug, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(file); trimmed != "" {
		fields[fieldPlanFile] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldPlanSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldPlanAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
