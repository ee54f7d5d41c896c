package commands

import (
	"strings"

	"github.com/goliatone/go-planstatus/internal/logging"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

// CommandLogger returns a logger scoped to planstatus.commands.<module>,
// tagged with the command component and module name.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	var logger interfaces.Logger
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
		logger = logging.CommandsLogger(provider)
	} else {
		logger = logging.ModuleLogger(provider, logging.CommandsModule+"."+name)
	}
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
