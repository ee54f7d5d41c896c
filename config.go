package planstatus

import "github.com/goliatone/go-planstatus/internal/runtimeconfig"

var (
	ErrPlansDirRequired       = runtimeconfig.ErrPlansDirRequired
	ErrCutoffInvalid          = runtimeconfig.ErrCutoffInvalid
	ErrPatternInvalid         = runtimeconfig.ErrPatternInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	PlansConfig          = runtimeconfig.PlansConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
