package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-planstatus"
)

// EnvPrefix namespaces the environment variables read by the CLI, e.g.
// PLANSTATUS_PLANS_DIR or PLANSTATUS_LOGGING_LEVEL.
const EnvPrefix = "PLANSTATUS"

// Configuration keys shared by flags, environment variables and config files.
const (
	KeyPlansDir           = "plans.dir"
	KeyPlansCutoff        = "plans.cutoff"
	KeyPlansPattern       = "plans.pattern"
	KeyMarkdownExtensions = "markdown.extensions"
	KeyMarkdownSanitize   = "markdown.sanitize"
	KeyMarkdownHardWraps  = "markdown.hard_wraps"
	KeyMarkdownSafeMode   = "markdown.safe_mode"
	KeyLoggingProvider    = "logging.provider"
	KeyLoggingLevel       = "logging.level"
	KeyLoggingFormat      = "logging.format"
	KeyLoggingAddSource   = "logging.add_source"
	KeyLoggingFocus       = "logging.focus"
)

const defaultConfigName = ".planstatus"

// Options captures what the CLI resolved before building the module.
type Options struct {
	Config        planstatus.Config
	LogOutput     io.Writer
	ModuleOptions []planstatus.Option
}

// NewViper returns a viper instance seeded with the compiled-in defaults and
// bound to PLANSTATUS_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	defaults := planstatus.DefaultConfig()

	v.SetDefault(KeyPlansDir, defaults.Plans.Dir)
	v.SetDefault(KeyPlansCutoff, defaults.Plans.Cutoff)
	v.SetDefault(KeyPlansPattern, defaults.Plans.Pattern)
	v.SetDefault(KeyMarkdownExtensions, defaults.Markdown.Extensions)
	v.SetDefault(KeyMarkdownSanitize, defaults.Markdown.Sanitize)
	v.SetDefault(KeyMarkdownHardWraps, defaults.Markdown.HardWraps)
	v.SetDefault(KeyMarkdownSafeMode, defaults.Markdown.SafeMode)
	v.SetDefault(KeyLoggingProvider, defaults.Logging.Provider)
	v.SetDefault(KeyLoggingLevel, defaults.Logging.Level)
	v.SetDefault(KeyLoggingFormat, defaults.Logging.Format)
	v.SetDefault(KeyLoggingAddSource, defaults.Logging.AddSource)
	v.SetDefault(KeyLoggingFocus, defaults.Logging.Focus)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads configFile (or an optional .planstatus.yaml in the working
// directory when configFile is empty) and resolves the layered configuration.
func LoadConfig(v *viper.Viper, configFile string) (planstatus.Config, error) {
	if v == nil {
		v = NewViper()
	}

	if path := strings.TrimSpace(configFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return planstatus.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return planstatus.Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := planstatus.DefaultConfig()
	cfg.Plans.Dir = strings.TrimSpace(v.GetString(KeyPlansDir))
	cfg.Plans.Cutoff = strings.TrimSpace(v.GetString(KeyPlansCutoff))
	cfg.Plans.Pattern = strings.TrimSpace(v.GetString(KeyPlansPattern))
	cfg.Markdown.Extensions = cloneStrings(v.GetStringSlice(KeyMarkdownExtensions))
	cfg.Markdown.Sanitize = v.GetBool(KeyMarkdownSanitize)
	cfg.Markdown.HardWraps = v.GetBool(KeyMarkdownHardWraps)
	cfg.Markdown.SafeMode = v.GetBool(KeyMarkdownSafeMode)
	cfg.Logging.Provider = strings.TrimSpace(v.GetString(KeyLoggingProvider))
	cfg.Logging.Level = strings.TrimSpace(v.GetString(KeyLoggingLevel))
	cfg.Logging.Format = strings.TrimSpace(v.GetString(KeyLoggingFormat))
	cfg.Logging.AddSource = v.GetBool(KeyLoggingAddSource)
	cfg.Logging.Focus = cloneStrings(v.GetStringSlice(KeyLoggingFocus))

	if err := cfg.Validate(); err != nil {
		return planstatus.Config{}, err
	}
	return cfg, nil
}

// BuildModule constructs the planstatus module for a CLI invocation.
func BuildModule(opts Options) (*planstatus.Module, error) {
	moduleOpts := make([]planstatus.Option, 0, len(opts.ModuleOptions)+1)
	if opts.LogOutput != nil {
		moduleOpts = append(moduleOpts, planstatus.WithLogOutput(opts.LogOutput))
	}
	moduleOpts = append(moduleOpts, opts.ModuleOptions...)

	module, err := planstatus.New(opts.Config, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise planstatus module: %w", err)
	}
	return module, nil
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
