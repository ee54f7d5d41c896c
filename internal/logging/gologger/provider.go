package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-planstatus/internal/logging"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

// Config mirrors the logging section of the planstatus config.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus limits output to the named loggers, e.g. planstatus.plans.
	Focus []string
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out go-logger children named after planstatus modules.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the go-logger root used by every planstatus module.
func NewProvider(cfg Config) (*Provider, error) {
	opts, err := rootOptions(cfg)
	if err != nil {
		return nil, err
	}

	root := glog.NewLogger(opts...)
	var focus []string
	for _, name := range cfg.Focus {
		if name = strings.TrimSpace(name); name != "" {
			focus = append(focus, name)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

func rootOptions(cfg Config) ([]glog.Option, error) {
	var opts []glog.Option

	switch format := strings.ToLower(strings.TrimSpace(cfg.Format)); format {
	case "", "console":
		opts = append(opts, glog.WithLoggerTypeConsole())
	case "json":
		opts = append(opts, glog.WithLoggerTypeJSON())
	case "pretty":
		opts = append(opts, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("planstatus logging: go-logger has no %q format", cfg.Format)
	}

	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		opts = append(opts, glog.WithLevel(level))
	}
	if cfg.AddSource {
		opts = append(opts, glog.WithAddSource(true))
	}
	return opts, nil
}

// GetLogger returns the child logger for a planstatus module. The root
// logger is returned for a blank name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &planLogger{inner: inner}
}

// planLogger satisfies interfaces.Logger on top of a glog.Logger.
type planLogger struct {
	inner glog.Logger
}

var (
	_ interfaces.Logger       = (*planLogger)(nil)
	_ interfaces.FieldsLogger = (*planLogger)(nil)
)

func (l *planLogger) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *planLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *planLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *planLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *planLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *planLogger) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

// WithFields copies fields before handing them to go-logger. Loggers without
// native field support get them as sorted key/value pairs.
func (l *planLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	switch inner := l.inner.(type) {
	case glog.FieldsLogger:
		return adapt(inner.WithFields(maps.Clone(fields)))
	case interface{ With(...any) *glog.BaseLogger }:
		args := make([]any, 0, len(fields)*2)
		for _, key := range slices.Sorted(maps.Keys(fields)) {
			args = append(args, key, fields[key])
		}
		return adapt(inner.With(args...))
	default:
		return l
	}
}

func (l *planLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return adapt(l.inner.WithContext(ctx))
}
