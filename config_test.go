package planstatus_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-planstatus"
)

func TestDefaultConfigMatchesCompiledInConstants(t *testing.T) {
	cfg := planstatus.DefaultConfig()
	if cfg.Plans.Dir != "doc/plans" {
		t.Fatalf("expected doc/plans, got %q", cfg.Plans.Dir)
	}
	if cfg.Plans.Cutoff != "2026-02-05" {
		t.Fatalf("expected 2026-02-05, got %q", cfg.Plans.Cutoff)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestConfigValidateCutoff(t *testing.T) {
	cfg := planstatus.DefaultConfig()
	cfg.Plans.Cutoff = "Feb 5"

	if err := cfg.Validate(); !errors.Is(err, planstatus.ErrCutoffInvalid) {
		t.Fatalf("expected ErrCutoffInvalid, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := planstatus.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, planstatus.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}
