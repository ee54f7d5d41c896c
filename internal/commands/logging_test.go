package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

type namedProvider struct {
	requested []string
}

func (p *namedProvider) GetLogger(name string) interfaces.Logger {
	p.requested = append(p.requested, name)
	return nil
}

func TestCommandLoggerScopesModuleName(t *testing.T) {
	provider := &namedProvider{}

	logger := CommandLogger(provider, " plans ")

	assert.NotNil(t, logger)
	assert.Equal(t, []string{"planstatus.commands.plans"}, provider.requested)
}

func TestCommandLoggerDefaultsToCommandsNamespace(t *testing.T) {
	provider := &namedProvider{}

	logger := CommandLogger(provider, "")
	logger.WithContext(context.Background()).Debug("noop")

	assert.Equal(t, []string{"planstatus.commands"}, provider.requested)
}

func TestCommandLoggerWithoutProvider(t *testing.T) {
	assert.NotNil(t, CommandLogger(nil, "plans"))
}
