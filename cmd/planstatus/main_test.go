package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-planstatus"
	"github.com/goliatone/go-planstatus/cmd/planstatus/internal/bootstrap"
)

func writePlans(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestStampCommandRewritesPlans(t *testing.T) {
	dir := writePlans(t, map[string]string{
		"2025-01-01-foo-design.md": "# Foo design\n**Goal:** Ship foo\n### Build it\n",
		"2025-06-01-foo-impl.md":   "# Foo impl\n",
	})

	stdout, _, err := runCLI(t, "stamp", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "stamped 2025-01-01-foo-design.md (Historical (superseded), superseded by 2025-06-01-foo-impl.md)")
	assert.Contains(t, stdout, "stamped 2, skipped 0")

	design := readFile(t, filepath.Join(dir, "2025-01-01-foo-design.md"))
	assert.True(t, strings.HasPrefix(design, "# Foo design\n\n> Status: Historical (superseded)\n"))

	stdout, _, err = runCLI(t, "stamp", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "stamped 0, skipped 2")
	assert.Equal(t, design, readFile(t, filepath.Join(dir, "2025-01-01-foo-design.md")))
}

func TestStampCommandDryRun(t *testing.T) {
	source := "# Foo\n"
	dir := writePlans(t, map[string]string{"2025-01-01-foo.md": source})

	stdout, _, err := runCLI(t, "stamp", "--dir", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "would stamp 2025-01-01-foo.md")
	assert.Contains(t, stdout, "would stamp 1, skipped 0")
	assert.Equal(t, source, readFile(t, filepath.Join(dir, "2025-01-01-foo.md")))
}

func TestStampCommandHonoursCutoffFromEnvironment(t *testing.T) {
	dir := writePlans(t, map[string]string{
		"2025-01-01-alpha.md": "# Alpha\n",
		"2025-06-01-beta.md":  "# Beta\n",
	})
	t.Setenv("PLANSTATUS_PLANS_CUTOFF", "2025-03-01")

	stdout, _, err := runCLI(t, "stamp", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "stamped 1, skipped 0")
	assert.Equal(t, "# Beta\n", readFile(t, filepath.Join(dir, "2025-06-01-beta.md")))
}

func TestStampCommandReadsConfigFile(t *testing.T) {
	dir := writePlans(t, map[string]string{"2025-01-01-alpha.md": "# Alpha\n"})
	configPath := filepath.Join(t.TempDir(), "planstatus.yaml")
	config := "plans:\n  dir: " + dir + "\n  cutoff: \"2024-01-01\"\nlogging:\n  level: warn\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	stdout, _, err := runCLI(t, "stamp", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "stamped 0, skipped 0")
	assert.Equal(t, "# Alpha\n", readFile(t, filepath.Join(dir, "2025-01-01-alpha.md")))
}

func TestStampCommandRejectsInvalidCutoff(t *testing.T) {
	dir := writePlans(t, map[string]string{"2025-01-01-alpha.md": "# Alpha\n"})

	_, _, err := runCLI(t, "stamp", "--dir", dir, "--cutoff", "tomorrow")
	require.Error(t, err)
	assert.ErrorIs(t, err, planstatus.ErrCutoffInvalid)
}

func TestStampCommandMissingDirectory(t *testing.T) {
	_, _, err := runCLI(t, "stamp", "--dir", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestListCommandShowsPlans(t *testing.T) {
	dir := writePlans(t, map[string]string{
		"2025-01-01-foo-design.md": "# Foo design\n",
		"2025-06-01-foo-impl.md":   "# Foo impl\n",
	})

	stdout, _, err := runCLI(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "foo-design")
	assert.Contains(t, stdout, "2025-06-01-foo-impl.md")
	assert.Contains(t, stdout, "Foo impl")
}

func TestPreviewCommandPrintsStampedPlan(t *testing.T) {
	source := "# Foo\n### First\n"
	dir := writePlans(t, map[string]string{"2025-01-01-foo.md": source})

	stdout, _, err := runCLI(t, "preview", "--dir", dir, "--file", "2025-01-01-foo.md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# Foo\n\n> Status: Historical\n"))
	assert.Equal(t, source, readFile(t, filepath.Join(dir, "2025-01-01-foo.md")))

	stdout, _, err = runCLI(t, "preview", "--dir", dir, "--file", "2025-01-01-foo.md", "--html")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<blockquote>")
}

func TestPreviewCommandRequiresFile(t *testing.T) {
	_, _, err := runCLI(t, "preview", "--dir", t.TempDir())
	require.Error(t, err)
}

func TestCommandsUseModuleBuilder(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	buildErr := errors.New("builder failed")
	var captured bootstrap.Options
	moduleBuilder = func(opts bootstrap.Options) (*planstatus.Module, error) {
		captured = opts
		return nil, buildErr
	}

	_, _, err := runCLI(t, "stamp", "--dir", "plans", "--log-level", "debug")
	require.ErrorIs(t, err, buildErr)
	assert.Equal(t, "plans", captured.Config.Plans.Dir)
	assert.Equal(t, "debug", captured.Config.Logging.Level)
	assert.Len(t, captured.ModuleOptions, 1)
}
