package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/larder/internal/paths"
	"github.com/mesh-intelligence/larder/internal/scenario"
)

var arenaPath = filepath.Join("testdata", "arena.yaml")

// execute runs the root command with args and an isolated config directory
// unless args name one.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, t.TempDir())

	out := &bytes.Buffer{}
	cmd := NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "version", []byte(out))
}

func TestVersion_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "version")
	require.NoError(t, err)

	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, currentVersion(), info)
	assert.Contains(t, info.Kinds, "point")
	assert.Equal(t, []string{"entity id", "to be deleted"}, info.Reserved)
}

func TestRun_Text(t *testing.T) {
	out, err := execute(t, "run", arenaPath)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "run_arena", []byte(out))
}

func TestRun_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "run", arenaPath)
	require.NoError(t, err)

	var report scenario.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "arena", report.Scenario)
	assert.NotEmpty(t, report.World)
	assert.Equal(t, 2, report.Entities)
	require.Len(t, report.Queries, 3)
	assert.Equal(t, [][]string{{"rock", "(5, 5)"}, {"drone", "(8, 2)"}}, report.Queries[1].Rows)
	assert.Equal(t, []scenario.ResourceValue{
		{Step: 7, Name: "frame time", Value: "0.016"},
		{Step: 8, Name: "cursor", Value: "(3, 4)"},
	}, report.Resources)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	failing := filepath.Join(dir, "failing.yaml")
	require.NoError(t, os.WriteFile(failing, []byte("name: failing\ncomponents: []\nsteps:\n  - expect_entities: 1\n"), 0o644))

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "missing file", args: []string{"run", filepath.Join(dir, "missing.yaml")}, wantMsg: "read scenario file"},
		{name: "failed expectation", args: []string{"run", failing}, wantMsg: "step 0: expectation failed"},
		{name: "no argument", args: []string{"run"}, wantMsg: "accepts 1 arg"},
		{name: "bad format", args: []string{"--format", "xml", "run", arenaPath}, wantMsg: "invalid format"},
		{name: "bad log level", args: []string{"--log-level", "loud", "run", arenaPath}, wantMsg: "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "validate", arenaPath)
		require.NoError(t, err)
		newGoldie(t).Assert(t, "validate_arena", []byte(out))
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "--format", "json", "validate", arenaPath)
		require.NoError(t, err)

		var result validateResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, validateResult{Scenario: "arena", Valid: true, Components: 4, Resources: 2, Steps: 11}, result)
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: bad\ncomponents: [a]\nsteps:\n  - query: [b]\n"), 0o644))

		_, err := execute(t, "validate", path)
		require.Error(t, err)
		assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
		assert.Equal(t, exitUserError, exitCode(err))
	})
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	out, err := execute(t, "--config-dir", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Config written to")

	data, err := os.ReadFile(paths.ConfigFile(dir))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, configFile{LogLevel: "info", Format: "text"}, cfg)

	out, err = execute(t, "--config-dir", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Config already exists")
}

func TestConfig_FormatFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(paths.ConfigFile(dir), []byte("format: json\nlog_level: warn\n"), 0o644))

	out, err := execute(t, "--config-dir", dir, "validate", arenaPath)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "expected JSON output, got %q", out)

	t.Run("flag overrides file", func(t *testing.T) {
		out, err := execute(t, "--config-dir", dir, "--format", "text", "validate", arenaPath)
		require.NoError(t, err)
		assert.Contains(t, out, "scenario arena is valid")
	})

	t.Run("environment selects directory", func(t *testing.T) {
		out := &bytes.Buffer{}
		cmd := NewRootCmd()
		cmd.SetOut(out)
		cmd.SetErr(io.Discard)
		cmd.SetArgs([]string{"validate", arenaPath})
		t.Setenv(paths.EnvConfigDir, dir)

		require.NoError(t, cmd.Execute())
		assert.True(t, json.Valid(out.Bytes()))
	})
}

func TestConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(paths.ConfigFile(dir), []byte("format: [unterminated\n"), 0o644))

	_, err := execute(t, "--config-dir", dir, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("plain")))
	assert.Equal(t, exitSysError, exitCode(withCode(exitSysError, errors.New("disk"))))

	wrapped := withCode(exitSysError, os.ErrPermission)
	assert.ErrorIs(t, wrapped, os.ErrPermission)
}
