package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: burst
description: one hour of four arrivals
initial_users: 1
synthetic_ratio: 1.5
deposits: [4]
expect:
  final_anonymity_set: 5
  final_synthetic: 6
  max_linkability_below: 0.1
`

const failingScenario = `name: doomed
description: expectation that cannot hold
initial_users: 1
synthetic_ratio: 1.5
deposits: [4]
expect:
  final_anonymity_set: 999
`

// writeScenarioDir creates a temp scenarios directory with the given files.
func writeScenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestTestCommand_PassingScenario(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{"burst.yaml": passingScenario})

	out, err := executeCommand("test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ burst")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_FailingScenario(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{"doomed.yaml": failingScenario})

	out, err := executeCommand("test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ doomed")
	assert.Contains(t, out, "final_anonymity_set")
}

func TestTestCommand_GoldenUpdateThenMatch(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{"burst.yaml": passingScenario})

	out, err := executeCommand("test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	goldenPath := filepath.Join(dir, "golden", "burst.golden")
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"p_link":"0.088333"`)

	// A second run must match the freshly written golden file.
	_, err = executeCommand("test", dir)
	assert.NoError(t, err)
}

func TestTestCommand_GoldenMismatch(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{"burst.yaml": passingScenario})

	_, err := executeCommand("test", dir, "--update")
	require.NoError(t, err)

	goldenPath := filepath.Join(dir, "golden", "burst.golden")
	require.NoError(t, os.WriteFile(goldenPath, []byte("{\"stale\":true}\n"), 0o644))

	out, err := executeCommand("test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{
		"burst.yaml":  passingScenario,
		"doomed.yaml": failingScenario,
	})

	out, err := executeCommand("test", dir, "--filter", "burst*")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ burst")
	assert.NotContains(t, out, "doomed")
}

func TestTestCommand_JSONOutput(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{
		"burst.yaml":  passingScenario,
		"doomed.yaml": failingScenario,
	})

	out, err := executeCommand("test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	assert.Equal(t, 2, resp.Data.Total)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
}

func TestTestCommand_MissingDirectory(t *testing.T) {
	_, err := executeCommand("test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_EmptyDirectory(t *testing.T) {
	out, err := executeCommand("test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_MalformedScenario(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{"bad.yaml": "name: [not a string\n"})

	out, err := executeCommand("test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Load error")
}
