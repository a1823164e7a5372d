package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qa-harness/e2e-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "e2e-harness dev (commit none)\n", out.String())
}

func TestSuiteCommandsAreRegistered(t *testing.T) {
	for _, name := range []string{"api", "ui", "all", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRerunCommand(t *testing.T) {
	p := commandParams{configFile: "conf/harness.yaml", seed: 42}
	assert.Equal(t, []string{"e2e-harness", "ui", "--config", "conf/harness.yaml", "--seed", "42"}, p.rerunCommand("ui"))

	p = commandParams{}
	assert.Equal(t, []string{"e2e-harness", "api"}, p.rerunCommand("api"))
}

func TestReport(t *testing.T) {
	rep := newReport(&harnessRun{id: "run-1", started: time.Now()})
	rep.add("api", framework.Results{
		Tests: []framework.TestResult{
			{TestID: framework.TestID{Path: []string{"create"}}},
			{TestID: framework.TestID{Path: []string{"get"}}, Errors: []error{errors.New("timed out")}},
		},
		Failures: []framework.TestResult{
			{TestID: framework.TestID{Path: []string{"get"}}, Errors: []error{errors.New("timed out")}, Duration: 1500 * time.Millisecond},
		},
	})
	path := filepath.Join(t.TempDir(), "report.yaml")

	require.NoError(t, rep.write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Contains(t, string(data), "test: get")
	assert.Contains(t, string(data), "duration: 1.5s")
	assert.Contains(t, string(data), "- timed out")
	assert.Contains(t, string(data), "passed: 1")
}
