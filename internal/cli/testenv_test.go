package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv provides an isolated config and data directory per test.
type testEnv struct {
	t       *testing.T
	dir     string
	config  string
	dataDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		t:       t,
		dir:     dir,
		config:  filepath.Join(dir, "config"),
		dataDir: filepath.Join(dir, "data"),
	}
}

// writeConfig replaces config.yaml with content.
func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.config, 0o755))
	require.NoError(e.t, os.WriteFile(filepath.Join(e.config, configFileExt), []byte(content), 0o644))
}

type cmdResult struct {
	Stdout string
	Stderr string
}

// run executes hydrocard in process with the env's directories.
func (e *testEnv) run(args ...string) (cmdResult, error) {
	e.t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", e.config, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return cmdResult{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// mustRun executes hydrocard and fails the test on error.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res, err := e.run(args...)
	require.NoError(e.t, err, "hydrocard %v\nstdout: %s\nstderr: %s", args, res.Stdout, res.Stderr)
	return res
}

// lines splits output into non-empty lines.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// storedID returns the id column of a read output line.
func storedID(t *testing.T, line string) string {
	t.Helper()
	fields := strings.Split(line, "\t")
	require.Len(t, fields, 3, "read output %q", line)
	return fields[0]
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
