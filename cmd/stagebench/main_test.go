package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := newApp(&out, &errOut).Run(context.Background(), append([]string{"stagebench"}, args...))
	return out.String(), err
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "--color", "never", "--warmup", "0s", "compare", "-n", "50", "-r", "strconv")
	require.NoError(t, err)
	assert.Contains(t, out, "vs ref")
	assert.Contains(t, out, "builder")
}

func TestPerfCommand_JSON(t *testing.T) {
	out, err := run(t, "--format", "json", "--warmup", "0s", "perf", "--iterations", "5")
	require.NoError(t, err)
	assert.Contains(t, out, `"iterations": 5`)
	assert.Contains(t, out, `"name": "TOTAL"`)
}

func TestLatencyCommand(t *testing.T) {
	out, err := run(t, "--color", "never", "--warmup", "0s", "latency", "-n", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "latency (")
}

func TestSchemaAndValidateCommands(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"header_template"`)

	path := filepath.Join(t.TempDir(), "stagebench.yml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\n"), 0o600))

	out, err = run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	out, err = run(t, "--config", path, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Validating: "+path)
}

func TestUnknownFormat(t *testing.T) {
	_, err := run(t, "--format", "xml", "--warmup", "0s", "compare", "-n", "1")
	assert.Error(t, err)
}
