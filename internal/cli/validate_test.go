package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "stagebench.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("color: never\nwarmup: 2s\n"), 0o600))

	var buf bytes.Buffer
	require.NoError(t, Validate(configPath, &buf))
	assert.Contains(t, buf.String(), "Configuration is valid")
}

func TestValidate_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "stagebench.toml")
	content := "color = \"rainbow\"\nformat = \"xml\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	var buf bytes.Buffer
	err := Validate(configPath, &buf)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, buf.String(), "Found 2 error(s)")
	assert.Contains(t, buf.String(), "[color]")
	assert.Contains(t, buf.String(), "[format]")
}

func TestValidate_NoPath(t *testing.T) {
	assert.Error(t, Validate("", &bytes.Buffer{}))
	assert.Error(t, Validate(filepath.Join(t.TempDir(), "missing.yml"), &bytes.Buffer{}))
}
