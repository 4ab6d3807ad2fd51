package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefinition(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "def.hcl"), []byte(src), 0o644))
	return dir
}

func TestRunCompilesDefinition(t *testing.T) {
	dir := writeDefinition(t, `
waveform "readout" {}

condition "repeat" {
  source = "counter"
  limit  = 2
}

template "main" {
  loop "repeat" {
    pulse "readout" {}
  }
}
`)

	cfg, err := NewConfig(Config{DefinitionPaths: []string{dir}, LogLevel: "error"})
	require.NoError(t, err)

	var out bytes.Buffer
	a := New(&out, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))

	want := "main:\n" +
		"    0  exec readout\n" +
		"    1  exec readout\n" +
		"    2  stop\n"
	assert.Equal(t, want, out.String())
}

func TestRunUnknownTemplate(t *testing.T) {
	dir := writeDefinition(t, `
waveform "w" {}
template "main" { pulse "w" {} }
`)

	cfg, err := NewConfig(Config{
		DefinitionPaths: []string{dir},
		TemplateName:    "ghost",
		LogLevel:        "error",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	err = New(&out, cfg).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestRunLoadFailure(t *testing.T) {
	cfg, err := NewConfig(Config{DefinitionPaths: []string{"/does/not/exist"}, LogLevel: "error"})
	require.NoError(t, err)

	var out bytes.Buffer
	err = New(&out, cfg).Run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewConfigValidation(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.Error(t, err)

	cfg, err := NewConfig(Config{DefinitionPaths: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.TemplateName)
}
