package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 20, cfg.Matching.ChunkSize)
	require.Equal(t, uint64(256), cfg.Matching.Base)
	require.Equal(t, uint64(5003943032159437), cfg.Matching.Modulus)
	require.Equal(t, 10, cfg.Matching.BitsPerChunk)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
matching:
  chunk_size: 8
  modulus: 1000003
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Matching.ChunkSize)
	require.Equal(t, uint64(1000003), cfg.Matching.Modulus)
	require.Equal(t, "debug", cfg.Logging.Level)
	// unmentioned values keep their defaults
	require.Equal(t, uint64(256), cfg.Matching.Base)
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RKMATCH_CHUNK_SIZE", "12")
	t.Setenv("RKMATCH_MODULUS", "97")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Matching.ChunkSize)
	require.Equal(t, uint64(97), cfg.Matching.Modulus)
}

func TestEnvOverrideRejectsGarbage(t *testing.T) {
	t.Setenv("RKMATCH_CHUNK_SIZE", "twelve")
	_, err := Load("")
	require.Error(t, err)
}
