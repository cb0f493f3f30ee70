package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geoedit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rotation_sensitivity: 2
duplicate_offset: 0.001
mapping:
  lat: LAT_DD
  lon: LON_DD
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.RotationSensitivity)
	assert.Equal(t, 0.5, cfg.AltitudeSensitivity)
	assert.Equal(t, 0.001, cfg.DuplicateOffset)
	assert.Equal(t, "LAT_DD", cfg.Mapping.Lat)
	assert.Equal(t, "LON_DD", cfg.Mapping.Lon)
	assert.Equal(t, 100, cfg.SchemaSampleRows)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema_sample_rows: 0\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("rotation_sensitivity: [\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.DBPath = "other.db"
	require.NoError(t, cfg.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestMappingForPrefersConfiguredColumns(t *testing.T) {
	cfg := Default()
	cfg.Mapping.Alt = "height_agl"
	m := cfg.MappingFor([]string{"name", "latitude", "longitude", "altitude", "height_agl"})
	assert.Equal(t, "latitude", m.Lat)
	assert.Equal(t, "longitude", m.Lon)
	assert.Equal(t, "height_agl", m.Alt)
}
