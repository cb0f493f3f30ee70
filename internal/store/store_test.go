package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoedit/internal/dataset"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "geoedit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePoints() []dataset.FeaturePoint {
	return []dataset.FeaturePoint{
		{ID: "b", Lat: 20, Lon: 10, Alt: 30, Heading: 90, GimbalPitch: -45,
			Attributes: dataset.Attributes{"lat": 20.0, "lon": 10.0, "name": "wp1", "done": true, "gap": nil}},
		{ID: "a", Lat: 21.5, Lon: 11.25, Alt: 0,
			Attributes: dataset.Attributes{"lat": 21.5, "lon": 11.25, "name": "wp2", "done": false, "gap": nil}},
	}
}

func TestSaveLoadKeepsOrderAndValues(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	headers := []string{"name", "lat", "lon", "done", "gap"}

	require.NoError(t, s.SavePoints(ctx, samplePoints(), headers))
	pts, hdr, err := s.LoadPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, headers, hdr)
	assert.Equal(t, samplePoints(), pts)
}

func TestSaveReplacesPreviousCollection(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	require.NoError(t, s.SavePoints(ctx, samplePoints(), []string{"old"}))
	require.NoError(t, s.SavePoints(ctx, samplePoints()[1:], []string{"new"}))

	pts, hdr, err := s.LoadPoints(ctx)
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.Equal(t, "a", pts[0].ID)
	assert.Equal(t, []string{"new"}, hdr)
}

func TestEmptyAndClear(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	pts, hdr, err := s.LoadPoints(ctx)
	require.NoError(t, err)
	assert.Empty(t, pts)
	assert.Nil(t, hdr)

	require.NoError(t, s.SavePoints(ctx, samplePoints(), []string{"name"}))
	require.NoError(t, s.Clear(ctx))
	pts, hdr, err = s.LoadPoints(ctx)
	require.NoError(t, err)
	assert.Empty(t, pts)
	assert.Nil(t, hdr)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geoedit.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SavePoints(context.Background(), samplePoints(), []string{"name"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	pts, _, err := s.LoadPoints(context.Background())
	require.NoError(t, err)
	assert.Len(t, pts, 2)
}

func TestSaveHonoursCancelledContext(t *testing.T) {
	s := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.SavePoints(ctx, samplePoints(), nil))
}
