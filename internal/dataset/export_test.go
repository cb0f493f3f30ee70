package dataset

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func samplePoints() []FeaturePoint {
	return []FeaturePoint{
		{ID: "a", Lat: 1, Lon: 2, Alt: 10, Attributes: Attributes{"lat": 1.0, "lon": 2.0, "alt": 10.0, "name": "first"}},
		{ID: "b", Lat: 3, Lon: 4, Alt: 20, Attributes: Attributes{"lat": 3.0, "lon": 4.0, "alt": 20.0, "name": nil}},
	}
}

func TestToGeoJSON(t *testing.T) {
	fc := ToGeoJSON(samplePoints())
	require.Len(t, fc.Features, 3)
	assert.Equal(t, "LineString", fc.Features[0].Geometry.GeoJSONType())
	assert.Equal(t, "path", fc.Features[0].Properties["kind"])

	wp := fc.Features[2]
	assert.Equal(t, "Point", wp.Geometry.GeoJSONType())
	assert.Equal(t, 2, wp.Properties["index"])
	assert.Equal(t, "b", wp.Properties["id"])

	var buf bytes.Buffer
	require.NoError(t, ExportGeoJSON(&buf, samplePoints()))
	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "FeatureCollection", raw["type"])
}

func TestToGeoJSONEmpty(t *testing.T) {
	assert.Empty(t, ToGeoJSON(nil).Features)
}

func TestExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, samplePoints(), []string{"name", "lat", "lon", "alt"}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "lat", "lon", "alt"}, rows[0])
	assert.Equal(t, []string{"first", "1", "2", "10"}, rows[1])
	assert.Equal(t, "3", rows[2][1])
}
