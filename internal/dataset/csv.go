package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
)

// Coordinate column aliases, matched case-insensitively against whole headers.
var (
	LonPattern = regexp.MustCompile(`(?i)^(lon|lng|long|x|longitude)$`)
	LatPattern = regexp.MustCompile(`(?i)^(lat|y|latitude)$`)
	AltPattern = regexp.MustCompile(`(?i)^(alt|z|height|elev|altitude|altitude\(m\))$`)

	headingPattern     = regexp.MustCompile(`(?i)heading`)
	gimbalPitchPattern = regexp.MustCompile(`(?i)gimbal.*pitch`)
)

type importConfig struct {
	log        *slog.Logger
	sampleRows int
	newID      func() string
}

// ImportOption tunes Import.
type ImportOption func(*importConfig)

// WithLogger routes row diagnostics to l.
func WithLogger(l *slog.Logger) ImportOption {
	return func(c *importConfig) { c.log = l }
}

// WithSampleRows bounds the rows used for type inference.
func WithSampleRows(n int) ImportOption {
	return func(c *importConfig) { c.sampleRows = n }
}

// WithIDFunc replaces the id generator.
func WithIDFunc(f func() string) ImportOption {
	return func(c *importConfig) { c.newID = f }
}

// DetectMapping guesses the coordinate columns from a header row. The first
// matching header wins for each field.
func DetectMapping(headers []string) Mapping {
	var m Mapping
	for _, h := range headers {
		if m.Lon == "" && LonPattern.MatchString(h) {
			m.Lon = h
		}
		if m.Lat == "" && LatPattern.MatchString(h) {
			m.Lat = h
		}
		if m.Alt == "" && AltPattern.MatchString(h) {
			m.Alt = h
		}
		if m.Heading == "" && headingPattern.MatchString(h) {
			m.Heading = h
		}
		if m.GimbalPitch == "" && gimbalPitchPattern.MatchString(h) {
			m.GimbalPitch = h
		}
	}
	return m
}

// ReadHeaders returns the header row of a CSV stream.
func ReadHeaders(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	h, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	return h, nil
}

// Import parses a CSV stream into points using m for the typed fields.
// Rows with unparsable or out-of-range coordinates are dropped and logged;
// a file with no valid rows yields an empty point list.
func Import(r io.Reader, m Mapping, opts ...ImportOption) (*Imported, error) {
	cfg := importConfig{log: slog.Default(), sampleRows: DefaultSampleRows, newID: NewID}
	for _, o := range opts {
		o(&cfg)
	}
	if m.Lat == "" || m.Lon == "" {
		return nil, validation("mapping", ErrMissingMapping)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, ErrEmptyFile
	}
	headers := recs[0]
	for _, col := range []string{m.Lon, m.Lat} {
		if !slices.Contains(headers, col) {
			return nil, &ValidationError{Field: col, Msg: ErrColumnNotFound.Error(), Err: ErrColumnNotFound}
		}
	}

	rows := make([]map[string]string, 0, len(recs)-1)
	for _, rec := range recs[1:] {
		if isBlank(rec) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	schema := InferSchema(rows, headers, cfg.sampleRows)
	numeric := make(map[string]bool, len(schema.Fields))
	for _, f := range schema.Fields {
		numeric[f.Name] = f.Type == FieldNumber
	}

	out := &Imported{Headers: headers, Schema: schema, Points: make([]FeaturePoint, 0, len(rows))}
	for i, row := range rows {
		lon, okLon := ParseNumber(row[m.Lon])
		lat, okLat := ParseNumber(row[m.Lat])
		if !okLon || !okLat || lon < -180 || lon > 180 || lat < -90 || lat > 90 {
			cfg.log.Warn("dropping row with invalid coordinates",
				slog.Int("row", i+2),
				slog.String("lon", row[m.Lon]),
				slog.String("lat", row[m.Lat]))
			out.Dropped++
			continue
		}
		alt := optionalNumber(row, m.Alt)
		heading := optionalNumber(row, m.Heading)
		pitch := optionalNumber(row, m.GimbalPitch)

		attrs := make(Attributes, len(headers))
		for _, h := range headers {
			raw := row[h]
			if numeric[h] {
				if v, ok := ParseNumber(raw); ok {
					attrs[h] = v
				} else {
					attrs[h] = nil
				}
			} else {
				attrs[h] = raw
			}
		}
		attrs[m.Lat] = lat
		attrs[m.Lon] = lon
		if m.Alt != "" {
			attrs[m.Alt] = alt
		}
		if m.Heading != "" {
			attrs[m.Heading] = heading
		}
		if m.GimbalPitch != "" {
			attrs[m.GimbalPitch] = pitch
		}

		out.Points = append(out.Points, FeaturePoint{
			ID:          cfg.newID(),
			Lat:         lat,
			Lon:         lon,
			Alt:         alt,
			Heading:     heading,
			GimbalPitch: pitch,
			Attributes:  attrs,
		})
	}
	cfg.log.Info("csv imported",
		slog.Int("points", len(out.Points)),
		slog.Int("dropped", out.Dropped),
		slog.Int("columns", len(headers)))
	return out, nil
}

func optionalNumber(row map[string]string, col string) float64 {
	if col == "" {
		return 0
	}
	v, _ := ParseNumber(row[col])
	return v
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// coordinateColumns finds the lon/lat/alt headers; the last match wins.
func coordinateColumns(headers []string) (lon, lat, alt string) {
	for _, h := range headers {
		if LonPattern.MatchString(h) {
			lon = h
		}
		if LatPattern.MatchString(h) {
			lat = h
		}
		if AltPattern.MatchString(h) {
			alt = h
		}
	}
	return lon, lat, alt
}

// exportRows builds the output cells in header order, with coordinate columns
// taken from the live point fields.
func exportRows(points []FeaturePoint, headers []string) [][]string {
	lonCol, latCol, altCol := coordinateColumns(headers)
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rec := make([]string, len(headers))
		for i, h := range headers {
			switch {
			case lonCol != "" && h == lonCol:
				rec[i] = FormatValue(p.Lon)
			case latCol != "" && h == latCol:
				rec[i] = FormatValue(p.Lat)
			case altCol != "" && h == altCol:
				rec[i] = FormatValue(p.Alt)
			default:
				rec[i] = FormatValue(p.Attributes[h])
			}
		}
		rows = append(rows, rec)
	}
	return rows
}

// Export writes points as CSV with exactly the given header order.
func Export(w io.Writer, points []FeaturePoint, headers []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := cw.WriteAll(exportRows(points, headers)); err != nil {
		return fmt.Errorf("csv: write rows: %w", err)
	}
	return nil
}

// ExportString is Export into a string.
func ExportString(points []FeaturePoint, headers []string) (string, error) {
	var buf bytes.Buffer
	if err := Export(&buf, points, headers); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Restore rebuilds an import result from points read back from storage. The
// schema is inferred again from the attribute values as they would export.
func Restore(points []FeaturePoint, headers []string, sampleRows int) *Imported {
	rows := make([]map[string]string, 0, len(points))
	for _, rec := range exportRows(points, headers) {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}
	return &Imported{
		Points:  points,
		Headers: headers,
		Schema:  InferSchema(rows, headers, sampleRows),
	}
}
