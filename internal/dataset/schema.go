package dataset

import (
	"maps"
	"slices"
	"strings"
)

// DefaultSampleRows bounds the rows inspected for type inference.
const DefaultSampleRows = 100

type FieldType int

const (
	FieldOther FieldType = iota
	FieldNumber
	FieldString
)

func (t FieldType) String() string {
	switch t {
	case FieldNumber:
		return "number"
	case FieldString:
		return "string"
	default:
		return "other"
	}
}

// FieldStats are computed over the whole dataset. Min/Max are set for
// number fields with at least one parsable value; UniqueValues for string fields.
type FieldStats struct {
	Min          *float64
	Max          *float64
	UniqueValues map[string]struct{}
}

// Unique returns the distinct string values in sorted order.
func (s FieldStats) Unique() []string {
	return slices.Sorted(maps.Keys(s.UniqueValues))
}

type SchemaField struct {
	Name  string
	Type  FieldType
	Stats FieldStats
}

// Schema lists fields in header order.
type Schema struct {
	Fields []SchemaField
}

// Field looks a field up by name.
func (s Schema) Field(name string) (SchemaField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return SchemaField{}, false
}

// Equal compares names, types and stats.
func (s Schema) Equal(o Schema) bool {
	if len(s.Fields) != len(o.Fields) {
		return false
	}
	for i, f := range s.Fields {
		g := o.Fields[i]
		if f.Name != g.Name || f.Type != g.Type ||
			!floatPtrEq(f.Stats.Min, g.Stats.Min) || !floatPtrEq(f.Stats.Max, g.Stats.Max) ||
			!maps.Equal(f.Stats.UniqueValues, g.Stats.UniqueValues) {
			return false
		}
	}
	return true
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// InferSchema types each header column from the first sampleRows rows and
// computes stats over all rows. A column is a number as soon as one sampled
// value parses, even if most sampled values are text.
func InferSchema(rows []map[string]string, headers []string, sampleRows int) Schema {
	if sampleRows <= 0 {
		sampleRows = DefaultSampleRows
	}
	fields := make([]SchemaField, len(headers))
	for i, h := range headers {
		fields[i] = SchemaField{Name: h, Type: FieldOther}
	}
	if len(rows) == 0 {
		return Schema{Fields: fields}
	}
	sample := rows[:min(sampleRows, len(rows))]
	for i := range fields {
		f := &fields[i]
		for _, row := range sample {
			v := row[f.Name]
			if strings.TrimSpace(v) == "" {
				continue
			}
			if _, ok := ParseNumber(v); ok {
				f.Type = FieldNumber
				break
			}
			f.Type = FieldString
		}
	}
	for i := range fields {
		f := &fields[i]
		switch f.Type {
		case FieldNumber:
			for _, row := range rows {
				v, ok := ParseNumber(row[f.Name])
				if !ok {
					continue
				}
				if f.Stats.Min == nil || v < *f.Stats.Min {
					f.Stats.Min = &v
				}
				if f.Stats.Max == nil || v > *f.Stats.Max {
					f.Stats.Max = &v
				}
			}
		case FieldString:
			f.Stats.UniqueValues = map[string]struct{}{}
			for _, row := range rows {
				if v, ok := row[f.Name]; ok {
					f.Stats.UniqueValues[v] = struct{}{}
				}
			}
		}
	}
	return Schema{Fields: fields}
}
