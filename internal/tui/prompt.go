package tui

import (
	"fmt"
	"strconv"
	"strings"

	"geoedit/internal/dataset"
	"geoedit/internal/geom"
	"geoedit/internal/session"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptQuery
	promptRange
	promptBatch
	promptEdit
	promptWKT
	promptExport
	promptOffset
)

func (k promptKind) title() string {
	switch k {
	case promptQuery:
		return "attribute query  (field op value, e.g. alt between 20 40)"
	case promptRange:
		return "select range  (from to, 1-based)"
	case promptBatch:
		return "select ids  (comma or space separated)"
	case promptEdit:
		return "edit selected  (key=value; key=value)"
	case promptWKT:
		return "polygon WKT"
	case promptExport:
		return "export to  (.csv .geojson .xlsx)"
	case promptOffset:
		return "set offset  (lat|lon|alt value)"
	}
	return ""
}

func (m *Model) openPrompt(k promptKind, initial string) {
	m.prompt = k
	m.ta.SetValue(initial)
	m.ta.Focus()
	m.status = k.title()
	m.errMsg = false
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.ta.Blur()
}

// submitPrompt runs the command typed into the prompt. On a parse error
// the prompt stays open so the input can be corrected.
func (m *Model) submitPrompt() {
	text := strings.TrimSpace(m.ta.Value())
	if text == "" {
		m.closePrompt()
		return
	}
	var err error
	switch m.prompt {
	case promptQuery:
		err = m.runQuery(text)
	case promptRange:
		var from, to int
		if from, to, err = parseRange(text); err == nil {
			n := m.sess.SelectRange(from, to)
			m.status = fmt.Sprintf("range %d-%d: %d selected", from, to, n)
		}
	case promptBatch:
		n := m.sess.ApplyBatchSelection(parseIDs(text))
		m.status = fmt.Sprintf("batch: %d selected", n)
	case promptEdit:
		err = m.runEdit(text)
	case promptWKT:
		err = m.runWKT(text)
	case promptExport:
		m.closePrompt()
		m.exportTo(text)
		return
	case promptOffset:
		var a session.Axis
		var v float64
		if a, v, err = parseOffset(text); err == nil {
			m.sess.SetTranslationValue(a, v)
			m.status = fmt.Sprintf("%s offset %s", a, dataset.FormatValue(v))
		}
	}
	if err != nil {
		m.fail(err.Error())
		return
	}
	m.errMsg = false
	m.closePrompt()
	m.changed()
}

func (m *Model) runQuery(text string) error {
	q, err := session.ParseQuery(text, m.sess.State().Schema)
	if err != nil {
		return err
	}
	if m.sess.Mode() != session.ModeAttribute {
		m.sess.SetSelectionMode(session.ModeAttribute)
	}
	m.sess.SetAttributeQuery(&q)
	n := m.sess.ApplyAttributeSelection()
	m.status = fmt.Sprintf("query %q: %d selected", text, n)
	return nil
}

func (m *Model) runEdit(text string) error {
	if len(m.sess.Selected()) == 0 {
		return fmt.Errorf("edit: nothing selected")
	}
	fields, err := parseEdit(text)
	if err != nil {
		return err
	}
	patch, err := m.sess.ParseBatchEdit(fields)
	if err != nil {
		return err
	}
	if patch.Empty() {
		return fmt.Errorf("edit: no values")
	}
	m.sess.UpdateSelectedPoints(patch)
	m.status = fmt.Sprintf("edited %d points", len(m.sess.Selected()))
	return nil
}

func (m *Model) runWKT(text string) error {
	vs, err := geom.ParseWKTPolygon(text)
	if err != nil {
		return err
	}
	if !m.sess.State().IsDrawing {
		m.sess.SetSelectionMode(session.ModePolygon)
	}
	m.sess.SetDrawnPolygon(vs)
	n := m.sess.FinishPolygonSelection()
	m.status = fmt.Sprintf("polygon: %d selected", n)
	return nil
}

// parseRange reads "from to" or "from-to".
func parseRange(s string) (int, int, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' || r == ',' })
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("range: want two numbers, got %q", s)
	}
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("range: %w", err)
	}
	to, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("range: %w", err)
	}
	return from, to, nil
}

func parseIDs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\n' })
}

// parseEdit reads "key=value" pairs separated by ';' or newlines.
func parseEdit(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("edit: expected key=value, got %q", part)
		}
		out[k] = strings.TrimSpace(v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("edit: no fields")
	}
	return out, nil
}

// parseOffset reads "axis value".
func parseOffset(s string) (session.Axis, float64, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("offset: want axis and value, got %q", s)
	}
	var a session.Axis
	switch strings.ToLower(parts[0]) {
	case "lat":
		a = session.AxisLat
	case "lon", "lng":
		a = session.AxisLon
	case "alt":
		a = session.AxisAlt
	default:
		return 0, 0, fmt.Errorf("offset: unknown axis %q", parts[0])
	}
	v, ok := dataset.ParseNumber(parts[1])
	if !ok {
		return 0, 0, &dataset.ValidationError{Field: a.String(), Msg: fmt.Sprintf("%q is not a number", parts[1]), Err: dataset.ErrNotNumeric}
	}
	return a, v, nil
}
