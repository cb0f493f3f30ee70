package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"geoedit/internal/dataset"
)

// refreshAttrs rebuilds the attribute table from the session's points, one
// row per waypoint in flight order.
func (m *Model) refreshAttrs() {
	st := m.sess.State()
	if len(st.OriginalHeaders) == 0 || len(st.Points) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(st.OriginalHeaders)+2)
	tcols = append(tcols, table.Column{Title: "#", Width: 4}, table.Column{Title: "sel", Width: 3})
	maxColW := 24
	for _, c := range st.OriginalHeaders {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(st.Points))
	for i, p := range st.Points {
		row := make(table.Row, 0, len(tcols))
		mark := ""
		if st.SelectedPoints.Has(p.ID) {
			mark = "●"
		}
		row = append(row, fmt.Sprintf("%d", i+1), mark)
		for _, h := range st.OriginalHeaders {
			row = append(row, cellValue(p, h, st.Mapping))
		}
		trows = append(trows, row)
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// cellValue shows the live typed value for mapped columns and the attribute
// mirror for the rest.
func cellValue(p dataset.FeaturePoint, col string, mp dataset.Mapping) string {
	switch col {
	case mp.Lat:
		return dataset.FormatValue(p.Lat)
	case mp.Lon:
		return dataset.FormatValue(p.Lon)
	case mp.Alt:
		return dataset.FormatValue(p.Alt)
	}
	return dataset.FormatValue(p.Attributes[col])
}

// selectedRowID returns the id of the point under the table cursor.
func (m *Model) selectedRowID() (string, bool) {
	i := m.tbl.Cursor()
	pts := m.sess.Points()
	if i < 0 || i >= len(pts) {
		return "", false
	}
	return pts[i].ID, true
}
