package tui

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/paulmach/orb"

	"geoedit/internal/dataset"
	"geoedit/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.fail("read dir error: " + err.Error())
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.ToLower(filepath.Ext(name)) != ".csv" {
			continue
		}
		items = append(items, fileItem{title: name, desc: ".csv", path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no CSV files in current directory"
	}
}

// loadPath imports a waypoint CSV and starts a fresh session over it.
func (m *Model) loadPath(p string) {
	if strings.ToLower(filepath.Ext(p)) != ".csv" {
		m.fail("unsupported file: " + filepath.Ext(p))
		return
	}
	b, err := os.ReadFile(p)
	if err != nil {
		m.fail("load error: " + err.Error())
		return
	}
	headers, err := dataset.ReadHeaders(bytes.NewReader(b))
	if err != nil {
		m.fail("load error: " + err.Error())
		return
	}
	mapping := m.cfg.MappingFor(headers)
	imp, err := dataset.Import(bytes.NewReader(b), mapping,
		dataset.WithLogger(m.log),
		dataset.WithSampleRows(m.cfg.SchemaSampleRows))
	if err != nil {
		m.fail("import error: " + err.Error())
		return
	}
	m.selPath = p
	m.sess.Load(imp, mapping)
	m.fit()
	m.save()
	m.status = fmt.Sprintf("loaded: %s  points=%d dropped=%d  lat=%s lon=%s alt=%s",
		filepath.Base(p), len(imp.Points), imp.Dropped, mapping.Lat, mapping.Lon, orDash(mapping.Alt))
	m.errMsg = false
	if m.showAttrs {
		m.refreshAttrs()
	}
}

// restore reloads the collection saved by a previous run.
func (m *Model) restore() {
	if m.store == nil {
		return
	}
	pts, headers, err := m.store.LoadPoints(context.Background())
	if err != nil {
		m.fail("restore error: " + err.Error())
		return
	}
	if len(pts) == 0 {
		return
	}
	imp := dataset.Restore(pts, headers, m.cfg.SchemaSampleRows)
	m.sess.Load(imp, m.cfg.MappingFor(headers))
	m.fit()
	m.status = fmt.Sprintf("restored %d points from %s", len(pts), m.cfg.DBPath)
}

// save writes the current points to the store, if one is configured.
func (m *Model) save() {
	if m.store == nil {
		return
	}
	st := m.sess.State()
	if err := m.store.SavePoints(context.Background(), st.Points, st.OriginalHeaders); err != nil {
		m.log.Error("save failed", slog.Any("err", err))
		m.fail("save error: " + err.Error())
	}
}

// exportTo writes the points to path; the extension picks the format.
func (m *Model) exportTo(path string) {
	f, err := os.Create(path)
	if err != nil {
		m.fail("export error: " + err.Error())
		return
	}
	st := m.sess.State()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		err = dataset.ExportGeoJSON(f, st.Points)
	case ".xlsx":
		err = dataset.ExportXLSX(f, st.Points, st.OriginalHeaders)
	default:
		err = m.sess.ExportCSV(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		m.fail("export error: " + err.Error())
		return
	}
	m.status = fmt.Sprintf("exported %d points to %s", len(st.Points), path)
	m.errMsg = false
}

// fit resets the viewport to the bounds of the current points.
func (m *Model) fit() {
	pts := m.sess.Points()
	ops := make([]orb.Point, len(pts))
	for i, p := range pts {
		ops[i] = orb.Point{p.Lon, p.Lat}
	}
	m.bbox = geom.Bounds(ops)
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
}

func (m *Model) fail(msg string) {
	m.status = msg
	m.errMsg = true
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
