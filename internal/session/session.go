// Package session is the editing engine: it owns the waypoint collection,
// the selection, the undo history and the translate/rotate transactions,
// and exposes them to front ends as commands and read-only snapshots.
package session

import (
	"io"
	"log/slog"

	"geoedit/internal/config"
	"geoedit/internal/dataset"
	"geoedit/internal/history"
)

// Session serialises every change to the editing state through its history.
// It is not safe for concurrent use; front ends drive it from one loop.
type Session struct {
	hist  *history.Store[State]
	cfg   config.Config
	log   *slog.Logger
	newID func() string

	drag dragState
}

// dragState tracks the pointer gesture in progress. It is UI bookkeeping
// and never stored in history.
type dragState struct {
	kind    dragKind
	lastLon float64
	lastLat float64
	// moved is set once a drag tick changed the points.
	moved bool
}

type dragKind int

const (
	dragNone dragKind = iota
	dragTranslate
	dragRotate
)

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithConfig(c config.Config) Option {
	return func(s *Session) { s.cfg = c }
}

// WithIDFunc replaces the id generator used for duplicated points.
func WithIDFunc(f func() string) Option {
	return func(s *Session) { s.newID = f }
}

func New(opts ...Option) *Session {
	s := &Session{
		cfg:   config.Default(),
		log:   slog.Default(),
		newID: dataset.NewID,
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(slog.String("component", "session"))
	s.hist = history.New(InitialState(), State.Equal)
	return s
}

// State returns a deep copy of the current state.
func (s *Session) State() State { return s.hist.State().Clone() }

// Points returns a copy of the current point sequence.
func (s *Session) Points() []dataset.FeaturePoint {
	return dataset.ClonePoints(s.hist.State().Points)
}

// Selected returns the selected ids in lexical order.
func (s *Session) Selected() []string { return s.hist.State().SelectedPoints.Sorted() }

func (s *Session) IsSelected(id string) bool { return s.hist.State().SelectedPoints.Has(id) }

func (s *Session) Mode() Mode { return s.hist.State().SelectionMode }

func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// HistoryLen reports the number of entries on the undo stack.
func (s *Session) HistoryLen() int { return s.hist.Len() }

func (s *Session) Undo() {
	s.drag = dragState{}
	s.hist.Undo()
}

func (s *Session) Redo() {
	s.drag = dragState{}
	s.hist.Redo()
}

// ResetHistory makes st the only history entry.
func (s *Session) ResetHistory(st State) {
	s.drag = dragState{}
	s.hist.Reset(st.Clone())
}

// Load starts a fresh session over an import result.
func (s *Session) Load(imp *dataset.Imported, m dataset.Mapping) {
	s.ResetHistory(FromImport(imp, m))
	s.log.Info("dataset loaded", slog.Int("points", len(imp.Points)), slog.Int("columns", len(imp.Headers)))
}

// ExportCSV writes the current points in the original column layout.
func (s *Session) ExportCSV(w io.Writer) error {
	st := s.hist.State()
	return dataset.Export(w, st.Points, st.OriginalHeaders)
}

// update runs fn on a working copy of the current state. fn may replace
// any field but must not mutate the slices or maps it was handed.
func (s *Session) update(overwrite bool, fn func(st State) State) {
	s.hist.SetState(fn, overwrite)
}
