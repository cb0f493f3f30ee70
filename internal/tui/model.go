package tui

import (
	"io"
	"log/slog"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geoedit/internal/config"
	"geoedit/internal/geom"
	"geoedit/internal/session"
	"geoedit/internal/store"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string
	errMsg bool

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	// Editing engine and its boundaries
	sess  *session.Session
	cfg   config.Config
	store *store.Store
	log   *slog.Logger

	bbox geom.BBox

	// command prompt
	prompt promptKind
	ta     textarea.Model

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// mouse gesture
	pressed  bool
	dragging bool
	panned   bool
	lastX    int
	lastY    int

	// attributes table
	showAttrs bool
	tbl       table.Model
}

type Option func(*Model)

func WithConfig(c config.Config) Option {
	return func(m *Model) { m.cfg = c }
}

// WithStore enables saving the point collection between runs.
func WithStore(s *store.Store) Option {
	return func(m *Model) { m.store = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

func New(sess *session.Session, opts ...Option) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "geoedit ready  Tab: open a CSV",
		sess:        sess,
		cfg:         config.Default(),
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(&m)
	}
	m.log = m.log.With(slog.String("component", "tui"))
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "CSV files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// prompt setup
	m.ta = textarea.New()
	m.ta.CharLimit = 0
	m.ta.ShowLineNumbers = false
	m.ta.SetWidth(50)
	m.ta.SetHeight(3)
	// attribute table, columns follow the loaded file
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath loads a CSV at launch.
func NewWithPath(sess *session.Session, path string, opts ...Option) Model {
	m := New(sess, opts...)
	m.loadPath(path)
	return m
}

// NewFromStore restores the last saved session, if any.
func NewFromStore(sess *session.Session, opts ...Option) Model {
	m := New(sess, opts...)
	m.restore()
	return m
}

func (m Model) Init() tea.Cmd { return nil }
