package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/paulmach/orb"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/atlas"
	"github.com/gogpu/markers/hittest"
	"github.com/gogpu/markers/render"
)

// frameInterval is the display loop period, about 60 frames per second.
const frameInterval = 16 * time.Millisecond

// panStep is the distance one arrow key press pans, in logical pixels.
const panStep = 16

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6")).Background(lipgloss.Color("#0F141A"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	hitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
)

type (
	frameMsg    time.Time
	reloadMsg   struct{}
	watchErrMsg struct{ err error }
)

// model drives a markers.Layer from a bubbletea program.
type model struct {
	cfg   config
	layer *markers.Layer
	sched *render.ManualScheduler
	view  *mapView
	atlas *atlas.Atlas

	atlasDrawn bool
	watcher    *fsnotify.Watcher
	printer    *message.Printer

	hovered int
	status  string
}

func newModel(cfg config, l *markers.Layer, sched *render.ManualScheduler, a *atlas.Atlas, w *fsnotify.Watcher) *model {
	m := &model{
		cfg:     cfg,
		layer:   l,
		sched:   sched,
		atlas:   a,
		watcher: w,
		printer: message.NewPrinter(language.English),
		hovered: hittest.None,
		view: &mapView{
			center: orb.Point(cfg.Center),
			zoom:   cfg.Zoom,
		},
	}

	l.On(hittest.HoverEnter, func(ev hittest.Event) { m.hovered = ev.Marker })
	l.On(hittest.HoverLeave, func(hittest.Event) { m.hovered = hittest.None })
	l.On(hittest.Click, func(ev hittest.Event) {
		p := l.Markers()[ev.Marker].Position
		m.status = m.printer.Sprintf("clicked #%d at %.5f, %.5f (%d under pointer)",
			ev.Marker, p.Lon(), p.Lat(), len(ev.Markers))
	})
	l.On(hittest.ContextMenu, func(ev hittest.Event) {
		m.status = m.printer.Sprintf("context menu on #%d", ev.Marker)
	})
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(tick(), m.watch())
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// watch waits for the next change of the marker file.
func (m *model) watch() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-m.watcher.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					return reloadMsg{}
				}
			case err, ok := <-m.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if !m.atlasDrawn && m.atlas.IsReady() && m.layer.Mounted() {
			m.atlasDrawn = true
			m.layer.Update()
		}
		m.sched.Step()
		return m, tick()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height-1)

	case reloadMsg:
		ms, err := readMarkers(m.cfg.Markers)
		if err != nil {
			m.status = "reload: " + err.Error()
		} else {
			m.layer.SetMarkers(ms)
			m.layer.Update()
			m.status = m.printer.Sprintf("reloaded %d markers", len(ms))
		}
		return m, m.watch()

	case watchErrMsg:
		m.status = "watch: " + msg.err.Error()
		return m, m.watch()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.pan(-panStep, 0)
		case "right", "l":
			m.pan(panStep, 0)
		case "up", "k":
			m.pan(0, -panStep)
		case "down", "j":
			m.pan(0, panStep)
		case "+", "=":
			m.zoomBy(1)
		case "-", "_":
			m.zoomBy(-1)
		case "d":
			m.cfg.Debug = !m.cfg.Debug
			m.layer.SetDebugDrawing(m.cfg.Debug)
			m.layer.Update()
		}

	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

func (m *model) resize(cols, rows int) {
	m.view.cols, m.view.rows = max(cols, 1), max(rows, 1)
	if !m.layer.Mounted() {
		if err := m.layer.Mount(m.view, m.view); err != nil {
			m.status = err.Error()
		}
		return
	}
	m.layer.Resize()
}

func (m *model) pan(dx, dy int) {
	m.layer.PanStart()
	m.view.pan(dx, dy)
	m.layer.PanEnd()
}

func (m *model) zoomBy(dz float64) {
	m.layer.ZoomStart()
	m.view.setZoom(m.view.zoom + dz)
	m.layer.ZoomEnd()
}

// mouse forwards a mouse event at the center of its cell.
func (m *model) mouse(msg tea.MouseMsg) {
	p := hittest.Pointer{
		X:     float64(msg.X*dotsX) + dotsX/2,
		Y:     float64(msg.Y*dotsY) + dotsY/2,
		Event: msg,
	}
	if msg.Y >= m.view.rows {
		m.layer.PointerLeave(p)
		return
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		m.layer.PointerMove(p)
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.layer.PointerDown(p)
		case tea.MouseButtonRight:
			if !m.layer.ContextMenu(p) {
				pos := m.view.at(p.X, p.Y)
				m.status = m.printer.Sprintf("%.5f, %.5f", pos.Lon(), pos.Lat())
			}
		}
	case tea.MouseActionRelease:
		m.layer.PointerUp(p)
		if !m.layer.Click(p) {
			m.status = ""
		}
	}
}

func (m *model) View() string {
	var sb strings.Builder
	for _, line := range m.view.dots() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(m.statusLine())
	return sb.String()
}

func (m *model) statusLine() string {
	state := "idle"
	if m.layer.Rendering() {
		state = "rendering"
	}
	parts := []string{
		titleStyle.Render("markerview"),
		m.printer.Sprintf("%d markers", len(m.layer.Markers())),
		m.printer.Sprintf("z%.0f", m.view.zoom),
		dimStyle.Render(state),
	}
	if m.hovered != hittest.None {
		parts = append(parts, hitStyle.Render(m.printer.Sprintf("#%d", m.hovered)))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return barStyle.Width(m.view.cols).Render(strings.Join(parts, "  "))
}
