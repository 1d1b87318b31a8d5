package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/export"
)

const (
	canvasWidth  = 60
	canvasHeight = 18
	frameRate    = 30
)

var views = []string{"side", "top", "front", "3d"}

type TickMsg time.Time

// Replay animates a finished trajectory, advancing every frameSkip samples
// per tick.
type Replay struct {
	title     string
	traj      *dynamo.Trajectory
	metrics   map[string]float64
	positions []dynamo.Vec3
	frames    []int
	frame     int
	frameSkip int
	speed     int
	running   bool
	view      int
	canvas    *Canvas
	camera    *Camera
	theme     Theme
	showHelp  bool
}

func NewReplay(title string, traj *dynamo.Trajectory, metrics map[string]float64, frameSkip int) Replay {
	positions := make([]dynamo.Vec3, 0, traj.Len())
	traj.Each(func(_ int, s dynamo.Sample) bool {
		positions = append(positions, s.Position)
		return true
	})
	if frameSkip < 1 {
		frameSkip = 1
	}
	return Replay{
		title:     title,
		traj:      traj,
		metrics:   metrics,
		positions: positions,
		frames:    export.Every(traj.Len(), frameSkip),
		frameSkip: frameSkip,
		speed:     1,
		running:   true,
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		camera:    NewCamera(positions),
		theme:     CurrentTheme,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Replay) Init() tea.Cmd { return tick() }

// Index is the sample index of the current frame.
func (m Replay) Index() int {
	if len(m.frames) == 0 {
		return 0
	}
	return m.frames[m.frame]
}

func (m Replay) Done() bool { return m.frame >= len(m.frames)-1 }

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.frame = 0
			m.running = true
		case "+", "=":
			m.speed = min(m.speed*2, 16)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "[":
			m.running = false
			m.frame = max(m.frame-1, 0)
		case "]":
			m.running = false
			m.frame = min(m.frame+1, len(m.frames)-1)
		case "v", "tab":
			m.view = (m.view + 1) % len(views)
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "left", "h":
			m.camera.RotateY(-0.1)
		case "right", "l":
			m.camera.RotateY(0.1)
		case "up", "k":
			m.camera.RotateX(-0.1)
		case "down", "j":
			m.camera.RotateX(0.1)
		case "z":
			m.camera.ZoomIn()
		case "Z":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.frame = min(m.frame+m.speed, len(m.frames)-1)
			if m.Done() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Replay) draw() {
	m.canvas.Clear()
	idx := m.Index()

	if views[m.view] == "3d" {
		Render3D(m.canvas, m.camera, m.positions, idx)
		return
	}

	v, _ := export.ParseView(views[m.view])
	all := export.Project(m.traj, v)
	vp := NewViewport(all, m.canvas, true)

	ground := []export.Point{{X: all[0].X, Y: 0}, {X: all[len(all)-1].X, Y: 0}}
	if v != export.Top {
		m.canvas.DrawPath(ground, vp)
	}
	m.canvas.DrawPath(all[:idx+1], vp)
	m.canvas.DrawBall(vp.Map(all[idx]))
}

func (m Replay) View() string {
	m.draw()
	s := m.traj.At(m.Index())

	status := StatusRunning.Render("PLAYING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
		if m.Done() {
			status = StatusPaused.Render("LANDED")
		}
	}

	canvas := lipgloss.NewStyle().Foreground(m.theme.Animation).Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(titleStyle(m.theme.Title).Render(strings.ToUpper(m.title)) + "\n")
	b.WriteString(fmt.Sprintf("%s  view:%s  x%d\n\n", status, views[m.view], m.speed))
	row := func(label, value string) {
		b.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.2fs", s.Time))
	row("position", fmt.Sprintf("%.2f %.2f %.2f", s.Position.X, s.Position.Y, s.Position.Z))
	row("speed", fmt.Sprintf("%.2fm/s", s.Velocity.Norm()))
	row("|drag|", fmt.Sprintf("%.3fN", s.Forces.Drag.Norm()))
	row("|magnus|", fmt.Sprintf("%.3fN", s.Forces.Magnus.Norm()))

	progress := float64(m.frame) / float64(max(len(m.frames)-1, 1))
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Trajectory).Render(ProgressBar(progress, 24)) + "\n")

	if len(m.metrics) > 0 {
		b.WriteString("\n" + MetricsTable(m.metrics) + "\n")
	}
	b.WriteString("\n" + KeyHint.Render("SP:pause R:restart +/-:speed V:view ?:help Q:quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, Panel.Render(canvas), Panel.Render(b.String()))
	if m.showHelp {
		return main + "\n" + Panel.Render(helpText)
	}
	return main
}

const helpText = `Space    pause / resume
R        restart from launch
+ / -    faster / slower
[ / ]    step back / forward
V, Tab   cycle side, top, front and 3d views
←↑↓→     orbit camera (3d)
z / Z    zoom in / out (3d)
T        cycle themes
Q        quit`
