package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowcanvas/pkg/canvas"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// Canvas geometry. Node positions map 1:1 to terminal cells.
const (
	paletteWidth = 26
	propsWidth   = 34
	nodeWidth    = 18
	nodeHeight   = 3
	headerRows   = 2
	footerRows   = 2
)

// Editor styles
var (
	styleNodeBox      = lipgloss.NewStyle().Foreground(colorWhite)
	styleNodeSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	stylePort         = lipgloss.NewStyle().Foreground(colorBlue)
	stylePortPending  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleWire         = lipgloss.NewStyle().Foreground(colorDim)
	stylePaneTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	stylePaneBorder   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

// focusArea selects which pane keyboard input goes to.
type focusArea int

const (
	focusPalette focusArea = iota
	focusProps
)

// editorModel is the bubbletea model for the canvas editor.
type editorModel struct {
	controller *canvas.Controller
	templates  []workflow.ComponentTemplate
	logger     *log.Logger

	width  int
	height int

	focus         focusArea
	paletteCursor int
	placed        int // cascade counter for keyboard placement

	props propsState

	// pressedCanvas is set between a press and release on empty canvas,
	// so a click only registers when both land outside any node.
	pressedCanvas bool

	status string

	// exportRequested tells the edit command to export after quitting.
	exportRequested bool
}

func newEditorModel(templates []workflow.ComponentTemplate, logger *log.Logger) editorModel {
	return editorModel{
		controller: canvas.NewController(workflow.NewStore()),
		templates:  templates,
		logger:     logger,
		width:      100,
		height:     30,
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m editorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry in the properties pane swallows most keys.
	if m.props.editing {
		return m.updatePropsEditing(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.controller.Cancel()
		return m, tea.Quit

	case "e":
		m.controller.Cancel()
		m.exportRequested = true
		return m, tea.Quit

	case "esc":
		m.controller.Cancel()
		m.status = ""
		return m, nil

	case "tab":
		if m.focus == focusPalette {
			m.focus = focusProps
		} else {
			m.focus = focusPalette
		}
		return m, nil

	case "up", "k":
		if m.focus == focusPalette && m.paletteCursor > 0 {
			m.paletteCursor--
		} else if m.focus == focusProps {
			m.props.prevField()
		}
		return m, nil

	case "down", "j":
		if m.focus == focusPalette && m.paletteCursor < len(m.templates)-1 {
			m.paletteCursor++
		} else if m.focus == focusProps {
			m.props.nextField(m.selectedConfigLen())
		}
		return m, nil

	case "enter":
		if m.focus == focusPalette {
			m.placeFromPalette()
		} else {
			m = m.beginOrToggleField()
		}
		return m, nil

	case "d", "delete", "backspace":
		if m.focus == focusPalette {
			if id := m.controller.SelectedID(); id != "" {
				m.controller.DeleteNode(id)
				m.props.reset()
				m.status = "node deleted"
			}
		}
		return m, nil

	case "x":
		m.deleteLastConnection()
		return m, nil
	}
	return m, nil
}

// placeFromPalette drops the highlighted template onto the canvas,
// cascading positions so consecutive nodes don't stack.
func (m *editorModel) placeFromPalette() {
	if len(m.templates) == 0 {
		return
	}
	t := m.templates[m.paletteCursor]
	pos := workflow.Position{
		X: float64(4 + (m.placed%5)*(nodeWidth+4)),
		Y: float64(2 + (m.placed/5)*(nodeHeight+2)),
	}
	m.placed++
	n := m.controller.PlaceNode(t, pos)
	m.props.reset()
	m.status = fmt.Sprintf("placed %s", n.Name)
}

// deleteLastConnection removes the most recent connection touching the
// selected node, or the most recent connection overall when nothing is
// selected.
func (m *editorModel) deleteLastConnection() {
	conns := m.controller.Store().Connections()
	if len(conns) == 0 {
		return
	}
	selected := m.controller.SelectedID()
	for i := len(conns) - 1; i >= 0; i-- {
		if selected == "" || conns[i].Touches(selected) {
			m.controller.DeleteConnection(conns[i].ID)
			m.status = "connection removed"
			return
		}
	}
}

func (m *editorModel) selectedConfigLen() int {
	if n := m.selectedNode(); n != nil {
		return len(n.Config)
	}
	return 0
}

func (m *editorModel) selectedNode() *workflow.Node {
	id := m.controller.SelectedID()
	if id == "" {
		return nil
	}
	if n, ok := m.controller.Store().Node(id); ok {
		return n
	}
	return nil
}

// =============================================================================
// Mouse Handling
// =============================================================================

// hit describes what sits under a canvas coordinate.
type hit struct {
	nodeID   string
	port     string
	isOutput bool
	onPort   bool
	onNode   bool
}

// canvasOrigin returns the screen position of the canvas cell (0,0).
func (m editorModel) canvasOrigin() (int, int) {
	return paletteWidth + 1, headerRows + 1
}

func (m editorModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ox, oy := m.canvasOrigin()
	pos := workflow.Position{X: float64(msg.X - ox), Y: float64(msg.Y - oy)}
	inCanvas := msg.X >= ox && msg.X < m.width-propsWidth && msg.Y >= oy

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inCanvas {
			return m, nil
		}
		h := m.hitTest(pos)
		switch {
		case h.onPort:
			m.clickPort(h)
		case h.onNode:
			m.controller.PressNode(h.nodeID, pos)
			m.props.reset()
		default:
			m.pressedCanvas = true
		}

	case tea.MouseActionMotion:
		m.controller.PointerMove(pos)

	case tea.MouseActionRelease:
		if m.controller.State() == canvas.StateDragging {
			m.controller.Release()
		} else if m.pressedCanvas {
			h := m.hitTest(pos)
			if !h.onNode && !h.onPort {
				m.controller.ClickCanvas()
				m.props.reset()
			}
		}
		m.pressedCanvas = false
	}
	return m, nil
}

func (m *editorModel) clickPort(h hit) {
	wasConnecting := m.controller.State() == canvas.StateConnecting
	conn, _ := m.controller.ClickPort(workflow.Endpoint{
		NodeID:   h.nodeID,
		Port:     h.port,
		IsOutput: h.isOutput,
	})
	switch {
	case conn != nil:
		m.props.reset()
		m.status = "connected"
	case wasConnecting:
		// Completing click refused or discarded; the gesture is over
		// either way and nothing is reported.
		m.props.reset()
		m.status = ""
	case m.controller.State() == canvas.StateConnecting:
		m.status = "connecting from " + h.port
	}
}

// hitTest finds the node or port under a canvas position. Nodes are
// tested in reverse insertion order so the most recently placed node
// wins when boxes overlap.
func (m editorModel) hitTest(pos workflow.Position) hit {
	nodes := m.controller.Store().Nodes()
	x, y := int(pos.X), int(pos.Y)

	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		nx, ny := int(n.Position.X), int(n.Position.Y)

		if y < ny || y >= ny+nodeHeight {
			continue
		}

		// Port markers sit on the vertical edges, one row per port.
		if x == nx-1 || x == nx {
			if p, ok := portAtRow(n.Inputs, y-ny); ok {
				return hit{nodeID: n.ID, port: p, isOutput: false, onPort: true}
			}
		}
		if x == nx+nodeWidth-1 || x == nx+nodeWidth {
			if p, ok := portAtRow(n.Outputs, y-ny); ok {
				return hit{nodeID: n.ID, port: p, isOutput: true, onPort: true}
			}
		}
		if x >= nx && x < nx+nodeWidth {
			return hit{nodeID: n.ID, onNode: true}
		}
	}
	return hit{}
}

// portAtRow maps a row within the node box to a port. Row 0 is the top
// border; ports start on row 1.
func portAtRow(ports []workflow.PortSpec, row int) (string, bool) {
	idx := row - 1
	if idx < 0 || idx >= len(ports) {
		return "", false
	}
	return ports[idx].Name, true
}

// =============================================================================
// View
// =============================================================================

func (m editorModel) View() string {
	canvasW := m.width - paletteWidth - propsWidth - 2
	canvasH := m.height - headerRows - footerRows
	if canvasW < 20 || canvasH < 8 {
		return "window too small"
	}

	header := m.viewHeader()
	palette := m.viewPalette(canvasH)
	board := m.viewCanvas(canvasW, canvasH)
	props := m.viewProps(canvasH)

	body := lipgloss.JoinHorizontal(lipgloss.Top, palette, board, props)
	return header + "\n" + body + "\n" + m.viewFooter()
}

func (m editorModel) viewHeader() string {
	store := m.controller.Store()
	stats := fmt.Sprintf("%d nodes · %d connections", store.NodeCount(), store.ConnectionCount())
	title := StyleTitle.Render("flowcanvas")
	return title + "  " + StyleDim.Render(stats) + "\n" + StyleDim.Render(strings.Repeat("─", max(m.width, 1)))
}

func (m editorModel) viewFooter() string {
	help := "enter place · tab panes · drag move · click ports to wire · d delete · x unwire · e export+quit · q quit"
	line := StyleDim.Render(help)
	if m.status != "" {
		line += "  " + StyleHighlight.Render(m.status)
	}
	return line
}

func (m editorModel) viewPalette(height int) string {
	var b strings.Builder
	b.WriteString(stylePaneTitle.Render("Components"))
	b.WriteString("\n\n")

	for i, t := range m.templates {
		cursor := "  "
		style := styleNodeBox
		if i == m.paletteCursor {
			cursor = "▸ "
			if m.focus == focusPalette {
				style = styleNodeSelected
			}
		}
		b.WriteString(style.Render(cursor + t.Name))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("    " + t.Category))
		b.WriteString("\n")
	}

	return stylePaneBorder.Width(paletteWidth - 2).Height(height - 2).Render(b.String())
}

// viewCanvas paints nodes and connections into a rune grid.
func (m editorModel) viewCanvas(width, height int) string {
	grid := newCellGrid(width, height)

	// Wires first so node boxes paint over them.
	store := m.controller.Store()
	for _, c := range store.Connections() {
		m.drawWire(grid, c)
	}
	for _, n := range store.Nodes() {
		m.drawNode(grid, n)
	}

	return grid.render()
}

func (m editorModel) drawNode(g *cellGrid, n *workflow.Node) {
	x, y := int(n.Position.X), int(n.Position.Y)
	selected := n.ID == m.controller.SelectedID()
	boxStyle := styleNodeBox
	if selected {
		boxStyle = styleNodeSelected
	}

	top := "┌" + strings.Repeat("─", nodeWidth-2) + "┐"
	bottom := "└" + strings.Repeat("─", nodeWidth-2) + "┘"
	g.writeString(x, y, top, boxStyle)
	g.writeString(x, y+nodeHeight-1, bottom, boxStyle)

	label := truncate(n.Name, nodeWidth-4)
	mid := "│ " + label + strings.Repeat(" ", nodeWidth-4-len([]rune(label))) + " │"
	g.writeString(x, y+1, mid, boxStyle)

	pendingFrom := m.controller.State() == canvas.StateConnecting && m.controller.Pending().NodeID == n.ID
	for i := range n.Inputs {
		g.writeString(x-1, y+1+i, "◧", stylePort)
	}
	for i, p := range n.Outputs {
		style := stylePort
		if pendingFrom && m.controller.Pending().Port == p.Name {
			style = stylePortPending
		}
		g.writeString(x+nodeWidth, y+1+i, "◨", style)
	}
}

// drawWire draws a connection as an L-shaped path between port cells.
func (m editorModel) drawWire(g *cellGrid, c workflow.Connection) {
	store := m.controller.Store()
	src, ok := store.Node(c.Source.NodeID)
	if !ok {
		return
	}
	dst, ok := store.Node(c.Target.NodeID)
	if !ok {
		return
	}

	x1 := int(src.Position.X) + nodeWidth + 1
	y1 := int(src.Position.Y) + 1 + portIndex(src.Outputs, c.Source.Port)
	x2 := int(dst.Position.X) - 2
	y2 := int(dst.Position.Y) + 1 + portIndex(dst.Inputs, c.Target.Port)

	midX := (x1 + x2) / 2
	for x := min(x1, midX); x <= max(x1, midX); x++ {
		g.writeString(x, y1, "─", styleWire)
	}
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		g.writeString(midX, y, "│", styleWire)
	}
	for x := min(midX, x2); x <= max(midX, x2); x++ {
		g.writeString(x, y2, "─", styleWire)
	}
}

func portIndex(ports []workflow.PortSpec, name string) int {
	for i, p := range ports {
		if p.Name == name {
			return i
		}
	}
	return 0
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// =============================================================================
// Cell Grid
// =============================================================================

// cellGrid is a paintable rune buffer with per-cell styles.
type cellGrid struct {
	width  int
	height int
	runes  [][]rune
	styles [][]*lipgloss.Style
}

func newCellGrid(width, height int) *cellGrid {
	g := &cellGrid{width: width, height: height}
	g.runes = make([][]rune, height)
	g.styles = make([][]*lipgloss.Style, height)
	for y := range g.runes {
		g.runes[y] = make([]rune, width)
		g.styles[y] = make([]*lipgloss.Style, width)
		for x := range g.runes[y] {
			g.runes[y][x] = ' '
		}
	}
	return g
}

func (g *cellGrid) writeString(x, y int, s string, style lipgloss.Style) {
	if y < 0 || y >= g.height {
		return
	}
	for i, r := range []rune(s) {
		cx := x + i
		if cx < 0 || cx >= g.width {
			continue
		}
		g.runes[y][cx] = r
		g.styles[y][cx] = &style
	}
}

func (g *cellGrid) render() string {
	var b strings.Builder
	for y := range g.runes {
		var run []rune
		var runStyle *lipgloss.Style
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runStyle != nil {
				b.WriteString(runStyle.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for x := range g.runes[y] {
			st := g.styles[y][x]
			if st != runStyle {
				flush()
				runStyle = st
			}
			run = append(run, g.runes[y][x])
		}
		flush()
		if y < g.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
