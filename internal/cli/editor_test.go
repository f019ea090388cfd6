package cli

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowcanvas/pkg/canvas"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

func newTestEditor(t *testing.T) editorModel {
	t.Helper()
	return newEditorModel(workflow.DefaultCatalog(), log.New(io.Discard))
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// mouseAt builds a mouse message targeting a canvas coordinate.
func mouseAt(m editorModel, pos workflow.Position, action tea.MouseAction) tea.MouseMsg {
	ox, oy := m.canvasOrigin()
	return tea.MouseMsg{
		X:      ox + int(pos.X),
		Y:      oy + int(pos.Y),
		Action: action,
		Button: tea.MouseButtonLeft,
	}
}

func update(t *testing.T, m editorModel, msg tea.Msg) editorModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(editorModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

// place drops the template at the given palette index onto the canvas.
func place(t *testing.T, m editorModel, paletteIdx int) editorModel {
	t.Helper()
	m.paletteCursor = paletteIdx
	m.focus = focusPalette
	return update(t, m, key(tea.KeyEnter))
}

func TestEditor_PlaceFromPalette(t *testing.T) {
	m := newTestEditor(t)

	m = place(t, m, 0)
	if got := m.controller.Store().NodeCount(); got != 1 {
		t.Fatalf("nodes = %d, want 1", got)
	}
	if m.controller.State() != canvas.StateNodeSelected {
		t.Errorf("state = %v, want selected", m.controller.State())
	}

	// Consecutive placements cascade instead of stacking.
	m = place(t, m, 0)
	nodes := m.controller.Store().Nodes()
	if nodes[0].Position == nodes[1].Position {
		t.Error("second node placed on top of the first")
	}
}

func TestEditor_MouseDragMovesNode(t *testing.T) {
	m := newTestEditor(t)
	m = place(t, m, 0) // scraper at (4, 2)

	n := m.controller.Store().Nodes()[0]
	if n.Position.X != 4 || n.Position.Y != 2 {
		t.Fatalf("unexpected initial position %+v", n.Position)
	}

	// Grab the body at (10, 3): offset (6, 1) from the node origin.
	m = update(t, m, mouseAt(m, workflow.Position{X: 10, Y: 3}, tea.MouseActionPress))
	if m.controller.State() != canvas.StateDragging {
		t.Fatalf("state after press = %v, want dragging", m.controller.State())
	}

	m = update(t, m, mouseAt(m, workflow.Position{X: 30, Y: 10}, tea.MouseActionMotion))
	moved, _ := m.controller.Store().Node(n.ID)
	if moved.Position.X != 24 || moved.Position.Y != 9 {
		t.Errorf("position after move = %+v, want (24, 9)", moved.Position)
	}

	m = update(t, m, mouseAt(m, workflow.Position{X: 30, Y: 10}, tea.MouseActionRelease))
	if m.controller.State() != canvas.StateNodeSelected {
		t.Errorf("state after release = %v, want selected", m.controller.State())
	}
}

func TestEditor_ConnectWithPortClicks(t *testing.T) {
	m := newTestEditor(t)
	m = place(t, m, 0) // scraper at (4, 2), output "data"
	m = place(t, m, 3) // data_storage at (26, 2), input "data"

	// Click the scraper's output marker (column nodeWidth past its origin).
	m = update(t, m, mouseAt(m, workflow.Position{X: 4 + nodeWidth, Y: 3}, tea.MouseActionPress))
	if m.controller.State() != canvas.StateConnecting {
		t.Fatalf("state = %v, want connecting", m.controller.State())
	}

	// Click the storage node's input marker (column left of its origin).
	m = update(t, m, mouseAt(m, workflow.Position{X: 25, Y: 3}, tea.MouseActionPress))
	if got := m.controller.Store().ConnectionCount(); got != 1 {
		t.Fatalf("connections = %d, want 1", got)
	}
	if m.controller.State() != canvas.StateIdle {
		t.Errorf("state after completion = %v, want idle", m.controller.State())
	}
}

func TestEditor_InputPortCannotStartConnection(t *testing.T) {
	m := newTestEditor(t)
	m = place(t, m, 3) // data_storage at (4, 2)

	m = update(t, m, mouseAt(m, workflow.Position{X: 3, Y: 3}, tea.MouseActionPress))
	if m.controller.State() == canvas.StateConnecting {
		t.Error("input port click started a connection gesture")
	}
}

func TestEditor_CanvasClickClearsSelection(t *testing.T) {
	m := newTestEditor(t)
	m = place(t, m, 0)

	empty := workflow.Position{X: 30, Y: 15}
	m = update(t, m, mouseAt(m, empty, tea.MouseActionPress))
	m = update(t, m, mouseAt(m, empty, tea.MouseActionRelease))

	if m.controller.SelectedID() != "" {
		t.Error("selection survived a canvas click")
	}
	if m.controller.State() != canvas.StateIdle {
		t.Errorf("state = %v, want idle", m.controller.State())
	}
}

func TestEditor_DeleteSelectedNode(t *testing.T) {
	m := newTestEditor(t)
	m = place(t, m, 0)

	m.focus = focusPalette
	m = update(t, m, runes("d"))
	if got := m.controller.Store().NodeCount(); got != 0 {
		t.Errorf("nodes = %d, want 0", got)
	}
}

func TestEditor_DeleteConnectionKey(t *testing.T) {
	m := newTestEditor(t)
	m = place(t, m, 0)
	m = place(t, m, 3)

	m = update(t, m, mouseAt(m, workflow.Position{X: 4 + nodeWidth, Y: 3}, tea.MouseActionPress))
	m = update(t, m, mouseAt(m, workflow.Position{X: 25, Y: 3}, tea.MouseActionPress))
	if m.controller.Store().ConnectionCount() != 1 {
		t.Fatal("connection not formed")
	}

	m = update(t, m, runes("x"))
	if got := m.controller.Store().ConnectionCount(); got != 0 {
		t.Errorf("connections = %d, want 0", got)
	}
}

func TestEditor_HitTest(t *testing.T) {
	m := newTestEditor(t)
	m = place(t, m, 0) // scraper at (4, 2): body x 4-21, output marker at 22

	tests := []struct {
		name   string
		pos    workflow.Position
		onNode bool
		onPort bool
		output bool
	}{
		{"body", workflow.Position{X: 10, Y: 3}, true, false, false},
		{"top border", workflow.Position{X: 10, Y: 2}, true, false, false},
		{"output marker", workflow.Position{X: 22, Y: 3}, false, true, true},
		{"left edge no input", workflow.Position{X: 3, Y: 3}, false, false, false},
		{"empty canvas", workflow.Position{X: 60, Y: 20}, false, false, false},
		{"below node", workflow.Position{X: 10, Y: 8}, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := m.hitTest(tt.pos)
			if h.onNode != tt.onNode || h.onPort != tt.onPort {
				t.Errorf("hit = %+v", h)
			}
			if h.onPort && h.isOutput != tt.output {
				t.Errorf("isOutput = %v, want %v", h.isOutput, tt.output)
			}
		})
	}
}

func TestEditor_ExportKeyQuits(t *testing.T) {
	m := newTestEditor(t)
	m = place(t, m, 0)

	m.focus = focusPalette
	next, cmd := m.Update(runes("e"))
	m = next.(editorModel)
	if !m.exportRequested {
		t.Error("exportRequested not set")
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
}

func TestEditor_ViewRendersNodesAndWires(t *testing.T) {
	m := newTestEditor(t)
	m.width = 120
	m.height = 40
	m = place(t, m, 0)
	m = place(t, m, 3)
	m = update(t, m, mouseAt(m, workflow.Position{X: 4 + nodeWidth, Y: 3}, tea.MouseActionPress))
	m = update(t, m, mouseAt(m, workflow.Position{X: 25, Y: 3}, tea.MouseActionPress))

	out := m.View()
	if out == "" || out == "window too small" {
		t.Fatalf("unexpected view output %q", out)
	}
}
