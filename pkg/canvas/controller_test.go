package canvas

import (
	"testing"

	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

func newController(t *testing.T) (*Controller, *workflow.Registry) {
	t.Helper()
	reg, err := workflow.NewRegistry(workflow.DefaultCatalog())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewController(workflow.NewStore()), reg
}

func place(t *testing.T, c *Controller, reg *workflow.Registry, typ string, pos workflow.Position) *workflow.Node {
	t.Helper()
	tmpl, err := reg.Get(typ)
	if err != nil {
		t.Fatalf("Get(%q): %v", typ, err)
	}
	return c.PlaceNode(tmpl, pos)
}

func TestController_InitialState(t *testing.T) {
	c, _ := newController(t)
	if c.State() != StateIdle {
		t.Errorf("State = %v, want idle", c.State())
	}
}

func TestController_SelectAndClearSelection(t *testing.T) {
	c, reg := newController(t)
	n := place(t, c, reg, "scraper", workflow.Position{X: 50, Y: 50})

	if c.State() != StateNodeSelected || c.SelectedID() != n.ID {
		t.Fatalf("after place: state=%v selected=%q", c.State(), c.SelectedID())
	}

	c.ClickCanvas()
	if c.State() != StateIdle || c.SelectedID() != "" {
		t.Errorf("after canvas click: state=%v selected=%q", c.State(), c.SelectedID())
	}

	c.ClickNode(n.ID)
	if c.State() != StateNodeSelected || c.SelectedID() != n.ID {
		t.Errorf("after node click: state=%v selected=%q", c.State(), c.SelectedID())
	}
}

func TestController_ClickUnknownNodeIgnored(t *testing.T) {
	c, _ := newController(t)
	c.ClickNode("ghost")
	if c.State() != StateIdle {
		t.Errorf("State = %v, want idle", c.State())
	}
}

func TestController_DragMovesWithOffset(t *testing.T) {
	c, reg := newController(t)
	n := place(t, c, reg, "scraper", workflow.Position{X: 100, Y: 100})

	// Grab the node 10,5 inside its body.
	c.PressNode(n.ID, workflow.Position{X: 110, Y: 105})
	if c.State() != StateDragging {
		t.Fatalf("State = %v, want dragging", c.State())
	}

	c.PointerMove(workflow.Position{X: 210, Y: 155})
	if n.Position != (workflow.Position{X: 200, Y: 150}) {
		t.Errorf("Position = %+v, want {200 150}", n.Position)
	}

	// Dragging past the origin clamps at zero.
	c.PointerMove(workflow.Position{X: 0, Y: 0})
	if n.Position != (workflow.Position{X: 0, Y: 0}) {
		t.Errorf("Position = %+v, want origin", n.Position)
	}

	c.Release()
	if c.State() != StateNodeSelected || c.SelectedID() != n.ID {
		t.Errorf("after release: state=%v selected=%q", c.State(), c.SelectedID())
	}
}

func TestController_StaleMoveAfterReleaseIgnored(t *testing.T) {
	c, reg := newController(t)
	n := place(t, c, reg, "scraper", workflow.Position{X: 100, Y: 100})

	session := c.PressNode(n.ID, workflow.Position{X: 100, Y: 100})
	c.Release()

	if session.Active() {
		t.Fatal("session still active after release")
	}
	session.Move(workflow.Position{X: 500, Y: 500})
	if n.Position != (workflow.Position{X: 100, Y: 100}) {
		t.Errorf("stale move mutated position: %+v", n.Position)
	}
}

func TestController_CancelReleasesDrag(t *testing.T) {
	c, reg := newController(t)
	n := place(t, c, reg, "scraper", workflow.Position{X: 100, Y: 100})

	session := c.PressNode(n.ID, workflow.Position{X: 100, Y: 100})
	c.Cancel() // pointer left the window

	if session.Active() {
		t.Error("session still active after cancel")
	}
	if c.State() != StateNodeSelected {
		t.Errorf("State = %v, want selected", c.State())
	}
}

func TestController_ConnectGesture(t *testing.T) {
	c, reg := newController(t)
	a := place(t, c, reg, "scraper", workflow.Position{X: 50, Y: 50})
	b := place(t, c, reg, "data_storage", workflow.Position{X: 300, Y: 50})

	c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data", IsOutput: true})
	if c.State() != StateConnecting {
		t.Fatalf("State = %v, want connecting", c.State())
	}

	conn, reason := c.ClickPort(workflow.Endpoint{NodeID: b.ID, Port: "data"})
	if reason != workflow.RejectNone || conn == nil {
		t.Fatalf("completion: conn=%v reason=%v", conn, reason)
	}
	if c.State() != StateIdle {
		t.Errorf("State = %v, want idle after completion", c.State())
	}
	if c.Store().ConnectionCount() != 1 {
		t.Errorf("ConnectionCount = %d, want 1", c.Store().ConnectionCount())
	}
}

func TestController_InputPortCannotStartGesture(t *testing.T) {
	c, reg := newController(t)
	b := place(t, c, reg, "data_storage", workflow.Position{X: 300, Y: 50})

	c.ClickPort(workflow.Endpoint{NodeID: b.ID, Port: "data", IsOutput: false})
	if c.State() == StateConnecting {
		t.Error("input-port click started a connection gesture")
	}
}

func TestController_RejectedGestureResetsSilently(t *testing.T) {
	c, reg := newController(t)
	a := place(t, c, reg, "scraper", workflow.Position{X: 50, Y: 50})

	// Begin at A's output, complete on A itself: self loop, silently dropped.
	c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data", IsOutput: true})
	conn, reason := c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data"})

	if conn != nil {
		t.Fatal("self loop produced a connection")
	}
	if reason != workflow.RejectSelfLoop {
		t.Errorf("reason = %v, want self loop", reason)
	}
	if c.State() != StateIdle {
		t.Errorf("State = %v, want idle", c.State())
	}
	if c.LastRejection() != workflow.RejectSelfLoop {
		t.Errorf("LastRejection = %v", c.LastRejection())
	}
	if c.Store().ConnectionCount() != 0 {
		t.Errorf("ConnectionCount = %d, want 0", c.Store().ConnectionCount())
	}
}

func TestController_PendingClearedUnconditionally(t *testing.T) {
	c, reg := newController(t)
	a := place(t, c, reg, "scraper", workflow.Position{X: 50, Y: 50})

	c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data", IsOutput: true})
	c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data"}) // rejected

	if got := c.Pending(); got != (workflow.Endpoint{}) {
		t.Errorf("pending endpoint retained: %+v", got)
	}
}

func TestController_DeleteSelectedNode(t *testing.T) {
	c, reg := newController(t)
	n := place(t, c, reg, "scraper", workflow.Position{X: 50, Y: 50})

	c.DeleteNode(n.ID)

	if c.State() != StateIdle || c.SelectedID() != "" {
		t.Errorf("state=%v selected=%q, want idle/empty", c.State(), c.SelectedID())
	}
	if c.Store().NodeCount() != 0 {
		t.Errorf("NodeCount = %d, want 0", c.Store().NodeCount())
	}
}

func TestController_DeleteDraggedNodeReleasesSession(t *testing.T) {
	c, reg := newController(t)
	n := place(t, c, reg, "scraper", workflow.Position{X: 50, Y: 50})

	session := c.PressNode(n.ID, workflow.Position{X: 50, Y: 50})
	c.DeleteNode(n.ID)

	if session.Active() {
		t.Error("drag session survived node deletion")
	}
	if c.State() != StateIdle {
		t.Errorf("State = %v, want idle", c.State())
	}
}

func TestController_DeletePendingSourceClearsGesture(t *testing.T) {
	c, reg := newController(t)
	a := place(t, c, reg, "scraper", workflow.Position{X: 50, Y: 50})
	b := place(t, c, reg, "data_storage", workflow.Position{X: 300, Y: 50})

	c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data", IsOutput: true})
	c.DeleteNode(a.ID)

	if c.State() != StateIdle {
		t.Fatalf("State = %v, want idle", c.State())
	}

	// The machine accepts fresh gestures afterwards.
	c.ClickPort(workflow.Endpoint{NodeID: b.ID, Port: "data", IsOutput: false})
	if c.State() != StateIdle {
		t.Errorf("input click after reset: State = %v", c.State())
	}
}

func TestController_DeleteConnection(t *testing.T) {
	c, reg := newController(t)
	a := place(t, c, reg, "scraper", workflow.Position{X: 50, Y: 50})
	b := place(t, c, reg, "data_storage", workflow.Position{X: 300, Y: 50})

	c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data", IsOutput: true})
	conn, _ := c.ClickPort(workflow.Endpoint{NodeID: b.ID, Port: "data"})

	c.DeleteConnection(conn.ID)
	if c.Store().ConnectionCount() != 0 {
		t.Errorf("ConnectionCount = %d, want 0", c.Store().ConnectionCount())
	}
}

// Full gesture walk: place two nodes, wire them, try the reverse wire,
// delete the source node. Mirrors a realistic editing session end to end.
func TestController_EditingSession(t *testing.T) {
	c, reg := newController(t)
	a := place(t, c, reg, "scraper", workflow.Position{X: 50, Y: 50})
	b := place(t, c, reg, "data_storage", workflow.Position{X: 300, Y: 50})

	c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data", IsOutput: true})
	if _, reason := c.ClickPort(workflow.Endpoint{NodeID: b.ID, Port: "data"}); reason != workflow.RejectNone {
		t.Fatalf("forward wire rejected: %v", reason)
	}

	// Reverse gesture: input first. The initial click is inert, so the
	// following output click begins a new gesture instead of completing one.
	c.ClickPort(workflow.Endpoint{NodeID: b.ID, Port: "data", IsOutput: false})
	c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data", IsOutput: true})
	if c.State() != StateConnecting {
		t.Fatalf("State = %v, want connecting", c.State())
	}
	c.ClickCanvas() // abandoned; pending survives until a port click
	c.ClickPort(workflow.Endpoint{NodeID: a.ID, Port: "data"})

	if c.Store().ConnectionCount() != 1 {
		t.Fatalf("ConnectionCount = %d, want 1", c.Store().ConnectionCount())
	}

	c.DeleteNode(a.ID)
	if c.Store().NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", c.Store().NodeCount())
	}
	if c.Store().ConnectionCount() != 0 {
		t.Errorf("ConnectionCount = %d, want 0 after cascade", c.Store().ConnectionCount())
	}
}
