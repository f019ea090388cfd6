package canvas

import (
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// State is the interaction machine's current mode.
type State int

const (
	// StateIdle - nothing selected, no gesture in flight.
	StateIdle State = iota
	// StateNodeSelected - a node is selected and shown in the properties pane.
	StateNodeSelected
	// StateDragging - a node follows the pointer via an active drag session.
	StateDragging
	// StateConnecting - an output port was clicked; the next port click
	// completes (or discards) the pending connection.
	StateConnecting
)

// String returns the state name for logs and test failures.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNodeSelected:
		return "selected"
	case StateDragging:
		return "dragging"
	case StateConnecting:
		return "connecting"
	default:
		return "unknown"
	}
}

// Controller translates discrete pointer gestures into store operations.
// It is the only writer of the store it holds and keeps no graph state of
// its own - just the selection, the active drag session, and the pending
// connection endpoint.
//
// Every method is synchronous and completes before the next event is
// processed; per-move work during a drag is O(1).
type Controller struct {
	store *workflow.Store

	state    State
	selected string
	drag     *DragSession
	pending  workflow.Endpoint

	lastReject workflow.RejectReason
}

// NewController creates a controller in the idle state over the given store.
func NewController(store *workflow.Store) *Controller {
	return &Controller{store: store}
}

// Store returns the underlying workflow store.
func (c *Controller) Store() *workflow.Store { return c.store }

// State returns the current machine state.
func (c *Controller) State() State { return c.state }

// SelectedID returns the id of the selected node, or "" when nothing is
// selected. Valid in StateNodeSelected and StateDragging.
func (c *Controller) SelectedID() string { return c.selected }

// Pending returns the recorded begin endpoint. Valid in StateConnecting.
func (c *Controller) Pending() workflow.Endpoint { return c.pending }

// LastRejection returns the reason the most recent connection gesture was
// refused, or RejectNone if it was accepted. Rejections are never surfaced
// in the editor UI; this exists for tests and debug logging.
func (c *Controller) LastRejection() workflow.RejectReason { return c.lastReject }

// PlaceNode instantiates a template onto the canvas and selects the new node.
func (c *Controller) PlaceNode(t workflow.ComponentTemplate, pos workflow.Position) *workflow.Node {
	c.endDrag()
	n := c.store.AddNode(t, pos)
	c.selected = n.ID
	c.state = StateNodeSelected
	return n
}

// ClickCanvas handles a click on empty canvas: selection is cleared and the
// machine returns to idle. A pending connection survives - only a port
// click resolves it.
func (c *Controller) ClickCanvas() {
	if c.state == StateConnecting {
		return
	}
	c.endDrag()
	c.selected = ""
	c.state = StateIdle
}

// ClickNode selects the clicked node.
func (c *Controller) ClickNode(id string) {
	if _, ok := c.store.Node(id); !ok {
		return
	}
	if c.state == StateConnecting {
		return
	}
	c.endDrag()
	c.selected = id
	c.state = StateNodeSelected
}

// PressNode begins a drag gesture on a node body. The returned session is
// also retained by the controller: PointerMove forwards to it and Release
// or Cancel ends it. Pressing an unknown node is ignored.
func (c *Controller) PressNode(id string, pointer workflow.Position) *DragSession {
	n, ok := c.store.Node(id)
	if !ok {
		return nil
	}
	c.endDrag()
	c.selected = id
	c.drag = newDragSession(c.store, id, pointer.Sub(n.Position))
	c.state = StateDragging
	return c.drag
}

// PointerMove forwards a pointer-move event to the active drag session.
// Outside of a drag it is a no-op.
func (c *Controller) PointerMove(pointer workflow.Position) {
	if c.state != StateDragging || c.drag == nil {
		return
	}
	c.drag.Move(pointer)
}

// Release ends the active drag session, leaving the dragged node selected.
// Safe to call in any state.
func (c *Controller) Release() {
	if c.state != StateDragging {
		return
	}
	c.endDrag()
	c.state = StateNodeSelected
}

// ClickPort handles a click on a node port.
//
// Outside of a connection gesture, only an output-port click does anything:
// it records the endpoint and enters StateConnecting. During a gesture, any
// port click completes it - the store decides acceptance, and the pending
// state is cleared unconditionally either way.
func (c *Controller) ClickPort(ep workflow.Endpoint) (*workflow.Connection, workflow.RejectReason) {
	if c.state == StateConnecting {
		conn, reason := c.store.AddConnection(c.pending, ep)
		c.pending = workflow.Endpoint{}
		c.lastReject = reason
		c.state = StateIdle
		c.selected = ""
		return conn, reason
	}

	if !ep.IsOutput {
		return nil, workflow.RejectNone
	}
	c.endDrag()
	c.pending = ep
	c.state = StateConnecting
	return nil, workflow.RejectNone
}

// DeleteNode removes a node (cascading its connections) from any state.
// If the node was selected, being dragged, or the origin of the pending
// connection, that reference is cleared and the machine returns to idle.
func (c *Controller) DeleteNode(id string) {
	c.store.RemoveNode(id)

	if c.drag != nil && c.drag.NodeID() == id {
		c.endDrag()
		c.state = StateIdle
	}
	if c.selected == id {
		c.selected = ""
		if c.state == StateNodeSelected || c.state == StateDragging {
			c.state = StateIdle
		}
	}
	if c.state == StateConnecting && c.pending.NodeID == id {
		c.pending = workflow.Endpoint{}
		c.state = StateIdle
	}
}

// DeleteConnection removes a connection from any state.
func (c *Controller) DeleteConnection(id string) {
	c.store.RemoveConnection(id)
}

// Cancel aborts any gesture in flight: the drag session is released and a
// pending connection is discarded. Called on editor teardown and when the
// pointer leaves the window, so listeners never outlive their gesture.
func (c *Controller) Cancel() {
	c.endDrag()
	c.pending = workflow.Endpoint{}
	if c.selected != "" {
		c.state = StateNodeSelected
	} else {
		c.state = StateIdle
	}
}

// endDrag releases the drag session if one is active. Idempotent.
func (c *Controller) endDrag() {
	if c.drag != nil {
		c.drag.Release()
		c.drag = nil
	}
}
