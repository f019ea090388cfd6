package canvas

import "github.com/matzehuels/flowcanvas/pkg/workflow"

// DragSession is the scoped resource backing one drag gesture. It is
// acquired when the pointer presses a node body and must be released
// exactly once when the gesture ends - on pointer-up, on cancellation,
// or when the dragged node is deleted mid-gesture.
//
// After Release, Move calls are no-ops, so a stale pointer-move event
// arriving after the gesture ended cannot mutate the graph.
type DragSession struct {
	store    *workflow.Store
	nodeID   string
	offset   workflow.Position
	released bool
}

// newDragSession captures the grab offset between the pointer and the
// node's origin, so the node doesn't jump to the cursor on the first move.
func newDragSession(store *workflow.Store, nodeID string, offset workflow.Position) *DragSession {
	return &DragSession{store: store, nodeID: nodeID, offset: offset}
}

// NodeID returns the id of the node being dragged.
func (d *DragSession) NodeID() string { return d.nodeID }

// Active reports whether the session has not been released yet.
func (d *DragSession) Active() bool { return !d.released }

// Move repositions the node under the pointer, preserving the grab offset.
// Coordinates are clamped by the store. Identical pointer positions produce
// identical results, so a high-frequency move stream is safe to replay.
func (d *DragSession) Move(pointer workflow.Position) {
	if d.released {
		return
	}
	d.store.MoveNode(d.nodeID, pointer.Sub(d.offset))
}

// Release ends the session. Further Move calls are ignored. Idempotent.
func (d *DragSession) Release() { d.released = true }
