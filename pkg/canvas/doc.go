// Package canvas implements the interaction state machine that turns raw
// pointer gestures into workflow store operations.
//
// The machine has four states - idle, node selected, dragging, and
// connecting - and is driven entirely by discrete events: canvas clicks,
// node clicks, press/move/release sequences, and port clicks. Each event
// handler runs synchronously and completes before the next event arrives,
// matching the single-actor event loop the editor runs in.
//
// Drag gestures are modeled as an explicit [DragSession] resource: acquired
// on press, released deterministically on pointer-up, cancellation, or
// node deletion. A released session ignores further moves, so no stale
// event can mutate the graph after its gesture ended.
//
// Connection gestures are two-phase: an output-port click records the begin
// endpoint, and the next port click hands both endpoints to the store for
// validation. Rejections are silent - the machine resets to idle with no
// user-visible error - but the typed reason is retained for inspection via
// [Controller.LastRejection].
package canvas
