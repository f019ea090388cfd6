// Package workflow provides the core data model for the visual workflow
// builder: the component catalog, the graph store, and connection validation.
//
// # Overview
//
// A workflow is a directed graph of typed processing nodes. Nodes are
// instantiated from read-only [ComponentTemplate] blueprints held by a
// [Registry], placed at canvas positions, and wired together port-to-port
// with [Connection] edges. The [Store] owns the authoritative graph state
// and exposes every mutation the editor needs.
//
// # Basic Usage
//
// Build a registry, create a store, and place nodes:
//
//	reg, _ := workflow.NewRegistry(workflow.DefaultCatalog())
//	store := workflow.NewStore()
//
//	tmpl, _ := reg.Get("scraper")
//	a := store.AddNode(tmpl, workflow.Position{X: 50, Y: 50})
//
// Connections are formed from a begin endpoint (recorded when the gesture
// starts at an output port) and an end endpoint (the port the gesture
// completes on):
//
//	conn, reason := store.AddConnection(
//	    workflow.Endpoint{NodeID: a.ID, Port: "data", IsOutput: true},
//	    workflow.Endpoint{NodeID: b.ID, Port: "data"},
//	)
//	if reason != workflow.RejectNone {
//	    // gesture refused; nothing was persisted
//	}
//
// # Validation
//
// [CheckConnection] accepts a connection only when the gesture runs from an
// output port to an input port on a different node. The direction rule is
// deliberately asymmetric: starting at an input port is always refused, even
// though the resulting edge would be structurally identical. Port data kinds
// are documentation labels only and are never compared. Cycles are not
// detected - a workflow containing a directed cycle is accepted.
//
// # Ownership
//
// Templates are cloned by value into nodes at creation time. Editing a
// node's ports or configuration never affects the catalog, and swapping the
// catalog never affects nodes already on the canvas.
//
// # Concurrency
//
// The Store is not safe for concurrent use. The editor mutates it from a
// single event loop; embedders with multiple writers must synchronize.
package workflow
