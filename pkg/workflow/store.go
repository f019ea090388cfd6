package workflow

import (
	"slices"

	"github.com/google/uuid"
)

// Position is a point in canvas coordinates. Both axes are kept ≥ 0;
// mutation paths clamp negative values back to the origin.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clamp returns the position with negative coordinates raised to zero.
func (p Position) Clamp() Position {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

// Sub returns p - q. Used to apply drag offsets.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Node is a live, positioned, independently configurable instance of a
// component template. Port lists and configuration are value copies taken
// at creation time, so catalog changes never retroactively affect nodes.
//
// Nodes are owned by the Store; callers get pointers to the live structs
// and must route all mutation through Store operations.
type Node struct {
	ID           string
	TemplateType string
	Name         string
	Position     Position
	Inputs       []PortSpec
	Outputs      []PortSpec
	Config       Config
}

// InputPort returns the input port spec with the given name.
func (n *Node) InputPort(name string) (PortSpec, bool) {
	return findPort(n.Inputs, name)
}

// OutputPort returns the output port spec with the given name.
func (n *Node) OutputPort(name string) (PortSpec, bool) {
	return findPort(n.Outputs, name)
}

func findPort(ports []PortSpec, name string) (PortSpec, bool) {
	for _, p := range ports {
		if p.Name == name {
			return p, true
		}
	}
	return PortSpec{}, false
}

// PortRef names a port on a node, identifying one end of a formed connection.
type PortRef struct {
	NodeID string `json:"node_id"`
	Port   string `json:"port"`
}

// Connection is a directed edge from an output port to an input port on a
// different node. Connections are immutable once formed - they can only be
// removed, never edited.
type Connection struct {
	ID     string
	Source PortRef
	Target PortRef
}

// Touches reports whether either endpoint sits on the given node.
func (c Connection) Touches(nodeID string) bool {
	return c.Source.NodeID == nodeID || c.Target.NodeID == nodeID
}

// Store is the authoritative owner of a workflow graph: the node set, the
// connection set, and all mutation paths over them. Insertion order of both
// sets is retained so exports are deterministic.
//
// All operations are synchronous and O(1) or O(connections). The Store is
// not safe for concurrent use - the editor mutates it from a single event
// loop, matching the single-actor model it was built for.
type Store struct {
	nodes     map[string]*Node
	nodeOrder []string
	conns     map[string]*Connection
	connOrder []string
}

// NewStore creates an empty workflow store.
func NewStore() *Store {
	return &Store{
		nodes: make(map[string]*Node),
		conns: make(map[string]*Connection),
	}
}

// AddNode instantiates a template at the given position and returns the new
// node. Ports and default configuration are cloned by value; the template is
// never aliased. Fresh ids come from uuid and are never reused in a session.
// AddNode always succeeds for any template drawn from a Registry.
func (s *Store) AddNode(t ComponentTemplate, pos Position) *Node {
	n := &Node{
		ID:           uuid.NewString(),
		TemplateType: t.Type,
		Name:         t.Name,
		Position:     pos.Clamp(),
		Inputs:       clonePorts(t.Inputs),
		Outputs:      clonePorts(t.Outputs),
		Config:       t.Defaults.Clone(),
	}
	s.nodes[n.ID] = n
	s.nodeOrder = append(s.nodeOrder, n.ID)
	return n
}

// MoveNode replaces the node's position, clamping each coordinate to ≥ 0.
// Unknown ids are silently ignored - drags may outlive a concurrent delete
// gesture, and tolerating the stale id keeps the interaction loop simple.
func (s *Store) MoveNode(id string, pos Position) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	n.Position = pos.Clamp()
}

// RemoveNode deletes the node and every connection touching it, in one
// atomic step. Unknown ids are silently ignored.
func (s *Store) RemoveNode(id string) {
	if _, ok := s.nodes[id]; !ok {
		return
	}
	delete(s.nodes, id)
	s.nodeOrder = slices.DeleteFunc(s.nodeOrder, func(nid string) bool { return nid == id })

	for cid, c := range s.conns {
		if c.Touches(id) {
			delete(s.conns, cid)
		}
	}
	s.connOrder = slices.DeleteFunc(s.connOrder, func(cid string) bool {
		_, live := s.conns[cid]
		return !live
	})
}

// AddConnection validates the gesture endpoints and, on acceptance, forms a
// connection and returns it with RejectNone. On rejection the connection is
// nil and the reason explains the refusal; nothing is persisted.
//
// Beyond the direction and self-loop rules of [CheckConnection], both
// endpoints must name live nodes and existing ports on the correct side
// (begin among the node's outputs, end among the node's inputs).
func (s *Store) AddConnection(begin, end Endpoint) (*Connection, RejectReason) {
	if reason := CheckConnection(begin, end); reason != RejectNone {
		return nil, reason
	}

	src, ok := s.nodes[begin.NodeID]
	if !ok {
		return nil, RejectUnknownEndpoint
	}
	if _, ok := src.OutputPort(begin.Port); !ok {
		return nil, RejectUnknownEndpoint
	}
	dst, ok := s.nodes[end.NodeID]
	if !ok {
		return nil, RejectUnknownEndpoint
	}
	if _, ok := dst.InputPort(end.Port); !ok {
		return nil, RejectUnknownEndpoint
	}

	c := &Connection{
		ID:     uuid.NewString(),
		Source: PortRef{NodeID: begin.NodeID, Port: begin.Port},
		Target: PortRef{NodeID: end.NodeID, Port: end.Port},
	}
	s.conns[c.ID] = c
	s.connOrder = append(s.connOrder, c.ID)
	return c, RejectNone
}

// RemoveConnection deletes the connection if present; unknown ids are
// silently ignored.
func (s *Store) RemoveConnection(id string) {
	if _, ok := s.conns[id]; !ok {
		return
	}
	delete(s.conns, id)
	s.connOrder = slices.DeleteFunc(s.connOrder, func(cid string) bool { return cid == id })
}

// UpdateNodeConfig merges the partial configuration into the node's
// configuration map. Keys present in partial replace the stored values
// (cloned, never aliased); all other keys are left untouched. Unknown node
// ids are silently ignored.
func (s *Store) UpdateNodeConfig(id string, partial Config) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	for k, v := range partial {
		n.Config[k] = v.Clone()
	}
}

// Node returns the node with the given id and true, or nil and false.
func (s *Store) Node(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The slice is a fresh copy;
// the node pointers refer to the live structs.
func (s *Store) Nodes() []*Node {
	out := make([]*Node, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		out = append(out, s.nodes[id])
	}
	return out
}

// Connection returns the connection with the given id and true, or nil and false.
func (s *Store) Connection(id string) (*Connection, bool) {
	c, ok := s.conns[id]
	return c, ok
}

// Connections returns all connections in insertion order as value copies.
func (s *Store) Connections() []Connection {
	out := make([]Connection, 0, len(s.connOrder))
	for _, id := range s.connOrder {
		out = append(out, *s.conns[id])
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (s *Store) NodeCount() int { return len(s.nodes) }

// ConnectionCount returns the number of connections in the graph.
func (s *Store) ConnectionCount() int { return len(s.conns) }
