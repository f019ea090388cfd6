package workflow

// Endpoint identifies one end of a connection gesture: a port on a node,
// plus which side of the node the port sits on. The IsOutput flag is
// recorded at click time by the interaction layer.
type Endpoint struct {
	NodeID   string
	Port     string
	IsOutput bool
}

// RejectReason explains why a pending connection was refused. The editor
// never surfaces rejections to the user (gestures fail silently and reset),
// but the reason is observable for tests and logging.
type RejectReason int

const (
	// RejectNone means the connection was accepted.
	RejectNone RejectReason = iota

	// RejectIncompatibleDirection means the gesture did not run from an
	// output port to an input port. Connections must begin at an output
	// and complete at an input; the reverse gesture is always refused,
	// even when the resulting endpoint pair would be structurally valid.
	RejectIncompatibleDirection

	// RejectSelfLoop means both endpoints sit on the same node.
	RejectSelfLoop

	// RejectUnknownEndpoint means an endpoint names a node or port that
	// does not exist in the store.
	RejectUnknownEndpoint
)

// String returns a short machine-readable label for the reason.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "accepted"
	case RejectIncompatibleDirection:
		return "incompatible direction"
	case RejectSelfLoop:
		return "self loop"
	case RejectUnknownEndpoint:
		return "unknown endpoint"
	default:
		return "unknown reason"
	}
}

// CheckConnection decides whether a connection gesture from begin to end may
// be formed. It is a pure predicate over the two endpoints:
//
//  1. begin must be an output port,
//  2. end must be an input port,
//  3. the endpoints must sit on different nodes.
//
// Port data kinds are intentionally not compared - any output may connect
// to any input that satisfies the rules above.
func CheckConnection(begin, end Endpoint) RejectReason {
	if !begin.IsOutput || end.IsOutput {
		return RejectIncompatibleDirection
	}
	if begin.NodeID == end.NodeID {
		return RejectSelfLoop
	}
	return RejectNone
}
