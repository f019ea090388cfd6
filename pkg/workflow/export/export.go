// Package export projects a workflow store into the portable document
// format used for download and execution hand-off.
//
// The document is a pure function of store state plus supplied metadata:
// exporting twice without intervening mutation yields structurally identical
// documents. Import of a previously exported document is intentionally not
// implemented.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// DefaultFilename is the conventional export filename.
const DefaultFilename = "workflow.json"

// Metadata describes the exported workflow.
type Metadata struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Node is the serialized form of a workflow node.
type Node struct {
	ID       string              `json:"id"`
	Type     string              `json:"type"`
	Name     string              `json:"name"`
	Position workflow.Position   `json:"position"`
	Inputs   []workflow.PortSpec `json:"inputs,omitempty"`
	Outputs  []workflow.PortSpec `json:"outputs,omitempty"`
	Config   workflow.Config     `json:"config"`
}

// Connection is the serialized form of a workflow connection.
type Connection struct {
	ID     string           `json:"id"`
	Source workflow.PortRef `json:"source"`
	Target workflow.PortRef `json:"target"`
}

// Document is the portable representation of a workflow graph.
// Node and connection order follows store insertion order.
type Document struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Metadata    Metadata     `json:"metadata"`
}

// Build projects the store into a document. It reads the store without
// mutating it; the returned document shares no state with the store.
func Build(s *workflow.Store, meta Metadata) Document {
	nodes := s.Nodes()
	conns := s.Connections()

	doc := Document{
		Nodes:       make([]Node, len(nodes)),
		Connections: make([]Connection, len(conns)),
		Metadata:    meta,
	}

	for i, n := range nodes {
		doc.Nodes[i] = Node{
			ID:       n.ID,
			Type:     n.TemplateType,
			Name:     n.Name,
			Position: n.Position,
			Inputs:   clonePorts(n.Inputs),
			Outputs:  clonePorts(n.Outputs),
			Config:   n.Config.Clone(),
		}
	}
	for i, c := range conns {
		doc.Connections[i] = Connection{ID: c.ID, Source: c.Source, Target: c.Target}
	}

	return doc
}

// Write encodes the document as indented JSON to w.
func Write(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal encodes the document as indented JSON bytes.
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// ExportFile writes the document to a JSON file at path.
// This is a convenience wrapper around [Write] for file-based output.
func ExportFile(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(doc, f)
}

func clonePorts(ports []workflow.PortSpec) []workflow.PortSpec {
	if len(ports) == 0 {
		return nil
	}
	out := make([]workflow.PortSpec, len(ports))
	copy(out, ports)
	return out
}
