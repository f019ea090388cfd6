// Package pkg provides the core libraries for the flowcanvas workflow builder.
//
// # Overview
//
// Flowcanvas lets users compose automation workflows visually: components
// from a palette are placed on a canvas, wired together through ports, and
// exported as a portable JSON document. The pkg directory is organized
// into three main areas:
//
//  1. [workflow] - Domain logic (component templates, the graph store,
//     connection validation, catalog loading, export)
//  2. [canvas] - The interaction state machine translating pointer
//     gestures into store operations
//  3. Infrastructure - caching ([cache]), data lists ([datalist]),
//     backend clients ([panels]), execution hand-off ([runner]),
//     preview rendering ([render]), configuration ([config])
//
// # Architecture
//
// The typical data flow through flowcanvas:
//
//	Component Catalog (built-in or TOML)
//	         ↓
//	Canvas Editor (place, drag, connect)
//	         ↓
//	Workflow Store (nodes + connections)
//	         ↓
//	Export Document (JSON)
//	         ↓
//	Runner / Preview / Backend
//
// The workflow store is the single source of truth for graph state; the
// canvas controller is its only writer during an editing session. Every
// other package consumes the exported document, never the live store.
package pkg
