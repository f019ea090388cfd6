// Package render produces visual previews of exported workflow documents.
//
// The preview pipeline converts a document to Graphviz DOT and renders it
// to SVG. Nodes are drawn as boxes labeled with the node name and type;
// edges carry the source and target port names. The preview is a read-only
// artifact for sharing and review, not an editing surface.
package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowcanvas/pkg/workflow/export"
)

// Options configures workflow preview rendering.
type Options struct {
	// Detailed includes the template type and config key names in node
	// labels. When false, only the node name is shown.
	Detailed bool
}

// ToDOT converts an exported workflow document to Graphviz DOT format.
// The resulting string can be rendered with [RenderSVG].
func ToDOT(doc *export.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph workflow {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.7;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, fmtLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, c := range doc.Connections {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n",
			c.Source.NodeID, c.Target.NodeID,
			c.Source.Port+" → "+c.Target.Port)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n export.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}

	parts := []string{n.Name, "(" + n.Type + ")"}
	if len(n.Config) > 0 {
		keys := slices.Sorted(maps.Keys(n.Config))
		parts = append(parts, "config: "+strings.Join(keys, ", "))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// PreviewFile renders the document and writes the SVG to path.
func PreviewFile(ctx context.Context, doc *export.Document, path string, opts Options) error {
	svg, err := RenderSVG(ctx, ToDOT(doc, opts))
	if err != nil {
		return err
	}
	return os.WriteFile(path, svg, 0o644)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root tag so the viewBox starts at the
// origin. Graphviz emits a translated viewBox that confuses some viewers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
