package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/render"
	"github.com/matzehuels/flowcanvas/pkg/workflow/export"
)

// previewCommand creates the preview command for rendering an exported
// workflow as SVG.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "preview [workflow.json]",
		Short: "Render an exported workflow as SVG",
		Long: `Render an exported workflow as SVG.

Takes a workflow file produced by the edit command and lays it out with
Graphviz: nodes become labeled boxes, connections become edges annotated
with their port names. The result is a shareable picture of the
workflow, not an editable document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], output, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with .svg extension)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include template types and config keys in labels")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, input, output string, detailed bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read workflow %s: %w", input, err)
	}
	var doc export.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse workflow %s: %w", input, err)
	}

	if output == "" {
		output = strings.TrimSuffix(input, ".json") + ".svg"
	}
	loggerFromContext(cmd.Context()).Debug("rendering preview",
		"nodes", len(doc.Nodes), "connections", len(doc.Connections))

	spinner := newSpinnerWithContext(cmd.Context(), "Rendering preview...")
	spinner.Start()

	opts := render.Options{Detailed: detailed}
	if err := render.PreviewFile(cmd.Context(), &doc, output, opts); err != nil {
		spinner.StopWithError("Preview failed")
		return fmt.Errorf("preview: %w", err)
	}
	spinner.Stop()

	printSuccess("preview rendered")
	printFile(output)
	return nil
}
