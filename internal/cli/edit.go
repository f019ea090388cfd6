package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/workflow/export"
)

// editCommand creates the edit command, the interactive canvas editor.
func (c *CLI) editCommand() *cobra.Command {
	var (
		catalogPath string
		output      string
		name        string
		run         bool
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive workflow canvas",
		Long: `Open the interactive workflow canvas.

Place components from the palette onto the canvas, drag them into
position, and wire output ports to input ports. Press 'e' to export the
workflow as JSON and quit; with --run the exported workflow is also
submitted for execution.

The component palette comes from the built-in catalog, or from a TOML
catalog file given with --catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), catalogPath, output, name, run)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "component catalog file (TOML)")
	cmd.Flags().StringVarP(&output, "output", "o", export.DefaultFilename, "export file path")
	cmd.Flags().StringVarP(&name, "name", "n", "untitled workflow", "workflow name used in the export")
	cmd.Flags().BoolVar(&run, "run", false, "submit the workflow for execution on export")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, catalogPath, output, name string, run bool) error {
	registry, err := c.loadRegistry(catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	model := newEditorModel(registry.List(), c.Logger)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	m, ok := final.(editorModel)
	if !ok || !m.exportRequested {
		return nil
	}
	return c.exportAndRun(ctx, m, output, name, run)
}

// exportAndRun writes the edited workflow to disk and optionally submits
// it for execution.
func (c *CLI) exportAndRun(ctx context.Context, m editorModel, output, name string, run bool) error {
	prog := newProgress(c.Logger)
	doc := export.Build(m.controller.Store(), export.Metadata{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err := export.ExportFile(doc, output); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	prog.done(fmt.Sprintf("Exported %d nodes, %d connections", len(doc.Nodes), len(doc.Connections)))
	printSuccess("workflow exported")
	printFile(output)

	if !run {
		printNextStep("preview it", "flowcanvas preview "+output)
		return nil
	}

	res, err := c.newRunner().Run(ctx, &doc)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	printSuccess("workflow submitted")
	printDetail("execution %s (%s)", res.ExecutionID, res.Status)
	return nil
}
