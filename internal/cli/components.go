package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// componentsCommand creates the components command, a palette listing.
func (c *CLI) componentsCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "components",
		Short: "List the available workflow components",
		Long: `List the available workflow components.

Shows every template in the component catalog with its ports and default
configuration keys. These are the building blocks available in the edit
command's palette.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := c.loadRegistry(catalogPath)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			printComponents(registry.List())
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "component catalog file (TOML)")
	return cmd
}

func printComponents(templates []workflow.ComponentTemplate) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(templates))
	for i, t := range templates {
		rows[i] = []string{
			t.Type,
			t.Name,
			t.Category,
			portNames(t.Inputs),
			portNames(t.Outputs),
			configKeyList(t.Defaults),
		}
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Name", "Category", "Inputs", "Outputs", "Defaults").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(tbl.Render())
	printDetail("%d components", len(templates))
}

func portNames(ports []workflow.PortSpec) string {
	if len(ports) == 0 {
		return "—"
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func configKeyList(cfg workflow.Config) string {
	keys := configKeys(cfg)
	if len(keys) == 0 {
		return "—"
	}
	return strings.Join(keys, ", ")
}
