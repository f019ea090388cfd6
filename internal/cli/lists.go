package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/datalist"
	"github.com/matzehuels/flowcanvas/pkg/panels"
)

// listsCommand creates the lists command group for working with the
// backend's data lists.
func (c *CLI) listsCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Inspect and manage backend data lists",
		Long: `Inspect and manage backend data lists.

Data lists are where storage components deposit workflow output. These
subcommands talk to the backend configured under [backend] in the config
file (the serve command by default).`,
	}

	cmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable caching")

	client := func(cmd *cobra.Command) *panels.DataLists {
		return panels.NewDataLists(c.newBackendClient(cmd.Context(), noCache))
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show all data lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := client(cmd).All(cmd.Context())
			if err != nil {
				return err
			}
			printLists(lists)
			return nil
		},
	}

	var description string
	create := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new data list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := client(cmd).Create(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			printSuccess("created list %s", StyleHighlight.Render(l.Name))
			printDetail("id %s", l.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "list description")

	add := &cobra.Command{
		Use:   "add [list-id] [json-payload]",
		Short: "Append an item to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data map[string]any
			if err := json.Unmarshal([]byte(args[1]), &data); err != nil {
				return fmt.Errorf("payload must be a JSON object: %w", err)
			}
			item, err := client(cmd).AddItem(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			printSuccess("added item %s", item.ID)
			return nil
		},
	}

	search := &cobra.Command{
		Use:   "search [query]",
		Short: "Search item payloads across all lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := newSpinnerWithContext(cmd.Context(), "Searching...")
			spinner.Start()
			matches, err := client(cmd).Search(cmd.Context(), args[0])
			if err != nil {
				spinner.StopWithError("Search failed")
				return err
			}
			spinner.Stop()
			printMatches(matches)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete [list-id]",
		Short: "Delete a data list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client(cmd).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("list deleted")
			return nil
		},
	}

	cmd.AddCommand(show, create, add, search, remove)
	return cmd
}

func printLists(lists []*datalist.List) {
	if len(lists) == 0 {
		printInfo("no data lists yet")
		printNextStep("create one", "flowcanvas lists create leads")
		return
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, len(lists))
	for i, l := range lists {
		rows[i] = []string{
			l.ID,
			l.Name,
			fmt.Sprintf("%d", len(l.Items)),
			l.UpdatedAt.Format("Jan 2 15:04"),
		}
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Items", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(tbl.Render())
}

func printMatches(matches []datalist.Match) {
	if len(matches) == 0 {
		printInfo("no matches")
		return
	}
	for _, match := range matches {
		payload, err := json.Marshal(match.Item.Data)
		if err != nil {
			payload = []byte("{}")
		}
		fmt.Println(StyleHighlight.Render(match.ListName) + " " + StyleDim.Render(match.Item.ID))
		printDetail("%s", payload)
	}
	printDetail("%d matches", len(matches))
}
