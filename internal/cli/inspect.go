package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/render"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var browse bool

	cmd := &cobra.Command{
		Use:   "inspect <blueprint|-|@file>",
		Short: "List the entities of a blueprint and their connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readBlueprint(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			bp, err := blueprint.Decode(s)
			if err != nil {
				return err
			}

			if browse {
				_, err := tea.NewProgram(newEntityBrowser(bp), tea.WithContext(cmd.Context())).Run()
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), entityTable(entityRows(bp)).Render())
			printStats(cmd.OutOrStdout(), bp.Len(), countWires(bp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&browse, "browse", false, "browse entities interactively")
	return cmd
}

var entityHeaders = []string{"ID", "Entity", "Position", "Settings", "Connections"}

// entityRows returns one table row per entity.
func entityRows(bp *blueprint.Blueprint) [][]string {
	rows := make([][]string, 0, bp.Len())
	for _, e := range bp.Entities() {
		rows = append(rows, []string{
			strconv.Itoa(e.ID()),
			e.Name(),
			fmtPosition(e),
			strings.Join(render.Settings(e), ", "),
			fmtConnections(e),
		})
	}
	return rows
}

func entityTable(rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().PaddingRight(1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(entityHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		})
}

func fmtPosition(e blueprint.Entity) string {
	p := e.Position()
	return fmt.Sprintf("%g, %g", p.X, p.Y)
}

// fmtConnections lists wires as "side→id:side colour" and pole links as
// "pole→id".
func fmtConnections(e blueprint.Entity) string {
	var parts []string
	for _, c := range e.Connections() {
		parts = append(parts, fmt.Sprintf("%s→%d:%s %s", c.FromSide, c.To.ID, c.To.Side, c.Wire))
	}
	if p, ok := e.(*blueprint.ElectricPole); ok {
		for _, n := range p.Neighbours() {
			parts = append(parts, fmt.Sprintf("pole→%d", n))
		}
	}
	return strings.Join(parts, ", ")
}

// countWires counts logical wires; each is stored once on both ends.
func countWires(bp *blueprint.Blueprint) int {
	n := 0
	for _, e := range bp.Entities() {
		n += len(e.Connections())
	}
	return n / 2
}
