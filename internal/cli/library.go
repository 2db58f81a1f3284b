package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/TheJP/factorio-blueprint/pkg/library"
)

// libraryCommand creates the library command group.
func (c *CLI) libraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Keep named blueprint strings in a local library",
	}

	cmd.AddCommand(c.librarySaveCommand())
	cmd.AddCommand(c.libraryListCommand())
	cmd.AddCommand(c.libraryShowCommand())
	cmd.AddCommand(c.libraryRemoveCommand())

	return cmd
}

// withLibrary opens the library for the duration of fn.
func (c *CLI) withLibrary(cmd *cobra.Command, fn func(lib *library.Library) error) error {
	lib, err := c.openLibrary(cmd.Context())
	if err != nil {
		return err
	}
	defer lib.Close()
	return fn(lib)
}

func (c *CLI) librarySaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <blueprint|-|@file>",
		Short: "Validate a blueprint and store it under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readBlueprint(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.withLibrary(cmd, func(lib *library.Library) error {
				e, err := lib.Save(cmd.Context(), args[0], s)
				if err != nil {
					return err
				}
				printSuccess("Saved %s (%d entities)", e.Name, e.Entities)
				printDetail("id: %s", e.ID)
				return nil
			})
		},
	}
}

func (c *CLI) libraryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored blueprints",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withLibrary(cmd, func(lib *library.Library) error {
				entries, err := lib.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					printInfo("Library is empty")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), libraryTable(entries).Render())
				return nil
			})
		},
	}
}

func (c *CLI) libraryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Print a stored blueprint string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withLibrary(cmd, func(lib *library.Library) error {
				e, err := lib.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), e.Blueprint)
				return nil
			})
		},
	}
}

func (c *CLI) libraryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a stored blueprint",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withLibrary(cmd, func(lib *library.Library) error {
				if err := lib.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Removed %s", args[0])
				return nil
			})
		},
	}
}

func libraryTable(entries []library.Entry) *table.Table {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, strconv.Itoa(e.Entities), e.CreatedAt.Local().Format("2006-01-02 15:04"), e.ID}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Entities", "Created", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 3:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
}
