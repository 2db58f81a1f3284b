package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
)

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	var model bool

	cmd := &cobra.Command{
		Use:   "decode <blueprint|-|@file>",
		Short: "Print the JSON document inside a blueprint string",
		Long: `Print the JSON document inside a blueprint string.

By default the document is printed as stored. With --model the blueprint is
first read into the entity model and written back, which shows exactly what
reencode would produce.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readBlueprint(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			var doc string
			if model {
				bp, err := blueprint.Decode(s)
				if err != nil {
					return err
				}
				doc, err = blueprint.ModelToPrettyJSON(bp)
				if err != nil {
					return err
				}
			} else if doc, err = blueprint.DecodeToPrettyJSON(s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}

	cmd.Flags().BoolVar(&model, "model", false, "round-trip through the entity model before printing")
	return cmd
}

// reencodeCommand creates the reencode command.
func (c *CLI) reencodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reencode <blueprint|-|@file>",
		Short: "Decode a blueprint into the entity model and encode it again",
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
			out, err := blueprint.Encode(bp)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("reencoded", "entities", bp.Len(), "in", len(s), "out", len(out))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
