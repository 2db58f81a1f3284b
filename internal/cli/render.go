package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; stdout when empty
	format   string // "dot" or "svg"
	detailed bool   // add positions and circuit settings to node labels
	poles    bool   // draw pole neighbour links
}

// renderCommand creates the render command for drawing circuit networks.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <blueprint|-|@file>",
		Short: "Draw the circuit network of a blueprint",
		Long: `Draw the circuit network of a blueprint as a Graphviz graph.

Every entity becomes a node and every wire an edge in its colour. The format
defaults to the extension of --output, or svg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			s, err := readBlueprint(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			bp, err := blueprint.Decode(s)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			dot := render.ToDOT(bp, render.Options{Detailed: opts.detailed, Poles: opts.poles})
			data := []byte(dot)
			if format == formatSVG {
				if data, err = render.RenderSVG(cmd.Context(), dot); err != nil {
					return err
				}
			}
			if err := writeOutput(opts.output, cmd.OutOrStdout(), data); err != nil {
				return err
			}
			if opts.output != "" && opts.output != "-" {
				prog.done("Rendered " + format)
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show positions and circuit settings")
	cmd.Flags().BoolVar(&opts.poles, "poles", false, "show electric pole links")

	return cmd
}

// resolveFormat picks the output format from the flag, then the output
// extension, then svg.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		switch strings.TrimPrefix(filepath.Ext(output), ".") {
		case formatDOT, "gv":
			return formatDOT, nil
		default:
			return formatSVG, nil
		}
	}
	if format != formatDOT && format != formatSVG {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'svg' or 'dot')", format)
	}
	return format, nil
}
