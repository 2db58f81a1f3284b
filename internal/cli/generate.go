package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/generate/loader"
	"github.com/TheJP/factorio-blueprint/pkg/generate/memory"
	"github.com/TheJP/factorio-blueprint/pkg/pipeline"
)

// generateOpts holds the flags shared by the generate subcommands.
type generateOpts struct {
	output  string
	params  string
	noCache bool
	refresh bool
}

func (o *generateOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the blueprint string to a file")
	cmd.Flags().StringVar(&o.params, "params", "", "TOML file with generator parameters")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "regenerate even if cached")
}

// generateCommand creates the generate command group.
func (c *CLI) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate circuit blueprints",
	}

	cmd.AddCommand(c.generateMemoryCommand())
	cmd.AddCommand(c.generateLoaderCommand())

	return cmd
}

// generateMemoryCommand creates the "generate memory" subcommand.
func (c *CLI) generateMemoryCommand() *cobra.Command {
	var opts generateOpts
	var width, height int

	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Generate an addressable memory array",
		Long: `Generate a width × height array of memory cells.

Cells are addressed from 1, column by column. Parameters can also be read
from a TOML file with the keys width and height; flags given on the command
line win.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mem := memory.Options{Width: width, Height: height}
			if opts.params != "" {
				err := readParams(opts.params, &mem, cmd.Flags(), func(name string) {
					switch name {
					case "width":
						mem.Width = width
					case "height":
						mem.Height = height
					}
				})
				if err != nil {
					return err
				}
			}
			return c.runGenerate(cmd, opts, pipeline.Request{Generator: memory.Name, Memory: mem})
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&width, "width", 1, "number of columns")
	cmd.Flags().IntVar(&height, "height", 1, "number of cells per column")

	return cmd
}

// generateLoaderCommand creates the "generate loader" subcommand.
func (c *CLI) generateLoaderCommand() *cobra.Command {
	var opts generateOpts
	var input string
	var maxHeight int

	cmd := &cobra.Command{
		Use:   "loader",
		Short: "Generate a memory loader holding the contents of a file",
		Long: `Generate a memory loader holding the contents of a file.

The file is split into big-endian 32-bit words, zero padded at the end. Each
word is stored in a constant combinator that a clock releases in order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lo := loader.Options{MaxHeight: maxHeight}
			if opts.params != "" {
				err := readParams(opts.params, &lo, cmd.Flags(), func(name string) {
					if name == "max-height" {
						lo.MaxHeight = maxHeight
					}
				})
				if err != nil {
					return err
				}
			}

			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd, opts, pipeline.Request{Generator: loader.Name, Loader: lo, Input: data})
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "file to load, - for stdin (required)")
	cmd.Flags().IntVar(&maxHeight, "max-height", loader.DefaultMaxHeight, "rows per column, clock row included")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read input")
	}
	return data, nil
}

// runGenerate runs req through a pipeline runner and writes the blueprint.
func (c *CLI) runGenerate(cmd *cobra.Command, opts generateOpts, req pipeline.Request) error {
	ctx := cmd.Context()
	req.Refresh = opts.refresh

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := generateWithSpinner(ctx, runner, req)
	if err != nil {
		return err
	}

	if opts.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Blueprint)
	} else if err := writeOutput(opts.output, cmd.OutOrStdout(), []byte(res.Blueprint+"\n")); err != nil {
		return err
	}
	printGenerated(res.Entities, res.Cached)
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

// generateWithSpinner runs req while a spinner is shown on statusOut. An
// interrupted run reports the context error instead of its result.
func generateWithSpinner(ctx context.Context, runner *pipeline.Runner, req pipeline.Request) (*pipeline.Result, error) {
	sp := startSpinner(ctx, statusOut, fmt.Sprintf("Generating %s...", req.Generator))
	res, err := runner.Generate(ctx, req)
	sp.stop()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return res, err
}
