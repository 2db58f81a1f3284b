// Package render draws the circuit network of a blueprint as a Graphviz
// diagram.
//
// # Usage
//
// Convert a blueprint to DOT format, then render to SVG:
//
//	dot := render.ToDOT(bp, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Entities are nodes, coloured by kind. Wires are undirected edges in their
// wire colour; an edge end on a combinator is labelled "in" or "out" for
// the connector it attaches to. With Options.Poles set, power links between
// electric poles are drawn as dashed grey edges.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. The DOT output can also be processed with external Graphviz
// tools.
package render
