package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/blueprint/raw"
)

// Options configures circuit network rendering.
type Options struct {
	// Detailed adds the position and the combinator settings to node labels.
	// When false, only the id and entity name are shown.
	Detailed bool
	// Poles draws the power links between electric poles.
	Poles bool
}

var wireColors = map[blueprint.Wire]string{
	blueprint.WireRed:   "red3",
	blueprint.WireGreen: "green4",
}

// ToDOT converts the circuit network of bp to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Every entity becomes a node. Every wire is drawn once, although the
// model stores it on both endpoints. Wire ends on a combinator are labelled
// with the connector side.
func ToDOT(bp *blueprint.Blueprint, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	entities := bp.Entities()
	for _, e := range entities {
		attrs := fmtAttrs(e, fmtLabel(e, opts.Detailed))
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(e.ID()), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range entities {
		for _, c := range e.Connections() {
			from := blueprint.Connector{ID: e.ID(), Side: c.FromSide}
			if !before(from, c.To) {
				continue
			}
			attrs := []string{fmt.Sprintf("color=%s", wireColors[c.Wire])}
			if e.SideCount() == blueprint.SideCountTwo {
				attrs = append(attrs, fmt.Sprintf("taillabel=%q", sideLabel(c.FromSide)))
			}
			if to := bp.Entity(c.To.ID); to != nil && to.SideCount() == blueprint.SideCountTwo {
				attrs = append(attrs, fmt.Sprintf("headlabel=%q", sideLabel(c.To.Side)))
			}
			fmt.Fprintf(&buf, "  %s -- %s [%s];\n", nodeID(e.ID()), nodeID(c.To.ID), strings.Join(attrs, ", "))
		}
	}

	if opts.Poles {
		for _, e := range entities {
			p, ok := e.(*blueprint.ElectricPole)
			if !ok {
				continue
			}
			for _, n := range p.Neighbours() {
				if p.ID() < n {
					fmt.Fprintf(&buf, "  %s -- %s [style=dashed, color=grey50, penwidth=1];\n", nodeID(p.ID()), nodeID(n))
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// before orders connectors so that each wire is emitted from exactly one of
// its two halves.
func before(a, b blueprint.Connector) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Side < b.Side
}

func nodeID(id int) string { return "e" + strconv.Itoa(id) }

func sideLabel(s blueprint.Side) string {
	if s == blueprint.SideTwo {
		return "out"
	}
	return "in"
}

func fmtLabel(e blueprint.Entity, detailed bool) string {
	label := fmt.Sprintf("%d: %s", e.ID(), e.Name())
	if !detailed {
		return label
	}

	parts := []string{label, e.Position().String()}
	parts = append(parts, Settings(e)...)
	return strings.Join(parts, "\n")
}

// Settings describes the circuit settings of e, one line per condition or
// filter. Poles and unknown entities have none.
func Settings(e blueprint.Entity) []string {
	switch e := e.(type) {
	case *blueprint.DeciderCombinator:
		c := e.Condition
		return []string{fmt.Sprintf("%s %s %s", signalName(c.FirstSignal), c.Comparator, operand(c.SecondSignal, c.Constant))}
	case *blueprint.ArithmeticCombinator:
		c := e.Condition
		return []string{fmt.Sprintf("%s %s %s",
			operand(c.FirstSignal, c.FirstConstant), c.Operation, operand(c.SecondSignal, c.SecondConstant))}
	case *blueprint.ConstantCombinator:
		out := make([]string, len(e.Filters))
		for i, f := range e.Filters {
			out[i] = fmt.Sprintf("%s = %d", f.Signal.Name, f.Count)
		}
		return out
	}
	return nil
}

func signalName(s *raw.Signal) string {
	if s == nil {
		return "?"
	}
	return s.Name
}

func operand(s *raw.Signal, constant *int32) string {
	if s != nil {
		return s.Name
	}
	if constant != nil {
		return strconv.Itoa(int(*constant))
	}
	return "?"
}

func fmtAttrs(e blueprint.Entity, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch e.(type) {
	case *blueprint.DeciderCombinator:
		attrs = append(attrs, "fillcolor=lightyellow")
	case *blueprint.ArithmeticCombinator:
		attrs = append(attrs, "fillcolor=lightblue")
	case *blueprint.ConstantCombinator:
		attrs = append(attrs, "fillcolor=mistyrose")
	case *blueprint.ElectricPole:
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=lightgrey")
	case *blueprint.Unknown:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=white", "fontcolor=grey40")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg tag with one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
