// Package memory generates addressable memory arrays built from copies of
// a single memory cell.
//
// The cell (see [fixtures.MemoryCell]) holds a read decider listening on
// signal-R and a write decider listening on signal-W. The first cell keeps
// address 1; every copy is given the next address. Cells are laid out in
// columns 5 tiles apart and rows 2 tiles apart, and the poles of all cells
// are joined into one power and circuit network.
package memory

import (
	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/fixtures"
)

// Name identifies the generator in cache keys and logs.
const Name = "memory"

const (
	columnSpacing = 5
	rowSpacing    = 2
	firstAddress  = 2
)

// Signals that carry the read and write address.
const (
	ReadSignal  = "signal-R"
	WriteSignal = "signal-W"
)

// Options configures the size of the array.
type Options struct {
	// Width is the number of columns.
	Width int `toml:"width" json:"width"`
	// Height is the number of cells per column.
	Height int `toml:"height" json:"height"`
}

// Validate checks that the array has at least one cell.
func (o Options) Validate() error {
	if o.Width < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be at least 1, got %d", o.Width)
	}
	if o.Height < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "height must be at least 1, got %d", o.Height)
	}
	return nil
}

// Cells returns the number of memory cells the options describe.
func (o Options) Cells() int { return o.Width * o.Height }

var errNoPole = errors.New(errors.ErrCodeInternal, "memory cell has no electric pole")

// Generate builds a Width × Height memory array.
func Generate(opts Options) (*blueprint.Blueprint, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	bp, err := blueprint.Decode(fixtures.MemoryCell)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode memory cell")
	}
	return generate(bp, opts)
}

// generate grows the array from the cell held in bp.
func generate(bp *blueprint.Blueprint, opts Options) (*blueprint.Blueprint, error) {
	var err error
	cell := make([]int, bp.Len())
	for i := range cell {
		cell[i] = i
	}
	firstPole, ok := findPole(bp, cell)
	if !ok {
		return nil, errNoPole
	}

	g := &generator{bp: bp, next: firstAddress}
	lastTopPole := firstPole

	for x := range opts.Width {
		top := cell
		if x > 0 {
			if top, err = g.copyCell(cell); err != nil {
				return nil, err
			}
			pole, ok := findPole(bp, top)
			if !ok {
				return nil, errNoPole
			}
			g.link(lastTopPole, pole)
			lastTopPole = pole
			translate(bp, top, float32(x*columnSpacing), 0)
		}

		lastPole := lastTopPole
		for y := 1; y < opts.Height; y++ {
			ids, err := g.copyCell(top)
			if err != nil {
				return nil, err
			}
			pole, ok := findPole(bp, ids)
			if !ok {
				return nil, errNoPole
			}
			g.link(lastPole, pole)
			lastPole = pole
			translate(bp, ids, 0, float32(y*rowSpacing))
		}
	}

	for _, l := range g.links {
		if err := connectAll(bp, l[0], l[1]); err != nil {
			return nil, err
		}
	}
	return bp, nil
}

type generator struct {
	bp    *blueprint.Blueprint
	next  int32
	links [][2]int
}

// copyCell clones ids and gives the copy the next address.
func (g *generator) copyCell(ids []int) ([]int, error) {
	out, err := g.bp.CloneEntities(ids)
	if err != nil {
		return nil, err
	}
	for _, id := range out {
		d, ok := g.bp.Entity(id).(*blueprint.DeciderCombinator)
		if !ok || d.Condition.Constant == nil || d.Condition.FirstSignal == nil {
			continue
		}
		switch d.Condition.FirstSignal.Name {
		case ReadSignal, WriteSignal:
			addr := g.next
			d.Condition.Constant = &addr
		}
	}
	g.next++
	return out, nil
}

func (g *generator) link(from, to int) {
	g.links = append(g.links, [2]int{from, to})
}

func findPole(bp *blueprint.Blueprint, ids []int) (int, bool) {
	for _, id := range ids {
		if _, ok := bp.Entity(id).(*blueprint.ElectricPole); ok {
			return id, true
		}
	}
	return 0, false
}

func translate(bp *blueprint.Blueprint, ids []int, dx, dy float32) {
	for _, id := range ids {
		bp.Entity(id).Translate(dx, dy)
	}
}

// connectAll joins two poles for power and with both wire colours.
func connectAll(bp *blueprint.Blueprint, id1, id2 int) error {
	if err := bp.ConnectElectricPoles(id1, id2); err != nil {
		return err
	}
	if err := bp.ConnectWire(id1, id2, blueprint.WireGreen); err != nil {
		return err
	}
	return bp.ConnectWire(id1, id2, blueprint.WireRed)
}
