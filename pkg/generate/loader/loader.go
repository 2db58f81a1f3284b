// Package loader generates a bit-serial memory loader: one constant
// combinator per data word, each gated by a decider that releases the word
// when the clock reaches its index.
//
// Words are stacked in columns of MaxHeight-1 cells, 4 tiles apart. The
// deciders are chained with a red wire on their input side and a green wire
// on their output side, and a clock is placed where the template cell was.
package loader

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/blueprint/raw"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/fixtures"
)

// Name identifies the generator in cache keys and logs.
const Name = "loader"

// DefaultMaxHeight is the column height used when none is configured.
const DefaultMaxHeight = 100

const (
	wordSize      = 4
	columnSpacing = 4
	// Medium poles reach 7 tiles.
	poleReach = 7
)

// Options configures the loader layout.
type Options struct {
	// MaxHeight bounds the rows of a column, template row included.
	MaxHeight int `toml:"max_height" json:"max_height"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{MaxHeight: DefaultMaxHeight}
}

// Validate checks that a column can hold at least one word.
func (o Options) Validate() error {
	if o.MaxHeight < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "max height must be at least 2, got %d", o.MaxHeight)
	}
	return nil
}

// Words splits data into big-endian 32-bit words. The last word is padded
// with zero bytes.
func Words(data []byte) []int32 {
	if pad := (wordSize - len(data)%wordSize) % wordSize; pad > 0 {
		data = append(bytes.Clone(data), make([]byte, pad)...)
	}
	words := make([]int32, len(data)/wordSize)
	for i := range words {
		words[i] = int32(binary.BigEndian.Uint32(data[i*wordSize:]))
	}
	return words
}

// ReadWords reads r to the end and splits it with [Words].
func ReadWords(r io.Reader) ([]int32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Words(data), nil
}

// Generate builds a loader holding words.
func Generate(words []int32, opts Options) (*blueprint.Blueprint, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot generate loader for empty data")
	}

	bp, err := blueprint.Decode(fixtures.LoaderCell)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode loader cell")
	}
	if bp.Len() != 2 {
		return nil, errors.New(errors.ErrCodeInternal, "loader cell has %d entities, want 2", bp.Len())
	}
	base, ok := constantPosition(bp)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "loader cell has no constant combinator")
	}
	cell := []int{0, 1}

	var columns, poleColumns [][]int
	var column, poleColumn []int
	x, y := 0, 1
	for i, word := range words {
		ids, err := bp.CloneEntities(cell)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			e := bp.Entity(id)
			e.Translate(float32(x*columnSpacing), float32(y))
			switch e := e.(type) {
			case *blueprint.ConstantCombinator:
				if len(e.Filters) != 1 {
					return nil, errors.New(errors.ErrCodeInternal, "loader constant has %d filters, want 1", len(e.Filters))
				}
				e.Filters[0].Count = word
			case *blueprint.DeciderCombinator:
				index := int32(i + 1)
				e.Condition.Constant = &index
				column = append(column, id)
			}
		}

		if (y-1)%poleReach == 0 || y+1 >= opts.MaxHeight {
			pole := blueprint.NewElectricPole(blueprint.PoleMedium, raw.Position{
				X: base.X + 3 + float32(x*columnSpacing),
				Y: base.Y + float32(y),
			})
			poleColumn = append(poleColumn, bp.Append(pole))
		}

		y++
		if y >= opts.MaxHeight {
			y = 1
			x++
			columns = append(columns, column)
			poleColumns = append(poleColumns, poleColumn)
			column, poleColumn = nil, nil
		}
	}
	if len(column) > 0 {
		columns = append(columns, column)
		poleColumns = append(poleColumns, poleColumn)
	}

	if err := connectDeciders(bp, columns); err != nil {
		return nil, err
	}
	if err := connectPoles(bp, poleColumns); err != nil {
		return nil, err
	}
	if err := addClock(bp, base); err != nil {
		return nil, err
	}

	err = bp.ConnectWireWithSide(
		blueprint.Connector{ID: 1, Side: blueprint.SideTwo},
		blueprint.Connector{ID: columns[0][0], Side: blueprint.SideOne},
		blueprint.WireRed,
	)
	if err != nil {
		return nil, err
	}
	return bp, nil
}

func constantPosition(bp *blueprint.Blueprint) (raw.Position, bool) {
	for _, e := range bp.Entities() {
		if _, ok := e.(*blueprint.ConstantCombinator); ok {
			return e.Position(), true
		}
	}
	return raw.Position{}, false
}

// chain calls link for every consecutive pair of ids.
func chain(ids []int, link func(a, b int) error) error {
	for i := 1; i < len(ids); i++ {
		if err := link(ids[i-1], ids[i]); err != nil {
			return err
		}
	}
	return nil
}

func connectDeciders(bp *blueprint.Blueprint, columns [][]int) error {
	link := func(a, b int) error {
		if err := bp.ConnectWire(a, b, blueprint.WireRed); err != nil {
			return err
		}
		return bp.ConnectWireWithSide(
			blueprint.Connector{ID: a, Side: blueprint.SideTwo},
			blueprint.Connector{ID: b, Side: blueprint.SideTwo},
			blueprint.WireGreen,
		)
	}

	tops := make([]int, len(columns))
	for i, col := range columns {
		tops[i] = col[0]
		if err := chain(col, link); err != nil {
			return err
		}
	}
	return chain(tops, link)
}

func connectPoles(bp *blueprint.Blueprint, columns [][]int) error {
	tops := make([]int, len(columns))
	for i, col := range columns {
		tops[i] = col[0]
		if err := chain(col, bp.ConnectElectricPoles); err != nil {
			return err
		}
	}
	return chain(tops, bp.ConnectElectricPoles)
}

// addClock replaces the template cell (ids 0 and 1) with the clock. The
// clock's constant combinator takes id 0 at the template's position and its
// decider takes id 1 just right of it. The clock's own wiring is kept.
func addClock(bp *blueprint.Blueprint, base raw.Position) error {
	clock, err := blueprint.Decode(fixtures.Clock)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "decode clock")
	}

	var constant, decider blueprint.Entity
	for _, e := range clock.Entities() {
		switch e.(type) {
		case *blueprint.ConstantCombinator:
			constant = e
		case *blueprint.DeciderCombinator:
			decider = e
		}
	}
	if clock.Len() != 2 || constant == nil || decider == nil {
		return errors.New(errors.ErrCodeInternal, "clock must hold one constant and one decider combinator")
	}

	remap := map[int]int{constant.ID(): 0, decider.ID(): 1}
	constant.SetPosition(base)
	decider.SetPosition(raw.Position{X: base.X + 1.5, Y: base.Y})
	if err := bp.Replace(0, constant, remap); err != nil {
		return err
	}
	return bp.Replace(1, decider, remap)
}
