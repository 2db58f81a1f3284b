package raw

import (
	"encoding/json"
	"fmt"
)

// Direction is the 8-way compass orientation of an entity.
type Direction uint8

// Directions, clockwise from north.
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

// String returns the lower-case compass name.
func (d Direction) String() string {
	if d > NorthWest {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// UnmarshalJSON accepts only 0 through 7.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if Direction(n) > NorthWest {
		return fmt.Errorf("invalid direction %d", n)
	}
	*d = Direction(n)
	return nil
}

// CircuitID selects side 1 or side 2 of the connection target.
type CircuitID uint8

// Circuit ids.
const (
	CircuitOne CircuitID = 1
	CircuitTwo CircuitID = 2
)

// UnmarshalJSON accepts only 1 and 2.
func (c *CircuitID) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n != 1 && n != 2 {
		return fmt.Errorf("invalid circuit_id %d", n)
	}
	*c = CircuitID(n)
	return nil
}

// Item tags the kind of the exported record. Only blueprints are supported.
type Item string

// ItemBlueprint is the only accepted item tag.
const ItemBlueprint Item = "blueprint"

// UnmarshalJSON rejects any tag other than "blueprint".
func (i *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if Item(s) != ItemBlueprint {
		return fmt.Errorf("unsupported item %q", s)
	}
	*i = Item(s)
	return nil
}

// SignalType is the category of a signal.
type SignalType string

// Signal categories.
const (
	SignalVirtual SignalType = "virtual"
	SignalItem    SignalType = "item"
	SignalFluid   SignalType = "fluid"
)

// Comparator is the comparison a decider combinator performs.
type Comparator string

// Comparators as spelled on the wire.
const (
	ComparatorGt  Comparator = ">"
	ComparatorLt  Comparator = "<"
	ComparatorEq  Comparator = "="
	ComparatorGe  Comparator = "≥"
	ComparatorLe  Comparator = "≤"
	ComparatorNeq Comparator = "≠"
)

// Valid reports whether c is one of the known comparators.
func (c Comparator) Valid() bool {
	switch c {
	case ComparatorGt, ComparatorLt, ComparatorEq, ComparatorGe, ComparatorLe, ComparatorNeq:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown comparators.
func (c *Comparator) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Comparator(s).Valid() {
		return fmt.Errorf("unknown comparator %q", s)
	}
	*c = Comparator(s)
	return nil
}

// Operation is the operation an arithmetic combinator performs.
type Operation string

// Operations as spelled on the wire.
const (
	OperationAdd Operation = "+"
	OperationSub Operation = "-"
	OperationMul Operation = "*"
	OperationDiv Operation = "/"
	OperationMod Operation = "%"
	OperationPow Operation = "^"
	OperationShl Operation = "<<"
	OperationShr Operation = ">>"
	OperationAnd Operation = "AND"
	OperationOr  Operation = "OR"
	OperationXor Operation = "XOR"
)

// Valid reports whether o is one of the known operations.
func (o Operation) Valid() bool {
	switch o {
	case OperationAdd, OperationSub, OperationMul, OperationDiv, OperationMod, OperationPow,
		OperationShl, OperationShr, OperationAnd, OperationOr, OperationXor:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown operations.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Operation(s).Valid() {
		return fmt.Errorf("unknown operation %q", s)
	}
	*o = Operation(s)
	return nil
}
