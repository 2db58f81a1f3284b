package blueprint

import (
	"fmt"

	"github.com/TheJP/factorio-blueprint/pkg/errors"
)

// InvalidIDError reports an id that is out of range, refers to an entity of
// unknown kind, or cannot take part in the requested operation.
type InvalidIDError struct {
	ID int
}

func (e *InvalidIDError) Error() string     { return fmt.Sprintf("id '%d' is invalid", e.ID) }
func (e *InvalidIDError) Code() errors.Code { return errors.ErrCodeInvalidID }

// ErrDuplicateIDs is returned when an operation receives the same id (or
// connector) twice.
var ErrDuplicateIDs = errors.New(errors.ErrCodeDuplicateIDs,
	"received duplicate ids which is not allowed for this function")

// known returns the entity for id unless it is out of range or of unknown kind.
func (b *Blueprint) known(id int) (Entity, bool) {
	e := b.Entity(id)
	if e == nil {
		return nil, false
	}
	if _, ok := e.(*Unknown); ok {
		return nil, false
	}
	return e, true
}

// CloneEntities appends a copy of every entity in ids and returns the new
// ids. result[i] is the id of the clone of ids[i]; new ids are allocated
// contiguously from Len() in input order.
//
// References between cloned entities (wires and pole neighbours) are
// rewritten to point at the clones. References to entities outside ids are
// kept, so a clone may share a wire endpoint with the original.
//
// Nothing is appended if an id is invalid or listed twice.
func (b *Blueprint) CloneEntities(ids []int) ([]int, error) {
	for _, id := range ids {
		if _, ok := b.known(id); !ok {
			return nil, &InvalidIDError{ID: id}
		}
	}

	next := len(b.entities)
	remap := make(map[int]int, len(ids))
	out := make([]int, len(ids))
	for i, id := range ids {
		if _, dup := remap[id]; dup {
			return nil, ErrDuplicateIDs
		}
		remap[id] = next + i
		out[i] = next + i
	}

	for _, id := range ids {
		c := b.entities[id].clone()
		c.setID(remap[id])
		c.remap(remap)
		b.entities = append(b.entities, c)
	}
	return out, nil
}

// ConnectElectricPoles makes id1 and id2 neighbours of each other. Existing
// neighbour links are not duplicated.
func (b *Blueprint) ConnectElectricPoles(id1, id2 int) error {
	if id1 == id2 {
		return ErrDuplicateIDs
	}
	p1, err := b.pole(id1)
	if err != nil {
		return err
	}
	p2, err := b.pole(id2)
	if err != nil {
		return err
	}
	p1.addNeighbour(id2)
	p2.addNeighbour(id1)
	return nil
}

func (b *Blueprint) pole(id int) (*ElectricPole, error) {
	e, ok := b.known(id)
	if !ok {
		return nil, &InvalidIDError{ID: id}
	}
	p, ok := e.(*ElectricPole)
	if !ok {
		return nil, &InvalidIDError{ID: id}
	}
	return p, nil
}

// ConnectWire connects side one of id1 and side one of id2 with a wire.
func (b *Blueprint) ConnectWire(id1, id2 int, wire Wire) error {
	return b.ConnectWireWithSide(Connector{ID: id1, Side: SideOne}, Connector{ID: id2, Side: SideOne}, wire)
}

// ConnectWireWithSide connects two connectors with a wire, storing one
// half-edge on each entity. Either both halves are added or, on error,
// neither is.
func (b *Blueprint) ConnectWireWithSide(c1, c2 Connector, wire Wire) error {
	if !wire.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "unknown wire colour %d", wire)
	}
	if c1 == c2 {
		return ErrDuplicateIDs
	}
	e1, err := b.connectable(c1)
	if err != nil {
		return err
	}
	e2, err := b.connectable(c2)
	if err != nil {
		return err
	}
	e1.addConnection(Connection{FromSide: c1.Side, To: c2, Wire: wire})
	e2.addConnection(Connection{FromSide: c2.Side, To: c1, Wire: wire})
	return nil
}

func (b *Blueprint) connectable(c Connector) (Entity, error) {
	e, ok := b.known(c.ID)
	if !ok || !e.CanConnect(c.Side) {
		return nil, &InvalidIDError{ID: c.ID}
	}
	return e, nil
}
