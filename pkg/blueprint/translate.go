package blueprint

import (
	"github.com/TheJP/factorio-blueprint/pkg/blueprint/raw"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
)

// FromRaw builds the graph model of a raw document. Entity numbers must run
// 1, 2, 3, ... in array order; any other numbering is rejected with
// NON_CONTIGUOUS_IDS before anything is built.
func FromRaw(c *raw.Container) (*Blueprint, error) {
	src := &c.Blueprint
	for i, e := range src.Entities {
		if int(e.EntityNumber) != i+1 {
			return nil, errors.New(errors.ErrCodeNonContiguousIDs,
				"entity at position %d has entity_number %d, want %d", i, e.EntityNumber, i+1)
		}
	}

	bp := &Blueprint{
		Version:        src.Version,
		Icons:          raw.CloneIcons(src.Icons),
		Extra:          src.Extra.Clone(),
		entities:       make([]Entity, 0, len(src.Entities)),
		containerExtra: c.Extra.Clone(),
	}
	for i := range src.Entities {
		e, err := entityFromRaw(i, &src.Entities[i])
		if err != nil {
			return nil, err
		}
		bp.entities = append(bp.entities, e)
	}
	return bp, nil
}

func entityFromRaw(id int, e *raw.Entity) (Entity, error) {
	base := func() entityBase {
		return entityBase{
			id:          id,
			position:    e.Position.Clone(),
			connections: connectionsFromRaw(e.Connections),
			extra:       e.Extra.Clone(),
		}
	}

	switch e.Name {
	case NameDeciderCombinator:
		if e.Direction == nil {
			return nil, missingField(e, "direction")
		}
		if e.ControlBehavior == nil || e.ControlBehavior.DeciderConditions == nil {
			return nil, missingField(e, "control_behavior.decider_conditions")
		}
		return &DeciderCombinator{
			entityBase:    base(),
			Direction:     *e.Direction,
			Condition:     e.ControlBehavior.DeciderConditions.Clone(),
			behaviorExtra: e.ControlBehavior.Extra.Clone(),
		}, nil

	case NameArithmeticCombinator:
		if e.Direction == nil {
			return nil, missingField(e, "direction")
		}
		if e.ControlBehavior == nil || e.ControlBehavior.ArithmeticConditions == nil {
			return nil, missingField(e, "control_behavior.arithmetic_conditions")
		}
		return &ArithmeticCombinator{
			entityBase:    base(),
			Direction:     *e.Direction,
			Condition:     e.ControlBehavior.ArithmeticConditions.Clone(),
			behaviorExtra: e.ControlBehavior.Extra.Clone(),
		}, nil

	case NameConstantCombinator:
		k := &ConstantCombinator{entityBase: base()}
		if e.Direction != nil {
			dir := *e.Direction
			k.Direction = &dir
		}
		if cb := e.ControlBehavior; cb != nil {
			k.Filters = raw.CloneFilters(cb.Filters)
			k.behaviorExtra = cb.Extra.Clone()
		}
		return k, nil
	}

	if t, ok := ParsePoleType(e.Name); ok {
		p := &ElectricPole{entityBase: base(), PoleType: t}
		if len(e.Neighbours) > 0 {
			p.neighbours = make([]int, len(e.Neighbours))
			for i, n := range e.Neighbours {
				p.neighbours[i] = int(n) - 1
			}
		}
		return p, nil
	}

	return &Unknown{id: id, entity: e.Clone()}, nil
}

func missingField(e *raw.Entity, field string) error {
	return errors.New(errors.ErrCodeMissingField, "%s %d has no %s", e.Name, e.EntityNumber, field)
}

// ToRaw converts the model back into the raw document. Entity numbers are
// recomputed from ids; unknown entities are written back as they were read.
func ToRaw(bp *Blueprint) *raw.Container {
	out := &raw.Container{
		Blueprint: raw.Blueprint{
			Entities: make([]raw.Entity, len(bp.entities)),
			Version:  bp.Version,
			Item:     raw.ItemBlueprint,
			Icons:    raw.CloneIcons(bp.Icons),
			Extra:    bp.Extra.Clone(),
		},
		Extra: bp.containerExtra.Clone(),
	}
	for i, e := range bp.entities {
		out.Blueprint.Entities[i] = e.toRaw()
	}
	return out
}

// connectionsFromRaw flattens the nested wire structure into half-edges:
// side one before side two, red before green. An absent circuit_id targets
// side one.
func connectionsFromRaw(cs *raw.Connections) []Connection {
	if cs == nil {
		return nil
	}
	var out []Connection
	for _, point := range []struct {
		side Side
		p    *raw.ConnectionPoint
	}{{SideOne, cs.One}, {SideTwo, cs.Two}} {
		if point.p == nil {
			continue
		}
		out = appendWire(out, point.side, WireRed, point.p.Red)
		out = appendWire(out, point.side, WireGreen, point.p.Green)
	}
	return out
}

func appendWire(out []Connection, from Side, wire Wire, ds []raw.ConnectionData) []Connection {
	for _, d := range ds {
		to := SideOne
		if d.CircuitID != nil && *d.CircuitID == raw.CircuitTwo {
			to = SideTwo
		}
		out = append(out, Connection{
			FromSide: from,
			To:       Connector{ID: int(d.EntityID) - 1, Side: to},
			Wire:     wire,
		})
	}
	return out
}

// connectionsToRaw groups half-edges by side and colour. Empty groups are
// left out, down to returning nil when there are no connections at all.
// The target side is always written as an explicit circuit_id.
func connectionsToRaw(cs []Connection) *raw.Connections {
	if len(cs) == 0 {
		return nil
	}
	var groups [2][2][]raw.ConnectionData // [side][wire]
	for _, c := range cs {
		circuit := raw.CircuitOne
		if c.To.Side == SideTwo {
			circuit = raw.CircuitTwo
		}
		s := 0
		if c.FromSide == SideTwo {
			s = 1
		}
		groups[s][c.Wire] = append(groups[s][c.Wire], raw.ConnectionData{
			EntityID:  uint32(c.To.ID + 1),
			CircuitID: &circuit,
		})
	}
	point := func(g [2][]raw.ConnectionData) *raw.ConnectionPoint {
		if len(g[WireRed]) == 0 && len(g[WireGreen]) == 0 {
			return nil
		}
		return &raw.ConnectionPoint{Red: g[WireRed], Green: g[WireGreen]}
	}
	return &raw.Connections{One: point(groups[0]), Two: point(groups[1])}
}
