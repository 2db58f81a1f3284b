package blueprint

import (
	"slices"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint/raw"
)

// Entity names the model understands.
const (
	NameDeciderCombinator    = "decider-combinator"
	NameArithmeticCombinator = "arithmetic-combinator"
	NameConstantCombinator   = "constant-combinator"
)

// Side is one of the circuit connectors of an entity.
type Side uint8

const (
	SideOne Side = iota + 1
	SideTwo
)

func (s Side) String() string {
	switch s {
	case SideOne:
		return "one"
	case SideTwo:
		return "two"
	}
	return "invalid"
}

// Wire is the colour of a circuit wire.
type Wire uint8

const (
	WireRed Wire = iota
	WireGreen
)

// Valid reports whether w is one of the two wire colours.
func (w Wire) Valid() bool { return w == WireRed || w == WireGreen }

func (w Wire) String() string {
	if w == WireGreen {
		return "green"
	}
	return "red"
}

// SideCount is the number of circuit connectors an entity kind offers.
type SideCount uint8

const (
	SideCountZero SideCount = iota
	SideCountOne
	SideCountTwo
)

// Allows reports whether side is within the count.
func (c SideCount) Allows(side Side) bool {
	switch side {
	case SideOne:
		return c >= SideCountOne
	case SideTwo:
		return c == SideCountTwo
	}
	return false
}

// Connector addresses one side of one entity.
type Connector struct {
	ID   int
	Side Side
}

// Connection is one half of a wire, stored on the entity at FromSide.
// The opposite half is stored on the entity addressed by To.
type Connection struct {
	FromSide Side
	To       Connector
	Wire     Wire
}

// PoleType is the kind of an electric pole.
type PoleType uint8

const (
	PoleSmall PoleType = iota
	PoleMedium
	PoleBig
	PoleSubstation
)

var poleNames = [...]string{
	PoleSmall:      "small-electric-pole",
	PoleMedium:     "medium-electric-pole",
	PoleBig:        "big-electric-pole",
	PoleSubstation: "substation",
}

// Name returns the entity name the game uses for the pole type.
func (p PoleType) Name() string {
	if int(p) < len(poleNames) {
		return poleNames[p]
	}
	return ""
}

// ParsePoleType maps an entity name to its pole type.
func ParsePoleType(name string) (PoleType, bool) {
	i := slices.Index(poleNames[:], name)
	if i < 0 {
		return 0, false
	}
	return PoleType(i), true
}

// Entity is a placed entity of a [Blueprint]. The concrete type is one of
// [*DeciderCombinator], [*ArithmeticCombinator], [*ConstantCombinator],
// [*ElectricPole] or [*Unknown].
//
// Connections can only be added through the graph operations of [Blueprint],
// which always write both halves of a wire.
type Entity interface {
	// ID is the zero-based position of the entity in its blueprint.
	ID() int
	Name() string
	Position() raw.Position
	SetPosition(raw.Position)
	// Translate moves the entity by dx, dy tiles.
	Translate(dx, dy float32)
	SideCount() SideCount
	CanConnect(side Side) bool
	// Connections returns a copy of the entity's half-edges.
	Connections() []Connection

	setID(id int)
	addConnection(c Connection)
	remap(ids map[int]int)
	clone() Entity
	toRaw() raw.Entity
}

type entityBase struct {
	id          int
	position    raw.Position
	connections []Connection
	extra       raw.Extra
}

func (b *entityBase) ID() int                    { return b.id }
func (b *entityBase) Position() raw.Position     { return b.position }
func (b *entityBase) SetPosition(p raw.Position) { b.position = p }
func (b *entityBase) Connections() []Connection  { return slices.Clone(b.connections) }

func (b *entityBase) Translate(dx, dy float32) {
	b.position.X += dx
	b.position.Y += dy
}

func (b *entityBase) setID(id int)               { b.id = id }
func (b *entityBase) addConnection(c Connection) { b.connections = append(b.connections, c) }

func (b *entityBase) remapConnections(ids map[int]int) {
	for i, c := range b.connections {
		if to, ok := ids[c.To.ID]; ok {
			b.connections[i].To.ID = to
		}
	}
}

func (b *entityBase) cloneBase() entityBase {
	return entityBase{
		id:          b.id,
		position:    b.position.Clone(),
		connections: slices.Clone(b.connections),
		extra:       b.extra.Clone(),
	}
}

func (b *entityBase) rawBase(name string) raw.Entity {
	return raw.Entity{
		EntityNumber: uint32(b.id + 1),
		Name:         name,
		Position:     b.position.Clone(),
		Connections:  connectionsToRaw(b.connections),
		Extra:        b.extra.Clone(),
	}
}

// DeciderCombinator compares a signal and conditionally forwards its input.
type DeciderCombinator struct {
	entityBase
	Direction raw.Direction
	Condition raw.DeciderCondition

	behaviorExtra raw.Extra
}

// NewDeciderCombinator returns an unplaced decider combinator. Its id is
// assigned by [Blueprint.Append].
func NewDeciderCombinator(pos raw.Position, dir raw.Direction, cond raw.DeciderCondition) *DeciderCombinator {
	return &DeciderCombinator{entityBase: entityBase{position: pos}, Direction: dir, Condition: cond}
}

func (*DeciderCombinator) Name() string                { return NameDeciderCombinator }
func (*DeciderCombinator) SideCount() SideCount        { return SideCountTwo }
func (d *DeciderCombinator) CanConnect(side Side) bool { return d.SideCount().Allows(side) }
func (d *DeciderCombinator) remap(ids map[int]int)     { d.remapConnections(ids) }

func (d *DeciderCombinator) clone() Entity {
	c := *d
	c.entityBase = d.cloneBase()
	c.Condition = d.Condition.Clone()
	c.behaviorExtra = d.behaviorExtra.Clone()
	return &c
}

func (d *DeciderCombinator) toRaw() raw.Entity {
	e := d.rawBase(NameDeciderCombinator)
	dir := d.Direction
	cond := d.Condition.Clone()
	e.Direction = &dir
	e.ControlBehavior = &raw.ControlBehavior{DeciderConditions: &cond, Extra: d.behaviorExtra.Clone()}
	return e
}

// ArithmeticCombinator computes a value from its input signals.
type ArithmeticCombinator struct {
	entityBase
	Direction raw.Direction
	Condition raw.ArithmeticCondition

	behaviorExtra raw.Extra
}

// NewArithmeticCombinator returns an unplaced arithmetic combinator.
func NewArithmeticCombinator(pos raw.Position, dir raw.Direction, cond raw.ArithmeticCondition) *ArithmeticCombinator {
	return &ArithmeticCombinator{entityBase: entityBase{position: pos}, Direction: dir, Condition: cond}
}

func (*ArithmeticCombinator) Name() string                { return NameArithmeticCombinator }
func (*ArithmeticCombinator) SideCount() SideCount        { return SideCountTwo }
func (a *ArithmeticCombinator) CanConnect(side Side) bool { return a.SideCount().Allows(side) }
func (a *ArithmeticCombinator) remap(ids map[int]int)     { a.remapConnections(ids) }

func (a *ArithmeticCombinator) clone() Entity {
	c := *a
	c.entityBase = a.cloneBase()
	c.Condition = a.Condition.Clone()
	c.behaviorExtra = a.behaviorExtra.Clone()
	return &c
}

func (a *ArithmeticCombinator) toRaw() raw.Entity {
	e := a.rawBase(NameArithmeticCombinator)
	dir := a.Direction
	cond := a.Condition.Clone()
	e.Direction = &dir
	e.ControlBehavior = &raw.ControlBehavior{ArithmeticConditions: &cond, Extra: a.behaviorExtra.Clone()}
	return e
}

// ConstantCombinator outputs a fixed set of signals.
type ConstantCombinator struct {
	entityBase
	// Direction is nil when the document did not specify one.
	Direction *raw.Direction
	Filters   []raw.ConstantCondition

	behaviorExtra raw.Extra
}

// NewConstantCombinator returns an unplaced constant combinator.
func NewConstantCombinator(pos raw.Position, filters []raw.ConstantCondition) *ConstantCombinator {
	return &ConstantCombinator{entityBase: entityBase{position: pos}, Filters: filters}
}

func (*ConstantCombinator) Name() string                { return NameConstantCombinator }
func (*ConstantCombinator) SideCount() SideCount        { return SideCountTwo }
func (k *ConstantCombinator) CanConnect(side Side) bool { return k.SideCount().Allows(side) }
func (k *ConstantCombinator) remap(ids map[int]int)     { k.remapConnections(ids) }

func (k *ConstantCombinator) clone() Entity {
	c := *k
	c.entityBase = k.cloneBase()
	if k.Direction != nil {
		dir := *k.Direction
		c.Direction = &dir
	}
	c.Filters = raw.CloneFilters(k.Filters)
	c.behaviorExtra = k.behaviorExtra.Clone()
	return &c
}

func (k *ConstantCombinator) toRaw() raw.Entity {
	e := k.rawBase(NameConstantCombinator)
	if k.Direction != nil {
		dir := *k.Direction
		e.Direction = &dir
	}
	if len(k.Filters) > 0 || len(k.behaviorExtra) > 0 {
		e.ControlBehavior = &raw.ControlBehavior{Filters: raw.CloneFilters(k.Filters), Extra: k.behaviorExtra.Clone()}
	}
	return e
}

// ElectricPole distributes power to its neighbours and carries circuit wires
// on a single connector.
type ElectricPole struct {
	entityBase
	PoleType PoleType

	neighbours []int
}

// NewElectricPole returns an unplaced pole without neighbours.
func NewElectricPole(t PoleType, pos raw.Position) *ElectricPole {
	return &ElectricPole{entityBase: entityBase{position: pos}, PoleType: t}
}

func (p *ElectricPole) Name() string              { return p.PoleType.Name() }
func (*ElectricPole) SideCount() SideCount        { return SideCountOne }
func (p *ElectricPole) CanConnect(side Side) bool { return p.SideCount().Allows(side) }
func (p *ElectricPole) Neighbours() []int         { return slices.Clone(p.neighbours) }
func (p *ElectricPole) HasNeighbour(id int) bool  { return slices.Contains(p.neighbours, id) }

func (p *ElectricPole) addNeighbour(id int) {
	if !p.HasNeighbour(id) {
		p.neighbours = append(p.neighbours, id)
	}
}

func (p *ElectricPole) remap(ids map[int]int) {
	p.remapConnections(ids)
	for i, n := range p.neighbours {
		if to, ok := ids[n]; ok {
			p.neighbours[i] = to
		}
	}
}

func (p *ElectricPole) clone() Entity {
	c := *p
	c.entityBase = p.cloneBase()
	c.neighbours = slices.Clone(p.neighbours)
	return &c
}

func (p *ElectricPole) toRaw() raw.Entity {
	e := p.rawBase(p.PoleType.Name())
	if len(p.neighbours) > 0 {
		e.Neighbours = make([]uint32, len(p.neighbours))
		for i, n := range p.neighbours {
			e.Neighbours[i] = uint32(n + 1)
		}
	}
	return e
}

// Unknown is an entity kind the model does not understand. The original
// record is kept and written back unchanged apart from its entity number.
// Unknown entities cannot be cloned or wired.
type Unknown struct {
	id     int
	entity raw.Entity
}

func (u *Unknown) ID() int                    { return u.id }
func (u *Unknown) Name() string               { return u.entity.Name }
func (u *Unknown) Position() raw.Position     { return u.entity.Position }
func (u *Unknown) SetPosition(p raw.Position) { u.entity.Position = p }
func (*Unknown) SideCount() SideCount         { return SideCountZero }
func (*Unknown) CanConnect(Side) bool         { return false }
func (*Unknown) Connections() []Connection    { return nil }

func (u *Unknown) Translate(dx, dy float32) {
	u.entity.Position.X += dx
	u.entity.Position.Y += dy
}

// Raw returns a copy of the original record.
func (u *Unknown) Raw() raw.Entity { return u.entity.Clone() }

func (u *Unknown) setID(id int)           { u.id = id }
func (*Unknown) addConnection(Connection) {}
func (*Unknown) remap(map[int]int)        {}
func (u *Unknown) clone() Entity          { return &Unknown{id: u.id, entity: u.entity.Clone()} }

func (u *Unknown) toRaw() raw.Entity {
	e := u.entity.Clone()
	e.EntityNumber = uint32(u.id + 1)
	return e
}

// Blueprint is the graph model of a blueprint. Entities live in a dense
// array and an entity's id is its index. Entities are only ever appended,
// so ids stay stable for the lifetime of the blueprint.
type Blueprint struct {
	Version uint64
	Icons   []raw.Icon
	// Extra holds blueprint members the model does not interpret, such as
	// the label.
	Extra raw.Extra

	entities       []Entity
	containerExtra raw.Extra
}

// New returns an empty blueprint.
func New(version uint64) *Blueprint {
	return &Blueprint{Version: version}
}

// Len returns the number of entities.
func (b *Blueprint) Len() int { return len(b.entities) }

// Entity returns the entity with the given id, or nil if there is none.
func (b *Blueprint) Entity(id int) Entity {
	if id < 0 || id >= len(b.entities) {
		return nil
	}
	return b.entities[id]
}

// Entities returns the entities in id order. The slice is a copy; the
// entities are shared with the blueprint.
func (b *Blueprint) Entities() []Entity {
	return slices.Clone(b.entities)
}

// Append adds e at the end of the blueprint, assigns it the next free id and
// returns that id. Connections e already carries are kept as they are.
func (b *Blueprint) Append(e Entity) int {
	id := len(b.entities)
	e.setID(id)
	b.entities = append(b.entities, e)
	return id
}

// Replace overwrites the entity at id with a copy of e. References of the
// copy found in remap are rewritten, which allows entities taken from another
// blueprint to be spliced in with their wiring intact.
func (b *Blueprint) Replace(id int, e Entity, remap map[int]int) error {
	if id < 0 || id >= len(b.entities) {
		return &InvalidIDError{ID: id}
	}
	c := e.clone()
	c.setID(id)
	c.remap(remap)
	b.entities[id] = c
	return nil
}

// Clone returns a deep copy of b.
func (b *Blueprint) Clone() *Blueprint {
	out := &Blueprint{
		Version:        b.Version,
		Icons:          raw.CloneIcons(b.Icons),
		Extra:          b.Extra.Clone(),
		entities:       make([]Entity, len(b.entities)),
		containerExtra: b.containerExtra.Clone(),
	}
	for i, e := range b.entities {
		out.entities[i] = e.clone()
	}
	return out
}
