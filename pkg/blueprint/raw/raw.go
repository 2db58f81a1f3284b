package raw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
)

// Container is the top-level wire document: {"blueprint": {...}}.
type Container struct {
	Blueprint Blueprint `json:"blueprint" raw:"required"`
	Extra     Extra     `json:"-"`
}

type containerAlias Container

// MarshalJSON encodes the container and any preserved members.
func (c Container) MarshalJSON() ([]byte, error) {
	return marshalObject(containerAlias(c), c.Extra)
}

// UnmarshalJSON decodes the container. The "blueprint" member is required,
// so blueprint books and other top-level kinds are rejected.
//
// Members of nested objects that the schema does not define are collected
// in a second pass over data.
func (c *Container) UnmarshalJSON(data []byte) error {
	var aux containerAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if err := collect(data, reflect.ValueOf(&aux).Elem(), ""); err != nil {
		return err
	}
	*c = Container(aux)
	return nil
}

// Blueprint is the single blueprint record held by a Container.
type Blueprint struct {
	Entities []Entity `json:"entities"`
	Version  uint64   `json:"version" raw:"required"`
	Item     Item     `json:"item" raw:"required"`
	Icons    []Icon   `json:"icons"`
	Extra    Extra    `json:"-"`
}

type blueprintAlias Blueprint

// MarshalJSON encodes the blueprint. Entities and icons are always emitted
// as arrays, never null.
func (b Blueprint) MarshalJSON() ([]byte, error) {
	if b.Entities == nil {
		b.Entities = []Entity{}
	}
	if b.Icons == nil {
		b.Icons = []Icon{}
	}
	return marshalObject(blueprintAlias(b), b.Extra)
}

// Icon is one of up to four icons displayed for the blueprint.
type Icon struct {
	Index  uint32 `json:"index" raw:"required"`
	Signal Signal `json:"signal" raw:"required"`
	Extra  Extra  `json:"-"`
}

type iconAlias Icon

func (i Icon) MarshalJSON() ([]byte, error) {
	return marshalObject(iconAlias(i), i.Extra)
}

// Clone returns a deep copy of i.
func (i Icon) Clone() Icon {
	return Icon{Index: i.Index, Signal: i.Signal.Clone(), Extra: i.Extra.Clone()}
}

// CloneIcons returns a deep copy of icons. A nil slice stays nil.
func CloneIcons(icons []Icon) []Icon {
	if icons == nil {
		return nil
	}
	out := make([]Icon, len(icons))
	for i, icon := range icons {
		out[i] = icon.Clone()
	}
	return out
}

// Entity is a placed entity as it appears on the wire. EntityNumber is 1-based.
type Entity struct {
	EntityNumber    uint32           `json:"entity_number" raw:"required"`
	Name            string           `json:"name" raw:"required"`
	Position        Position         `json:"position" raw:"required"`
	Direction       *Direction       `json:"direction,omitempty"`
	Connections     *Connections     `json:"connections,omitempty"`
	ControlBehavior *ControlBehavior `json:"control_behavior,omitempty"`
	Neighbours      []uint32         `json:"neighbours,omitzero"`
	Extra           Extra            `json:"-"`
}

type entityAlias Entity

// MarshalJSON encodes the entity followed by preserved members.
func (e Entity) MarshalJSON() ([]byte, error) {
	return marshalObject(entityAlias(e), e.Extra)
}

// Clone returns a deep copy of e.
func (e Entity) Clone() Entity {
	out := e
	out.Position = e.Position.Clone()
	if e.Direction != nil {
		d := *e.Direction
		out.Direction = &d
	}
	if e.Connections != nil {
		c := e.Connections.Clone()
		out.Connections = &c
	}
	if e.ControlBehavior != nil {
		cb := e.ControlBehavior.Clone()
		out.ControlBehavior = &cb
	}
	out.Neighbours = slices.Clone(e.Neighbours)
	out.Extra = e.Extra.Clone()
	return out
}

// Position is an entity's centre in tile coordinates.
type Position struct {
	X     float32 `json:"x" raw:"required"`
	Y     float32 `json:"y" raw:"required"`
	Extra Extra   `json:"-"`
}

type positionAlias Position

func (p Position) MarshalJSON() ([]byte, error) {
	return marshalObject(positionAlias(p), p.Extra)
}

func (p Position) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Clone returns a deep copy of p.
func (p Position) Clone() Position {
	return Position{X: p.X, Y: p.Y, Extra: p.Extra.Clone()}
}

// Connections holds the circuit connections of an entity, keyed by the
// side of the entity the wire is attached to.
type Connections struct {
	One   *ConnectionPoint `json:"1,omitempty"`
	Two   *ConnectionPoint `json:"2,omitempty"`
	Extra Extra            `json:"-"`
}

type connectionsAlias Connections

// MarshalJSON encodes both sides and any preserved members (for example
// copper cable points of power switches).
func (c Connections) MarshalJSON() ([]byte, error) {
	return marshalObject(connectionsAlias(c), c.Extra)
}

// Clone returns a deep copy of c.
func (c Connections) Clone() Connections {
	out := Connections{Extra: c.Extra.Clone()}
	if c.One != nil {
		p := c.One.Clone()
		out.One = &p
	}
	if c.Two != nil {
		p := c.Two.Clone()
		out.Two = &p
	}
	return out
}

// ConnectionPoint lists the wires attached to one side, by colour.
type ConnectionPoint struct {
	Green []ConnectionData `json:"green,omitzero"`
	Red   []ConnectionData `json:"red,omitzero"`
	Extra Extra            `json:"-"`
}

type connectionPointAlias ConnectionPoint

func (p ConnectionPoint) MarshalJSON() ([]byte, error) {
	return marshalObject(connectionPointAlias(p), p.Extra)
}

// Clone returns a deep copy of p.
func (p ConnectionPoint) Clone() ConnectionPoint {
	return ConnectionPoint{
		Green: cloneData(p.Green),
		Red:   cloneData(p.Red),
		Extra: p.Extra.Clone(),
	}
}

func cloneData(ds []ConnectionData) []ConnectionData {
	if ds == nil {
		return nil
	}
	out := make([]ConnectionData, len(ds))
	for i, d := range ds {
		out[i] = d.Clone()
	}
	return out
}

// ConnectionData is the far end of one wire.
type ConnectionData struct {
	// EntityID is the 1-based entity_number of the target.
	EntityID uint32 `json:"entity_id" raw:"required"`

	// CircuitID selects the target side for entities with two sides.
	CircuitID *CircuitID `json:"circuit_id,omitempty"`

	Extra Extra `json:"-"`
}

type connectionDataAlias ConnectionData

// MarshalJSON encodes the wire target and any preserved members.
func (d ConnectionData) MarshalJSON() ([]byte, error) {
	return marshalObject(connectionDataAlias(d), d.Extra)
}

// Clone returns a deep copy of d.
func (d ConnectionData) Clone() ConnectionData {
	out := ConnectionData{EntityID: d.EntityID, Extra: d.Extra.Clone()}
	if d.CircuitID != nil {
		c := *d.CircuitID
		out.CircuitID = &c
	}
	return out
}

// ControlBehavior holds the circuit settings of combinators.
type ControlBehavior struct {
	DeciderConditions    *DeciderCondition    `json:"decider_conditions,omitempty"`
	ArithmeticConditions *ArithmeticCondition `json:"arithmetic_conditions,omitempty"`
	Filters              []ConstantCondition  `json:"filters,omitzero"`
	Extra                Extra                `json:"-"`
}

type controlBehaviorAlias ControlBehavior

// MarshalJSON encodes the behaviour and preserved members such as "is_on".
func (cb ControlBehavior) MarshalJSON() ([]byte, error) {
	return marshalObject(controlBehaviorAlias(cb), cb.Extra)
}

// Clone returns a deep copy of cb.
func (cb ControlBehavior) Clone() ControlBehavior {
	out := ControlBehavior{Extra: cb.Extra.Clone()}
	if cb.DeciderConditions != nil {
		d := cb.DeciderConditions.Clone()
		out.DeciderConditions = &d
	}
	if cb.ArithmeticConditions != nil {
		a := cb.ArithmeticConditions.Clone()
		out.ArithmeticConditions = &a
	}
	out.Filters = CloneFilters(cb.Filters)
	return out
}

// Signal identifies a circuit signal.
type Signal struct {
	Name  string     `json:"name" raw:"required"`
	Type  SignalType `json:"type" raw:"required"`
	Extra Extra      `json:"-"`
}

type signalAlias Signal

// MarshalJSON encodes the signal and preserved members such as "quality".
func (s Signal) MarshalJSON() ([]byte, error) {
	return marshalObject(signalAlias(s), s.Extra)
}

// Clone returns a deep copy of s.
func (s Signal) Clone() Signal {
	return Signal{Name: s.Name, Type: s.Type, Extra: s.Extra.Clone()}
}

func cloneSignal(s *Signal) *Signal {
	if s == nil {
		return nil
	}
	c := s.Clone()
	return &c
}

// DeciderCondition configures a decider combinator.
type DeciderCondition struct {
	Comparator         Comparator `json:"comparator" raw:"required"`
	CopyCountFromInput bool       `json:"copy_count_from_input" raw:"required"`
	Constant           *int32     `json:"constant,omitempty"`
	FirstSignal        *Signal    `json:"first_signal,omitempty"`
	SecondSignal       *Signal    `json:"second_signal,omitempty"`
	OutputSignal       *Signal    `json:"output_signal,omitempty"`
	Extra              Extra      `json:"-"`
}

type deciderConditionAlias DeciderCondition

func (c DeciderCondition) MarshalJSON() ([]byte, error) {
	return marshalObject(deciderConditionAlias(c), c.Extra)
}

// Clone returns a deep copy of c.
func (c DeciderCondition) Clone() DeciderCondition {
	out := c
	out.Constant = clonePtr(c.Constant)
	out.FirstSignal = cloneSignal(c.FirstSignal)
	out.SecondSignal = cloneSignal(c.SecondSignal)
	out.OutputSignal = cloneSignal(c.OutputSignal)
	out.Extra = c.Extra.Clone()
	return out
}

// ArithmeticCondition configures an arithmetic combinator.
type ArithmeticCondition struct {
	Operation      Operation `json:"operation" raw:"required"`
	FirstConstant  *int32    `json:"first_constant,omitempty"`
	SecondConstant *int32    `json:"second_constant,omitempty"`
	FirstSignal    *Signal   `json:"first_signal,omitempty"`
	SecondSignal   *Signal   `json:"second_signal,omitempty"`
	OutputSignal   *Signal   `json:"output_signal,omitempty"`
	Extra          Extra     `json:"-"`
}

type arithmeticConditionAlias ArithmeticCondition

func (c ArithmeticCondition) MarshalJSON() ([]byte, error) {
	return marshalObject(arithmeticConditionAlias(c), c.Extra)
}

// Clone returns a deep copy of c.
func (c ArithmeticCondition) Clone() ArithmeticCondition {
	out := c
	out.FirstConstant = clonePtr(c.FirstConstant)
	out.SecondConstant = clonePtr(c.SecondConstant)
	out.FirstSignal = cloneSignal(c.FirstSignal)
	out.SecondSignal = cloneSignal(c.SecondSignal)
	out.OutputSignal = cloneSignal(c.OutputSignal)
	out.Extra = c.Extra.Clone()
	return out
}

// ConstantCondition is one output slot of a constant combinator.
// Index is 1-based; the game accepts slots 1 through 20.
type ConstantCondition struct {
	Count  int32  `json:"count" raw:"required"`
	Index  uint8  `json:"index" raw:"required"`
	Signal Signal `json:"signal" raw:"required"`
	Extra  Extra  `json:"-"`
}

type constantConditionAlias ConstantCondition

func (c ConstantCondition) MarshalJSON() ([]byte, error) {
	return marshalObject(constantConditionAlias(c), c.Extra)
}

// CloneFilters returns a deep copy of fs. A nil slice stays nil and an
// empty one stays empty.
func CloneFilters(fs []ConstantCondition) []ConstantCondition {
	if fs == nil {
		return nil
	}
	out := make([]ConstantCondition, len(fs))
	for i, f := range fs {
		out[i] = ConstantCondition{Count: f.Count, Index: f.Index, Signal: f.Signal.Clone(), Extra: f.Extra.Clone()}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Marshal encodes c as indented JSON, the way the wire format is produced.
func Marshal(c *Container) ([]byte, error) {
	data, err := marshalJSON(c)
	if err != nil {
		return nil, err
	}
	return Indent(data)
}

// Indent re-indents a JSON document with two spaces per level.
func Indent(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
