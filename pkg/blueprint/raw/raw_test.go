package raw

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEntityMarshalOmitsAbsent(t *testing.T) {
	e := Entity{EntityNumber: 1, Name: "small-lamp", Position: Position{X: 1.5, Y: 2}}

	got, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"entity_number":1,"name":"small-lamp","position":{"x":1.5,"y":2}}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestBlueprintMarshalEmptyLists(t *testing.T) {
	b := Blueprint{Version: 1, Item: ItemBlueprint}

	got, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"entities":[],"version":1,"item":"blueprint","icons":[]}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestExtraRoundTrip(t *testing.T) {
	in := `{"blueprint":{"icons":[],"entities":[{"entity_number":1,"name":"constant-combinator",` +
		`"position":{"x":0.5,"y":0.5},"control_behavior":{"filters":[],"is_on":false},"tags":{"a":1}}],` +
		`"item":"blueprint","label":"clock","version":7}}`

	var c Container
	if err := json.Unmarshal([]byte(in), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got := string(c.Blueprint.Extra["label"]); got != `"clock"` {
		t.Errorf("label = %s, want %q", got, `"clock"`)
	}
	e := c.Blueprint.Entities[0]
	if got := string(e.Extra["tags"]); got != `{"a":1}` {
		t.Errorf("tags = %s, want %s", got, `{"a":1}`)
	}
	if got := string(e.ControlBehavior.Extra["is_on"]); got != "false" {
		t.Errorf("is_on = %s, want false", got)
	}
	if _, ok := e.Extra["name"]; ok {
		t.Error("defined member leaked into Extra")
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"blueprint":{"entities":[{"entity_number":1,"name":"constant-combinator",` +
		`"position":{"x":0.5,"y":0.5},"control_behavior":{"filters":[],"is_on":false},"tags":{"a":1}}],` +
		`"version":7,"item":"blueprint","icons":[],"label":"clock"}}`
	if string(out) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", out, want)
	}
}

func TestExtraSortedAfterFields(t *testing.T) {
	d := ConnectionData{EntityID: 3, Extra: Extra{"z": json.RawMessage(`1`), "a": json.RawMessage(`"x"`)}}

	got, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"entity_id":3,"a":"x","z":1}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "missing blueprint",
			in:   `{"blueprint_book":{}}`,
			want: `missing field "blueprint"`,
		},
		{
			name: "missing version",
			in:   `{"blueprint":{"item":"blueprint","entities":[],"icons":[]}}`,
			want: `missing field "version"`,
		},
		{
			name: "missing entity name",
			in:   `{"blueprint":{"item":"blueprint","version":1,"entities":[{"entity_number":1,"position":{"x":0,"y":0}}]}}`,
			want: `missing field "name"`,
		},
		{
			name: "wrong item",
			in:   `{"blueprint":{"item":"blueprint-book","version":1}}`,
			want: `unsupported item "blueprint-book"`,
		},
		{
			name: "direction out of range",
			in:   `{"blueprint":{"item":"blueprint","version":1,"entities":[{"entity_number":1,"name":"x","position":{"x":0,"y":0},"direction":8}]}}`,
			want: "invalid direction 8",
		},
		{
			name: "circuit id out of range",
			in:   `{"blueprint":{"item":"blueprint","version":1,"entities":[{"entity_number":1,"name":"x","position":{"x":0,"y":0},"connections":{"1":{"red":[{"entity_id":1,"circuit_id":3}]}}}]}}`,
			want: "invalid circuit_id 3",
		},
		{
			name: "unknown comparator",
			in:   `{"blueprint":{"item":"blueprint","version":1,"entities":[{"entity_number":1,"name":"x","position":{"x":0,"y":0},"control_behavior":{"decider_conditions":{"comparator":"~","copy_count_from_input":true}}}]}}`,
			want: `unknown comparator "~"`,
		},
		{
			name: "unknown operation",
			in:   `{"blueprint":{"item":"blueprint","version":1,"entities":[{"entity_number":1,"name":"x","position":{"x":0,"y":0},"control_behavior":{"arithmetic_conditions":{"operation":"NAND"}}}]}}`,
			want: `unknown operation "NAND"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Container
			err := json.Unmarshal([]byte(tt.in), &c)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestMarshalKeepsOperators(t *testing.T) {
	c := &Container{Blueprint: Blueprint{
		Version: 1,
		Item:    ItemBlueprint,
		Entities: []Entity{{
			EntityNumber: 1,
			Name:         "decider-combinator",
			ControlBehavior: &ControlBehavior{
				DeciderConditions: &DeciderCondition{Comparator: ComparatorLt},
			},
		}},
	}}

	out, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"comparator": "<"`) {
		t.Errorf("comparator escaped in output:\n%s", out)
	}
	if !strings.HasPrefix(string(out), "{\n  \"blueprint\": {\n    \"entities\": [") {
		t.Errorf("output not indented with two spaces:\n%s", out)
	}
}

func TestEntityClone(t *testing.T) {
	dir := East
	circuit := CircuitTwo
	e := Entity{
		EntityNumber: 1,
		Name:         "medium-electric-pole",
		Direction:    &dir,
		Neighbours:   []uint32{2, 3},
		Connections: &Connections{One: &ConnectionPoint{
			Red: []ConnectionData{{EntityID: 2, CircuitID: &circuit}},
		}},
		Extra: Extra{"tags": json.RawMessage(`{}`)},
	}

	c := e.Clone()
	c.Neighbours[0] = 9
	*c.Direction = West
	*c.Connections.One.Red[0].CircuitID = CircuitOne
	c.Extra["tags"][0] = '['

	if e.Neighbours[0] != 2 {
		t.Errorf("Neighbours[0] = %d, want 2", e.Neighbours[0])
	}
	if *e.Direction != East {
		t.Errorf("Direction = %v, want %v", *e.Direction, East)
	}
	if *e.Connections.One.Red[0].CircuitID != CircuitTwo {
		t.Errorf("CircuitID = %d, want 2", *e.Connections.One.Red[0].CircuitID)
	}
	if string(e.Extra["tags"]) != "{}" {
		t.Errorf("Extra[tags] = %s, want {}", e.Extra["tags"])
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{North, "north"},
		{SouthWest, "southwest"},
		{Direction(9), "direction(9)"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", uint8(tt.d), got, tt.want)
		}
	}
}
