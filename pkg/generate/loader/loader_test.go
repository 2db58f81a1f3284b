package loader

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []int32
	}{
		{
			name: "aligned",
			in:   []byte{0, 0, 0, 5, 0, 0, 2, 0, 0, 0, 0, 7},
			want: []int32{5, 512, 7},
		},
		{
			name: "padded",
			in:   []byte{0xff, 0xff, 0xff, 0xff, 0x7f, 0xff, 0xff, 0xff, 0x80},
			want: []int32{-1, math.MaxInt32, math.MinInt32},
		},
		{
			name: "empty",
			in:   nil,
			want: []int32{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Words(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Words() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordsDoesNotModifyInput(t *testing.T) {
	in := make([]byte, 1, 8)
	in[0] = 1
	Words(in)
	if got := in[:2]; got[1] != 0 || len(in) != 1 {
		t.Errorf("input changed: %v", got)
	}
}

func TestReadWords(t *testing.T) {
	got, err := ReadWords(strings.NewReader("\x00\x00\x01"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int32{256}; !slices.Equal(got, want) {
		t.Errorf("ReadWords() = %v, want %v", got, want)
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name  string
		words []int32
		opts  Options
	}{
		{"no words", nil, DefaultOptions()},
		{"height one", []int32{1}, Options{MaxHeight: 1}},
		{"zero options", []int32{1}, Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.words, tt.opts)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

// layout groups the entities of a generated loader by kind.
type layout struct {
	constants []*blueprint.ConstantCombinator
	deciders  []*blueprint.DeciderCombinator
	poles     []*blueprint.ElectricPole
}

func inspect(bp *blueprint.Blueprint) layout {
	var l layout
	for _, e := range bp.Entities() {
		switch e := e.(type) {
		case *blueprint.ConstantCombinator:
			l.constants = append(l.constants, e)
		case *blueprint.DeciderCombinator:
			l.deciders = append(l.deciders, e)
		case *blueprint.ElectricPole:
			l.poles = append(l.poles, e)
		}
	}
	return l
}

func TestGenerateWords(t *testing.T) {
	words := []int32{5, 512, 7}
	bp, err := Generate(words, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	l := inspect(bp)
	// Clock plus one cell per word.
	if len(l.constants) != 4 || len(l.deciders) != 4 {
		t.Fatalf("constants = %d, deciders = %d, want 4 and 4", len(l.constants), len(l.deciders))
	}
	for i, w := range words {
		k := l.constants[i+1]
		if k.Filters[0].Count != w {
			t.Errorf("word %d count = %d, want %d", i, k.Filters[0].Count, w)
		}
		d := l.deciders[i+1]
		if d.Condition.Constant == nil || *d.Condition.Constant != int32(i+1) {
			t.Errorf("word %d index = %v, want %d", i, d.Condition.Constant, i+1)
		}
	}
	if len(l.poles) != 1 {
		t.Errorf("poles = %d, want 1", len(l.poles))
	}
}

func TestGenerateClock(t *testing.T) {
	bp, err := Generate([]int32{1, 2}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	k, ok := bp.Entity(0).(*blueprint.ConstantCombinator)
	if !ok {
		t.Fatalf("Entity(0) = %T, want clock constant", bp.Entity(0))
	}
	d, ok := bp.Entity(1).(*blueprint.DeciderCombinator)
	if !ok {
		t.Fatalf("Entity(1) = %T, want clock decider", bp.Entity(1))
	}
	if d.Condition.FirstSignal == nil || d.Condition.FirstSignal.Name != "signal-check" {
		t.Errorf("clock decider reads %v, want signal-check", d.Condition.FirstSignal)
	}
	if got, want := d.Position().X-k.Position().X, float32(1.5); got != want {
		t.Errorf("clock spacing = %v, want %v", got, want)
	}

	green := blueprint.Connection{FromSide: blueprint.SideOne, To: blueprint.Connector{ID: 1, Side: blueprint.SideOne}, Wire: blueprint.WireGreen}
	if !slices.Contains(k.Connections(), green) {
		t.Errorf("clock constant connections = %v, want green wire to decider", k.Connections())
	}

	// The first data decider is id 3: the template cell clone is [2 3].
	red := blueprint.Connection{FromSide: blueprint.SideTwo, To: blueprint.Connector{ID: 3, Side: blueprint.SideOne}, Wire: blueprint.WireRed}
	if !slices.Contains(d.Connections(), red) {
		t.Errorf("clock decider connections = %v, want red wire to first decider", d.Connections())
	}
	back := blueprint.Connection{FromSide: blueprint.SideOne, To: blueprint.Connector{ID: 1, Side: blueprint.SideTwo}, Wire: blueprint.WireRed}
	if !slices.Contains(bp.Entity(3).Connections(), back) {
		t.Errorf("first decider connections = %v, want red wire back to clock", bp.Entity(3).Connections())
	}
}

func TestGenerateColumns(t *testing.T) {
	// Columns of 3 rows: 8 words fill columns of 3, 3 and 2.
	words := make([]int32, 8)
	bp, err := Generate(words, Options{MaxHeight: 4})
	if err != nil {
		t.Fatal(err)
	}

	l := inspect(bp)
	data := l.deciders[1:]
	base := data[0].Position()
	for i, d := range data {
		col, row := i/3, i%3
		got := d.Position()
		if got.X-base.X != float32(4*col) || got.Y-base.Y != float32(row) {
			t.Errorf("decider %d at %v, want column %d row %d", i, got, col, row)
		}
	}

	// Row 1 and the last row of each full column get a pole; the last
	// column holds rows 1 and 2 and only gets the first.
	if len(l.poles) != 5 {
		t.Fatalf("poles = %d, want 5", len(l.poles))
	}
	tops := []*blueprint.ElectricPole{l.poles[0], l.poles[2], l.poles[4]}
	if !tops[0].HasNeighbour(l.poles[1].ID()) {
		t.Errorf("first column poles not linked")
	}
	for i := 1; i < len(tops); i++ {
		if !tops[i-1].HasNeighbour(tops[i].ID()) {
			t.Errorf("top pole %d not linked to top pole %d", tops[i-1].ID(), tops[i].ID())
		}
	}
}

func TestGenerateDeciderChain(t *testing.T) {
	words := make([]int32, 5)
	bp, err := Generate(words, Options{MaxHeight: 3})
	if err != nil {
		t.Fatal(err)
	}
	data := inspect(bp).deciders[1:]

	linked := func(a, b *blueprint.DeciderCombinator) bool {
		red := blueprint.Connection{FromSide: blueprint.SideOne, To: blueprint.Connector{ID: b.ID(), Side: blueprint.SideOne}, Wire: blueprint.WireRed}
		green := blueprint.Connection{FromSide: blueprint.SideTwo, To: blueprint.Connector{ID: b.ID(), Side: blueprint.SideTwo}, Wire: blueprint.WireGreen}
		cs := a.Connections()
		return slices.Contains(cs, red) && slices.Contains(cs, green)
	}

	// Columns of two: [0 1] [2 3] [4].
	pairs := [][2]int{{0, 1}, {2, 3}, {0, 2}, {2, 4}}
	for _, p := range pairs {
		if !linked(data[p[0]], data[p[1]]) {
			t.Errorf("decider %d not chained to decider %d", p[0], p[1])
		}
	}
	if linked(data[1], data[2]) {
		t.Error("bottom of a column chained to the next column")
	}
}

func TestGenerateEncodes(t *testing.T) {
	bp, err := Generate(Words([]byte("hello, loader")), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	s, err := blueprint.Encode(bp)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := blueprint.Decode(s); err != nil {
		t.Fatalf("Decode(Encode(Generate())): %v", err)
	}
}
