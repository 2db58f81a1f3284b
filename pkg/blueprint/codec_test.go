package blueprint

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint/raw"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/fixtures"
)

// compress builds a blueprint string around an arbitrary payload.
func compress(t *testing.T, payload string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write([]byte(payload)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return "0" + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidVersion},
		{"wrong version", "1" + fixtures.LoaderCell[1:], errors.ErrCodeInvalidVersion},
		{"bad base64", "0!!!!", errors.ErrCodeBase64Decode},
		{"not zlib", "0" + base64.StdEncoding.EncodeToString([]byte("plain text")), errors.ErrCodeZlibInflate},
		{"truncated zlib", fixtures.LoaderCell[:41], errors.ErrCodeZlibInflate},
		{"not json", compress(t, `{"blueprint":`), errors.ErrCodeJSONDecode},
		{"wrong shape", compress(t, `{"blueprint":{"item":"blueprint","version":"one"}}`), errors.ErrCodeJSONDeserialize},
		{"blueprint book", compress(t, `{"blueprint_book":{"blueprints":[]}}`), errors.ErrCodeJSONDeserialize},
		{"non-contiguous", compress(t, entitiesDoc(lamp(2))), errors.ErrCodeNonContiguousIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (%v)", got, tt.code, err)
			}
		})
	}
}

func TestDecodeBase64Cause(t *testing.T) {
	_, err := DecodeJSON("0!!!!")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Cause == nil {
		t.Fatalf("err = %v, want wrapped decoder error", err)
	}
}

func TestDecodeRawLineNumber(t *testing.T) {
	s := compress(t, `{"blueprint":{"item":"blueprint","icons":[],"entities":[],"version":"one"}}`)

	_, err := DecodeRaw(s)
	if err == nil {
		t.Fatal("expected error")
	}
	// The indented document puts "version" on line 6.
	if !strings.Contains(err.Error(), "line 6") {
		t.Errorf("err = %v, want line 6", err)
	}
}

func TestDecodeToPrettyJSON(t *testing.T) {
	got, err := DecodeToPrettyJSON(compress(t, `{"a":[1,{"b":"<"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": [\n    1,\n    {\n      \"b\": \"<\"\n    }\n  ]\n}"
	if got != want {
		t.Errorf("DecodeToPrettyJSON =\n%s\nwant\n%s", got, want)
	}
}

func TestDecodeLoaderCell(t *testing.T) {
	bp, err := Decode(fixtures.LoaderCell)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if bp.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bp.Len())
	}
	k, ok := bp.Entity(0).(*ConstantCombinator)
	if !ok {
		t.Fatalf("Entity(0) = %T, want *ConstantCombinator", bp.Entity(0))
	}
	if len(k.Filters) != 1 || k.Filters[0].Count != 17 {
		t.Errorf("Filters = %+v, want one filter with count 17", k.Filters)
	}
	d, ok := bp.Entity(1).(*DeciderCombinator)
	if !ok {
		t.Fatalf("Entity(1) = %T, want *DeciderCombinator", bp.Entity(1))
	}
	if d.Condition.Constant == nil || *d.Condition.Constant != 1 {
		t.Errorf("Constant = %v, want 1", d.Condition.Constant)
	}
	if bp.Version != 281479275151360 {
		t.Errorf("Version = %d", bp.Version)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for name, s := range map[string]string{
		"memory cell": fixtures.MemoryCell,
		"loader cell": fixtures.LoaderCell,
		"clock":       fixtures.Clock,
		"memory pair": fixtures.MemoryPair,
		"operators":   fixtures.Operators,
	} {
		t.Run(name, func(t *testing.T) {
			bp, err := Decode(s)
			if err != nil {
				t.Fatal(err)
			}
			encoded, err := Encode(bp)
			if err != nil {
				t.Fatal(err)
			}
			if encoded[0] != '0' {
				t.Errorf("encoded version = %q, want '0'", encoded[0])
			}

			again, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode(Encode(x)): %v", err)
			}
			reencoded, err := Encode(again)
			if err != nil {
				t.Fatal(err)
			}
			if reencoded != encoded {
				t.Error("Encode(Decode(Encode(x))) differs from Encode(x)")
			}
		})
	}
}

func TestEncodeRawKeepsOperators(t *testing.T) {
	c, err := DecodeRaw(fixtures.Operators)
	if err != nil {
		t.Fatal(err)
	}
	s, err := EncodeRaw(c)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := DecodeToPrettyJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, op := range []string{`"<<"`, `">>"`, `"≥"`, `"<"`} {
		if !strings.Contains(doc, op) {
			t.Errorf("encoded document lacks %s", op)
		}
	}
}

func TestEncodeRawErrorCode(t *testing.T) {
	c := &raw.Container{Blueprint: raw.Blueprint{
		Version: 1,
		Item:    raw.ItemBlueprint,
		Extra:   raw.Extra{"label": json.RawMessage(`{`)},
	}}

	_, err := EncodeRaw(c)
	if !errors.Is(err, errors.ErrCodeJSONEncode) {
		t.Fatalf("EncodeRaw() = %v, want JSON_ENCODE", err)
	}
	var outer *errors.Error
	if !stderrors.As(err, &outer) {
		t.Fatalf("EncodeRaw() error %T is not coded", err)
	}
	var inner *errors.Error
	if stderrors.As(outer.Cause, &inner) {
		t.Errorf("JSON_ENCODE wraps a second coded error %s", inner.Code)
	}

	if _, err := RawToPrettyJSON(c); !errors.Is(err, errors.ErrCodeJSONSerialize) {
		t.Errorf("RawToPrettyJSON() = %v, want JSON_SERIALIZE", err)
	}
}
