package raw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Extra holds JSON object members that a schema type does not define.
// They are kept verbatim on decode and re-emitted after the defined fields,
// in sorted key order, on encode.
type Extra map[string]json.RawMessage

// Clone returns a copy of e. The raw values are copied as well.
func (e Extra) Clone() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = slices.Clone(v)
	}
	return out
}

// Equal reports whether e and o hold the same members with byte-identical values.
func (e Extra) Equal(o Extra) bool {
	if len(e) != len(o) {
		return false
	}
	for k, v := range e {
		w, ok := o[k]
		if !ok || !bytes.Equal(v, w) {
			return false
		}
	}
	return true
}

// marshalJSON encodes v without HTML escaping, so comparators such as "<"
// and operations such as "<<" stay readable in the output.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// marshalObject encodes v, which must encode to a JSON object, and appends
// the members of extra.
func marshalObject(v any, extra Extra) ([]byte, error) {
	data, err := marshalJSON(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return data, nil
	}

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	first := len(data) == 2 // "{}"
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := marshalJSON(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// collect walks data alongside the already decoded value v. It checks that
// members tagged raw:"required" are present and stores members a struct does
// not declare in its Extra field.
func collect(data json.RawMessage, v reflect.Value, path string) error {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return collect(data, v.Elem(), path)

	case reflect.Slice:
		if v.Len() == 0 || v.Type().Elem().Kind() != reflect.Struct {
			return nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for i := range min(len(items), v.Len()) {
			if err := collect(items[i], v.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}

	case reflect.Struct:
		var members map[string]json.RawMessage
		if err := json.Unmarshal(data, &members); err != nil {
			return err
		}
		fields := fieldsOf(v.Type())
		for _, name := range fields.required {
			if _, ok := members[name]; !ok {
				if path == "" {
					return fmt.Errorf("missing field %q", name)
				}
				return fmt.Errorf("%s: missing field %q", strings.TrimPrefix(path, "."), name)
			}
		}
		for _, f := range fields.known {
			m, ok := members[f.name]
			if !ok {
				continue
			}
			delete(members, f.name)
			if err := collect(m, v.Field(f.index), path+"."+f.name); err != nil {
				return err
			}
		}
		if fields.extra >= 0 && len(members) > 0 {
			v.Field(fields.extra).Set(reflect.ValueOf(Extra(members)))
		}
	}
	return nil
}

type fieldInfo struct {
	name  string
	index int
}

type objectFields struct {
	known    []fieldInfo
	required []string
	extra    int // index of the Extra field, -1 if none
}

var extraType = reflect.TypeFor[Extra]()

var fieldCache sync.Map // reflect.Type -> *objectFields

// fieldsOf returns the JSON member layout of struct type t.
func fieldsOf(t reflect.Type) *objectFields {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(*objectFields)
	}
	fields := &objectFields{extra: -1}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			if f.Type == extraType {
				fields.extra = i
			}
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		fields.known = append(fields.known, fieldInfo{name: name, index: i})
		if f.Tag.Get("raw") == "required" {
			fields.required = append(fields.required, name)
		}
	}
	fieldCache.Store(t, fields)
	return fields
}
