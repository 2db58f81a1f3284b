package blueprint

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint/raw"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
)

// VersionPrefix is the version character every supported blueprint string
// starts with.
const VersionPrefix = '0'

// DecodeJSON checks the version, base64-decodes and inflates a blueprint
// string and returns the JSON document it carries. The document is checked
// to be well-formed JSON.
func DecodeJSON(s string) ([]byte, error) {
	if len(s) == 0 || s[0] != VersionPrefix {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "blueprint has invalid version")
	}

	compressed, err := base64.StdEncoding.DecodeString(s[1:])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBase64Decode, err, "base64 decoding of blueprint failed")
	}

	data, err := inflate(compressed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeZlibInflate, err, "zlib inflation of blueprint failed")
	}

	if !json.Valid(data) {
		return nil, errors.New(errors.ErrCodeJSONDecode, "json decode of blueprint failed")
	}
	return data, nil
}

func inflate(compressed []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, stderrors.New("inflated data is not valid UTF-8")
	}
	return data, nil
}

// DecodeToPrettyJSON decodes a blueprint string into its JSON document,
// indented with two spaces.
func DecodeToPrettyJSON(s string) (string, error) {
	data, err := DecodeJSON(s)
	if err != nil {
		return "", err
	}
	pretty, err := raw.Indent(data)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeJSONDecode, err, "json decode of blueprint failed")
	}
	return string(pretty), nil
}

// DecodeRaw decodes a blueprint string into the raw schema. The document is
// deserialized from its indented form so errors point at a useful line.
func DecodeRaw(s string) (*raw.Container, error) {
	pretty, err := DecodeToPrettyJSON(s)
	if err != nil {
		return nil, err
	}

	var c raw.Container
	if err := json.Unmarshal([]byte(pretty), &c); err != nil {
		if line, ok := errorLine(pretty, err); ok {
			return nil, errors.Wrap(errors.ErrCodeJSONDeserialize, err,
				"json deserialize of blueprint failed at line %d", line)
		}
		return nil, errors.Wrap(errors.ErrCodeJSONDeserialize, err, "json deserialize of blueprint failed")
	}
	return &c, nil
}

// errorLine returns the 1-based line of doc the decoding error refers to.
func errorLine(doc string, err error) (int, bool) {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case stderrors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0, false
	}
	if offset < 0 || offset > int64(len(doc)) {
		return 0, false
	}
	return bytes.Count([]byte(doc[:offset]), []byte{'\n'}) + 1, true
}

// Decode decodes a blueprint string into the graph model.
func Decode(s string) (*Blueprint, error) {
	c, err := DecodeRaw(s)
	if err != nil {
		return nil, err
	}
	return FromRaw(c)
}

// RawToPrettyJSON serializes a raw document as indented JSON.
func RawToPrettyJSON(c *raw.Container) (string, error) {
	data, err := raw.Marshal(c)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeJSONSerialize, err, "json serialize of blueprint failed")
	}
	return string(data), nil
}

// ModelToPrettyJSON serializes the model as indented JSON.
func ModelToPrettyJSON(bp *Blueprint) (string, error) {
	return RawToPrettyJSON(ToRaw(bp))
}

// EncodeRaw encodes a raw document as a blueprint string. The JSON is
// compressed at the fastest zlib level.
func EncodeRaw(c *raw.Container) (string, error) {
	doc, err := raw.Marshal(c)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeJSONEncode, err, "json encode of blueprint failed")
	}

	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeZlibDeflate, err, "zlib deflation of blueprint failed")
	}
	if _, err := w.Write(doc); err != nil {
		return "", errors.Wrap(errors.ErrCodeZlibDeflate, err, "zlib deflation of blueprint failed")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeZlibDeflate, err, "zlib deflation of blueprint failed")
	}

	return string(VersionPrefix) + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Encode encodes the model as a blueprint string.
func Encode(bp *Blueprint) (string, error) {
	return EncodeRaw(ToRaw(bp))
}
