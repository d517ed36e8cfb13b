package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"io"
	"strconv"
)

// Node is the data handed to Populate. It is one of:
//
//   - JSON: a textual payload, decoded into a Map before use
//   - Map: ordered name -> Node entries
//   - Scalar: a leaf value
//   - Loaded: a leaf value read back from the store, with its write time
//   - *SuperColumn: a pre-built super column, accepted as a Map entry of a SuperColumnFamily
type Node interface {
	node()
}

// JSON is a textual key -> value document, for example {"profile":{"name":"alice"}}.
type JSON []byte

// Scalar is a leaf column value.
type Scalar []byte

// Loaded is a cell as it came back from the store. Populating it does not mark the column
// modified.
type Loaded litetable.Cell

// Field is one entry of a Map.
type Field struct {
	Name  string
	Value Node
}

// Map is an ordered mapping. Entries are applied in order; a repeated name overwrites the
// earlier entry.
type Map []Field

func (JSON) node()         {}
func (Scalar) node()       {}
func (Loaded) node()       {}
func (Map) node()          {}
func (*SuperColumn) node() {}

// S returns a Scalar holding s.
func S(s string) Scalar {
	return Scalar(s)
}

// B returns a Scalar holding b.
func B(b []byte) Scalar {
	return Scalar(b)
}

// F returns a Map entry.
func F(name string, v Node) Field {
	return Field{Name: name, Value: v}
}

// M returns a Map of the given entries.
func M(fields ...Field) Map {
	return Map(fields)
}

// Get returns the last entry named name.
func (m Map) Get(name string) (Node, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Name == name {
			return m[i].Value, true
		}
	}
	return nil, false
}

// FromSlice converts a super column read from the store into a populate payload.
func FromSlice(s litetable.SuperSlice) Map {
	m := make(Map, 0, len(s.Columns))
	for _, c := range s.Columns {
		m = append(m, Field{Name: c.Name, Value: Loaded(c)})
	}
	return m
}

// resolvePayload resolves the top of a populate call into its entries.
func resolvePayload(data Node) (Map, error) {
	switch d := data.(type) {
	case JSON:
		m, err := decodeJSON(d)
		if err != nil {
			return nil, newError(ErrMalformedPayload, "decode json: %v", err)
		}
		if len(m) == 0 {
			return nil, newError(ErrMalformedPayload, "empty document")
		}
		return m, nil
	case Map:
		if len(d) == 0 {
			return nil, newError(ErrMalformedPayload, "empty mapping")
		}
		return d, nil
	case nil:
		return nil, newError(ErrMalformedPayload, "no data")
	default:
		return nil, newError(ErrMalformedPayload, "expected a mapping, got %T", data)
	}
}

var errNotObject = errors.New("document is not an object")

// decodeJSON decodes a JSON object into a Map, keeping the document order of its keys.
func decodeJSON(b []byte) (Map, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	m, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after document")
	}
	return m, nil
}

// decodeObject reads entries up to and including the closing brace of an object whose opening
// brace was already consumed.
func decodeObject(dec *json.Decoder) (Map, error) {
	m := Map{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		m = append(m, Field{Name: key, Value: v})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if t == '{' {
			return decodeObject(dec)
		}
		return nil, errors.New("arrays are not supported")
	case string:
		return Scalar(t), nil
	case json.Number:
		return Scalar(t.String()), nil
	case bool:
		return Scalar(strconv.FormatBool(t)), nil
	case nil:
		return Scalar(nil), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
