// Package ojson exposes an order-preserving JSON object for the package
// manifest and the synthesized export tree, both of which carry semantically
// ordered keys that encoding/json maps cannot represent.
package ojson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"
)

// Object is a JSON object whose keys keep insertion (or source) order.
// Values are string, bool, nil, json.Number, []any or *Object.
type Object struct {
	inner *orderedmap.OrderedMap
}

// New returns an empty object.
func New() *Object {
	inner := orderedmap.New()
	inner.SetEscapeHTML(false)

	return &Object{inner: inner}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.inner.Keys())
}

// Keys returns the keys in order. The returned slice must not be mutated.
func (o *Object) Keys() []string {
	return o.inner.Keys()
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	return o.inner.Get(key)
}

// GetString returns the value under key when it is a string.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.inner.Get(key)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// Set stores key=value, keeping the existing position for known keys and
// appending new keys at the end.
func (o *Object) Set(key string, value any) {
	o.inner.Set(key, value)
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	o.inner.Delete(key)
}

// MarshalJSON encodes the object compactly, keys in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	raw, err := o.inner.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalIndent encodes the object pretty-printed with the given indent.
func (o *Object) MarshalIndent(indent string) ([]byte, error) {
	compact, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Parse decodes data into an ordered object. The top-level value must be a
// JSON object. Decoding stays local rather than going through the library's
// UnmarshalJSON so numbers survive as json.Number instead of float64 and
// re-serialization does not reformat them.
func Parse(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}

	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("top-level JSON value is not an object")
	}

	return obj, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, bool, json.Number or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := New()

		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}

			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is not a string: %v", keyTok)
			}

			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}

			obj.Set(key, val)
		}

		// consume closing '}'
		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return obj, nil
	case '[':
		arr := []any{}

		for dec.More() {
			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}

			arr = append(arr, val)
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
