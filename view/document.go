package view

import (
	"bytes"

	"github.com/drblury/restview/jsonutil"
)

// Document is the ordered key/value projection produced by rendering a view.
// Keys keep their declaration order, which every emitter is required to
// preserve. A Document is exclusively owned by the request that rendered it.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// Set stores value under key. Setting an existing key replaces its value but
// keeps its original position.
func (d *Document) Set(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the destination keys in insertion order. The returned slice is
// a copy and safe to retain.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Len reports the number of keys in the document.
func (d *Document) Len() int {
	return len(d.keys)
}

// MarshalJSON encodes the document as a JSON object with keys in insertion
// order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := jsonutil.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := jsonutil.Marshal(d.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
