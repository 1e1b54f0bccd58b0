// Package jsonutil wraps bytedance/sonic behind the familiar encoding/json
// surface so callers get high-throughput encoding without importing sonic
// directly.
package jsonutil

import (
	"io"

	"github.com/bytedance/sonic"
)

// Marshal serialises v into a compact JSON byte slice.
func Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalIndent serialises v with the given prefix and indentation applied to
// every nested level.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return sonic.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses JSON data into the value pointed to by v.
func Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

// MarshalString serialises v into a JSON string.
func MarshalString(v any) (string, error) {
	return sonic.MarshalString(v)
}

// Encode streams v as JSON into w.
func Encode(w io.Writer, v any) error {
	return sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// Decode reads a single JSON value from r into v.
func Decode(r io.Reader, v any) error {
	return sonic.ConfigDefault.NewDecoder(r).Decode(v)
}
