// Package settings models editor user settings as an insertion-ordered JSON
// object and provides tolerant reading, shallow merging, and atomic writing.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Map is a JSON object with string keys that preserves insertion order.
// Values are kept as raw JSON so arbitrary nested shapes survive a
// read-merge-write cycle untouched.
type Map struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: map[string]json.RawMessage{}}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the raw value for key and whether it is present.
func (m *Map) Get(key string) (json.RawMessage, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key, appending the key if it is new.
func (m *Map) Set(key string, value json.RawMessage) {
	if m.values == nil {
		m.values = map[string]json.RawMessage{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetValue marshals value and stores it under key.
func (m *Map) SetValue(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.Set(key, json.RawMessage(data))
	return nil
}

// Merge returns a new Map holding current with payload shallow-merged over it.
// Payload keys override same-named keys in current; keys unique to current are
// preserved, and new keys keep the payload's order at the end.
func Merge(current, payload *Map) *Map {
	merged := NewMap()
	if current != nil {
		for _, key := range current.keys {
			merged.Set(key, current.values[key])
		}
	}
	if payload != nil {
		for _, key := range payload.keys {
			merged.Set(key, payload.values[key])
		}
	}
	return merged
}

// MarshalJSON renders the object with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(m.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, recording key order as encountered.
// A duplicate key keeps its first position and takes the last value.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("settings: expected object, got %v", tok)
	}

	m.keys = nil
	m.values = map[string]json.RawMessage{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("settings: non-string key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		m.Set(key, raw)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalIndent renders the object pretty-printed with two-space indentation.
func (m *Map) MarshalIndent() ([]byte, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
