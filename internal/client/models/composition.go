package models

import (
	"encoding/json"
	"fmt"
)

// Composition is a saved work. Data is always the decoded payload.
type Composition struct {
	ID         string         `json:"id,omitempty"`
	IDUser     string         `json:"iduser,omitempty"`
	Public     bool           `json:"public,omitempty"`
	Opensource bool           `json:"opensource,omitempty"`
	Created    string         `json:"created,omitempty"`
	Updated    string         `json:"updated,omitempty"`
	Data       map[string]any `json:"data"`
}

// Clone returns a deep copy of c; the decoded payload is not shared.
func (c Composition) Clone() Composition {
	if c.Data != nil {
		c.Data = cloneValue(c.Data).(map[string]any)
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// Wire encodes c into its server form, with Data serialized to a string.
func (c Composition) Wire() (WireComposition, error) {
	data, err := json.Marshal(c.Data)
	if err != nil {
		return WireComposition{}, fmt.Errorf("encode composition %q data: %w", c.ID, err)
	}
	return WireComposition{
		ID:         WireString(c.ID),
		IDUser:     WireString(c.IDUser),
		Public:     flagString(c.Public),
		Opensource: flagString(c.Opensource),
		Created:    WireString(c.Created),
		Updated:    WireString(c.Updated),
		Data:       string(data),
	}, nil
}

// WireComposition is a composition as the server sends it: Data still
// holds the JSON-encoded payload.
type WireComposition struct {
	ID         WireString  `json:"id"`
	IDUser     WireString  `json:"iduser,omitempty"`
	Public     *WireString `json:"public,omitempty"`
	Opensource *WireString `json:"opensource,omitempty"`
	Created    WireString  `json:"created,omitempty"`
	Updated    WireString  `json:"updated,omitempty"`
	Data       string      `json:"data"`
}

// Decode parses the encoded payload and returns the local Composition.
func (w WireComposition) Decode() (Composition, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(w.Data), &data); err != nil {
		return Composition{}, fmt.Errorf("decode composition %q data: %w", string(w.ID), err)
	}
	c := Composition{
		ID:      string(w.ID),
		IDUser:  string(w.IDUser),
		Created: string(w.Created),
		Updated: string(w.Updated),
		Data:    data,
	}
	if w.Public != nil {
		c.Public = w.Public.Flag()
	}
	if w.Opensource != nil {
		c.Opensource = w.Opensource.Flag()
	}
	return c, nil
}

// DecodeCompositions decodes every entry, failing on the first bad payload.
// Nothing is returned unless all entries decode.
func DecodeCompositions(ws []WireComposition) ([]Composition, error) {
	out := make([]Composition, 0, len(ws))
	for _, w := range ws {
		c, err := w.Decode()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
