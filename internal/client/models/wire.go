package models

import (
	"encoding/json"
	"fmt"
)

// WireString is a scalar the server may send either as a JSON string or as
// a number (or, for flags, a boolean). It always decodes to its string form.
type WireString string

func (s *WireString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = WireString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = WireString(n.String())
		return nil
	}
	var flag bool
	if err := json.Unmarshal(b, &flag); err == nil {
		if flag {
			*s = "1"
		} else {
			*s = "0"
		}
		return nil
	}
	return fmt.Errorf("expected string, number or boolean, got %s", b)
}

// Flag converts a server tri-state string: "1" is true, anything else false.
func (s WireString) Flag() bool {
	return s == "1"
}

func flagString(b bool) *WireString {
	s := WireString("0")
	if b {
		s = "1"
	}
	return &s
}

// WireUser is the user object exactly as the server sends it. Nil pointers
// mark fields absent from the response.
type WireUser struct {
	ID           *WireString `json:"id,omitempty"`
	Username     *WireString `json:"username,omitempty"`
	Email        *WireString `json:"email,omitempty"`
	Firstname    *WireString `json:"firstname,omitempty"`
	Lastname     *WireString `json:"lastname,omitempty"`
	Avatar       *WireString `json:"avatar,omitempty"`
	EmailPublic  *WireString `json:"emailpublic,omitempty"`
	EmailChecked *WireString `json:"emailchecked,omitempty"`
}

func optString(s *WireString) Opt[string] {
	if s == nil {
		return Opt[string]{}
	}
	return Some(string(*s))
}

func optFlag(s *WireString) Opt[bool] {
	if s == nil {
		return Opt[bool]{}
	}
	return Some(s.Flag())
}

// Update converts the wire user into a partial update, turning the
// tri-state strings into booleans.
func (w WireUser) Update() UserUpdate {
	return UserUpdate{
		ID:           optString(w.ID),
		Username:     optString(w.Username),
		Email:        optString(w.Email),
		Firstname:    optString(w.Firstname),
		Lastname:     optString(w.Lastname),
		Avatar:       optString(w.Avatar),
		EmailPublic:  optFlag(w.EmailPublic),
		EmailChecked: optFlag(w.EmailChecked),
	}
}

// User returns a standalone User built from the wire form.
func (w WireUser) User() User {
	var u User
	u.Apply(w.Update())
	return u
}
