package client

import (
	"encoding/json"
	"net/http"
)

// Result is the envelope of every response:
//
//	{"ok": true, "data": {...}}
//	{"ok": false, "code": 409, "msg": "email:duplicate"}
type Result struct {
	OK   bool            `json:"ok"`
	Code int             `json:"code,omitempty"`
	Msg  string          `json:"msg,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Normalize decodes a response body into a Result. A body that is not a
// JSON object yields {OK: false, Code: 500, Msg: <body>}; it never fails.
func Normalize(body []byte) Result {
	var r *Result
	if err := json.Unmarshal(body, &r); err != nil || r == nil {
		return Result{OK: false, Code: http.StatusInternalServerError, Msg: string(body)}
	}
	return *r
}
