// Package models defines the client-side domain types of the composition
// service: the current user record, compositions, and their wire forms.
//
// Wire types (WireUser, WireComposition) mirror the server's JSON exactly:
// tri-state flags arrive as "1"/"0" strings and composition payloads arrive
// as JSON-encoded strings. Conversion to the local types happens once, at
// the decoding boundary, via WireUser.Update and WireComposition.Decode.
package models
