package application

import (
	"encoding/xml"
	"io"
)

// newSecureDecoder builds the one streaming reader configuration shared by
// both roots, per spec.md §4.3: coalescing enabled (CharsetReader left nil,
// so only UTF-8 input is accepted and a document declaring any other
// encoding fails to decode), Strict decoding, and no custom
// Entity map beyond the empty one below. encoding/xml never fetches DTDs
// or resolves external entities on its own, so "DTDs disabled / external
// entities disabled" requires no extra hardening call — it is the stdlib
// decoder's default behavior, not an opt-in.
func newSecureDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = map[string]string{}
	return dec
}
