package oasguard

import (
	"strings"

	ouri "github.com/chanced/oasguard/uri"
)

// Location is a position within a (possibly multi-document) tree: an
// absolute base URI plus a JSON pointer into the resource that URI names.
// It mirrors chanced-openapi's Location, generalized from a single in-memory
// document to the reference-resolving view SchemaPath provides.
type Location struct {
	base    ouri.URI
	pointer string // RFC 6901 JSON pointer, always "" or starting with "/"
}

// NewLocation builds a Location rooted at base with an empty pointer.
func NewLocation(base ouri.URI) Location {
	base.Fragment = ""
	base.RawFragment = ""
	return Location{base: base, pointer: ""}
}

// AbsoluteURI returns the URI of the resource this Location points into,
// without a fragment.
func (l Location) AbsoluteURI() ouri.URI {
	return l.base
}

// Pointer returns the RFC 6901 JSON pointer from the root of AbsoluteURI().
func (l Location) Pointer() string {
	return l.pointer
}

// String renders the Location as an absolute URI with a fragment.
func (l Location) String() string {
	u := l.base
	u.Fragment = l.pointer
	u.RawFragment = l.pointer
	return u.String()
}

func escapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

// Append returns a new Location one token deeper, escaping tok per RFC 6901.
func (l Location) Append(tok string) Location {
	l.pointer = l.pointer + "/" + escapeToken(tok)
	return l
}

// WithBase returns a new Location whose base URI has been replaced, used
// when a $ref crosses into a different resource.
func (l Location) WithBase(base ouri.URI, pointer string) Location {
	base.Fragment = ""
	base.RawFragment = ""
	return Location{base: base, pointer: pointer}
}
