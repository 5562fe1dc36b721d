// Package ids mints the opaque identifiers used for every graph entity.
package ids

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the 62-character alphanumeric alphabet used for all ids.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Length is the number of characters in a minted id.
// 62^21 keeps the collision probability negligible without a server-side
// uniqueness check; the graph's id constraints are the backstop.
const Length = 21

// New mints a new opaque identifier.
func New() string {
	return gonanoid.MustGenerate(Alphabet, Length)
}
