// Package id mints opaque identifiers. Session ids are the only secret this
// service issues itself; everything else comes from the remote platform.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns 32 lowercase hex characters from 16 random bytes.
// No separators or prefixes: the value goes into redis keys as-is.
func NewID32() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform itself is broken
		panic(err)
	}
	return hex.EncodeToString(b)
}
