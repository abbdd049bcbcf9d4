// Package token encodes and decodes session tokens.
//
// The default codec is intentionally unsigned: a token is the user id plus a
// random nonce, and possession of a well-formed token for user X is treated
// as proof of authentication as X. There is no server-side record, no
// revocation and no expiry beyond the cookie's own max-age. Integrity relies
// on the HttpOnly cookie and transport confidentiality, not on a MAC. A
// signed variant exists in this package for deployments that want
// tamper-evidence (see SignedCodec).
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// nonceLength is the number of random bytes per token (128 bits of entropy).
const nonceLength = 16

// Codec issues and validates session tokens.
type Codec interface {
	// Encode produces a fresh opaque token for the user. Each call draws new
	// entropy, so two tokens for the same user never collide.
	Encode(userID uint) (string, error)
	// Decode recovers the user id from a token. It is a pure syntactic
	// operation: it never consults storage, and reports ok=false for any
	// malformed input instead of failing.
	Decode(tok string) (userID uint, ok bool)
}

// PlainCodec implements the "<userId>:<hex nonce>" token scheme.
type PlainCodec struct{}

var _ Codec = PlainCodec{}

// Encode returns "<userId>:<hex(16 random bytes)>".
func (PlainCodec) Encode(userID uint) (string, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate token nonce: %w", err)
	}
	return fmt.Sprintf("%d:%s", userID, hex.EncodeToString(nonce)), nil
}

// Decode splits on ":" and parses the id part. Empty tokens, a missing or
// extra delimiter, and a non-numeric id all yield ok=false.
func (PlainCodec) Decode(tok string) (uint, bool) {
	if tok == "" {
		return 0, false
	}
	parts := strings.Split(tok, ":")
	if len(parts) != 2 {
		return 0, false
	}
	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
