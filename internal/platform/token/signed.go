package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignedCodec is the optional tamper-evident token variant: an HS256 JWT
// carrying the user id. Enabled with SESSION_TOKEN_SIGNED=true. Like the
// plain codec it carries no expiry claim, so the cookie max-age remains the
// only lifetime bound, and decoding still never consults storage.
type SignedCodec struct {
	secret []byte
}

var _ Codec = (*SignedCodec)(nil)

// NewSignedCodec creates a codec signing with the provided secret.
func NewSignedCodec(secret string) *SignedCodec {
	return &SignedCodec{secret: []byte(secret)}
}

// Encode creates a signed token with standard claims plus a random jti, so
// repeated logins for the same user yield distinct tokens.
func (s *SignedCodec) Encode(userID uint) (string, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate token nonce: %w", err)
	}

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"jti": hex.EncodeToString(nonce),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and extracts the user id. Any parse or
// signature failure yields ok=false.
func (s *SignedCodec) Decode(tokStr string) (uint, bool) {
	tok, err := jwt.Parse(tokStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, false
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok || sub < 0 {
		return 0, false
	}
	return uint(sub), true
}
