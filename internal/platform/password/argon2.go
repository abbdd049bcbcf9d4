// Package password provides one-way password hashing and verification.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Default argon2id parameters. Memory is in KiB (64 MiB total).
const (
	defaultMemory  = 64 * 1024
	defaultTime    = 3
	defaultThreads = 4
	saltLength     = 16
	keyLength      = 32
)

// Hasher defines the minimal hashing interface consumed by the auth usecase.
type Hasher interface {
	// Hash produces an encoded one-way hash of the password.
	Hash(password string) (string, error)
	// Verify reports whether the candidate password matches the encoded hash.
	// It returns false for any mismatch or malformed hash, never an error.
	Verify(encoded, password string) bool
}

// Argon2Hasher hashes passwords with argon2id. Zero-value fields fall back
// to the defaults above; tests may lower them to keep hashing cheap.
type Argon2Hasher struct {
	Memory  uint32
	Time    uint32
	Threads uint8
}

var _ Hasher = (*Argon2Hasher)(nil)

// NewArgon2Hasher creates a hasher with the default cost parameters.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{Memory: defaultMemory, Time: defaultTime, Threads: defaultThreads}
}

func (h *Argon2Hasher) params() (memory, time uint32, threads uint8) {
	memory, time, threads = h.Memory, h.Time, h.Threads
	if memory == 0 {
		memory = defaultMemory
	}
	if time == 0 {
		time = defaultTime
	}
	if threads == 0 {
		threads = defaultThreads
	}
	return memory, time, threads
}

// Hash derives an argon2id key from the password with a fresh random salt
// and encodes it in the standard PHC format:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<base64 salt>$<base64 key>
//
// The parameters are embedded in the output so Verify needs nothing else.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	memory, time, threads := h.params()

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, time, memory, threads, keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, time, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
	return encoded, nil
}

// Verify re-derives the key with the parameters embedded in the encoded hash
// and compares in constant time. Malformed input yields false, not an error,
// so a stored garbage hash behaves like a wrong password.
func (h *Argon2Hasher) Verify(encoded, password string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if memory == 0 || time == 0 || threads == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
