// Package auth implements the credential core: argon2id password hashing
// and HS256 bearer token issuance and verification.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonMemory  = 64 * 1024
	argonTime    = 1
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Hasher produces and verifies salted argon2id password hashes. The encoded
// form embeds the algorithm parameters and salt, so verification needs
// nothing besides the hash string itself.
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash derives an argon2id hash of password. identity is the account the
// hash is being created for (normally the email); the current derivation
// does not fold it into the output, but every caller passes it so a future
// scheme can bind hashes to their account without changing call sites.
func (h *Hasher) Hash(identity, password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify reports whether password re-hashes to encoded using the parameters
// and salt embedded in it. A malformed encoded hash verifies false rather
// than erroring. The final comparison is constant-time.
func (h *Hasher) Verify(identity, encoded, password string) bool {
	sections := strings.Split(strings.TrimPrefix(encoded, "$"), "$")
	// Expected: ["argon2id", "v=19", "m=65536,t=1,p=4", salt, hash]
	if len(sections) != 5 || sections[0] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(sections[1], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(sections[2], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(sections[3])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1
}
