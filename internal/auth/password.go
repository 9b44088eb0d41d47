package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashAlgorithmTag = "PBKDF2-SHA256"

	defaultIterations = 100000
	saltSize          = 16
	keySize           = 32
)

// PasswordHasher derives and verifies password hashes in the self-describing
// format "PBKDF2-SHA256.{iterations}.{base64 salt}.{base64 key}". The stored
// string carries everything verification needs, so the iteration count can be
// raised for new writes without breaking existing rows.
type PasswordHasher struct {
	Iterations int
}

func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations <= 0 {
		iterations = defaultIterations
	}
	return &PasswordHasher{Iterations: iterations}
}

// Hash derives a key from the password with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, h.Iterations, keySize, sha256.New)

	return strings.Join([]string{
		hashAlgorithmTag,
		strconv.Itoa(h.Iterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	}, "."), nil
}

// Verify re-derives the key with the stored salt and iteration count and
// compares in constant time. Any stored value that is not in the delimited
// PBKDF2 format fails verification; legacy hashes require a password reset.
func (h *PasswordHasher) Verify(password, stored string) bool {
	parts := strings.Split(stored, ".")
	if len(parts) != 4 || parts[0] != hashAlgorithmTag {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}

	expected, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(expected) == 0 {
		return false
	}

	actual := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(actual, expected) == 1
}

// NewRefreshToken returns a cryptographically random opaque token.
func NewRefreshToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
