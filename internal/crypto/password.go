// Package crypto verifies stored password hashes.
//
// Accounts are normally provisioned with bcrypt hashes. Argon2id
// hashes in the PHC-like "$argon2id$v=19$m=65536,t=1,p=4$salt$hash" form are
// accepted as well.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const argon2Prefix = "$argon2id$"

// Argon2 parameters used by HashArgon2.
const (
	argon2Time    uint32 = 1
	argon2Memory  uint32 = 64 * 1024
	argon2Threads uint8  = 4
	argon2KeyLen  uint32 = 32
	argon2SaltLen        = 16
)

var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword returns a bcrypt hash at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// HashArgon2 hashes the password with Argon2id and a random salt.
func HashArgon2(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// VerifyPassword reports whether password matches the stored hash. A mismatch
// is (false, nil); an unreadable hash is an error.
func VerifyPassword(storedHash, password string) (bool, error) {
	if strings.HasPrefix(storedHash, argon2Prefix) {
		return verifyArgon2(storedHash, password)
	}

	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

func verifyArgon2(storedHash, password string) (bool, error) {
	// ["", "argon2id", "v=19", "m=65536,t=1,p=4", salt, hash]
	sections := strings.Split(storedHash, "$")
	if len(sections) != 6 {
		return false, fmt.Errorf("%w: expected 6 sections, got %d", ErrMalformedHash, len(sections))
	}

	var version int
	if _, err := fmt.Sscanf(sections[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported argon2 version %d", ErrMalformedHash, version)
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(sections[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(sections[5])
	if err != nil {
		return false, fmt.Errorf("%w: hash: %v", ErrMalformedHash, err)
	}

	comparison := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(hash)))
	return subtle.ConstantTimeCompare(comparison, hash) == 1, nil
}
