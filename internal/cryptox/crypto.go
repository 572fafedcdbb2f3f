// Package cryptox derives password verifiers for stored user credentials.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/chrisdutt24/lifeadmin/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of freshly generated password salts.
const SaltSize = 16

// DeriveMasterKey stretches a password with argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key so the key itself is never stored.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// HashPassword generates a new salt and the matching verifier.
func HashPassword(password string) (salt, verifier []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	key := DeriveMasterKey([]byte(password), salt)
	defer common.WipeByteArray(key)
	return salt, MakeVerifier(key)
}

// VerifyPassword reports whether password matches the stored salt and verifier.
func VerifyPassword(password string, salt, verifier []byte) bool {
	if len(salt) == 0 || len(verifier) == 0 {
		return false
	}
	key := DeriveMasterKey([]byte(password), salt)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(MakeVerifier(key), verifier) == 1
}
