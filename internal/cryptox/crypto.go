// Package cryptox holds the password hashing used to protect share links.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// DeriveKey stretches a password with Argon2id. Parameters follow the
// recommended interactive profile (1 pass, 64 MiB, 4 lanes).
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword reports whether password matches the stored hash in
// constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	derived := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(derived, hash) == 1
}
