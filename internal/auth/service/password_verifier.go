package service

import (
	"crypto/subtle"

	commoncrypto "github.com/AlibekovAA/tasklist/backend/internal/common/crypto"
	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

type Verification int

const (
	Mismatch Verification = iota
	Match
	// MatchLegacy means a plaintext record matched and must be rehashed.
	MatchLegacy
)

type PasswordVerifier struct {
	hasher commoncrypto.PasswordHasher
}

func NewPasswordVerifier(hasher commoncrypto.PasswordHasher) *PasswordVerifier {
	return &PasswordVerifier{hasher: hasher}
}

func (v *PasswordVerifier) Hash(plaintext string) (userdomain.Password, error) {
	hash, err := v.hasher.Hash(plaintext)
	if err != nil {
		return userdomain.Password{}, err
	}
	return userdomain.HashedPassword(hash), nil
}

// Verify checks plaintext against the stored representation. A hashed record
// only ever matches through the hash comparison, so a submitted hash string
// is never accepted as a password.
func (v *PasswordVerifier) Verify(plaintext string, stored userdomain.Password) Verification {
	if v.hasher.Compare(stored.Value(), plaintext) == nil {
		return Match
	}

	if stored.Kind() != userdomain.PasswordLegacyPlaintext {
		return Mismatch
	}

	if subtle.ConstantTimeCompare([]byte(stored.Value()), []byte(plaintext)) == 1 {
		return MatchLegacy
	}
	return Mismatch
}
