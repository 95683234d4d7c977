package domain

import (
	"time"

	"github.com/AlibekovAA/tasklist/backend/internal/common/crypto"
)

type ID string

type PasswordKind int

const (
	PasswordHashed PasswordKind = iota
	PasswordLegacyPlaintext
)

// Stored password_scheme values.
const (
	SchemeBcrypt    = "bcrypt"
	SchemePlaintext = "plaintext"
)

// Password is the stored password representation: either a bcrypt hash or,
// for records that predate hashing, the plaintext itself.
type Password struct {
	kind  PasswordKind
	value string
}

func HashedPassword(hash string) Password {
	return Password{kind: PasswordHashed, value: hash}
}

func LegacyPlaintextPassword(plaintext string) Password {
	return Password{kind: PasswordLegacyPlaintext, value: plaintext}
}

// PasswordFromStorage rebuilds the representation from a persisted value.
// Records without a scheme are classified by whether the value parses as a
// bcrypt hash, so an untagged legacy plaintext that is itself a valid bcrypt
// string is treated as hashed and cannot log in until its scheme is set.
func PasswordFromStorage(scheme, value string) Password {
	switch scheme {
	case SchemeBcrypt:
		return HashedPassword(value)
	case SchemePlaintext:
		return LegacyPlaintextPassword(value)
	}
	if crypto.IsBcryptHash(value) {
		return HashedPassword(value)
	}
	return LegacyPlaintextPassword(value)
}

func (p Password) Kind() PasswordKind { return p.kind }
func (p Password) Value() string      { return p.value }
func (p Password) IsHashed() bool     { return p.kind == PasswordHashed }

func (p Password) Scheme() string {
	if p.kind == PasswordLegacyPlaintext {
		return SchemePlaintext
	}
	return SchemeBcrypt
}

func (p Password) String() string {
	return "Password(" + p.Scheme() + ")"
}

type User struct {
	ID        ID
	Username  string
	Password  Password
	CreatedAt time.Time
}
