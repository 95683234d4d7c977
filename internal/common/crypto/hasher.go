package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: constants.BcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = constants.BcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword(truncate(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare never panics on malformed hashes; bcrypt reports them as errors.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
}

// truncate keeps the first 72 bytes, the only part bcrypt ever reads.
func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > constants.BcryptMaxPasswordBytes {
		b = b[:constants.BcryptMaxPasswordBytes]
	}
	return b
}

// IsBcryptHash reports whether value parses as a bcrypt hash.
func IsBcryptHash(value string) bool {
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}
