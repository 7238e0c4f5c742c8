package service

//go:generate mockgen -destination=../../mocks/mock_password_hasher.go -package=mocks github.com/vanjararamdhan/student-crud-api/internal/student/service PasswordHasher

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/vanjararamdhan/student-crud-api/pkg/constant"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// BcryptHasher salts and hashes with bcrypt; comparison is constant-time
// inside the library.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: constant.BcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Check reports whether password matches hash. A malformed stored hash is
// treated as a mismatch rather than an error.
func (h *BcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
