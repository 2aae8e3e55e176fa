package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is fixed above the library default; verification reads the
// cost back out of the stored hash.
const BcryptCost = 12

var (
	ErrEmptyPassword     = errors.New("password must not be empty")
	ErrInvalidHashFormat = errors.New("invalid password hash format")
)

// HashPassword hashes a plaintext password with a per-call random salt. The
// returned string encodes algorithm, cost and salt, so verification needs no
// extra storage. The plaintext is never logged.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether password matches hash. A mismatch is not an
// error; only a hash that bcrypt cannot parse is.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrInvalidHashFormat
}
