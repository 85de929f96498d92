package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// TempPasswordLength is the length of generated temporary passwords.
const TempPasswordLength = 12

const tempPasswordAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// GenerateTempPassword returns a fixed-length one-time password drawn
// uniformly from letters, digits, and punctuation using crypto/rand.
func GenerateTempPassword() (string, error) {
	alphabetSize := big.NewInt(int64(len(tempPasswordAlphabet)))
	b := make([]byte, TempPasswordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("random source error: %w", err)
		}
		b[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(b), nil
}

// HashPassword produces a salted bcrypt hash. The salt is generated per call,
// so hashing the same input twice yields different output.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash error: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether candidate matches the stored bcrypt hash.
func CheckPassword(hash string, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
