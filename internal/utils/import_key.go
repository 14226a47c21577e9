package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashImportKey hashes an import webhook key for storage in configuration.
func HashImportKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckImportKey compares a presented import key with its bcrypt hash.
func CheckImportKey(key, hash string) bool {
	if key == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
