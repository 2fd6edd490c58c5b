package security

import (
	"crypto/rand"
	"errors"
)

const secretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var errInvalidKeyLength = errors.New("key length must be positive")

// NewSecretKey returns a random alphanumeric key for signing short-lived cookies.
func NewSecretKey(length int) (string, error) {
	if length <= 0 {
		return "", errInvalidKeyLength
	}

	// Only bytes below the largest multiple of the alphabet size are used.
	cutoff := byte(256 - 256%len(secretKeyAlphabet))
	key := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(key) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if b >= cutoff {
				continue
			}
			key = append(key, secretKeyAlphabet[int(b)%len(secretKeyAlphabet)])
			if len(key) == length {
				break
			}
		}
	}
	return string(key), nil
}
