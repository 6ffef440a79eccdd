package cryptography

import "errors"

type Hasher interface {
	HashString(data string, salt []byte) ([]byte, error)
	VerifyHashData(hash string, data string) bool
}

var (
	// ErrInvalidInput is returned when key derivation inputs are malformed
	// (wrong encoding length, empty email).
	ErrInvalidInput = errors.New("invalid key derivation input")

	// ErrKeyDerivation is returned when the derivation pipeline fails
	// internally. Should not occur under valid input.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrIntegrity is returned when a package's authentication tag does not
	// match. No plaintext is ever released alongside it.
	ErrIntegrity = errors.New("package integrity check failed")

	// ErrUnsupportedFormat is returned for blobs that do not carry a known
	// z-secure header.
	ErrUnsupportedFormat = errors.New("unsupported package format")
)
