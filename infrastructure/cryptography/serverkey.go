package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Server-key encryption for data at rest that must be readable without the
// owner's biometric (the enrolled face encoding itself). Uses the ENC_KEY
// environment secret, not a derived key.

func EncryptData(payload []byte, keyString *string) ([]byte, error) {
	if keyString == nil {
		env := os.Getenv("ENC_KEY")
		keyString = &env
	}

	key, err := hex.DecodeString(*keyString)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	ciphertext := make([]byte, aes.BlockSize+len(payload))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], payload)

	return ciphertext, nil
}

func DecryptData(payload []byte, keyString *string) ([]byte, error) {
	if keyString == nil {
		env := os.Getenv("ENC_KEY")
		keyString = &env
	}

	key, err := hex.DecodeString(*keyString)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(payload) < aes.BlockSize {
		return nil, fmt.Errorf("ciphertext too short: must be at least %d bytes", aes.BlockSize)
	}

	iv := payload[:aes.BlockSize]
	body := payload[aes.BlockSize:]

	stream := cipher.NewCFBDecrypter(block, iv)
	plaintext := make([]byte, len(body))
	stream.XORKeyStream(plaintext, body)

	return plaintext, nil
}
