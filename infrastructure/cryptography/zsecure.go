package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"
)

// Z-Secure package wire format, version 1:
//
//	[4B magic "ZSEC"][1B version][16B IV][32B HMAC-SHA256 tag][4B big-endian ciphertext length][ciphertext]
//
// The tag is computed over IV || ciphertext and verified in constant time
// before a single byte of plaintext is produced.

var packageMagic = []byte("ZSEC")

const (
	PackageVersion = 1

	ivLength     = 16
	tagLength    = 32
	headerLength = 4 + 1 + ivLength + tagLength + 4

	// MaxPlaintextSize bounds the payload accepted by EncryptPackage. The 4
	// byte length field allows more but image payloads have no business
	// being bigger than this.
	MaxPlaintextSize = 64 << 20
)

// EncryptPackage seals plaintext under a 256-bit key into a self-describing
// z-secure package. A fresh IV is drawn per call.
func EncryptPackage(plaintext []byte, key []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, ErrInvalidInput
	}
	if len(plaintext) == 0 || len(plaintext) > MaxPlaintextSize {
		return nil, ErrInvalidInput
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, ivLength)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	padded := padPKCS7(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	tag := packageTag(key, iv, ciphertext)

	out := make([]byte, 0, headerLength+len(ciphertext))
	out = append(out, packageMagic...)
	out = append(out, PackageVersion)
	out = append(out, iv...)
	out = append(out, tag...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(ciphertext)))
	out = append(out, ciphertext...)
	return out, nil
}

// DecryptPackage verifies and opens a z-secure package. The integrity tag
// is checked before decryption starts; on any mismatch ErrIntegrity is
// returned and no plaintext is released.
func DecryptPackage(blob []byte, key []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, ErrInvalidInput
	}
	if !IsPackage(blob) {
		return nil, ErrUnsupportedFormat
	}
	if len(blob) < headerLength {
		return nil, ErrUnsupportedFormat
	}

	iv := blob[5 : 5+ivLength]
	tag := blob[5+ivLength : 5+ivLength+tagLength]
	length := binary.BigEndian.Uint32(blob[5+ivLength+tagLength : headerLength])
	body := blob[headerLength:]
	if uint32(len(body)) != length || length == 0 || length%aes.BlockSize != 0 {
		return nil, ErrUnsupportedFormat
	}

	expected := packageTag(key, iv, body)
	if !hmac.Equal(tag, expected) {
		return nil, ErrIntegrity
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, body)

	return unpadPKCS7(plaintext)
}

// IsPackage reports whether blob carries a well-formed z-secure header.
// Used to auto-detect encrypt-vs-decrypt for arbitrary uploads.
func IsPackage(blob []byte) bool {
	if len(blob) < 5 {
		return false
	}
	for i := range packageMagic {
		if blob[i] != packageMagic[i] {
			return false
		}
	}
	return blob[4] == PackageVersion
}

func packageTag(key, iv, ciphertext []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(iv)
	mac.Write(ciphertext)
	return mac.Sum(nil)
}

func padPKCS7(data []byte) []byte {
	padding := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func unpadPKCS7(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrIntegrity
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > aes.BlockSize || padding > len(data) {
		return nil, ErrIntegrity
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, ErrIntegrity
		}
	}
	return data[:len(data)-padding], nil
}
