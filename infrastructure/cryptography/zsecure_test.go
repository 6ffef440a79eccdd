package cryptography

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeyLength)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("could not generate key: %v", err)
	}
	return key
}

func TestPackageRoundTrip(t *testing.T) {
	key := testKey(t)
	payloads := [][]byte{
		[]byte("a"),
		[]byte("exactly sixteen!"),
		bytes.Repeat([]byte{0xAB}, 1<<16),
		{0x00},
		bytes.Repeat([]byte{0x00}, 33),
	}

	for _, payload := range payloads {
		pkg, err := EncryptPackage(payload, key)
		if err != nil {
			t.Fatalf("EncryptPackage failed for %d bytes: %v", len(payload), err)
		}
		if !IsPackage(pkg) {
			t.Error("encrypted output not recognised as a package")
		}
		plain, err := DecryptPackage(pkg, key)
		if err != nil {
			t.Fatalf("DecryptPackage failed for %d bytes: %v", len(payload), err)
		}
		if !bytes.Equal(plain, payload) {
			t.Errorf("round trip mismatch for %d byte payload", len(payload))
		}
	}
}

func TestPackageFreshIV(t *testing.T) {
	key := testKey(t)
	payload := []byte("same plaintext")

	first, err := EncryptPackage(payload, key)
	if err != nil {
		t.Fatalf("EncryptPackage failed: %v", err)
	}
	second, err := EncryptPackage(payload, key)
	if err != nil {
		t.Fatalf("EncryptPackage failed: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Error("two encryptions of the same plaintext produced identical packages")
	}
}

func TestPackageTamperDetection(t *testing.T) {
	key := testKey(t)
	pkg, err := EncryptPackage([]byte("sensitive image bytes"), key)
	if err != nil {
		t.Fatalf("EncryptPackage failed: %v", err)
	}

	// flip one bit at a time across the IV, tag and ciphertext regions
	for i := 5; i < len(pkg); i++ {
		if i >= 5+ivLength+tagLength && i < headerLength {
			continue // length field is covered separately
		}
		tampered := make([]byte, len(pkg))
		copy(tampered, pkg)
		tampered[i] ^= 0x01

		plain, err := DecryptPackage(tampered, key)
		if err != ErrIntegrity {
			t.Fatalf("bit flip at offset %d: expected ErrIntegrity, got %v", i, err)
		}
		if plain != nil {
			t.Fatalf("bit flip at offset %d: plaintext released despite tamper", i)
		}
	}
}

func TestPackageTruncatedLength(t *testing.T) {
	key := testKey(t)
	pkg, err := EncryptPackage([]byte("payload"), key)
	if err != nil {
		t.Fatalf("EncryptPackage failed: %v", err)
	}

	if _, err := DecryptPackage(pkg[:headerLength-1], key); err != ErrUnsupportedFormat {
		t.Errorf("truncated header: expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := DecryptPackage(pkg[:len(pkg)-1], key); err != ErrUnsupportedFormat {
		t.Errorf("truncated body: expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPackageWrongKey(t *testing.T) {
	key := testKey(t)
	pkg, err := EncryptPackage([]byte("payload"), key)
	if err != nil {
		t.Fatalf("EncryptPackage failed: %v", err)
	}

	wrong := testKey(t)
	plain, err := DecryptPackage(pkg, wrong)
	if err != ErrIntegrity {
		t.Errorf("expected ErrIntegrity with wrong key, got %v", err)
	}
	if plain != nil {
		t.Error("plaintext released under wrong key")
	}
}

func TestIsPackage(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		want bool
	}{
		{"nil", nil, false},
		{"short", []byte("ZSE"), false},
		{"wrong magic", []byte("PNG\x00\x01"), false},
		{"wrong version", []byte("ZSEC\x02"), false},
		{"valid header", []byte("ZSEC\x01"), true},
		{"jpeg bytes", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPackage(tt.blob); got != tt.want {
				t.Errorf("IsPackage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncryptPackageValidation(t *testing.T) {
	if _, err := EncryptPackage([]byte("data"), make([]byte, 16)); err != ErrInvalidInput {
		t.Errorf("short key: expected ErrInvalidInput, got %v", err)
	}
	if _, err := EncryptPackage(nil, make([]byte, KeyLength)); err != ErrInvalidInput {
		t.Errorf("empty plaintext: expected ErrInvalidInput, got %v", err)
	}
}

func TestDecryptPackageRejectsForeignBlob(t *testing.T) {
	key := testKey(t)
	if _, err := DecryptPackage([]byte("just a plain file body"), key); err != ErrUnsupportedFormat {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
