package cryptography

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func zeroEncoding() []float64 {
	return make([]float64, FaceEncodingLength)
}

func TestDeriveKeyLength(t *testing.T) {
	key, err := DeriveKey(zeroEncoding(), "a@b.com", make([]byte, 16))
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if len(key) != KeyLength {
		t.Errorf("expected %d byte key, got %d", KeyLength, len(key))
	}
}

func TestDeriveKeyDeterminism(t *testing.T) {
	encoding := make([]float64, FaceEncodingLength)
	for i := range encoding {
		encoding[i] = float64(i) * 0.0078125
	}
	salt := []byte("stable-account-salt")

	first, err := DeriveKey(encoding, "user@example.com", salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := DeriveKey(encoding, "user@example.com", salt)
		if err != nil {
			t.Fatalf("DeriveKey failed on repeat %d: %v", i, err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("key drifted on repeat %d", i)
		}
	}
}

// Reference vectors pinned against the fixed-point iteration. Any change
// to the arithmetic, sampling stride or stretching parameters fails here.
func TestDeriveKeyGoldenVectors(t *testing.T) {
	tests := []struct {
		name     string
		encoding []float64
		email    string
		salt     []byte
		want     string
	}{
		{
			name:     "zero encoding",
			encoding: zeroEncoding(),
			email:    "a@b.com",
			salt:     make([]byte, 16),
			want:     "0fbd68c00f55a8c79d51671b59ad9b006f17f2ce47f9120884e3d5c650179b0a",
		},
		{
			name: "half encoding",
			encoding: func() []float64 {
				enc := make([]float64, FaceEncodingLength)
				for i := range enc {
					enc[i] = 0.5
				}
				return enc
			}(),
			email: "carol@example.com",
			salt: func() []byte {
				salt, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
				return salt
			}(),
			want: "5ef695e63264f6573ca70599dc8ee2bd804218b29de59f2acc5c585b42d6a698",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveKey(tt.encoding, tt.email, tt.salt)
			if err != nil {
				t.Fatalf("DeriveKey failed: %v", err)
			}
			if got := hex.EncodeToString(key); got != tt.want {
				t.Errorf("key mismatch\n got %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestDeriveKeyInputSensitivity(t *testing.T) {
	base, err := DeriveKey(zeroEncoding(), "a@b.com", make([]byte, 16))
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}

	perturbed := zeroEncoding()
	perturbed[64] = 0.000001
	otherEncoding, err := DeriveKey(perturbed, "a@b.com", make([]byte, 16))
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if bytes.Equal(base, otherEncoding) {
		t.Error("changing the encoding did not change the key")
	}

	otherEmail, err := DeriveKey(zeroEncoding(), "b@b.com", make([]byte, 16))
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if bytes.Equal(base, otherEmail) {
		t.Error("changing the email did not change the key")
	}

	otherSalt, err := DeriveKey(zeroEncoding(), "a@b.com", []byte("another-salt-val"))
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if bytes.Equal(base, otherSalt) {
		t.Error("changing the salt did not change the key")
	}
}

func TestDeriveKeyInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		encoding []float64
		email    string
	}{
		{"short encoding", make([]float64, 127), "a@b.com"},
		{"long encoding", make([]float64, 129), "a@b.com"},
		{"nil encoding", nil, "a@b.com"},
		{"empty email", zeroEncoding(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DeriveKey(tt.encoding, tt.email, nil); err != ErrInvalidInput {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDeriveKeyEmptySaltFallback(t *testing.T) {
	a, err := DeriveKey(zeroEncoding(), "a@b.com", nil)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	b, err := DeriveKey(zeroEncoding(), "a@b.com", []byte{})
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("nil and empty salt should derive identically")
	}
}

func TestQmul(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{qOne, qOne, qOne},
		{2 * qOne, 3 * qOne, 6 * qOne},
		{-2 * qOne, 3 * qOne, -6 * qOne},
		{-2 * qOne, -3 * qOne, 6 * qOne},
		{qOne / 2, qOne / 2, qOne / 4},
		{0, qOne, 0},
	}
	for _, tt := range tests {
		got, ok := qmul(tt.a, tt.b)
		if !ok {
			t.Fatalf("qmul(%d, %d) overflowed", tt.a, tt.b)
		}
		if got != tt.want {
			t.Errorf("qmul(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestQmulOverflow(t *testing.T) {
	if _, ok := qmul(1<<62, 1<<62); ok {
		t.Error("expected overflow to be reported")
	}
}
