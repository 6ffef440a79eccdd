package cryptography

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/bits"

	"golang.org/x/crypto/pbkdf2"
)

// Key derivation runs a Lorenz attractor seeded from the biometric
// encoding and account email, samples the trajectory into a raw byte
// stream and stretches it through PBKDF2. The whole iteration runs in
// Q32.32 fixed-point so the result is bit-identical on every platform;
// IEEE floating point would drift across architectures and compilers.

const (
	// FaceEncodingLength is the number of components in a face encoding.
	FaceEncodingLength = 128

	// KeyLength is the derived key size in bytes (256 bits).
	KeyLength = 32

	chaosIterations  = 1000
	chaosTransient   = 100
	chaosSampleEvery = 25

	pbkdf2Iterations = 100000
)

// Q32.32 fixed point.
const (
	qFracBits       = 32
	qOne      int64 = 1 << qFracBits
)

// lorenz system constants, Q32.32
const (
	qSigma int64 = 10 * qOne
	qRho   int64 = 28 * qOne
	qBeta  int64 = (8 * qOne) / 3
	qDt    int64 = qOne / 100 // 0.01
)

// qmul multiplies two Q32.32 values using a 128-bit intermediate.
// The second return value reports overflow of the int64 result range.
func qmul(a, b int64) (int64, bool) {
	neg := (a < 0) != (b < 0)
	ua := uint64(a)
	if a < 0 {
		ua = uint64(-a)
	}
	ub := uint64(b)
	if b < 0 {
		ub = uint64(-b)
	}
	hi, lo := bits.Mul64(ua, ub)
	if hi>>qFracBits != 0 {
		return 0, false
	}
	r := (hi << (64 - qFracBits)) | (lo >> qFracBits)
	if r > uint64(math.MaxInt64) {
		return 0, false
	}
	if neg {
		return -int64(r), true
	}
	return int64(r), true
}

func qabs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

// DeriveKey turns a 128-component face encoding, the account email and the
// persistent account salt into a 256-bit symmetric key. The same inputs
// always produce the same key; nothing is persisted or mutated.
func DeriveKey(encoding []float64, email string, salt []byte) ([]byte, error) {
	if len(encoding) != FaceEncodingLength || email == "" {
		return nil, ErrInvalidInput
	}

	seed := chaosSeed(encoding, email)
	raw, ok := chaosSequence(seed)
	if !ok {
		return nil, ErrKeyDerivation
	}

	// collapse the sampled trajectory together with the seed material so a
	// trajectory collision alone cannot produce a key collision
	mixed := sha256.New()
	mixed.Write(seed[:])
	mixed.Write(raw)
	chaosKey := mixed.Sum(nil)

	if len(salt) == 0 {
		emailDigest := sha256.Sum256([]byte(email))
		salt = emailDigest[:16]
	}

	return pbkdf2.Key(chaosKey, salt, pbkdf2Iterations, KeyLength, sha256.New), nil
}

// chaosSeed reduces the encoding and email into 32 bytes of seed material.
func chaosSeed(encoding []float64, email string) [32]byte {
	h := sha256.New()
	buf := make([]byte, 8)
	for _, component := range encoding {
		binary.BigEndian.PutUint64(buf, math.Float64bits(component))
		h.Write(buf)
	}
	h.Write([]byte(email))
	var seed [32]byte
	copy(seed[:], h.Sum(nil))
	return seed
}

// chaosSequence iterates the Lorenz system from initial conditions packed
// out of the seed, discards the initial transient and samples the
// trajectory at a fixed stride into a raw byte stream.
func chaosSequence(seed [32]byte) ([]byte, bool) {
	// initial state in [0, 1), 1/1000 resolution, mirroring the phase-space
	// reduction of the seed digest
	x := int64(binary.BigEndian.Uint64(seed[0:8])%1000) * (qOne / 1000)
	y := int64(binary.BigEndian.Uint64(seed[8:16])%1000) * (qOne / 1000)
	z := int64(binary.BigEndian.Uint64(seed[16:24])%1000) * (qOne / 1000)

	var stream []byte
	for i := 0; i < chaosIterations; i++ {
		// dx = σ(y−x), dy = x(ρ−z)−y, dz = xy−βz
		dx, ok1 := qmul(qSigma, y-x)
		dy1, ok2 := qmul(x, qRho-z)
		dz1, ok3 := qmul(x, y)
		dz2, ok4 := qmul(qBeta, z)
		if !(ok1 && ok2 && ok3 && ok4) {
			return nil, false
		}
		dy := dy1 - y
		dz := dz1 - dz2

		sx, ok1 := qmul(dx, qDt)
		sy, ok2 := qmul(dy, qDt)
		sz, ok3 := qmul(dz, qDt)
		if !(ok1 && ok2 && ok3) {
			return nil, false
		}
		x += sx
		y += sy
		z += sz

		if i < chaosTransient || (i-chaosTransient)%chaosSampleEvery != 0 {
			continue
		}

		p1, ok1 := qmul(qabs(x), qabs(y))
		p2, ok2 := qmul(p1, qabs(z))
		if !(ok1 && ok2) {
			return nil, false
		}
		// sample mid fractional bits of |x||y||z|
		stream = append(stream, byte(p2>>20))
	}

	if len(stream) < KeyLength {
		return nil, false
	}
	return stream, true
}
