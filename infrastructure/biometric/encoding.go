package biometric

import (
	"encoding/binary"
	"errors"
	"math"
)

// FaceEncoding is a fixed 128-component descriptor produced by the face
// model. Immutable once captured; re-enrollment replaces it wholesale.
type FaceEncoding []float64

const EncodingLength = 128

var ErrBadEncoding = errors.New("face encoding must have 128 components")

func (fe FaceEncoding) Validate() error {
	if len(fe) != EncodingLength {
		return ErrBadEncoding
	}
	return nil
}

// Distance is the euclidean distance between two encodings. Lower means
// more similar.
func Distance(a, b FaceEncoding) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i < EncodingLength; i++ {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// Match reports whether two encodings belong to the same subject under the
// given distance tolerance.
func Match(enrolled, candidate FaceEncoding, tolerance float64) (bool, float64, error) {
	distance, err := Distance(enrolled, candidate)
	if err != nil {
		return false, 0, err
	}
	return distance <= tolerance, distance, nil
}

// MarshalBinary packs the encoding as 128 little-endian float64 values,
// the layout the face model emits.
func (fe FaceEncoding) MarshalBinary() ([]byte, error) {
	if err := fe.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, EncodingLength*8)
	for i, component := range fe {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(component))
	}
	return out, nil
}

func UnmarshalEncoding(blob []byte) (FaceEncoding, error) {
	if len(blob) != EncodingLength*8 {
		return nil, ErrBadEncoding
	}
	fe := make(FaceEncoding, EncodingLength)
	for i := range fe {
		fe[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return fe, nil
}
