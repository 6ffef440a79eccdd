package biometric

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	a := make(FaceEncoding, EncodingLength)
	b := make(FaceEncoding, EncodingLength)

	d, err := Distance(a, b)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 0 {
		t.Errorf("identical encodings should have distance 0, got %f", d)
	}

	b[0] = 3
	b[1] = 4
	d, err = Distance(a, b)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if math.Abs(d-5) > 1e-12 {
		t.Errorf("expected distance 5, got %f", d)
	}
}

func TestDistanceRejectsBadLength(t *testing.T) {
	a := make(FaceEncoding, EncodingLength)
	short := make(FaceEncoding, 64)
	if _, err := Distance(a, short); err != ErrBadEncoding {
		t.Errorf("expected ErrBadEncoding, got %v", err)
	}
	if _, err := Distance(short, a); err != ErrBadEncoding {
		t.Errorf("expected ErrBadEncoding, got %v", err)
	}
}

func TestMatchTolerance(t *testing.T) {
	enrolled := make(FaceEncoding, EncodingLength)
	candidate := make(FaceEncoding, EncodingLength)
	candidate[0] = 0.3

	match, distance, err := Match(enrolled, candidate, 0.4)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !match {
		t.Errorf("distance %f should match under tolerance 0.4", distance)
	}

	candidate[0] = 0.5
	match, _, err = Match(enrolled, candidate, 0.4)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if match {
		t.Error("distance 0.5 should not match under tolerance 0.4")
	}
}

func TestEncodingBinaryRoundTrip(t *testing.T) {
	fe := make(FaceEncoding, EncodingLength)
	for i := range fe {
		fe[i] = float64(i) / 128.0
	}

	blob, err := fe.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	if len(blob) != EncodingLength*8 {
		t.Fatalf("expected %d byte blob, got %d", EncodingLength*8, len(blob))
	}

	back, err := UnmarshalEncoding(blob)
	if err != nil {
		t.Fatalf("UnmarshalEncoding failed: %v", err)
	}
	for i := range fe {
		if back[i] != fe[i] {
			t.Fatalf("component %d mismatch: %f != %f", i, back[i], fe[i])
		}
	}

	if _, err := UnmarshalEncoding(blob[:100]); err != ErrBadEncoding {
		t.Errorf("expected ErrBadEncoding for short blob, got %v", err)
	}
}
