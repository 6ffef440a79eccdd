package liveness

import (
	"math"
	"testing"
	"time"
)

// frame builders shared by the check and session tests

func openEye() EyeLandmarks {
	return EyeLandmarks{
		Outer:  Point{X: 0.30, Y: 0.500},
		Inner:  Point{X: 0.40, Y: 0.500},
		UpperA: Point{X: 0.33, Y: 0.485},
		LowerA: Point{X: 0.33, Y: 0.515},
		UpperB: Point{X: 0.37, Y: 0.485},
		LowerB: Point{X: 0.37, Y: 0.515},
	}
}

func closedEye() EyeLandmarks {
	eye := openEye()
	eye.UpperA.Y = 0.495
	eye.LowerA.Y = 0.505
	eye.UpperB.Y = 0.495
	eye.LowerB.Y = 0.505
	return eye
}

func flatGray(size int, value byte) []byte {
	gray := make([]byte, size*size)
	for i := range gray {
		gray[i] = value
	}
	return gray
}

func checkerGray(size int) []byte {
	gray := make([]byte, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				gray[y*size+x] = 255
			}
		}
	}
	return gray
}

func baseFrame(at time.Time) *LandmarkFrame {
	return &LandmarkFrame{
		FaceDetected:   true,
		CapturedAt:     at,
		LeftEye:        openEye(),
		RightEye:       openEye(),
		NoseTip:        Point{X: 0.50, Y: 0.50},
		Chin:           Point{X: 0.50, Y: 0.70},
		LeftEyeCorner:  Point{X: 0.40, Y: 0.45},
		RightEyeCorner: Point{X: 0.60, Y: 0.45},
		Box:            FaceBox{Width: 120, Height: 120},
		Gray:           flatGray(8, 128),
		GrayWidth:      8,
		GrayHeight:     8,
	}
}

func neutralBaseline() baselineRef {
	return baselineRef{Pose: headPose(baseFrame(time.Time{})), EAR: 0.3}
}

func TestEyeAspectRatio(t *testing.T) {
	open := eyeAspectRatio(openEye())
	if math.Abs(open-0.3) > 1e-9 {
		t.Errorf("open eye EAR = %f, want 0.3", open)
	}

	closed := eyeAspectRatio(closedEye())
	if math.Abs(closed-0.1) > 1e-9 {
		t.Errorf("closed eye EAR = %f, want 0.1", closed)
	}

	var degenerate EyeLandmarks
	if got := eyeAspectRatio(degenerate); got != 0 {
		t.Errorf("degenerate eye EAR = %f, want 0", got)
	}
}

func TestBlinkCheckDipAndRecovery(t *testing.T) {
	profile := StandardProfile()
	var frames []*LandmarkFrame
	for i := 0; i < 5; i++ {
		frames = append(frames, baseFrame(time.Time{}))
	}
	blinkFrame := baseFrame(time.Time{})
	blinkFrame.LeftEye = closedEye()
	blinkFrame.RightEye = closedEye()
	frames = append(frames, blinkFrame)
	frames = append(frames, baseFrame(time.Time{}), baseFrame(time.Time{}))

	if !blinkCheck(frames, neutralBaseline(), profile) {
		t.Error("dip below threshold with recovery should pass")
	}
}

func TestBlinkCheckLenientFloor(t *testing.T) {
	profile := StandardProfile()
	var frames []*LandmarkFrame
	for i := 0; i < 8; i++ {
		frames = append(frames, baseFrame(time.Time{}))
	}
	// no blink, but eyes clearly open the whole window
	if !blinkCheck(frames, neutralBaseline(), profile) {
		t.Error("high average EAR without a blink should pass")
	}
}

func TestBlinkCheckFailsOnConstantLowEAR(t *testing.T) {
	profile := StandardProfile()
	var frames []*LandmarkFrame
	for i := 0; i < 8; i++ {
		frame := baseFrame(time.Time{})
		frame.LeftEye = closedEye()
		frame.RightEye = closedEye()
		frames = append(frames, frame)
	}
	if blinkCheck(frames, neutralBaseline(), profile) {
		t.Error("constant low EAR with no recovery should fail")
	}
}

func TestMovementCheck(t *testing.T) {
	profile := StandardProfile()
	baseline := neutralBaseline()

	var still []*LandmarkFrame
	for i := 0; i < 8; i++ {
		still = append(still, baseFrame(time.Time{}))
	}
	if movementCheck(still, baseline, profile) {
		t.Error("a static head should fail the movement check")
	}

	turned := baseFrame(time.Time{})
	turned.NoseTip.X = 0.60 // 18 degrees of yaw relative to baseline
	moving := append(still, turned)
	if !movementCheck(moving, baseline, profile) {
		t.Error("an 18 degree head turn should pass the movement check")
	}
}

func TestHeadPoseRoll(t *testing.T) {
	frame := baseFrame(time.Time{})
	frame.RightEyeCorner.Y = 0.55 // tilted head
	pose := headPose(frame)
	if pose.Roll < 20 {
		t.Errorf("tilted eye line should produce a large roll, got %f", pose.Roll)
	}
}

func TestTextureCheck(t *testing.T) {
	profile := StandardProfile()

	flat := baseFrame(time.Time{})
	if textureCheck([]*LandmarkFrame{flat}, neutralBaseline(), profile) {
		t.Error("flat gray region should fail the texture check")
	}

	textured := baseFrame(time.Time{})
	textured.Gray = checkerGray(8)
	if !textureCheck([]*LandmarkFrame{textured}, neutralBaseline(), profile) {
		t.Error("high-variance region should pass the texture check")
	}

	missing := baseFrame(time.Time{})
	missing.Gray = nil
	missing.GrayWidth = 0
	missing.GrayHeight = 0
	if textureCheck([]*LandmarkFrame{missing}, neutralBaseline(), profile) {
		t.Error("frame without pixels should fail the texture check")
	}
}

func TestLaplacianVariance(t *testing.T) {
	if got := laplacianVariance(flatGray(8, 77), 8, 8); got != 0 {
		t.Errorf("flat region variance = %f, want 0", got)
	}
	if got := laplacianVariance(checkerGray(8), 8, 8); got < 1000 {
		t.Errorf("checkerboard variance = %f, want large", got)
	}
	if got := laplacianVariance([]byte{1, 2, 3}, 3, 3); got != 0 {
		t.Errorf("malformed region variance = %f, want 0", got)
	}
}

func TestQualityCheck(t *testing.T) {
	profile := StandardProfile()

	good := baseFrame(time.Time{})
	if !qualityCheck([]*LandmarkFrame{good}, neutralBaseline(), profile) {
		t.Error("large bright face should pass the quality check")
	}

	small := baseFrame(time.Time{})
	small.Box = FaceBox{Width: 50, Height: 50}
	if qualityCheck([]*LandmarkFrame{small}, neutralBaseline(), profile) {
		t.Error("undersized face should fail the quality check")
	}

	dark := baseFrame(time.Time{})
	dark.Gray = flatGray(8, 20)
	if qualityCheck([]*LandmarkFrame{dark}, neutralBaseline(), profile) {
		t.Error("underexposed face should fail the quality check")
	}

	blown := baseFrame(time.Time{})
	blown.Gray = flatGray(8, 240)
	if qualityCheck([]*LandmarkFrame{blown}, neutralBaseline(), profile) {
		t.Error("overexposed face should fail the quality check")
	}
}
