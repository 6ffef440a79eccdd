package liveness

import "math"

// The four anti-spoofing checks are independent pure functions over the
// accumulated frame sequence, run as a table so checks can be added or
// removed without touching the state machine.

type checkFunc func(frames []*LandmarkFrame, baseline baselineRef, profile Profile) bool

type namedCheck struct {
	name string
	run  checkFunc
}

var checkTable = []namedCheck{
	{"blink", blinkCheck},
	{"movement", movementCheck},
	{"texture", textureCheck},
	{"quality", qualityCheck},
}

// eyeAspectRatio is (v1 + v2) / (2h): low while the eye is closed.
func eyeAspectRatio(eye EyeLandmarks) float64 {
	v1 := pointDistance(eye.UpperA, eye.LowerA)
	v2 := pointDistance(eye.UpperB, eye.LowerB)
	h := pointDistance(eye.Outer, eye.Inner)
	if h <= 0 {
		return 0
	}
	return (v1 + v2) / (2 * h)
}

func frameEAR(frame *LandmarkFrame) float64 {
	return (eyeAspectRatio(frame.LeftEye) + eyeAspectRatio(frame.RightEye)) / 2
}

// blinkCheck passes when the EAR dips below the blink threshold and
// recovers later in the sequence, or when the running average stays above
// a lenient floor (subjects who keep their eyes open for the whole short
// window are not penalised).
func blinkCheck(frames []*LandmarkFrame, _ baselineRef, profile Profile) bool {
	var sum float64
	var count int
	dipped := false
	recovered := false
	for _, frame := range frames {
		if !frame.FaceDetected {
			continue
		}
		ear := frameEAR(frame)
		sum += ear
		count++
		if ear < profile.BlinkEARThreshold {
			dipped = true
		} else if dipped {
			recovered = true
		}
	}
	if count == 0 {
		return false
	}
	if dipped && recovered {
		return true
	}
	return sum/float64(count) > profile.EARFloor
}

// headPose estimates pitch, yaw and roll from landmark geometry.
func headPose(frame *LandmarkFrame) HeadPose {
	eyeCenterX := (frame.LeftEyeCorner.X + frame.RightEyeCorner.X) / 2
	eyeCenterY := (frame.LeftEyeCorner.Y + frame.RightEyeCorner.Y) / 2

	yaw := (frame.NoseTip.X - eyeCenterX) * 180
	pitch := (frame.NoseTip.Y - eyeCenterY) * 180

	slope := (frame.RightEyeCorner.Y - frame.LeftEyeCorner.Y) /
		(frame.RightEyeCorner.X - frame.LeftEyeCorner.X + 1e-6)
	roll := math.Atan(slope) * 180 / math.Pi

	return HeadPose{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// movementCheck passes when any pose angle deviates from the baseline
// reference beyond the configured degree threshold at some point in the
// sequence. A flat photo held steady never moves relative to its own
// baseline.
func movementCheck(frames []*LandmarkFrame, baseline baselineRef, profile Profile) bool {
	for _, frame := range frames {
		if !frame.FaceDetected {
			continue
		}
		pose := headPose(frame)
		if math.Abs(pose.Yaw-baseline.Pose.Yaw) > profile.HeadTurnDegrees ||
			math.Abs(pose.Pitch-baseline.Pose.Pitch) > profile.HeadTurnDegrees ||
			math.Abs(pose.Roll-baseline.Pose.Roll) > profile.HeadTurnDegrees {
			return true
		}
	}
	return false
}

// textureCheck passes when the variance of the Laplacian response over the
// face region of a representative frame exceeds the configured threshold.
// Printed photos and screens present flat, low-variance texture.
func textureCheck(frames []*LandmarkFrame, _ baselineRef, profile Profile) bool {
	frame := representativeFrame(frames)
	if frame == nil {
		return false
	}
	return laplacianVariance(frame.Gray, frame.GrayWidth, frame.GrayHeight) > profile.TextureVariance
}

// representativeFrame picks the middle frame that carries face pixels.
func representativeFrame(frames []*LandmarkFrame) *LandmarkFrame {
	var candidates []*LandmarkFrame
	for _, frame := range frames {
		if frame.FaceDetected && len(frame.Gray) == frame.GrayWidth*frame.GrayHeight && frame.GrayWidth >= 3 && frame.GrayHeight >= 3 {
			candidates = append(candidates, frame)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[len(candidates)/2]
}

// laplacianVariance computes the variance of the 4-neighbour Laplacian
// over the interior of a grayscale region.
func laplacianVariance(gray []byte, width, height int) float64 {
	if width < 3 || height < 3 || len(gray) != width*height {
		return 0
	}

	responses := make([]float64, 0, (width-2)*(height-2))
	var sum float64
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			center := float64(gray[y*width+x])
			left := float64(gray[y*width+x-1])
			right := float64(gray[y*width+x+1])
			top := float64(gray[(y-1)*width+x])
			bottom := float64(gray[(y+1)*width+x])

			response := 4*center - (left + right + top + bottom)
			responses = append(responses, response)
			sum += response
		}
	}

	mean := sum / float64(len(responses))
	var variance float64
	for _, response := range responses {
		diff := response - mean
		variance += diff * diff
	}
	return variance / float64(len(responses))
}

// qualityCheck passes when the face bounding box meets the minimum pixel
// size and the average brightness of the face region sits inside the
// configured range.
func qualityCheck(frames []*LandmarkFrame, _ baselineRef, profile Profile) bool {
	frame := representativeFrame(frames)
	if frame == nil {
		return false
	}

	faceSize := frame.Box.Width
	if frame.Box.Height < faceSize {
		faceSize = frame.Box.Height
	}
	if faceSize < profile.MinFaceSize {
		return false
	}

	var sum float64
	for _, pixel := range frame.Gray {
		sum += float64(pixel)
	}
	brightness := sum / float64(len(frame.Gray))
	return brightness > profile.BrightnessMin && brightness < profile.BrightnessMax
}

func pointDistance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
