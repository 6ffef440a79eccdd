package liveness

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Point is a landmark coordinate normalised to the frame ([0,1] range).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EyeLandmarks carries the six points needed for the eye aspect ratio:
// the horizontal corner pair and two symmetric vertical opening pairs.
type EyeLandmarks struct {
	Outer  Point `json:"outer"`
	Inner  Point `json:"inner"`
	UpperA Point `json:"upperA"`
	LowerA Point `json:"lowerA"`
	UpperB Point `json:"upperB"`
	LowerB Point `json:"lowerB"`
}

// FaceBox is the detected face bounding box in pixels.
type FaceBox struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LandmarkFrame is one frame's worth of output from the landmark adapter:
// a fixed landmark set plus the grayscale pixels of the face region, or a
// no-face indicator.
type LandmarkFrame struct {
	FaceDetected bool      `json:"faceDetected"`
	CapturedAt   time.Time `json:"capturedAt"`

	LeftEye  EyeLandmarks `json:"leftEye"`
	RightEye EyeLandmarks `json:"rightEye"`

	NoseTip        Point `json:"noseTip"`
	Chin           Point `json:"chin"`
	LeftEyeCorner  Point `json:"leftEyeCorner"`
	RightEyeCorner Point `json:"rightEyeCorner"`

	Box FaceBox `json:"box"`

	// grayscale face region pixels, row major
	Gray       []byte `json:"gray"`
	GrayWidth  int    `json:"grayWidth"`
	GrayHeight int    `json:"grayHeight"`
}

// HeadPose holds estimated rotation angles in degrees.
type HeadPose struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// Verdict is the structured result of a finished liveness session.
type Verdict struct {
	Score        float64 `json:"score"`
	Blink        bool    `json:"blink"`
	Movement     bool    `json:"movement"`
	Texture      bool    `json:"texture"`
	Quality      bool    `json:"quality"`
	ChecksPassed int     `json:"checksPassed"`
	Passed       bool    `json:"passed"`
	Reason       *string `json:"reason,omitempty"`
}

// State of a liveness session.
type State int

const (
	StateInit State = iota
	StateBaseline
	StateCollecting
	StateScoring
	StatePassed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateBaseline:
		return "BASELINE"
	case StateCollecting:
		return "COLLECTING"
	case StateScoring:
		return "SCORING"
	case StatePassed:
		return "PASSED"
	case StateFailed:
		return "FAILED"
	}
	return "UNKNOWN"
}

var (
	// ErrLivenessTimeout is returned when the collection window closed
	// before the target frame count was reached.
	ErrLivenessTimeout = errors.New("liveness collection window exceeded")

	// ErrSessionFinished is returned when frames are pushed after a verdict.
	ErrSessionFinished = errors.New("liveness session already finished")

	// ErrSessionNotFinished is returned when a verdict is requested before
	// the session reached a terminal state.
	ErrSessionNotFinished = errors.New("liveness session still in progress")
)

// FailedError carries the detail of a computed-but-failed verdict.
type FailedError struct {
	Score        float64
	ChecksPassed int
	Reason       string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("liveness check failed: %s (score %.2f, %d/4 checks)", e.Reason, e.Score, e.ChecksPassed)
}

// Profile is the tunable threshold set for a deployment.
type Profile struct {
	BlinkEARThreshold float64
	EARFloor          float64
	HeadTurnDegrees   float64
	TextureVariance   float64
	MinFaceSize       int
	BrightnessMin     float64
	BrightnessMax     float64

	BaselineFrames int
	TargetFrames   int
	MaxMisses      int
	Deadline       time.Duration
}

func StandardProfile() Profile {
	return Profile{
		BlinkEARThreshold: 0.2,
		EARFloor:          0.15,
		HeadTurnDegrees:   15,
		TextureVariance:   50,
		MinFaceSize:       100,
		BrightnessMin:     50,
		BrightnessMax:     200,
		BaselineFrames:    3,
		TargetFrames:      12,
		MaxMisses:         3,
		Deadline:          10 * time.Second,
	}
}

func LenientProfile() Profile {
	p := StandardProfile()
	p.BlinkEARThreshold = 0.25
	p.HeadTurnDegrees = 10
	p.TextureVariance = 30
	p.MinFaceSize = 80
	p.BrightnessMin = 30
	p.BrightnessMax = 220
	p.MaxMisses = 5
	p.Deadline = 15 * time.Second
	return p
}

func StrictProfile() Profile {
	p := StandardProfile()
	p.BlinkEARThreshold = 0.18
	p.HeadTurnDegrees = 20
	p.TextureVariance = 80
	p.MinFaceSize = 120
	p.BrightnessMin = 60
	p.BrightnessMax = 190
	p.MaxMisses = 2
	p.Deadline = 8 * time.Second
	return p
}

// ProfileFromEnv picks the deployment profile from LIVENESS_PROFILE.
func ProfileFromEnv() Profile {
	switch os.Getenv("LIVENESS_PROFILE") {
	case "lenient":
		return LenientProfile()
	case "strict":
		return StrictProfile()
	default:
		return StandardProfile()
	}
}
