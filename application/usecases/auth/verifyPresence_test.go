package auth_usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"zsecure.app/entities"
	"zsecure.app/infrastructure/liveness"
)

func captureFrames(start time.Time, n int) []liveness.LandmarkFrame {
	frames := make([]liveness.LandmarkFrame, n)
	for i := range frames {
		frames[i] = liveness.LandmarkFrame{
			FaceDetected: true,
			CapturedAt:   start.Add(time.Duration(i) * 200 * time.Millisecond),
		}
	}
	return frames
}

// biometric.FaceModel is left uninitialised in these tests: a session that
// settles without passing must never reach the face match or anything
// downstream of it, so reaching it here would panic.

func TestVerifyFacePresenceClientDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := VerifyFacePresence(ctx, &entities.User{}, "aW1hZ2U=", captureFrames(time.Now(), 12))
	var failed *liveness.FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
	if result == nil || result.Verdict == nil || result.Verdict.Passed {
		t.Fatal("a disconnected capture must settle in a failed verdict")
	}
	if result.Matched || result.Enrolled != nil {
		t.Fatal("a disconnected capture must not perform a face match")
	}
}

func TestVerifyFacePresenceLateFrameTimeout(t *testing.T) {
	start := time.Now()
	frames := captureFrames(start, 5)
	frames = append(frames, liveness.LandmarkFrame{
		FaceDetected: true,
		CapturedAt:   start.Add(11 * time.Second),
	})

	result, err := VerifyFacePresence(context.Background(), &entities.User{}, "aW1hZ2U=", frames)
	if !errors.Is(err, liveness.ErrLivenessTimeout) {
		t.Fatalf("expected ErrLivenessTimeout, got %v", err)
	}
	if result == nil || result.Verdict == nil || result.Verdict.Passed {
		t.Fatal("a timed out capture must settle in a failed verdict")
	}
}
