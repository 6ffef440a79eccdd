package liveness

import (
	"context"
	"errors"
	"testing"
	"time"
)

func pushFrames(t *testing.T, session *Session, frames []*LandmarkFrame) {
	t.Helper()
	for _, frame := range frames {
		if err := session.PushFrame(frame); err != nil {
			t.Fatalf("PushFrame failed: %v", err)
		}
	}
}

// sequence builders for full sessions (12 frames, 3 of them baseline)

func sequenceAt(start time.Time, build func(i int) *LandmarkFrame) []*LandmarkFrame {
	frames := make([]*LandmarkFrame, 0, 12)
	for i := 0; i < 12; i++ {
		frame := build(i)
		frame.CapturedAt = start.Add(time.Duration(i) * 200 * time.Millisecond)
		frames = append(frames, frame)
	}
	return frames
}

// allFailSequence satisfies none of the four checks: eyes stay shut, head
// stays still, texture is flat and the face box is undersized.
func allFailSequence(start time.Time) []*LandmarkFrame {
	return sequenceAt(start, func(int) *LandmarkFrame {
		frame := baseFrame(time.Time{})
		frame.LeftEye = closedEye()
		frame.RightEye = closedEye()
		frame.Box = FaceBox{Width: 50, Height: 50}
		return frame
	})
}

// blinkQualitySequence satisfies exactly blink and quality.
func blinkQualitySequence(start time.Time) []*LandmarkFrame {
	return sequenceAt(start, func(int) *LandmarkFrame {
		return baseFrame(time.Time{})
	})
}

// allPassSequence satisfies all four checks.
func allPassSequence(start time.Time) []*LandmarkFrame {
	return sequenceAt(start, func(i int) *LandmarkFrame {
		frame := baseFrame(time.Time{})
		frame.Gray = checkerGray(8)
		if i == 6 {
			frame.LeftEye = closedEye()
			frame.RightEye = closedEye()
		}
		if i == 8 {
			frame.NoseTip.X = 0.60
		}
		return frame
	})
}

func TestSessionStateProgression(t *testing.T) {
	session := NewSession(StandardProfile())
	if session.State() != StateInit {
		t.Fatalf("new session state = %s, want INIT", session.State())
	}

	start := time.Now()
	frames := blinkQualitySequence(start)

	if err := session.PushFrame(frames[0]); err != nil {
		t.Fatalf("PushFrame failed: %v", err)
	}
	if session.State() != StateBaseline {
		t.Errorf("after first frame state = %s, want BASELINE", session.State())
	}

	pushFrames(t, session, frames[1:4])
	if session.State() != StateCollecting {
		t.Errorf("after baseline state = %s, want COLLECTING", session.State())
	}

	pushFrames(t, session, frames[4:])
	if session.State() != StatePassed {
		t.Errorf("after full sequence state = %s, want PASSED", session.State())
	}
}

func TestSessionVerdictBoundaries(t *testing.T) {
	start := time.Now()
	tests := []struct {
		name         string
		frames       []*LandmarkFrame
		wantScore    float64
		wantPassed   bool
		wantChecks   int
		wantBlink    bool
		wantQuality  bool
		wantMovement bool
		wantTexture  bool
	}{
		{
			name:       "zero of four",
			frames:     allFailSequence(start),
			wantScore:  0.0,
			wantPassed: false,
			wantChecks: 0,
		},
		{
			name:        "blink and quality only",
			frames:      blinkQualitySequence(start),
			wantScore:   0.5,
			wantPassed:  true,
			wantChecks:  2,
			wantBlink:   true,
			wantQuality: true,
		},
		{
			name:         "all four",
			frames:       allPassSequence(start),
			wantScore:    1.0,
			wantPassed:   true,
			wantChecks:   4,
			wantBlink:    true,
			wantQuality:  true,
			wantMovement: true,
			wantTexture:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(StandardProfile())
			for _, frame := range tt.frames {
				session.PushFrame(frame)
			}
			verdict, err := session.Verdict()
			if tt.wantPassed && err != nil {
				t.Fatalf("Verdict returned error: %v", err)
			}
			if !tt.wantPassed {
				var failed *FailedError
				if !errors.As(err, &failed) {
					t.Fatalf("expected FailedError, got %v", err)
				}
			}
			if verdict == nil {
				t.Fatal("expected a verdict")
			}
			if verdict.Score != tt.wantScore {
				t.Errorf("score = %f, want %f", verdict.Score, tt.wantScore)
			}
			if verdict.Passed != tt.wantPassed {
				t.Errorf("passed = %v, want %v", verdict.Passed, tt.wantPassed)
			}
			if verdict.ChecksPassed != tt.wantChecks {
				t.Errorf("checksPassed = %d, want %d", verdict.ChecksPassed, tt.wantChecks)
			}
			if verdict.Blink != tt.wantBlink || verdict.Quality != tt.wantQuality ||
				verdict.Movement != tt.wantMovement || verdict.Texture != tt.wantTexture {
				t.Errorf("check flags = {blink:%v movement:%v texture:%v quality:%v}",
					verdict.Blink, verdict.Movement, verdict.Texture, verdict.Quality)
			}
		})
	}
}

func TestSessionMissCounter(t *testing.T) {
	session := NewSession(StandardProfile())
	start := time.Now()

	pushFrames(t, session, blinkQualitySequence(start)[:5])

	missing := &LandmarkFrame{CapturedAt: start.Add(2 * time.Second)}
	for i := 0; i < 4; i++ {
		session.PushFrame(missing)
	}

	if session.State() != StateFailed {
		t.Fatalf("state = %s, want FAILED after exceeding miss threshold", session.State())
	}
	_, err := session.Verdict()
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
	if failed.Reason != "subject not continuously present" {
		t.Errorf("reason = %q", failed.Reason)
	}
}

func TestSessionDeadline(t *testing.T) {
	session := NewSession(StandardProfile())
	start := time.Now()

	pushFrames(t, session, blinkQualitySequence(start)[:5])

	late := baseFrame(time.Time{})
	late.CapturedAt = start.Add(11 * time.Second)
	if err := session.PushFrame(late); !errors.Is(err, ErrLivenessTimeout) {
		t.Fatalf("expected ErrLivenessTimeout, got %v", err)
	}
	if session.State() != StateFailed {
		t.Errorf("state = %s, want FAILED", session.State())
	}
}

func TestSessionFinalizeInsufficientFrames(t *testing.T) {
	session := NewSession(StandardProfile())
	start := time.Now()

	pushFrames(t, session, blinkQualitySequence(start)[:6])

	_, err := session.Finalize(start.Add(2 * time.Second))
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}

	_, err = session.Verdict()
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError from Verdict, got %v", err)
	}
}

func TestSessionFinalizeTimeout(t *testing.T) {
	session := NewSession(StandardProfile())
	start := time.Now()

	pushFrames(t, session, blinkQualitySequence(start)[:6])

	_, err := session.Finalize(start.Add(time.Minute))
	if !errors.Is(err, ErrLivenessTimeout) {
		t.Fatalf("expected ErrLivenessTimeout, got %v", err)
	}
}

func TestSessionAbort(t *testing.T) {
	session := NewSession(StandardProfile())
	start := time.Now()
	pushFrames(t, session, blinkQualitySequence(start)[:6])

	if session.State() != StateCollecting {
		t.Fatalf("state = %s, want COLLECTING", session.State())
	}
	session.Abort("client disconnected")

	if session.State() != StateFailed {
		t.Errorf("state = %s, want FAILED after abort", session.State())
	}
	verdict, err := session.Verdict()
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
	if verdict == nil || verdict.Passed {
		t.Error("aborted session must carry a failed verdict")
	}

	// terminal state is sticky
	if err := session.PushFrame(baseFrame(time.Now())); err != ErrSessionFinished {
		t.Errorf("expected ErrSessionFinished, got %v", err)
	}
}

func TestReplayFrames(t *testing.T) {
	verdict, err := ReplayFrames(context.Background(), StandardProfile(), deref(blinkQualitySequence(time.Now())))
	if err != nil {
		t.Fatalf("ReplayFrames failed: %v", err)
	}
	if !verdict.Passed || verdict.ChecksPassed != 2 {
		t.Errorf("verdict = %+v, want passed with 2 checks", verdict)
	}
}

func TestReplayFramesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	verdict, err := ReplayFrames(ctx, StandardProfile(), deref(allPassSequence(time.Now())))
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
	if failed.Reason != "client disconnected" {
		t.Errorf("reason = %q", failed.Reason)
	}
	if verdict == nil || verdict.Passed {
		t.Error("a cancelled replay must settle in a failed verdict")
	}
}

func TestReplayFramesLateFrameTimeout(t *testing.T) {
	start := time.Now()
	frames := deref(blinkQualitySequence(start)[:5])
	late := baseFrame(start.Add(11 * time.Second))
	frames = append(frames, *late)

	verdict, err := ReplayFrames(context.Background(), StandardProfile(), frames)
	if !errors.Is(err, ErrLivenessTimeout) {
		t.Fatalf("expected ErrLivenessTimeout, got %v", err)
	}
	if verdict == nil || verdict.Passed {
		t.Error("a timed out replay must settle in a failed verdict")
	}
}

func deref(frames []*LandmarkFrame) []LandmarkFrame {
	out := make([]LandmarkFrame, 0, len(frames))
	for _, frame := range frames {
		out = append(out, *frame)
	}
	return out
}

func TestSessionVerdictBeforeFinish(t *testing.T) {
	session := NewSession(StandardProfile())
	if _, err := session.Verdict(); err != ErrSessionNotFinished {
		t.Errorf("expected ErrSessionNotFinished, got %v", err)
	}
}

func TestSessionFinalizeEmpty(t *testing.T) {
	session := NewSession(StandardProfile())
	verdict, err := session.Finalize(time.Now())
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
	if verdict == nil || verdict.Passed {
		t.Error("empty session must fail closed")
	}
}
