package liveness

import (
	"context"
	"errors"
	"sync"
	"time"
)

// baselineRef is the reference state established during BASELINE and
// carried through the rest of the session.
type baselineRef struct {
	Pose HeadPose
	EAR  float64
}

// Session is a bounded state machine over a short stream of landmark
// frames. One session per authentication attempt; frames are discarded as
// soon as a verdict is produced and never retained.
//
//	INIT → BASELINE → COLLECTING → SCORING → PASSED | FAILED
type Session struct {
	mu sync.Mutex

	profile Profile
	state   State

	frames    []*LandmarkFrame
	missCount int

	baselineSamples []*LandmarkFrame
	baseline        baselineRef

	windowStart time.Time
	verdict     *Verdict
	failure     error
}

func NewSession(profile Profile) *Session {
	return &Session{
		profile: profile,
		state:   StateInit,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PushFrame feeds one frame through the state machine. The session scores
// itself as soon as the target frame count is reached; pushing past a
// terminal state returns ErrSessionFinished.
func (s *Session) PushFrame(frame *LandmarkFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StatePassed, StateFailed, StateScoring:
		return ErrSessionFinished
	case StateInit:
		s.state = StateBaseline
		s.windowStart = frame.CapturedAt
	}

	if !s.windowStart.IsZero() && frame.CapturedAt.Sub(s.windowStart) > s.profile.Deadline {
		s.failLocked(ErrLivenessTimeout, "collection window exceeded")
		return ErrLivenessTimeout
	}

	if !frame.FaceDetected {
		s.missCount++
		if s.missCount > s.profile.MaxMisses {
			s.failLocked(&FailedError{Reason: "subject not continuously present"}, "subject not continuously present")
		}
		return nil
	}

	switch s.state {
	case StateBaseline:
		s.baselineSamples = append(s.baselineSamples, frame)
		s.frames = append(s.frames, frame)
		if len(s.baselineSamples) >= s.profile.BaselineFrames {
			s.baseline = referenceFrom(s.baselineSamples)
			s.state = StateCollecting
		}
	case StateCollecting:
		s.frames = append(s.frames, frame)
		if len(s.frames) >= s.profile.TargetFrames {
			s.scoreLocked()
		}
	}
	return nil
}

// ReplayFrames feeds a captured frame batch through a fresh session and
// settles it. Cancelling ctx aborts the session mid-replay; a session that
// has already settled (timeout, too many misses, scored early) stops
// consuming the remaining frames.
func ReplayFrames(ctx context.Context, profile Profile, frames []LandmarkFrame) (*Verdict, error) {
	session := NewSession(profile)
	stop := context.AfterFunc(ctx, func() {
		session.Abort("client disconnected")
	})
	defer stop()

	for i := range frames {
		if ctx.Err() != nil {
			session.Abort("client disconnected")
			break
		}
		if err := session.PushFrame(&frames[i]); err != nil {
			if errors.Is(err, ErrSessionFinished) || errors.Is(err, ErrLivenessTimeout) {
				break
			}
			return nil, err
		}
	}
	return session.Finalize(time.Now())
}

// Abort cancels the session from any pre-scoring state. Accumulated
// frames are discarded and the session lands in FAILED; nothing
// downstream of a failed session may derive keys.
func (s *Session) Abort(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StatePassed, StateFailed:
		return
	}
	s.failLocked(&FailedError{Reason: reason}, reason)
}

// Finalize forces a terminal state for sessions that ran out of frames.
// Under-filled sessions fail with a timeout when the window has elapsed,
// otherwise with an insufficient-frames reason.
func (s *Session) Finalize(now time.Time) (*Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StatePassed:
		return s.verdict, nil
	case StateFailed:
		return s.verdict, s.failure
	case StateInit, StateBaseline:
		s.failLocked(&FailedError{Reason: "no usable frames collected"}, "no usable frames collected")
		return s.verdict, s.failure
	}

	if !s.windowStart.IsZero() && now.Sub(s.windowStart) > s.profile.Deadline {
		s.failLocked(ErrLivenessTimeout, "collection window exceeded")
		return s.verdict, s.failure
	}
	s.failLocked(&FailedError{Reason: "insufficient frames collected"}, "insufficient frames collected")
	return s.verdict, s.failure
}

// Verdict returns the result of a finished session.
func (s *Session) Verdict() (*Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StatePassed:
		return s.verdict, nil
	case StateFailed:
		return s.verdict, s.failure
	}
	return nil, ErrSessionNotFinished
}

// scoreLocked runs the four checks over the accumulated sequence and
// settles the session. Callers hold s.mu.
func (s *Session) scoreLocked() {
	s.state = StateScoring

	verdict := &Verdict{}
	for _, check := range s.checkResults() {
		if !check.passed {
			continue
		}
		verdict.ChecksPassed++
		switch check.name {
		case "blink":
			verdict.Blink = true
		case "movement":
			verdict.Movement = true
		case "texture":
			verdict.Texture = true
		case "quality":
			verdict.Quality = true
		}
	}
	verdict.Score = 0.25 * float64(verdict.ChecksPassed)
	// both conditions are written out on purpose: the equivalence only
	// holds under equal 0.25 weights, which may not survive a reweighting
	verdict.Passed = verdict.ChecksPassed >= 2 || verdict.Score >= 0.5

	s.frames = nil
	s.baselineSamples = nil

	if verdict.Passed {
		s.state = StatePassed
		s.verdict = verdict
		return
	}

	reason := "liveness checks below threshold"
	verdict.Reason = &reason
	s.state = StateFailed
	s.verdict = verdict
	s.failure = &FailedError{
		Score:        verdict.Score,
		ChecksPassed: verdict.ChecksPassed,
		Reason:       reason,
	}
}

type checkResult struct {
	name   string
	passed bool
}

func (s *Session) checkResults() []checkResult {
	results := make([]checkResult, 0, len(checkTable))
	for _, check := range checkTable {
		results = append(results, checkResult{
			name:   check.name,
			passed: check.run(s.frames, s.baseline, s.profile),
		})
	}
	return results
}

// failLocked settles the session as FAILED. Callers hold s.mu.
func (s *Session) failLocked(cause error, reason string) {
	s.frames = nil
	s.baselineSamples = nil
	s.state = StateFailed
	s.failure = cause
	s.verdict = &Verdict{Passed: false, Reason: &reason}
}

// referenceFrom averages pose and EAR over the baseline samples.
func referenceFrom(samples []*LandmarkFrame) baselineRef {
	var ref baselineRef
	for _, frame := range samples {
		pose := headPose(frame)
		ref.Pose.Pitch += pose.Pitch
		ref.Pose.Yaw += pose.Yaw
		ref.Pose.Roll += pose.Roll
		ref.EAR += frameEAR(frame)
	}
	n := float64(len(samples))
	ref.Pose.Pitch /= n
	ref.Pose.Yaw /= n
	ref.Pose.Roll /= n
	ref.EAR /= n
	return ref
}
