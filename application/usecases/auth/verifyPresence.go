package auth_usecases

import (
	"context"

	"zsecure.app/application/constants"
	"zsecure.app/entities"
	"zsecure.app/infrastructure/biometric"
	"zsecure.app/infrastructure/cryptography"
	"zsecure.app/infrastructure/liveness"
)

// PresenceResult is the outcome of a combined liveness and face match pass.
type PresenceResult struct {
	Verdict  *liveness.Verdict
	Matched  bool
	Distance float64
	Enrolled biometric.FaceEncoding
}

// VerifyFacePresence replays the captured landmark frames through a liveness
// session and, only when the session passes, compares a fresh encoding of the
// supplied image against the enrolled reference. Cancelling ctx (client
// disconnect) aborts the session. The enrolled encoding is returned so
// callers can feed it to key derivation; the candidate encoding is discarded
// because it varies between captures.
func VerifyFacePresence(ctx context.Context, user *entities.User, faceImage string, frames []liveness.LandmarkFrame) (*PresenceResult, error) {
	verdict, err := liveness.ReplayFrames(ctx, liveness.ProfileFromEnv(), frames)
	if verdict == nil && err != nil {
		return nil, err
	}
	result := &PresenceResult{Verdict: verdict}
	if err != nil || !verdict.Passed {
		// failed sessions still carry a verdict for reporting; the error
		// explains why the session settled without passing
		return result, err
	}

	candidate, err := biometric.FaceModel.ExtractEncoding(&faceImage)
	if err != nil {
		return nil, err
	}
	encodingBlob, err := cryptography.DecryptData(user.FaceBlob, nil)
	if err != nil {
		return nil, err
	}
	enrolled, err := biometric.UnmarshalEncoding(encodingBlob)
	if err != nil {
		return nil, err
	}
	matched, distance, err := biometric.Match(enrolled, candidate, constants.FACE_MATCH_TOLERANCE)
	if err != nil {
		return nil, err
	}
	result.Matched = matched
	result.Distance = distance
	result.Enrolled = enrolled
	return result, nil
}
