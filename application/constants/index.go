package constants

// response codes sent to clients so the UI can react to specific
// failure modes without string matching
const (
	SESSION_EXPIRED        uint = 1001
	ACCOUNT_LOCKED         uint = 1002
	LIVENESS_CHECK_FAILED  uint = 1003
	LIVENESS_CHECK_TIMEOUT uint = 1004
	FACE_MISMATCH          uint = 1005
	INTEGRITY_CHECK_FAILED uint = 1006
	UNSUPPORTED_ARTIFACT   uint = 1007
)

// account lockout policy
const (
	MAX_FAILED_ATTEMPTS = 5
	LOCKOUT_DURATION    = 30 // minutes
)

// face matching tolerance for 128-d encodings (euclidean distance)
const FACE_MATCH_TOLERANCE = 0.4
