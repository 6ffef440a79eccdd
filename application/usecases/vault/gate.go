package vault_usecases

import (
	"zsecure.app/infrastructure/liveness"
)

// canDerive is the single gate between presence verification and key
// derivation. A key is only ever derived from a session that settled in the
// passed state with a matching face; aborted, timed out or failed sessions
// never reach the key schedule.
func canDerive(verdict *liveness.Verdict, matched bool, presenceErr error) bool {
	if presenceErr != nil {
		return false
	}
	if verdict == nil || !verdict.Passed {
		return false
	}
	return matched
}
