package vault_usecases

import (
	"errors"
	"testing"

	"zsecure.app/infrastructure/liveness"
)

func TestCanDerive(t *testing.T) {
	passed := &liveness.Verdict{Passed: true, ChecksPassed: 3, Score: 0.75}
	failed := &liveness.Verdict{Passed: false, ChecksPassed: 1, Score: 0.25}

	cases := []struct {
		name    string
		verdict *liveness.Verdict
		matched bool
		err     error
		want    bool
	}{
		{"passed and matched", passed, true, nil, true},
		{"passed but mismatched", passed, false, nil, false},
		{"failed session", failed, true, nil, false},
		{"nil verdict", nil, true, nil, false},
		{"timeout", failed, true, liveness.ErrLivenessTimeout, false},
		{"aborted session", failed, true, &liveness.FailedError{Reason: "client aborted"}, false},
		{"error with passed verdict", passed, true, errors.New("transport failure"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := canDerive(tc.verdict, tc.matched, tc.err); got != tc.want {
				t.Fatalf("canDerive() = %v, want %v", got, tc.want)
			}
		})
	}
}
