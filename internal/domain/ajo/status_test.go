package ajo

import "testing"

func TestTiming(t *testing.T) {
	const start, duration, grace = 1_000, 600, 120

	active := Timing(start+100, start, duration, grace)
	if !active.IsCycleActive || active.IsInGracePeriod {
		t.Fatalf("mid-cycle: got active=%v grace=%v", active.IsCycleActive, active.IsInGracePeriod)
	}
	if active.CycleEndTime != start+duration || active.GracePeriodEndTime != start+duration+grace {
		t.Fatalf("window bounds: end=%d graceEnd=%d", active.CycleEndTime, active.GracePeriodEndTime)
	}

	inGrace := Timing(start+duration, start, duration, grace)
	if inGrace.IsCycleActive || !inGrace.IsInGracePeriod {
		t.Fatalf("at cycle end: got active=%v grace=%v", inGrace.IsCycleActive, inGrace.IsInGracePeriod)
	}

	closed := Timing(start+duration+grace, start, duration, grace)
	if closed.IsCycleActive || closed.IsInGracePeriod {
		t.Fatalf("after grace: got active=%v grace=%v", closed.IsCycleActive, closed.IsInGracePeriod)
	}
}

func TestContributionWindow(t *testing.T) {
	const start, duration, grace = 1_000, 600, 120

	cases := []struct {
		name     string
		now      int64
		wantLate bool
		wantOK   bool
	}{
		{"on time", start + 1, false, true},
		{"last active second", start + duration - 1, false, true},
		{"first grace second", start + duration, true, true},
		{"last grace second", start + duration + grace - 1, true, true},
		{"window closed", start + duration + grace, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isLate, accepted := ContributionWindow(tc.now, start, duration, grace)
			if isLate != tc.wantLate || accepted != tc.wantOK {
				t.Fatalf("ContributionWindow: got late=%v ok=%v want late=%v ok=%v",
					isLate, accepted, tc.wantLate, tc.wantOK)
			}
		})
	}
}

func TestContributionWindowNoGrace(t *testing.T) {
	const start, duration = 1_000, 600
	isLate, accepted := ContributionWindow(start+duration, start, duration, 0)
	if !isLate || accepted {
		t.Fatalf("zero grace at cycle end: got late=%v ok=%v", isLate, accepted)
	}
}
