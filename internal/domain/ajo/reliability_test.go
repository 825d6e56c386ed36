package ajo

import "testing"

func TestReliabilityScore(t *testing.T) {
	cases := []struct {
		name   string
		onTime int64
		late   int64
		want   int64
	}{
		{"no history", 0, 0, 100},
		{"all on time", 10, 0, 100},
		{"all late", 0, 10, 0},
		{"mixed", 3, 1, 75},
		{"rounds down", 2, 1, 66},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReliabilityScore(tc.onTime, tc.late); got != tc.want {
				t.Fatalf("ReliabilityScore(%d,%d): got=%d want=%d", tc.onTime, tc.late, got, tc.want)
			}
		})
	}
}

func TestGroupRiskRating(t *testing.T) {
	if got := GroupRiskRating(nil); got != 0 {
		t.Fatalf("empty group: got=%d want=0", got)
	}
	if got := GroupRiskRating([]int64{100, 50}); got != 75 {
		t.Fatalf("average: got=%d want=75", got)
	}
	if got := GroupRiskRating([]int64{100, 100, 100}); got != 100 {
		t.Fatalf("perfect group: got=%d want=100", got)
	}
}
