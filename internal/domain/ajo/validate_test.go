package ajo

import (
	"strings"
	"testing"
)

func TestValidateGroupParams(t *testing.T) {
	cases := []struct {
		name          string
		amount        int64
		cycleDuration int64
		maxMembers    int
		want          error
	}{
		{"valid", 100_000_000, 604_800, 10, nil},
		{"min boundary", MinContribution, MinCycleDuration, MinMembers, nil},
		{"max boundary", MaxContribution, MaxCycleDuration, MaxMembers, nil},
		{"zero amount", 0, 604_800, 10, ErrContributionAmountZero},
		{"negative amount", -1, 604_800, 10, ErrContributionAmountNegative},
		{"below min amount", MinContribution - 1, 604_800, 10, ErrContributionAmountZero},
		{"above max amount", MaxContribution + 1, 604_800, 10, ErrContributionAmountNegative},
		{"zero duration", 100_000_000, 0, 10, ErrCycleDurationZero},
		{"below min duration", 100_000_000, MinCycleDuration - 1, 10, ErrCycleDurationZero},
		{"above max duration", 100_000_000, MaxCycleDuration + 1, 10, ErrCycleDurationZero},
		{"one member", 100_000_000, 604_800, 1, ErrMaxMembersBelowMinimum},
		{"too many members", 100_000_000, 604_800, MaxMembers + 1, ErrMaxMembersAboveLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateGroupParams(tc.amount, tc.cycleDuration, tc.maxMembers)
			if got != tc.want {
				t.Fatalf("ValidateGroupParams: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestValidatePenaltyRate(t *testing.T) {
	for _, rate := range []int64{0, 5, 100} {
		if err := ValidatePenaltyRate(rate); err != nil {
			t.Fatalf("ValidatePenaltyRate(%d): got=%v", rate, err)
		}
	}
	for _, rate := range []int64{-1, 101} {
		if err := ValidatePenaltyRate(rate); err != ErrInvalidPenaltyRate {
			t.Fatalf("ValidatePenaltyRate(%d): got=%v want=%v", rate, err, ErrInvalidPenaltyRate)
		}
	}
}

func TestValidateMetadataLengths(t *testing.T) {
	if err := ValidateMetadataLengths("weekly savings", "friends and family", "pay on time"); err != nil {
		t.Fatalf("valid metadata rejected: %v", err)
	}
	long := strings.Repeat("x", MaxNameLength+1)
	if err := ValidateMetadataLengths(long, "", ""); err != ErrMetadataTooLong {
		t.Fatalf("long name: got=%v want=%v", err, ErrMetadataTooLong)
	}
	if err := ValidateMetadataLengths("", strings.Repeat("x", MaxDescriptionLength+1), ""); err != ErrMetadataTooLong {
		t.Fatalf("long description: got=%v want=%v", err, ErrMetadataTooLong)
	}
	if err := ValidateMetadataLengths("", "", strings.Repeat("x", MaxRulesLength+1)); err != ErrMetadataTooLong {
		t.Fatalf("long rules: got=%v want=%v", err, ErrMetadataTooLong)
	}
	if err := ValidateMetadataLengths(strings.Repeat("x", MaxNameLength), "", ""); err != nil {
		t.Fatalf("boundary name rejected: %v", err)
	}
}
