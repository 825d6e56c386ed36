package ajo

// ValidateGroupParams checks group creation parameters against the hard
// limits. The zero/negative contribution codes double as the below-minimum
// and above-maximum codes, and CycleDurationZero covers all three duration
// violations; the code set is kept wire-compatible with the original
// deployment (see DESIGN.md).
func ValidateGroupParams(contributionAmount, cycleDuration int64, maxMembers int) error {
	if contributionAmount == 0 {
		return ErrContributionAmountZero
	}
	if contributionAmount < 0 {
		return ErrContributionAmountNegative
	}
	if contributionAmount < MinContribution {
		return ErrContributionAmountZero
	}
	if contributionAmount > MaxContribution {
		return ErrContributionAmountNegative
	}

	if cycleDuration == 0 {
		return ErrCycleDurationZero
	}
	if cycleDuration < MinCycleDuration {
		return ErrCycleDurationZero
	}
	if cycleDuration > MaxCycleDuration {
		return ErrCycleDurationZero
	}

	if maxMembers < MinMembers {
		return ErrMaxMembersBelowMinimum
	}
	if maxMembers > MaxMembers {
		return ErrMaxMembersAboveLimit
	}
	return nil
}

// ValidatePenaltyRate bounds the late-contribution penalty to a whole
// percentage of the contribution amount.
func ValidatePenaltyRate(ratePct int64) error {
	if ratePct < 0 || ratePct > 100 {
		return ErrInvalidPenaltyRate
	}
	return nil
}

// ValidateMetadataLengths bounds the free-form group metadata fields.
func ValidateMetadataLengths(name, description, rules string) error {
	if len(name) > MaxNameLength ||
		len(description) > MaxDescriptionLength ||
		len(rules) > MaxRulesLength {
		return ErrMetadataTooLong
	}
	return nil
}
