package ajo

// Premium is the insurance skim taken from a contribution, in the token's
// smallest unit.
func Premium(amount, rateBps int64) int64 {
	return amount * rateBps / BpsDenominator
}

// Penalty is the surcharge applied to a late contribution.
func Penalty(amount, ratePct int64) int64 {
	return amount * ratePct / 100
}

// PayoutAmount is what the current recipient receives: the full pool for the
// cycle plus any penalties collected during it. Penalties flow to the
// recipient, not back to the payers.
func PayoutAmount(contributionAmount int64, memberCount int, penaltyPool int64) int64 {
	return contributionAmount*int64(memberCount) + penaltyPool
}
