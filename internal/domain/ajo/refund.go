package ajo

// RefundApproved applies the 51% threshold to votes cast. Integer math only:
// votesFor*100 >= 51*(votesFor+votesAgainst). A request with no votes cast
// is not approved.
func RefundApproved(votesFor, votesAgainst int) bool {
	total := votesFor + votesAgainst
	if total == 0 {
		return false
	}
	return int64(votesFor)*100 >= ApprovalThresholdPct*int64(total)
}

// VotingClosed reports whether the voting window has elapsed.
func VotingClosed(now, deadline int64) bool {
	return now >= deadline
}
