package ajo

// Audit flag bits.
const (
	AuditFlagIncompleteContributions = 1 << 0
	AuditFlagPayoutIndexMismatch     = 1 << 1
	AuditFlagUnusualParameters       = 1 << 2
)

// AuditReport summarizes a group's contribution and payout history for
// monitoring. Flags of zero means no issues detected.
type AuditReport struct {
	TotalExpected    int `json:"total_expected"`
	TotalReceived    int `json:"total_received"`
	PayoutsCompleted int `json:"payouts_completed"`
	Flags            int `json:"flags"`
}

// ParamsWithinLimits reports whether stored group parameters are inside the
// creation-time limits. Stored state should never violate these; a false
// return flags tampering or a migration bug.
func ParamsWithinLimits(contributionAmount, cycleDuration int64, memberCount int) bool {
	if memberCount > MaxMembers {
		return false
	}
	if contributionAmount > MaxContribution {
		return false
	}
	if cycleDuration > MaxCycleDuration {
		return false
	}
	return true
}

// BuildAuditReport combines history counts into a report.
func BuildAuditReport(totalExpected, totalReceived, payoutsCompleted, memberCount int, complete, paramsOK bool) AuditReport {
	flags := 0
	if totalReceived < totalExpected && !complete {
		flags |= AuditFlagIncompleteContributions
	}
	if payoutsCompleted > memberCount {
		flags |= AuditFlagPayoutIndexMismatch
	}
	if !paramsOK {
		flags |= AuditFlagUnusualParameters
	}
	return AuditReport{
		TotalExpected:    totalExpected,
		TotalReceived:    totalReceived,
		PayoutsCompleted: payoutsCompleted,
		Flags:            flags,
	}
}
