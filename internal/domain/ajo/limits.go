package ajo

// Hard limits on group parameters. Amounts are denominated in the token's
// smallest unit.
const (
	MinMembers = 2
	MaxMembers = 100

	MinContribution int64 = 100_000
	MaxContribution int64 = 10_000_000_000_000_000

	// Cycle duration bounds in seconds: 1 hour to 365 days.
	MinCycleDuration int64 = 3_600
	MaxCycleDuration int64 = 31_536_000

	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxRulesLength       = 1000

	// Basis points denominator for the insurance premium skim.
	BpsDenominator int64 = 10_000

	// Default refund voting window: 7 days.
	DefaultVotingWindow int64 = 7 * 24 * 3_600

	// Refund approval threshold in percent of votes cast.
	ApprovalThresholdPct int64 = 51
)
