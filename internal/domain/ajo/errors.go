package ajo

// Error is a typed, stable-coded failure returned by every ajo operation.
// Codes are part of the API contract and never change meaning; handlers map
// them onto HTTP statuses.
type Error struct {
	Code string
	msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.msg != "" {
		return e.msg
	}
	return e.Code
}

func newErr(code, msg string) *Error { return &Error{Code: code, msg: msg} }

// Admin / lifecycle
var (
	ErrAlreadyInitialized  = newErr("AlreadyInitialized", "contract already initialized")
	ErrNotInitialized      = newErr("NotInitialized", "contract not initialized")
	ErrUnauthorized        = newErr("Unauthorized", "caller is not authorized")
	ErrUnauthorizedPause   = newErr("UnauthorizedPause", "only the admin can pause")
	ErrUnauthorizedUnpause = newErr("UnauthorizedUnpause", "only the admin can unpause")
	ErrContractPaused      = newErr("ContractPaused", "contract is paused")
)

// Group lifecycle
var (
	ErrGroupNotFound            = newErr("GroupNotFound", "group does not exist")
	ErrGroupComplete            = newErr("GroupComplete", "group has completed all cycles")
	ErrGroupCancelled           = newErr("GroupCancelled", "group has been cancelled")
	ErrAlreadyMember            = newErr("AlreadyMember", "address is already a member")
	ErrNotMember                = newErr("NotMember", "address is not a member")
	ErrMaxMembersExceeded       = newErr("MaxMembersExceeded", "group has reached max members")
	ErrAlreadyContributed       = newErr("AlreadyContributed", "already contributed this cycle")
	ErrContributionWindowClosed = newErr("ContributionWindowClosed", "cycle grace period has elapsed")
	ErrIncompleteContributions  = newErr("IncompleteContributions", "not all members have contributed")
	ErrNoMembers                = newErr("NoMembers", "group has no members")
	ErrAlreadyReceivedPayout    = newErr("AlreadyReceivedPayout", "member already received a payout")
)

// Validation
var (
	ErrContributionAmountZero     = newErr("ContributionAmountZero", "contribution amount out of range")
	ErrContributionAmountNegative = newErr("ContributionAmountNegative", "contribution amount out of range")
	ErrCycleDurationZero          = newErr("CycleDurationZero", "cycle duration out of range")
	ErrMaxMembersBelowMinimum     = newErr("MaxMembersBelowMinimum", "max members below minimum")
	ErrMaxMembersAboveLimit       = newErr("MaxMembersAboveLimit", "max members above limit")
	ErrInvalidPenaltyRate         = newErr("InvalidPenaltyRate", "penalty rate out of range")
	ErrMetadataTooLong            = newErr("MetadataTooLong", "metadata field too long")
)

// Insurance
var (
	ErrInvalidClaim            = newErr("InvalidClaim", "claim does not exist")
	ErrClaimAlreadyProcessed   = newErr("ClaimAlreadyProcessed", "claim is not pending")
	ErrPoolNotFound            = newErr("PoolNotFound", "no insurance pool for token")
	ErrInsufficientPoolBalance = newErr("InsufficientPoolBalance", "insurance pool underfunded")
)

// Token ledger
var (
	ErrInsufficientBalance         = newErr("InsufficientBalance", "insufficient balance")
	ErrInsufficientContractBalance = newErr("InsufficientContractBalance", "insufficient escrow balance")
)

// Refund / cancellation
var (
	ErrRefundNotFound         = newErr("RefundNotFound", "refund request does not exist")
	ErrRefundAlreadyRequested = newErr("RefundAlreadyRequested", "refund already requested for group")
	ErrRefundAlreadyExecuted  = newErr("RefundAlreadyExecuted", "refund request already resolved")
	ErrAlreadyVoted           = newErr("AlreadyVoted", "member already voted")
	ErrVotingClosed           = newErr("VotingClosed", "voting window has closed")
	ErrVotingStillOpen        = newErr("VotingStillOpen", "voting window still open")
	ErrPayoutAlreadyStarted   = newErr("PayoutAlreadyStarted", "cannot cancel after first payout")
)
