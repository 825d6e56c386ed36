package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
)

// statusByCode maps ledger error codes to HTTP statuses. Anything not
// listed is treated as a 500 so bugs surface instead of hiding behind
// a 4xx.
var statusByCode = map[string]int{
	ajo.ErrAlreadyInitialized.Code:          http.StatusConflict,
	ajo.ErrNotInitialized.Code:              http.StatusConflict,
	ajo.ErrUnauthorized.Code:                http.StatusForbidden,
	ajo.ErrUnauthorizedPause.Code:           http.StatusForbidden,
	ajo.ErrUnauthorizedUnpause.Code:         http.StatusForbidden,
	ajo.ErrContractPaused.Code:              http.StatusServiceUnavailable,
	ajo.ErrGroupNotFound.Code:               http.StatusNotFound,
	ajo.ErrGroupComplete.Code:               http.StatusConflict,
	ajo.ErrGroupCancelled.Code:              http.StatusConflict,
	ajo.ErrAlreadyMember.Code:               http.StatusConflict,
	ajo.ErrNotMember.Code:                   http.StatusForbidden,
	ajo.ErrMaxMembersExceeded.Code:          http.StatusConflict,
	ajo.ErrAlreadyContributed.Code:          http.StatusConflict,
	ajo.ErrContributionWindowClosed.Code:    http.StatusConflict,
	ajo.ErrIncompleteContributions.Code:     http.StatusConflict,
	ajo.ErrNoMembers.Code:                   http.StatusConflict,
	ajo.ErrAlreadyReceivedPayout.Code:       http.StatusConflict,
	ajo.ErrContributionAmountZero.Code:      http.StatusBadRequest,
	ajo.ErrContributionAmountNegative.Code:  http.StatusBadRequest,
	ajo.ErrCycleDurationZero.Code:           http.StatusBadRequest,
	ajo.ErrMaxMembersBelowMinimum.Code:      http.StatusBadRequest,
	ajo.ErrMaxMembersAboveLimit.Code:        http.StatusBadRequest,
	ajo.ErrInvalidPenaltyRate.Code:          http.StatusBadRequest,
	ajo.ErrMetadataTooLong.Code:             http.StatusBadRequest,
	ajo.ErrInvalidClaim.Code:                http.StatusNotFound,
	ajo.ErrClaimAlreadyProcessed.Code:       http.StatusConflict,
	ajo.ErrPoolNotFound.Code:                http.StatusNotFound,
	ajo.ErrInsufficientPoolBalance.Code:     http.StatusConflict,
	ajo.ErrInsufficientBalance.Code:         http.StatusConflict,
	ajo.ErrInsufficientContractBalance.Code: http.StatusConflict,
	ajo.ErrRefundNotFound.Code:              http.StatusNotFound,
	ajo.ErrRefundAlreadyRequested.Code:      http.StatusConflict,
	ajo.ErrRefundAlreadyExecuted.Code:       http.StatusConflict,
	ajo.ErrAlreadyVoted.Code:                http.StatusConflict,
	ajo.ErrVotingClosed.Code:                http.StatusConflict,
	ajo.ErrVotingStillOpen.Code:             http.StatusConflict,
	ajo.ErrPayoutAlreadyStarted.Code:        http.StatusConflict,
}

// RespondDomainError translates a service error into the right HTTP
// status. Non-domain errors are logged upstream and returned as 500s.
func RespondDomainError(c *gin.Context, err error) {
	var domainErr *ajo.Error
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		RespondError(c, status, domainErr.Code, err)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
