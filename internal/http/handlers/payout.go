package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/http/response"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/services"
)

type PayoutHandler struct {
	log           *logger.Logger
	payoutService services.PayoutService
}

func NewPayoutHandler(log *logger.Logger, payoutService services.PayoutService) *PayoutHandler {
	return &PayoutHandler{
		log:           log.With("handler", "PayoutHandler"),
		payoutService: payoutService,
	}
}

// ExecutePayout is open to any authenticated caller; eligibility is decided
// entirely by group state.
func (h *PayoutHandler) ExecutePayout(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	record, err := h.payoutService.ExecutePayout(c.Request.Context(), groupID)
	if err != nil {
		h.log.Error("ExecutePayout failed", "error", err, "group_id", groupID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"payout": record})
}
