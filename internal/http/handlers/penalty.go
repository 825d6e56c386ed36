package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/http/response"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/services"
)

type PenaltyHandler struct {
	log            *logger.Logger
	penaltyService services.PenaltyService
}

func NewPenaltyHandler(log *logger.Logger, penaltyService services.PenaltyService) *PenaltyHandler {
	return &PenaltyHandler{
		log:            log.With("handler", "PenaltyHandler"),
		penaltyService: penaltyService,
	}
}

func (h *PenaltyHandler) GetMemberReliability(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	member := c.Query("address")
	if member == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	reliability, err := h.penaltyService.GetMemberReliability(c.Request.Context(), groupID, member)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reliability": reliability})
}

func (h *PenaltyHandler) GetGroupRisk(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	risk, err := h.penaltyService.GetGroupRisk(c.Request.Context(), groupID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"risk": risk})
}
