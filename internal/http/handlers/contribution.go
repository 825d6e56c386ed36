package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/http/response"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/requestdata"
	"github.com/yungbote/ajo-backend/internal/services"
)

type ContributionHandler struct {
	log            *logger.Logger
	contribService services.ContributionService
}

func NewContributionHandler(log *logger.Logger, contribService services.ContributionService) *ContributionHandler {
	return &ContributionHandler{
		log:            log.With("handler", "ContributionHandler"),
		contribService: contribService,
	}
}

func (h *ContributionHandler) Contribute(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	caller := requestdata.Caller(c.Request.Context())
	record, err := h.contribService.Contribute(c.Request.Context(), caller, groupID)
	if err != nil {
		h.log.Error("Contribute failed", "error", err, "group_id", groupID, "member", caller)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"contribution": record})
}
