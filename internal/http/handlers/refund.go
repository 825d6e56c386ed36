package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/http/response"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/requestdata"
	"github.com/yungbote/ajo-backend/internal/services"
)

type RefundHandler struct {
	log           *logger.Logger
	refundService services.RefundService
}

func NewRefundHandler(log *logger.Logger, refundService services.RefundService) *RefundHandler {
	return &RefundHandler{
		log:           log.With("handler", "RefundHandler"),
		refundService: refundService,
	}
}

func (h *RefundHandler) CancelGroup(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	if err := h.refundService.CancelGroup(c.Request.Context(), groupID); err != nil {
		h.log.Error("CancelGroup failed", "error", err, "group_id", groupID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"group_id": groupID, "cancelled": true})
}

func (h *RefundHandler) RequestRefund(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	caller := requestdata.Caller(c.Request.Context())
	request, err := h.refundService.RequestRefund(c.Request.Context(), caller, groupID)
	if err != nil {
		h.log.Error("RequestRefund failed", "error", err, "group_id", groupID, "requester", caller)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"request": request})
}

type castVoteRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

func (h *RefundHandler) CastVote(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	caller := requestdata.Caller(c.Request.Context())
	request, err := h.refundService.CastVote(c.Request.Context(), caller, groupID, *req.Approve)
	if err != nil {
		h.log.Error("CastVote failed", "error", err, "group_id", groupID, "voter", caller)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"request": request})
}

func (h *RefundHandler) ResolveRefund(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	request, err := h.refundService.ResolveRefund(c.Request.Context(), groupID)
	if err != nil {
		h.log.Error("ResolveRefund failed", "error", err, "group_id", groupID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"request": request})
}

func (h *RefundHandler) GetRequest(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	request, err := h.refundService.GetRequest(c.Request.Context(), groupID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"request": request})
}
