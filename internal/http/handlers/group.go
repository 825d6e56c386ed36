package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/http/response"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/requestdata"
	"github.com/yungbote/ajo-backend/internal/services"
	"github.com/yungbote/ajo-backend/internal/types"
)

type GroupHandler struct {
	log          *logger.Logger
	groupService services.GroupService
}

func NewGroupHandler(log *logger.Logger, groupService services.GroupService) *GroupHandler {
	return &GroupHandler{
		log:          log.With("handler", "GroupHandler"),
		groupService: groupService,
	}
}

type createGroupRequest struct {
	Token              string `json:"token" binding:"required"`
	ContributionAmount int64  `json:"contribution_amount"`
	CycleDuration      int64  `json:"cycle_duration"`
	GracePeriod        int64  `json:"grace_period"`
	PenaltyRate        int64  `json:"penalty_rate"`
	MaxMembers         int    `json:"max_members"`
	InsuranceEnabled   bool   `json:"insurance_enabled"`
	InsuranceRateBps   int64  `json:"insurance_rate_bps"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Rules              string `json:"rules"`
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	caller := requestdata.Caller(c.Request.Context())
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	groupID, err := h.groupService.CreateGroup(c.Request.Context(), services.CreateGroupInput{
		Creator:            caller,
		Token:              req.Token,
		ContributionAmount: req.ContributionAmount,
		CycleDuration:      req.CycleDuration,
		GracePeriod:        req.GracePeriod,
		PenaltyRate:        req.PenaltyRate,
		MaxMembers:         req.MaxMembers,
		InsuranceEnabled:   req.InsuranceEnabled,
		InsuranceRateBps:   req.InsuranceRateBps,
		Metadata: types.GroupMetadata{
			Name:        req.Name,
			Description: req.Description,
			Rules:       req.Rules,
		},
	})
	if err != nil {
		h.log.Error("CreateGroup failed", "error", err, "creator", caller)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"group_id": groupID})
}

func (h *GroupHandler) JoinGroup(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	caller := requestdata.Caller(c.Request.Context())
	if err := h.groupService.JoinGroup(c.Request.Context(), caller, groupID); err != nil {
		h.log.Error("JoinGroup failed", "error", err, "group_id", groupID, "member", caller)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"group_id": groupID, "member": caller})
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	group, err := h.groupService.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"group": group})
}

func (h *GroupHandler) ListMembers(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	members, err := h.groupService.ListMembers(c.Request.Context(), groupID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"members": members})
}

func (h *GroupHandler) IsMember(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	address := c.Query("address")
	if address == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	isMember, err := h.groupService.IsMember(c.Request.Context(), groupID, address)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"is_member": isMember})
}

func (h *GroupHandler) IsComplete(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	complete, err := h.groupService.IsComplete(c.Request.Context(), groupID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"is_complete": complete})
}

func (h *GroupHandler) GetContributionStatus(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	cycle, err := strconv.Atoi(c.Query("cycle"))
	if err != nil || cycle < 1 {
		response.RespondError(c, http.StatusBadRequest, "invalid_cycle", err)
		return
	}
	statuses, err := h.groupService.GetContributionStatus(c.Request.Context(), groupID, cycle)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"cycle": cycle, "contributions": statuses})
}

func (h *GroupHandler) GetGroupStatus(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	status, err := h.groupService.GetGroupStatus(c.Request.Context(), groupID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": status})
}

func (h *GroupHandler) AuditGroup(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	report, err := h.groupService.AuditGroup(c.Request.Context(), groupID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"report": report})
}

// parseGroupID reads the :group_id path parameter; on failure it responds
// 400 and returns ok=false.
func parseGroupID(c *gin.Context) (uint64, bool) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_group_id", err)
		return 0, false
	}
	return groupID, true
}
