package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/http/response"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/requestdata"
	"github.com/yungbote/ajo-backend/internal/services"
)

type AdminHandler struct {
	log          *logger.Logger
	adminService services.AdminService
}

func NewAdminHandler(log *logger.Logger, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		log:          log.With("handler", "AdminHandler"),
		adminService: adminService,
	}
}

type initializeRequest struct {
	AdminKey string `json:"admin_key"`
}

// Initialize binds the caller as the permanent admin. Succeeds once per
// deployment.
func (h *AdminHandler) Initialize(c *gin.Context) {
	var req initializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	caller := requestdata.Caller(c.Request.Context())
	if err := h.adminService.Initialize(c.Request.Context(), caller, req.AdminKey); err != nil {
		h.log.Error("Initialize failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"admin": caller})
}

func (h *AdminHandler) Pause(c *gin.Context) {
	if err := h.adminService.Pause(c.Request.Context()); err != nil {
		h.log.Error("Pause failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"paused": true})
}

func (h *AdminHandler) Unpause(c *gin.Context) {
	if err := h.adminService.Unpause(c.Request.Context()); err != nil {
		h.log.Error("Unpause failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"paused": false})
}

type upgradeRequest struct {
	CodeHash string `json:"code_hash" binding:"required"`
}

func (h *AdminHandler) Upgrade(c *gin.Context) {
	var req upgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.adminService.Upgrade(c.Request.Context(), req.CodeHash); err != nil {
		h.log.Error("Upgrade failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"code_hash": req.CodeHash})
}

func (h *AdminHandler) State(c *gin.Context) {
	state, err := h.adminService.State(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"initialized": state.Initialized,
		"admin":       state.Admin,
		"paused":      state.Paused,
		"code_hash":   state.CodeHash,
	})
}
