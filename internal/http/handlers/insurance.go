package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/http/response"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/requestdata"
	"github.com/yungbote/ajo-backend/internal/services"
)

type InsuranceHandler struct {
	log              *logger.Logger
	insuranceService services.InsuranceService
}

func NewInsuranceHandler(log *logger.Logger, insuranceService services.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{
		log:              log.With("handler", "InsuranceHandler"),
		insuranceService: insuranceService,
	}
}

type depositRequest struct {
	Token  string `json:"token" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
}

func (h *InsuranceHandler) DepositToPool(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	caller := requestdata.Caller(c.Request.Context())
	pool, err := h.insuranceService.DepositToPool(c.Request.Context(), caller, req.Token, req.Amount)
	if err != nil {
		h.log.Error("DepositToPool failed", "error", err, "token", req.Token)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pool": pool})
}

type fileClaimRequest struct {
	GroupID   uint64 `json:"group_id" binding:"required"`
	Cycle     int    `json:"cycle" binding:"required"`
	Defaulter string `json:"defaulter" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
}

func (h *InsuranceHandler) FileClaim(c *gin.Context) {
	var req fileClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	caller := requestdata.Caller(c.Request.Context())
	claim, err := h.insuranceService.FileClaim(c.Request.Context(), services.FileClaimInput{
		GroupID:   req.GroupID,
		Cycle:     req.Cycle,
		Claimant:  caller,
		Defaulter: req.Defaulter,
		Amount:    req.Amount,
	})
	if err != nil {
		h.log.Error("FileClaim failed", "error", err, "group_id", req.GroupID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"claim": claim})
}

func (h *InsuranceHandler) VerifyClaim(c *gin.Context) {
	claimID, ok := parseClaimID(c)
	if !ok {
		return
	}
	valid, err := h.insuranceService.VerifyClaim(c.Request.Context(), claimID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"claim_id": claimID, "valid": valid})
}

type processClaimRequest struct {
	Approved bool `json:"approved"`
}

func (h *InsuranceHandler) ProcessClaim(c *gin.Context) {
	claimID, ok := parseClaimID(c)
	if !ok {
		return
	}
	var req processClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	claim, err := h.insuranceService.ProcessClaim(c.Request.Context(), claimID, req.Approved)
	if err != nil {
		h.log.Error("ProcessClaim failed", "error", err, "claim_id", claimID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"claim": claim})
}

func (h *InsuranceHandler) AutoProcessClaim(c *gin.Context) {
	claimID, ok := parseClaimID(c)
	if !ok {
		return
	}
	claim, err := h.insuranceService.AutoProcessClaim(c.Request.Context(), claimID)
	if err != nil {
		h.log.Error("AutoProcessClaim failed", "error", err, "claim_id", claimID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"claim": claim})
}

func (h *InsuranceHandler) GetPool(c *gin.Context) {
	token := c.Param("token")
	pool, err := h.insuranceService.GetPool(c.Request.Context(), token)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pool": pool})
}

func (h *InsuranceHandler) GetClaim(c *gin.Context) {
	claimID, ok := parseClaimID(c)
	if !ok {
		return
	}
	claim, err := h.insuranceService.GetClaim(c.Request.Context(), claimID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"claim": claim})
}

func parseClaimID(c *gin.Context) (uint64, bool) {
	claimID, err := strconv.ParseUint(c.Param("claim_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_claim_id", err)
		return 0, false
	}
	return claimID, true
}
