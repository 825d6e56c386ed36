package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/http/response"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/services"
)

type LedgerHandler struct {
	log          *logger.Logger
	ledger       services.LedgerService
	adminService services.AdminService
}

func NewLedgerHandler(log *logger.Logger, ledger services.LedgerService, adminService services.AdminService) *LedgerHandler {
	return &LedgerHandler{
		log:          log.With("handler", "LedgerHandler"),
		ledger:       ledger,
		adminService: adminService,
	}
}

func (h *LedgerHandler) GetBalance(c *gin.Context) {
	token := c.Param("token")
	address := c.Query("address")
	if address == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	balance, err := h.ledger.Balance(c.Request.Context(), nil, token, address)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"token": token, "address": address, "balance": balance})
}

type mintRequest struct {
	Token   string `json:"token" binding:"required"`
	Address string `json:"address" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
}

// Mint credits balances out of thin air, so it stays admin-only. Intended
// for test tokens and staging environments.
func (h *LedgerHandler) Mint(c *gin.Context) {
	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.adminService.RequireAdmin(c.Request.Context()); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	if err := h.ledger.Mint(c.Request.Context(), nil, req.Token, req.Address, req.Amount); err != nil {
		h.log.Error("Mint failed", "error", err, "token", req.Token)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"token": req.Token, "address": req.Address, "amount": req.Amount})
}
