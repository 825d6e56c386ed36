package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/ajo-backend/internal/http/handlers"
	"github.com/yungbote/ajo-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName    string
	AuthMiddleware *middleware.AuthMiddleware

	HealthHandler       *httpH.HealthHandler
	AdminHandler        *httpH.AdminHandler
	GroupHandler        *httpH.GroupHandler
	ContributionHandler *httpH.ContributionHandler
	PayoutHandler       *httpH.PayoutHandler
	InsuranceHandler    *httpH.InsuranceHandler
	PenaltyHandler      *httpH.PenaltyHandler
	RefundHandler       *httpH.RefundHandler
	LedgerHandler       *httpH.LedgerHandler
}

// NewRouter mounts reads under the public group and every state-mutating
// route behind auth. Admin authorization is enforced in the services, not
// at the router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Public reads
		if cfg.AdminHandler != nil {
			api.GET("/system", cfg.AdminHandler.State)
		}
		if cfg.GroupHandler != nil {
			api.GET("/groups/:group_id", cfg.GroupHandler.GetGroup)
			api.GET("/groups/:group_id/members", cfg.GroupHandler.ListMembers)
			api.GET("/groups/:group_id/is-member", cfg.GroupHandler.IsMember)
			api.GET("/groups/:group_id/is-complete", cfg.GroupHandler.IsComplete)
			api.GET("/groups/:group_id/contributions", cfg.GroupHandler.GetContributionStatus)
			api.GET("/groups/:group_id/status", cfg.GroupHandler.GetGroupStatus)
			api.GET("/groups/:group_id/audit", cfg.GroupHandler.AuditGroup)
		}
		if cfg.PenaltyHandler != nil {
			api.GET("/groups/:group_id/reliability", cfg.PenaltyHandler.GetMemberReliability)
			api.GET("/groups/:group_id/risk", cfg.PenaltyHandler.GetGroupRisk)
		}
		if cfg.InsuranceHandler != nil {
			api.GET("/insurance/pools/:token", cfg.InsuranceHandler.GetPool)
			api.GET("/insurance/claims/:claim_id", cfg.InsuranceHandler.GetClaim)
			api.GET("/insurance/claims/:claim_id/verify", cfg.InsuranceHandler.VerifyClaim)
		}
		if cfg.RefundHandler != nil {
			api.GET("/groups/:group_id/refund", cfg.RefundHandler.GetRequest)
		}
		if cfg.LedgerHandler != nil {
			api.GET("/ledger/:token/balance", cfg.LedgerHandler.GetBalance)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Admin
		if cfg.AdminHandler != nil {
			protected.POST("/system/initialize", cfg.AdminHandler.Initialize)
			protected.POST("/system/pause", cfg.AdminHandler.Pause)
			protected.POST("/system/unpause", cfg.AdminHandler.Unpause)
			protected.POST("/system/upgrade", cfg.AdminHandler.Upgrade)
		}

		// Groups
		if cfg.GroupHandler != nil {
			protected.POST("/groups", cfg.GroupHandler.CreateGroup)
			protected.POST("/groups/:group_id/join", cfg.GroupHandler.JoinGroup)
		}

		// Contributions and payouts
		if cfg.ContributionHandler != nil {
			protected.POST("/groups/:group_id/contribute", cfg.ContributionHandler.Contribute)
		}
		if cfg.PayoutHandler != nil {
			protected.POST("/groups/:group_id/payout", cfg.PayoutHandler.ExecutePayout)
		}

		// Insurance
		if cfg.InsuranceHandler != nil {
			protected.POST("/insurance/deposit", cfg.InsuranceHandler.DepositToPool)
			protected.POST("/insurance/claims", cfg.InsuranceHandler.FileClaim)
			protected.POST("/insurance/claims/:claim_id/process", cfg.InsuranceHandler.ProcessClaim)
			protected.POST("/insurance/claims/:claim_id/auto-process", cfg.InsuranceHandler.AutoProcessClaim)
		}

		// Refund and cancellation
		if cfg.RefundHandler != nil {
			protected.POST("/groups/:group_id/cancel", cfg.RefundHandler.CancelGroup)
			protected.POST("/groups/:group_id/refund", cfg.RefundHandler.RequestRefund)
			protected.POST("/groups/:group_id/refund/vote", cfg.RefundHandler.CastVote)
			protected.POST("/groups/:group_id/refund/resolve", cfg.RefundHandler.ResolveRefund)
		}

		// Ledger
		if cfg.LedgerHandler != nil {
			protected.POST("/ledger/mint", cfg.LedgerHandler.Mint)
		}
	}

	return r
}
