package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ajo-backend/internal/http"
	httpH "github.com/yungbote/ajo-backend/internal/http/handlers"
	"github.com/yungbote/ajo-backend/internal/middleware"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

type Handlers struct {
	Health       *httpH.HealthHandler
	Admin        *httpH.AdminHandler
	Group        *httpH.GroupHandler
	Contribution *httpH.ContributionHandler
	Payout       *httpH.PayoutHandler
	Insurance    *httpH.InsuranceHandler
	Penalty      *httpH.PenaltyHandler
	Refund       *httpH.RefundHandler
	Ledger       *httpH.LedgerHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(),
		Admin:        httpH.NewAdminHandler(log, serviceset.Admin),
		Group:        httpH.NewGroupHandler(log, serviceset.Group),
		Contribution: httpH.NewContributionHandler(log, serviceset.Contribution),
		Payout:       httpH.NewPayoutHandler(log, serviceset.Payout),
		Insurance:    httpH.NewInsuranceHandler(log, serviceset.Insurance),
		Penalty:      httpH.NewPenaltyHandler(log, serviceset.Penalty),
		Refund:       httpH.NewRefundHandler(log, serviceset.Refund),
		Ledger:       httpH.NewLedgerHandler(log, serviceset.Ledger, serviceset.Admin),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}

func wireRouter(cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		ServiceName:         "ajo-backend",
		AuthMiddleware:      mw.Auth,
		HealthHandler:       handlerset.Health,
		AdminHandler:        handlerset.Admin,
		GroupHandler:        handlerset.Group,
		ContributionHandler: handlerset.Contribution,
		PayoutHandler:       handlerset.Payout,
		InsuranceHandler:    handlerset.Insurance,
		PenaltyHandler:      handlerset.Penalty,
		RefundHandler:       handlerset.Refund,
		LedgerHandler:       handlerset.Ledger,
	})
}
