package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/events"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/platform/clock"
	"github.com/yungbote/ajo-backend/internal/services"
)

type Services struct {
	Admin        services.AdminService
	Ledger       services.LedgerService
	Group        services.GroupService
	Contribution services.ContributionService
	Payout       services.PayoutService
	Insurance    services.InsuranceService
	Penalty      services.PenaltyService
	Refund       services.RefundService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	clk := clock.NewSystem()

	var sink events.Sink = events.NewNopSink()
	if cfg.EventsEnabled {
		redisSink, err := events.NewRedisSink(log, cfg.RedisAddr, cfg.RedisEventChannel)
		if err != nil {
			log.Warn("Redis event sink unavailable, events disabled", "error", err)
		} else {
			sink = redisSink
		}
	}

	adminService := services.NewAdminService(db, log, reposet.System, clk, sink)
	ledgerService := services.NewLedgerService(db, log, reposet.TokenAccount, cfg.EscrowAddress)
	groupService := services.NewGroupService(db, log, reposet.Group, reposet.Contribution, adminService, clk, sink)
	contributionService := services.NewContributionService(
		db, log,
		reposet.Group, reposet.Contribution, reposet.Penalty, reposet.InsurancePool,
		ledgerService, adminService, clk, sink,
	)
	payoutService := services.NewPayoutService(
		db, log,
		reposet.Group, reposet.Contribution, reposet.Payout,
		ledgerService, adminService, clk, sink,
	)
	insuranceService := services.NewInsuranceService(
		db, log,
		reposet.Group, reposet.Contribution, reposet.InsurancePool, reposet.InsuranceClaim,
		ledgerService, adminService, clk, sink,
	)
	penaltyService := services.NewPenaltyService(db, log, reposet.Group, reposet.Penalty)
	refundService := services.NewRefundService(
		db, log,
		reposet.Group, reposet.Contribution, reposet.Refund,
		ledgerService, adminService, clk, sink, cfg.VotingWindowSeconds,
	)

	return Services{
		Admin:        adminService,
		Ledger:       ledgerService,
		Group:        groupService,
		Contribution: contributionService,
		Payout:       payoutService,
		Insurance:    insuranceService,
		Penalty:      penaltyService,
		Refund:       refundService,
	}, nil
}
