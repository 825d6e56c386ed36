package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/repos"
)

type Repos struct {
	System         repos.SystemRepo
	Group          repos.GroupRepo
	Contribution   repos.ContributionRepo
	Payout         repos.PayoutRepo
	InsurancePool  repos.InsurancePoolRepo
	InsuranceClaim repos.InsuranceClaimRepo
	Penalty        repos.PenaltyRepo
	Refund         repos.RefundRepo
	TokenAccount   repos.TokenAccountRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		System:         repos.NewSystemRepo(db, log),
		Group:          repos.NewGroupRepo(db, log),
		Contribution:   repos.NewContributionRepo(db, log),
		Payout:         repos.NewPayoutRepo(db, log),
		InsurancePool:  repos.NewInsurancePoolRepo(db, log),
		InsuranceClaim: repos.NewInsuranceClaimRepo(db, log),
		Penalty:        repos.NewPenaltyRepo(db, log),
		Refund:         repos.NewRefundRepo(db, log),
		TokenAccount:   repos.NewTokenAccountRepo(db, log),
	}
}
