package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
	"github.com/yungbote/ajo-backend/internal/events"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/platform/clock"
	"github.com/yungbote/ajo-backend/internal/repos"
	"github.com/yungbote/ajo-backend/internal/types"
)

// ContributionService records per-cycle contributions in a single
// transaction: the late penalty applies inside the grace window, the
// insurance premium is skimmed, and the remainder moves into escrow.
type ContributionService interface {
	Contribute(ctx context.Context, member string, groupID uint64) (*types.ContributionRecord, error)
}

type contributionService struct {
	db           *gorm.DB
	log          *logger.Logger
	groupRepo    repos.GroupRepo
	contribRepo  repos.ContributionRepo
	penaltyRepo  repos.PenaltyRepo
	poolRepo     repos.InsurancePoolRepo
	ledger       LedgerService
	adminService AdminService
	clock        clock.Clock
	sink         events.Sink
}

func NewContributionService(
	db *gorm.DB,
	log *logger.Logger,
	groupRepo repos.GroupRepo,
	contribRepo repos.ContributionRepo,
	penaltyRepo repos.PenaltyRepo,
	poolRepo repos.InsurancePoolRepo,
	ledger LedgerService,
	adminService AdminService,
	clk clock.Clock,
	sink events.Sink,
) ContributionService {
	return &contributionService{
		db:           db,
		log:          log.With("service", "ContributionService"),
		groupRepo:    groupRepo,
		contribRepo:  contribRepo,
		penaltyRepo:  penaltyRepo,
		poolRepo:     poolRepo,
		ledger:       ledger,
		adminService: adminService,
		clock:        clk,
		sink:         sink,
	}
}

func (cs *contributionService) Contribute(ctx context.Context, member string, groupID uint64) (*types.ContributionRecord, error) {
	if err := cs.adminService.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}
	if err := requireCaller(ctx, member); err != nil {
		return nil, err
	}

	now := cs.clock.Now()
	var record *types.ContributionRecord
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := cs.groupRepo.GetByID(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		if group == nil {
			return ajo.ErrGroupNotFound
		}
		if err := ensureActive(group); err != nil {
			return err
		}
		if !group.HasMember(member) {
			return ajo.ErrNotMember
		}
		exists, err := cs.contribRepo.Exists(ctx, tx, groupID, group.CurrentCycle, member)
		if err != nil {
			return fmt.Errorf("check contribution: %w", err)
		}
		if exists {
			return ajo.ErrAlreadyContributed
		}

		isLate, accepted := ajo.ContributionWindow(now, group.CycleStartTime, group.CycleDuration, group.GracePeriod)
		if !accepted {
			return ajo.ErrContributionWindowClosed
		}

		var penalty int64
		if isLate {
			penalty = ajo.Penalty(group.ContributionAmount, group.PenaltyRate)
		}
		var premium int64
		if group.InsuranceEnabled {
			premium = ajo.Premium(group.ContributionAmount, group.InsuranceRateBps)
		}

		// One debit for everything owed this cycle. The premium stays in
		// escrow but is booked to the insurance pool, not the cycle pot.
		total := group.ContributionAmount + penalty
		if err := cs.ledger.Transfer(ctx, tx, group.Token, member, cs.ledger.EscrowAddress(), total); err != nil {
			return err
		}
		if premium > 0 {
			if err := cs.depositPremium(ctx, tx, group.Token, premium); err != nil {
				return err
			}
		}

		record = &types.ContributionRecord{
			GroupID:       groupID,
			Cycle:         group.CurrentCycle,
			Member:        member,
			Amount:        group.ContributionAmount - premium,
			Premium:       premium,
			Penalty:       penalty,
			IsLate:        isLate,
			ContributedAt: now,
		}
		if err := cs.contribRepo.Create(ctx, tx, record); err != nil {
			return fmt.Errorf("store contribution: %w", err)
		}

		if penalty > 0 {
			group.PenaltyPool += penalty
			if err := cs.groupRepo.Save(ctx, tx, group); err != nil {
				return fmt.Errorf("store group: %w", err)
			}
		}

		return cs.updatePenaltyRecord(ctx, tx, groupID, member, isLate, penalty)
	})
	if err != nil {
		return nil, err
	}

	cs.log.Info("Contribution recorded",
		"group_id", groupID, "member", member, "cycle", record.Cycle,
		"late", record.IsLate, "penalty", record.Penalty)
	emit(ctx, cs.log, cs.sink, events.TypeContributionMade, groupID, now, map[string]any{
		"member":  member,
		"cycle":   record.Cycle,
		"amount":  record.Amount,
		"premium": record.Premium,
		"penalty": record.Penalty,
		"late":    record.IsLate,
	})
	return record, nil
}

func (cs *contributionService) depositPremium(ctx context.Context, tx *gorm.DB, token string, premium int64) error {
	pool, err := cs.poolRepo.Get(ctx, tx, token)
	if err != nil {
		return fmt.Errorf("load insurance pool: %w", err)
	}
	if pool == nil {
		pool = &types.InsurancePool{Token: token}
	}
	pool.Balance += premium
	if err := cs.poolRepo.Save(ctx, tx, pool); err != nil {
		return fmt.Errorf("store insurance pool: %w", err)
	}
	return nil
}

func (cs *contributionService) updatePenaltyRecord(ctx context.Context, tx *gorm.DB, groupID uint64, member string, isLate bool, penalty int64) error {
	record, err := cs.penaltyRepo.Get(ctx, tx, groupID, member)
	if err != nil {
		return fmt.Errorf("load penalty record: %w", err)
	}
	if record == nil {
		record = &types.MemberPenaltyRecord{GroupID: groupID, Member: member}
	}
	if isLate {
		record.LateCount++
	} else {
		record.OnTimeCount++
	}
	record.TotalPenalties += penalty
	if err := cs.penaltyRepo.Save(ctx, tx, record); err != nil {
		return fmt.Errorf("store penalty record: %w", err)
	}
	return nil
}
