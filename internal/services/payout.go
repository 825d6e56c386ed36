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

// PayoutService rotates the pooled pot through members. Executing a payout
// pays members[payout_index], advances the index, and either opens the next
// cycle or marks the group complete once everyone has been paid.
type PayoutService interface {
	ExecutePayout(ctx context.Context, groupID uint64) (*types.PayoutRecord, error)
}

type payoutService struct {
	db           *gorm.DB
	log          *logger.Logger
	groupRepo    repos.GroupRepo
	contribRepo  repos.ContributionRepo
	payoutRepo   repos.PayoutRepo
	ledger       LedgerService
	adminService AdminService
	clock        clock.Clock
	sink         events.Sink
}

func NewPayoutService(
	db *gorm.DB,
	log *logger.Logger,
	groupRepo repos.GroupRepo,
	contribRepo repos.ContributionRepo,
	payoutRepo repos.PayoutRepo,
	ledger LedgerService,
	adminService AdminService,
	clk clock.Clock,
	sink events.Sink,
) PayoutService {
	return &payoutService{
		db:           db,
		log:          log.With("service", "PayoutService"),
		groupRepo:    groupRepo,
		contribRepo:  contribRepo,
		payoutRepo:   payoutRepo,
		ledger:       ledger,
		adminService: adminService,
		clock:        clk,
		sink:         sink,
	}
}

func (ps *payoutService) ExecutePayout(ctx context.Context, groupID uint64) (*types.PayoutRecord, error) {
	if err := ps.adminService.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}

	now := ps.clock.Now()
	var record *types.PayoutRecord
	var completed bool
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := ps.groupRepo.GetByID(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		if group == nil {
			return ajo.ErrGroupNotFound
		}
		if err := ensureActive(group); err != nil {
			return err
		}
		if len(group.Members) == 0 || group.PayoutIndex >= len(group.Members) {
			return ajo.ErrNoMembers
		}

		records, err := ps.contribRepo.ListByCycle(ctx, tx, groupID, group.CurrentCycle)
		if err != nil {
			return fmt.Errorf("list contributions: %w", err)
		}
		if len(records) < len(group.Members) {
			return ajo.ErrIncompleteContributions
		}

		recipient := group.Members[group.PayoutIndex]
		alreadyPaid, err := ps.payoutRepo.Exists(ctx, tx, groupID, recipient.Address)
		if err != nil {
			return fmt.Errorf("check payout: %w", err)
		}
		if alreadyPaid {
			return ajo.ErrAlreadyReceivedPayout
		}

		// The pot is what was actually escrowed this cycle: credited
		// contributions (net of insurance premiums) plus penalties. With
		// insurance disabled this is exactly contribution_amount * members
		// + penalty pool.
		var amount int64
		for _, r := range records {
			amount += r.Amount
		}
		amount += group.PenaltyPool

		if err := ps.ledger.TransferFromEscrow(ctx, tx, group.Token, recipient.Address, amount); err != nil {
			return err
		}

		record = &types.PayoutRecord{
			GroupID: groupID,
			Member:  recipient.Address,
			Cycle:   group.CurrentCycle,
			Amount:  amount,
			PaidAt:  now,
		}
		if err := ps.payoutRepo.Create(ctx, tx, record); err != nil {
			return fmt.Errorf("store payout: %w", err)
		}
		if err := ps.groupRepo.MarkPayoutReceived(ctx, tx, groupID, recipient.Address); err != nil {
			return fmt.Errorf("mark payout received: %w", err)
		}

		group.PayoutIndex++
		if group.PayoutIndex >= len(group.Members) {
			group.State = ajo.StateComplete
			completed = true
		} else {
			group.CurrentCycle++
			group.CycleStartTime = now
			group.PenaltyPool = 0
		}
		if err := ps.groupRepo.Save(ctx, tx, group); err != nil {
			return fmt.Errorf("store group: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.log.Info("Payout executed",
		"group_id", groupID, "recipient", record.Member, "cycle", record.Cycle, "amount", record.Amount)
	emit(ctx, ps.log, ps.sink, events.TypePayoutExecuted, groupID, now, map[string]any{
		"recipient": record.Member,
		"cycle":     record.Cycle,
		"amount":    record.Amount,
	})
	if completed {
		emit(ctx, ps.log, ps.sink, events.TypeGroupCompleted, groupID, now, nil)
	}
	return record, nil
}
