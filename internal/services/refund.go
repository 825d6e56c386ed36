package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
	"github.com/yungbote/ajo-backend/internal/events"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/platform/clock"
	"github.com/yungbote/ajo-backend/internal/repos"
	"github.com/yungbote/ajo-backend/internal/types"
)

// RefundService covers both exit paths: creator cancellation before the
// first payout, and the member-voted refund with a fixed voting window and
// a 51% approval threshold. Either path returns every recorded
// current-cycle contribution to its payer and leaves the group Cancelled.
type RefundService interface {
	CancelGroup(ctx context.Context, groupID uint64) error
	RequestRefund(ctx context.Context, requester string, groupID uint64) (*types.RefundRequest, error)
	CastVote(ctx context.Context, voter string, groupID uint64, approve bool) (*types.RefundRequest, error)
	ResolveRefund(ctx context.Context, groupID uint64) (*types.RefundRequest, error)
	GetRequest(ctx context.Context, groupID uint64) (*types.RefundRequest, error)
}

type refundService struct {
	db           *gorm.DB
	log          *logger.Logger
	groupRepo    repos.GroupRepo
	contribRepo  repos.ContributionRepo
	refundRepo   repos.RefundRepo
	ledger       LedgerService
	adminService AdminService
	clock        clock.Clock
	sink         events.Sink
	votingWindow int64
}

func NewRefundService(
	db *gorm.DB,
	log *logger.Logger,
	groupRepo repos.GroupRepo,
	contribRepo repos.ContributionRepo,
	refundRepo repos.RefundRepo,
	ledger LedgerService,
	adminService AdminService,
	clk clock.Clock,
	sink events.Sink,
	votingWindow int64,
) RefundService {
	if votingWindow <= 0 {
		votingWindow = ajo.DefaultVotingWindow
	}
	return &refundService{
		db:           db,
		log:          log.With("service", "RefundService"),
		groupRepo:    groupRepo,
		contribRepo:  contribRepo,
		refundRepo:   refundRepo,
		ledger:       ledger,
		adminService: adminService,
		clock:        clk,
		sink:         sink,
		votingWindow: votingWindow,
	}
}

// CancelGroup is the creator's escape hatch, allowed only while no payout
// has been executed.
func (rs *refundService) CancelGroup(ctx context.Context, groupID uint64) error {
	if err := rs.adminService.EnsureNotPaused(ctx); err != nil {
		return err
	}

	now := rs.clock.Now()
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := rs.groupRepo.GetByID(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		if group == nil {
			return ajo.ErrGroupNotFound
		}
		if err := requireCaller(ctx, group.Creator); err != nil {
			return err
		}
		if err := ensureActive(group); err != nil {
			return err
		}
		if group.PayoutIndex > 0 {
			return ajo.ErrPayoutAlreadyStarted
		}
		if err := rs.refundCycleContributions(ctx, tx, group); err != nil {
			return err
		}
		group.State = ajo.StateCancelled
		group.PenaltyPool = 0
		return rs.groupRepo.Save(ctx, tx, group)
	})
	if err != nil {
		return err
	}

	rs.log.Info("Group cancelled by creator", "group_id", groupID)
	emit(ctx, rs.log, rs.sink, events.TypeGroupCancelled, groupID, now, map[string]any{
		"reason": "creator_cancel",
	})
	emit(ctx, rs.log, rs.sink, events.TypeRefundExecuted, groupID, now, nil)
	return nil
}

func (rs *refundService) RequestRefund(ctx context.Context, requester string, groupID uint64) (*types.RefundRequest, error) {
	if err := rs.adminService.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}
	if err := requireCaller(ctx, requester); err != nil {
		return nil, err
	}

	now := rs.clock.Now()
	var request *types.RefundRequest
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := rs.groupRepo.GetByID(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		if group == nil {
			return ajo.ErrGroupNotFound
		}
		if err := ensureActive(group); err != nil {
			return err
		}
		if !group.HasMember(requester) {
			return ajo.ErrNotMember
		}
		existing, err := rs.refundRepo.GetRequestByGroup(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load refund request: %w", err)
		}
		if existing != nil {
			return ajo.ErrRefundAlreadyRequested
		}
		request = &types.RefundRequest{
			ID:             uuid.New(),
			GroupID:        groupID,
			Requester:      requester,
			CreatedAt:      now,
			VotingDeadline: now + rs.votingWindow,
		}
		return rs.refundRepo.CreateRequest(ctx, tx, request)
	})
	if err != nil {
		return nil, err
	}

	rs.log.Info("Refund requested", "group_id", groupID, "requester", requester)
	emit(ctx, rs.log, rs.sink, events.TypeRefundRequested, groupID, now, map[string]any{
		"requester":       requester,
		"voting_deadline": request.VotingDeadline,
	})
	return request, nil
}

// CastVote records one immutable, exclusive-or vote per member. Once every
// member has voted the request resolves immediately; otherwise it waits for
// the deadline and an explicit ResolveRefund call.
func (rs *refundService) CastVote(ctx context.Context, voter string, groupID uint64, approve bool) (*types.RefundRequest, error) {
	if err := rs.adminService.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}
	if err := requireCaller(ctx, voter); err != nil {
		return nil, err
	}

	now := rs.clock.Now()
	var request *types.RefundRequest
	var resolved bool
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := rs.groupRepo.GetByID(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		if group == nil {
			return ajo.ErrGroupNotFound
		}
		if err := ensureActive(group); err != nil {
			return err
		}
		if !group.HasMember(voter) {
			return ajo.ErrNotMember
		}
		request, err = rs.refundRepo.GetRequestByGroup(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load refund request: %w", err)
		}
		if request == nil {
			return ajo.ErrRefundNotFound
		}
		if request.Executed {
			return ajo.ErrRefundAlreadyExecuted
		}
		if ajo.VotingClosed(now, request.VotingDeadline) {
			return ajo.ErrVotingClosed
		}
		voted, err := rs.refundRepo.HasVoted(ctx, tx, request.ID, voter)
		if err != nil {
			return fmt.Errorf("check vote: %w", err)
		}
		if voted {
			return ajo.ErrAlreadyVoted
		}

		vote := &types.RefundVote{
			ID:        uuid.New(),
			RequestID: request.ID,
			GroupID:   groupID,
			Voter:     voter,
			Approve:   approve,
			CastAt:    now,
		}
		if err := rs.refundRepo.CreateVote(ctx, tx, vote); err != nil {
			return fmt.Errorf("store vote: %w", err)
		}
		if approve {
			request.VotesFor++
		} else {
			request.VotesAgainst++
		}

		if request.VotesFor+request.VotesAgainst >= len(group.Members) {
			if err := rs.resolveTx(ctx, tx, group, request); err != nil {
				return err
			}
			resolved = true
		}
		return rs.refundRepo.SaveRequest(ctx, tx, request)
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, rs.log, rs.sink, events.TypeRefundVoteCast, groupID, now, map[string]any{
		"voter":   voter,
		"approve": approve,
	})
	if resolved {
		rs.emitResolution(ctx, groupID, request, now)
	}
	return request, nil
}

// ResolveRefund finalizes a request after its deadline.
func (rs *refundService) ResolveRefund(ctx context.Context, groupID uint64) (*types.RefundRequest, error) {
	if err := rs.adminService.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}

	now := rs.clock.Now()
	var request *types.RefundRequest
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := rs.groupRepo.GetByID(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		if group == nil {
			return ajo.ErrGroupNotFound
		}
		request, err = rs.refundRepo.GetRequestByGroup(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load refund request: %w", err)
		}
		if request == nil {
			return ajo.ErrRefundNotFound
		}
		if request.Executed {
			return ajo.ErrRefundAlreadyExecuted
		}
		// A request cannot outlive its group. Once the group is Complete
		// or Cancelled there is nothing left to refund; the request
		// resolves executed and not approved.
		if err := ensureActive(group); err != nil {
			request.Executed = true
			request.Approved = false
			return rs.refundRepo.SaveRequest(ctx, tx, request)
		}
		allVoted := request.VotesFor+request.VotesAgainst >= len(group.Members)
		if !ajo.VotingClosed(now, request.VotingDeadline) && !allVoted {
			return ajo.ErrVotingStillOpen
		}
		if err := rs.resolveTx(ctx, tx, group, request); err != nil {
			return err
		}
		return rs.refundRepo.SaveRequest(ctx, tx, request)
	})
	if err != nil {
		return nil, err
	}

	rs.emitResolution(ctx, groupID, request, now)
	return request, nil
}

func (rs *refundService) GetRequest(ctx context.Context, groupID uint64) (*types.RefundRequest, error) {
	request, err := rs.refundRepo.GetRequestByGroup(ctx, nil, groupID)
	if err != nil {
		return nil, fmt.Errorf("load refund request: %w", err)
	}
	if request == nil {
		return nil, ajo.ErrRefundNotFound
	}
	return request, nil
}

// resolveTx marks the request executed and, on approval, refunds the cycle
// and cancels the group. The caller persists the request.
func (rs *refundService) resolveTx(ctx context.Context, tx *gorm.DB, group *types.Group, request *types.RefundRequest) error {
	request.Executed = true
	request.Approved = ajo.RefundApproved(request.VotesFor, request.VotesAgainst)
	if !request.Approved {
		return nil
	}
	if err := rs.refundCycleContributions(ctx, tx, group); err != nil {
		return err
	}
	group.State = ajo.StateCancelled
	group.PenaltyPool = 0
	return rs.groupRepo.Save(ctx, tx, group)
}

// refundCycleContributions returns every recorded current-cycle
// contribution (escrowed amount plus penalty) to its payer. Insurance
// premiums stay in the pool: coverage was live while the cycle ran.
func (rs *refundService) refundCycleContributions(ctx context.Context, tx *gorm.DB, group *types.Group) error {
	records, err := rs.contribRepo.ListByCycle(ctx, tx, group.ID, group.CurrentCycle)
	if err != nil {
		return fmt.Errorf("list contributions: %w", err)
	}
	for _, r := range records {
		refund := r.Amount + r.Penalty
		if err := rs.ledger.TransferFromEscrow(ctx, tx, group.Token, r.Member, refund); err != nil {
			return err
		}
	}
	return nil
}

func (rs *refundService) emitResolution(ctx context.Context, groupID uint64, request *types.RefundRequest, now int64) {
	rs.log.Info("Refund request resolved",
		"group_id", groupID, "approved", request.Approved,
		"votes_for", request.VotesFor, "votes_against", request.VotesAgainst)
	emit(ctx, rs.log, rs.sink, events.TypeRefundExecuted, groupID, now, map[string]any{
		"approved":      request.Approved,
		"votes_for":     request.VotesFor,
		"votes_against": request.VotesAgainst,
	})
	if request.Approved {
		emit(ctx, rs.log, rs.sink, events.TypeGroupCancelled, groupID, now, map[string]any{
			"reason": "refund_vote",
		})
	}
}
