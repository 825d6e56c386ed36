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

// FileClaimInput carries the file_claim parameters. The claimant asserts
// that defaulter skipped the given cycle; verification checks the
// contribution records, duplicate-payout protection lives in processing.
type FileClaimInput struct {
	GroupID   uint64
	Cycle     int
	Claimant  string
	Defaulter string
	Amount    int64
}

// InsuranceService manages the premium-funded pool and the claim lifecycle:
// Pending -> Paid or Rejected, exactly once.
type InsuranceService interface {
	DepositToPool(ctx context.Context, depositor, token string, amount int64) (*types.InsurancePool, error)
	FileClaim(ctx context.Context, in FileClaimInput) (*types.InsuranceClaim, error)
	VerifyClaim(ctx context.Context, claimID uint64) (bool, error)
	ProcessClaim(ctx context.Context, claimID uint64, approved bool) (*types.InsuranceClaim, error)
	AutoProcessClaim(ctx context.Context, claimID uint64) (*types.InsuranceClaim, error)
	GetPool(ctx context.Context, token string) (*types.InsurancePool, error)
	GetClaim(ctx context.Context, claimID uint64) (*types.InsuranceClaim, error)
}

type insuranceService struct {
	db           *gorm.DB
	log          *logger.Logger
	groupRepo    repos.GroupRepo
	contribRepo  repos.ContributionRepo
	poolRepo     repos.InsurancePoolRepo
	claimRepo    repos.InsuranceClaimRepo
	ledger       LedgerService
	adminService AdminService
	clock        clock.Clock
	sink         events.Sink
}

func NewInsuranceService(
	db *gorm.DB,
	log *logger.Logger,
	groupRepo repos.GroupRepo,
	contribRepo repos.ContributionRepo,
	poolRepo repos.InsurancePoolRepo,
	claimRepo repos.InsuranceClaimRepo,
	ledger LedgerService,
	adminService AdminService,
	clk clock.Clock,
	sink events.Sink,
) InsuranceService {
	return &insuranceService{
		db:           db,
		log:          log.With("service", "InsuranceService"),
		groupRepo:    groupRepo,
		contribRepo:  contribRepo,
		poolRepo:     poolRepo,
		claimRepo:    claimRepo,
		ledger:       ledger,
		adminService: adminService,
		clock:        clk,
		sink:         sink,
	}
}

// DepositToPool moves the depositor's tokens into escrow and books them to
// the pool. The pool row is created lazily on first deposit.
func (is *insuranceService) DepositToPool(ctx context.Context, depositor, token string, amount int64) (*types.InsurancePool, error) {
	if err := is.adminService.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}
	if err := requireCaller(ctx, depositor); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, ajo.ErrContributionAmountZero
	}

	var pool *types.InsurancePool
	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := is.ledger.Transfer(ctx, tx, token, depositor, is.ledger.EscrowAddress(), amount); err != nil {
			return err
		}
		var err error
		pool, err = is.poolRepo.Get(ctx, tx, token)
		if err != nil {
			return fmt.Errorf("load insurance pool: %w", err)
		}
		if pool == nil {
			pool = &types.InsurancePool{Token: token}
		}
		pool.Balance += amount
		if err := is.poolRepo.Save(ctx, tx, pool); err != nil {
			return fmt.Errorf("store insurance pool: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	is.log.Info("Pool deposit", "token", token, "amount", amount, "balance", pool.Balance)
	return pool, nil
}

func (is *insuranceService) FileClaim(ctx context.Context, in FileClaimInput) (*types.InsuranceClaim, error) {
	if err := is.adminService.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}
	if err := requireCaller(ctx, in.Claimant); err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, ajo.ErrContributionAmountZero
	}

	now := is.clock.Now()
	var claim *types.InsuranceClaim
	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := is.groupRepo.GetByID(ctx, tx, in.GroupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		if group == nil {
			return ajo.ErrGroupNotFound
		}

		claim = &types.InsuranceClaim{
			GroupID:   in.GroupID,
			Cycle:     in.Cycle,
			Defaulter: in.Defaulter,
			Claimant:  in.Claimant,
			Amount:    in.Amount,
			Status:    ajo.ClaimPending,
			CreatedAt: now,
		}
		if _, err := is.claimRepo.Create(ctx, tx, claim); err != nil {
			return fmt.Errorf("store claim: %w", err)
		}

		pool, err := is.poolRepo.Get(ctx, tx, group.Token)
		if err != nil {
			return fmt.Errorf("load insurance pool: %w", err)
		}
		if pool == nil {
			pool = &types.InsurancePool{Token: group.Token}
		}
		pool.PendingClaimsCount++
		if err := is.poolRepo.Save(ctx, tx, pool); err != nil {
			return fmt.Errorf("store insurance pool: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	is.log.Info("Claim filed", "claim_id", claim.ID, "group_id", in.GroupID, "defaulter", in.Defaulter)
	emit(ctx, is.log, is.sink, events.TypeClaimFiled, in.GroupID, now, map[string]any{
		"claim_id":  claim.ID,
		"cycle":     in.Cycle,
		"claimant":  in.Claimant,
		"defaulter": in.Defaulter,
		"amount":    in.Amount,
	})
	return claim, nil
}

// VerifyClaim reduces to "did the defaulter actually default": valid iff no
// contribution record exists for (group, cycle, defaulter).
func (is *insuranceService) VerifyClaim(ctx context.Context, claimID uint64) (bool, error) {
	claim, err := is.claimRepo.GetByID(ctx, nil, claimID)
	if err != nil {
		return false, fmt.Errorf("load claim: %w", err)
	}
	if claim == nil {
		return false, ajo.ErrInvalidClaim
	}
	contributed, err := is.contribRepo.Exists(ctx, nil, claim.GroupID, claim.Cycle, claim.Defaulter)
	if err != nil {
		return false, fmt.Errorf("check contribution: %w", err)
	}
	return !contributed, nil
}

// ProcessClaim is the admin decision path.
func (is *insuranceService) ProcessClaim(ctx context.Context, claimID uint64, approved bool) (*types.InsuranceClaim, error) {
	if err := is.adminService.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}
	if err := is.adminService.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return is.processClaim(ctx, claimID, approved)
}

// AutoProcessClaim composes verification and processing: the claim's fate
// follows the contribution records, so no admin judgement is involved.
func (is *insuranceService) AutoProcessClaim(ctx context.Context, claimID uint64) (*types.InsuranceClaim, error) {
	if err := is.adminService.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}
	valid, err := is.VerifyClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	return is.processClaim(ctx, claimID, valid)
}

func (is *insuranceService) processClaim(ctx context.Context, claimID uint64, approved bool) (*types.InsuranceClaim, error) {
	now := is.clock.Now()
	var claim *types.InsuranceClaim
	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		claim, err = is.claimRepo.GetByID(ctx, tx, claimID)
		if err != nil {
			return fmt.Errorf("load claim: %w", err)
		}
		if claim == nil {
			return ajo.ErrInvalidClaim
		}
		if claim.Status != ajo.ClaimPending {
			return ajo.ErrClaimAlreadyProcessed
		}

		group, err := is.groupRepo.GetByID(ctx, tx, claim.GroupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		if group == nil {
			return ajo.ErrGroupNotFound
		}
		pool, err := is.poolRepo.Get(ctx, tx, group.Token)
		if err != nil {
			return fmt.Errorf("load insurance pool: %w", err)
		}
		if pool == nil {
			return ajo.ErrPoolNotFound
		}

		if approved {
			if pool.Balance < claim.Amount {
				return ajo.ErrInsufficientPoolBalance
			}
			pool.Balance -= claim.Amount
			pool.TotalPayouts += claim.Amount
			claim.Status = ajo.ClaimPaid
			if err := is.ledger.TransferFromEscrow(ctx, tx, group.Token, claim.Claimant, claim.Amount); err != nil {
				return err
			}
		} else {
			claim.Status = ajo.ClaimRejected
		}

		pool.PendingClaimsCount--
		if err := is.poolRepo.Save(ctx, tx, pool); err != nil {
			return fmt.Errorf("store insurance pool: %w", err)
		}
		if err := is.claimRepo.Save(ctx, tx, claim); err != nil {
			return fmt.Errorf("store claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	is.log.Info("Claim processed", "claim_id", claim.ID, "status", claim.Status)
	emit(ctx, is.log, is.sink, events.TypeClaimProcessed, claim.GroupID, now, map[string]any{
		"claim_id": claim.ID,
		"status":   claim.Status,
		"amount":   claim.Amount,
	})
	return claim, nil
}

func (is *insuranceService) GetPool(ctx context.Context, token string) (*types.InsurancePool, error) {
	pool, err := is.poolRepo.Get(ctx, nil, token)
	if err != nil {
		return nil, fmt.Errorf("load insurance pool: %w", err)
	}
	if pool == nil {
		return nil, ajo.ErrPoolNotFound
	}
	return pool, nil
}

func (is *insuranceService) GetClaim(ctx context.Context, claimID uint64) (*types.InsuranceClaim, error) {
	claim, err := is.claimRepo.GetByID(ctx, nil, claimID)
	if err != nil {
		return nil, fmt.Errorf("load claim: %w", err)
	}
	if claim == nil {
		return nil, ajo.ErrInvalidClaim
	}
	return claim, nil
}
