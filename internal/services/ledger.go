package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/repos"
	"github.com/yungbote/ajo-backend/internal/types"
)

// LedgerService is the fungible-token collaborator. This implementation
// keeps balances in the ajo_token_account table; a chain gateway can
// replace it behind the same interface. The escrow address holds pooled
// contributions and the insurance pool's backing funds.
type LedgerService interface {
	EscrowAddress() string
	Balance(ctx context.Context, tx *gorm.DB, token, address string) (int64, error)
	Transfer(ctx context.Context, tx *gorm.DB, token, from, to string, amount int64) error
	TransferFromEscrow(ctx context.Context, tx *gorm.DB, token, to string, amount int64) error
	Mint(ctx context.Context, tx *gorm.DB, token, address string, amount int64) error
}

type ledgerService struct {
	db     *gorm.DB
	log    *logger.Logger
	repo   repos.TokenAccountRepo
	escrow string
}

func NewLedgerService(db *gorm.DB, log *logger.Logger, repo repos.TokenAccountRepo, escrowAddress string) LedgerService {
	return &ledgerService{
		db:     db,
		log:    log.With("service", "LedgerService"),
		repo:   repo,
		escrow: escrowAddress,
	}
}

func (ls *ledgerService) EscrowAddress() string {
	return ls.escrow
}

func (ls *ledgerService) Balance(ctx context.Context, tx *gorm.DB, token, address string) (int64, error) {
	account, err := ls.repo.Get(ctx, tx, token, address)
	if err != nil {
		return 0, fmt.Errorf("load token account: %w", err)
	}
	if account == nil {
		return 0, nil
	}
	return account.Balance, nil
}

// Transfer debits from and credits to within the caller's transaction.
// Fails InsufficientBalance without partial effect.
func (ls *ledgerService) Transfer(ctx context.Context, tx *gorm.DB, token, from, to string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	fromAccount, err := ls.repo.Get(ctx, tx, token, from)
	if err != nil {
		return fmt.Errorf("load token account: %w", err)
	}
	if fromAccount == nil || fromAccount.Balance < amount {
		if from == ls.escrow {
			return ajo.ErrInsufficientContractBalance
		}
		return ajo.ErrInsufficientBalance
	}
	fromAccount.Balance -= amount
	if err := ls.repo.Save(ctx, tx, fromAccount); err != nil {
		return fmt.Errorf("store token account: %w", err)
	}
	return ls.credit(ctx, tx, token, to, amount)
}

func (ls *ledgerService) TransferFromEscrow(ctx context.Context, tx *gorm.DB, token, to string, amount int64) error {
	return ls.Transfer(ctx, tx, token, ls.escrow, to, amount)
}

// Mint credits an address out of thin air. Deployment seeding and tests
// only; production balances arrive through the deposit gateway.
func (ls *ledgerService) Mint(ctx context.Context, tx *gorm.DB, token, address string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	return ls.credit(ctx, tx, token, address, amount)
}

func (ls *ledgerService) credit(ctx context.Context, tx *gorm.DB, token, address string, amount int64) error {
	account, err := ls.repo.Get(ctx, tx, token, address)
	if err != nil {
		return fmt.Errorf("load token account: %w", err)
	}
	if account == nil {
		account = &types.TokenAccount{Token: token, Address: address}
	}
	account.Balance += amount
	if err := ls.repo.Save(ctx, tx, account); err != nil {
		return fmt.Errorf("store token account: %w", err)
	}
	return nil
}
