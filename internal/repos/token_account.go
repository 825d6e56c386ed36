package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/types"
)

type TokenAccountRepo interface {
	Get(ctx context.Context, tx *gorm.DB, token, address string) (*types.TokenAccount, error)
	Save(ctx context.Context, tx *gorm.DB, account *types.TokenAccount) error
}

type tokenAccountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTokenAccountRepo(db *gorm.DB, baseLog *logger.Logger) TokenAccountRepo {
	return &tokenAccountRepo{db: db, log: baseLog.With("repo", "TokenAccountRepo")}
}

func (tr *tokenAccountRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return tr.db
}

func (tr *tokenAccountRepo) Get(ctx context.Context, tx *gorm.DB, token, address string) (*types.TokenAccount, error) {
	var account types.TokenAccount
	err := tr.conn(tx).WithContext(ctx).
		First(&account, "token = ? AND address = ?", token, address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (tr *tokenAccountRepo) Save(ctx context.Context, tx *gorm.DB, account *types.TokenAccount) error {
	return tr.conn(tx).WithContext(ctx).Save(account).Error
}
