package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/types"
)

type InsurancePoolRepo interface {
	Get(ctx context.Context, tx *gorm.DB, token string) (*types.InsurancePool, error)
	Save(ctx context.Context, tx *gorm.DB, pool *types.InsurancePool) error
}

type insurancePoolRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsurancePoolRepo(db *gorm.DB, baseLog *logger.Logger) InsurancePoolRepo {
	return &insurancePoolRepo{db: db, log: baseLog.With("repo", "InsurancePoolRepo")}
}

func (ir *insurancePoolRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ir.db
}

func (ir *insurancePoolRepo) Get(ctx context.Context, tx *gorm.DB, token string) (*types.InsurancePool, error) {
	var pool types.InsurancePool
	err := ir.conn(tx).WithContext(ctx).First(&pool, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func (ir *insurancePoolRepo) Save(ctx context.Context, tx *gorm.DB, pool *types.InsurancePool) error {
	return ir.conn(tx).WithContext(ctx).Save(pool).Error
}

type InsuranceClaimRepo interface {
	Create(ctx context.Context, tx *gorm.DB, claim *types.InsuranceClaim) (*types.InsuranceClaim, error)
	GetByID(ctx context.Context, tx *gorm.DB, claimID uint64) (*types.InsuranceClaim, error)
	Save(ctx context.Context, tx *gorm.DB, claim *types.InsuranceClaim) error
	ListByGroup(ctx context.Context, tx *gorm.DB, groupID uint64) ([]*types.InsuranceClaim, error)
}

type insuranceClaimRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsuranceClaimRepo(db *gorm.DB, baseLog *logger.Logger) InsuranceClaimRepo {
	return &insuranceClaimRepo{db: db, log: baseLog.With("repo", "InsuranceClaimRepo")}
}

func (ir *insuranceClaimRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ir.db
}

func (ir *insuranceClaimRepo) Create(ctx context.Context, tx *gorm.DB, claim *types.InsuranceClaim) (*types.InsuranceClaim, error) {
	if err := ir.conn(tx).WithContext(ctx).Create(claim).Error; err != nil {
		return nil, err
	}
	return claim, nil
}

func (ir *insuranceClaimRepo) GetByID(ctx context.Context, tx *gorm.DB, claimID uint64) (*types.InsuranceClaim, error) {
	var claim types.InsuranceClaim
	err := ir.conn(tx).WithContext(ctx).First(&claim, "id = ?", claimID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (ir *insuranceClaimRepo) Save(ctx context.Context, tx *gorm.DB, claim *types.InsuranceClaim) error {
	return ir.conn(tx).WithContext(ctx).Save(claim).Error
}

func (ir *insuranceClaimRepo) ListByGroup(ctx context.Context, tx *gorm.DB, groupID uint64) ([]*types.InsuranceClaim, error) {
	var claims []*types.InsuranceClaim
	err := ir.conn(tx).WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}
