package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/types"
)

type PayoutRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.PayoutRecord) error
	Exists(ctx context.Context, tx *gorm.DB, groupID uint64, member string) (bool, error)
	ListByGroup(ctx context.Context, tx *gorm.DB, groupID uint64) ([]*types.PayoutRecord, error)
}

type payoutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPayoutRepo(db *gorm.DB, baseLog *logger.Logger) PayoutRepo {
	return &payoutRepo{db: db, log: baseLog.With("repo", "PayoutRepo")}
}

func (pr *payoutRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *payoutRepo) Create(ctx context.Context, tx *gorm.DB, record *types.PayoutRecord) error {
	return pr.conn(tx).WithContext(ctx).Create(record).Error
}

func (pr *payoutRepo) Exists(ctx context.Context, tx *gorm.DB, groupID uint64, member string) (bool, error) {
	var count int64
	err := pr.conn(tx).WithContext(ctx).
		Model(&types.PayoutRecord{}).
		Where("group_id = ? AND member = ?", groupID, member).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *payoutRepo) ListByGroup(ctx context.Context, tx *gorm.DB, groupID uint64) ([]*types.PayoutRecord, error) {
	var records []*types.PayoutRecord
	err := pr.conn(tx).WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("paid_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
