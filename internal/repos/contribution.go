package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/types"
)

type ContributionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.ContributionRecord) error
	Get(ctx context.Context, tx *gorm.DB, groupID uint64, cycle int, member string) (*types.ContributionRecord, error)
	Exists(ctx context.Context, tx *gorm.DB, groupID uint64, cycle int, member string) (bool, error)
	ListByCycle(ctx context.Context, tx *gorm.DB, groupID uint64, cycle int) ([]*types.ContributionRecord, error)
	CountUpToCycle(ctx context.Context, tx *gorm.DB, groupID uint64, cycle int) (int64, error)
}

type contributionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContributionRepo(db *gorm.DB, baseLog *logger.Logger) ContributionRepo {
	return &contributionRepo{db: db, log: baseLog.With("repo", "ContributionRepo")}
}

func (cr *contributionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *contributionRepo) Create(ctx context.Context, tx *gorm.DB, record *types.ContributionRecord) error {
	return cr.conn(tx).WithContext(ctx).Create(record).Error
}

func (cr *contributionRepo) Get(ctx context.Context, tx *gorm.DB, groupID uint64, cycle int, member string) (*types.ContributionRecord, error) {
	var record types.ContributionRecord
	err := cr.conn(tx).WithContext(ctx).
		First(&record, "group_id = ? AND cycle = ? AND member = ?", groupID, cycle, member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (cr *contributionRepo) Exists(ctx context.Context, tx *gorm.DB, groupID uint64, cycle int, member string) (bool, error) {
	var count int64
	err := cr.conn(tx).WithContext(ctx).
		Model(&types.ContributionRecord{}).
		Where("group_id = ? AND cycle = ? AND member = ?", groupID, cycle, member).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *contributionRepo) ListByCycle(ctx context.Context, tx *gorm.DB, groupID uint64, cycle int) ([]*types.ContributionRecord, error) {
	var records []*types.ContributionRecord
	err := cr.conn(tx).WithContext(ctx).
		Where("group_id = ? AND cycle = ?", groupID, cycle).
		Order("contributed_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (cr *contributionRepo) CountUpToCycle(ctx context.Context, tx *gorm.DB, groupID uint64, cycle int) (int64, error) {
	var count int64
	err := cr.conn(tx).WithContext(ctx).
		Model(&types.ContributionRecord{}).
		Where("group_id = ? AND cycle <= ?", groupID, cycle).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
