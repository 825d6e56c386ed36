package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/types"
)

type PenaltyRepo interface {
	Get(ctx context.Context, tx *gorm.DB, groupID uint64, member string) (*types.MemberPenaltyRecord, error)
	Save(ctx context.Context, tx *gorm.DB, record *types.MemberPenaltyRecord) error
	ListByGroup(ctx context.Context, tx *gorm.DB, groupID uint64) ([]*types.MemberPenaltyRecord, error)
}

type penaltyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPenaltyRepo(db *gorm.DB, baseLog *logger.Logger) PenaltyRepo {
	return &penaltyRepo{db: db, log: baseLog.With("repo", "PenaltyRepo")}
}

func (pr *penaltyRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *penaltyRepo) Get(ctx context.Context, tx *gorm.DB, groupID uint64, member string) (*types.MemberPenaltyRecord, error) {
	var record types.MemberPenaltyRecord
	err := pr.conn(tx).WithContext(ctx).
		First(&record, "group_id = ? AND member = ?", groupID, member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (pr *penaltyRepo) Save(ctx context.Context, tx *gorm.DB, record *types.MemberPenaltyRecord) error {
	return pr.conn(tx).WithContext(ctx).Save(record).Error
}

func (pr *penaltyRepo) ListByGroup(ctx context.Context, tx *gorm.DB, groupID uint64) ([]*types.MemberPenaltyRecord, error) {
	var records []*types.MemberPenaltyRecord
	err := pr.conn(tx).WithContext(ctx).
		Where("group_id = ?", groupID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
