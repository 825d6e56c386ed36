package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/types"
)

// GroupRepo owns the Group aggregate and its member rows. Reads load members
// in payout order. Writes are expected to run inside the caller's
// transaction so a group mutation is one fetch, one write.
type GroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, group *types.Group) (*types.Group, error)
	GetByID(ctx context.Context, tx *gorm.DB, groupID uint64) (*types.Group, error)
	Save(ctx context.Context, tx *gorm.DB, group *types.Group) error
	AddMember(ctx context.Context, tx *gorm.DB, member *types.GroupMember) error
	MarkPayoutReceived(ctx context.Context, tx *gorm.DB, groupID uint64, address string) error
}

type groupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGroupRepo(db *gorm.DB, baseLog *logger.Logger) GroupRepo {
	return &groupRepo{db: db, log: baseLog.With("repo", "GroupRepo")}
}

func (gr *groupRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return gr.db
}

func (gr *groupRepo) Create(ctx context.Context, tx *gorm.DB, group *types.Group) (*types.Group, error) {
	if err := gr.conn(tx).WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (gr *groupRepo) GetByID(ctx context.Context, tx *gorm.DB, groupID uint64) (*types.Group, error) {
	var group types.Group
	err := gr.conn(tx).WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&group, "id = ?", groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (gr *groupRepo) Save(ctx context.Context, tx *gorm.DB, group *types.Group) error {
	return gr.conn(tx).WithContext(ctx).
		Omit("Members").
		Save(group).Error
}

func (gr *groupRepo) AddMember(ctx context.Context, tx *gorm.DB, member *types.GroupMember) error {
	return gr.conn(tx).WithContext(ctx).Create(member).Error
}

func (gr *groupRepo) MarkPayoutReceived(ctx context.Context, tx *gorm.DB, groupID uint64, address string) error {
	return gr.conn(tx).WithContext(ctx).
		Model(&types.GroupMember{}).
		Where("group_id = ? AND address = ?", groupID, address).
		Update("payout_received", true).Error
}
