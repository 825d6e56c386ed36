package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/types"
)

type RefundRepo interface {
	CreateRequest(ctx context.Context, tx *gorm.DB, request *types.RefundRequest) error
	GetRequestByGroup(ctx context.Context, tx *gorm.DB, groupID uint64) (*types.RefundRequest, error)
	SaveRequest(ctx context.Context, tx *gorm.DB, request *types.RefundRequest) error
	CreateVote(ctx context.Context, tx *gorm.DB, vote *types.RefundVote) error
	HasVoted(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, voter string) (bool, error)
	ListVotes(ctx context.Context, tx *gorm.DB, requestID uuid.UUID) ([]*types.RefundVote, error)
}

type refundRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRefundRepo(db *gorm.DB, baseLog *logger.Logger) RefundRepo {
	return &refundRepo{db: db, log: baseLog.With("repo", "RefundRepo")}
}

func (rr *refundRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *refundRepo) CreateRequest(ctx context.Context, tx *gorm.DB, request *types.RefundRequest) error {
	return rr.conn(tx).WithContext(ctx).Create(request).Error
}

func (rr *refundRepo) GetRequestByGroup(ctx context.Context, tx *gorm.DB, groupID uint64) (*types.RefundRequest, error) {
	var request types.RefundRequest
	err := rr.conn(tx).WithContext(ctx).First(&request, "group_id = ?", groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (rr *refundRepo) SaveRequest(ctx context.Context, tx *gorm.DB, request *types.RefundRequest) error {
	return rr.conn(tx).WithContext(ctx).Save(request).Error
}

func (rr *refundRepo) CreateVote(ctx context.Context, tx *gorm.DB, vote *types.RefundVote) error {
	return rr.conn(tx).WithContext(ctx).Create(vote).Error
}

func (rr *refundRepo) HasVoted(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, voter string) (bool, error) {
	var count int64
	err := rr.conn(tx).WithContext(ctx).
		Model(&types.RefundVote{}).
		Where("request_id = ? AND voter = ?", requestID, voter).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (rr *refundRepo) ListVotes(ctx context.Context, tx *gorm.DB, requestID uuid.UUID) ([]*types.RefundVote, error) {
	var votes []*types.RefundVote
	err := rr.conn(tx).WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("cast_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}
