package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/types"
)

// SystemRepo loads and stores the singleton admin/pause row.
type SystemRepo interface {
	Get(ctx context.Context, tx *gorm.DB) (*types.SystemState, error)
	Save(ctx context.Context, tx *gorm.DB, state *types.SystemState) error
}

type systemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSystemRepo(db *gorm.DB, baseLog *logger.Logger) SystemRepo {
	return &systemRepo{db: db, log: baseLog.With("repo", "SystemRepo")}
}

func (sr *systemRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return sr.db
}

func (sr *systemRepo) Get(ctx context.Context, tx *gorm.DB) (*types.SystemState, error) {
	var state types.SystemState
	err := sr.conn(tx).WithContext(ctx).First(&state, "id = ?", types.SystemStateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (sr *systemRepo) Save(ctx context.Context, tx *gorm.DB, state *types.SystemState) error {
	state.ID = types.SystemStateID
	return sr.conn(tx).WithContext(ctx).Save(state).Error
}
