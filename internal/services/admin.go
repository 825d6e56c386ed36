package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
	"github.com/yungbote/ajo-backend/internal/events"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/platform/clock"
	"github.com/yungbote/ajo-backend/internal/repos"
	"github.com/yungbote/ajo-backend/internal/requestdata"
	"github.com/yungbote/ajo-backend/internal/types"
)

// AdminService owns the singleton admin/pause record. Pause gates every
// state-mutating operation; queries and admin operations stay available
// while paused.
type AdminService interface {
	Initialize(ctx context.Context, admin, adminKey string) error
	Pause(ctx context.Context) error
	Unpause(ctx context.Context) error
	Upgrade(ctx context.Context, newCodeHash string) error
	State(ctx context.Context) (*types.SystemState, error)
	EnsureNotPaused(ctx context.Context) error
	RequireAdmin(ctx context.Context) error
}

type adminService struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  repos.SystemRepo
	clock clock.Clock
	sink  events.Sink
}

func NewAdminService(db *gorm.DB, log *logger.Logger, repo repos.SystemRepo, clk clock.Clock, sink events.Sink) AdminService {
	return &adminService{
		db:    db,
		log:   log.With("service", "AdminService"),
		repo:  repo,
		clock: clk,
		sink:  sink,
	}
}

// Initialize sets the admin exactly once. The optional adminKey is stored
// bcrypt-hashed and accepted as an alternative admin credential.
func (as *adminService) Initialize(ctx context.Context, admin, adminKey string) error {
	if admin == "" {
		return ajo.ErrUnauthorized
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := as.repo.Get(ctx, tx)
		if err != nil {
			return fmt.Errorf("load system state: %w", err)
		}
		if state != nil && state.Initialized {
			return ajo.ErrAlreadyInitialized
		}
		if state == nil {
			state = &types.SystemState{}
		}
		state.Initialized = true
		state.Admin = admin
		state.UpdatedAt = as.clock.Now()
		if adminKey != "" {
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.DefaultCost)
			if hashErr != nil {
				return fmt.Errorf("hash admin key: %w", hashErr)
			}
			state.AdminKeyHash = string(hash)
		}
		if err := as.repo.Save(ctx, tx, state); err != nil {
			return fmt.Errorf("store system state: %w", err)
		}
		as.log.Info("Contract initialized", "admin", admin)
		return nil
	})
}

func (as *adminService) Pause(ctx context.Context) error {
	return as.setPaused(ctx, true, ajo.ErrUnauthorizedPause)
}

func (as *adminService) Unpause(ctx context.Context) error {
	return as.setPaused(ctx, false, ajo.ErrUnauthorizedUnpause)
}

func (as *adminService) setPaused(ctx context.Context, paused bool, authErr error) error {
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := as.repo.Get(ctx, tx)
		if err != nil {
			return fmt.Errorf("load system state: %w", err)
		}
		if !as.isAdmin(ctx, state) {
			return authErr
		}
		state.Paused = paused
		state.UpdatedAt = as.clock.Now()
		if err := as.repo.Save(ctx, tx, state); err != nil {
			return fmt.Errorf("store system state: %w", err)
		}
		as.log.Info("Pause flag changed", "paused", paused)
		return nil
	})
}

// Upgrade records the new code hash. Swapping the running binary is the
// deployment host's job; the stored hash is what the host rolls out.
func (as *adminService) Upgrade(ctx context.Context, newCodeHash string) error {
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := as.repo.Get(ctx, tx)
		if err != nil {
			return fmt.Errorf("load system state: %w", err)
		}
		if !as.isAdmin(ctx, state) {
			return ajo.ErrUnauthorized
		}
		state.CodeHash = newCodeHash
		state.UpdatedAt = as.clock.Now()
		if err := as.repo.Save(ctx, tx, state); err != nil {
			return fmt.Errorf("store system state: %w", err)
		}
		as.log.Info("Code hash recorded", "code_hash", newCodeHash)
		return nil
	})
}

func (as *adminService) State(ctx context.Context) (*types.SystemState, error) {
	state, err := as.repo.Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load system state: %w", err)
	}
	if state == nil {
		state = &types.SystemState{ID: types.SystemStateID}
	}
	return state, nil
}

// EnsureNotPaused is the guard at the top of every mutating entry point.
// An uninitialized deployment is unpaused.
func (as *adminService) EnsureNotPaused(ctx context.Context) error {
	state, err := as.repo.Get(ctx, nil)
	if err != nil {
		return fmt.Errorf("load system state: %w", err)
	}
	if state != nil && state.Paused {
		return ajo.ErrContractPaused
	}
	return nil
}

func (as *adminService) RequireAdmin(ctx context.Context) error {
	state, err := as.repo.Get(ctx, nil)
	if err != nil {
		return fmt.Errorf("load system state: %w", err)
	}
	if !as.isAdmin(ctx, state) {
		return ajo.ErrUnauthorized
	}
	return nil
}

func (as *adminService) isAdmin(ctx context.Context, state *types.SystemState) bool {
	if state == nil || !state.Initialized {
		return false
	}
	if caller := requestdata.Caller(ctx); caller != "" && caller == state.Admin {
		return true
	}
	rd := requestdata.GetRequestData(ctx)
	if rd != nil && rd.AdminKey != "" && state.AdminKeyHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(state.AdminKeyHash), []byte(rd.AdminKey)) == nil
	}
	return false
}
