package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
	"github.com/yungbote/ajo-backend/internal/events"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/platform/clock"
	"github.com/yungbote/ajo-backend/internal/repos"
	"github.com/yungbote/ajo-backend/internal/types"
)

// CreateGroupInput carries the create_group parameters. GracePeriod extends
// the contribution window past cycle end; PenaltyRate is the percent
// surcharge on contributions that land in it.
type CreateGroupInput struct {
	Creator            string
	Token              string
	ContributionAmount int64
	CycleDuration      int64
	GracePeriod        int64
	PenaltyRate        int64
	MaxMembers         int
	InsuranceEnabled   bool
	InsuranceRateBps   int64
	Metadata           types.GroupMetadata
}

// MemberContribution pairs a member with their contribution flag for one
// cycle, in member (payout) order.
type MemberContribution struct {
	Address     string `json:"address"`
	Contributed bool   `json:"contributed"`
}

// GroupStatus is the consolidated snapshot returned by get_group_status.
type GroupStatus struct {
	GroupID               uint64   `json:"group_id"`
	State                 string   `json:"state"`
	CurrentCycle          int      `json:"current_cycle"`
	HasNextRecipient      bool     `json:"has_next_recipient"`
	NextRecipient         string   `json:"next_recipient,omitempty"`
	ContributionsReceived int      `json:"contributions_received"`
	TotalMembers          int      `json:"total_members"`
	PendingContributors   []string `json:"pending_contributors"`
	IsComplete            bool     `json:"is_complete"`
	IsCycleActive         bool     `json:"is_cycle_active"`
	IsInGracePeriod       bool     `json:"is_in_grace_period"`
	CycleStartTime        int64    `json:"cycle_start_time"`
	CycleEndTime          int64    `json:"cycle_end_time"`
	GracePeriodEndTime    int64    `json:"grace_period_end_time"`
	PenaltyPool           int64    `json:"penalty_pool"`
	CurrentTime           int64    `json:"current_time"`
}

// GroupService drives the group lifecycle: creation, membership, and the
// read-side queries. Cycle advancement lives in PayoutService.
type GroupService interface {
	CreateGroup(ctx context.Context, in CreateGroupInput) (uint64, error)
	JoinGroup(ctx context.Context, member string, groupID uint64) error
	GetGroup(ctx context.Context, groupID uint64) (*types.Group, error)
	ListMembers(ctx context.Context, groupID uint64) ([]string, error)
	IsMember(ctx context.Context, groupID uint64, address string) (bool, error)
	IsComplete(ctx context.Context, groupID uint64) (bool, error)
	GetContributionStatus(ctx context.Context, groupID uint64, cycle int) ([]MemberContribution, error)
	GetGroupStatus(ctx context.Context, groupID uint64) (*GroupStatus, error)
	AuditGroup(ctx context.Context, groupID uint64) (*ajo.AuditReport, error)
}

type groupService struct {
	db           *gorm.DB
	log          *logger.Logger
	groupRepo    repos.GroupRepo
	contribRepo  repos.ContributionRepo
	adminService AdminService
	clock        clock.Clock
	sink         events.Sink
}

func NewGroupService(
	db *gorm.DB,
	log *logger.Logger,
	groupRepo repos.GroupRepo,
	contribRepo repos.ContributionRepo,
	adminService AdminService,
	clk clock.Clock,
	sink events.Sink,
) GroupService {
	return &groupService{
		db:           db,
		log:          log.With("service", "GroupService"),
		groupRepo:    groupRepo,
		contribRepo:  contribRepo,
		adminService: adminService,
		clock:        clk,
		sink:         sink,
	}
}

func (gs *groupService) CreateGroup(ctx context.Context, in CreateGroupInput) (uint64, error) {
	if err := ajo.ValidateGroupParams(in.ContributionAmount, in.CycleDuration, in.MaxMembers); err != nil {
		return 0, err
	}
	if err := ajo.ValidatePenaltyRate(in.PenaltyRate); err != nil {
		return 0, err
	}
	if err := ajo.ValidateMetadataLengths(in.Metadata.Name, in.Metadata.Description, in.Metadata.Rules); err != nil {
		return 0, err
	}
	if in.GracePeriod < 0 {
		return 0, ajo.ErrCycleDurationZero
	}
	if err := gs.adminService.EnsureNotPaused(ctx); err != nil {
		return 0, err
	}
	if err := requireCaller(ctx, in.Creator); err != nil {
		return 0, err
	}

	now := gs.clock.Now()
	group := &types.Group{
		Creator:            in.Creator,
		Token:              in.Token,
		ContributionAmount: in.ContributionAmount,
		CycleDuration:      in.CycleDuration,
		GracePeriod:        in.GracePeriod,
		PenaltyRate:        in.PenaltyRate,
		MaxMembers:         in.MaxMembers,
		CurrentCycle:       1,
		PayoutIndex:        0,
		InsuranceEnabled:   in.InsuranceEnabled,
		InsuranceRateBps:   in.InsuranceRateBps,
		State:              ajo.StateActive,
		CreatedAt:          now,
		CycleStartTime:     now,
	}
	if in.Metadata != (types.GroupMetadata{}) {
		raw, err := json.Marshal(in.Metadata)
		if err != nil {
			return 0, fmt.Errorf("marshal metadata: %w", err)
		}
		group.Metadata = raw
	}

	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := gs.groupRepo.Create(ctx, tx, group); err != nil {
			return fmt.Errorf("create group: %w", err)
		}
		creatorRow := &types.GroupMember{
			GroupID:  group.ID,
			Address:  in.Creator,
			Position: 0,
			JoinedAt: now,
		}
		if err := gs.groupRepo.AddMember(ctx, tx, creatorRow); err != nil {
			return fmt.Errorf("add creator member: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	gs.log.Info("Group created", "group_id", group.ID, "creator", in.Creator, "max_members", in.MaxMembers)
	emit(ctx, gs.log, gs.sink, events.TypeGroupCreated, group.ID, now, map[string]any{
		"creator":             in.Creator,
		"token":               in.Token,
		"contribution_amount": in.ContributionAmount,
		"max_members":         in.MaxMembers,
	})
	return group.ID, nil
}

func (gs *groupService) JoinGroup(ctx context.Context, member string, groupID uint64) error {
	if err := gs.adminService.EnsureNotPaused(ctx); err != nil {
		return err
	}
	if err := requireCaller(ctx, member); err != nil {
		return err
	}

	now := gs.clock.Now()
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := gs.groupRepo.GetByID(ctx, tx, groupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		if group == nil {
			return ajo.ErrGroupNotFound
		}
		if err := ensureActive(group); err != nil {
			return err
		}
		if group.HasMember(member) {
			return ajo.ErrAlreadyMember
		}
		if len(group.Members) >= group.MaxMembers {
			return ajo.ErrMaxMembersExceeded
		}
		row := &types.GroupMember{
			GroupID:  groupID,
			Address:  member,
			Position: len(group.Members),
			JoinedAt: now,
		}
		if err := gs.groupRepo.AddMember(ctx, tx, row); err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	gs.log.Info("Member joined", "group_id", groupID, "member", member)
	emit(ctx, gs.log, gs.sink, events.TypeMemberJoined, groupID, now, map[string]any{
		"member": member,
	})
	return nil
}

func (gs *groupService) GetGroup(ctx context.Context, groupID uint64) (*types.Group, error) {
	group, err := gs.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		return nil, fmt.Errorf("load group: %w", err)
	}
	if group == nil {
		return nil, ajo.ErrGroupNotFound
	}
	return group, nil
}

func (gs *groupService) ListMembers(ctx context.Context, groupID uint64) ([]string, error) {
	group, err := gs.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group.MemberAddresses(), nil
}

func (gs *groupService) IsMember(ctx context.Context, groupID uint64, address string) (bool, error) {
	group, err := gs.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	return group.HasMember(address), nil
}

func (gs *groupService) IsComplete(ctx context.Context, groupID uint64) (bool, error) {
	group, err := gs.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	return group.State == ajo.StateComplete, nil
}

func (gs *groupService) GetContributionStatus(ctx context.Context, groupID uint64, cycle int) ([]MemberContribution, error) {
	group, err := gs.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := make([]MemberContribution, 0, len(group.Members))
	for _, m := range group.Members {
		contributed, err := gs.contribRepo.Exists(ctx, nil, groupID, cycle, m.Address)
		if err != nil {
			return nil, fmt.Errorf("check contribution: %w", err)
		}
		out = append(out, MemberContribution{Address: m.Address, Contributed: contributed})
	}
	return out, nil
}

func (gs *groupService) GetGroupStatus(ctx context.Context, groupID uint64) (*GroupStatus, error) {
	group, err := gs.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	now := gs.clock.Now()
	timing := ajo.Timing(now, group.CycleStartTime, group.CycleDuration, group.GracePeriod)

	received := 0
	pending := make([]string, 0, len(group.Members))
	for _, m := range group.Members {
		contributed, err := gs.contribRepo.Exists(ctx, nil, groupID, group.CurrentCycle, m.Address)
		if err != nil {
			return nil, fmt.Errorf("check contribution: %w", err)
		}
		if contributed {
			received++
		} else {
			pending = append(pending, m.Address)
		}
	}

	status := &GroupStatus{
		GroupID:               group.ID,
		State:                 string(group.State),
		CurrentCycle:          group.CurrentCycle,
		ContributionsReceived: received,
		TotalMembers:          len(group.Members),
		PendingContributors:   pending,
		IsComplete:            group.State == ajo.StateComplete,
		IsCycleActive:         timing.IsCycleActive,
		IsInGracePeriod:       timing.IsInGracePeriod,
		CycleStartTime:        timing.CycleStartTime,
		CycleEndTime:          timing.CycleEndTime,
		GracePeriodEndTime:    timing.GracePeriodEndTime,
		PenaltyPool:           group.PenaltyPool,
		CurrentTime:           now,
	}
	if group.State != ajo.StateComplete && group.PayoutIndex < len(group.Members) {
		status.HasNextRecipient = true
		status.NextRecipient = group.Members[group.PayoutIndex].Address
	}
	return status, nil
}

// AuditGroup replays contribution history across all cycles and reports
// counts plus anomaly flags for monitoring.
func (gs *groupService) AuditGroup(ctx context.Context, groupID uint64) (*ajo.AuditReport, error) {
	group, err := gs.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	totalExpected := len(group.Members) * group.CurrentCycle
	receivedCount, err := gs.contribRepo.CountUpToCycle(ctx, nil, groupID, group.CurrentCycle)
	if err != nil {
		return nil, fmt.Errorf("count contributions: %w", err)
	}

	paramsOK := ajo.ParamsWithinLimits(group.ContributionAmount, group.CycleDuration, len(group.Members))
	report := ajo.BuildAuditReport(
		totalExpected,
		int(receivedCount),
		group.PayoutIndex,
		len(group.Members),
		group.State == ajo.StateComplete,
		paramsOK,
	)
	return &report, nil
}

// ensureActive maps terminal states onto their rejection codes.
func ensureActive(group *types.Group) error {
	switch group.State {
	case ajo.StateComplete:
		return ajo.ErrGroupComplete
	case ajo.StateCancelled:
		return ajo.ErrGroupCancelled
	default:
		return nil
	}
}
