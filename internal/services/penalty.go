package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/repos"
)

// MemberReliability is a member's punctuality record with the derived
// score. Advisory: risk-scoring queries only, never gates an operation.
type MemberReliability struct {
	Member           string `json:"member"`
	LateCount        int64  `json:"late_count"`
	OnTimeCount      int64  `json:"on_time_count"`
	TotalPenalties   int64  `json:"total_penalties"`
	ReliabilityScore int64  `json:"reliability_score"`
}

// GroupRisk aggregates member reliability into a group rating.
type GroupRisk struct {
	GroupID uint64              `json:"group_id"`
	Rating  int64               `json:"rating"`
	Members []MemberReliability `json:"members"`
}

type PenaltyService interface {
	GetMemberReliability(ctx context.Context, groupID uint64, member string) (*MemberReliability, error)
	GetGroupRisk(ctx context.Context, groupID uint64) (*GroupRisk, error)
}

type penaltyService struct {
	db          *gorm.DB
	log         *logger.Logger
	groupRepo   repos.GroupRepo
	penaltyRepo repos.PenaltyRepo
}

func NewPenaltyService(db *gorm.DB, log *logger.Logger, groupRepo repos.GroupRepo, penaltyRepo repos.PenaltyRepo) PenaltyService {
	return &penaltyService{
		db:          db,
		log:         log.With("service", "PenaltyService"),
		groupRepo:   groupRepo,
		penaltyRepo: penaltyRepo,
	}
}

func (ps *penaltyService) GetMemberReliability(ctx context.Context, groupID uint64, member string) (*MemberReliability, error) {
	group, err := ps.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		return nil, fmt.Errorf("load group: %w", err)
	}
	if group == nil {
		return nil, ajo.ErrGroupNotFound
	}
	if !group.HasMember(member) {
		return nil, ajo.ErrNotMember
	}

	record, err := ps.penaltyRepo.Get(ctx, nil, groupID, member)
	if err != nil {
		return nil, fmt.Errorf("load penalty record: %w", err)
	}
	out := &MemberReliability{Member: member, ReliabilityScore: 100}
	if record != nil {
		out.LateCount = record.LateCount
		out.OnTimeCount = record.OnTimeCount
		out.TotalPenalties = record.TotalPenalties
		out.ReliabilityScore = ajo.ReliabilityScore(record.OnTimeCount, record.LateCount)
	}
	return out, nil
}

func (ps *penaltyService) GetGroupRisk(ctx context.Context, groupID uint64) (*GroupRisk, error) {
	group, err := ps.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		return nil, fmt.Errorf("load group: %w", err)
	}
	if group == nil {
		return nil, ajo.ErrGroupNotFound
	}

	records, err := ps.penaltyRepo.ListByGroup(ctx, nil, groupID)
	if err != nil {
		return nil, fmt.Errorf("list penalty records: %w", err)
	}
	byMember := make(map[string]*MemberReliability, len(records))
	for _, r := range records {
		byMember[r.Member] = &MemberReliability{
			Member:           r.Member,
			LateCount:        r.LateCount,
			OnTimeCount:      r.OnTimeCount,
			TotalPenalties:   r.TotalPenalties,
			ReliabilityScore: ajo.ReliabilityScore(r.OnTimeCount, r.LateCount),
		}
	}

	risk := &GroupRisk{GroupID: groupID}
	scores := make([]int64, 0, len(group.Members))
	for _, m := range group.Members {
		entry := byMember[m.Address]
		if entry == nil {
			entry = &MemberReliability{Member: m.Address, ReliabilityScore: 100}
		}
		risk.Members = append(risk.Members, *entry)
		scores = append(scores, entry.ReliabilityScore)
	}
	risk.Rating = ajo.GroupRiskRating(scores)
	return risk, nil
}
