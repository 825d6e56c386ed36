package types

import (
	"gorm.io/datatypes"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
)

// Group is one ROSCA instance. Members and all per-cycle records hang off
// the group id. Timestamps are unix seconds from the ledger clock, not DB
// time, so cycle math stays host-independent.
type Group struct {
	ID                 uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Creator            string         `gorm:"not null;index;column:creator" json:"creator"`
	Token              string         `gorm:"not null;index;column:token" json:"token"`
	ContributionAmount int64          `gorm:"not null;column:contribution_amount" json:"contribution_amount"`
	CycleDuration      int64          `gorm:"not null;column:cycle_duration" json:"cycle_duration"`
	GracePeriod        int64          `gorm:"not null;default:0;column:grace_period" json:"grace_period"`
	PenaltyRate        int64          `gorm:"not null;default:0;column:penalty_rate" json:"penalty_rate"`
	MaxMembers         int            `gorm:"not null;column:max_members" json:"max_members"`
	CurrentCycle       int            `gorm:"not null;default:1;column:current_cycle" json:"current_cycle"`
	PayoutIndex        int            `gorm:"not null;default:0;column:payout_index" json:"payout_index"`
	PenaltyPool        int64          `gorm:"not null;default:0;column:penalty_pool" json:"penalty_pool"`
	InsuranceEnabled   bool           `gorm:"not null;default:false;column:insurance_enabled" json:"insurance_enabled"`
	InsuranceRateBps   int64          `gorm:"not null;default:0;column:insurance_rate_bps" json:"insurance_rate_bps"`
	State              ajo.GroupState `gorm:"not null;index;column:state" json:"state"`
	Metadata           datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt          int64          `gorm:"not null;column:created_at" json:"created_at"`
	CycleStartTime     int64          `gorm:"not null;column:cycle_start_time" json:"cycle_start_time"`

	Members []GroupMember `gorm:"foreignKey:GroupID;references:ID" json:"members,omitempty"`
}

func (Group) TableName() string {
	return "ajo_group"
}

// GroupMetadata is the free-form blob stored in Group.Metadata.
type GroupMetadata struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Rules       string `json:"rules,omitempty"`
}

// MemberAddresses returns member addresses in payout order.
func (g *Group) MemberAddresses() []string {
	out := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		out = append(out, m.Address)
	}
	return out
}

// HasMember scans the member list. Linear scan is fine under the 100-member
// cap.
func (g *Group) HasMember(address string) bool {
	for _, m := range g.Members {
		if m.Address == address {
			return true
		}
	}
	return false
}
