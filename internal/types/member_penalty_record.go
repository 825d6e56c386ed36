package types

// MemberPenaltyRecord tracks a member's contribution punctuality within a
// group. Mutated on every contribution, never deleted.
type MemberPenaltyRecord struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	GroupID        uint64 `gorm:"not null;uniqueIndex:idx_penalty_member,priority:1;column:group_id" json:"group_id"`
	Member         string `gorm:"not null;uniqueIndex:idx_penalty_member,priority:2;column:member" json:"member"`
	LateCount      int64  `gorm:"not null;default:0;column:late_count" json:"late_count"`
	OnTimeCount    int64  `gorm:"not null;default:0;column:on_time_count" json:"on_time_count"`
	TotalPenalties int64  `gorm:"not null;default:0;column:total_penalties" json:"total_penalties"`
}

func (MemberPenaltyRecord) TableName() string {
	return "ajo_member_penalty"
}
