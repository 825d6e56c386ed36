package types

// GroupMember is one row per (group, member). Position fixes payout order:
// join order is payout order, the creator is position 0.
type GroupMember struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	GroupID        uint64 `gorm:"not null;uniqueIndex:idx_group_member,priority:1;column:group_id" json:"group_id"`
	Address        string `gorm:"not null;uniqueIndex:idx_group_member,priority:2;column:address" json:"address"`
	Position       int    `gorm:"not null;column:position" json:"position"`
	JoinedAt       int64  `gorm:"not null;column:joined_at" json:"joined_at"`
	PayoutReceived bool   `gorm:"not null;default:false;column:payout_received" json:"payout_received"`
}

func (GroupMember) TableName() string {
	return "ajo_group_member"
}
