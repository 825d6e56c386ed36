package types

// PayoutRecord is written once per member per group: a member cannot be paid
// twice within one rotation.
type PayoutRecord struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	GroupID uint64 `gorm:"not null;uniqueIndex:idx_payout,priority:1;column:group_id" json:"group_id"`
	Member  string `gorm:"not null;uniqueIndex:idx_payout,priority:2;column:member" json:"member"`
	Cycle   int    `gorm:"not null;column:cycle" json:"cycle"`
	Amount  int64  `gorm:"not null;column:amount" json:"amount"`
	PaidAt  int64  `gorm:"not null;column:paid_at" json:"paid_at"`
}

func (PayoutRecord) TableName() string {
	return "ajo_payout"
}
