package types

// ContributionRecord marks that a member has contributed in a cycle. At most
// one row per (group, cycle, member); row presence is the "has contributed"
// predicate. Amount is the sum actually escrowed (net of the insurance
// premium), Premium and Penalty are broken out for refunds and audit.
type ContributionRecord struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	GroupID       uint64 `gorm:"not null;uniqueIndex:idx_contribution,priority:1;column:group_id" json:"group_id"`
	Cycle         int    `gorm:"not null;uniqueIndex:idx_contribution,priority:2;column:cycle" json:"cycle"`
	Member        string `gorm:"not null;uniqueIndex:idx_contribution,priority:3;column:member" json:"member"`
	Amount        int64  `gorm:"not null;column:amount" json:"amount"`
	Premium       int64  `gorm:"not null;default:0;column:premium" json:"premium"`
	Penalty       int64  `gorm:"not null;default:0;column:penalty" json:"penalty"`
	IsLate        bool   `gorm:"not null;default:false;column:is_late" json:"is_late"`
	ContributedAt int64  `gorm:"not null;column:contributed_at" json:"contributed_at"`
}

func (ContributionRecord) TableName() string {
	return "ajo_contribution"
}
