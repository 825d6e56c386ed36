package types

import "github.com/yungbote/ajo-backend/internal/domain/ajo"

// InsuranceClaim is filed against the pool when a member defaults. Status
// leaves Pending exactly once, to Paid or Rejected, and is never revisited.
type InsuranceClaim struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID   uint64          `gorm:"not null;index;column:group_id" json:"group_id"`
	Cycle     int             `gorm:"not null;column:cycle" json:"cycle"`
	Defaulter string          `gorm:"not null;column:defaulter" json:"defaulter"`
	Claimant  string          `gorm:"not null;column:claimant" json:"claimant"`
	Amount    int64           `gorm:"not null;column:amount" json:"amount"`
	Status    ajo.ClaimStatus `gorm:"not null;index;column:status" json:"status"`
	CreatedAt int64           `gorm:"not null;column:created_at" json:"created_at"`
}

func (InsuranceClaim) TableName() string {
	return "ajo_insurance_claim"
}
