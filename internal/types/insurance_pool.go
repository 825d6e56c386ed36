package types

// InsurancePool holds the premium skim per token. Created lazily on first
// deposit.
type InsurancePool struct {
	Token              string `gorm:"primaryKey;column:token" json:"token"`
	Balance            int64  `gorm:"not null;default:0;column:balance" json:"balance"`
	TotalPayouts       int64  `gorm:"not null;default:0;column:total_payouts" json:"total_payouts"`
	PendingClaimsCount int    `gorm:"not null;default:0;column:pending_claims_count" json:"pending_claims_count"`
}

func (InsurancePool) TableName() string {
	return "ajo_insurance_pool"
}
