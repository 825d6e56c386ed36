package types

// TokenAccount is one (token, address) balance row in the internal ledger.
// The escrow address holds pooled contributions and the insurance pool's
// backing funds.
type TokenAccount struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	Token   string `gorm:"not null;uniqueIndex:idx_token_account,priority:1;column:token" json:"token"`
	Address string `gorm:"not null;uniqueIndex:idx_token_account,priority:2;column:address" json:"address"`
	Balance int64  `gorm:"not null;default:0;column:balance" json:"balance"`
}

func (TokenAccount) TableName() string {
	return "ajo_token_account"
}
