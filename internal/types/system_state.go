package types

// SystemState is the single process-wide admin record: one row, explicit
// load/store, checked at the top of every state-mutating entry point.
type SystemState struct {
	ID           int    `gorm:"primaryKey;column:id" json:"-"`
	Initialized  bool   `gorm:"not null;default:false;column:initialized" json:"initialized"`
	Admin        string `gorm:"column:admin" json:"admin"`
	AdminKeyHash string `gorm:"column:admin_key_hash" json:"-"`
	Paused       bool   `gorm:"not null;default:false;column:paused" json:"paused"`
	CodeHash     string `gorm:"column:code_hash" json:"code_hash"`
	UpdatedAt    int64  `gorm:"not null;default:0;column:updated_at" json:"updated_at"`
}

func (SystemState) TableName() string {
	return "ajo_system_state"
}

// SystemStateID is the fixed primary key of the singleton row.
const SystemStateID = 1
