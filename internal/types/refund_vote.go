package types

import "github.com/google/uuid"

// RefundVote is one member's vote on a refund request. One row per
// (request, voter); immutable once cast.
type RefundVote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_refund_vote,priority:1;column:request_id" json:"request_id"`
	GroupID   uint64    `gorm:"not null;index;column:group_id" json:"group_id"`
	Voter     string    `gorm:"not null;uniqueIndex:idx_refund_vote,priority:2;column:voter" json:"voter"`
	Approve   bool      `gorm:"not null;column:approve" json:"approve"`
	CastAt    int64     `gorm:"not null;column:cast_at" json:"cast_at"`
}

func (RefundVote) TableName() string {
	return "ajo_refund_vote"
}
