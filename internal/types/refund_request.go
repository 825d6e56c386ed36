package types

import "github.com/google/uuid"

// RefundRequest opens a member vote to refund and dissolve a group. One
// request per group. Immutable once Executed is set.
type RefundRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID        uint64    `gorm:"not null;uniqueIndex;column:group_id" json:"group_id"`
	Requester      string    `gorm:"not null;column:requester" json:"requester"`
	CreatedAt      int64     `gorm:"not null;column:created_at" json:"created_at"`
	VotingDeadline int64     `gorm:"not null;column:voting_deadline" json:"voting_deadline"`
	VotesFor       int       `gorm:"not null;default:0;column:votes_for" json:"votes_for"`
	VotesAgainst   int       `gorm:"not null;default:0;column:votes_against" json:"votes_against"`
	Executed       bool      `gorm:"not null;default:false;column:executed" json:"executed"`
	Approved       bool      `gorm:"not null;default:false;column:approved" json:"approved"`
}

func (RefundRequest) TableName() string {
	return "ajo_refund_request"
}
