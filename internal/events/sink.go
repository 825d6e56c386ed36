package events

import (
	"context"

	"github.com/google/uuid"
)

// Event types emitted by the core. Consumed externally, never read back.
const (
	TypeGroupCreated     = "group.created"
	TypeMemberJoined     = "member.joined"
	TypeContributionMade = "contribution.made"
	TypePayoutExecuted   = "payout.executed"
	TypeGroupCompleted   = "group.completed"
	TypeGroupCancelled   = "group.cancelled"
	TypeClaimFiled       = "claim.filed"
	TypeClaimProcessed   = "claim.processed"
	TypeRefundRequested  = "refund.requested"
	TypeRefundVoteCast   = "refund.vote_cast"
	TypeRefundExecuted   = "refund.executed"
)

type Event struct {
	ID      uuid.UUID      `json:"id"`
	Type    string         `json:"type"`
	GroupID uint64         `json:"group_id,omitempty"`
	At      int64          `json:"at"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Sink delivers events fire-and-forget. Publish failures are the sink's
// problem to log; they never fail the operation that produced the event.
type Sink interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type nopSink struct{}

// NewNopSink is used when no event transport is configured.
func NewNopSink() Sink { return nopSink{} }

func (nopSink) Publish(context.Context, Event) error { return nil }
func (nopSink) Close() error                         { return nil }
