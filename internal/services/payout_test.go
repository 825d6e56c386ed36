package services

import (
	"errors"
	"testing"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
)

func TestExecutePayoutIncompleteContributions(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)

	env.contribute(t, alice, groupID)

	_, err := env.payouts.ExecutePayout(callerCtx(alice), groupID)
	if !errors.Is(err, ajo.ErrIncompleteContributions) {
		t.Fatalf("partial cycle: got=%v want=%v", err, ajo.ErrIncompleteContributions)
	}
}

// Full two-member rotation: each cycle everyone contributes 100_000_000,
// each payout hands the recipient the whole pot, and the group completes
// after the second payout with everyone net even.
func TestFullRotation(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	env.fund(t, bob, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)

	// Cycle 1.
	env.contribute(t, alice, groupID)
	env.contribute(t, bob, groupID)
	record, err := env.payouts.ExecutePayout(callerCtx(carol), groupID)
	if err != nil {
		t.Fatalf("payout 1: %v", err)
	}
	if record.Member != alice || record.Amount != 200_000_000 || record.Cycle != 1 {
		t.Fatalf("payout 1: %+v", record)
	}
	if got := env.balance(t, alice); got != 600_000_000 {
		t.Fatalf("alice after payout 1: got=%d want=600000000", got)
	}

	group, err := env.groups.GetGroup(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if group.CurrentCycle != 2 || group.PayoutIndex != 1 {
		t.Fatalf("after payout 1: cycle=%d index=%d", group.CurrentCycle, group.PayoutIndex)
	}

	// Cycle 2.
	env.clock.Advance(100)
	env.contribute(t, alice, groupID)
	env.contribute(t, bob, groupID)
	record, err = env.payouts.ExecutePayout(callerCtx(carol), groupID)
	if err != nil {
		t.Fatalf("payout 2: %v", err)
	}
	if record.Member != bob || record.Amount != 200_000_000 {
		t.Fatalf("payout 2: %+v", record)
	}

	complete, err := env.groups.IsComplete(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("IsComplete: %v", err)
	}
	if !complete {
		t.Fatal("group not complete after final payout")
	}

	// Everyone paid in twice and received one pot.
	if got := env.balance(t, alice); got != 500_000_000 {
		t.Fatalf("alice final: got=%d want=500000000", got)
	}
	if got := env.balance(t, bob); got != 500_000_000 {
		t.Fatalf("bob final: got=%d want=500000000", got)
	}
	if got := env.balance(t, testEscrow); got != 0 {
		t.Fatalf("escrow final: got=%d want=0", got)
	}
}

func TestPayoutIncludesPenaltyPool(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	env.fund(t, bob, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{GracePeriod: 86_400, PenaltyRate: 5})
	env.join(t, bob, groupID)

	env.contribute(t, alice, groupID)
	env.clock.Advance(604_800 + 100)
	env.contribute(t, bob, groupID) // late, 5% penalty

	record, err := env.payouts.ExecutePayout(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("payout: %v", err)
	}
	if record.Amount != 205_000_000 {
		t.Fatalf("payout with penalty: got=%d want=205000000", record.Amount)
	}

	// The next cycle starts with an empty penalty pool.
	group, err := env.groups.GetGroup(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if group.PenaltyPool != 0 {
		t.Fatalf("penalty pool carried over: got=%d", group.PenaltyPool)
	}
	if group.CycleStartTime != env.clock.Now() {
		t.Fatalf("cycle start not reset: got=%d want=%d", group.CycleStartTime, env.clock.Now())
	}
}

func TestContributeAfterComplete(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	env.fund(t, bob, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)

	for cycle := 0; cycle < 2; cycle++ {
		env.contribute(t, alice, groupID)
		env.contribute(t, bob, groupID)
		if _, err := env.payouts.ExecutePayout(callerCtx(alice), groupID); err != nil {
			t.Fatalf("payout cycle %d: %v", cycle+1, err)
		}
	}

	_, err := env.contributions.Contribute(callerCtx(alice), alice, groupID)
	if !errors.Is(err, ajo.ErrGroupComplete) {
		t.Fatalf("contribute to complete group: got=%v want=%v", err, ajo.ErrGroupComplete)
	}
	_, err = env.payouts.ExecutePayout(callerCtx(alice), groupID)
	if !errors.Is(err, ajo.ErrGroupComplete) {
		t.Fatalf("payout on complete group: got=%v want=%v", err, ajo.ErrGroupComplete)
	}
}

func TestPayoutMissingGroup(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.payouts.ExecutePayout(callerCtx(alice), 42)
	if !errors.Is(err, ajo.ErrGroupNotFound) {
		t.Fatalf("missing group: got=%v want=%v", err, ajo.ErrGroupNotFound)
	}
}
