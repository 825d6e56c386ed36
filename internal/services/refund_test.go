package services

import (
	"errors"
	"testing"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
)

func TestCreatorCancelRefundsCycle(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	env.fund(t, bob, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)

	env.contribute(t, alice, groupID)
	env.contribute(t, bob, groupID)

	if err := env.refunds.CancelGroup(callerCtx(alice), groupID); err != nil {
		t.Fatalf("CancelGroup: %v", err)
	}

	// Everyone gets their escrowed contribution back.
	if got := env.balance(t, alice); got != 500_000_000 {
		t.Fatalf("alice after cancel: got=%d want=500000000", got)
	}
	if got := env.balance(t, bob); got != 500_000_000 {
		t.Fatalf("bob after cancel: got=%d want=500000000", got)
	}

	group, err := env.groups.GetGroup(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if group.State != ajo.StateCancelled {
		t.Fatalf("state: got=%s want=%s", group.State, ajo.StateCancelled)
	}

	// Cancelled is terminal.
	_, err = env.contributions.Contribute(callerCtx(alice), alice, groupID)
	if !errors.Is(err, ajo.ErrGroupCancelled) {
		t.Fatalf("contribute after cancel: got=%v want=%v", err, ajo.ErrGroupCancelled)
	}
}

func TestCancelGroupOnlyCreator(t *testing.T) {
	env := newTestEnv(t)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)

	err := env.refunds.CancelGroup(callerCtx(bob), groupID)
	if !errors.Is(err, ajo.ErrUnauthorized) {
		t.Fatalf("non-creator cancel: got=%v want=%v", err, ajo.ErrUnauthorized)
	}
}

func TestCancelGroupAfterPayout(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	env.fund(t, bob, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)

	env.contribute(t, alice, groupID)
	env.contribute(t, bob, groupID)
	if _, err := env.payouts.ExecutePayout(callerCtx(alice), groupID); err != nil {
		t.Fatalf("payout: %v", err)
	}

	err := env.refunds.CancelGroup(callerCtx(alice), groupID)
	if !errors.Is(err, ajo.ErrPayoutAlreadyStarted) {
		t.Fatalf("cancel after payout: got=%v want=%v", err, ajo.ErrPayoutAlreadyStarted)
	}
}

func TestRefundRequestAndVoteApproval(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	env.fund(t, bob, 500_000_000)
	env.fund(t, carol, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{MaxMembers: 3})
	env.join(t, bob, groupID)
	env.join(t, carol, groupID)

	env.contribute(t, alice, groupID)
	env.contribute(t, bob, groupID)

	request, err := env.refunds.RequestRefund(callerCtx(bob), bob, groupID)
	if err != nil {
		t.Fatalf("RequestRefund: %v", err)
	}
	if request.VotingDeadline != testStart+ajo.DefaultVotingWindow {
		t.Fatalf("deadline: got=%d want=%d", request.VotingDeadline, testStart+ajo.DefaultVotingWindow)
	}

	if _, err := env.refunds.RequestRefund(callerCtx(carol), carol, groupID); !errors.Is(err, ajo.ErrRefundAlreadyRequested) {
		t.Fatalf("second request: got=%v want=%v", err, ajo.ErrRefundAlreadyRequested)
	}

	if _, err := env.refunds.CastVote(callerCtx(alice), alice, groupID, true); err != nil {
		t.Fatalf("alice vote: %v", err)
	}
	if _, err := env.refunds.CastVote(callerCtx(alice), alice, groupID, false); !errors.Is(err, ajo.ErrAlreadyVoted) {
		t.Fatalf("revote: got=%v want=%v", err, ajo.ErrAlreadyVoted)
	}
	if _, err := env.refunds.CastVote(callerCtx(bob), bob, groupID, true); err != nil {
		t.Fatalf("bob vote: %v", err)
	}

	// 2 for, 1 against: all members voted, resolves inline, 66% approves.
	resolved, err := env.refunds.CastVote(callerCtx(carol), carol, groupID, false)
	if err != nil {
		t.Fatalf("carol vote: %v", err)
	}
	if !resolved.Executed || !resolved.Approved {
		t.Fatalf("resolution: executed=%v approved=%v", resolved.Executed, resolved.Approved)
	}

	// Contributors are made whole and the group is cancelled.
	if got := env.balance(t, alice); got != 500_000_000 {
		t.Fatalf("alice after refund: got=%d", got)
	}
	if got := env.balance(t, bob); got != 500_000_000 {
		t.Fatalf("bob after refund: got=%d", got)
	}
	group, err := env.groups.GetGroup(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if group.State != ajo.StateCancelled {
		t.Fatalf("state: got=%s", group.State)
	}
}

func TestRefundVoteRejection(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)
	env.contribute(t, alice, groupID)

	if _, err := env.refunds.RequestRefund(callerCtx(bob), bob, groupID); err != nil {
		t.Fatalf("RequestRefund: %v", err)
	}
	if _, err := env.refunds.CastVote(callerCtx(alice), alice, groupID, false); err != nil {
		t.Fatalf("alice vote: %v", err)
	}
	resolved, err := env.refunds.CastVote(callerCtx(bob), bob, groupID, true)
	if err != nil {
		t.Fatalf("bob vote: %v", err)
	}

	// 1 of 2 is below the 51% threshold.
	if !resolved.Executed || resolved.Approved {
		t.Fatalf("resolution: executed=%v approved=%v", resolved.Executed, resolved.Approved)
	}
	group, err := env.groups.GetGroup(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if group.State != ajo.StateActive {
		t.Fatalf("rejected refund changed state: got=%s", group.State)
	}
	// Contributions stay escrowed.
	if got := env.balance(t, alice); got != 400_000_000 {
		t.Fatalf("alice after rejection: got=%d want=400000000", got)
	}
}

func TestResolveRefundAfterDeadline(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)
	env.contribute(t, alice, groupID)

	if _, err := env.refunds.RequestRefund(callerCtx(alice), alice, groupID); err != nil {
		t.Fatalf("RequestRefund: %v", err)
	}
	if _, err := env.refunds.CastVote(callerCtx(alice), alice, groupID, true); err != nil {
		t.Fatalf("vote: %v", err)
	}

	if _, err := env.refunds.ResolveRefund(callerCtx(alice), groupID); !errors.Is(err, ajo.ErrVotingStillOpen) {
		t.Fatalf("early resolve: got=%v want=%v", err, ajo.ErrVotingStillOpen)
	}

	env.clock.Advance(ajo.DefaultVotingWindow)

	// Voting is closed for new votes but the request can now resolve.
	if _, err := env.refunds.CastVote(callerCtx(bob), bob, groupID, false); !errors.Is(err, ajo.ErrVotingClosed) {
		t.Fatalf("late vote: got=%v want=%v", err, ajo.ErrVotingClosed)
	}
	resolved, err := env.refunds.ResolveRefund(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("ResolveRefund: %v", err)
	}
	if !resolved.Executed || !resolved.Approved {
		t.Fatalf("resolution: executed=%v approved=%v", resolved.Executed, resolved.Approved)
	}
	if _, err := env.refunds.ResolveRefund(callerCtx(alice), groupID); !errors.Is(err, ajo.ErrRefundAlreadyExecuted) {
		t.Fatalf("double resolve: got=%v want=%v", err, ajo.ErrRefundAlreadyExecuted)
	}
}

func TestResolveRefundAfterGroupCompleted(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	env.fund(t, bob, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)

	if _, err := env.refunds.RequestRefund(callerCtx(alice), alice, groupID); err != nil {
		t.Fatalf("RequestRefund: %v", err)
	}
	if _, err := env.refunds.CastVote(callerCtx(alice), alice, groupID, true); err != nil {
		t.Fatalf("vote: %v", err)
	}

	// The group runs its full rotation while the request sits open.
	for cycle := 0; cycle < 2; cycle++ {
		env.contribute(t, alice, groupID)
		env.contribute(t, bob, groupID)
		if _, err := env.payouts.ExecutePayout(callerCtx(alice), groupID); err != nil {
			t.Fatalf("payout cycle %d: %v", cycle+1, err)
		}
	}
	done, err := env.groups.IsComplete(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("IsComplete: %v", err)
	}
	if !done {
		t.Fatal("rotation should be complete")
	}

	env.clock.Advance(ajo.DefaultVotingWindow)

	// The stale request resolves moot: no refund, no state change.
	resolved, err := env.refunds.ResolveRefund(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("ResolveRefund: %v", err)
	}
	if !resolved.Executed || resolved.Approved {
		t.Fatalf("resolution: executed=%v approved=%v", resolved.Executed, resolved.Approved)
	}
	group, err := env.groups.GetGroup(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if group.State != ajo.StateComplete {
		t.Fatalf("state: got=%s want=%s", group.State, ajo.StateComplete)
	}
	if got := env.balance(t, alice); got != 500_000_000 {
		t.Fatalf("alice after resolve: got=%d want=500000000", got)
	}
	if got := env.balance(t, bob); got != 500_000_000 {
		t.Fatalf("bob after resolve: got=%d want=500000000", got)
	}
	if got := env.balance(t, testEscrow); got != 0 {
		t.Fatalf("escrow after resolve: got=%d want=0", got)
	}
}

func TestResolveRefundAfterCreatorCancel(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)
	env.contribute(t, alice, groupID)

	if _, err := env.refunds.RequestRefund(callerCtx(alice), alice, groupID); err != nil {
		t.Fatalf("RequestRefund: %v", err)
	}
	if _, err := env.refunds.CastVote(callerCtx(alice), alice, groupID, true); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if err := env.refunds.CancelGroup(callerCtx(alice), groupID); err != nil {
		t.Fatalf("CancelGroup: %v", err)
	}

	env.clock.Advance(ajo.DefaultVotingWindow)

	// Cancellation already refunded the cycle; resolving cannot pay twice.
	resolved, err := env.refunds.ResolveRefund(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("ResolveRefund: %v", err)
	}
	if !resolved.Executed || resolved.Approved {
		t.Fatalf("resolution: executed=%v approved=%v", resolved.Executed, resolved.Approved)
	}
	if got := env.balance(t, alice); got != 500_000_000 {
		t.Fatalf("alice after resolve: got=%d want=500000000", got)
	}
}

func TestRequestRefundNonMember(t *testing.T) {
	env := newTestEnv(t)
	groupID := env.newGroup(t, CreateGroupInput{})

	_, err := env.refunds.RequestRefund(callerCtx(carol), carol, groupID)
	if !errors.Is(err, ajo.ErrNotMember) {
		t.Fatalf("outsider request: got=%v want=%v", err, ajo.ErrNotMember)
	}
}
