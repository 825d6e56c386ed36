package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
)

func TestLedgerTransfer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, alice, 1_000)

	if err := env.ledger.Transfer(ctx, nil, testToken, alice, bob, 400); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if got := env.balance(t, alice); got != 600 {
		t.Fatalf("alice: got=%d want=600", got)
	}
	if got := env.balance(t, bob); got != 400 {
		t.Fatalf("bob: got=%d want=400", got)
	}

	err := env.ledger.Transfer(ctx, nil, testToken, alice, bob, 601)
	if !errors.Is(err, ajo.ErrInsufficientBalance) {
		t.Fatalf("overdraw: got=%v want=%v", err, ajo.ErrInsufficientBalance)
	}

	// Escrow overdraws carry their own code.
	err = env.ledger.TransferFromEscrow(ctx, nil, testToken, bob, 1)
	if !errors.Is(err, ajo.ErrInsufficientContractBalance) {
		t.Fatalf("escrow overdraw: got=%v want=%v", err, ajo.ErrInsufficientContractBalance)
	}
}

func TestLedgerZeroAmountIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.ledger.Transfer(ctx, nil, testToken, alice, bob, 0); err != nil {
		t.Fatalf("zero transfer: %v", err)
	}
	if got := env.balance(t, bob); got != 0 {
		t.Fatalf("bob after zero transfer: got=%d", got)
	}
}

func TestGroupRisk(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	env.fund(t, bob, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{GracePeriod: 86_400, PenaltyRate: 5})
	env.join(t, bob, groupID)

	env.contribute(t, alice, groupID)
	env.clock.Advance(604_800 + 100)
	env.contribute(t, bob, groupID) // late

	risk, err := env.penalties.GetGroupRisk(callerCtx(alice), groupID)
	if err != nil {
		t.Fatalf("GetGroupRisk: %v", err)
	}
	// alice 100, bob 0.
	if risk.Rating != 50 {
		t.Fatalf("rating: got=%d want=50", risk.Rating)
	}
	if len(risk.Members) != 2 {
		t.Fatalf("member entries: got=%d", len(risk.Members))
	}

	if _, err := env.penalties.GetMemberReliability(callerCtx(alice), groupID, carol); !errors.Is(err, ajo.ErrNotMember) {
		t.Fatalf("outsider reliability: got=%v want=%v", err, ajo.ErrNotMember)
	}
}
