package services

import (
	"errors"
	"testing"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
)

const adminAddr = "GADMIN"

func TestInitializeOnce(t *testing.T) {
	env := newTestEnv(t)

	if err := env.admin.Initialize(callerCtx(adminAddr), adminAddr, ""); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	err := env.admin.Initialize(callerCtx(adminAddr), adminAddr, "")
	if !errors.Is(err, ajo.ErrAlreadyInitialized) {
		t.Fatalf("reinitialize: got=%v want=%v", err, ajo.ErrAlreadyInitialized)
	}

	state, err := env.admin.State(callerCtx(adminAddr))
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if !state.Initialized || state.Admin != adminAddr || state.Paused {
		t.Fatalf("state: %+v", state)
	}
}

func TestPauseBlocksMutationsNotQueries(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)

	if err := env.admin.Initialize(callerCtx(adminAddr), adminAddr, ""); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := env.admin.Pause(callerCtx(adminAddr)); err != nil {
		t.Fatalf("Pause: %v", err)
	}

	// Mutations are rejected across the board.
	if _, err := env.groups.CreateGroup(callerCtx(alice), CreateGroupInput{
		Creator: alice, Token: testToken, ContributionAmount: 100_000_000, CycleDuration: 604_800, MaxMembers: 2,
	}); !errors.Is(err, ajo.ErrContractPaused) {
		t.Fatalf("create while paused: got=%v", err)
	}
	if _, err := env.contributions.Contribute(callerCtx(alice), alice, groupID); !errors.Is(err, ajo.ErrContractPaused) {
		t.Fatalf("contribute while paused: got=%v", err)
	}
	if _, err := env.payouts.ExecutePayout(callerCtx(alice), groupID); !errors.Is(err, ajo.ErrContractPaused) {
		t.Fatalf("payout while paused: got=%v", err)
	}
	if err := env.refunds.CancelGroup(callerCtx(alice), groupID); !errors.Is(err, ajo.ErrContractPaused) {
		t.Fatalf("cancel while paused: got=%v", err)
	}

	// Queries keep working.
	if _, err := env.groups.GetGroupStatus(callerCtx(alice), groupID); err != nil {
		t.Fatalf("status while paused: %v", err)
	}
	if _, err := env.groups.ListMembers(callerCtx(alice), groupID); err != nil {
		t.Fatalf("members while paused: %v", err)
	}

	// Unpause restores mutations.
	if err := env.admin.Unpause(callerCtx(adminAddr)); err != nil {
		t.Fatalf("Unpause: %v", err)
	}
	if _, err := env.contributions.Contribute(callerCtx(alice), alice, groupID); err != nil {
		t.Fatalf("contribute after unpause: %v", err)
	}
}

func TestPauseRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	if err := env.admin.Initialize(callerCtx(adminAddr), adminAddr, ""); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := env.admin.Pause(callerCtx(alice)); !errors.Is(err, ajo.ErrUnauthorizedPause) {
		t.Fatalf("non-admin pause: got=%v want=%v", err, ajo.ErrUnauthorizedPause)
	}
	if err := env.admin.Unpause(callerCtx(alice)); !errors.Is(err, ajo.ErrUnauthorizedUnpause) {
		t.Fatalf("non-admin unpause: got=%v want=%v", err, ajo.ErrUnauthorizedUnpause)
	}
}

func TestAdminKeyCredential(t *testing.T) {
	env := newTestEnv(t)
	if err := env.admin.Initialize(callerCtx(adminAddr), adminAddr, "hunter2"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	// A different address with the right key passes the admin check.
	if err := env.admin.Pause(adminKeyCtx(alice, "hunter2")); err != nil {
		t.Fatalf("pause with admin key: %v", err)
	}
	if err := env.admin.Unpause(adminKeyCtx(alice, "wrong")); !errors.Is(err, ajo.ErrUnauthorizedUnpause) {
		t.Fatalf("wrong key: got=%v want=%v", err, ajo.ErrUnauthorizedUnpause)
	}
}

func TestUpgradeRecordsCodeHash(t *testing.T) {
	env := newTestEnv(t)
	if err := env.admin.Initialize(callerCtx(adminAddr), adminAddr, ""); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := env.admin.Upgrade(callerCtx(alice), "deadbeef"); !errors.Is(err, ajo.ErrUnauthorized) {
		t.Fatalf("non-admin upgrade: got=%v want=%v", err, ajo.ErrUnauthorized)
	}
	if err := env.admin.Upgrade(callerCtx(adminAddr), "deadbeef"); err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	state, err := env.admin.State(callerCtx(adminAddr))
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.CodeHash != "deadbeef" {
		t.Fatalf("code hash: got=%q", state.CodeHash)
	}
}

// Group operations do not require initialization; a fresh deployment is
// usable immediately and unpaused.
func TestUninitializedDeploymentIsUsable(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, alice, 500_000_000)
	groupID := env.newGroup(t, CreateGroupInput{})
	env.join(t, bob, groupID)
	env.contribute(t, alice, groupID)
}
