package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/ajo-backend/internal/events"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/platform/clock"
	"github.com/yungbote/ajo-backend/internal/repos"
	"github.com/yungbote/ajo-backend/internal/requestdata"
	"github.com/yungbote/ajo-backend/internal/types"
)

const (
	testToken  = "TESTTOKEN"
	testEscrow = "escrow"
	testStart  = int64(1_700_000_000)

	alice = "GALICE"
	bob   = "GBOB"
	carol = "GCAROL"
)

var testDBSeq atomic.Int64

type testEnv struct {
	db    *gorm.DB
	clock *clock.Fake

	admin         AdminService
	ledger        LedgerService
	groups        GroupService
	contributions ContributionService
	payouts       PayoutService
	insurance     InsuranceService
	penalties     PenaltyService
	refunds       RefundService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Single connection keeps the shared in-memory database alive and
	// serializes transactions.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	err = db.AutoMigrate(
		&types.SystemState{},
		&types.Group{},
		&types.GroupMember{},
		&types.ContributionRecord{},
		&types.PayoutRecord{},
		&types.InsurancePool{},
		&types.InsuranceClaim{},
		&types.MemberPenaltyRecord{},
		&types.RefundRequest{},
		&types.RefundVote{},
		&types.TokenAccount{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	clk := clock.NewFake(testStart)
	sink := events.NewNopSink()

	systemRepo := repos.NewSystemRepo(db, log)
	groupRepo := repos.NewGroupRepo(db, log)
	contribRepo := repos.NewContributionRepo(db, log)
	payoutRepo := repos.NewPayoutRepo(db, log)
	poolRepo := repos.NewInsurancePoolRepo(db, log)
	claimRepo := repos.NewInsuranceClaimRepo(db, log)
	penaltyRepo := repos.NewPenaltyRepo(db, log)
	refundRepo := repos.NewRefundRepo(db, log)
	accountRepo := repos.NewTokenAccountRepo(db, log)

	adminService := NewAdminService(db, log, systemRepo, clk, sink)
	ledgerService := NewLedgerService(db, log, accountRepo, testEscrow)
	groupService := NewGroupService(db, log, groupRepo, contribRepo, adminService, clk, sink)
	contributionService := NewContributionService(
		db, log, groupRepo, contribRepo, penaltyRepo, poolRepo,
		ledgerService, adminService, clk, sink,
	)
	payoutService := NewPayoutService(
		db, log, groupRepo, contribRepo, payoutRepo,
		ledgerService, adminService, clk, sink,
	)
	insuranceService := NewInsuranceService(
		db, log, groupRepo, contribRepo, poolRepo, claimRepo,
		ledgerService, adminService, clk, sink,
	)
	penaltyService := NewPenaltyService(db, log, groupRepo, penaltyRepo)
	refundService := NewRefundService(
		db, log, groupRepo, contribRepo, refundRepo,
		ledgerService, adminService, clk, sink, 0,
	)

	return &testEnv{
		db:            db,
		clock:         clk,
		admin:         adminService,
		ledger:        ledgerService,
		groups:        groupService,
		contributions: contributionService,
		payouts:       payoutService,
		insurance:     insuranceService,
		penalties:     penaltyService,
		refunds:       refundService,
	}
}

func callerCtx(address string) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{Address: address})
}

func adminKeyCtx(address, key string) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{Address: address, AdminKey: key})
}

// fund credits a fresh test balance.
func (e *testEnv) fund(t *testing.T, address string, amount int64) {
	t.Helper()
	if err := e.ledger.Mint(context.Background(), nil, testToken, address, amount); err != nil {
		t.Fatalf("mint %s: %v", address, err)
	}
}

func (e *testEnv) balance(t *testing.T, address string) int64 {
	t.Helper()
	bal, err := e.ledger.Balance(context.Background(), nil, testToken, address)
	if err != nil {
		t.Fatalf("balance %s: %v", address, err)
	}
	return bal
}

// newGroup creates a funded two-member-capacity group with the default
// weekly parameters and returns its id.
func (e *testEnv) newGroup(t *testing.T, in CreateGroupInput) uint64 {
	t.Helper()
	if in.Creator == "" {
		in.Creator = alice
	}
	if in.Token == "" {
		in.Token = testToken
	}
	if in.ContributionAmount == 0 {
		in.ContributionAmount = 100_000_000
	}
	if in.CycleDuration == 0 {
		in.CycleDuration = 604_800
	}
	if in.MaxMembers == 0 {
		in.MaxMembers = 2
	}
	groupID, err := e.groups.CreateGroup(callerCtx(in.Creator), in)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return groupID
}

func (e *testEnv) join(t *testing.T, member string, groupID uint64) {
	t.Helper()
	if err := e.groups.JoinGroup(callerCtx(member), member, groupID); err != nil {
		t.Fatalf("join %s: %v", member, err)
	}
}

func (e *testEnv) contribute(t *testing.T, member string, groupID uint64) *types.ContributionRecord {
	t.Helper()
	record, err := e.contributions.Contribute(callerCtx(member), member, groupID)
	if err != nil {
		t.Fatalf("contribute %s: %v", member, err)
	}
	return record
}
