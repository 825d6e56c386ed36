package ajo

// GroupState is the lifecycle state of a group. Active groups accept
// mutations; Cancelled and Complete are terminal.
type GroupState string

const (
	StateActive    GroupState = "active"
	StateCancelled GroupState = "cancelled"
	StateComplete  GroupState = "complete"
)

// ClaimStatus is the lifecycle state of an insurance claim. A claim leaves
// Pending exactly once, to Paid or Rejected.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
	ClaimPaid     ClaimStatus = "paid"
)

// CycleTiming derives the time windows of the current cycle from the stored
// group timestamps. All values are unix seconds.
type CycleTiming struct {
	CycleStartTime     int64
	CycleEndTime       int64
	GracePeriodEndTime int64
	IsCycleActive      bool
	IsInGracePeriod    bool
}

func Timing(now, cycleStart, cycleDuration, gracePeriod int64) CycleTiming {
	end := cycleStart + cycleDuration
	graceEnd := end + gracePeriod
	return CycleTiming{
		CycleStartTime:     cycleStart,
		CycleEndTime:       end,
		GracePeriodEndTime: graceEnd,
		IsCycleActive:      now < end,
		IsInGracePeriod:    now >= end && now < graceEnd,
	}
}

// ContributionWindow classifies an incoming contribution at time now:
// on time while the cycle is active, late but accepted inside the grace
// period, rejected after the grace period has elapsed.
func ContributionWindow(now, cycleStart, cycleDuration, gracePeriod int64) (isLate, accepted bool) {
	t := Timing(now, cycleStart, cycleDuration, gracePeriod)
	if t.IsCycleActive {
		return false, true
	}
	if t.IsInGracePeriod {
		return true, true
	}
	return true, false
}
