package ajo

// ReliabilityScore is the on-time ratio of a member's contribution history,
// 0..100. A member with no history scores 100. Advisory only: it never
// blocks a contribution or payout.
func ReliabilityScore(onTimeCount, lateCount int64) int64 {
	total := onTimeCount + lateCount
	if total == 0 {
		return 100
	}
	score := onTimeCount * 100 / total
	if score > 100 {
		return 100
	}
	return score
}

// GroupRiskRating averages member reliability scores across a group.
// An empty membership rates 0.
func GroupRiskRating(scores []int64) int64 {
	if len(scores) == 0 {
		return 0
	}
	var sum int64
	for _, s := range scores {
		sum += s
	}
	return sum / int64(len(scores))
}
