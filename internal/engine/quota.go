package engine

import "time"

// ResolveQuota read-repairs one category quota against the wall clock. When
// `now` has crossed into a later hour bucket than the stored reset time, the
// quota refills to the derived ceiling; otherwise it is returned unchanged.
// The second return reports whether a repair happened, so the caller knows a
// persist is due even on an otherwise failed action.
func ResolveQuota(q TrainingQuota, vip, working bool, now time.Time) (TrainingQuota, bool) {
	currentBucket := now.Truncate(time.Hour)
	lastBucket := q.LastResetTime.Truncate(time.Hour)

	if currentBucket.After(lastBucket) {
		q.RemainingClicks = MaxClicks(vip, working)
		q.LastResetTime = now
		return q, true
	}
	return q, false
}

// ConsumeClick spends one click. The caller must have checked
// RemainingClicks > 0 first; see Service.PerformTraining.
func ConsumeClick(q TrainingQuota) TrainingQuota {
	if q.RemainingClicks > 0 {
		q.RemainingClicks--
	}
	q.TotalDone++
	return q
}

// RestoreClicks adds clicks to a quota, clamped to the derived ceiling.
func RestoreClicks(q TrainingQuota, clicks int, vip, working bool) TrainingQuota {
	max := MaxClicks(vip, working)
	q.RemainingClicks += clicks
	if q.RemainingClicks > max {
		q.RemainingClicks = max
	}
	return q
}

// NextReset returns when the current hour bucket rolls over.
func NextReset(now time.Time) time.Time {
	return now.Truncate(time.Hour).Add(time.Hour)
}
