package service

import (
	"time"
)

// DailyCooldown is the minimum time between two daily reward claims
const DailyCooldown = 12 * time.Hour

// NextDailyAt returns when the daily reward becomes claimable again.
// A nil lastDaily means the reward has never been claimed.
func NextDailyAt(lastDaily *time.Time) time.Time {
	if lastDaily == nil {
		return time.Time{}
	}
	return lastDaily.Add(DailyCooldown)
}

// DailyAvailable reports whether the daily reward can be claimed at now
func DailyAvailable(lastDaily *time.Time, now time.Time) bool {
	return lastDaily == nil || !now.Before(NextDailyAt(lastDaily))
}

// TimeUntilDaily returns the remaining cooldown, or zero when claimable
func TimeUntilDaily(lastDaily *time.Time, now time.Time) time.Duration {
	if DailyAvailable(lastDaily, now) {
		return 0
	}
	return NextDailyAt(lastDaily).Sub(now)
}
