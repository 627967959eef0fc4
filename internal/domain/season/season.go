// Package season computes the football season a calendar date belongs to.
package season

import "time"

// Current returns the season year for the given moment. European seasons
// roll over in August, so any date before August belongs to the season
// that started the previous calendar year.
func Current(now time.Time) int {
	if now.Month() < time.August {
		return now.Year() - 1
	}
	return now.Year()
}
