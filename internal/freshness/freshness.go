package freshness

import (
	"time"

	"pantry/internal/models"
)

// Window is how far ahead of the reference date an item counts as near
// expiry.
const Window = 7 * 24 * time.Hour

// Classify maps an expiry date to a freshness state relative to a reference
// date. The three ranges partition all dates: expired strictly before the
// reference date, near expiry up to and including reference+7d, fresh after
// that. Both dates are truncated to calendar days so time-of-day never
// shifts an item across a boundary.
func Classify(reference, expiry time.Time) models.Freshness {
	ref := truncateToDay(reference)
	exp := truncateToDay(expiry)

	switch {
	case exp.Before(ref):
		return models.Expired
	case !exp.After(ref.Add(Window)):
		return models.NearExpiry
	default:
		return models.Fresh
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
