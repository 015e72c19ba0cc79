package services

import (
	"time"

	"dreamhouse/internal/domain/models"
)

// HasConflict reports whether the proposed stay overlaps any existing one.
// Intervals are half-open: the checkout day is free for a new check-in.
func HasConflict(proposed models.DateRange, existing []models.DateRange) bool {
	for _, e := range existing {
		if proposed.Overlaps(e) {
			return true
		}
	}
	return false
}

// ExcludeRange drops the booking's own current interval from the
// comparison set, so editing a reservation never conflicts with itself.
// Matching is by exact check-in/check-out dates, the same way the picker
// filters its disabled ranges.
func ExcludeRange(existing []models.DateRange, self models.DateRange) []models.DateRange {
	out := make([]models.DateRange, 0, len(existing))
	for _, e := range existing {
		if sameDay(e.CheckIn, self.CheckIn) && sameDay(e.CheckOut, self.CheckOut) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// DisabledRanges converts occupied stays into the inclusive day ranges the
// date pickers grey out. The last day of each stay is dropped: the guest
// leaves that morning, so it is selectable as a new check-in.
func DisabledRanges(existing []models.DateRange) []models.DateRange {
	out := make([]models.DateRange, 0, len(existing))
	for _, e := range existing {
		end := e.CheckOut.AddDate(0, 0, -1)
		if end.Before(e.CheckIn) {
			continue
		}
		out = append(out, models.DateRange{CheckIn: e.CheckIn, CheckOut: end})
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
