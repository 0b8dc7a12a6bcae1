package srs

import (
	"time"

	"github.com/almasov/flashdeck/internal/domain/entities"
)

// IsDueOn classifies one item against a target civil date.
//
// New items (no next review scheduled) are due on every target date.
// For today, overdue items roll forward: anything scheduled on or before
// today counts. For a future date the match is exact; an item scheduled
// three days out is not counted on day two.
func IsDueOn(item *entities.LearningItem, target, now time.Time, anchor *time.Location) bool {
	if item.IsNew() {
		return true
	}

	targetDay := CivilDate(target, anchor)
	today := CivilDate(now, anchor)
	dueDay := CivilDate(*item.NextReviewAt, anchor)

	if targetDay.After(today) {
		return dueDay.Equal(targetDay)
	}
	return !dueDay.After(targetDay)
}

// FilterDueToday returns the items due today, overdue rollup included.
// The input slice is not mutated.
func FilterDueToday(items []*entities.LearningItem, now time.Time, anchor *time.Location) []*entities.LearningItem {
	var due []*entities.LearningItem
	for _, item := range items {
		if IsDueOn(item, now, now, anchor) {
			due = append(due, item)
		}
	}
	return due
}

// CountDueToday is the raw due-today count, before subtracting reviews
// already completed today.
func CountDueToday(items []*entities.LearningItem, now time.Time, anchor *time.Location) int {
	n := 0
	for _, item := range items {
		if IsDueOn(item, now, now, anchor) {
			n++
		}
	}
	return n
}

// ReviewedToday counts items whose last review falls within today's civil
// day boundaries in the anchor zone.
func ReviewedToday(items []*entities.LearningItem, now time.Time, anchor *time.Location) int {
	start := StartOfDay(now, anchor)
	end := start.AddDate(0, 0, 1)

	n := 0
	for _, item := range items {
		if item.LastReviewedAt == nil {
			continue
		}
		at := item.LastReviewedAt.In(anchor)
		if !at.Before(start) && at.Before(end) {
			n++
		}
	}
	return n
}

// RemainingToday is the progress-display count: raw due-today minus reviews
// already completed today, floored at zero. Reviewing an item pushes its
// next review into the future within the same call, so the raw due-count
// alone would undercount progress.
func RemainingToday(items []*entities.LearningItem, now time.Time, anchor *time.Location) int {
	remaining := CountDueToday(items, now, anchor) - ReviewedToday(items, now, anchor)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CountDueTodayIncludingReviewed counts items that were due by end of today,
// were reviewed today, or are brand-new. This superset is a display
// denominator for headline totals, never a selection rule.
func CountDueTodayIncludingReviewed(items []*entities.LearningItem, now time.Time, anchor *time.Location) int {
	start := StartOfDay(now, anchor)
	end := start.AddDate(0, 0, 1)
	endOfToday := EndOfDay(now, anchor)

	n := 0
	for _, item := range items {
		switch {
		case item.IsNew():
			n++
		case !item.NextReviewAt.In(anchor).After(endOfToday):
			n++
		case item.LastReviewedAt != nil &&
			!item.LastReviewedAt.In(anchor).Before(start) &&
			item.LastReviewedAt.In(anchor).Before(end):
			n++
		}
	}
	return n
}
