package srs

import (
	"time"

	"github.com/almasov/flashdeck/internal/domain/entities"
)

// DefaultCalendarWindow is the rolling look-ahead in days.
const DefaultCalendarWindow = 30

// DayForecast is one calendar bucket: a civil date and its due-count.
type DayForecast struct {
	Date time.Time
	Due  int
}

// BuildCalendar produces the rolling windowDays-ahead due-count forecast.
//
// Day 0 (today) uses the remaining-today rule: reviews already completed
// today are subtracted. Days 1..windowDays-1 count exact-date matches only.
// The function is pure: identical inputs yield an identical slice, and the
// item snapshot is never mutated. It is cheap enough to recompute on every
// relevant change; no incremental counters are maintained.
func BuildCalendar(items []*entities.LearningItem, now time.Time, windowDays int, anchor *time.Location) []DayForecast {
	if windowDays <= 0 {
		windowDays = DefaultCalendarWindow
	}

	today := CivilDate(now, anchor)
	forecast := make([]DayForecast, windowDays)
	forecast[0] = DayForecast{Date: today, Due: RemainingToday(items, now, anchor)}

	for offset := 1; offset < windowDays; offset++ {
		date := today.AddDate(0, 0, offset)
		due := 0
		for _, item := range items {
			// New items already count toward day 0; counting them again on
			// every future day would inflate the whole forecast.
			if item.IsNew() {
				continue
			}
			if IsDueOn(item, date, now, anchor) {
				due++
			}
		}
		forecast[offset] = DayForecast{Date: date, Due: due}
	}

	return forecast
}
