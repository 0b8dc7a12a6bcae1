package entities

import "time"

// ReviewLog is one completed review of an item, recorded for history and
// progress reset bookkeeping.
type ReviewLog struct {
	ID           int64
	ItemID       string
	Quality      Quality
	IntervalDays int // interval assigned by this review
	ReviewedAt   time.Time
}
