package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/almasov/flashdeck/internal/domain/entities"
)

// State is the scheduling snapshot the calculator reads. It mirrors the
// persisted fields but carries no identity, so the calculator stays pure.
type State struct {
	IntervalDays *int // nil before the first review
	ReviewCount  int
}

// StateOf extracts the calculator input from a stored item.
func StateOf(item *entities.LearningItem) State {
	return State{
		IntervalDays: item.IntervalDays,
		ReviewCount:  item.ReviewCount,
	}
}

// Next is the scheduling delta produced by one review. The caller persists
// it; ComputeNext itself has no side effects.
type Next struct {
	IntervalDays int
	DueAt        time.Time
	ReviewCount  int
}

// ComputeNext computes the next interval and due instant for one review.
//
// The first review of an item is a direct table lookup on the rating.
// Subsequent reviews multiply the current interval by the rating's factor
// with half-up rounding; the max(1, ...) floor guarantees the item is never
// rescheduled to the same or an earlier day. The result is clamped to the
// policy maximum and anchored to the end of the target civil day.
//
// An invalid rating yields entities.ErrInvalidQuality and no change.
func ComputeNext(state State, q entities.Quality, p Policy, now time.Time) (Next, error) {
	if !q.IsValid() {
		return Next{}, fmt.Errorf("compute next: %w: %q", entities.ErrInvalidQuality, q)
	}

	var days int
	if state.IntervalDays == nil || state.ReviewCount == 0 {
		initial, err := p.InitialInterval(q)
		if err != nil {
			return Next{}, fmt.Errorf("compute next: %w", err)
		}
		days = initial
	} else {
		factor, err := p.Factor(q)
		if err != nil {
			return Next{}, fmt.Errorf("compute next: %w", err)
		}
		days = int(math.Round(float64(*state.IntervalDays) * factor))
		if days < 1 {
			days = 1
		}
	}

	if days > p.MaximumInterval {
		days = p.MaximumInterval
	}

	return Next{
		IntervalDays: days,
		DueAt:        EndOfDay(now.In(p.Anchor).AddDate(0, 0, days), p.Anchor),
		ReviewCount:  state.ReviewCount + 1,
	}, nil
}
