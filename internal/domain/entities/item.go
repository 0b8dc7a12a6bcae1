package entities

import "time"

// DefaultCategory is the bucket for items with no category assigned.
const DefaultCategory = "Uncategorized"

// LearningItem is a single flashcard together with its scheduling state.
//
// Content fields (Question, Answer, Category) are owned by the editing
// surface; the scheduling engine only ever touches the scheduling fields,
// and only as one atomic update per review.
type LearningItem struct {
	ID       string // stable identifier, the sole join key across list recomputations
	Question string
	Answer   string
	Category string // empty means DefaultCategory

	// Scheduling fields. All pointers are nil before the first review.
	IntervalDays   *int       // current interval to the next review, in days
	ReviewCount    int        // number of completed reviews, never decreases
	LastReviewedAt *time.Time // instant of the most recent review
	NextReviewAt   *time.Time // end of the civil day the item becomes due
	LastQuality    *Quality   // rating applied on the most recent review

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsNew reports whether the item has never been reviewed. New items are
// always considered due.
func (i *LearningItem) IsNew() bool {
	return i.NextReviewAt == nil
}

// CategoryOrDefault normalizes an absent category to DefaultCategory.
func (i *LearningItem) CategoryOrDefault() string {
	if i.Category == "" {
		return DefaultCategory
	}
	return i.Category
}
