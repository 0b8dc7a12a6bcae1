package srs

import (
	"sort"
	"strings"
	"time"

	"github.com/almasov/flashdeck/internal/domain/entities"
)

// AllCategories is the pinned aggregate bucket, always listed first and
// never subject to sorting.
const AllCategories = "All"

// SortMode selects the ordering of category buckets.
type SortMode string

const (
	SortAlphabetical SortMode = "alphabetical" // case-insensitive lexical
	SortMostDue      SortMode = "most_due"     // count descending, ties alphabetical
	SortLeastDue     SortMode = "least_due"    // count ascending, ties alphabetical
)

// IsValid reports whether m is a known sort mode.
func (m SortMode) IsValid() bool {
	switch m {
	case SortAlphabetical, SortMostDue, SortLeastDue:
		return true
	}
	return false
}

// CategoryCount is one bucket in the per-category breakdown.
type CategoryCount struct {
	Name  string
	Count int
}

// BuildCategoryCounts produces the per-category breakdown with the pinned
// AllCategories entry first.
//
// The count is the number of items passing the filter: with dueOnly active
// that is the due-today count, otherwise the total item count. Categories
// with zero matching items are omitted when dueOnly is active; with the
// filter off, every category holding at least one item is listed even if
// none are currently due. Empty categories on items bucket under
// entities.DefaultCategory.
func BuildCategoryCounts(items []*entities.LearningItem, dueOnly bool, now time.Time, mode SortMode, anchor *time.Location) []CategoryCount {
	totals := make(map[string]int)
	matching := make(map[string]int)
	allCount := 0

	for _, item := range items {
		name := item.CategoryOrDefault()
		totals[name]++
		if dueOnly && !IsDueOn(item, now, now, anchor) {
			continue
		}
		matching[name]++
		allCount++
	}

	buckets := make([]CategoryCount, 0, len(totals))
	for name := range totals {
		count := matching[name]
		if dueOnly && count == 0 {
			continue
		}
		buckets = append(buckets, CategoryCount{Name: name, Count: count})
	}

	sortBuckets(buckets, mode)

	out := make([]CategoryCount, 0, len(buckets)+1)
	out = append(out, CategoryCount{Name: AllCategories, Count: allCount})
	return append(out, buckets...)
}

func sortBuckets(buckets []CategoryCount, mode SortMode) {
	alpha := func(a, b CategoryCount) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}

	sort.Slice(buckets, func(i, j int) bool {
		a, b := buckets[i], buckets[j]
		switch mode {
		case SortMostDue:
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return alpha(a, b)
		case SortLeastDue:
			if a.Count != b.Count {
				return a.Count < b.Count
			}
			return alpha(a, b)
		default:
			return alpha(a, b)
		}
	})
}
