package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almasov/flashdeck/internal/domain/entities"
)

func categoryItem(id, category string, dueOffset int) *entities.LearningItem {
	item := dueItem(id, dueOffset, time.UTC)
	item.Category = category
	return item
}

func manyCategoryItems(category string, due, notDue int) []*entities.LearningItem {
	var items []*entities.LearningItem
	for i := 0; i < due; i++ {
		items = append(items, categoryItem(category+"-due", category, 0))
	}
	for i := 0; i < notDue; i++ {
		items = append(items, categoryItem(category+"-later", category, 5))
	}
	return items
}

func TestBuildCategoryCountsAllPinnedFirst(t *testing.T) {
	var items []*entities.LearningItem
	items = append(items, manyCategoryItems("A", 2, 0)...)
	items = append(items, manyCategoryItems("B", 5, 1)...)
	items = append(items, manyCategoryItems("C", 5, 0)...)

	counts := BuildCategoryCounts(items, true, t0, SortMostDue, time.UTC)
	require.Len(t, counts, 4)

	// mostDue: All first, then count descending with alphabetical ties.
	assert.Equal(t, CategoryCount{Name: AllCategories, Count: 12}, counts[0])
	assert.Equal(t, CategoryCount{Name: "B", Count: 5}, counts[1])
	assert.Equal(t, CategoryCount{Name: "C", Count: 5}, counts[2])
	assert.Equal(t, CategoryCount{Name: "A", Count: 2}, counts[3])
}

func TestBuildCategoryCountsAllMatchesFilterTotal(t *testing.T) {
	var items []*entities.LearningItem
	items = append(items, manyCategoryItems("A", 3, 2)...)
	items = append(items, manyCategoryItems("B", 0, 4)...)

	dueCounts := BuildCategoryCounts(items, true, t0, SortAlphabetical, time.UTC)
	assert.Equal(t, 3, dueCounts[0].Count)

	allCounts := BuildCategoryCounts(items, false, t0, SortAlphabetical, time.UTC)
	assert.Equal(t, 9, allCounts[0].Count)
}

func TestBuildCategoryCountsElision(t *testing.T) {
	var items []*entities.LearningItem
	items = append(items, manyCategoryItems("Active", 2, 0)...)
	items = append(items, manyCategoryItems("Quiet", 0, 3)...)

	// Due-only: categories with zero due items disappear.
	due := BuildCategoryCounts(items, true, t0, SortAlphabetical, time.UTC)
	require.Len(t, due, 2)
	assert.Equal(t, "Active", due[1].Name)

	// Filter off: every non-empty category is listed, zero-due included.
	all := BuildCategoryCounts(items, false, t0, SortAlphabetical, time.UTC)
	require.Len(t, all, 3)
	assert.Equal(t, CategoryCount{Name: "Active", Count: 2}, all[1])
	assert.Equal(t, CategoryCount{Name: "Quiet", Count: 3}, all[2])
}

func TestBuildCategoryCountsUncategorizedBucket(t *testing.T) {
	items := []*entities.LearningItem{
		categoryItem("a", "", 0),
		categoryItem("b", "", 0),
		categoryItem("c", "Math", 0),
	}

	counts := BuildCategoryCounts(items, true, t0, SortAlphabetical, time.UTC)
	require.Len(t, counts, 3)
	assert.Equal(t, CategoryCount{Name: "Math", Count: 1}, counts[1])
	assert.Equal(t, CategoryCount{Name: entities.DefaultCategory, Count: 2}, counts[2])
}

func TestBuildCategoryCountsAlphabeticalCaseInsensitive(t *testing.T) {
	items := []*entities.LearningItem{
		categoryItem("a", "banana", 0),
		categoryItem("b", "Apple", 0),
		categoryItem("c", "cherry", 0),
	}

	counts := BuildCategoryCounts(items, true, t0, SortAlphabetical, time.UTC)
	require.Len(t, counts, 4)
	assert.Equal(t, "Apple", counts[1].Name)
	assert.Equal(t, "banana", counts[2].Name)
	assert.Equal(t, "cherry", counts[3].Name)
}

func TestBuildCategoryCountsLeastDue(t *testing.T) {
	var items []*entities.LearningItem
	items = append(items, manyCategoryItems("A", 4, 0)...)
	items = append(items, manyCategoryItems("B", 1, 0)...)
	items = append(items, manyCategoryItems("C", 1, 0)...)

	counts := BuildCategoryCounts(items, true, t0, SortLeastDue, time.UTC)
	require.Len(t, counts, 4)
	assert.Equal(t, "B", counts[1].Name)
	assert.Equal(t, "C", counts[2].Name)
	assert.Equal(t, "A", counts[3].Name)
}

func TestSortModeIsValid(t *testing.T) {
	assert.True(t, SortAlphabetical.IsValid())
	assert.True(t, SortMostDue.IsValid())
	assert.True(t, SortLeastDue.IsValid())
	assert.False(t, SortMode("random").IsValid())
}
