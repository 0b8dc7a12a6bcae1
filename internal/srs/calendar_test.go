package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almasov/flashdeck/internal/domain/entities"
)

func TestBuildCalendarWindowAndDates(t *testing.T) {
	forecast := BuildCalendar(nil, t0, 30, time.UTC)
	require.Len(t, forecast, 30)

	today := CivilDate(t0, time.UTC)
	for i, day := range forecast {
		assert.Equal(t, today.AddDate(0, 0, i), day.Date)
		assert.Zero(t, day.Due)
	}
}

func TestBuildCalendarDefaultWindow(t *testing.T) {
	assert.Len(t, BuildCalendar(nil, t0, 0, time.UTC), DefaultCalendarWindow)
	assert.Len(t, BuildCalendar(nil, t0, -3, time.UTC), DefaultCalendarWindow)
}

func TestBuildCalendarDayZeroUsesRemainingToday(t *testing.T) {
	items := remainingFixture()

	forecast := BuildCalendar(items, t0, 7, time.UTC)
	// 5 raw due minus 2 reviewed today.
	assert.Equal(t, 3, forecast[0].Due)
}

func TestBuildCalendarFutureDaysExactDate(t *testing.T) {
	items := []*entities.LearningItem{
		dueItem("a", 2, time.UTC),
		dueItem("b", 2, time.UTC),
		dueItem("c", 5, time.UTC),
		dueItem("overdue", -3, time.UTC), // rolls into day 0 only
	}

	forecast := BuildCalendar(items, t0, 7, time.UTC)

	assert.Equal(t, 1, forecast[0].Due)
	assert.Equal(t, 0, forecast[1].Due)
	assert.Equal(t, 2, forecast[2].Due)
	assert.Equal(t, 0, forecast[3].Due)
	assert.Equal(t, 0, forecast[4].Due)
	assert.Equal(t, 1, forecast[5].Due)
	assert.Equal(t, 0, forecast[6].Due)
}

func TestBuildCalendarNewItemsCountOnlyToday(t *testing.T) {
	items := []*entities.LearningItem{{ID: "new"}}

	forecast := BuildCalendar(items, t0, 5, time.UTC)
	assert.Equal(t, 1, forecast[0].Due)
	for _, day := range forecast[1:] {
		assert.Zero(t, day.Due)
	}
}

func TestBuildCalendarDeterministic(t *testing.T) {
	items := remainingFixture()
	items = append(items, dueItem("f1", 3, time.UTC), dueItem("f2", 12, time.UTC))

	first := BuildCalendar(items, t0, 30, time.UTC)
	second := BuildCalendar(items, t0, 30, time.UTC)

	require.Equal(t, first, second)
}

func TestBuildCalendarDoesNotMutateSnapshot(t *testing.T) {
	items := remainingFixture()
	before := make([]entities.LearningItem, len(items))
	for i, item := range items {
		before[i] = *item
	}

	BuildCalendar(items, t0, 30, time.UTC)

	for i, item := range items {
		assert.Equal(t, before[i], *item)
	}
}
