package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/almasov/flashdeck/internal/domain/entities"
	"github.com/almasov/flashdeck/internal/srs"
)

// EvalResult is what the presentation surface renders: the filtered item
// list plus the headline counts for the current selection.
type EvalResult struct {
	Filtered      []*entities.LearningItem
	DueCount      int // remaining today within the selection
	ReviewedCount int // reviewed today within the selection
	TotalCount    int // all items within the selection
}

// BrowseService is the read side of the engine: it evaluates item snapshots
// into filtered lists, calendar forecasts and category breakdowns, and keeps
// the focused item selected across edit-triggered recomputations.
//
// All evaluation is a pure function of the snapshot and the reference
// instant; results are recomputed fresh on demand and are eventually
// consistent with the latest successful write.
type BrowseService struct {
	items  ItemRepository
	policy srs.Policy
	pos    *srs.PositionPreserver
	logger *zap.Logger
}

func NewBrowseService(items ItemRepository, policy srs.Policy, logger *zap.Logger) *BrowseService {
	return &BrowseService{
		items:  items,
		policy: policy,
		pos:    srs.NewPositionPreserver(srs.DefaultRestoreStaleness),
		logger: logger,
	}
}

// Snapshot loads the current item set for evaluation.
func (s *BrowseService) Snapshot(ctx context.Context) ([]*entities.LearningItem, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return items, nil
}

// Evaluate filters the snapshot by category and due state and computes the
// selection's counts. selectedCategory srs.AllCategories (or empty) selects
// every category.
func (s *BrowseService) Evaluate(items []*entities.LearningItem, selectedCategory string, dueOnly bool, now time.Time) EvalResult {
	selection := items
	if selectedCategory != "" && selectedCategory != srs.AllCategories {
		selection = nil
		for _, item := range items {
			if item.CategoryOrDefault() == selectedCategory {
				selection = append(selection, item)
			}
		}
	}

	filtered := selection
	if dueOnly {
		filtered = srs.FilterDueToday(selection, now, s.policy.Anchor)
	}

	return EvalResult{
		Filtered:      filtered,
		DueCount:      srs.RemainingToday(selection, now, s.policy.Anchor),
		ReviewedCount: srs.ReviewedToday(selection, now, s.policy.Anchor),
		TotalCount:    len(selection),
	}
}

// Calendar builds the rolling 30-day due-count forecast.
func (s *BrowseService) Calendar(items []*entities.LearningItem, now time.Time) []srs.DayForecast {
	return srs.BuildCalendar(items, now, srs.DefaultCalendarWindow, s.policy.Anchor)
}

// Categories builds the per-category breakdown with the pinned All bucket.
func (s *BrowseService) Categories(items []*entities.LearningItem, dueOnly bool, mode srs.SortMode, now time.Time) []srs.CategoryCount {
	return srs.BuildCategoryCounts(items, dueOnly, now, mode, s.policy.Anchor)
}

// NoteFocusedEdit arms a selection restore for the focused item. Call it
// right before an external edit forces the list to be recomputed. Plain
// navigation must not call this.
func (s *BrowseService) NoteFocusedEdit(itemID string, index int, now time.Time) {
	s.pos.NoteEdit(itemID, index, now)
}

// ResolveSelection consumes any pending restore against the recomputed
// list. It returns the index to select and whether a restore applied.
func (s *BrowseService) ResolveSelection(items []*entities.LearningItem, now time.Time) (int, bool) {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return s.pos.Resolve(ids, now)
}
