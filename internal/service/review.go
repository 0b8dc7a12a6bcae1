package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/almasov/flashdeck/internal/domain/entities"
	"github.com/almasov/flashdeck/internal/repository"
	"github.com/almasov/flashdeck/internal/srs"
)

// ReviewOutcome tells the caller what happened to a review submission, so
// the dropped-duplicate path is observable instead of a silent shared flag.
type ReviewOutcome string

const (
	OutcomeApplied ReviewOutcome = "applied"
	OutcomeDropped ReviewOutcome = "dropped" // duplicate submit while one was in flight
)

// ReviewResult is the outcome of one review submission. Item carries the
// updated scheduling snapshot when the review was applied.
type ReviewResult struct {
	Outcome ReviewOutcome
	Item    *entities.LearningItem
}

// ReviewService applies quality ratings to items: it runs the interval
// calculator and persists the resulting scheduling delta atomically.
//
// Submission is single-flight per item. A second Review call for an item
// whose previous call is still outstanding is dropped before it touches the
// calculator or the store. Reviews of different items proceed independently.
type ReviewService struct {
	items  ItemRepository
	logs   ReviewLogRepository
	policy srs.Policy
	logger *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewReviewService(items ItemRepository, logs ReviewLogRepository, policy srs.Policy, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		items:    items,
		logs:     logs,
		policy:   policy,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// Review applies one quality rating to the item at the given instant.
//
// Error kinds matter to the caller: entities.ErrInvalidQuality means the
// input was rejected and nothing changed; repository errors mean the review
// was not applied and may be retried. A dropped duplicate is a no-op with a
// nil error.
func (s *ReviewService) Review(ctx context.Context, itemID string, quality entities.Quality, now time.Time) (ReviewResult, error) {
	if !s.acquire(itemID) {
		s.logger.Debug("duplicate review dropped", zap.String("item_id", itemID))
		return ReviewResult{Outcome: OutcomeDropped}, nil
	}
	defer s.release(itemID)

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return ReviewResult{}, fmt.Errorf("load item: %w", err)
	}

	next, err := srs.ComputeNext(srs.StateOf(item), quality, s.policy, now)
	if err != nil {
		return ReviewResult{}, err
	}

	upd := repository.SchedulingUpdate{
		IntervalDays:   next.IntervalDays,
		NextReviewAt:   next.DueAt,
		LastReviewedAt: now,
		LastQuality:    quality,
		ReviewCount:    next.ReviewCount,
	}
	if err := s.items.UpdateScheduling(ctx, itemID, upd); err != nil {
		return ReviewResult{}, fmt.Errorf("persist review: %w", err)
	}

	// History is best-effort; the scheduling write above is the source of
	// truth and has already committed.
	if err := s.logs.Insert(ctx, &entities.ReviewLog{
		ItemID:       itemID,
		Quality:      quality,
		IntervalDays: next.IntervalDays,
		ReviewedAt:   now,
	}); err != nil {
		s.logger.Warn("review history not recorded",
			zap.String("item_id", itemID),
			zap.Error(err),
		)
	}

	s.logger.Info("review applied",
		zap.String("item_id", itemID),
		zap.String("quality", quality.String()),
		zap.Int("interval_days", next.IntervalDays),
		zap.Time("next_review_at", next.DueAt),
	)

	applied := *item
	applied.IntervalDays = &next.IntervalDays
	applied.ReviewCount = next.ReviewCount
	applied.LastReviewedAt = &now
	applied.NextReviewAt = &next.DueAt
	applied.LastQuality = &quality

	return ReviewResult{Outcome: OutcomeApplied, Item: &applied}, nil
}

// History returns the review log of one item, oldest first.
func (s *ReviewService) History(ctx context.Context, itemID string) ([]*entities.ReviewLog, error) {
	return s.logs.ListByItem(ctx, itemID)
}

func (s *ReviewService) acquire(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[itemID]; busy {
		return false
	}
	s.inFlight[itemID] = struct{}{}
	return true
}

func (s *ReviewService) release(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, itemID)
}
