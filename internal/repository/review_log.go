package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/almasov/flashdeck/internal/domain/entities"
	"github.com/almasov/flashdeck/internal/infra/postgres"
)

// ReviewLogRepository stores the append-only history of completed reviews.
type ReviewLogRepository struct {
	db postgres.DBTX
}

func NewReviewLogRepository(db postgres.DBTX) *ReviewLogRepository {
	return &ReviewLogRepository{db: db}
}

// Insert records one completed review.
func (r *ReviewLogRepository) Insert(ctx context.Context, log *entities.ReviewLog) error {
	query := `
		INSERT INTO review_log (item_id, quality, interval_days, reviewed_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, log.ItemID, string(log.Quality), log.IntervalDays, log.ReviewedAt)
	if err != nil {
		return fmt.Errorf("insert review log: %w", err)
	}

	return nil
}

// ListByItem returns the review history of one item, oldest first.
func (r *ReviewLogRepository) ListByItem(ctx context.Context, itemID string) ([]*entities.ReviewLog, error) {
	query := `
		SELECT id, item_id, quality, interval_days, reviewed_at
		FROM review_log
		WHERE item_id = $1
		ORDER BY reviewed_at, id
	`

	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list review log: %w", err)
	}
	defer rows.Close()

	var logs []*entities.ReviewLog
	for rows.Next() {
		var log entities.ReviewLog
		var quality string
		if err := rows.Scan(&log.ID, &log.ItemID, &quality, &log.IntervalDays, &log.ReviewedAt); err != nil {
			return nil, fmt.Errorf("scan review log: %w", err)
		}
		log.Quality = entities.Quality(quality)
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

// CountBetween counts reviews completed within [from, to). Used for daily
// digest totals.
func (r *ReviewLogRepository) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM review_log WHERE reviewed_at >= $1 AND reviewed_at < $2`

	var n int
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return n, nil
}

// DeleteByCategory removes the history of every item in the given category,
// or of all items when all is true. Part of a progress reset.
func (r *ReviewLogRepository) DeleteByCategory(ctx context.Context, category string, all bool) error {
	query := `
		DELETE FROM review_log
		WHERE item_id IN (SELECT id FROM items WHERE $2 OR category = $1)
	`

	if _, err := r.db.Exec(ctx, query, category, all); err != nil {
		return fmt.Errorf("delete review log: %w", err)
	}

	return nil
}
