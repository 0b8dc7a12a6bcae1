package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/almasov/flashdeck/internal/domain/entities"
	"github.com/almasov/flashdeck/internal/infra/postgres"
)

var ErrItemNotFound = errors.New("item not found")

// ItemRepository provides access to learning items and their scheduling
// state in the database.
type ItemRepository struct {
	db postgres.DBTX
}

// NewItemRepository creates a new ItemRepository over the provided pool or
// transaction.
func NewItemRepository(db postgres.DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

// SchedulingUpdate carries the scheduling fields written by one review.
// All fields are persisted together in a single statement.
type SchedulingUpdate struct {
	IntervalDays   int
	NextReviewAt   time.Time
	LastReviewedAt time.Time
	LastQuality    entities.Quality
	ReviewCount    int
}

const itemColumns = `
	id, question, answer, category, interval_days, review_count,
	last_reviewed_at, next_review_at, last_quality, created_at, updated_at
`

// Create inserts a new item with empty scheduling state and returns its id.
// A missing id is minted here.
func (r *ItemRepository) Create(ctx context.Context, item *entities.LearningItem) (string, error) {
	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO items (id, question, answer, category, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, NOW(), NOW())
	`

	if _, err := r.db.Exec(ctx, query, id, item.Question, item.Answer, item.Category); err != nil {
		return "", fmt.Errorf("create item: %w", err)
	}

	return id, nil
}

// GetByID retrieves a single item. Returns ErrItemNotFound when no such row
// exists.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entities.LearningItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return item, nil
}

// List returns a snapshot of every item, newest first. Aggregators consume
// this snapshot; they never read the database themselves.
func (r *ItemRepository) List(ctx context.Context) ([]*entities.LearningItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entities.LearningItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// UpdateContent updates the editable fields only. Scheduling columns are
// deliberately untouched: content edits never reset review progress.
func (r *ItemRepository) UpdateContent(ctx context.Context, id, question, answer, category string) error {
	query := `
		UPDATE items
		SET question = $2, answer = $3, category = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, question, answer, category)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// UpdateScheduling persists the outcome of one review. The five scheduling
// fields are written in a single UPDATE so they change together or not at
// all.
func (r *ItemRepository) UpdateScheduling(ctx context.Context, id string, upd SchedulingUpdate) error {
	query := `
		UPDATE items
		SET interval_days = $2,
		    next_review_at = $3,
		    last_reviewed_at = $4,
		    last_quality = $5,
		    review_count = $6,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		id,
		upd.IntervalDays,
		upd.NextReviewAt,
		upd.LastReviewedAt,
		string(upd.LastQuality),
		upd.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("update scheduling: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ClearScheduling resets the scheduling state of every item in the given
// category, or of all items when all is true. An empty category matches the
// uncategorized bucket. Returns the number of items reset.
func (r *ItemRepository) ClearScheduling(ctx context.Context, category string, all bool) (int64, error) {
	query := `
		UPDATE items
		SET interval_days = NULL,
		    next_review_at = NULL,
		    last_reviewed_at = NULL,
		    last_quality = NULL,
		    review_count = 0,
		    updated_at = NOW()
		WHERE $2 OR category = $1
	`

	tag, err := r.db.Exec(ctx, query, category, all)
	if err != nil {
		return 0, fmt.Errorf("clear scheduling: %w", err)
	}

	return tag.RowsAffected(), nil
}

// scanRow is satisfied by both pgx.Row and pgx.Rows.
type scanRow interface {
	Scan(dest ...any) error
}

func scanItem(row scanRow) (*entities.LearningItem, error) {
	var item entities.LearningItem
	var lastQuality *string

	err := row.Scan(
		&item.ID,
		&item.Question,
		&item.Answer,
		&item.Category,
		&item.IntervalDays,
		&item.ReviewCount,
		&item.LastReviewedAt,
		&item.NextReviewAt,
		&lastQuality,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastQuality != nil {
		q, err := entities.ParseQuality(*lastQuality)
		if err != nil {
			return nil, fmt.Errorf("stored quality: %w", err)
		}
		item.LastQuality = &q
	}

	return &item, nil
}
