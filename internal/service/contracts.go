package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/almasov/flashdeck/internal/domain/entities"
	"github.com/almasov/flashdeck/internal/repository"
)

type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entities.LearningItem, error)
	List(ctx context.Context) ([]*entities.LearningItem, error)
	Create(ctx context.Context, item *entities.LearningItem) (string, error)
	UpdateContent(ctx context.Context, id, question, answer, category string) error
	UpdateScheduling(ctx context.Context, id string, upd repository.SchedulingUpdate) error
}

type ReviewLogRepository interface {
	Insert(ctx context.Context, log *entities.ReviewLog) error
	ListByItem(ctx context.Context, itemID string) ([]*entities.ReviewLog, error)
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
