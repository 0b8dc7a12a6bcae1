package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/almasov/flashdeck/internal/domain/entities"
	"github.com/almasov/flashdeck/internal/repository"
	"github.com/almasov/flashdeck/internal/srs"
)

// ResetService wipes scheduling progress, turning items back into new,
// always-due cards. Content is untouched.
type ResetService struct {
	tr     Transactor
	logger *zap.Logger
}

func NewResetService(tr Transactor, logger *zap.Logger) *ResetService {
	return &ResetService{tr: tr, logger: logger}
}

// ResetCategory clears the scheduling state and review history of every
// item in the given category. srs.AllCategories (or empty) resets
// everything. Both tables change in one transaction.
func (s *ResetService) ResetCategory(ctx context.Context, category string) (int64, error) {
	all := category == "" || category == srs.AllCategories
	if category == entities.DefaultCategory {
		// Uncategorized items are stored with an empty category; match the
		// raw column value, not the display bucket.
		category = ""
	}

	var reset int64
	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		logRepo := repository.NewReviewLogRepository(tx)
		itemRepo := repository.NewItemRepository(tx)

		if err := logRepo.DeleteByCategory(ctx, category, all); err != nil {
			return err
		}

		n, err := itemRepo.ClearScheduling(ctx, category, all)
		if err != nil {
			return err
		}
		reset = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("scheduling progress reset",
		zap.String("category", category),
		zap.Int64("items_reset", reset),
	)

	return reset, nil
}
