package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/almasov/flashdeck/internal/srs"
)

// DigestService periodically logs a scheduling digest: how much is due
// today, what the next week looks like, and which categories carry the load.
type DigestService struct {
	items  ItemRepository
	logs   ReviewLogRepository
	policy srs.Policy
	spec   string // cron spec, e.g. "0 6 * * *"
	logger *zap.Logger
}

func NewDigestService(items ItemRepository, logs ReviewLogRepository, policy srs.Policy, spec string, logger *zap.Logger) *DigestService {
	return &DigestService{
		items:  items,
		logs:   logs,
		policy: policy,
		spec:   spec,
		logger: logger,
	}
}

// Start runs the digest loop until ctx is cancelled.
func (s *DigestService) Start(ctx context.Context) {
	s.logger.Info("digest service started", zap.String("spec", s.spec))

	c := cron.New(cron.WithLocation(s.policy.Anchor))

	_, err := c.AddFunc(s.spec, func() {
		if err := s.RunOnce(ctx, time.Now()); err != nil {
			s.logger.Error("digest run failed", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()

	<-ctx.Done()

	c.Stop()
	s.logger.Info("digest service stopped")
}

// RunOnce computes and logs a single digest for the given instant.
func (s *DigestService) RunOnce(ctx context.Context, now time.Time) error {
	items, err := s.items.List(ctx)
	if err != nil {
		return err
	}

	anchor := s.policy.Anchor
	forecast := srs.BuildCalendar(items, now, 7, anchor)

	weekAhead := 0
	for _, day := range forecast[1:] {
		weekAhead += day.Due
	}

	reviewedToday, err := s.logs.CountBetween(ctx, srs.StartOfDay(now, anchor), srs.StartOfDay(now, anchor).AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	categories := srs.BuildCategoryCounts(items, true, now, srs.SortMostDue, anchor)
	top := categories
	if len(top) > 4 {
		top = top[:4] // All plus the three busiest
	}
	topFields := make([]string, 0, len(top))
	for _, c := range top {
		topFields = append(topFields, c.Name)
	}

	s.logger.Info("scheduling digest",
		zap.Int("total_items", len(items)),
		zap.Int("due_today", forecast[0].Due),
		zap.Int("due_next_7_days", weekAhead),
		zap.Int("reviewed_today", reviewedToday),
		zap.Strings("busiest_categories", topFields),
	)

	return nil
}
