package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/almasov/flashdeck/internal/domain/entities"
	"github.com/almasov/flashdeck/internal/repository"
	"github.com/almasov/flashdeck/internal/srs"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type fakeItemRepo struct {
	mu      sync.Mutex
	items   map[string]*entities.LearningItem
	updates int
	updErr  error
	onGet   func() // called inside GetByID, before returning
}

func newFakeItemRepo(items ...*entities.LearningItem) *fakeItemRepo {
	m := make(map[string]*entities.LearningItem)
	for _, item := range items {
		m[item.ID] = item
	}
	return &fakeItemRepo{items: m}
}

func (f *fakeItemRepo) GetByID(_ context.Context, id string) (*entities.LearningItem, error) {
	if f.onGet != nil {
		f.onGet()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) List(context.Context) ([]*entities.LearningItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.LearningItem
	for _, item := range f.items {
		copied := *item
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeItemRepo) Create(_ context.Context, item *entities.LearningItem) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.ID] = item
	return item.ID, nil
}

func (f *fakeItemRepo) UpdateContent(_ context.Context, id, question, answer, category string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return repository.ErrItemNotFound
	}
	item.Question, item.Answer, item.Category = question, answer, category
	return nil
}

func (f *fakeItemRepo) UpdateScheduling(_ context.Context, id string, upd repository.SchedulingUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updErr != nil {
		return f.updErr
	}
	item, ok := f.items[id]
	if !ok {
		return repository.ErrItemNotFound
	}
	interval := upd.IntervalDays
	nextAt := upd.NextReviewAt
	lastAt := upd.LastReviewedAt
	quality := upd.LastQuality
	item.IntervalDays = &interval
	item.NextReviewAt = &nextAt
	item.LastReviewedAt = &lastAt
	item.LastQuality = &quality
	item.ReviewCount = upd.ReviewCount
	f.updates++
	return nil
}

type fakeLogRepo struct {
	mu        sync.Mutex
	logs      []*entities.ReviewLog
	insertErr error
}

func (f *fakeLogRepo) Insert(_ context.Context, log *entities.ReviewLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeLogRepo) ListByItem(_ context.Context, itemID string) ([]*entities.ReviewLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.ReviewLog
	for _, log := range f.logs {
		if log.ItemID == itemID {
			out = append(out, log)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) CountBetween(_ context.Context, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, log := range f.logs {
		if !log.ReviewedAt.Before(from) && log.ReviewedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func newTestReviewService(items *fakeItemRepo, logs *fakeLogRepo) *ReviewService {
	return NewReviewService(items, logs, srs.DefaultPolicy(time.UTC), zap.NewNop())
}

func TestReviewAppliedFirstReview(t *testing.T) {
	items := newFakeItemRepo(&entities.LearningItem{ID: "card-1", Question: "q", Answer: "a"})
	logs := &fakeLogRepo{}
	svc := newTestReviewService(items, logs)

	res, err := svc.Review(context.Background(), "card-1", entities.QualityGood, t0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)

	require.NotNil(t, res.Item.IntervalDays)
	assert.Equal(t, 4, *res.Item.IntervalDays)
	assert.Equal(t, 1, res.Item.ReviewCount)
	require.NotNil(t, res.Item.NextReviewAt)
	assert.False(t, srs.IsDueOn(res.Item, t0, t0, time.UTC), "just-reviewed item must not be due today")

	stored, err := items.GetByID(context.Background(), "card-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ReviewCount)
	require.NotNil(t, stored.LastQuality)
	assert.Equal(t, entities.QualityGood, *stored.LastQuality)

	require.Len(t, logs.logs, 1)
	assert.Equal(t, "card-1", logs.logs[0].ItemID)
	assert.Equal(t, 4, logs.logs[0].IntervalDays)
}

func TestReviewSubsequentUsesFactor(t *testing.T) {
	items := newFakeItemRepo(&entities.LearningItem{ID: "card-1"})
	logs := &fakeLogRepo{}
	svc := newTestReviewService(items, logs)

	_, err := svc.Review(context.Background(), "card-1", entities.QualityGood, t0)
	require.NoError(t, err)

	// 4 * 1.3 = 5.2 rounds to 5.
	res, err := svc.Review(context.Background(), "card-1", entities.QualityEasy, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, 5, *res.Item.IntervalDays)
	assert.Equal(t, 2, res.Item.ReviewCount)
}

func TestReviewInvalidQualityNoMutation(t *testing.T) {
	items := newFakeItemRepo(&entities.LearningItem{ID: "card-1"})
	logs := &fakeLogRepo{}
	svc := newTestReviewService(items, logs)

	_, err := svc.Review(context.Background(), "card-1", entities.Quality("amazing"), t0)
	require.ErrorIs(t, err, entities.ErrInvalidQuality)

	assert.Zero(t, items.updates)
	assert.Empty(t, logs.logs)
}

func TestReviewUnknownItem(t *testing.T) {
	svc := newTestReviewService(newFakeItemRepo(), &fakeLogRepo{})

	_, err := svc.Review(context.Background(), "ghost", entities.QualityGood, t0)
	require.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestReviewPersistenceFailureNotApplied(t *testing.T) {
	items := newFakeItemRepo(&entities.LearningItem{ID: "card-1"})
	items.updErr = errors.New("connection reset")
	logs := &fakeLogRepo{}
	svc := newTestReviewService(items, logs)

	_, err := svc.Review(context.Background(), "card-1", entities.QualityGood, t0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrInvalidQuality, "store failure is a distinct error kind")

	assert.Empty(t, logs.logs, "no history for a review that was not applied")

	stored, err := items.GetByID(context.Background(), "card-1")
	require.NoError(t, err)
	assert.Zero(t, stored.ReviewCount)
	assert.Nil(t, stored.NextReviewAt)
}

func TestReviewHistoryFailureStillApplied(t *testing.T) {
	items := newFakeItemRepo(&entities.LearningItem{ID: "card-1"})
	logs := &fakeLogRepo{insertErr: errors.New("disk full")}
	svc := newTestReviewService(items, logs)

	res, err := svc.Review(context.Background(), "card-1", entities.QualityGood, t0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, 1, items.updates)
}

func TestReviewDuplicateDroppedWhileInFlight(t *testing.T) {
	items := newFakeItemRepo(&entities.LearningItem{ID: "card-1"})
	logs := &fakeLogRepo{}
	svc := newTestReviewService(items, logs)

	entered := make(chan struct{})
	blocked := make(chan struct{})
	var once sync.Once
	items.onGet = func() {
		once.Do(func() {
			close(entered)
			<-blocked
		})
	}

	firstDone := make(chan ReviewResult, 1)
	go func() {
		res, err := svc.Review(context.Background(), "card-1", entities.QualityGood, t0)
		require.NoError(t, err)
		firstDone <- res
	}()

	<-entered

	// Second submit while the first is still in flight: dropped, no error.
	res, err := svc.Review(context.Background(), "card-1", entities.QualityEasy, t0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDropped, res.Outcome)
	assert.Nil(t, res.Item)

	close(blocked)
	first := <-firstDone
	assert.Equal(t, OutcomeApplied, first.Outcome)

	assert.Equal(t, 1, items.updates, "only the first submission reached the store")
}

func TestReviewDifferentItemsIndependent(t *testing.T) {
	items := newFakeItemRepo(
		&entities.LearningItem{ID: "card-1"},
		&entities.LearningItem{ID: "card-2"},
	)
	logs := &fakeLogRepo{}
	svc := newTestReviewService(items, logs)

	var wg sync.WaitGroup
	for _, id := range []string{"card-1", "card-2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			res, err := svc.Review(context.Background(), id, entities.QualityGood, t0)
			assert.NoError(t, err)
			assert.Equal(t, OutcomeApplied, res.Outcome)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 2, items.updates)
}

func TestReviewHistory(t *testing.T) {
	items := newFakeItemRepo(&entities.LearningItem{ID: "card-1"})
	logs := &fakeLogRepo{}
	svc := newTestReviewService(items, logs)

	_, err := svc.Review(context.Background(), "card-1", entities.QualityGood, t0)
	require.NoError(t, err)
	_, err = svc.Review(context.Background(), "card-1", entities.QualityHard, t0.AddDate(0, 0, 4))
	require.NoError(t, err)

	history, err := svc.History(context.Background(), "card-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entities.QualityGood, history[0].Quality)
	assert.Equal(t, entities.QualityHard, history[1].Quality)
}
