package service

import (
	"context"
	"testing"
	"time"

	"github.com/LangoJordan/annonceluzy/internal/clock"
	"github.com/LangoJordan/annonceluzy/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRepo struct {
	inserted []*domain.Subscription
}

func (f *fakeRepo) Insert(ctx context.Context, subscription *domain.Subscription) error {
	f.inserted = append(f.inserted, subscription)
	return nil
}

func (f *fakeRepo) ListByAgency(ctx context.Context, agencyID snowflake.ID) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, s := range f.inserted {
		if s.AgencyID == agencyID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasActive(ctx context.Context, agencyID snowflake.ID, now time.Time) (bool, error) {
	for _, s := range f.inserted {
		if s.AgencyID == agencyID && s.Status && s.EndAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(repo *fakeRepo, clk clock.Clock) domain.Service {
	node, _ := snowflake.NewNode(1)
	return New(zap.NewNop(), repo, clk, node)
}

func TestRenew_DefaultDuration(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := &fakeRepo{}
	svc := newTestService(repo, clk)

	node, _ := snowflake.NewNode(2)
	agencyID := node.Generate()

	sub, err := svc.Renew(context.Background(), domain.RenewRequest{AgencyID: agencyID})
	assert.NoError(t, err)
	assert.Equal(t, clk.Now(), sub.StartAt)
	assert.Equal(t, clk.Now().Add(30*24*time.Hour), sub.EndAt)
	assert.True(t, sub.Status)
	assert.Len(t, repo.inserted, 1)
}

func TestRenew_MonthsRequested(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := &fakeRepo{}
	svc := newTestService(repo, clk)

	node, _ := snowflake.NewNode(2)
	sub, err := svc.Renew(context.Background(), domain.RenewRequest{
		AgencyID: node.Generate(),
		Months:   3,
	})
	assert.NoError(t, err)
	assert.Equal(t, clk.Now().Add(3*30*24*time.Hour), sub.EndAt)
}

func TestRenew_InsertsFreshRowEachTime(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := &fakeRepo{}
	svc := newTestService(repo, clk)

	node, _ := snowflake.NewNode(2)
	agencyID := node.Generate()

	first, err := svc.Renew(context.Background(), domain.RenewRequest{AgencyID: agencyID})
	assert.NoError(t, err)

	clk.Advance(40 * 24 * time.Hour)

	second, err := svc.Renew(context.Background(), domain.RenewRequest{AgencyID: agencyID})
	assert.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, repo.inserted, 2)

	// the lapsed row is untouched
	assert.Equal(t, first.EndAt, repo.inserted[0].EndAt)
}

func TestHasActive_FollowsClock(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := &fakeRepo{}
	svc := newTestService(repo, clk)

	node, _ := snowflake.NewNode(2)
	agencyID := node.Generate()

	_, err := svc.Renew(context.Background(), domain.RenewRequest{AgencyID: agencyID})
	assert.NoError(t, err)

	active, err := svc.HasActive(context.Background(), agencyID)
	assert.NoError(t, err)
	assert.True(t, active)

	clk.Advance(30 * 24 * time.Hour)

	active, err = svc.HasActive(context.Background(), agencyID)
	assert.NoError(t, err)
	assert.False(t, active, "expiring at exactly now counts as lapsed")
}
