package repository

import (
	"context"
	"time"

	"github.com/LangoJordan/annonceluzy/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, subscription *domain.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

func (r *repo) ListByAgency(ctx context.Context, agencyID snowflake.ID) ([]domain.Subscription, error) {
	var subscriptions []domain.Subscription
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("end_at DESC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repo) HasActive(ctx context.Context, agencyID snowflake.ID, now time.Time) (bool, error) {
	var count int64
	// end_at > now is strict: a subscription expiring at exactly now is
	// already lapsed.
	err := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("agency_id = ? AND status = ? AND end_at > ?", agencyID, true, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
