package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type Repository interface {
	Insert(ctx context.Context, subscription *Subscription) error
	ListByAgency(ctx context.Context, agencyID snowflake.ID) ([]Subscription, error)
	// HasActive reports whether the agency holds a subscription with
	// status = true and end_at strictly after now. A row expiring at
	// exactly now is inactive.
	HasActive(ctx context.Context, agencyID snowflake.ID, now time.Time) (bool, error)
}
