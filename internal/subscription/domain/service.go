package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Renew opens a fresh subscription window for the agency. Lapsed rows
	// are never mutated.
	Renew(ctx context.Context, req RenewRequest) (*Subscription, error)
	List(ctx context.Context, agencyID snowflake.ID) ([]Subscription, error)
	HasActive(ctx context.Context, agencyID snowflake.ID) (bool, error)
}

type RenewRequest struct {
	AgencyID snowflake.ID
	Duration time.Duration `json:"-"`
	Months   int           `json:"months"`
}
