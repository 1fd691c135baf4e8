package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CreateAgency(ctx context.Context, agency *Agency) error
	FindAgencyByID(ctx context.Context, id snowflake.ID) (*Agency, error)
	FindAgencyByOwner(ctx context.Context, ownerUserID snowflake.ID) (*Agency, error)
	CreateSpace(ctx context.Context, space *Space) error
	FindSpaceByID(ctx context.Context, id snowflake.ID) (*Space, error)
}

// PositionStore exposes the flat position queries the tenancy resolver
// depends on. No relationship traversal: each call is one join query.
type PositionStore interface {
	FindGrantsByUser(ctx context.Context, userID snowflake.ID) ([]PositionGrant, error)
	// GrantExists revalidates a tenant selection: true only when the user
	// holds a position in the given space and that space belongs to the
	// given agency.
	GrantExists(ctx context.Context, userID, agencyID, spaceID snowflake.ID) (bool, error)
	CreatePosition(ctx context.Context, position *Position) error
	DeletePosition(ctx context.Context, userID, spaceID snowflake.ID) error
}
