package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	CreateAgency(ctx context.Context, req CreateAgencyRequest) (*Agency, error)
	CreateSpace(ctx context.Context, req CreateSpaceRequest) (*Space, error)
	GrantPosition(ctx context.Context, req GrantPositionRequest) (*Position, error)
	RevokePosition(ctx context.Context, userID, spaceID snowflake.ID) error
	// ListGrantsByUser powers the agency selection page.
	ListGrantsByUser(ctx context.Context, userID snowflake.ID) ([]PositionGrant, error)
}

type CreateAgencyRequest struct {
	Name        string `json:"name"`
	OwnerUserID snowflake.ID
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type CreateSpaceRequest struct {
	AgencyID snowflake.ID
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
}

type GrantPositionRequest struct {
	UserID  snowflake.ID
	SpaceID snowflake.ID
	Role    PositionRole
}
