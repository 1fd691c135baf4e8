package domain

import (
	"context"

	"github.com/LangoJordan/annonceluzy/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

type ListRequest struct {
	AgencyID snowflake.ID
	SpaceID  snowflake.ID
	pagination.Pagination
}

type ListResponse struct {
	pagination.PageInfo
	Listings []Listing `json:"listings"`
}

type Repository interface {
	Insert(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, agencyID, id snowflake.ID) (*Listing, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
}
