package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LangoJordan/annonceluzy/internal/listing/domain"
	"github.com/LangoJordan/annonceluzy/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, listing *domain.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *repo) FindByID(ctx context.Context, agencyID, id snowflake.ID) (*domain.Listing, error) {
	var listing domain.Listing
	err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *repo) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := r.db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("agency_id = ?", req.AgencyID)
	if req.SpaceID != 0 {
		query = query.Where("space_id = ?", req.SpaceID)
	}

	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, err
		}
		query = query.Where("created_at < ?", createdAt)
	}

	var listings []domain.Listing
	if err := query.Order("created_at DESC").Limit(pageSize + 1).Find(&listings).Error; err != nil {
		return nil, err
	}

	resp := &domain.ListResponse{}
	if len(listings) > pageSize {
		listings = listings[:pageSize]
		last := listings[len(listings)-1]
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        last.ID.String(),
			CreatedAt: last.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return nil, err
		}
		resp.HasMore = true
		resp.NextPageToken = token
	}
	resp.Listings = listings

	return resp, nil
}
