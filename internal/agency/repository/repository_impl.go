package repository

import (
	"context"
	"errors"

	"github.com/LangoJordan/annonceluzy/internal/agency/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) (domain.Repository, domain.PositionStore) {
	r := &repo{db: db}
	return r, r
}

func (r *repo) CreateAgency(ctx context.Context, agency *domain.Agency) error {
	return r.db.WithContext(ctx).Create(agency).Error
}

func (r *repo) FindAgencyByID(ctx context.Context, id snowflake.ID) (*domain.Agency, error) {
	var agency domain.Agency
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&agency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAgencyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *repo) FindAgencyByOwner(ctx context.Context, ownerUserID snowflake.ID) (*domain.Agency, error) {
	var agency domain.Agency
	err := r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).First(&agency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAgencyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *repo) CreateSpace(ctx context.Context, space *domain.Space) error {
	return r.db.WithContext(ctx).Create(space).Error
}

func (r *repo) FindSpaceByID(ctx context.Context, id snowflake.ID) (*domain.Space, error) {
	var space domain.Space
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&space).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSpaceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *repo) FindGrantsByUser(ctx context.Context, userID snowflake.ID) ([]domain.PositionGrant, error) {
	var grants []domain.PositionGrant
	err := r.db.WithContext(ctx).Raw(
		`SELECT s.agency_id AS agency_id, a.name AS agency_name,
		        p.space_id AS space_id, s.name AS space_name, p.role AS role
		 FROM positions p
		 JOIN spaces s ON s.id = p.space_id
		 JOIN agencies a ON a.id = s.agency_id
		 WHERE p.user_id = ?
		 ORDER BY a.name, s.name`,
		userID,
	).Scan(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *repo) GrantExists(ctx context.Context, userID, agencyID, spaceID snowflake.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(1)
		 FROM positions p
		 JOIN spaces s ON s.id = p.space_id
		 WHERE p.user_id = ? AND p.space_id = ? AND s.agency_id = ?`,
		userID, spaceID, agencyID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) CreatePosition(ctx context.Context, position *domain.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *repo) DeletePosition(ctx context.Context, userID, spaceID snowflake.ID) error {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND space_id = ?", userID, spaceID).
		Delete(&domain.Position{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrPositionNotFound
	}
	return nil
}
