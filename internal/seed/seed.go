// Package seed bootstraps the minimum data a fresh install needs.
package seed

import (
	"context"
	"errors"
	"time"

	agencydomain "github.com/LangoJordan/annonceluzy/internal/agency/domain"
	"github.com/LangoJordan/annonceluzy/internal/auth/password"
	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	subscriptiondomain "github.com/LangoJordan/annonceluzy/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@annonceluzy.lu"
	defaultAdminPassword = "changeme!"
	defaultAdminDisplay  = "AnnonceLuzy Admin"

	demoAgencyName  = "Agence du Centre"
	demoOwnerEmail  = "owner@agence-centre.lu"
	demoSpaceName   = "Bureau Gare"
	demoSubscriptionDays = 30
)

// EnsureAdmin seeds the administrative contact account surfaced on status
// denials.
func EnsureAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureUserTx(ctx, tx, node, defaultAdminEmail, defaultAdminDisplay, identitydomain.RoleAdmin)
		return err
	})
}

// EnsureDemoAgency seeds a demo agency with one space and an active
// subscription so a fresh install can exercise the full gating pipeline.
func EnsureDemoAgency(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := ensureUserTx(ctx, tx, node, demoOwnerEmail, "Agency Owner", identitydomain.RoleAgency)
		if err != nil {
			return err
		}

		var agency agencydomain.Agency
		err = tx.WithContext(ctx).Where("owner_user_id = ?", owner.ID).First(&agency).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			agency = agencydomain.Agency{
				ID:          node.Generate(),
				Name:        demoAgencyName,
				Slug:        slug.Make(demoAgencyName),
				OwnerUserID: owner.ID,
			}
			if err := tx.WithContext(ctx).Create(&agency).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if owner.AgencyID == nil {
			if err := tx.WithContext(ctx).Model(&identitydomain.User{}).
				Where("id = ?", owner.ID).
				Update("agency_id", agency.ID).Error; err != nil {
				return err
			}
		}

		var space agencydomain.Space
		err = tx.WithContext(ctx).Where("agency_id = ?", agency.ID).First(&space).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			space = agencydomain.Space{
				ID:       node.Generate(),
				AgencyID: agency.ID,
				Name:     demoSpaceName,
				City:     "Luxembourg",
			}
			if err := tx.WithContext(ctx).Create(&space).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var count int64
		if err := tx.WithContext(ctx).Model(&subscriptiondomain.Subscription{}).
			Where("agency_id = ?", agency.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			now := time.Now().UTC()
			subscription := subscriptiondomain.Subscription{
				ID:       node.Generate(),
				AgencyID: agency.ID,
				Status:   true,
				StartAt:  now,
				EndAt:    now.Add(demoSubscriptionDays * 24 * time.Hour),
			}
			if err := tx.WithContext(ctx).Create(&subscription).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func ensureUserTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, email, display string, role identitydomain.Role) (*identitydomain.User, error) {
	var user identitydomain.User
	err := tx.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return nil, err
	}

	user = identitydomain.User{
		ID:           node.Generate(),
		ExternalID:   uuid.NewString(),
		Email:        email,
		DisplayName:  display,
		PasswordHash: &hashed,
		Role:         role,
		Status:       identitydomain.StatusActive,
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
