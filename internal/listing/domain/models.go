// Package domain contains persistence models for classified listings.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

var ErrNotFound = errors.New("listing not found")

// Listing is a published classified ad, always scoped to the agency/space it
// was created under.
type Listing struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	AgencyID    snowflake.ID      `gorm:"not null;index" json:"agency_id"`
	SpaceID     *snowflake.ID     `gorm:"index" json:"space_id"`
	AuthorID    snowflake.ID      `gorm:"not null;index" json:"author_id"`
	Title       string            `gorm:"type:text;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	PriceCents  int64             `gorm:"not null;default:0" json:"price_cents"`
	Published   bool              `gorm:"not null;default:true" json:"published"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Listing) TableName() string { return "listings" }
