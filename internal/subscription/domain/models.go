// Package domain contains persistence models for agency subscriptions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Subscription is one entitlement window for an agency. An agency accumulates
// rows over time; a row is active while status is true and end_at is in the
// future. The store does not enforce "at most one active row per agency";
// the gate tolerates overlap by treating any active row as active.
type Subscription struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	AgencyID  snowflake.ID      `gorm:"not null;index" json:"agency_id"`
	Status    bool              `gorm:"not null;default:true" json:"status"`
	StartAt   time.Time         `gorm:"not null" json:"start_at"`
	EndAt     time.Time         `gorm:"not null;index" json:"end_at"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Subscription) TableName() string { return "subscriptions" }
