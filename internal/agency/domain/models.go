// Package domain contains persistence models for agencies, spaces and positions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Agency is the tenant unit: subscriptions and spaces belong to it. Exactly
// one user of role agency owns it.
type Agency struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	Slug        string            `gorm:"type:text;not null;uniqueIndex:ux_agencies_slug" json:"slug"`
	OwnerUserID snowflake.ID      `gorm:"column:owner_user_id;not null;uniqueIndex" json:"owner_user_id"`
	Email       string            `gorm:"type:text" json:"email"`
	Phone       string            `gorm:"type:text" json:"phone"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Agency) TableName() string { return "agencies" }

// Space is a commercial space owned by an agency.
type Space struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	AgencyID  snowflake.ID `gorm:"not null;index" json:"agency_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Address   string       `gorm:"type:text" json:"address"`
	City      string       `gorm:"type:text" json:"city"`
	Phone     string       `gorm:"type:text" json:"phone"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Space) TableName() string { return "spaces" }

// PositionRole is the role a user holds within one space.
type PositionRole string

const (
	PositionEmployee   PositionRole = "employee"
	PositionCommercial PositionRole = "commercial"
	PositionManager    PositionRole = "manager"
)

// Valid reports whether the role is one of the known values.
func (r PositionRole) Valid() bool {
	switch r {
	case PositionEmployee, PositionCommercial, PositionManager:
		return true
	default:
		return false
	}
}

// Position grants a user a role in one space. Deleting a position never
// deletes the user.
type Position struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_positions_user_space,priority:1" json:"user_id"`
	SpaceID   snowflake.ID `gorm:"not null;index;uniqueIndex:ux_positions_user_space,priority:2" json:"space_id"`
	Role      PositionRole `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Position) TableName() string { return "positions" }

// PositionGrant is the flat read model the tenancy resolver works on: one row
// per position, joined with the owning space and agency.
type PositionGrant struct {
	AgencyID   snowflake.ID `json:"agency_id"`
	AgencyName string       `json:"agency_name"`
	SpaceID    snowflake.ID `json:"space_id"`
	SpaceName  string       `json:"space_name"`
	Role       PositionRole `json:"role"`
}
